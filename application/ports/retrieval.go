package ports

import "context"

// Embedder turns text into a fixed-dimension vector via an external
// embedding model. Implementations own their transport and timeouts.
type Embedder interface {
	// Embed returns the embedding for the given text.
	Embed(ctx context.Context, text string) ([]float64, error)

	// Dimension reports the vector size the model produces.
	Dimension() int
}

// Hit is one nearest-neighbor result from the vector index: an opaque
// payload plus the index's similarity score.
type Hit struct {
	Payload map[string]interface{}
	Score   float64
}

// VectorIndex is the external nearest-neighbor service over product
// embeddings. The core owns none of the index's storage.
type VectorIndex interface {
	// Query returns the topK nearest vectors, ordered by the index's own
	// similarity ranking.
	Query(ctx context.Context, vector []float64, topK int) ([]Hit, error)
}
