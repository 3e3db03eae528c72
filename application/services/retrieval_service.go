package services

import (
	"context"

	"go.uber.org/zap"

	"storefront-backend/application/ports"
	"storefront-backend/domain/recommendation"
	apperrors "storefront-backend/pkg/errors"
)

// RetrievalService turns a preference profile into product matches: it
// embeds the profile text and queries the external vector index for the
// nearest products. Both collaborators are injected; the service holds no
// global client state.
type RetrievalService struct {
	embedder ports.Embedder
	index    ports.VectorIndex
	logger   *zap.Logger
}

// NewRetrievalService creates a new retrieval service
func NewRetrievalService(embedder ports.Embedder, index ports.VectorIndex, logger *zap.Logger) *RetrievalService {
	return &RetrievalService{
		embedder: embedder,
		index:    index,
		logger:   logger,
	}
}

// Recommend returns the topK products nearest to the profile text, in the
// exact order the index returned them. Calling this with empty text is a
// caller bug: an empty-text embedding is meaningless, so the orchestrator
// short-circuits before ever reaching here.
func (s *RetrievalService) Recommend(ctx context.Context, profileText string, topK int) ([]recommendation.ProductMatch, error) {
	if profileText == "" {
		return nil, apperrors.NewInvalidArgumentError("profile text must not be empty")
	}
	if topK < 1 {
		return nil, apperrors.NewInvalidArgumentError("top_k must be at least 1")
	}

	vector, err := s.embedder.Embed(ctx, profileText)
	if err != nil {
		return nil, apperrors.NewEmbeddingFailureError("", err)
	}
	if len(vector) != s.embedder.Dimension() {
		return nil, apperrors.NewEmbeddingFailureError("embedding has wrong dimension", nil).
			WithDetails(map[string]interface{}{
				"expected": s.embedder.Dimension(),
				"got":      len(vector),
			})
	}

	hits, err := s.index.Query(ctx, vector, topK)
	if err != nil {
		return nil, apperrors.NewIndexUnavailableError("", err)
	}

	matches := make([]recommendation.ProductMatch, 0, len(hits))
	for i, hit := range hits {
		// The index already sorted by similarity; a score increase means
		// an integration bug on its side. Log it, never re-sort.
		if i > 0 && hit.Score > hits[i-1].Score {
			s.logger.Warn("vector index returned non-monotonic scores",
				zap.Int("position", i),
				zap.Float64("score", hit.Score),
				zap.Float64("previous", hits[i-1].Score),
			)
		}
		matches = append(matches, shapeMatch(hit))
	}

	return matches, nil
}

// shapeMatch maps an index payload onto a ProductMatch. Missing payload
// fields stay nil; a partially populated product beats a dropped result.
func shapeMatch(hit ports.Hit) recommendation.ProductMatch {
	match := recommendation.ProductMatch{Score: hit.Score}

	if name, ok := hit.Payload["product_name"].(string); ok {
		match.ProductName = name
	}
	if brand, ok := hit.Payload["brand"].(string); ok {
		match.Brand = &brand
	}
	if category, ok := hit.Payload["category"].(string); ok {
		match.Category = &category
	}
	if supplier, ok := hit.Payload["supplier_name"].(string); ok {
		match.SupplierName = &supplier
	}
	if price, ok := payloadFloat(hit.Payload["unit_price"]); ok {
		match.UnitPrice = &price
	}

	return match
}

// payloadFloat tolerates the numeric shapes JSON decoding can produce
func payloadFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
