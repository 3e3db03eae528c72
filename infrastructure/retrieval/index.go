package retrieval

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"storefront-backend/application/ports"
)

// IndexClient queries a Qdrant-compatible vector index over HTTP. The index
// owns product storage and ranking; this client only shapes the wire format.
type IndexClient struct {
	baseURL    string
	collection string
	apiKey     string
	client     *http.Client
}

// NewIndexClient creates a client for the external vector index
func NewIndexClient(baseURL, collection, apiKey string, timeout time.Duration) *IndexClient {
	return &IndexClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		collection: collection,
		apiKey:     apiKey,
		client:     &http.Client{Timeout: timeout},
	}
}

type searchRequest struct {
	Vector      []float64 `json:"vector"`
	Limit       int       `json:"limit"`
	WithPayload bool      `json:"with_payload"`
}

type searchResponse struct {
	Result []struct {
		Score   float64                `json:"score"`
		Payload map[string]interface{} `json:"payload"`
	} `json:"result"`
}

// Query returns the topK nearest vectors in the index's ranking order
func (c *IndexClient) Query(ctx context.Context, vector []float64, topK int) ([]ports.Hit, error) {
	body, err := json.Marshal(searchRequest{
		Vector:      vector,
		Limit:       topK,
		WithPayload: true,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/collections/%s/points/search", c.baseURL, c.collection)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("api-key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("index API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	hits := make([]ports.Hit, 0, len(result.Result))
	for _, r := range result.Result {
		hits = append(hits, ports.Hit{
			Payload: r.Payload,
			Score:   r.Score,
		})
	}

	return hits, nil
}
