// Package mocks provides mock implementations of the application ports for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"storefront-backend/application/ports"
	"storefront-backend/domain/interaction"
)

// MockEventStore is a testify mock of ports.EventStore
type MockEventStore struct {
	mock.Mock
}

func (m *MockEventStore) Append(ctx context.Context, userID string, eventType interaction.EventType, content string) (string, error) {
	args := m.Called(ctx, userID, eventType, content)
	return args.String(0), args.Error(1)
}

func (m *MockEventStore) Recent(ctx context.Context, userID string, limit int) ([]interaction.Event, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]interaction.Event), args.Error(1)
}

func (m *MockEventStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockEmbedder is a testify mock of ports.Embedder
type MockEmbedder struct {
	mock.Mock
}

func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float64), args.Error(1)
}

func (m *MockEmbedder) Dimension() int {
	args := m.Called()
	return args.Int(0)
}

// MockVectorIndex is a testify mock of ports.VectorIndex
type MockVectorIndex struct {
	mock.Mock
}

func (m *MockVectorIndex) Query(ctx context.Context, vector []float64, topK int) ([]ports.Hit, error) {
	args := m.Called(ctx, vector, topK)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.Hit), args.Error(1)
}
