package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"storefront-backend/domain/interaction"
	apperrors "storefront-backend/pkg/errors"
)

// EventStore is an in-memory event log for development and testing.
// Ordering matches the persistent backends: write-time timestamp with a
// process-wide sequence number breaking same-tick ties.
type EventStore struct {
	mu     sync.RWMutex
	events map[string][]interaction.Event
	seq    int64
}

// NewEventStore creates a new in-memory event store
func NewEventStore() *EventStore {
	return &EventStore{
		events: make(map[string][]interaction.Event),
	}
}

// Append records a single interaction and returns its event id
func (s *EventStore) Append(ctx context.Context, userID string, eventType interaction.EventType, content string) (string, error) {
	event := interaction.Event{
		ID:        uuid.NewString(),
		UserID:    userID,
		EventType: eventType,
		Content:   content,
	}
	if err := event.Validate(); err != nil {
		return "", apperrors.NewInvalidArgumentError(err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Timestamp and seq are assigned under the lock so concurrent appends
	// for the same user can never observe a seq inversion.
	s.seq++
	event.Seq = s.seq
	event.Timestamp = time.Now().UTC()
	s.events[userID] = append(s.events[userID], event)

	return event.ID, nil
}

// Recent returns the user's most recent events, newest first
func (s *EventStore) Recent(ctx context.Context, userID string, limit int) ([]interaction.Event, error) {
	if limit <= 0 {
		return nil, apperrors.NewInvalidArgumentError("limit must be a positive integer")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.events[userID]
	n := len(all)
	if limit > n {
		limit = n
	}

	// Appends arrive in seq order, so newest-first is the tail reversed.
	result := make([]interaction.Event, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		result = append(result, all[i])
	}
	return result, nil
}

// Close releases the backend connection
func (s *EventStore) Close() error {
	return nil
}
