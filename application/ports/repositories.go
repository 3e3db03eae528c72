package ports

import (
	"context"

	"storefront-backend/domain/interaction"
)

// EventStore defines the interface for the append-only interaction log.
// This is a port in hexagonal architecture - the services don't know which
// persistence engine backs it, and must behave identically over any backend.
type EventStore interface {
	// Append records a single interaction and returns its event id.
	// The store assigns the write-time timestamp and a monotonically
	// increasing sequence number; the call is atomic - an event is either
	// fully written or not written at all.
	Append(ctx context.Context, userID string, eventType interaction.EventType, content string) (string, error)

	// Recent returns the user's most recent events, newest first, at most
	// limit entries. Timestamp ties are broken by the sequence number so
	// that append order is always preserved. A non-positive limit is an
	// InvalidArgument error; a user with no events yields an empty slice.
	Recent(ctx context.Context, userID string, limit int) ([]interaction.Event, error)

	// Close releases the backend connection.
	Close() error
}
