package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"storefront-backend/domain/interaction"
	apperrors "storefront-backend/pkg/errors"
)

// EventStore is a PostgreSQL-backed event log. The BIGSERIAL primary key is
// the sequence number: inserts take it in commit order, so ordering survives
// identical created_at timestamps.
type EventStore struct {
	db      *sql.DB
	timeout time.Duration
}

const schema = `
CREATE TABLE IF NOT EXISTS interaction_events (
	id         BIGSERIAL PRIMARY KEY,
	event_id   TEXT NOT NULL UNIQUE,
	user_id    TEXT NOT NULL,
	event_type TEXT NOT NULL,
	content    TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_interaction_events_user ON interaction_events (user_id, id DESC);
`

// NewEventStore opens a PostgreSQL-backed event store
func NewEventStore(dsn string, timeout time.Duration) (*EventStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &EventStore{db: db, timeout: timeout}, nil
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

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO interaction_events (event_id, user_id, event_type, content)
		VALUES ($1, $2, $3, $4)
	`, event.ID, event.UserID, string(event.EventType), event.Content)
	if err != nil {
		return "", apperrors.NewStoreUnavailableError("append", err)
	}

	return event.ID, nil
}

// Recent returns the user's most recent events, newest first
func (s *EventStore) Recent(ctx context.Context, userID string, limit int) ([]interaction.Event, error) {
	if limit <= 0 {
		return nil, apperrors.NewInvalidArgumentError("limit must be a positive integer")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, event_id, user_id, event_type, content, created_at
		FROM interaction_events
		WHERE user_id = $1
		ORDER BY id DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError("recent", err)
	}
	defer rows.Close()

	events := make([]interaction.Event, 0, limit)
	for rows.Next() {
		var e interaction.Event
		var eventType string
		if err := rows.Scan(&e.Seq, &e.ID, &e.UserID, &eventType, &e.Content, &e.Timestamp); err != nil {
			return nil, apperrors.NewStoreUnavailableError("recent", err)
		}
		e.EventType = interaction.EventType(eventType)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreUnavailableError("recent", err)
	}

	return events, nil
}

// Close closes the database connection
func (s *EventStore) Close() error {
	return s.db.Close()
}
