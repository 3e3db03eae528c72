package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"storefront-backend/application/ports"
)

// PreferenceService derives a short-lived preference profile from a user's
// most recent interactions. The profile is never persisted; it is recomputed
// per recommendation request.
type PreferenceService struct {
	store        ports.EventStore
	defaultLimit int
	logger       *zap.Logger
}

// NewPreferenceService creates a new preference service
func NewPreferenceService(store ports.EventStore, defaultLimit int, logger *zap.Logger) *PreferenceService {
	return &PreferenceService{
		store:        store,
		defaultLimit: defaultLimit,
		logger:       logger,
	}
}

// PreferenceText joins the content of the user's most recent events with
// single spaces, newest first. An empty history yields an empty string,
// which is a valid result, not an error; store failures propagate as-is.
// A non-positive limit selects the configured default window.
func (s *PreferenceService) PreferenceText(ctx context.Context, userID string, limit int) (string, error) {
	if limit <= 0 {
		limit = s.defaultLimit
	}

	events, err := s.store.Recent(ctx, userID, limit)
	if err != nil {
		return "", err
	}

	if len(events) == 0 {
		return "", nil
	}

	contents := make([]string, 0, len(events))
	for _, e := range events {
		contents = append(contents, e.Content)
	}

	return strings.Join(contents, " "), nil
}
