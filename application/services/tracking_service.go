package services

import (
	"context"

	"go.uber.org/zap"

	"storefront-backend/application/ports"
	"storefront-backend/domain/interaction"
	apperrors "storefront-backend/pkg/errors"
)

// TrackingService records user interactions into the event log. Identity is
// established by the authentication middleware before this service runs; by
// the time a record call is made the user id is already trusted.
type TrackingService struct {
	store  ports.EventStore
	logger *zap.Logger
}

// NewTrackingService creates a new tracking service
func NewTrackingService(store ports.EventStore, logger *zap.Logger) *TrackingService {
	return &TrackingService{
		store:  store,
		logger: logger,
	}
}

// RecordSearch appends a search event with the raw query as content.
// The append is synchronous: the caller's response reflects whether the
// event was durably written.
func (s *TrackingService) RecordSearch(ctx context.Context, userID, query string) (string, error) {
	if query == "" {
		return "", apperrors.NewInvalidArgumentError("query must not be empty")
	}

	eventID, err := s.store.Append(ctx, userID, interaction.EventTypeSearch, query)
	if err != nil {
		s.logger.Error("failed to record search",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return "", err
	}

	s.logger.Debug("recorded search",
		zap.String("user_id", userID),
		zap.String("event_id", eventID),
	)
	return eventID, nil
}

// RecordClick appends a click event. Content is the space-joined non-empty
// subset of the product's fields; absent fields are omitted entirely.
func (s *TrackingService) RecordClick(ctx context.Context, userID string, product interaction.ClickedProduct) (string, error) {
	content := product.Content()
	if content == "" {
		return "", apperrors.NewInvalidArgumentError("clicked product must have at least one field")
	}

	eventID, err := s.store.Append(ctx, userID, interaction.EventTypeClick, content)
	if err != nil {
		s.logger.Error("failed to record click",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return "", err
	}

	s.logger.Debug("recorded click",
		zap.String("user_id", userID),
		zap.String("event_id", eventID),
	)
	return eventID, nil
}
