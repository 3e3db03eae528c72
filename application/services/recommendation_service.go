package services

import (
	"context"

	"go.uber.org/zap"

	"storefront-backend/domain/recommendation"
)

// RecommendationService answers "what should this user see now" by chaining
// the preference profile into vector retrieval.
type RecommendationService struct {
	preferences *PreferenceService
	retrieval   *RetrievalService
	topK        int
	logger      *zap.Logger
}

// NewRecommendationService creates a new recommendation service
func NewRecommendationService(
	preferences *PreferenceService,
	retrieval *RetrievalService,
	topK int,
	logger *zap.Logger,
) *RecommendationService {
	return &RecommendationService{
		preferences: preferences,
		retrieval:   retrieval,
		topK:        topK,
		logger:      logger,
	}
}

// RecommendForUser returns a ranked product list for the user. A user with
// no history short-circuits to an empty list without touching the embedding
// service or the index. StoreUnavailable, EmbeddingFailure and
// IndexUnavailable propagate unchanged to the boundary layer.
func (s *RecommendationService) RecommendForUser(ctx context.Context, userID string) (recommendation.Recommendations, error) {
	profile, err := s.preferences.PreferenceText(ctx, userID, 0)
	if err != nil {
		return recommendation.Recommendations{}, err
	}

	if profile == "" {
		return recommendation.Recommendations{
			Products: []recommendation.ProductMatch{},
			Reason:   recommendation.ReasonNoHistory,
		}, nil
	}

	products, err := s.retrieval.Recommend(ctx, profile, s.topK)
	if err != nil {
		return recommendation.Recommendations{}, err
	}

	s.logger.Debug("recommendations computed",
		zap.String("user_id", userID),
		zap.Int("products", len(products)),
	)

	return recommendation.Recommendations{
		Products: products,
		Reason:   recommendation.ReasonRecentActivity,
	}, nil
}
