package di

import (
	"context"

	"go.uber.org/zap"

	"storefront-backend/application/ports"
	"storefront-backend/application/services"
	"storefront-backend/infrastructure/config"
	"storefront-backend/infrastructure/persistence"
	"storefront-backend/infrastructure/retrieval"
	"storefront-backend/pkg/auth"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideEventStore selects and opens the configured event store backend
func ProvideEventStore(ctx context.Context, cfg *config.Config) (ports.EventStore, error) {
	return persistence.NewEventStore(ctx, cfg)
}

// ProvideEmbedder creates the embedding service client
func ProvideEmbedder(cfg *config.Config) ports.Embedder {
	return retrieval.NewEmbeddingClient(cfg.EmbeddingURL, cfg.EmbeddingModel, cfg.EmbeddingDimension, cfg.EmbedTimeout)
}

// ProvideVectorIndex creates the vector index client
func ProvideVectorIndex(cfg *config.Config) ports.VectorIndex {
	return retrieval.NewIndexClient(cfg.IndexURL, cfg.IndexCollection, cfg.IndexAPIKey, cfg.IndexTimeout)
}

// devJWTSecret keeps local development working when JWT_SECRET is unset.
// Config validation refuses an empty secret in production before this runs.
const devJWTSecret = "storefront-dev-secret"

// ProvideJWTValidator creates the token validator
func ProvideJWTValidator(cfg *config.Config, logger *zap.Logger) (*auth.JWTValidator, error) {
	secret := cfg.JWTSecret
	if secret == "" && cfg.JWTSigningMethod == "HS256" {
		logger.Warn("JWT_SECRET is not set, falling back to the development secret")
		secret = devJWTSecret
	}

	return auth.NewJWTValidator(auth.JWTConfig{
		SigningMethod: cfg.JWTSigningMethod,
		SecretKey:     secret,
		Issuer:        cfg.JWTIssuer,
	})
}

// ProvideTrackingService creates the interaction recording service
func ProvideTrackingService(store ports.EventStore, logger *zap.Logger) *services.TrackingService {
	return services.NewTrackingService(store, logger)
}

// ProvidePreferenceService creates the preference aggregation service
func ProvidePreferenceService(store ports.EventStore, cfg *config.Config, logger *zap.Logger) *services.PreferenceService {
	return services.NewPreferenceService(store, cfg.HistoryLimit, logger)
}

// ProvideRetrievalService creates the vector retrieval service
func ProvideRetrievalService(embedder ports.Embedder, index ports.VectorIndex, logger *zap.Logger) *services.RetrievalService {
	return services.NewRetrievalService(embedder, index, logger)
}

// ProvideRecommendationService creates the recommendation orchestrator
func ProvideRecommendationService(
	preferences *services.PreferenceService,
	retrievalSvc *services.RetrievalService,
	cfg *config.Config,
	logger *zap.Logger,
) *services.RecommendationService {
	return services.NewRecommendationService(preferences, retrievalSvc, cfg.TopK, logger)
}
