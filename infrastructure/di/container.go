package di

import (
	"go.uber.org/zap"

	"storefront-backend/application/ports"
	"storefront-backend/application/services"
	"storefront-backend/infrastructure/config"
	"storefront-backend/pkg/auth"
)

// Container holds all application dependencies. Everything is constructed
// once at process start and passed by reference; nothing is built at import
// time.
type Container struct {
	Config          *config.Config
	Logger          *zap.Logger
	EventStore      ports.EventStore
	Embedder        ports.Embedder
	VectorIndex     ports.VectorIndex
	JWTValidator    *auth.JWTValidator
	Tracking        *services.TrackingService
	Preferences     *services.PreferenceService
	Retrieval       *services.RetrievalService
	Recommendations *services.RecommendationService
}

// Shutdown releases the container's long-lived resources
func (c *Container) Shutdown() error {
	if err := c.EventStore.Close(); err != nil {
		return err
	}
	// Sync can fail on stderr sinks; callers treat that as best-effort
	_ = c.Logger.Sync()
	return nil
}
