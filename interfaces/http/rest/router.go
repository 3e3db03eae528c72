package rest

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"storefront-backend/application/services"
	"storefront-backend/infrastructure/config"
	"storefront-backend/interfaces/http/rest/handlers"
	"storefront-backend/interfaces/http/rest/middleware"
	"storefront-backend/pkg/auth"
)

// Router creates and configures the HTTP router
type Router struct {
	cfg             *config.Config
	validator       *auth.JWTValidator
	tracking        *services.TrackingService
	recommendations *services.RecommendationService
	logger          *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	cfg *config.Config,
	validator *auth.JWTValidator,
	tracking *services.TrackingService,
	recommendations *services.RecommendationService,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:             cfg,
		validator:       validator,
		tracking:        tracking,
		recommendations: recommendations,
		logger:          logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   strings.Split(rt.cfg.AllowedOrigins, ","),
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health checks
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	// API v1 routes
	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.validator, middleware.RateLimits{
			PerIP:   rt.cfg.RateLimitPerMinute,
			PerUser: rt.cfg.RateLimitPerMinute,
		}, rt.logger))

		r.Route("/track", func(r chi.Router) {
			trackingHandler := handlers.NewTrackingHandler(rt.tracking, rt.logger)
			r.Post("/search", trackingHandler.RecordSearch)
			r.Post("/click", trackingHandler.RecordClick)
		})

		recommendationHandler := handlers.NewRecommendationHandler(rt.recommendations, rt.logger)
		r.Get("/recommendations", recommendationHandler.GetRecommendations)
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
