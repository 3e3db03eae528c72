package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"storefront-backend/application/services"
	"storefront-backend/pkg/auth"
	"storefront-backend/pkg/common"
	apperrors "storefront-backend/pkg/errors"
)

// RecommendationHandler handles recommendation requests
type RecommendationHandler struct {
	recommendations *services.RecommendationService
	logger          *zap.Logger
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(recommendations *services.RecommendationService, logger *zap.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		recommendations: recommendations,
		logger:          logger,
	}
}

// GetRecommendations handles GET /recommendations
func (h *RecommendationHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, apperrors.NewUnauthenticatedError(""))
		return
	}

	result, err := h.recommendations.RecommendForUser(r.Context(), user.UserID)
	if err != nil {
		// Infrastructure detail goes to the log; the client gets the kind
		h.logger.Error("recommendation request failed",
			zap.String("user_id", user.UserID),
			zap.Error(err),
		)
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}
