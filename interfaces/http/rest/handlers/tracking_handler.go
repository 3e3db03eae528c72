package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"storefront-backend/application/services"
	"storefront-backend/domain/interaction"
	"storefront-backend/pkg/auth"
	"storefront-backend/pkg/common"
	apperrors "storefront-backend/pkg/errors"
	"storefront-backend/pkg/utils"
)

const maxBodyBytes = 64 * 1024

// TrackingHandler handles interaction tracking requests
type TrackingHandler struct {
	tracking *services.TrackingService
	logger   *zap.Logger
}

// NewTrackingHandler creates a new tracking handler
func NewTrackingHandler(tracking *services.TrackingService, logger *zap.Logger) *TrackingHandler {
	return &TrackingHandler{
		tracking: tracking,
		logger:   logger,
	}
}

// RecordSearchRequest represents the request body for tracking a search
type RecordSearchRequest struct {
	Query string `json:"query" validate:"required,max=1000"`
}

// RecordEventResponse acknowledges a tracked interaction
type RecordEventResponse struct {
	EventID string `json:"event_id"`
}

// RecordSearch handles POST /track/search
func (h *TrackingHandler) RecordSearch(w http.ResponseWriter, r *http.Request) {
	var req RecordSearchRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, string(apperrors.ErrorTypeInvalidArgument), "invalid request body")
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, string(apperrors.ErrorTypeInvalidArgument), err.Error())
		return
	}

	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, apperrors.NewUnauthenticatedError(""))
		return
	}

	eventID, err := h.tracking.RecordSearch(r.Context(), user.UserID, req.Query)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusAccepted, RecordEventResponse{EventID: eventID})
}

// RecordClick handles POST /track/click
func (h *TrackingHandler) RecordClick(w http.ResponseWriter, r *http.Request) {
	var req interaction.ClickedProduct
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, string(apperrors.ErrorTypeInvalidArgument), "invalid request body")
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, string(apperrors.ErrorTypeInvalidArgument), err.Error())
		return
	}

	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondAppError(w, apperrors.NewUnauthenticatedError(""))
		return
	}

	eventID, err := h.tracking.RecordClick(r.Context(), user.UserID, req)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusAccepted, RecordEventResponse{EventID: eventID})
}
