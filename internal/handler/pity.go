package handler

import (
	"net/http"

	"github.com/habidex/HabiDex_Go/internal/logger"
	"github.com/habidex/HabiDex_Go/internal/pity"
)

// ResetPityRequest represents the admin request to reset a user's pity state
type ResetPityRequest struct {
	UserID string `json:"user_id" validate:"required,max=100"`
}

// PityHandler handles pity-state HTTP requests
type PityHandler struct {
	pitySvc pity.Service
}

// NewPityHandler creates a new pity handler
func NewPityHandler(pitySvc pity.Service) *PityHandler {
	return &PityHandler{pitySvc: pitySvc}
}

// HandleGetPity returns a user's pity state and the modifiers it implies
// @Summary Get pity state
// @Tags pity
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse "Missing user ID"
// @Router /pity [get]
func (h *PityHandler) HandleGetPity(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	state, err := h.pitySvc.GetState(r.Context(), userID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Get pity state failed", "error", err, "user_id", userID)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	mods, err := h.pitySvc.Modifiers(r.Context(), userID)
	if err != nil {
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: map[string]interface{}{
		"state":     state,
		"modifiers": mods,
	}})
}

// HandleResetPity zeroes a user's pity counters
// @Summary Reset pity state
// @Description Admin operation. Clears streaks and the hard-pity counter but keeps the lifetime game count
// @Tags admin
// @Accept json
// @Produce json
// @Param request body ResetPityRequest true "Reset request"
// @Success 200 {object} DataResponse "The reset state"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /admin/pity/reset [post]
func (h *PityHandler) HandleResetPity(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req ResetPityRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Reset pity"); err != nil {
		return
	}

	state, err := h.pitySvc.Reset(r.Context(), req.UserID)
	if err != nil {
		log.Error("Reset pity failed", "error", err, "user_id", req.UserID)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	log.Info("Pity state reset", "user_id", req.UserID)
	respondJSON(w, http.StatusOK, DataResponse{Message: MsgPityResetSuccess, Data: state})
}
