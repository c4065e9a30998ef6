package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/habidex/HabiDex_Go/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent, all we can do is log.
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgPokemonNotFoundError = "Pokemon not found"
	ErrMsgBiomeNotFoundError   = "Biome not found"
	ErrMsgCardNotFoundError    = "Card not found"
	ErrMsgUserNotFoundError    = "User not found"

	ErrMsgSessionNotFoundError      = "Session not found"
	ErrMsgSessionCompletedError     = "Session is already completed"
	ErrMsgSessionNotTerminalError   = "Session is still in progress"
	ErrMsgRewardAlreadyClaimedError = "Reward has already been claimed"
	ErrMsgCardNotOfferedError       = "That card was not offered"

	ErrMsgInvalidTimeOfDayError = "Time of day must be day or night"
	ErrMsgPoolExhaustedError    = "Nothing can spawn there right now"
	ErrMsgDataIntegrityError    = "Card catalog is incomplete. Please contact an administrator"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP
// responses. It converts internal service errors to status codes and
// messages users can act upon.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrPokemonNotFound):
		return http.StatusBadRequest, ErrMsgPokemonNotFoundError
	case errors.Is(err, domain.ErrBiomeNotFound):
		return http.StatusBadRequest, ErrMsgBiomeNotFoundError
	case errors.Is(err, domain.ErrCardNotFound):
		return http.StatusBadRequest, ErrMsgCardNotFoundError
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, ErrMsgSessionNotFoundError
	case errors.Is(err, domain.ErrSessionCompleted):
		return http.StatusConflict, ErrMsgSessionCompletedError
	case errors.Is(err, domain.ErrSessionNotTerminal):
		return http.StatusConflict, ErrMsgSessionNotTerminalError
	case errors.Is(err, domain.ErrRewardAlreadyClaimed):
		return http.StatusConflict, ErrMsgRewardAlreadyClaimedError
	case errors.Is(err, domain.ErrCardNotOffered):
		return http.StatusBadRequest, ErrMsgCardNotOfferedError
	case errors.Is(err, domain.ErrInvalidTimeOfDay):
		return http.StatusBadRequest, ErrMsgInvalidTimeOfDayError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestSummary
	case errors.Is(err, domain.ErrPoolExhausted):
		return http.StatusConflict, ErrMsgPoolExhaustedError
	case errors.Is(err, domain.ErrDataIntegrity):
		return http.StatusInternalServerError, ErrMsgDataIntegrityError
	case errors.Is(err, domain.ErrDatabaseError):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != nil && unwrapped != err {
		return mapServiceErrorToUserMessage(unwrapped)
	}

	errMsg := err.Error()
	if errMsg != "" && len(errMsg) < 200 {
		return http.StatusInternalServerError, errMsg
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
