package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/habidex/HabiDex_Go/internal/domain"
	"github.com/habidex/HabiDex_Go/internal/game"
	"github.com/habidex/HabiDex_Go/internal/logger"
)

func domainTimeOfDay(s string) domain.TimeOfDay {
	return domain.TimeOfDay(strings.ToLower(s))
}

// StartSessionRequest represents the request to start a new game session
type StartSessionRequest struct {
	UserID    string `json:"user_id" validate:"required,max=100"`
	BiomeID   string `json:"biome_id" validate:"required,max=100"`
	TimeOfDay string `json:"time_of_day" validate:"required,timeofday"`
}

// SubmitGuessRequest represents one guess against an active session.
// Exactly one of DexNumber or Name should be set; Name wins when both are.
type SubmitGuessRequest struct {
	SessionID string `json:"session_id" validate:"required,uuid"`
	DexNumber int    `json:"dex_number" validate:"omitempty,gte=1"`
	Name      string `json:"name" validate:"omitempty,max=100"`
}

// RewardRequest represents the request for a terminal session's card offer
type RewardRequest struct {
	SessionID string `json:"session_id" validate:"required,uuid"`
}

// CaptureRequest represents the user's pick from the offered cards
type CaptureRequest struct {
	SessionID string `json:"session_id" validate:"required,uuid"`
	CardID    string `json:"card_id" validate:"required,uuid"`
}

// GameHandler handles game-related HTTP requests
type GameHandler struct {
	gameSvc game.Service
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameSvc game.Service) *GameHandler {
	return &GameHandler{gameSvc: gameSvc}
}

// HandleStartSession starts a new daily game session
// @Summary Start a game session
// @Description Selects a hidden answer from the biome's spawn table and opens a session
// @Tags game
// @Accept json
// @Produce json
// @Param request body StartSessionRequest true "Start session request"
// @Success 201 {object} domain.GameSession "Session created"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 409 {object} ErrorResponse "Nothing can spawn in that biome"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /game/start [post]
func (h *GameHandler) HandleStartSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req StartSessionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Start session"); err != nil {
		return
	}

	log.Info("Start session request received", "user_id", req.UserID, "biome_id", req.BiomeID)

	session, err := h.gameSvc.StartSession(r.Context(), req.UserID, req.BiomeID, domainTimeOfDay(req.TimeOfDay))
	if err != nil {
		log.Error("Start session failed", "error", err, "user_id", req.UserID, "biome_id", req.BiomeID)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusCreated, session)
}

// HandleSubmitGuess submits one guess against an active session
// @Summary Submit a guess
// @Description Compares the guessed Pokemon to the hidden answer and returns per-attribute feedback
// @Tags game
// @Accept json
// @Produce json
// @Param request body SubmitGuessRequest true "Guess request"
// @Success 200 {object} game.GuessResult "Feedback for the guess"
// @Failure 400 {object} ErrorResponse "Invalid request or unknown Pokemon"
// @Failure 409 {object} ErrorResponse "Session already completed"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /game/guess [post]
func (h *GameHandler) HandleSubmitGuess(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req SubmitGuessRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Submit guess"); err != nil {
		return
	}

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidSessionID)
		return
	}

	var result *game.GuessResult
	if req.Name != "" {
		result, err = h.gameSvc.SubmitGuessByName(r.Context(), sessionID, req.Name)
	} else {
		result, err = h.gameSvc.SubmitGuess(r.Context(), sessionID, req.DexNumber)
	}
	if err != nil {
		log.Error("Submit guess failed", "error", err, "session_id", sessionID)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	log.Info("Guess submitted",
		"session_id", sessionID, "guesses_used", result.GuessesUsed,
		"terminal", result.Terminal, "won", result.Won)

	respondJSON(w, http.StatusOK, result)
}

// HandleGetSession returns the current state of a session
// @Summary Get a session
// @Tags game
// @Produce json
// @Param session_id query string true "Session ID"
// @Success 200 {object} domain.GameSession
// @Failure 400 {object} ErrorResponse "Invalid session ID"
// @Failure 404 {object} ErrorResponse "Session not found"
// @Router /game/session [get]
func (h *GameHandler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	idParam, ok := GetQueryParam(r, w, "session_id")
	if !ok {
		return
	}
	sessionID, err := uuid.Parse(idParam)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidSessionID)
		return
	}

	session, err := h.gameSvc.GetSession(r.Context(), sessionID)
	if err != nil {
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, session)
}

// HandleReward returns the three-card offer for a terminal session
// @Summary Get the card offer for a finished game
// @Description Generates (or replays) the three-card offer earned by the session's tier
// @Tags game
// @Accept json
// @Produce json
// @Param request body RewardRequest true "Reward request"
// @Success 200 {object} game.RewardResult "The card offer"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 409 {object} ErrorResponse "Session is still in progress"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /game/reward [post]
func (h *GameHandler) HandleReward(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req RewardRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Reward"); err != nil {
		return
	}

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidSessionID)
		return
	}

	result, err := h.gameSvc.CompleteAndReward(r.Context(), sessionID)
	if err != nil {
		log.Error("Reward generation failed", "error", err, "session_id", sessionID)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	log.Info("Offer returned",
		"session_id", sessionID, "cards", len(result.Cards),
		"guarantee_ceiling", result.PityApplied.GuaranteeCeiling)

	respondJSON(w, http.StatusOK, result)
}

// HandleCapture commits the user's pick from the offered cards
// @Summary Capture an offered card
// @Description Adds the chosen card to the collection and advances the pity state
// @Tags game
// @Accept json
// @Produce json
// @Param request body CaptureRequest true "Capture request"
// @Success 200 {object} game.CaptureResult "The captured card and updated pity state"
// @Failure 400 {object} ErrorResponse "Invalid request or card not offered"
// @Failure 409 {object} ErrorResponse "Reward already claimed"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /game/capture [post]
func (h *GameHandler) HandleCapture(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req CaptureRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Capture"); err != nil {
		return
	}

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidSessionID)
		return
	}
	cardID, err := uuid.Parse(req.CardID)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidCardID)
		return
	}

	result, err := h.gameSvc.CaptureCard(r.Context(), sessionID, cardID)
	if err != nil {
		log.Error("Capture failed", "error", err, "session_id", sessionID, "card_id", cardID)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// HandleGetCollection returns a user's captured cards
// @Summary Get a user's collection
// @Tags collection
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse "Missing user ID"
// @Router /collection [get]
func (h *GameHandler) HandleGetCollection(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	entries, err := h.gameSvc.ListCollection(r.Context(), userID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Get collection failed", "error", err, "user_id", userID)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: entries})
}
