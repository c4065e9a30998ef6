package handler

import (
	"net/http"

	"github.com/habidex/HabiDex_Go/internal/logger"
	"github.com/habidex/HabiDex_Go/internal/repository"
)

// BiomeHandler handles biome catalog reads
type BiomeHandler struct {
	catalog repository.Catalog
}

// NewBiomeHandler creates a new biome handler
func NewBiomeHandler(catalog repository.Catalog) *BiomeHandler {
	return &BiomeHandler{catalog: catalog}
}

// HandleListBiomes lists all biomes available for session starts
// @Summary List biomes
// @Tags biomes
// @Produce json
// @Success 200 {object} DataResponse
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /biomes [get]
func (h *BiomeHandler) HandleListBiomes(w http.ResponseWriter, r *http.Request) {
	biomes, err := h.catalog.ListBiomes(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error("List biomes failed", "error", err)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: biomes})
}

// HandleListPokemon lists the guessable Pokemon catalog
// @Summary List Pokemon
// @Tags pokedex
// @Produce json
// @Success 200 {object} DataResponse
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /pokedex [get]
func (h *BiomeHandler) HandleListPokemon(w http.ResponseWriter, r *http.Request) {
	pokemon, err := h.catalog.ListPokemon(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Error("List pokemon failed", "error", err)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{Data: pokemon})
}
