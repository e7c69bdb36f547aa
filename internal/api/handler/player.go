package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/letterduel/letterduel/internal/api/response"
	"github.com/letterduel/letterduel/internal/model"
	"github.com/letterduel/letterduel/internal/services/presence"
	"github.com/letterduel/letterduel/internal/services/stats"
)

// PlayerHandler handles player stats and presence endpoints
type PlayerHandler struct {
	statsService    *stats.Service
	presenceService *presence.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(statsService *stats.Service, presenceService *presence.Service) *PlayerHandler {
	return &PlayerHandler{
		statsService:    statsService,
		presenceService: presenceService,
	}
}

// Stats handles GET /api/v1/players/{id}/stats
func (h *PlayerHandler) Stats(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["id"])

	playerStats, err := h.statsService.ForPlayer(r.Context(), playerID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerStatsFromModel(playerStats))
}

// Presence handles GET /api/v1/players/{id}/presence
func (h *PlayerHandler) Presence(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["id"])

	p, err := h.presenceService.Get(r.Context(), playerID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PresenceFromModel(p))
}
