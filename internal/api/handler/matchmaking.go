package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/letterduel/letterduel/internal/api/middleware"
	"github.com/letterduel/letterduel/internal/api/request"
	"github.com/letterduel/letterduel/internal/api/response"
	"github.com/letterduel/letterduel/internal/api/sse"
	"github.com/letterduel/letterduel/internal/model"
	"github.com/letterduel/letterduel/internal/services/matchmaking"
)

// MatchmakingHandler handles matchmaking and private-game endpoints
type MatchmakingHandler struct {
	controller  *matchmaking.Controller
	broadcaster *sse.Broadcaster
}

// NewMatchmakingHandler creates a new matchmaking handler
func NewMatchmakingHandler(controller *matchmaking.Controller, hubManager *sse.HubManager, logger *slog.Logger) *MatchmakingHandler {
	var broadcaster *sse.Broadcaster
	if hubManager != nil {
		broadcaster = sse.NewBroadcaster(hubManager, logger)
	}
	return &MatchmakingHandler{
		controller:  controller,
		broadcaster: broadcaster,
	}
}

func (h *MatchmakingHandler) publish(gameID model.GameID, eventType model.EventType, playerID model.PlayerID) {
	if h.broadcaster != nil {
		h.broadcaster.Publish(gameID, eventType, playerID, nil)
	}
}

// identifiedPlayer merges the context identity with an optional display
// name override from the request body
func identifiedPlayer(r *http.Request, displayName string) model.Player {
	player := *middleware.MustGetPlayer(r.Context())
	if name := strings.TrimSpace(displayName); name != "" {
		player.DisplayName = name
	}
	return player
}

// FindMatch handles POST /api/v1/matchmaking
func (h *MatchmakingHandler) FindMatch(w http.ResponseWriter, r *http.Request) {
	var req request.FindMatchRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, NewInvalidRequestError("Invalid request body"))
			return
		}
	}
	player := identifiedPlayer(r, req.DisplayName)

	result, err := h.controller.FindMatch(r.Context(), player)
	if err != nil {
		WriteError(w, err)
		return
	}

	if !result.Matched {
		response.JSON(w, http.StatusAccepted, response.MatchResult{Status: "searching"})
		return
	}

	h.publish(result.Game.ID, model.EventPlayerJoined, player.ID)

	state := response.GameStateFromModel(result.Game, player.ID)
	response.JSON(w, http.StatusOK, response.MatchResult{Status: "matched", Game: &state})
}

// CancelSearch handles DELETE /api/v1/matchmaking
func (h *MatchmakingHandler) CancelSearch(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	if err := h.controller.CancelSearch(r.Context(), player.ID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// CreatePrivate handles POST /api/v1/games/private
func (h *MatchmakingHandler) CreatePrivate(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePrivateRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, NewInvalidRequestError("Invalid request body"))
			return
		}
	}
	player := identifiedPlayer(r, req.DisplayName)

	g, err := h.controller.CreatePrivate(r.Context(), player)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameStateFromModel(g, player.ID))
}

// JoinByCode handles POST /api/v1/games/join
func (h *MatchmakingHandler) JoinByCode(w http.ResponseWriter, r *http.Request) {
	var req request.JoinByCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		WriteError(w, NewInvalidRequestError("Join code is required"))
		return
	}
	player := identifiedPlayer(r, req.DisplayName)

	g, err := h.controller.JoinByCode(r.Context(), req.Code, player)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.publish(g.ID, model.EventPlayerJoined, player.ID)

	response.JSON(w, http.StatusOK, response.GameStateFromModel(g, player.ID))
}
