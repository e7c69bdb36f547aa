package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"unicode"

	"github.com/gorilla/mux"

	"github.com/letterduel/letterduel/internal/api/middleware"
	"github.com/letterduel/letterduel/internal/api/request"
	"github.com/letterduel/letterduel/internal/api/response"
	"github.com/letterduel/letterduel/internal/api/sse"
	"github.com/letterduel/letterduel/internal/model"
	"github.com/letterduel/letterduel/internal/services/game"
	"github.com/letterduel/letterduel/internal/services/rules"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	gameController *game.Controller
	hubManager     *sse.HubManager
	broadcaster    *sse.Broadcaster
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController *game.Controller, hubManager *sse.HubManager, logger *slog.Logger) *GameHandler {
	var broadcaster *sse.Broadcaster
	if hubManager != nil {
		broadcaster = sse.NewBroadcaster(hubManager, logger)
	}
	return &GameHandler{
		gameController: gameController,
		hubManager:     hubManager,
		broadcaster:    broadcaster,
	}
}

func (h *GameHandler) publish(gameID model.GameID, eventType model.EventType, playerID model.PlayerID, payload any) {
	if h.broadcaster != nil {
		h.broadcaster.Publish(gameID, eventType, playerID, payload)
	}
}

// publishIfFinished emits a terminal event when a state change ended the game
func (h *GameHandler) publishIfFinished(g *model.Game) {
	if !g.IsFinished() || g.EndReason == model.EndReasonCancelled {
		return
	}
	h.publish(g.ID, model.EventGameFinished, g.WinnerID, model.GameFinishedPayload{
		WinnerID:  g.WinnerID,
		EndReason: g.EndReason,
	})
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	gameID := model.GameID(mux.Vars(r)["id"])

	g, err := h.gameController.GetGame(r.Context(), gameID)
	if err != nil {
		WriteError(w, err)
		return
	}
	if !g.HasPlayer(player.ID) {
		WriteError(w, model.ErrNotInGame)
		return
	}

	response.JSON(w, http.StatusOK, response.GameStateFromModel(g, player.ID))
}

// Move handles POST /api/v1/games/{id}/move
func (h *GameHandler) Move(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	gameID := model.GameID(mux.Vars(r)["id"])

	var req request.SubmitMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	placements := make([]rules.Placement, 0, len(req.Placements))
	for _, p := range req.Placements {
		letter, ok := parseLetter(p.Letter)
		if !ok {
			WriteError(w, model.ErrInvalidLetter)
			return
		}
		placements = append(placements, rules.Placement{
			Pos:    model.Position{Row: p.Row, Col: p.Col},
			Letter: letter,
		})
	}

	g, result, err := h.gameController.SubmitMove(r.Context(), gameID, player.ID, placements)
	if err != nil {
		WriteError(w, err)
		return
	}

	words := make([]string, 0, len(result.Words))
	for _, ws := range result.Words {
		words = append(words, ws.Word)
	}
	h.publish(g.ID, model.EventMovePlayed, player.ID, model.MovePlayedPayload{
		Words:    words,
		Score:    result.TotalScore,
		NextTurn: g.CurrentTurnPlayerID,
		BagCount: len(g.Bag),
	})
	h.publishIfFinished(g)

	scores := make([]response.WordScore, 0, len(result.Words))
	for _, ws := range result.Words {
		scores = append(scores, response.WordScore{Word: ws.Word, Score: ws.Score})
	}
	response.JSON(w, http.StatusOK, response.MoveResult{
		PrimaryWord: result.PrimaryWord,
		Words:       scores,
		TotalScore:  result.TotalScore,
		Game:        response.GameStateFromModel(g, player.ID),
	})
}

// Pass handles POST /api/v1/games/{id}/pass
func (h *GameHandler) Pass(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	gameID := model.GameID(mux.Vars(r)["id"])

	g, err := h.gameController.Pass(r.Context(), gameID, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.publish(g.ID, model.EventTurnPassed, player.ID, nil)
	h.publishIfFinished(g)

	response.JSON(w, http.StatusOK, response.GameStateFromModel(g, player.ID))
}

// Exchange handles POST /api/v1/games/{id}/exchange
func (h *GameHandler) Exchange(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	gameID := model.GameID(mux.Vars(r)["id"])

	var req request.ExchangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	letters := make([]rune, 0, len(req.Letters))
	for _, ch := range strings.ToUpper(strings.TrimSpace(req.Letters)) {
		if ch < 'A' || ch > 'Z' {
			WriteError(w, model.ErrInvalidLetter)
			return
		}
		letters = append(letters, ch)
	}

	g, err := h.gameController.ExchangeTiles(r.Context(), gameID, player.ID, letters)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.publish(g.ID, model.EventTilesExchanged, player.ID, nil)

	response.JSON(w, http.StatusOK, response.GameStateFromModel(g, player.ID))
}

// RequestPause handles POST /api/v1/games/{id}/pause
func (h *GameHandler) RequestPause(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	gameID := model.GameID(mux.Vars(r)["id"])

	g, err := h.gameController.RequestPause(r.Context(), gameID, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.publish(g.ID, model.EventPauseRequested, player.ID, nil)

	response.JSON(w, http.StatusOK, response.GameStateFromModel(g, player.ID))
}

// AnswerPause handles POST /api/v1/games/{id}/pause/answer
func (h *GameHandler) AnswerPause(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	gameID := model.GameID(mux.Vars(r)["id"])

	var req request.AnswerPauseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	g, err := h.gameController.AnswerPause(r.Context(), gameID, player.ID, req.Accept)
	if err != nil {
		WriteError(w, err)
		return
	}

	if req.Accept {
		h.publish(g.ID, model.EventPauseAccepted, player.ID, nil)
	} else {
		h.publish(g.ID, model.EventPauseRejected, player.ID, nil)
	}

	response.JSON(w, http.StatusOK, response.GameStateFromModel(g, player.ID))
}

// Resume handles POST /api/v1/games/{id}/resume
func (h *GameHandler) Resume(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	gameID := model.GameID(mux.Vars(r)["id"])

	g, err := h.gameController.Resume(r.Context(), gameID, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.publish(g.ID, model.EventGameResumed, player.ID, nil)

	response.JSON(w, http.StatusOK, response.GameStateFromModel(g, player.ID))
}

// Resign handles POST /api/v1/games/{id}/resign
func (h *GameHandler) Resign(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	gameID := model.GameID(mux.Vars(r)["id"])

	g, err := h.gameController.Resign(r.Context(), gameID, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	if g.ResignedPlayerID == player.ID {
		h.publish(g.ID, model.EventPlayerResigned, player.ID, nil)
		h.publishIfFinished(g)
	}

	response.JSON(w, http.StatusOK, response.GameStateFromModel(g, player.ID))
}

// TimeExpired handles POST /api/v1/games/{id}/time-expired
// Either participant may report the expiry; the server clock decides.
func (h *GameHandler) TimeExpired(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	gameID := model.GameID(mux.Vars(r)["id"])

	g, err := h.gameController.GetGame(r.Context(), gameID)
	if err != nil {
		WriteError(w, err)
		return
	}
	if !g.HasPlayer(player.ID) {
		WriteError(w, model.ErrNotInGame)
		return
	}

	expired := g.CurrentTurnPlayerID

	g, err = h.gameController.TimeExpired(r.Context(), gameID)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.publish(g.ID, model.EventTimerExpired, expired, nil)
	h.publishIfFinished(g)

	response.JSON(w, http.StatusOK, response.GameStateFromModel(g, player.ID))
}

// Cancel handles DELETE /api/v1/games/{id}
// Only valid while the game is waiting for an opponent.
func (h *GameHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	gameID := model.GameID(mux.Vars(r)["id"])

	g, err := h.gameController.CancelWaiting(r.Context(), gameID, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameStateFromModel(g, player.ID))
}

// Summary handles GET /api/v1/games/{id}/summary
func (h *GameHandler) Summary(w http.ResponseWriter, r *http.Request) {
	gameID := model.GameID(mux.Vars(r)["id"])

	summary, err := h.gameController.Summary(r.Context(), gameID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameSummaryFromModel(summary))
}

// Events handles GET /api/v1/games/{id}/events (SSE stream)
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	gameID := model.GameID(mux.Vars(r)["id"])

	g, err := h.gameController.GetGame(r.Context(), gameID)
	if err != nil {
		WriteError(w, err)
		return
	}
	if !g.HasPlayer(player.ID) {
		WriteError(w, model.ErrNotInGame)
		return
	}

	hub := h.hubManager.GetOrCreateHub(gameID)
	sse.ServeSSE(w, r, hub, player.ID)
}

// parseLetter validates a single A-Z letter from a request
func parseLetter(s string) (rune, bool) {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) != 1 {
		return 0, false
	}
	ch := unicode.ToUpper(runes[0])
	if ch < 'A' || ch > 'Z' {
		return 0, false
	}
	return ch, true
}
