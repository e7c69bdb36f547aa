package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/letterduel/letterduel/internal/api/handler"
	"github.com/letterduel/letterduel/internal/api/middleware"
	"github.com/letterduel/letterduel/internal/api/sse"
	"github.com/letterduel/letterduel/internal/services/game"
	"github.com/letterduel/letterduel/internal/services/matchmaking"
	"github.com/letterduel/letterduel/internal/services/presence"
	"github.com/letterduel/letterduel/internal/services/stats"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger                *slog.Logger
	GameController        *game.Controller
	MatchmakingController *matchmaking.Controller
	StatsService          *stats.Service
	PresenceService       *presence.Service
	HubManager            *sse.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.HubManager, cfg.Logger)
	matchmakingHandler := handler.NewMatchmakingHandler(cfg.MatchmakingController, cfg.HubManager, cfg.Logger)
	playerHandler := handler.NewPlayerHandler(cfg.StatsService, cfg.PresenceService)

	// Create middleware
	identityMiddleware := middleware.Identity()
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Matchmaking routes
	mm := api.PathPrefix("/matchmaking").Subrouter()
	mm.Use(identityMiddleware)
	mm.HandleFunc("", matchmakingHandler.FindMatch).Methods(http.MethodPost)
	mm.HandleFunc("", matchmakingHandler.CancelSearch).Methods(http.MethodDelete)

	// Game routes
	games := api.PathPrefix("/games").Subrouter()
	games.Use(identityMiddleware)
	games.HandleFunc("/private", matchmakingHandler.CreatePrivate).Methods(http.MethodPost)
	games.HandleFunc("/join", matchmakingHandler.JoinByCode).Methods(http.MethodPost)
	games.HandleFunc("/{id}", gameHandler.Get).Methods(http.MethodGet)
	games.HandleFunc("/{id}", gameHandler.Cancel).Methods(http.MethodDelete)
	games.HandleFunc("/{id}/move", gameHandler.Move).Methods(http.MethodPost)
	games.HandleFunc("/{id}/pass", gameHandler.Pass).Methods(http.MethodPost)
	games.HandleFunc("/{id}/exchange", gameHandler.Exchange).Methods(http.MethodPost)
	games.HandleFunc("/{id}/pause", gameHandler.RequestPause).Methods(http.MethodPost)
	games.HandleFunc("/{id}/pause/answer", gameHandler.AnswerPause).Methods(http.MethodPost)
	games.HandleFunc("/{id}/resume", gameHandler.Resume).Methods(http.MethodPost)
	games.HandleFunc("/{id}/resign", gameHandler.Resign).Methods(http.MethodPost)
	games.HandleFunc("/{id}/time-expired", gameHandler.TimeExpired).Methods(http.MethodPost)
	games.HandleFunc("/{id}/summary", gameHandler.Summary).Methods(http.MethodGet)
	games.HandleFunc("/{id}/events", gameHandler.Events).Methods(http.MethodGet)

	// Player routes
	players := api.PathPrefix("/players").Subrouter()
	players.Use(identityMiddleware)
	players.HandleFunc("/{id}/stats", playerHandler.Stats).Methods(http.MethodGet)
	players.HandleFunc("/{id}/presence", playerHandler.Presence).Methods(http.MethodGet)

	// Health check endpoint (no identity required)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
