package matchmaking

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/letterduel/letterduel/internal/dependencies/clock"
	"github.com/letterduel/letterduel/internal/model"
	"github.com/letterduel/letterduel/internal/services/game"
	"github.com/letterduel/letterduel/internal/services/presence"
	"github.com/letterduel/letterduel/internal/storage"
)

// Config holds matchmaking settings
type Config struct {
	// RetryDelay separates the two searcher lookups in FindMatch, narrowing
	// the window where two players create waiting games simultaneously
	RetryDelay time.Duration
	// StaleAfter is the age past which abandoned requests are purged
	StaleAfter time.Duration
}

// DefaultConfig returns sensible matchmaking defaults
func DefaultConfig() Config {
	return Config{
		RetryDelay: 2 * time.Second,
		StaleAfter: 10 * time.Minute,
	}
}

// MatchResult is the outcome of a matchmaking attempt
type MatchResult struct {
	Game    *model.Game
	Matched bool // False while still waiting for an opponent
}

// Controller pairs waiting players and manages private join-code games
type Controller struct {
	storage        storage.Storage
	gameController *game.Controller
	presence       *presence.Service
	clock          clock.Clock
	logger         *slog.Logger
	cfg            Config

	// sleep is swapped out in tests
	sleep func(time.Duration)
}

// NewController creates a new matchmaking controller
func NewController(
	storage storage.Storage,
	gameController *game.Controller,
	presence *presence.Service,
	clock clock.Clock,
	cfg Config,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:        storage,
		gameController: gameController,
		presence:       presence,
		clock:          clock,
		cfg:            cfg,
		logger:         logger,
		sleep:          time.Sleep,
	}
}

// FindMatch pairs the player with the first available searcher. If no
// opponent is waiting it creates a game and checks once more after a short
// delay; finding one then, it joins the other player's game and cancels
// its own rather than leaving two orphaned waiting games.
func (c *Controller) FindMatch(ctx context.Context, player model.Player) (*MatchResult, error) {
	if _, err := c.storage.GetMatchmakingRequest(ctx, player.ID); err == nil {
		return nil, model.ErrAlreadySearching
	} else if !errors.Is(err, model.ErrRequestNotFound) {
		return nil, err
	}

	c.presence.SetOnline(ctx, player.ID)

	req := &model.MatchmakingRequest{
		UserID:      player.ID,
		DisplayName: player.DisplayName,
		Status:      model.MatchmakingSearching,
		CreatedAt:   c.clock.Now(),
	}
	if err := c.storage.SaveMatchmakingRequest(ctx, req); err != nil {
		return nil, err
	}

	// First lookup: join an existing searcher's game outright
	if result, err := c.tryJoinWaiting(ctx, player, req, model.GameID("")); err != nil || result != nil {
		return result, err
	}

	// Nobody waiting: put up our own game
	own, err := c.gameController.CreateGame(ctx, player, false)
	if err != nil {
		c.abortRequest(ctx, player.ID)
		return nil, err
	}
	req.GameID = own.ID
	if err := c.storage.SaveMatchmakingRequest(ctx, req); err != nil {
		return nil, err
	}

	// Second lookup after a fixed delay, in case another player created a
	// game in the same moment
	c.sleep(c.cfg.RetryDelay)
	if result, err := c.tryJoinWaiting(ctx, player, req, own.ID); err != nil || result != nil {
		return result, err
	}

	c.logger.Info("matchmaking waiting for opponent",
		slog.String("player_id", string(player.ID)),
		slog.String("game_id", string(own.ID)),
	)

	return &MatchResult{Game: own, Matched: false}, nil
}

// tryJoinWaiting attempts to join another searcher's waiting game. Returns
// (nil, nil) if no candidate exists.
func (c *Controller) tryJoinWaiting(ctx context.Context, player model.Player, req *model.MatchmakingRequest, own model.GameID) (*MatchResult, error) {
	candidate, err := c.storage.FindWaitingGame(ctx, player.ID)
	if err != nil {
		return nil, err
	}
	if candidate == nil {
		return nil, nil
	}

	joined, err := c.gameController.JoinGame(ctx, candidate.ID, player)
	if err != nil {
		// Someone else got the slot between lookup and join
		if errors.Is(err, model.ErrGameNotJoinable) {
			return nil, nil
		}
		return nil, err
	}

	// Abandon our own waiting game rather than orphaning it
	if own != "" {
		if _, err := c.gameController.CancelWaiting(ctx, own, player.ID); err != nil {
			c.logger.Warn("failed to cancel own waiting game",
				slog.String("game_id", string(own)),
				slog.String("error", err.Error()),
			)
		}
	}

	opponent := joined.Opponent(player.ID)
	req.Status = model.MatchmakingMatched
	req.GameID = joined.ID
	req.OpponentID = opponent.ID

	// Matched requests are ephemeral; clean up both sides
	_ = c.storage.DeleteMatchmakingRequest(ctx, player.ID)
	_ = c.storage.DeleteMatchmakingRequest(ctx, opponent.ID)

	c.logger.Info("players matched",
		slog.String("game_id", string(joined.ID)),
		slog.String("player_id", string(player.ID)),
		slog.String("opponent_id", string(opponent.ID)),
	)

	return &MatchResult{Game: joined, Matched: true}, nil
}

// CancelSearch withdraws a matchmaking request and cancels the player's
// waiting game, if any
func (c *Controller) CancelSearch(ctx context.Context, playerID model.PlayerID) error {
	req, err := c.storage.GetMatchmakingRequest(ctx, playerID)
	if err != nil {
		return err
	}

	if req.GameID != "" {
		if _, err := c.gameController.CancelWaiting(ctx, req.GameID, playerID); err != nil &&
			!errors.Is(err, model.ErrGameNotFound) && !errors.Is(err, model.ErrGameNotJoinable) {
			return err
		}
	}

	if err := c.storage.DeleteMatchmakingRequest(ctx, playerID); err != nil {
		return err
	}

	c.presence.SetOffline(ctx, playerID)

	c.logger.Info("matchmaking cancelled",
		slog.String("player_id", string(playerID)),
	)

	return nil
}

// CreatePrivate creates a join-code game for inviting a specific opponent
func (c *Controller) CreatePrivate(ctx context.Context, player model.Player) (*model.Game, error) {
	g, err := c.gameController.CreateGame(ctx, player, true)
	if err != nil {
		return nil, err
	}
	c.presence.SetOnline(ctx, player.ID)
	return g, nil
}

// JoinByCode joins a private game by its join code
func (c *Controller) JoinByCode(ctx context.Context, code string, player model.Player) (*model.Game, error) {
	return c.gameController.JoinByCode(ctx, code, player)
}

// CleanupStale purges matchmaking requests older than the configured
// threshold and clears their presence. Returns the number purged.
func (c *Controller) CleanupStale(ctx context.Context) (int, error) {
	requests, err := c.storage.ListMatchmakingRequests(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := c.clock.Now().Add(-c.cfg.StaleAfter)
	purged := 0
	for _, req := range requests {
		if req.CreatedAt.After(cutoff) {
			continue
		}
		if err := c.CancelSearch(ctx, req.UserID); err != nil &&
			!errors.Is(err, model.ErrRequestNotFound) {
			c.logger.Warn("failed to purge stale matchmaking request",
				slog.String("player_id", string(req.UserID)),
				slog.String("error", err.Error()),
			)
			continue
		}
		purged++
	}

	if purged > 0 {
		c.logger.Info("stale matchmaking requests purged", slog.Int("count", purged))
	}

	return purged, nil
}

func (c *Controller) abortRequest(ctx context.Context, playerID model.PlayerID) {
	_ = c.storage.DeleteMatchmakingRequest(ctx, playerID)
}

// SetSleepForTesting replaces the inter-lookup delay (tests only)
func (c *Controller) SetSleepForTesting(sleep func(time.Duration)) {
	c.sleep = sleep
}
