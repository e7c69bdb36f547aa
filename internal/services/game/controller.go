package game

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/letterduel/letterduel/internal/dependencies/clock"
	"github.com/letterduel/letterduel/internal/dependencies/random"
	"github.com/letterduel/letterduel/internal/model"
	"github.com/letterduel/letterduel/internal/services/dictionary"
	"github.com/letterduel/letterduel/internal/services/presence"
	"github.com/letterduel/letterduel/internal/services/rules"
	"github.com/letterduel/letterduel/internal/services/tilebag"
	"github.com/letterduel/letterduel/internal/storage"
)

const (
	// JoinCodeLength is the length of generated join codes
	JoinCodeLength = 6
	// JoinCodeAlphabet is the characters used in join codes
	JoinCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// DoublePassThreshold ends the game when both players reach it
	DoublePassThreshold = 2
)

// Config holds game rule settings
type Config struct {
	TurnDuration time.Duration
	JoinCodeTTL  time.Duration
}

// DefaultConfig returns the standard rule settings
func DefaultConfig() Config {
	return Config{
		TurnDuration: 2 * time.Minute,
		JoinCodeTTL:  30 * time.Minute,
	}
}

// Controller owns the game state machine. Every transition runs inside a
// storage transaction keyed by game ID, so validation always sees the
// latest document and a rejection leaves it untouched.
type Controller struct {
	storage    storage.Storage
	tilebag    *tilebag.Service
	dictionary *dictionary.Service
	presence   *presence.Service
	clock      clock.Clock
	random     random.Random
	logger     *slog.Logger
	cfg        Config
}

// NewController creates a new game controller
func NewController(
	storage storage.Storage,
	tilebag *tilebag.Service,
	dictionary *dictionary.Service,
	presence *presence.Service,
	clock clock.Clock,
	random random.Random,
	cfg Config,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:    storage,
		tilebag:    tilebag,
		dictionary: dictionary,
		presence:   presence,
		clock:      clock,
		random:     random,
		cfg:        cfg,
		logger:     logger,
	}
}

// CreateGame creates a game in the waiting state with the creator's rack
// drawn. The second rack and turn assignment are finalized at join.
func (c *Controller) CreateGame(ctx context.Context, host model.Player, private bool) (*model.Game, error) {
	now := c.clock.Now()

	bag := c.tilebag.NewShuffledBag()
	rack, bag := tilebag.Draw(bag, model.RackSize)

	game := &model.Game{
		ID:     model.GameID(uuid.NewString()),
		Status: model.GameStatusWaiting,
		Player1: &model.PlayerState{
			ID:          host.ID,
			DisplayName: host.DisplayName,
			Rack:        rack,
		},
		Board:               model.NewBoard(),
		Bag:                 bag,
		TurnDurationSeconds: int(c.cfg.TurnDuration.Seconds()),
		PauseStatus:         model.PauseNone,
		Private:             private,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if private {
		game.JoinCode = c.random.String(JoinCodeLength, JoinCodeAlphabet)
		game.JoinCodeExpiresAt = now.Add(c.cfg.JoinCodeTTL)
	}

	if err := c.storage.CreateGame(ctx, game); err != nil {
		c.logger.Error("failed to create game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(game.ID)),
		slog.String("player_id", string(host.ID)),
		slog.Bool("private", private),
	)

	return game, nil
}

// GetGame retrieves a game by ID
func (c *Controller) GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, gameID)
}

// JoinGame attaches the second player; the game moves to playing, the
// starting player is chosen uniformly at random, and the turn timer starts
func (c *Controller) JoinGame(ctx context.Context, gameID model.GameID, player model.Player) (*model.Game, error) {
	game, err := c.storage.UpdateGame(ctx, gameID, func(g *model.Game) error {
		now := c.clock.Now()
		if !g.JoinableAt(now) {
			if g.Private && g.Status == model.GameStatusWaiting && now.After(g.JoinCodeExpiresAt) {
				return model.ErrJoinCodeExpired
			}
			return model.ErrGameNotJoinable
		}
		if g.Player1.ID == player.ID {
			return model.ErrCannotJoinOwnGame
		}

		rack, bag := tilebag.Draw(g.Bag, model.RackSize)
		g.Bag = bag
		g.Player2 = &model.PlayerState{
			ID:          player.ID,
			DisplayName: player.DisplayName,
			Rack:        rack,
		}

		starters := [2]model.PlayerID{g.Player1.ID, g.Player2.ID}
		g.CurrentTurnPlayerID = starters[c.random.Intn(2)]

		g.Status = model.GameStatusPlaying
		g.StartedAt = now
		g.TimerEndsAt = now.Add(c.turnDuration(g))
		g.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.presence.SetInGame(ctx, game.Player1.ID, game.ID)
	c.presence.SetInGame(ctx, game.Player2.ID, game.ID)

	c.logger.Info("player joined game",
		slog.String("game_id", string(game.ID)),
		slog.String("player_id", string(player.ID)),
		slog.String("first_turn", string(game.CurrentTurnPlayerID)),
	)

	return game, nil
}

// JoinByCode joins a private waiting game by its join code
func (c *Controller) JoinByCode(ctx context.Context, code string, player model.Player) (*model.Game, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	game, err := c.storage.FindGameByJoinCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if game.JoinCode != code {
		return nil, model.ErrJoinCodeMismatch
	}
	return c.JoinGame(ctx, game.ID, player)
}

// SubmitMove validates and applies a move. On success the placed cells are
// locked, the rack replenished from the bag, score and highest word
// updated, the pass counter reset, and the turn switched with a fresh
// timer. Any rejection leaves the stored game untouched.
//
// Dictionary lookups hit the word cache in storage and possibly an
// upstream API, so they run against a snapshot before the game
// transaction. The board can only change together with a turn flip, which
// the ownership re-check inside the transaction rejects, so the approved
// word set is still the authoritative one when the move applies.
func (c *Controller) SubmitMove(ctx context.Context, gameID model.GameID, playerID model.PlayerID, placements []rules.Placement) (*model.Game, *rules.MoveResult, error) {
	letters := make([]rune, len(placements))
	for i, p := range placements {
		letters[i] = p.Letter
	}

	snapshot, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, nil, err
	}
	if err := c.requireTurn(snapshot, playerID); err != nil {
		return nil, nil, err
	}
	if !snapshot.PlayerState(playerID).RackContains(letters) {
		return nil, nil, model.ErrTilesNotInRack
	}

	previewed, err := rules.AnalyzeMove(snapshot.Board, placements)
	if err != nil {
		return nil, nil, err
	}
	approved := make(map[string]bool, len(previewed.Words))
	for _, ws := range previewed.Words {
		if !c.dictionary.IsValidWord(ctx, ws.Word) {
			return nil, nil, model.ErrNotAWord
		}
		approved[ws.Word] = true
	}

	var result *rules.MoveResult

	game, err := c.storage.UpdateGame(ctx, gameID, func(g *model.Game) error {
		if err := c.requireTurn(g, playerID); err != nil {
			return err
		}
		player := g.PlayerState(playerID)
		if !player.RackContains(letters) {
			return model.ErrTilesNotInRack
		}

		analyzed, err := rules.AnalyzeMove(g.Board, placements)
		if err != nil {
			return err
		}
		for _, ws := range analyzed.Words {
			if !approved[ws.Word] {
				return model.ErrNotAWord
			}
		}
		result = analyzed

		for _, p := range placements {
			g.Board.Lock(p.Pos, p.Letter)
		}
		player.RemoveFromRack(letters)
		player.Rack, g.Bag = tilebag.Replenish(player.Rack, g.Bag)

		player.Score += analyzed.TotalScore
		player.MoveCount++
		player.ConsecutivePasses = 0
		for _, ws := range analyzed.Words {
			if ws.Score > player.HighestWordScore {
				player.HighestWordScore = ws.Score
				player.HighestWord = ws.Word
			}
		}

		now := c.clock.Now()
		if len(player.Rack) == 0 && len(g.Bag) == 0 {
			c.settle(g, playerID, model.EndReasonTilesExhausted, now)
			return nil
		}

		g.CurrentTurnPlayerID = g.Opponent(playerID).ID
		g.TimerEndsAt = now.Add(c.turnDuration(g))
		g.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	if game.IsFinished() {
		c.finishPresence(ctx, game)
	}

	c.logger.Info("move played",
		slog.String("game_id", string(gameID)),
		slog.String("player_id", string(playerID)),
		slog.String("word", result.PrimaryWord),
		slog.Int("score", result.TotalScore),
		slog.Int("bag_remaining", len(game.Bag)),
	)

	return game, result, nil
}

// Pass forfeits the player's turn. When both players have passed twice in a
// row the game settles as a stalemate.
func (c *Controller) Pass(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Game, error) {
	game, err := c.storage.UpdateGame(ctx, gameID, func(g *model.Game) error {
		if err := c.requireTurn(g, playerID); err != nil {
			return err
		}
		return c.applyPass(g, playerID)
	})
	if err != nil {
		return nil, err
	}

	if game.IsFinished() {
		c.finishPresence(ctx, game)
	}

	c.logger.Info("turn passed",
		slog.String("game_id", string(gameID)),
		slog.String("player_id", string(playerID)),
	)

	return game, nil
}

// ExchangeTiles swaps rack tiles for fresh ones. Requires the bag to hold
// at least a full rack's worth; keeps the turn.
func (c *Controller) ExchangeTiles(ctx context.Context, gameID model.GameID, playerID model.PlayerID, letters []rune) (*model.Game, error) {
	game, err := c.storage.UpdateGame(ctx, gameID, func(g *model.Game) error {
		if err := c.requireTurn(g, playerID); err != nil {
			return err
		}
		if len(g.Bag) < model.RackSize {
			return model.ErrBagTooSmall
		}
		player := g.PlayerState(playerID)
		if len(letters) == 0 || len(player.Rack) == 0 {
			return model.ErrRackEmpty
		}
		if !player.RackContains(letters) {
			return model.ErrTilesNotInRack
		}

		// Draw replacements before returning the old tiles so the player
		// cannot immediately draw back what they gave up
		returned := player.RemoveFromRack(letters)
		drawn, remaining := tilebag.Draw(g.Bag, len(returned))
		player.Rack = append(player.Rack, drawn...)
		g.Bag = c.tilebag.ReturnTiles(remaining, returned)

		g.UpdatedAt = c.clock.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("tiles exchanged",
		slog.String("game_id", string(gameID)),
		slog.String("player_id", string(playerID)),
		slog.Int("count", len(letters)),
	)

	return game, nil
}

// RequestPause starts the two-party pause handshake
func (c *Controller) RequestPause(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Game, error) {
	return c.storage.UpdateGame(ctx, gameID, func(g *model.Game) error {
		if err := c.requireActive(g, playerID); err != nil {
			return err
		}
		if g.PauseStatus != model.PauseNone {
			return model.ErrPauseAlreadyActive
		}
		g.PauseStatus = model.PauseRequested
		g.PauseRequestedBy = playerID
		g.UpdatedAt = c.clock.Now()
		return nil
	})
}

// AnswerPause accepts or rejects a pending pause request. Only the
// non-requesting player may answer.
func (c *Controller) AnswerPause(ctx context.Context, gameID model.GameID, playerID model.PlayerID, accept bool) (*model.Game, error) {
	return c.storage.UpdateGame(ctx, gameID, func(g *model.Game) error {
		if err := c.requireActive(g, playerID); err != nil {
			return err
		}
		if g.PauseStatus != model.PauseRequested {
			return model.ErrPauseNotRequested
		}
		if g.PauseRequestedBy == playerID {
			return model.ErrCannotAnswerOwnPause
		}
		if accept {
			g.Status = model.GameStatusPaused
			g.PauseStatus = model.PauseAccepted
		} else {
			g.PauseStatus = model.PauseNone
			g.PauseRequestedBy = ""
		}
		g.UpdatedAt = c.clock.Now()
		return nil
	})
}

// Resume returns a paused game to play. The turn timer restarts in full;
// unused time is not credited.
func (c *Controller) Resume(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Game, error) {
	return c.storage.UpdateGame(ctx, gameID, func(g *model.Game) error {
		if !g.HasPlayer(playerID) {
			return model.ErrNotInGame
		}
		if g.Status != model.GameStatusPaused {
			return model.ErrGameNotInProgress
		}
		now := c.clock.Now()
		g.Status = model.GameStatusPlaying
		g.PauseStatus = model.PauseNone
		g.PauseRequestedBy = ""
		g.TimerEndsAt = now.Add(c.turnDuration(g))
		g.UpdatedAt = now
		return nil
	})
}

// Resign immediately finishes the game in the opponent's favour.
// Resigning an already-finished game is a no-op.
func (c *Controller) Resign(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Game, error) {
	alreadyFinished := false

	game, err := c.storage.UpdateGame(ctx, gameID, func(g *model.Game) error {
		if !g.HasPlayer(playerID) {
			return model.ErrNotInGame
		}
		if g.IsFinished() {
			alreadyFinished = true
			return nil
		}

		now := c.clock.Now()
		opponent := g.Opponent(playerID)

		g.Status = model.GameStatusFinished
		g.EndReason = model.EndReasonResignation
		g.ResignedPlayerID = playerID
		if opponent != nil {
			g.WinnerID = opponent.ID
		}
		if g.Player1 != nil {
			g.Player1.FinalScore = g.Player1.Score
		}
		if g.Player2 != nil {
			g.Player2.FinalScore = g.Player2.Score
		}
		g.EndedAt = now
		g.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	if alreadyFinished {
		c.logger.Info("resign on finished game skipped",
			slog.String("game_id", string(gameID)),
			slog.String("player_id", string(playerID)),
		)
		return game, nil
	}

	c.finishPresence(ctx, game)

	c.logger.Info("player resigned",
		slog.String("game_id", string(gameID)),
		slog.String("player_id", string(playerID)),
		slog.String("winner_id", string(game.WinnerID)),
	)

	return game, nil
}

// TimeExpired enforces the authoritative turn timer: once TimerEndsAt has
// passed, the active player's move right is forfeited as a pass
func (c *Controller) TimeExpired(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	var expiredPlayer model.PlayerID

	game, err := c.storage.UpdateGame(ctx, gameID, func(g *model.Game) error {
		if g.Status != model.GameStatusPlaying {
			return model.ErrGameNotInProgress
		}
		if c.clock.Now().Before(g.TimerEndsAt) {
			return model.ErrTimerNotExpired
		}
		expiredPlayer = g.CurrentTurnPlayerID
		return c.applyPass(g, g.CurrentTurnPlayerID)
	})
	if err != nil {
		return nil, err
	}

	if game.IsFinished() {
		c.finishPresence(ctx, game)
	}

	c.logger.Info("turn timer expired",
		slog.String("game_id", string(gameID)),
		slog.String("player_id", string(expiredPlayer)),
	)

	return game, nil
}

// CancelWaiting finishes a waiting game that will never start, e.g. when
// matchmaking abandons its own game after joining another
func (c *Controller) CancelWaiting(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Game, error) {
	return c.storage.UpdateGame(ctx, gameID, func(g *model.Game) error {
		if !g.HasPlayer(playerID) {
			return model.ErrNotInGame
		}
		if g.Status != model.GameStatusWaiting {
			return model.ErrGameNotJoinable
		}
		now := c.clock.Now()
		g.Status = model.GameStatusFinished
		g.EndReason = model.EndReasonCancelled
		g.EndedAt = now
		g.UpdatedAt = now
		return nil
	})
}

// Summary computes the read-only projection for a finished game
func (c *Controller) Summary(ctx context.Context, gameID model.GameID) (*model.GameSummary, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if !game.IsFinished() {
		return nil, model.ErrGameNotInProgress
	}

	summary := &model.GameSummary{
		GameID:       game.ID,
		FinalScores:  make(map[model.PlayerID]int),
		HighestWords: make(map[model.PlayerID]string),
		MoveCounts:   make(map[model.PlayerID]int),
		WinnerID:     game.WinnerID,
		EndReason:    game.EndReason,
	}
	if !game.StartedAt.IsZero() {
		summary.Duration = game.EndedAt.Sub(game.StartedAt)
	}
	for i, p := range []*model.PlayerState{game.Player1, game.Player2} {
		if p == nil {
			continue
		}
		summary.Players[i] = p.ID
		summary.FinalScores[p.ID] = p.FinalScore
		summary.HighestWords[p.ID] = p.HighestWord
		summary.MoveCounts[p.ID] = p.MoveCount
	}
	return summary, nil
}

// requireActive verifies the game is in play and the player belongs to it
func (c *Controller) requireActive(g *model.Game, playerID model.PlayerID) error {
	if !g.HasPlayer(playerID) {
		return model.ErrNotInGame
	}
	switch g.Status {
	case model.GameStatusPlaying:
		return nil
	case model.GameStatusPaused:
		return model.ErrGamePaused
	case model.GameStatusFinished:
		return model.ErrGameFinished
	default:
		return model.ErrGameNotInProgress
	}
}

// requireTurn additionally verifies turn ownership. This check is what
// rejects a duplicate submission: the first application flips the turn, so
// the resubmit reads the flipped owner and fails here.
func (c *Controller) requireTurn(g *model.Game, playerID model.PlayerID) error {
	if err := c.requireActive(g, playerID); err != nil {
		return err
	}
	if g.CurrentTurnPlayerID != playerID {
		return model.ErrNotYourTurn
	}
	return nil
}

// applyPass increments the pass counter, flips the turn and checks for the
// double-pass stalemate
func (c *Controller) applyPass(g *model.Game, playerID model.PlayerID) error {
	player := g.PlayerState(playerID)
	player.ConsecutivePasses++

	now := c.clock.Now()
	if g.Player1.ConsecutivePasses >= DoublePassThreshold &&
		g.Player2.ConsecutivePasses >= DoublePassThreshold {
		c.settle(g, "", model.EndReasonDoublePass, now)
		return nil
	}

	g.CurrentTurnPlayerID = g.Opponent(playerID).ID
	g.TimerEndsAt = now.Add(c.turnDuration(g))
	g.UpdatedAt = now
	return nil
}

// settle computes final scores and finishes the game.
//
// Rack-out: the finisher gains the opponent's remaining tile value on top
// of their raw score; the opponent loses their own remaining value.
// Double-pass stalemate: each player loses their own remaining value, with
// no transfer.
func (c *Controller) settle(g *model.Game, finisher model.PlayerID, reason model.EndReason, now time.Time) {
	players := []*model.PlayerState{g.Player1, g.Player2}

	for _, p := range players {
		p.FinalScore = p.Score - p.RemainingTileValue()
	}
	if reason == model.EndReasonTilesExhausted && finisher != "" {
		winner := g.PlayerState(finisher)
		opponent := g.Opponent(finisher)
		winner.FinalScore = winner.Score + opponent.RemainingTileValue()
	}

	switch {
	case g.Player1.FinalScore > g.Player2.FinalScore:
		g.WinnerID = g.Player1.ID
	case g.Player2.FinalScore > g.Player1.FinalScore:
		g.WinnerID = g.Player2.ID
	default:
		g.WinnerID = "" // Tie
	}

	g.Status = model.GameStatusFinished
	g.EndReason = reason
	g.EndedAt = now
	g.UpdatedAt = now

	c.logger.Info("game settled",
		slog.String("game_id", string(g.ID)),
		slog.String("end_reason", string(reason)),
		slog.String("winner_id", string(g.WinnerID)),
		slog.Int("final_score_p1", g.Player1.FinalScore),
		slog.Int("final_score_p2", g.Player2.FinalScore),
	)
}

func (c *Controller) turnDuration(g *model.Game) time.Duration {
	if g.TurnDurationSeconds > 0 {
		return time.Duration(g.TurnDurationSeconds) * time.Second
	}
	return c.cfg.TurnDuration
}

func (c *Controller) finishPresence(ctx context.Context, g *model.Game) {
	if g.Player1 != nil {
		c.presence.SetOnline(ctx, g.Player1.ID)
	}
	if g.Player2 != nil {
		c.presence.SetOnline(ctx, g.Player2.ID)
	}
}
