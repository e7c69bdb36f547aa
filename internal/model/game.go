package model

import "time"

// GameID uniquely identifies a game
type GameID string

// GameStatus represents the current phase of a game
type GameStatus string

const (
	GameStatusWaiting  GameStatus = "waiting"  // Created, second player not yet joined
	GameStatusPlaying  GameStatus = "playing"  // Both players active
	GameStatusPaused   GameStatus = "paused"   // Pause handshake accepted
	GameStatusFinished GameStatus = "finished" // Terminal
)

// PauseStatus tracks the two-party pause handshake
type PauseStatus string

const (
	PauseNone      PauseStatus = "none"
	PauseRequested PauseStatus = "requested"
	PauseAccepted  PauseStatus = "accepted"
)

// EndReason records how a finished game ended
type EndReason string

const (
	EndReasonTilesExhausted EndReason = "tiles_exhausted"
	EndReasonDoublePass     EndReason = "double_pass"
	EndReasonResignation    EndReason = "resignation"
	EndReasonCancelled      EndReason = "cancelled"
)

// Game is the aggregate root: one shared board, a shared bag, and two
// players' racks and scores. All mutation happens through the game
// controller inside a storage transaction.
type Game struct {
	ID     GameID     `json:"id"`
	Status GameStatus `json:"status"`

	Player1 *PlayerState `json:"player1"`
	Player2 *PlayerState `json:"player2"` // nil until joined

	Board *Board `json:"board"`
	Bag   []Tile `json:"bag"`

	// Turn management. TimerEndsAt is authoritative; clients only render a
	// countdown from it.
	CurrentTurnPlayerID PlayerID  `json:"current_turn_player_id"`
	TurnDurationSeconds int       `json:"turn_duration_seconds"`
	TimerEndsAt         time.Time `json:"timer_ends_at"`

	// Pause handshake
	PauseStatus       PauseStatus `json:"pause_status"`
	PauseRequestedBy  PlayerID    `json:"pause_requested_by"`

	// Private games
	Private           bool      `json:"private"`
	JoinCode          string    `json:"join_code"`
	JoinCodeExpiresAt time.Time `json:"join_code_expires_at"`

	// Terminal state
	WinnerID         PlayerID  `json:"winner_id"`
	ResignedPlayerID PlayerID  `json:"resigned_player_id"`
	EndReason        EndReason `json:"end_reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
}

// PlayerState returns the state for the given player, or nil
func (g *Game) PlayerState(id PlayerID) *PlayerState {
	if g.Player1 != nil && g.Player1.ID == id {
		return g.Player1
	}
	if g.Player2 != nil && g.Player2.ID == id {
		return g.Player2
	}
	return nil
}

// Opponent returns the other player's state, or nil
func (g *Game) Opponent(id PlayerID) *PlayerState {
	if g.Player1 != nil && g.Player1.ID == id {
		return g.Player2
	}
	if g.Player2 != nil && g.Player2.ID == id {
		return g.Player1
	}
	return nil
}

// HasPlayer reports whether the given player is in this game
func (g *Game) HasPlayer(id PlayerID) bool {
	return g.PlayerState(id) != nil
}

// IsFinished reports whether the game is in its terminal state
func (g *Game) IsFinished() bool {
	return g.Status == GameStatusFinished
}

// JoinableAt reports whether a second player may join at the given time.
// Private games additionally require the join code to be unexpired.
func (g *Game) JoinableAt(now time.Time) bool {
	if g.Status != GameStatusWaiting || g.Player2 != nil {
		return false
	}
	if g.Private && now.After(g.JoinCodeExpiresAt) {
		return false
	}
	return true
}

// TilesInPlay is the total tile count across bag, racks and locked board
// cells. It equals TotalTiles for the lifetime of a started game.
func (g *Game) TilesInPlay() int {
	total := len(g.Bag) + g.Board.LockedCount()
	if g.Player1 != nil {
		total += len(g.Player1.Rack)
	}
	if g.Player2 != nil {
		total += len(g.Player2.Rack)
	}
	return total
}

// GameSummary is a read-only projection computed from a finished game.
// Never persisted as independent state.
type GameSummary struct {
	GameID       GameID        `json:"game_id"`
	Players      [2]PlayerID   `json:"players"`
	FinalScores  map[PlayerID]int `json:"final_scores"`
	HighestWords map[PlayerID]string `json:"highest_words"`
	MoveCounts   map[PlayerID]int `json:"move_counts"`
	WinnerID     PlayerID      `json:"winner_id"`
	EndReason    EndReason     `json:"end_reason"`
	Duration     time.Duration `json:"duration"`
}
