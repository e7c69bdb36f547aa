package model

import "time"

// EventType identifies the type of game change event
type EventType string

const (
	EventGameCreated    EventType = "game_created"
	EventPlayerJoined   EventType = "player_joined"
	EventMovePlayed     EventType = "move_played"
	EventTurnPassed     EventType = "turn_passed"
	EventTilesExchanged EventType = "tiles_exchanged"
	EventPauseRequested EventType = "pause_requested"
	EventPauseAccepted  EventType = "pause_accepted"
	EventPauseRejected  EventType = "pause_rejected"
	EventGameResumed    EventType = "game_resumed"
	EventPlayerResigned EventType = "player_resigned"
	EventTimerExpired   EventType = "timer_expired"
	EventGameFinished   EventType = "game_finished"
)

// Event is emitted after every successful game transition so subscribed
// clients re-render from the new document
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	GameID    GameID    `json:"game_id"`
	PlayerID  PlayerID  `json:"player_id"` // The player who triggered it
	Payload   any       `json:"payload,omitempty"`
}

// MovePlayedPayload contains data for move played events
type MovePlayedPayload struct {
	Words     []string `json:"words"`
	Score     int      `json:"score"`
	NextTurn  PlayerID `json:"next_turn"`
	BagCount  int      `json:"bag_count"`
}

// GameFinishedPayload contains data for game finished events
type GameFinishedPayload struct {
	WinnerID  PlayerID  `json:"winner_id"`
	EndReason EndReason `json:"end_reason"`
}
