package model

import "time"

// PresenceStatus is a player's coarse availability
type PresenceStatus string

const (
	PresenceOnline  PresenceStatus = "online"
	PresenceInGame  PresenceStatus = "in_game"
	PresenceOffline PresenceStatus = "offline"
)

// Presence is a best-effort record of a player's availability. Updates are
// fire-and-forget and never block game-state transitions.
type Presence struct {
	UserID    PlayerID       `json:"user_id"`
	Status    PresenceStatus `json:"status"`
	GameID    GameID         `json:"game_id"` // Set when in_game
	UpdatedAt time.Time      `json:"updated_at"`
}
