package model

import "time"

// MatchmakingStatus is the state of a matchmaking request
type MatchmakingStatus string

const (
	MatchmakingSearching MatchmakingStatus = "searching"
	MatchmakingMatched   MatchmakingStatus = "matched"
	MatchmakingCancelled MatchmakingStatus = "cancelled"
)

// MatchmakingRequest is an ephemeral record of a player searching for an
// opponent. Keyed one-per-user; deleted on cancellation or match completion.
type MatchmakingRequest struct {
	UserID      PlayerID          `json:"user_id"`
	DisplayName string            `json:"display_name"`
	Status      MatchmakingStatus `json:"status"`
	GameID      GameID            `json:"game_id"`
	OpponentID  PlayerID          `json:"opponent_id"`
	CreatedAt   time.Time         `json:"created_at"`
}
