package response

import (
	"time"

	"github.com/letterduel/letterduel/internal/model"
)

// PlayerView is the public portion of a player's in-game state
type PlayerView struct {
	ID                string `json:"id"`
	DisplayName       string `json:"display_name"`
	Score             int    `json:"score"`
	MoveCount         int    `json:"move_count"`
	ConsecutivePasses int    `json:"consecutive_passes"`
	RackCount         int    `json:"rack_count"`
	Rack              string `json:"rack,omitempty"` // Only present for the viewer's own state
	FinalScore        *int   `json:"final_score,omitempty"`
}

// playerViewFromState converts a PlayerState, including the rack letters
// only when the viewer owns the state
func playerViewFromState(p *model.PlayerState, viewer model.PlayerID, finished bool) *PlayerView {
	if p == nil {
		return nil
	}
	v := &PlayerView{
		ID:                string(p.ID),
		DisplayName:       p.DisplayName,
		Score:             p.Score,
		MoveCount:         p.MoveCount,
		ConsecutivePasses: p.ConsecutivePasses,
		RackCount:         len(p.Rack),
	}
	if p.ID == viewer {
		letters := make([]byte, len(p.Rack))
		for i, t := range p.Rack {
			letters[i] = byte(t.Letter)
		}
		v.Rack = string(letters)
	}
	if finished {
		final := p.FinalScore
		v.FinalScore = &final
	}
	return v
}

// BoardRows flattens a board into 15 strings of 15 characters, with "."
// marking empty cells. Premium square positions are fixed; clients carry
// their own copy of the layout.
func BoardRows(b *model.Board) []string {
	rows := make([]string, model.BoardSize)
	for r := 0; r < model.BoardSize; r++ {
		line := make([]byte, model.BoardSize)
		for c := 0; c < model.BoardSize; c++ {
			cell := b.Cells[r][c]
			if cell.Locked {
				line[c] = byte(cell.Letter)
			} else {
				line[c] = '.'
			}
		}
		rows[r] = string(line)
	}
	return rows
}

// GameState is the full game view returned to a participant
type GameState struct {
	ID                  string      `json:"id"`
	Status              string      `json:"status"`
	Board               []string    `json:"board"`
	BagCount            int         `json:"bag_count"`
	You                 *PlayerView `json:"you"`
	Opponent            *PlayerView `json:"opponent"`
	CurrentTurnPlayerID string      `json:"current_turn_player_id,omitempty"`
	TurnDurationSeconds int         `json:"turn_duration_seconds"`
	TimerEndsAt         *time.Time  `json:"timer_ends_at,omitempty"`
	PauseStatus         string      `json:"pause_status"`
	PauseRequestedBy    string      `json:"pause_requested_by,omitempty"`
	JoinCode            string      `json:"join_code,omitempty"`
	JoinCodeExpiresAt   *time.Time  `json:"join_code_expires_at,omitempty"`
	WinnerID            string      `json:"winner_id,omitempty"`
	EndReason           string      `json:"end_reason,omitempty"`
	CreatedAt           time.Time   `json:"created_at"`
	StartedAt           *time.Time  `json:"started_at,omitempty"`
	EndedAt             *time.Time  `json:"ended_at,omitempty"`
}

// GameStateFromModel projects a game for a given viewer. The opponent's
// rack is never revealed while the game is live.
func GameStateFromModel(g *model.Game, viewer model.PlayerID) GameState {
	finished := g.IsFinished()

	state := GameState{
		ID:                  string(g.ID),
		Status:              string(g.Status),
		Board:               BoardRows(g.Board),
		BagCount:            len(g.Bag),
		You:                 playerViewFromState(g.PlayerState(viewer), viewer, finished),
		Opponent:            playerViewFromState(g.Opponent(viewer), viewer, finished),
		CurrentTurnPlayerID: string(g.CurrentTurnPlayerID),
		TurnDurationSeconds: g.TurnDurationSeconds,
		PauseStatus:         string(g.PauseStatus),
		PauseRequestedBy:    string(g.PauseRequestedBy),
		WinnerID:            string(g.WinnerID),
		EndReason:           string(g.EndReason),
		CreatedAt:           g.CreatedAt,
	}

	if !g.TimerEndsAt.IsZero() && g.Status == model.GameStatusPlaying {
		t := g.TimerEndsAt
		state.TimerEndsAt = &t
	}
	if !g.StartedAt.IsZero() {
		t := g.StartedAt
		state.StartedAt = &t
	}
	if !g.EndedAt.IsZero() {
		t := g.EndedAt
		state.EndedAt = &t
	}

	// Only the creator sees the join code, and only while joinable
	if g.Private && g.Status == model.GameStatusWaiting && g.Player1 != nil && g.Player1.ID == viewer {
		state.JoinCode = g.JoinCode
		t := g.JoinCodeExpiresAt
		state.JoinCodeExpiresAt = &t
	}

	return state
}

// WordScore is a single scored word within a move result
type WordScore struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
}

// MoveResult is the outcome of an accepted move
type MoveResult struct {
	PrimaryWord string      `json:"primary_word"`
	Words       []WordScore `json:"words"`
	TotalScore  int         `json:"total_score"`
	Game        GameState   `json:"game"`
}

// MatchResult is the outcome of a matchmaking attempt
type MatchResult struct {
	Status string     `json:"status"`
	Game   *GameState `json:"game,omitempty"`
}

// GameSummary is the post-game summary view
type GameSummary struct {
	GameID       string            `json:"game_id"`
	Players      []string          `json:"players"`
	FinalScores  map[string]int    `json:"final_scores"`
	HighestWords map[string]string `json:"highest_words"`
	MoveCounts   map[string]int    `json:"move_counts"`
	WinnerID     string            `json:"winner_id,omitempty"`
	EndReason    string            `json:"end_reason"`
	Duration     string            `json:"duration"`
}

// GameSummaryFromModel converts a model.GameSummary
func GameSummaryFromModel(s *model.GameSummary) GameSummary {
	players := make([]string, 0, len(s.Players))
	for _, p := range s.Players {
		players = append(players, string(p))
	}
	scores := make(map[string]int, len(s.FinalScores))
	for pid, v := range s.FinalScores {
		scores[string(pid)] = v
	}
	words := make(map[string]string, len(s.HighestWords))
	for pid, v := range s.HighestWords {
		words[string(pid)] = v
	}
	moves := make(map[string]int, len(s.MoveCounts))
	for pid, v := range s.MoveCounts {
		moves[string(pid)] = v
	}
	return GameSummary{
		GameID:       string(s.GameID),
		Players:      players,
		FinalScores:  scores,
		HighestWords: words,
		MoveCounts:   moves,
		WinnerID:     string(s.WinnerID),
		EndReason:    string(s.EndReason),
		Duration:     s.Duration.String(),
	}
}

// PlayerStats is the aggregated stats view
type PlayerStats struct {
	PlayerID         string  `json:"player_id"`
	GamesPlayed      int     `json:"games_played"`
	GamesWon         int     `json:"games_won"`
	TotalScore       int     `json:"total_score"`
	HighestWordScore int     `json:"highest_word_score"`
	WinRate          float64 `json:"win_rate"`
	AverageScore     float64 `json:"average_score"`
}

// PlayerStatsFromModel converts model.PlayerStats
func PlayerStatsFromModel(s *model.PlayerStats) PlayerStats {
	return PlayerStats{
		PlayerID:         string(s.PlayerID),
		GamesPlayed:      s.GamesPlayed,
		GamesWon:         s.GamesWon,
		TotalScore:       s.TotalScore,
		HighestWordScore: s.HighestWordScore,
		WinRate:          s.WinRate,
		AverageScore:     s.AverageScore,
	}
}

// Presence is a player's availability view
type Presence struct {
	UserID    string    `json:"user_id"`
	Status    string    `json:"status"`
	GameID    string    `json:"game_id,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PresenceFromModel converts model.Presence
func PresenceFromModel(p *model.Presence) Presence {
	return Presence{
		UserID:    string(p.UserID),
		Status:    string(p.Status),
		GameID:    string(p.GameID),
		UpdatedAt: p.UpdatedAt,
	}
}
