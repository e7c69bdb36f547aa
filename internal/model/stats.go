package model

// PlayerStats is a derived view over a player's finished games.
// Recomputed on demand, never stored.
type PlayerStats struct {
	PlayerID         PlayerID `json:"player_id"`
	GamesPlayed      int      `json:"games_played"`
	GamesWon         int      `json:"games_won"`
	TotalScore       int      `json:"total_score"`
	HighestWordScore int      `json:"highest_word_score"`
	WinRate          float64  `json:"win_rate"`      // Percentage
	AverageScore     float64  `json:"average_score"`
}
