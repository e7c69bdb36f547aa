package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case GameState:
		o.printGameState(v)
	case MoveResult:
		o.printMoveResult(v)
	case MatchResult:
		o.printMatchResult(v)
	case GameSummary:
		o.printGameSummary(v)
	case PlayerStats:
		o.printPlayerStats(v)
	case Presence:
		o.printPresence(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// PlayerView response type (matches API)
type PlayerView struct {
	ID                string `json:"id"`
	DisplayName       string `json:"display_name"`
	Score             int    `json:"score"`
	MoveCount         int    `json:"move_count"`
	ConsecutivePasses int    `json:"consecutive_passes"`
	RackCount         int    `json:"rack_count"`
	Rack              string `json:"rack,omitempty"`
	FinalScore        *int   `json:"final_score,omitempty"`
}

// GameState response type
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
	JoinCode            string      `json:"join_code,omitempty"`
	WinnerID            string      `json:"winner_id,omitempty"`
	EndReason           string      `json:"end_reason,omitempty"`
}

// WordScore response type
type WordScore struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
}

// MoveResult response type
type MoveResult struct {
	PrimaryWord string      `json:"primary_word"`
	Words       []WordScore `json:"words"`
	TotalScore  int         `json:"total_score"`
	Game        GameState   `json:"game"`
}

// MatchResult response type
type MatchResult struct {
	Status string     `json:"status"`
	Game   *GameState `json:"game,omitempty"`
}

// GameSummary response type
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

// PlayerStats response type
type PlayerStats struct {
	PlayerID         string  `json:"player_id"`
	GamesPlayed      int     `json:"games_played"`
	GamesWon         int     `json:"games_won"`
	TotalScore       int     `json:"total_score"`
	HighestWordScore int     `json:"highest_word_score"`
	WinRate          float64 `json:"win_rate"`
	AverageScore     float64 `json:"average_score"`
}

// Presence response type
type Presence struct {
	UserID    string    `json:"user_id"`
	Status    string    `json:"status"`
	GameID    string    `json:"game_id,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printGameState(g GameState) {
	fmt.Printf("Game: %s\n", g.ID)
	fmt.Printf("Status: %s\n", g.Status)
	fmt.Printf("Bag: %d tiles\n", g.BagCount)

	if g.JoinCode != "" {
		fmt.Printf("Join Code: %s\n", g.JoinCode)
	}

	if g.You != nil {
		o.printPlayerLine("You", g.You, g.CurrentTurnPlayerID)
	}
	if g.Opponent != nil {
		o.printPlayerLine("Opponent", g.Opponent, g.CurrentTurnPlayerID)
	}

	if g.TimerEndsAt != nil {
		fmt.Printf("Turn ends: %s\n", g.TimerEndsAt.Format(time.RFC3339))
	}
	if g.PauseStatus != "" && g.PauseStatus != "none" {
		fmt.Printf("Pause: %s\n", g.PauseStatus)
	}

	o.printBoard(g.Board)

	if g.Status == "finished" {
		if g.WinnerID != "" {
			fmt.Printf("\nWinner: %s (%s)\n", g.WinnerID, g.EndReason)
		} else {
			fmt.Printf("\nDraw (%s)\n", g.EndReason)
		}
	}
}

func (o *Output) printPlayerLine(label string, p *PlayerView, currentTurn string) {
	turnStr := ""
	if p.ID == currentTurn {
		turnStr = " [to move]"
	}
	fmt.Printf("%s: %s (%s) - %d points%s\n", label, p.DisplayName, p.ID, p.Score, turnStr)
	if p.Rack != "" {
		fmt.Printf("  Rack: %s\n", p.Rack)
	} else {
		fmt.Printf("  Rack: %d tiles\n", p.RackCount)
	}
}

func (o *Output) printBoard(rows []string) {
	if len(rows) == 0 {
		return
	}

	size := len(rows)

	fmt.Println()
	// Print column headers
	fmt.Print("    ")
	for col := 0; col < size; col++ {
		fmt.Printf("%2d ", col)
	}
	fmt.Println()

	// Print top border
	fmt.Print("   +")
	for col := 0; col < size; col++ {
		fmt.Print("---")
	}
	fmt.Println("+")

	// Print rows
	for row, line := range rows {
		fmt.Printf("%2d |", row)
		for _, ch := range line {
			fmt.Printf(" %c ", ch)
		}
		fmt.Println("|")
	}

	// Print bottom border
	fmt.Print("   +")
	for col := 0; col < size; col++ {
		fmt.Print("---")
	}
	fmt.Println("+")
}

func (o *Output) printMoveResult(m MoveResult) {
	fmt.Printf("Played %s for %d points\n", m.PrimaryWord, m.TotalScore)
	if len(m.Words) > 1 {
		for _, w := range m.Words {
			fmt.Printf("  - %s (%d pts)\n", w.Word, w.Score)
		}
	}
	fmt.Println()
	o.printGameState(m.Game)
}

func (o *Output) printMatchResult(m MatchResult) {
	if m.Status == "searching" {
		fmt.Println("Searching for an opponent... retry shortly")
		return
	}
	fmt.Println("Matched!")
	if m.Game != nil {
		fmt.Println()
		o.printGameState(*m.Game)
	}
}

func (o *Output) printGameSummary(s GameSummary) {
	fmt.Printf("Game: %s (%s, %s)\n", s.GameID, s.EndReason, s.Duration)
	for _, pid := range s.Players {
		line := fmt.Sprintf("  %s: %d points", pid, s.FinalScores[pid])
		if word := s.HighestWords[pid]; word != "" {
			line += fmt.Sprintf(", best word %s", word)
		}
		line += fmt.Sprintf(", %d moves", s.MoveCounts[pid])
		fmt.Println(line)
	}
	if s.WinnerID != "" {
		fmt.Printf("Winner: %s\n", s.WinnerID)
	} else {
		fmt.Println("Result: draw")
	}
}

func (o *Output) printPlayerStats(s PlayerStats) {
	fmt.Printf("Player: %s\n", s.PlayerID)
	fmt.Printf("Games: %d played, %d won (%.1f%%)\n", s.GamesPlayed, s.GamesWon, s.WinRate)
	fmt.Printf("Scoring: %d total, %.1f average\n", s.TotalScore, s.AverageScore)
	fmt.Printf("Best word score: %d\n", s.HighestWordScore)
}

func (o *Output) printPresence(p Presence) {
	fmt.Printf("Player: %s\n", p.UserID)
	fmt.Printf("Status: %s\n", p.Status)
	if p.GameID != "" {
		fmt.Printf("Game: %s\n", p.GameID)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
