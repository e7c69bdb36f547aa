package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// Player represents a game participant's identity
type Player struct {
	ID          PlayerID  `json:"id"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// PlayerState is a player's per-game state. The rack is an unordered set of
// up to RackSize tiles, replenished from the bag after each confirmed move.
type PlayerState struct {
	ID                PlayerID `json:"id"`
	DisplayName       string   `json:"display_name"`
	Rack              []Tile   `json:"rack"`
	Score             int      `json:"score"`
	MoveCount         int      `json:"move_count"`
	ConsecutivePasses int      `json:"consecutive_passes"`
	HighestWordScore  int      `json:"highest_word_score"`
	HighestWord       string   `json:"highest_word"`
	FinalScore        int      `json:"final_score"` // Set at settlement
}

// RackContains reports whether the rack holds at least the given letters
// (with multiplicity)
func (p *PlayerState) RackContains(letters []rune) bool {
	counts := make(map[rune]int, len(p.Rack))
	for _, t := range p.Rack {
		counts[t.Letter]++
	}
	for _, l := range letters {
		if counts[l] == 0 {
			return false
		}
		counts[l]--
	}
	return true
}

// RemoveFromRack removes one tile per given letter from the rack and returns
// the removed tiles. Callers must check RackContains first.
func (p *PlayerState) RemoveFromRack(letters []rune) []Tile {
	removed := make([]Tile, 0, len(letters))
	for _, l := range letters {
		for i, t := range p.Rack {
			if t.Letter == l {
				removed = append(removed, t)
				p.Rack = append(p.Rack[:i], p.Rack[i+1:]...)
				break
			}
		}
	}
	return removed
}

// RemainingTileValue is the point value of unplayed rack tiles
func (p *PlayerState) RemainingTileValue() int {
	return TileValueSum(p.Rack)
}
