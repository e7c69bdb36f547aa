// Package rules implements placement legality and scoring for a move.
// Everything here is pure computation over a board snapshot; locking cells,
// rack updates and turn advancement belong to the game controller.
package rules

import (
	"strings"

	"github.com/letterduel/letterduel/internal/model"
)

// Placement is one newly placed tile in a proposed move
type Placement struct {
	Pos    model.Position `json:"pos"`
	Letter rune           `json:"letter"`
}

// WordScore is one formed word and its score for this move
type WordScore struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
}

// MoveResult is the outcome of a legal move analysis
type MoveResult struct {
	// PrimaryWord is the word along the placement axis
	PrimaryWord string
	// Words is every word formed this move (primary plus cross-words)
	Words []WordScore
	// TotalScore is the sum across all formed words
	TotalScore int
}

// MinimumPlacedTiles is the smallest legal move size
const MinimumPlacedTiles = 2

// AnalyzeMove checks a proposed placement against the board and computes
// its score. Rejections are the named sentinel errors in the model package;
// the board is never mutated.
//
// Legality, in order: minimum tiles, cells free and in bounds, single row
// or column, center coverage on an empty board or connection to a locked
// cell otherwise, and no gaps along the placement axis.
func AnalyzeMove(board *model.Board, placements []Placement) (*MoveResult, error) {
	if len(placements) < MinimumPlacedTiles {
		return nil, model.ErrTooFewTiles
	}

	placed := make(map[model.Position]rune, len(placements))
	for _, p := range placements {
		if !board.IsValidPosition(p.Pos) {
			return nil, model.ErrInvalidPosition
		}
		if p.Letter < 'A' || p.Letter > 'Z' {
			return nil, model.ErrInvalidLetter
		}
		if board.Cell(p.Pos).Locked {
			// Locked cells are immutable, even for the same letter
			return nil, model.ErrCellOccupied
		}
		if _, dup := placed[p.Pos]; dup {
			return nil, model.ErrCellOccupied
		}
		placed[p.Pos] = p.Letter
	}

	sameRow, sameCol := true, true
	first := placements[0].Pos
	for _, p := range placements[1:] {
		if p.Pos.Row != first.Row {
			sameRow = false
		}
		if p.Pos.Col != first.Col {
			sameCol = false
		}
	}
	if !sameRow && !sameCol {
		return nil, model.ErrNotInLine
	}
	horizontal := sameRow

	if board.IsEmpty() {
		if _, covers := placed[model.CenterPos]; !covers {
			return nil, model.ErrMustCoverCenter
		}
	} else {
		connected := false
		for pos := range placed {
			if board.HasLockedNeighbour(pos) {
				connected = true
				break
			}
		}
		if !connected {
			return nil, model.ErrNotConnected
		}
	}

	run, err := primaryRun(board, placed, first, horizontal)
	if err != nil {
		return nil, err
	}

	result := &MoveResult{}
	primary := scoreWord(board, run, placed)
	result.PrimaryWord = primary.Word
	result.Words = append(result.Words, primary)
	result.TotalScore += primary.Score

	// Cross-words perpendicular to the placement axis through each new tile
	for _, p := range placements {
		cross := crossRun(board, placed, p.Pos, horizontal)
		if len(cross) < 2 {
			continue
		}
		ws := scoreWord(board, cross, placed)
		result.Words = append(result.Words, ws)
		result.TotalScore += ws.Score
	}

	for _, ws := range result.Words {
		if !IsWordShaped(ws.Word) {
			return nil, model.ErrNotAWord
		}
	}

	return result, nil
}

// IsWordShaped is the local shape check: length at least 2, alphabetic.
// Real-word validity is the dictionary service's concern.
func IsWordShaped(word string) bool {
	if len(word) < 2 {
		return false
	}
	for _, r := range word {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// primaryRun resolves the contiguous cells of the main word, including
// locked cells beyond both ends of the placement span
func primaryRun(board *model.Board, placed map[model.Position]rune, anchor model.Position, horizontal bool) ([]model.Position, error) {
	axisCoord := func(pos model.Position) int {
		if horizontal {
			return pos.Col
		}
		return pos.Row
	}
	at := func(i int) model.Position {
		if horizontal {
			return model.Position{Row: anchor.Row, Col: i}
		}
		return model.Position{Row: i, Col: anchor.Col}
	}

	min, max := axisCoord(anchor), axisCoord(anchor)
	for pos := range placed {
		if c := axisCoord(pos); c < min {
			min = c
		} else if c > max {
			max = c
		}
	}

	// Every cell between the extremes must be new or already locked
	for i := min; i <= max; i++ {
		pos := at(i)
		if _, isNew := placed[pos]; isNew {
			continue
		}
		if !board.Cell(pos).Locked {
			return nil, model.ErrNotContiguous
		}
	}

	// Extend through locked tiles beyond the ends
	for min > 0 && board.Cell(at(min-1)).Locked {
		min--
	}
	for max < model.BoardSize-1 && board.Cell(at(max+1)).Locked {
		max++
	}

	run := make([]model.Position, 0, max-min+1)
	for i := min; i <= max; i++ {
		run = append(run, at(i))
	}
	return run, nil
}

// crossRun resolves the perpendicular word through one newly placed tile.
// Its only new tile is the anchor itself; all other members are locked.
func crossRun(board *model.Board, placed map[model.Position]rune, anchor model.Position, horizontal bool) []model.Position {
	at := func(i int) model.Position {
		if horizontal {
			return model.Position{Row: i, Col: anchor.Col}
		}
		return model.Position{Row: anchor.Row, Col: i}
	}
	axisCoord := anchor.Row
	if !horizontal {
		axisCoord = anchor.Col
	}

	min, max := axisCoord, axisCoord
	for min > 0 && board.Cell(at(min-1)).Locked {
		min--
	}
	for max < model.BoardSize-1 && board.Cell(at(max+1)).Locked {
		max++
	}

	run := make([]model.Position, 0, max-min+1)
	for i := min; i <= max; i++ {
		run = append(run, at(i))
	}
	return run
}

// scoreWord scores one formed word. Letter and word multipliers apply only
// to cells placed this move; locked cells contribute face value.
func scoreWord(board *model.Board, run []model.Position, placed map[model.Position]rune) WordScore {
	var sb strings.Builder
	score := 0
	wordMultiplier := 1

	for _, pos := range run {
		cell := board.Cell(pos)
		if letter, isNew := placed[pos]; isNew {
			sb.WriteRune(letter)
			score += model.LetterPoints(letter) * cell.Type.LetterMultiplier()
			wordMultiplier *= cell.Type.WordMultiplier()
		} else {
			sb.WriteRune(cell.Letter)
			score += model.LetterPoints(cell.Letter)
		}
	}

	return WordScore{Word: sb.String(), Score: score * wordMultiplier}
}
