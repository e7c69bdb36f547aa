package rules

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/letterduel/letterduel/internal/model"
)

type RulesSuite struct {
	suite.Suite
	board *model.Board
}

func TestRulesSuite(t *testing.T) {
	suite.Run(t, new(RulesSuite))
}

func (s *RulesSuite) SetupTest() {
	s.board = model.NewBoard()
}

func place(row, col int, letter rune) Placement {
	return Placement{Pos: model.Position{Row: row, Col: col}, Letter: letter}
}

// lockWord locks a horizontal word onto the board as if previously played
func (s *RulesSuite) lockWord(row, col int, word string) {
	for i, ch := range word {
		s.board.Lock(model.Position{Row: row, Col: col + i}, ch)
	}
}

// Rejections

func (s *RulesSuite) TestRejectsSingleTile() {
	_, err := AnalyzeMove(s.board, []Placement{place(7, 7, 'A')})
	s.ErrorIs(err, model.ErrTooFewTiles)
}

func (s *RulesSuite) TestRejectsNoTiles() {
	_, err := AnalyzeMove(s.board, nil)
	s.ErrorIs(err, model.ErrTooFewTiles)
}

func (s *RulesSuite) TestRejectsOutOfBounds() {
	_, err := AnalyzeMove(s.board, []Placement{place(7, 14, 'A'), place(7, 15, 'T')})
	s.ErrorIs(err, model.ErrInvalidPosition)
}

func (s *RulesSuite) TestRejectsNonLetter() {
	_, err := AnalyzeMove(s.board, []Placement{place(7, 7, 'a'), place(7, 8, 'T')})
	s.ErrorIs(err, model.ErrInvalidLetter)
}

func (s *RulesSuite) TestRejectsDuplicatePosition() {
	_, err := AnalyzeMove(s.board, []Placement{place(7, 7, 'A'), place(7, 7, 'T')})
	s.ErrorIs(err, model.ErrCellOccupied)
}

func (s *RulesSuite) TestRejectsNotInLine() {
	_, err := AnalyzeMove(s.board, []Placement{place(7, 7, 'A'), place(8, 8, 'T')})
	s.ErrorIs(err, model.ErrNotInLine)
}

func (s *RulesSuite) TestFirstMoveMustCoverCenter() {
	_, err := AnalyzeMove(s.board, []Placement{place(7, 3, 'C'), place(7, 4, 'A'), place(7, 5, 'T')})
	s.ErrorIs(err, model.ErrMustCoverCenter)
}

func (s *RulesSuite) TestRejectsGapInPlacement() {
	_, err := AnalyzeMove(s.board, []Placement{place(7, 7, 'A'), place(7, 9, 'T')})
	s.ErrorIs(err, model.ErrNotContiguous)
}

func (s *RulesSuite) TestRejectsPlacementOnLockedCell() {
	s.lockWord(7, 6, "CAT")

	_, err := AnalyzeMove(s.board, []Placement{place(7, 7, 'A'), place(7, 8, 'T')})
	s.ErrorIs(err, model.ErrCellOccupied)
}

func (s *RulesSuite) TestLockedCellRejectedEvenForSameLetter() {
	s.lockWord(7, 6, "CAT")

	_, err := AnalyzeMove(s.board, []Placement{place(7, 7, 'A'), place(8, 7, 'T')})
	s.ErrorIs(err, model.ErrCellOccupied)
}

func (s *RulesSuite) TestRejectsDisconnectedPlacement() {
	s.lockWord(7, 6, "CAT")

	_, err := AnalyzeMove(s.board, []Placement{place(0, 0, 'A'), place(0, 1, 'T')})
	s.ErrorIs(err, model.ErrNotConnected)
}

// Scoring

func (s *RulesSuite) TestFirstMoveScoresWithCenterDouble() {
	result, err := AnalyzeMove(s.board, []Placement{
		place(7, 6, 'C'), place(7, 7, 'A'), place(7, 8, 'T'),
	})
	s.Require().NoError(err)

	// C(3) + A(1) + T(1) = 5, doubled by the center square
	s.Equal("CAT", result.PrimaryWord)
	s.Len(result.Words, 1)
	s.Equal(10, result.TotalScore)
}

func (s *RulesSuite) TestScoringIsDeterministic() {
	placements := []Placement{place(7, 6, 'C'), place(7, 7, 'A'), place(7, 8, 'T')}

	first, err := AnalyzeMove(s.board, placements)
	s.Require().NoError(err)
	second, err := AnalyzeMove(s.board, placements)
	s.Require().NoError(err)

	s.Equal(first.TotalScore, second.TotalScore)
	s.Equal(first.Words, second.Words)
}

func (s *RulesSuite) TestVerticalFirstMove() {
	result, err := AnalyzeMove(s.board, []Placement{
		place(6, 7, 'T'), place(7, 7, 'O'),
	})
	s.Require().NoError(err)

	// T(1) + O(1) = 2, doubled by the center square
	s.Equal("TO", result.PrimaryWord)
	s.Equal(4, result.TotalScore)
}

func (s *RulesSuite) TestExtensionThroughLockedTilesKeepsFaceValue() {
	s.lockWord(7, 6, "CAT")

	// T-O-P down column 8: the locked T extends the run but its center-row
	// multipliers were spent on the original move
	result, err := AnalyzeMove(s.board, []Placement{
		place(8, 8, 'O'), place(9, 8, 'P'),
	})
	s.Require().NoError(err)

	// T(1, face) + O(1 x2 on the double letter) + P(3)
	s.Equal("TOP", result.PrimaryWord)
	s.Len(result.Words, 1)
	s.Equal(6, result.TotalScore)
}

func (s *RulesSuite) TestCrossWordsScoreAlongside() {
	s.lockWord(7, 6, "CAT")

	// ON under CA forms CO and AN as cross-words
	result, err := AnalyzeMove(s.board, []Placement{
		place(8, 6, 'O'), place(8, 7, 'N'),
	})
	s.Require().NoError(err)

	s.Equal("ON", result.PrimaryWord)
	s.Len(result.Words, 3)

	scores := make(map[string]int, len(result.Words))
	for _, ws := range result.Words {
		scores[ws.Word] = ws.Score
	}
	// ON: O(1 x2 on the double letter) + N(1) = 3
	// CO: C(3, face) + O(1 x2) = 5
	// AN: A(1, face) + N(1) = 2
	s.Equal(3, scores["ON"])
	s.Equal(5, scores["CO"])
	s.Equal(2, scores["AN"])
	s.Equal(10, result.TotalScore)
}

func (s *RulesSuite) TestWordMultipliersStackMultiplicatively() {
	// Row 0 spans two triple-word squares and a double-letter square
	placed := make(map[model.Position]rune)
	run := make([]model.Position, 0, 8)
	for col := 0; col <= 7; col++ {
		pos := model.Position{Row: 0, Col: col}
		placed[pos] = 'A'
		run = append(run, pos)
	}

	ws := scoreWord(s.board, run, placed)
	// Letters: 7x1 + 1x2 (double letter at col 3) = 9, then x3 x3
	s.Equal(81, ws.Score)
}

// Shape check

func (s *RulesSuite) TestIsWordShaped() {
	s.True(IsWordShaped("CAT"))
	s.True(IsWordShaped("AT"))
	s.False(IsWordShaped("A"))
	s.False(IsWordShaped(""))
	s.False(IsWordShaped("C4T"))
	s.False(IsWordShaped("cat"))
}
