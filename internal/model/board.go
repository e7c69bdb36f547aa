package model

// BoardSize is the board dimension
const BoardSize = 15

// CenterPos is the starting square every first move must cover
var CenterPos = Position{Row: 7, Col: 7}

// Position identifies a cell on the board
type Position struct {
	Row int `json:"row"` // 0-indexed from top
	Col int `json:"col"` // 0-indexed from left
}

// CellType is the premium classification of a board cell, fixed at creation
type CellType string

const (
	CellNormal       CellType = "normal"
	CellDoubleLetter CellType = "dl"
	CellTripleLetter CellType = "tl"
	CellDoubleWord   CellType = "dw"
	CellTripleWord   CellType = "tw"
	CellCenter       CellType = "center" // doubles the word, like dw
)

// LetterMultiplier returns the letter score multiplier for this cell type
func (t CellType) LetterMultiplier() int {
	switch t {
	case CellDoubleLetter:
		return 2
	case CellTripleLetter:
		return 3
	default:
		return 1
	}
}

// WordMultiplier returns the word score multiplier for this cell type
func (t CellType) WordMultiplier() int {
	switch t {
	case CellDoubleWord, CellCenter:
		return 2
	case CellTripleWord:
		return 3
	default:
		return 1
	}
}

// BoardCell is one square of the board. Locked means a tile has been
// permanently placed and counted in a prior scored move.
type BoardCell struct {
	Letter rune     `json:"letter"` // 0 means empty
	Type   CellType `json:"type"`
	Locked bool     `json:"locked"`
}

// Board is the shared 15x15 grid for a game
type Board struct {
	Cells [BoardSize][BoardSize]BoardCell `json:"cells"`
}

// Premium square coordinates for the canonical layout
var (
	tripleWordPositions = []Position{
		{0, 0}, {0, 7}, {0, 14},
		{7, 0}, {7, 14},
		{14, 0}, {14, 7}, {14, 14},
	}
	doubleWordPositions = []Position{
		{1, 1}, {2, 2}, {3, 3}, {4, 4},
		{1, 13}, {2, 12}, {3, 11}, {4, 10},
		{13, 1}, {12, 2}, {11, 3}, {10, 4},
		{13, 13}, {12, 12}, {11, 11}, {10, 10},
	}
	tripleLetterPositions = []Position{
		{1, 5}, {1, 9},
		{5, 1}, {5, 5}, {5, 9}, {5, 13},
		{9, 1}, {9, 5}, {9, 9}, {9, 13},
		{13, 5}, {13, 9},
	}
	doubleLetterPositions = []Position{
		{0, 3}, {0, 11},
		{2, 6}, {2, 8},
		{3, 0}, {3, 7}, {3, 14},
		{6, 2}, {6, 6}, {6, 8}, {6, 12},
		{7, 3}, {7, 11},
		{8, 2}, {8, 6}, {8, 8}, {8, 12},
		{11, 0}, {11, 7}, {11, 14},
		{12, 6}, {12, 8},
		{14, 3}, {14, 11},
	}
)

// NewBoard creates a fresh board with the canonical premium-square layout.
// Deterministic, no randomness.
func NewBoard() *Board {
	b := &Board{}
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			b.Cells[row][col] = BoardCell{Type: CellNormal}
		}
	}
	for _, p := range tripleWordPositions {
		b.Cells[p.Row][p.Col].Type = CellTripleWord
	}
	for _, p := range doubleWordPositions {
		b.Cells[p.Row][p.Col].Type = CellDoubleWord
	}
	for _, p := range tripleLetterPositions {
		b.Cells[p.Row][p.Col].Type = CellTripleLetter
	}
	for _, p := range doubleLetterPositions {
		b.Cells[p.Row][p.Col].Type = CellDoubleLetter
	}
	b.Cells[CenterPos.Row][CenterPos.Col].Type = CellCenter
	return b
}

// Cell returns the cell at the given position, or a zero cell if out of bounds
func (b *Board) Cell(pos Position) BoardCell {
	if !b.IsValidPosition(pos) {
		return BoardCell{}
	}
	return b.Cells[pos.Row][pos.Col]
}

// IsValidPosition returns true if the position is within bounds
func (b *Board) IsValidPosition(pos Position) bool {
	return pos.Row >= 0 && pos.Row < BoardSize && pos.Col >= 0 && pos.Col < BoardSize
}

// IsEmpty returns true if no cell is locked
func (b *Board) IsEmpty() bool {
	return b.LockedCount() == 0
}

// LockedCount returns the number of locked cells on the board
func (b *Board) LockedCount() int {
	count := 0
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if b.Cells[row][col].Locked {
				count++
			}
		}
	}
	return count
}

// Lock places a letter at the given position and locks the cell.
// Locked cells never lose their letter.
func (b *Board) Lock(pos Position, letter rune) {
	if b.IsValidPosition(pos) {
		b.Cells[pos.Row][pos.Col].Letter = letter
		b.Cells[pos.Row][pos.Col].Locked = true
	}
}

// HasLockedNeighbour returns true if any 4-directionally adjacent cell is locked
func (b *Board) HasLockedNeighbour(pos Position) bool {
	neighbours := []Position{
		{pos.Row - 1, pos.Col},
		{pos.Row + 1, pos.Col},
		{pos.Row, pos.Col - 1},
		{pos.Row, pos.Col + 1},
	}
	for _, n := range neighbours {
		if b.IsValidPosition(n) && b.Cells[n.Row][n.Col].Locked {
			return true
		}
	}
	return false
}
