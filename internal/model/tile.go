package model

// Tile is a single letter tile. Immutable value type.
type Tile struct {
	Letter rune `json:"letter"`
	Points int  `json:"points"`
}

// RackSize is the maximum number of tiles a player holds
const RackSize = 7

// TotalTiles is the number of tiles in a fresh bag (standard English
// distribution without blanks)
const TotalTiles = 98

// letterCounts is the standard English distribution, blanks excluded
var letterCounts = map[rune]int{
	'A': 9, 'B': 2, 'C': 2, 'D': 4, 'E': 12, 'F': 2, 'G': 3, 'H': 2,
	'I': 9, 'J': 1, 'K': 1, 'L': 4, 'M': 2, 'N': 6, 'O': 8, 'P': 2,
	'Q': 1, 'R': 6, 'S': 4, 'T': 6, 'U': 4, 'V': 2, 'W': 2, 'X': 1,
	'Y': 2, 'Z': 1,
}

// letterPoints is the standard English point table
var letterPoints = map[rune]int{
	'A': 1, 'B': 3, 'C': 3, 'D': 2, 'E': 1, 'F': 4, 'G': 2, 'H': 4,
	'I': 1, 'J': 8, 'K': 5, 'L': 1, 'M': 3, 'N': 1, 'O': 1, 'P': 3,
	'Q': 10, 'R': 1, 'S': 1, 'T': 1, 'U': 1, 'V': 4, 'W': 4, 'X': 8,
	'Y': 4, 'Z': 10,
}

// NewTile creates a tile for the given letter with its standard point value
func NewTile(letter rune) Tile {
	return Tile{Letter: letter, Points: letterPoints[letter]}
}

// LetterPoints returns the point value for a letter (0 for unknown runes)
func LetterPoints(letter rune) int {
	return letterPoints[letter]
}

// LetterCount returns how many tiles of a letter a fresh bag contains
func LetterCount(letter rune) int {
	return letterCounts[letter]
}

// FullDistribution expands the letter distribution into an unshuffled tile
// list of exactly TotalTiles tiles, in alphabetical order
func FullDistribution() []Tile {
	tiles := make([]Tile, 0, TotalTiles)
	for letter := 'A'; letter <= 'Z'; letter++ {
		for i := 0; i < letterCounts[letter]; i++ {
			tiles = append(tiles, NewTile(letter))
		}
	}
	return tiles
}

// TileValueSum returns the total point value of a set of tiles, used for
// end-game settlement of unplayed rack tiles
func TileValueSum(tiles []Tile) int {
	sum := 0
	for _, t := range tiles {
		sum += t.Points
	}
	return sum
}
