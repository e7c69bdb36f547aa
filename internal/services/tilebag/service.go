package tilebag

import (
	"github.com/letterduel/letterduel/internal/dependencies/random"
	"github.com/letterduel/letterduel/internal/model"
)

// Service provides tile bag operations. The bag is an ordered sequence:
// draws always take from the front in shuffle order, never re-randomizing.
type Service struct {
	random random.Random
}

// New creates a new tile bag service
func New(random random.Random) *Service {
	return &Service{
		random: random,
	}
}

// NewShuffledBag expands the fixed letter distribution into a 98-tile bag
// and applies an unbiased Fisher-Yates permutation
func (s *Service) NewShuffledBag() []model.Tile {
	bag := model.FullDistribution()
	s.random.Shuffle(len(bag), func(i, j int) {
		bag[i], bag[j] = bag[j], bag[i]
	})
	return bag
}

// ReturnTiles puts exchanged tiles back into the bag and reshuffles it
func (s *Service) ReturnTiles(bag []model.Tile, returned []model.Tile) []model.Tile {
	out := make([]model.Tile, 0, len(bag)+len(returned))
	out = append(out, bag...)
	out = append(out, returned...)
	s.random.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// Draw takes the first n tiles from the bag. If n exceeds the bag size it
// draws all available tiles; a partial draw is valid and signals a
// near-empty bag.
func Draw(bag []model.Tile, n int) (drawn []model.Tile, remaining []model.Tile) {
	if n < 0 {
		n = 0
	}
	if n > len(bag) {
		n = len(bag)
	}
	drawn = append([]model.Tile(nil), bag[:n]...)
	remaining = append([]model.Tile(nil), bag[n:]...)
	return drawn, remaining
}

// Replenish tops a rack back up to RackSize from the bag, returning the new
// rack and remaining bag
func Replenish(rack []model.Tile, bag []model.Tile) ([]model.Tile, []model.Tile) {
	need := model.RackSize - len(rack)
	if need <= 0 {
		return rack, bag
	}
	drawn, remaining := Draw(bag, need)
	return append(rack, drawn...), remaining
}
