package tilebag

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/letterduel/letterduel/internal/dependencies/mocks"
	"github.com/letterduel/letterduel/internal/model"
)

type ServiceSuite struct {
	suite.Suite
	random  *mocks.MockRandom
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.random = mocks.NewMockRandom()
	s.service = New(s.random)
}

func (s *ServiceSuite) TestNewShuffledBagHas98Tiles() {
	bag := s.service.NewShuffledBag()
	s.Len(bag, model.TotalTiles)
}

func (s *ServiceSuite) TestNewShuffledBagAppliesPermutation() {
	s.random.ShuffleNoop = false

	bag := s.service.NewShuffledBag()

	// The mock reverses, so the bag starts with the distribution's tail
	s.Equal('Z', bag[0].Letter)
	s.Equal('A', bag[len(bag)-1].Letter)

	// Permutation preserves the multiset
	counts := make(map[rune]int)
	for _, tile := range bag {
		counts[tile.Letter]++
	}
	s.Equal(12, counts['E'])
	s.Equal(1, counts['Q'])
}

func (s *ServiceSuite) TestDrawTakesFromFront() {
	bag := s.service.NewShuffledBag()

	drawn, remaining := Draw(bag, model.RackSize)
	s.Len(drawn, model.RackSize)
	s.Len(remaining, model.TotalTiles-model.RackSize)
	s.Equal(bag[:model.RackSize], drawn)
}

func (s *ServiceSuite) TestDrawMoreThanAvailable() {
	bag := []model.Tile{model.NewTile('A'), model.NewTile('B')}

	drawn, remaining := Draw(bag, 5)
	s.Len(drawn, 2)
	s.Empty(remaining)
}

func (s *ServiceSuite) TestDrawFromEmptyBag() {
	drawn, remaining := Draw(nil, 3)
	s.Empty(drawn)
	s.Empty(remaining)
}

func (s *ServiceSuite) TestReplenishTopsUpToRackSize() {
	bag := s.service.NewShuffledBag()
	rackTiles := []model.Tile{model.NewTile('X'), model.NewTile('Y')}

	rackTiles, bag = Replenish(rackTiles, bag)
	s.Len(rackTiles, model.RackSize)
	s.Len(bag, model.TotalTiles-5)
}

func (s *ServiceSuite) TestReplenishFullRackDrawsNothing() {
	bag := s.service.NewShuffledBag()
	full := bag[:model.RackSize]

	rackTiles, remaining := Replenish(full, bag)
	s.Len(rackTiles, model.RackSize)
	s.Len(remaining, model.TotalTiles)
}

func (s *ServiceSuite) TestTileConservation() {
	// Two racks drawn plus the remaining bag always total 98
	bag := s.service.NewShuffledBag()
	rack1, bag := Draw(bag, model.RackSize)
	rack2, bag := Draw(bag, model.RackSize)

	s.Len(rack1, 7)
	s.Len(rack2, 7)
	s.Len(bag, 84)
	s.Equal(model.TotalTiles, len(rack1)+len(rack2)+len(bag))
}

func (s *ServiceSuite) TestReturnTilesPreservesCount() {
	bag := s.service.NewShuffledBag()
	drawn, remaining := Draw(bag, 3)

	newBag := s.service.ReturnTiles(remaining, drawn)
	s.Len(newBag, model.TotalTiles)
}
