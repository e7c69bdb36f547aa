package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func rack(letters string) []Tile {
	tiles := make([]Tile, 0, len(letters))
	for _, ch := range letters {
		tiles = append(tiles, NewTile(ch))
	}
	return tiles
}

func TestRackContains(t *testing.T) {
	p := &PlayerState{Rack: rack("AABCDEF")}

	assert.True(t, p.RackContains([]rune("ABC")))
	assert.True(t, p.RackContains([]rune("AA")))
	assert.False(t, p.RackContains([]rune("AAA")), "multiplicity must be respected")
	assert.False(t, p.RackContains([]rune("Z")))
	assert.True(t, p.RackContains(nil))
}

func TestRemoveFromRack(t *testing.T) {
	p := &PlayerState{Rack: rack("AABCDEF")}

	removed := p.RemoveFromRack([]rune("AB"))
	assert.Len(t, removed, 2)
	assert.Len(t, p.Rack, 5)
	// One A remains
	assert.True(t, p.RackContains([]rune("A")))
	assert.False(t, p.RackContains([]rune("AA")))
	assert.False(t, p.RackContains([]rune("B")))
}

func TestRemainingTileValue(t *testing.T) {
	p := &PlayerState{Rack: rack("QZA")}
	assert.Equal(t, 21, p.RemainingTileValue())

	empty := &PlayerState{}
	assert.Equal(t, 0, empty.RemainingTileValue())
}
