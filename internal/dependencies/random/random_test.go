package random

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntnStaysInRange(t *testing.T) {
	r := New()

	for i := 0; i < 1000; i++ {
		v := r.Intn(7)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 7)
	}
}

func TestIntnDegenerateBounds(t *testing.T) {
	r := New()

	assert.Equal(t, 0, r.Intn(0))
	assert.Equal(t, 0, r.Intn(-3))
	assert.Equal(t, 0, r.Intn(1))
}

func TestStringUsesAlphabet(t *testing.T) {
	r := New()

	const alphabet = "ABCDEF"
	s := r.String(32, alphabet)
	require.Len(t, s, 32)
	for _, ch := range s {
		assert.True(t, strings.ContainsRune(alphabet, ch), "unexpected character %q", ch)
	}

	assert.Empty(t, r.String(0, alphabet))
	assert.Empty(t, r.String(5, ""))
}

func TestShufflePreservesElements(t *testing.T) {
	r := New()

	tiles := []rune("AABBCCDDEE")
	r.Shuffle(len(tiles), func(i, j int) {
		tiles[i], tiles[j] = tiles[j], tiles[i]
	})

	counts := make(map[rune]int)
	for _, ch := range tiles {
		counts[ch]++
	}
	assert.Equal(t, map[rune]int{'A': 2, 'B': 2, 'C': 2, 'D': 2, 'E': 2}, counts)
}

// Shuffling repeatedly, a tracked element should land in every position
// roughly uniformly. With 2000 trials over 10 positions the expected count
// per position is 200; the bands are wide enough that a correct shuffle
// fails with negligible probability, while an off-by-one Fisher-Yates
// (which can never leave certain elements in place) fails reliably.
func TestShuffleIsUnbiased(t *testing.T) {
	r := New()

	const (
		size   = 10
		trials = 2000
	)
	landings := make([]int, size)
	for trial := 0; trial < trials; trial++ {
		perm := make([]int, size)
		for i := range perm {
			perm[i] = i
		}
		r.Shuffle(size, func(i, j int) {
			perm[i], perm[j] = perm[j], perm[i]
		})
		for pos, v := range perm {
			if v == 0 {
				landings[pos]++
			}
		}
	}

	for pos, count := range landings {
		assert.Greater(t, count, 120, "element 0 under-represented at position %d", pos)
		assert.Less(t, count, 280, "element 0 over-represented at position %d", pos)
	}
}
