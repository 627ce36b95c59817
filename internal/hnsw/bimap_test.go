package hnsw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBimap_InsertAndSearchRoundTrip(t *testing.T) {
	b := NewBimap()
	for i := 0; i < 80; i++ {
		require.NoError(t, b.Insert(stringID(i), randVec(i, 8)))
	}
	assert.Equal(t, 80, b.Len())

	target := randVec(40, 8)
	matches := b.Search(target, 3)
	require.NotEmpty(t, matches)
	assert.Equal(t, stringID(40), matches[0].Value)
}

func TestBimap_RemoveDropsValue(t *testing.T) {
	b := NewBimap()
	require.NoError(t, b.Insert("a", randVec(1, 4)))
	require.NoError(t, b.Insert("b", randVec(2, 4)))

	b.Remove("a")

	assert.False(t, b.Contains("a"))
	assert.True(t, b.Contains("b"))
	assert.Equal(t, 1, b.Len())
}

func TestBimap_RemoveUnknownValueIsNoop(t *testing.T) {
	b := NewBimap()
	require.NoError(t, b.Insert("a", randVec(1, 4)))
	b.Remove("missing")
	assert.Equal(t, 1, b.Len())
}

func stringID(i int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	if i < len(letters) {
		return string(letters[i])
	}
	return string(letters[i%len(letters)]) + string(letters[(i/len(letters))%len(letters)])
}
