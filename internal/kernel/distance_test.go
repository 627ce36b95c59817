package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TS01: Round-trip — compress produces ceil(dim/64) words and a
// signature's Hamming distance to itself is zero.
func TestCompress_SelfHammingIsZero(t *testing.T) {
	v := []float32{1, -1, 0, 2.5, -0.001, 3, -4, 5, 6, 7}

	sig := Compress(v)

	require.Len(t, sig, WordsForDim(len(v)))
	assert.Equal(t, 0, Hamming(sig, sig))
}

func TestCompress_WordCountForWideVectors(t *testing.T) {
	v := make([]float32, 130) // 3 words: 64+64+2
	sig := Compress(v)
	assert.Len(t, sig, 3)
}

// TS02: Flipping the sign of a single component increments Hamming by
// exactly one.
func TestCompress_SingleSignFlipIncrementsHammingByOne(t *testing.T) {
	v := []float32{1, 2, 3, -4, 5, -6, 7, 8, 9, -10, 11, 12, 13, 70}
	sigA := Compress(v)

	flipped := append([]float32(nil), v...)
	flipped[5] = -flipped[5] // was negative, becomes positive
	sigB := Compress(flipped)

	assert.Equal(t, 1, Hamming(sigA, sigB))
}

func TestCompress_ExactZeroMapsToOne(t *testing.T) {
	sig := Compress([]float32{0})
	// bit 0 of word 0 set means the high bit is 1.
	assert.Equal(t, uint64(1)<<63, sig[0])
}

// TS03: Normalize produces a unit vector, or an unchanged copy near zero.
func TestNormalize_UnitNorm(t *testing.T) {
	v := []float32{3, 4}
	out := Normalize(v)
	norm := Norm(out)
	assert.InDelta(t, 1.0, norm, 1e-5)
	assert.InDeltaSlice(t, []float32{0.6, 0.8}, out, 1e-5)
}

func TestNormalize_NearZeroVectorUnchanged(t *testing.T) {
	v := []float32{0, 0, 0}
	out := Normalize(v)
	assert.Equal(t, v, out)
}

func TestSignatureKey_DeterministicAndDistinguishing(t *testing.T) {
	a := Compress([]float32{1, 2, 3})
	b := Compress([]float32{1, 2, 3})
	c := Compress([]float32{-1, 2, 3})

	assert.Equal(t, SignatureKey(a), SignatureKey(b))
	assert.NotEqual(t, SignatureKey(a), SignatureKey(c))
}

func TestParseDistance_CaseInsensitive(t *testing.T) {
	for _, name := range []string{"EUCLIDEAN", "L2", "Cosine", "dot", "DotProduct", "Binary", "hamming", "HNSW"} {
		_, err := ParseDistance(name)
		assert.NoError(t, err, name)
	}
}

func TestParseDistance_UnknownFails(t *testing.T) {
	_, err := ParseDistance("manhattan")
	assert.Error(t, err)
}
