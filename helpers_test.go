package vettore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEuclideanDistance_IdenticalVectorsScoreOne(t *testing.T) {
	assert.InDelta(t, 1.0, EuclideanDistance([]float32{1, 2, 3}, []float32{1, 2, 3}), 1e-6)
}

func TestEuclideanDistance_MapsIntoZeroOneRange(t *testing.T) {
	got := EuclideanDistance([]float32{0, 0}, []float32{3, 4})
	assert.InDelta(t, 1.0/(1.0+5.0), got, 1e-6)
	assert.GreaterOrEqual(t, got, float32(0))
	assert.LessOrEqual(t, got, float32(1))
}

func TestCosineSimilarity_IdenticalDirectionScoresOne(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSimilarity([]float32{1, 0}, []float32{5, 0}), 1e-5)
}

func TestCosineSimilarity_OppositeDirectionScoresZero(t *testing.T) {
	assert.InDelta(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-5)
}

func TestCosineSimilarity_OrthogonalScoresHalf(t *testing.T) {
	assert.InDelta(t, 0.5, CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-5)
}

func TestDotProduct_ReturnsRawValue(t *testing.T) {
	assert.InDelta(t, 11.0, DotProduct([]float32{1, 2}, []float32{3, 4}), 1e-6)
}

func TestHammingDistanceBits_CountsDifferingSigns(t *testing.T) {
	d := HammingDistanceBits([]float32{1, 1, 1, 1}, []float32{1, 1, -1, -1})
	assert.Equal(t, 2, d)
}

func TestCompressF32Vector_PacksOneWordPerSixtyFourComponents(t *testing.T) {
	sig := CompressF32Vector(make([]float32, 65))
	assert.Len(t, sig, 2)
}

func TestMMRRerankEmbeddings_StopsAtFinalK(t *testing.T) {
	candidates := []ScoredValue{
		{Value: "a", Score: 0.9},
		{Value: "b", Score: 0.8},
		{Value: "c", Score: 0.7},
	}
	vectors := map[string][]float32{
		"a": {1, 0}, "b": {0, 1}, "c": {-1, 0},
	}
	out := MMRRerankEmbeddings(candidates, vectors, Cosine, 0.5, 2)
	assert.Len(t, out, 2)
	assert.Equal(t, "a", out[0].Value)
}
