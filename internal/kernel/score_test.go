package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(0), Clamp(-0.5))
	assert.Equal(t, float32(1), Clamp(1.5))
	assert.Equal(t, float32(0.5), Clamp(0.5))
}

func TestScoreEuclidean_ExactMatchIsOne(t *testing.T) {
	assert.Equal(t, float32(1), ScoreEuclidean(0))
}

func TestScoreEuclidean_UnitDistanceIsHalf(t *testing.T) {
	assert.InDelta(t, 0.5, ScoreEuclidean(1), 1e-6)
}

func TestScoreCosine_RangeAndMidpoint(t *testing.T) {
	assert.Equal(t, float32(1), ScoreCosine(1))
	assert.Equal(t, float32(0), ScoreCosine(-1))
	assert.Equal(t, float32(0.5), ScoreCosine(0))
}

func TestScoreDot_ZeroIsHalf(t *testing.T) {
	assert.InDelta(t, 0.5, ScoreDot(0), 1e-6)
}

func TestScoreBinary_ZeroHammingIsOne(t *testing.T) {
	assert.Equal(t, float32(1), ScoreBinary(0, 8))
}

func TestScoreBinary_FullHammingIsZero(t *testing.T) {
	assert.Equal(t, float32(0), ScoreBinary(8, 8))
}
