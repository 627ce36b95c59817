package mmr

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/elchemista/vettore/internal/kernel"
)

// TS01: With alpha=1, MMR collapses to a pure relevance ranking —
// redundancy is never penalized.
func TestRerank_AlphaOneIsPureRelevance(t *testing.T) {
	candidates := []Candidate{
		{Value: "a", Score: 0.9},
		{Value: "b", Score: 0.8},
		{Value: "c", Score: 0.95},
	}
	vectors := map[string][]float32{
		"a": {1, 0}, "b": {1, 0}, "c": {0, 1},
	}

	out := Rerank(candidates, vectors, kernel.Cosine, 1.0, 3)
	assert.Equal(t, []string{"c", "a", "b"}, values(out))
}

// TS02: With alpha=0, the second pick must be the candidate least similar
// to the first, regardless of query relevance.
func TestRerank_AlphaZeroMaximizesDiversity(t *testing.T) {
	candidates := []Candidate{
		{Value: "seed", Score: 1.0},
		{Value: "near-dup", Score: 0.99},
		{Value: "far", Score: 0.5},
	}
	vectors := map[string][]float32{
		"seed":     {1, 0, 0, 0},
		"near-dup": {0.99, 0.1, 0, 0},
		"far":      {-1, 0, 0, 0},
	}
	sim1 := similarity(vectors["seed"], vectors["near-dup"], kernel.Euclidean)
	sim2 := similarity(vectors["seed"], vectors["far"], kernel.Euclidean)
	assert.Greater(t, sim1, sim2)

	out := Rerank(candidates, vectors, kernel.Euclidean, 0.0, 2)
	assert.Len(t, out, 2)
	assert.Equal(t, []string{"seed", "far"}, values(out))
}

func TestRerank_StopsAtFinalK(t *testing.T) {
	candidates := []Candidate{
		{Value: "a", Score: 0.9},
		{Value: "b", Score: 0.8},
		{Value: "c", Score: 0.7},
	}
	vectors := map[string][]float32{
		"a": {1, 0}, "b": {0, 1}, "c": {-1, 0},
	}
	out := Rerank(candidates, vectors, kernel.Cosine, 0.5, 2)
	assert.Len(t, out, 2)
}

func TestRerank_FinalKZeroReturnsEmpty(t *testing.T) {
	out := Rerank([]Candidate{{Value: "a", Score: 1}}, map[string][]float32{"a": {1}}, kernel.Euclidean, 0.5, 0)
	assert.Empty(t, out)
}

func TestRerank_ExhaustsCandidatesBeforeFinalK(t *testing.T) {
	candidates := []Candidate{{Value: "a", Score: 1}}
	vectors := map[string][]float32{"a": {1, 0}}
	out := Rerank(candidates, vectors, kernel.Cosine, 0.5, 5)
	assert.Len(t, out, 1)
}

func values(cs []Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Value
	}
	return out
}
