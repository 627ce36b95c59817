// Package mmr implements Maximal Marginal Relevance re-ranking: a greedy
// diversification pass over an initial similarity-ranked candidate list
// that trades off relevance to the query against redundancy with
// already-selected candidates.
package mmr

import (
	"github.com/elchemista/vettore/internal/kernel"
)

// Candidate is one entry of the initial ranked list: a value and its
// similarity to the query, already mapped into the [0,1] score domain of
// the collection's distance.
type Candidate struct {
	Value string
	Score float32
}

// Rerank greedily selects up to finalK candidates maximizing
//
//	alpha*sim_query(c) - (1-alpha)*max(sim(c,s) for s in selected)
//
// at each step. vectors must contain an entry for every candidate's value.
// Ties in the MMR score are broken by the candidate's position in the
// input slice.
func Rerank(candidates []Candidate, vectors map[string][]float32, dist kernel.Distance, alpha float32, finalK int) []Candidate {
	if finalK <= 0 {
		return nil
	}

	type ordered struct {
		Candidate
		origIndex int
	}
	remaining := make([]ordered, len(candidates))
	for i, c := range candidates {
		remaining[i] = ordered{Candidate: c, origIndex: i}
	}

	selected := make([]Candidate, 0, finalK)
	for len(selected) < finalK && len(remaining) > 0 {
		bestPos := 0
		bestScore := mmrScore(remaining[0].Candidate, selected, vectors, dist, alpha)
		for i := 1; i < len(remaining); i++ {
			s := mmrScore(remaining[i].Candidate, selected, vectors, dist, alpha)
			if s > bestScore {
				bestScore = s
				bestPos = i
			}
		}
		selected = append(selected, remaining[bestPos].Candidate)
		remaining = append(remaining[:bestPos], remaining[bestPos+1:]...)
	}
	return selected
}

func mmrScore(c Candidate, selected []Candidate, vectors map[string][]float32, dist kernel.Distance, alpha float32) float32 {
	var maxSim float32
	cv := vectors[c.Value]
	for _, s := range selected {
		sim := similarity(cv, vectors[s.Value], dist)
		if sim > maxSim {
			maxSim = sim
		}
	}
	return alpha*c.Score - (1-alpha)*maxSim
}

// similarity maps a pairwise distance between two vectors into the same
// [0,1] score domain search uses, per distance.
func similarity(a, b []float32, dist kernel.Distance) float32 {
	switch dist {
	case kernel.Cosine:
		return kernel.ScoreCosine(kernel.Dot(a, b))
	case kernel.Dot:
		return kernel.ScoreDot(kernel.Dot(a, b))
	case kernel.Binary:
		sigA := kernel.Compress(a)
		sigB := kernel.Compress(b)
		return kernel.ScoreBinary(kernel.Hamming(sigA, sigB), len(a))
	default: // Euclidean, HNSW
		return kernel.ScoreEuclidean(kernel.L2(a, b))
	}
}
