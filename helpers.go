package vettore

import (
	"github.com/elchemista/vettore/internal/kernel"
	"github.com/elchemista/vettore/internal/mmr"
)

// EuclideanDistance returns the Euclidean (L2) distance between a and b,
// mapped into a [0,1] similarity via clamp(1/(1+d)).
func EuclideanDistance(a, b []float32) float32 { return kernel.ScoreEuclidean(kernel.L2(a, b)) }

// CosineSimilarity returns the cosine similarity of a and b mapped into
// [0,1] via clamp((dot+1)/2). Unlike the collection's internal Cosine
// distance, this helper normalizes its inputs itself rather than assuming
// they already are.
func CosineSimilarity(a, b []float32) float32 {
	na, nb := kernel.Normalize(a), kernel.Normalize(b)
	return kernel.ScoreCosine(kernel.Dot(na, nb))
}

// DotProduct returns the raw dot product of a and b.
func DotProduct(a, b []float32) float32 { return kernel.Dot(a, b) }

// HammingDistanceBits returns the Hamming distance between the sign-bit
// signatures of a and b.
func HammingDistanceBits(a, b []float32) int {
	return kernel.Hamming(kernel.Compress(a), kernel.Compress(b))
}

// CompressF32Vector returns the packed sign-bit signature of v.
func CompressF32Vector(v []float32) []uint64 { return kernel.Compress(v) }

// MMRRerankEmbeddings runs Maximal Marginal Relevance re-ranking directly
// over caller-supplied vectors, without going through a Database
// collection. vectors must contain an entry for every candidate's value.
func MMRRerankEmbeddings(candidates []ScoredValue, vectors map[string][]float32, distance Distance, alpha float32, finalK int) []ScoredValue {
	in := make([]mmr.Candidate, len(candidates))
	for i, c := range candidates {
		in[i] = mmr.Candidate{Value: c.Value, Score: c.Score}
	}
	out := mmr.Rerank(in, vectors, distance, alpha, finalK)
	result := make([]ScoredValue, len(out))
	for i, c := range out {
		result[i] = ScoredValue{Value: c.Value, Score: c.Score}
	}
	return result
}
