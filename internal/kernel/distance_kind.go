package kernel

import (
	"strings"

	"github.com/elchemista/vettore/internal/verrors"
)

// Distance identifies which of the five supported distance regimes a
// collection was created with. It is immutable once a collection exists.
type Distance int

const (
	// Euclidean scores by 1/(1+L2).
	Euclidean Distance = iota
	// Cosine scores by normalized dot product.
	Cosine
	// Dot scores by raw dot product through a logistic squash.
	Dot
	// Binary scores by Hamming distance over sign-bit signatures.
	Binary
	// HNSW scores identically to Euclidean but answers queries via the
	// approximate graph index instead of a brute-force scan.
	HNSW
)

// String renders the canonical lowercase name of a Distance.
func (d Distance) String() string {
	switch d {
	case Euclidean:
		return "euclidean"
	case Cosine:
		return "cosine"
	case Dot:
		return "dot"
	case Binary:
		return "binary"
	case HNSW:
		return "hnsw"
	default:
		return "unknown"
	}
}

// ParseDistance recognizes the case-insensitive distance names from spec
// §6: euclidean|l2, cosine, dot|dotproduct, binary|hamming, hnsw. Anything
// else fails with ErrUnknownDistance.
func ParseDistance(s string) (Distance, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "euclidean", "l2":
		return Euclidean, nil
	case "cosine":
		return Cosine, nil
	case "dot", "dotproduct":
		return Dot, nil
	case "binary", "hamming":
		return Binary, nil
	case "hnsw":
		return HNSW, nil
	default:
		return 0, verrors.ErrUnknownDistance
	}
}
