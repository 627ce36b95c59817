// Package kernel implements the numeric primitives the rest of vettore is
// built on: SIMD-backed dot product and Euclidean distance (delegated to
// viterin/vek, the same float32 SIMD kernel library ihavespoons-zrok's
// vector store uses for its cosine kernel), vector normalization, sign-bit
// signature compression, and Hamming distance over packed signatures.
package kernel

import (
	"encoding/binary"
	"math/bits"

	"github.com/viterin/vek/vek32"
)

// Epsilon32 is the single-precision machine epsilon (2^-23), used as the
// guard against division by zero when normalizing a vector.
const Epsilon32 float32 = 1.1920929e-07

// Dot returns the dot product of a and b. The caller guarantees len(a) ==
// len(b); behavior is undefined otherwise, matching vek32's own contract.
func Dot(a, b []float32) float32 {
	return vek32.Dot(a, b)
}

// L2 returns the Euclidean distance between a and b.
func L2(a, b []float32) float32 {
	return vek32.Distance(a, b)
}

// SquaredL2 returns the squared Euclidean distance between a and b.
func SquaredL2(a, b []float32) float32 {
	d := vek32.Distance(a, b)
	return d * d
}

// Norm returns the L2 norm (magnitude) of v.
func Norm(v []float32) float32 {
	return vek32.Norm(v)
}

// Normalize returns v scaled to unit length. If the norm is not strictly
// greater than Epsilon32, a copy of v is returned unchanged rather than
// risking a division blow-up.
func Normalize(v []float32) []float32 {
	out := make([]float32, len(v))
	norm := Norm(v)
	if norm <= Epsilon32 {
		copy(out, v)
		return out
	}
	inv := 1 / norm
	for i, x := range v {
		out[i] = x * inv
	}
	return out
}

// WordsForDim returns the number of 64-bit words a sign-bit signature of
// the given dimension packs into: ceil(dim/64).
func WordsForDim(dim int) int {
	return (dim + 63) / 64
}

// Compress produces the sign-bit signature of v: ceil(len(v)/64) 64-bit
// words, big-endian within each word. Bit b of word w (0 = most
// significant bit) corresponds to component 64w+b; it is 1 iff that
// component is >= 0 (exact zero maps to 1). The final partial word is left
// with its unused low bits zero, which is exactly "the last meaningful bit
// occupies the high end of its word".
func Compress(v []float32) []uint64 {
	words := make([]uint64, WordsForDim(len(v)))
	for i, x := range v {
		w := i / 64
		b := i % 64
		if x >= 0 {
			words[w] |= uint64(1) << uint(63-b)
		}
	}
	return words
}

// Hamming returns the population count of the XOR of two equal-length
// packed signatures.
func Hamming(a, b []uint64) int {
	n := 0
	for i := range a {
		n += bits.OnesCount64(a[i] ^ b[i])
	}
	return n
}

// SignatureKey returns a canonical, comparable encoding of a packed
// signature suitable for use as a map key. Go slices are not comparable,
// so the words are serialized to a fixed big-endian byte string; this is
// the collection store's duplicate-vector index key.
func SignatureKey(words []uint64) string {
	buf := make([]byte, 8*len(words))
	for i, w := range words {
		binary.BigEndian.PutUint64(buf[i*8:], w)
	}
	return string(buf)
}
