package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elchemista/vettore/internal/kernel"
	"github.com/elchemista/vettore/internal/verrors"
)

func newCol(t *testing.T, dist kernel.Distance, keep bool) *Collection {
	t.Helper()
	c, err := NewCollection(4, dist, keep, nil)
	require.NoError(t, err)
	return c
}

func newColDim(t *testing.T, dist kernel.Distance, keep bool, dim int) *Collection {
	t.Helper()
	c, err := NewCollection(dim, dist, keep, nil)
	require.NoError(t, err)
	return c
}

// distinctSignVec encodes i's own bits into the per-component signs so a
// batch of i in [0, 2^dim) never collides on the sign-bit duplicate-vector
// index.
func distinctSignVec(i, dim int) []float32 {
	v := make([]float32, dim)
	base := float32(i) + 1
	for j := 0; j < dim; j++ {
		sign := float32(1)
		if (i>>uint(j))&1 == 1 {
			sign = -1
		}
		v[j] = sign * base
	}
	return v
}

// TS01: A fresh insert is retrievable by value and by vector, and counts
// toward Len.
func TestCollection_InsertThenGetByValueAndVector(t *testing.T) {
	c := newCol(t, kernel.Euclidean, true)
	vec := []float32{1, 2, 3, 4}

	require.NoError(t, c.Insert("a", vec, map[string]string{"k": "v"}))
	assert.Equal(t, 1, c.Len())

	rec, err := c.GetByValue("a")
	require.NoError(t, err)
	assert.Equal(t, "a", rec.Value)
	assert.Equal(t, vec, rec.Vector)
	assert.Equal(t, "v", rec.Metadata["k"])

	rec2, err := c.GetByVector(vec)
	require.NoError(t, err)
	assert.Equal(t, "a", rec2.Value)
}

func TestCollection_InsertDimensionMismatch(t *testing.T) {
	c := newCol(t, kernel.Euclidean, true)
	err := c.Insert("a", []float32{1, 2}, nil)
	assert.ErrorIs(t, err, verrors.ErrDimensionMismatch)
}

func TestCollection_InsertDuplicateValue(t *testing.T) {
	c := newCol(t, kernel.Euclidean, true)
	require.NoError(t, c.Insert("a", []float32{1, 2, 3, 4}, nil))
	err := c.Insert("a", []float32{5, 6, 7, 8}, nil)
	assert.ErrorIs(t, err, verrors.ErrDuplicateValue)
}

func TestCollection_InsertDuplicateVectorSignature(t *testing.T) {
	c := newCol(t, kernel.Euclidean, true)
	require.NoError(t, c.Insert("a", []float32{1, 2, 3, 4}, nil))
	err := c.Insert("b", []float32{1, 2, 3, 4}, nil)
	assert.ErrorIs(t, err, verrors.ErrDuplicateVector)
	// Failed insert must not leave a partial value entry.
	_, getErr := c.GetByValue("b")
	assert.ErrorIs(t, getErr, verrors.ErrValueNotFound)
}

// TS02: Cosine collections store normalized vectors and compute the
// signature after normalization.
func TestCollection_CosineNormalizesBeforeStorageAndSignature(t *testing.T) {
	c := newCol(t, kernel.Cosine, true)
	require.NoError(t, c.Insert("a", []float32{3, 4, 0, 0}, nil))

	rec, err := c.GetByValue("a")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, kernel.Norm(rec.Vector), 1e-5)

	// A vector in the same direction normalizes to the same signature, so
	// inserting it collides as a duplicate vector.
	err = c.Insert("b", []float32{6, 8, 0, 0}, nil)
	assert.ErrorIs(t, err, verrors.ErrDuplicateVector)
}

// Invariant 4: Binary collections with keepEmbeddings=false never surface a
// float vector from any read path.
func TestCollection_BinaryWithoutKeepEmbeddingsHasNoVector(t *testing.T) {
	c := newCol(t, kernel.Binary, false)
	require.NoError(t, c.Insert("a", []float32{1, -1, 2, -2}, nil))

	rec, err := c.GetByValue("a")
	require.NoError(t, err)
	assert.Nil(t, rec.Vector)

	all := c.GetAll()
	require.Len(t, all, 1)
	assert.Nil(t, all[0].Vector)
}

func TestCollection_RemoveFreesRowForReuse(t *testing.T) {
	c := newCol(t, kernel.Euclidean, true)
	require.NoError(t, c.Insert("a", []float32{1, 2, 3, 4}, nil))
	require.NoError(t, c.Remove("a"))
	assert.Equal(t, 0, c.Len())

	_, err := c.GetByValue("a")
	assert.ErrorIs(t, err, verrors.ErrValueNotFound)

	// A fresh insert reuses the freed row rather than growing unbounded.
	require.NoError(t, c.Insert("b", []float32{5, 6, 7, 8}, nil))
	assert.Len(t, c.freeRows, 0)
}

func TestCollection_RemoveUnknownValueFails(t *testing.T) {
	c := newCol(t, kernel.Euclidean, true)
	err := c.Remove("missing")
	assert.ErrorIs(t, err, verrors.ErrValueNotFound)
}

// Invariant 5: an HNSW collection keeps exactly one graph node per live
// record.
func TestCollection_HNSWGraphStaysInSyncWithLiveRows(t *testing.T) {
	const dim = 6
	c := newColDim(t, kernel.HNSW, true, dim)
	for i := 0; i < 20; i++ {
		require.NoError(t, c.Insert(string(rune('a'+i)), distinctSignVec(i, dim), nil))
	}
	assert.Equal(t, c.Len(), c.Graph().Len())

	require.NoError(t, c.Remove("a"))
	assert.Equal(t, c.Len(), c.Graph().Len())
}

func TestCollection_UnknownDistanceFails(t *testing.T) {
	_, err := NewCollection(4, kernel.Distance(99), true, nil)
	assert.ErrorIs(t, err, verrors.ErrUnknownDistance)
}

func TestCollection_GetByVectorWrongDimIsNotFound(t *testing.T) {
	c := newCol(t, kernel.Euclidean, true)
	require.NoError(t, c.Insert("a", []float32{1, 2, 3, 4}, nil))

	_, err := c.GetByVector([]float32{1, 2})
	assert.ErrorIs(t, err, verrors.ErrVectorNotFound)
}
