// Package store implements the collection: a row-addressed float matrix
// with two secondary indexes (value and sign-bit signature), a free-row
// allocator, and an optional embedded HNSW index. A Collection is not
// itself safe for concurrent use; GuardedCollection supplies the
// reader/writer discipline the rest of vettore relies on.
package store

import (
	"log/slog"

	"github.com/bits-and-blooms/bitset"

	"github.com/elchemista/vettore/internal/hnsw"
	"github.com/elchemista/vettore/internal/kernel"
	"github.com/elchemista/vettore/internal/verrors"
	"github.com/elchemista/vettore/internal/vlog"
)

// Collection holds every live record for one named index. Dimension,
// distance, and keepEmbeddings are fixed for its lifetime.
type Collection struct {
	dim            int
	distance       kernel.Distance
	keepEmbeddings bool

	matrix     []float32 // row r occupies matrix[r*dim : r*dim+dim]
	values     []string  // values[r] == "" for a free row
	metadatas  []map[string]string
	signatures [][]uint64

	live     *bitset.BitSet
	freeRows []int

	valueToRow map[string]int
	sigToRow   map[string]int

	graph *hnsw.Bimap // non-nil iff distance == kernel.HNSW

	log *slog.Logger
}

// NewCollection constructs an empty collection. log may be nil, in which
// case diagnostics are discarded.
func NewCollection(dim int, distance kernel.Distance, keepEmbeddings bool, log *slog.Logger) (*Collection, error) {
	switch distance {
	case kernel.Euclidean, kernel.Cosine, kernel.Dot, kernel.Binary, kernel.HNSW:
	default:
		return nil, verrors.ErrUnknownDistance
	}
	if log == nil {
		log = vlog.Discard()
	}

	c := &Collection{
		dim:            dim,
		distance:       distance,
		keepEmbeddings: keepEmbeddings,
		live:           bitset.New(0),
		valueToRow:     make(map[string]int),
		sigToRow:       make(map[string]int),
		log:            log,
	}
	if distance == kernel.HNSW {
		c.graph = hnsw.NewBimap()
	}
	return c, nil
}

// Dim reports the collection's fixed vector dimension.
func (c *Collection) Dim() int { return c.dim }

// Distance reports the collection's fixed distance regime.
func (c *Collection) Distance() kernel.Distance { return c.distance }

// KeepEmbeddings reports whether raw float vectors are retained.
func (c *Collection) KeepEmbeddings() bool { return c.keepEmbeddings }

// Len reports the number of live records.
func (c *Collection) Len() int { return int(c.live.Count()) }

// allocateRow pops the tail of the free list, or grows the matrix by one
// row, and returns the row index.
func (c *Collection) allocateRow() int {
	if n := len(c.freeRows); n > 0 {
		row := c.freeRows[n-1]
		c.freeRows = c.freeRows[:n-1]
		return row
	}
	row := len(c.values)
	c.values = append(c.values, "")
	c.metadatas = append(c.metadatas, nil)
	c.signatures = append(c.signatures, nil)
	c.matrix = append(c.matrix, make([]float32, c.dim)...)
	return row
}

// Insert stores a new record. See SPEC_FULL.md §4.3 for the exact ordering
// of validation and side effects; failure before step 6 (row allocation)
// leaves the collection untouched, and a failure in step 9 (HNSW) rolls
// back every prior side effect of this call.
func (c *Collection) Insert(value string, vector []float32, metadata map[string]string) error {
	if len(vector) != c.dim {
		return verrors.ErrDimensionMismatch
	}
	if _, exists := c.valueToRow[value]; exists {
		return verrors.ErrDuplicateValue
	}

	stored := vector
	if c.distance == kernel.Cosine {
		stored = kernel.Normalize(vector)
	}
	sig := kernel.Compress(stored)
	sigKey := kernel.SignatureKey(sig)
	if _, exists := c.sigToRow[sigKey]; exists {
		return verrors.ErrDuplicateVector
	}

	row := c.allocateRow()

	if !(c.distance == kernel.Binary && !c.keepEmbeddings) {
		copy(c.matrix[row*c.dim:row*c.dim+c.dim], stored)
	}
	var metaCopy map[string]string
	if metadata != nil {
		metaCopy = make(map[string]string, len(metadata))
		for k, v := range metadata {
			metaCopy[k] = v
		}
	}
	c.values[row] = value
	c.metadatas[row] = metaCopy
	c.signatures[row] = sig
	c.valueToRow[value] = row
	c.sigToRow[sigKey] = row
	c.live.Set(uint(row))

	if c.graph != nil {
		if err := c.graph.Insert(value, stored); err != nil {
			c.rollbackInsert(value, sigKey, row)
			return err
		}
	}

	c.log.Debug("inserted record", "value", value, "row", row)
	return nil
}

func (c *Collection) rollbackInsert(value, sigKey string, row int) {
	delete(c.valueToRow, value)
	delete(c.sigToRow, sigKey)
	c.values[row] = ""
	c.metadatas[row] = nil
	c.signatures[row] = nil
	c.live.Clear(uint(row))
	c.freeRows = append(c.freeRows, row)
}

// GetByValue returns the record stored under value.
func (c *Collection) GetByValue(value string) (Record, error) {
	row, ok := c.valueToRow[value]
	if !ok {
		return Record{}, verrors.ErrValueNotFound
	}
	return c.recordAt(row), nil
}

// GetByVector looks up a record by the sign-bit signature of vector.
// A vector whose length differs from the collection's dimension surfaces
// identically to an ordinary miss.
func (c *Collection) GetByVector(vector []float32) (Record, error) {
	if len(vector) != c.dim {
		return Record{}, verrors.ErrVectorNotFound
	}
	probe := vector
	if c.distance == kernel.Cosine {
		probe = kernel.Normalize(vector)
	}
	sigKey := kernel.SignatureKey(kernel.Compress(probe))
	row, ok := c.sigToRow[sigKey]
	if !ok {
		return Record{}, verrors.ErrVectorNotFound
	}
	return c.recordAt(row), nil
}

// GetAll returns every live record, in unspecified row order.
func (c *Collection) GetAll() []Record {
	out := make([]Record, 0, c.Len())
	for row, ok := c.live.NextSet(0); ok; row, ok = c.live.NextSet(row + 1) {
		out = append(out, c.recordAt(int(row)))
	}
	return out
}

// Remove deletes the record stored under value.
func (c *Collection) Remove(value string) error {
	row, ok := c.valueToRow[value]
	if !ok {
		return verrors.ErrValueNotFound
	}
	sigKey := kernel.SignatureKey(c.signatures[row])

	delete(c.valueToRow, value)
	delete(c.sigToRow, sigKey)
	c.values[row] = ""
	c.metadatas[row] = nil
	c.signatures[row] = nil
	c.live.Clear(uint(row))
	c.freeRows = append(c.freeRows, row)

	if c.graph != nil {
		c.graph.Remove(value)
	}

	c.log.Debug("removed record", "value", value, "row", row)
	return nil
}

// Graph exposes the embedded HNSW bimap, or nil when the collection's
// distance is not HNSW.
func (c *Collection) Graph() *hnsw.Bimap { return c.graph }

func (c *Collection) recordAt(row int) Record {
	var vec []float32
	if c.distance == kernel.Binary && !c.keepEmbeddings {
		vec = nil
	} else {
		vec = append([]float32(nil), c.matrix[row*c.dim:row*c.dim+c.dim]...)
	}
	return Record{
		Value:    c.values[row],
		Vector:   vec,
		Metadata: c.metadatas[row],
	}
}

// ForEachLiveRow calls fn for every live row with its signature and
// metadata, used by the search kernel's brute-force scan without forcing a
// full Record allocation per row.
func (c *Collection) ForEachLiveRow(fn func(row int, value string, vector []float32, sig []uint64, metadata map[string]string)) {
	for row, ok := c.live.NextSet(0); ok; row, ok = c.live.NextSet(row + 1) {
		r := int(row)
		var vec []float32
		if !(c.distance == kernel.Binary && !c.keepEmbeddings) {
			vec = c.matrix[r*c.dim : r*c.dim+c.dim]
		}
		fn(r, c.values[r], vec, c.signatures[r], c.metadatas[r])
	}
}
