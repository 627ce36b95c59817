// Package search implements the exact brute-force top-k scan over a
// collection's live rows, with optional HNSW delegation, metadata
// filtering, and worker-partitioned parallelism above a row-count
// threshold. Grounded on ihavespoons-zrok's vectordb HNSW store for the
// score-then-heap shape and on Aman-CERP-amanmcp's search engine for the
// errgroup-based parallel fan-out.
package search

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/elchemista/vettore/internal/kernel"
	"github.com/elchemista/vettore/internal/store"
	"github.com/elchemista/vettore/internal/verrors"
)

// parallelRowThreshold is the live-row count above which the brute-force
// scan partitions across worker goroutines. A tuning knob, not a contract:
// only determinism up to permutation of equal-score ties is guaranteed
// above it.
const parallelRowThreshold = 4096

// Hit is a scored search result.
type Hit struct {
	Value string
	Score float32
}

// Filter requires every key to be present in a record's metadata with an
// equal value.
type Filter map[string]string

func (f Filter) matches(metadata map[string]string) bool {
	if len(f) == 0 {
		return true
	}
	if metadata == nil {
		return false
	}
	for k, v := range f {
		if metadata[k] != v {
			return false
		}
	}
	return true
}

// Search returns the top-k scored hits for query against col. When col has
// an HNSW index, the graph is queried instead of scanning every row, and a
// non-empty filter is rejected.
func Search(col *store.Collection, query []float32, k int, filter Filter) ([]Hit, error) {
	if col.Graph() != nil {
		if len(filter) > 0 {
			return nil, verrors.ErrFilterUnsupportedWithHNSW
		}
		return searchHNSW(col, query, k)
	}
	if len(query) != col.Dim() {
		return nil, verrors.ErrQueryDimMismatch
	}
	if k <= 0 {
		return nil, nil
	}

	dist := col.Distance()
	if dist == kernel.Binary {
		return searchBinary(col, query, k, filter), nil
	}
	return searchMetric(col, dist, query, k, filter), nil
}

func searchHNSW(col *store.Collection, query []float32, k int) ([]Hit, error) {
	if len(query) != col.Dim() {
		return nil, verrors.ErrQueryDimMismatch
	}
	matches := col.Graph().Search(query, k)
	out := make([]Hit, len(matches))
	for i, m := range matches {
		out[i] = Hit{Value: m.Value, Score: kernel.ScoreEuclidean(m.Dist)}
	}
	return out, nil
}

func searchBinary(col *store.Collection, query []float32, k int, filter Filter) []Hit {
	sig := kernel.Compress(query)
	dim := len(query)

	type cand struct {
		value   string
		hamming int
		row     int
	}
	var all []cand
	col.ForEachLiveRow(func(row int, value string, _ []float32, rowSig []uint64, metadata map[string]string) {
		if !filter.matches(metadata) {
			return
		}
		all = append(all, cand{value: value, hamming: kernel.Hamming(sig, rowSig), row: row})
	})
	sort.Slice(all, func(i, j int) bool {
		if all[i].hamming != all[j].hamming {
			return all[i].hamming < all[j].hamming
		}
		return all[i].row < all[j].row
	})
	if len(all) > k {
		all = all[:k]
	}
	out := make([]Hit, len(all))
	for i, c := range all {
		out[i] = Hit{Value: c.value, Score: kernel.ScoreBinary(c.hamming, dim)}
	}
	return out
}

func searchMetric(col *store.Collection, dist kernel.Distance, query []float32, k int, filter Filter) []Hit {
	q := query
	if dist == kernel.Cosine {
		q = kernel.Normalize(query)
	}

	if col.Len() > parallelRowThreshold {
		return searchMetricParallel(col, dist, q, k, filter)
	}

	h := newBoundedHeap(k)
	col.ForEachLiveRow(func(_ int, value string, vector []float32, _ []uint64, metadata map[string]string) {
		if !filter.matches(metadata) {
			return
		}
		h.push(Hit{Value: value, Score: scoreFor(dist, q, vector)})
	})
	return h.sorted()
}

func scoreFor(dist kernel.Distance, q, v []float32) float32 {
	switch dist {
	case kernel.Cosine:
		return kernel.ScoreCosine(kernel.Dot(q, v))
	case kernel.Dot:
		return kernel.ScoreDot(kernel.Dot(q, v))
	default: // Euclidean
		return kernel.ScoreEuclidean(kernel.L2(q, v))
	}
}

// searchMetricParallel partitions live rows across GOMAXPROCS-bounded
// workers coordinated with errgroup, each producing a bounded local heap,
// then merges the partials into the final top-k.
func searchMetricParallel(col *store.Collection, dist kernel.Distance, q []float32, k int, filter Filter) []Hit {
	type row struct {
		value    string
		vector   []float32
		metadata map[string]string
	}
	var rows []row
	col.ForEachLiveRow(func(_ int, value string, vector []float32, _ []uint64, metadata map[string]string) {
		rows = append(rows, row{value: value, vector: vector, metadata: metadata})
	})

	workers := numWorkers(len(rows))
	chunk := (len(rows) + workers - 1) / workers
	partials := make([]*boundedHeap, workers)

	g, _ := errgroup.WithContext(context.Background())
	for w := 0; w < workers; w++ {
		w := w
		start := w * chunk
		end := start + chunk
		if start >= len(rows) {
			partials[w] = newBoundedHeap(k)
			continue
		}
		if end > len(rows) {
			end = len(rows)
		}
		g.Go(func() error {
			local := newBoundedHeap(k)
			for _, r := range rows[start:end] {
				if !filter.matches(r.metadata) {
					continue
				}
				local.push(Hit{Value: r.value, Score: scoreFor(dist, q, r.vector)})
			}
			partials[w] = local
			return nil
		})
	}
	_ = g.Wait() // workers never return an error

	merged := newBoundedHeap(k)
	for _, p := range partials {
		for _, hit := range p.sorted() {
			merged.push(hit)
		}
	}
	return merged.sorted()
}

func numWorkers(rows int) int {
	workers := rows / parallelRowThreshold
	if workers < 1 {
		workers = 1
	}
	if max := runtime.GOMAXPROCS(0); workers > max {
		workers = max
	}
	return workers
}
