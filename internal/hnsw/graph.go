// Package hnsw implements the approximate nearest-neighbor graph index used
// by collections created with the HNSW distance. The graph is keyed by
// integer node ids and never touches collection-level concerns (rows,
// values, metadata) directly; Bimap is the bridge that lets a store address
// nodes by value instead of id.
//
// A Graph is not safe for concurrent use on its own. It is always embedded
// inside a collection, whose single reader/writer guard already serializes
// every call into the graph, so no lock is duplicated here.
package hnsw

import (
	"container/heap"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/elchemista/vettore/internal/kernel"
	"github.com/elchemista/vettore/internal/verrors"
)

// Fixed construction and search parameters. The spec pins these rather than
// exposing them as tunables.
const (
	M              = 16
	M0             = 32
	EfConstruction = 100
	EfSearch       = 64
	MaxLevel       = 12
)

var levelMul = 1 / math.Log(float64(M))

// Result pairs a node id with its Euclidean distance to the query vector.
type Result struct {
	ID   uint64
	Dist float32
}

type node struct {
	vector   []float32
	topLayer int
	links    [][]uint64 // links[layer] holds neighbor ids at that layer
}

// Graph is a multi-layer proximity graph over float32 vectors, addressed by
// caller-supplied node ids.
type Graph struct {
	nodes    map[uint64]*node
	entry    uint64
	hasEntry bool
	maxLayer int
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{nodes: make(map[uint64]*node)}
}

// Len reports the number of live nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// EntryID reports the current entry point, if any. Used by tests to check
// the entry-exists-iff-nonempty invariant.
func (g *Graph) EntryID() (uint64, bool) { return g.entry, g.hasEntry }

// MaxLayer reports the top layer currently reachable from the entry point.
func (g *Graph) MaxLayer() int { return g.maxLayer }

func randomLevel() int {
	level := 0
	for rand.Float64() < levelMul && level < MaxLevel {
		level++
	}
	return level
}

// Insert adds a new node at id with the given vector. id must not already
// exist in the graph.
func (g *Graph) Insert(id uint64, vector []float32) error {
	if _, exists := g.nodes[id]; exists {
		return verrors.ErrDuplicateID
	}

	level := randomLevel()
	nd := &node{vector: vector, topLayer: level, links: make([][]uint64, level+1)}

	if !g.hasEntry {
		g.nodes[id] = nd
		g.entry = id
		g.hasEntry = true
		g.maxLayer = level
		return nil
	}
	g.nodes[id] = nd

	cur := g.greedyDescend(vector, g.maxLayer, level+1)

	top := level
	if top > g.maxLayer {
		top = g.maxLayer
	}
	entryPoints := []uint64{cur}
	for layer := top; layer >= 0; layer-- {
		candidates := g.searchLayer(vector, entryPoints, EfConstruction, layer)
		maxConn := M
		if layer == 0 {
			maxConn = M0
		}
		neighbors := g.selectClosest(vector, candidates, maxConn)
		nd.links[layer] = neighbors

		for _, nb := range neighbors {
			nn := g.nodes[nb]
			if layer >= len(nn.links) {
				continue
			}
			if !containsID(nn.links[layer], id) {
				nn.links[layer] = append(nn.links[layer], id)
			}
			if len(nn.links[layer]) > maxConn {
				nn.links[layer] = g.selectClosest(nn.vector, nn.links[layer], maxConn)
			}
		}
		entryPoints = candidates
	}

	if level > g.maxLayer {
		g.entry = id
		g.maxLayer = level
	}
	return nil
}

// greedyDescend walks from the current entry point down from layer `from` to
// layer `to` inclusive, greedily hopping to the closest neighbor at each
// layer, and returns the node id reached.
func (g *Graph) greedyDescend(query []float32, from, to int) uint64 {
	cur := g.entry
	curDist := kernel.L2(query, g.nodes[cur].vector)
	for layer := from; layer >= to; layer-- {
		changed := true
		for changed {
			changed = false
			cn := g.nodes[cur]
			if layer >= len(cn.links) {
				continue
			}
			for _, nb := range cn.links[layer] {
				nn, ok := g.nodes[nb]
				if !ok {
					continue
				}
				d := kernel.L2(query, nn.vector)
				if d < curDist {
					cur, curDist = nb, d
					changed = true
				}
			}
		}
	}
	return cur
}

// searchLayer runs a bounded beam search at a single layer, starting from
// entryPoints, and returns up to ef node ids ordered by nothing in
// particular (the caller sorts if order matters).
func (g *Graph) searchLayer(query []float32, entryPoints []uint64, ef int, layer int) []uint64 {
	visited := make(map[uint64]struct{}, ef*2)
	var candidates minHeap
	var results maxHeap

	for _, ep := range entryPoints {
		nd, ok := g.nodes[ep]
		if !ok {
			continue
		}
		if _, seen := visited[ep]; seen {
			continue
		}
		visited[ep] = struct{}{}
		d := kernel.L2(query, nd.vector)
		heap.Push(&candidates, item{ep, d})
		heap.Push(&results, item{ep, d})
	}

	for candidates.Len() > 0 {
		best := heap.Pop(&candidates).(item)
		if results.Len() >= ef && best.dist > results[0].dist {
			break
		}
		nd, ok := g.nodes[best.id]
		if !ok || layer >= len(nd.links) {
			continue
		}
		for _, nb := range nd.links[layer] {
			if _, seen := visited[nb]; seen {
				continue
			}
			visited[nb] = struct{}{}
			nn, ok := g.nodes[nb]
			if !ok {
				// Stale id left behind by a concurrent-looking removal;
				// skip it defensively.
				continue
			}
			d := kernel.L2(query, nn.vector)
			if results.Len() < ef || d < results[0].dist {
				heap.Push(&candidates, item{nb, d})
				heap.Push(&results, item{nb, d})
				if results.Len() > ef {
					heap.Pop(&results)
				}
			}
		}
	}

	out := make([]uint64, results.Len())
	for i, it := range results {
		out[i] = it.id
	}
	return out
}

// selectClosest sorts candidates by ascending distance to ref, dedupes, and
// truncates to maxN.
func (g *Graph) selectClosest(ref []float32, candidates []uint64, maxN int) []uint64 {
	seen := make(map[uint64]struct{}, len(candidates))
	items := make([]item, 0, len(candidates))
	for _, id := range candidates {
		if _, dup := seen[id]; dup {
			continue
		}
		nd, ok := g.nodes[id]
		if !ok {
			continue
		}
		seen[id] = struct{}{}
		items = append(items, item{id, kernel.L2(ref, nd.vector)})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].dist < items[j].dist })
	if len(items) > maxN {
		items = items[:maxN]
	}
	out := make([]uint64, len(items))
	for i, it := range items {
		out[i] = it.id
	}
	return out
}

// Search returns up to k nearest neighbors of query by Euclidean distance.
func (g *Graph) Search(query []float32, k int) []Result {
	if !g.hasEntry || k <= 0 {
		return nil
	}

	cur := g.greedyDescend(query, g.maxLayer, 1)

	ef := EfSearch
	if ef < k {
		ef = k
	}
	candidates := g.searchLayer(query, []uint64{cur}, ef, 0)

	results := make([]Result, 0, len(candidates))
	for _, id := range candidates {
		nd, ok := g.nodes[id]
		if !ok {
			continue
		}
		results = append(results, Result{ID: id, Dist: kernel.L2(query, nd.vector)})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Dist < results[j].Dist })
	if len(results) > k {
		results = results[:k]
	}
	return results
}

// Remove deletes a node and unlinks it from every neighbor that referenced
// it, re-electing the entry point if necessary.
func (g *Graph) Remove(id uint64) {
	if _, ok := g.nodes[id]; !ok {
		return
	}
	delete(g.nodes, id)
	// Pruning can leave one-way edges, so every remaining node is checked,
	// not only the removed node's own neighbors.
	for _, nn := range g.nodes {
		for layer := range nn.links {
			nn.links[layer] = removeID(nn.links[layer], id)
		}
	}

	if g.entry == id {
		g.electEntry()
	}
}

// electEntry picks the live node with the highest top layer as the new
// entry point. Any node achieving the max is an acceptable choice.
func (g *Graph) electEntry() {
	if len(g.nodes) == 0 {
		g.hasEntry = false
		g.maxLayer = 0
		g.entry = 0
		return
	}
	best := uint64(0)
	bestLayer := -1
	for id, nd := range g.nodes {
		if nd.topLayer > bestLayer {
			best, bestLayer = id, nd.topLayer
		}
	}
	g.entry = best
	g.maxLayer = bestLayer
	g.hasEntry = true
}

func containsID(ids []uint64, target uint64) bool {
	for _, id := range ids {
		if id == target {
			return true
		}
	}
	return false
}

func removeID(ids []uint64, target uint64) []uint64 {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}
