package hnsw

// Bimap is the value<->node_id bridge between a collection's string-keyed
// rows and the graph's integer-keyed nodes. It owns a monotonically
// increasing id allocator so ids are stable for the lifetime of the graph
// even as older ids are removed.
type Bimap struct {
	graph     *Graph
	valueToID map[string]uint64
	idToValue map[uint64]string
	next      uint64
}

// NewBimap returns an empty, ready-to-use index.
func NewBimap() *Bimap {
	return &Bimap{
		graph:     New(),
		valueToID: make(map[string]uint64),
		idToValue: make(map[uint64]string),
	}
}

// Len reports the number of indexed values.
func (b *Bimap) Len() int { return len(b.valueToID) }

// Contains reports whether value already has a node.
func (b *Bimap) Contains(value string) bool {
	_, ok := b.valueToID[value]
	return ok
}

// Insert allocates a fresh node id for value and inserts vector into the
// graph under it. The allocator only ever hands out unused ids, so the
// duplicate-id failure Graph.Insert can return is unreachable here in
// practice; callers still treat a non-nil error as a full rollback signal
// rather than assuming it cannot happen.
func (b *Bimap) Insert(value string, vector []float32) error {
	id := b.next
	if err := b.graph.Insert(id, vector); err != nil {
		return err
	}
	b.next++
	b.valueToID[value] = id
	b.idToValue[id] = value
	return nil
}

// Remove deletes value's node from the graph, if present.
func (b *Bimap) Remove(value string) {
	id, ok := b.valueToID[value]
	if !ok {
		return
	}
	b.graph.Remove(id)
	delete(b.valueToID, value)
	delete(b.idToValue, id)
}

// Match pairs a value with its distance to a query vector.
type Match struct {
	Value string
	Dist  float32
}

// Search returns up to k nearest values to query by Euclidean distance.
func (b *Bimap) Search(query []float32, k int) []Match {
	results := b.graph.Search(query, k)
	out := make([]Match, 0, len(results))
	for _, r := range results {
		value, ok := b.idToValue[r.ID]
		if !ok {
			continue
		}
		out = append(out, Match{Value: value, Dist: r.Dist})
	}
	return out
}

// EntryValue reports the value currently serving as the graph's entry
// point, if any.
func (b *Bimap) EntryValue() (string, bool) {
	id, ok := b.graph.EntryID()
	if !ok {
		return "", false
	}
	return b.idToValue[id], true
}

// MaxLayer reports the top layer reachable from the current entry point.
func (b *Bimap) MaxLayer() int { return b.graph.MaxLayer() }
