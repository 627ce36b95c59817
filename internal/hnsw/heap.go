package hnsw

// item pairs a node id with its distance to the vector currently being
// searched for. Used as the element type of both priority queues a beam
// search maintains.
type item struct {
	id   uint64
	dist float32
}

// minHeap is a min-heap ordered by ascending distance: the open candidate
// list a beam search expands from.
type minHeap []item

func (h minHeap) Len() int            { return len(h) }
func (h minHeap) Less(i, j int) bool  { return h[i].dist < h[j].dist }
func (h minHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *minHeap) Push(x any)         { *h = append(*h, x.(item)) }
func (h *minHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// maxHeap is a max-heap ordered by descending distance: the bounded result
// set a beam search keeps, so the current worst member sits at index 0 and
// can be evicted in O(log ef) when a closer candidate is found.
type maxHeap []item

func (h maxHeap) Len() int            { return len(h) }
func (h maxHeap) Less(i, j int) bool  { return h[i].dist > h[j].dist }
func (h maxHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *maxHeap) Push(x any)         { *h = append(*h, x.(item)) }
func (h *maxHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
