// Package layout infers a deterministic reading order for recognized tokens
// using only their geometry: a precedence graph built from above/left-of
// rules, linearized by a topological sort with a raster-order fallback for
// cyclic (skewed or overlapping) layouts.
package layout

import (
	"container/heap"
	"sort"

	"github.com/tsawler/folio/model"
)

// OrderDetector determines the reading order of tokens on a page.
type OrderDetector struct {
	config OrderConfig
}

// NewOrderDetector creates an order detector with default configuration.
func NewOrderDetector() *OrderDetector {
	return &OrderDetector{config: DefaultOrderConfig()}
}

// NewOrderDetectorWithConfig creates an order detector with custom configuration.
func NewOrderDetectorWithConfig(config OrderConfig) *OrderDetector {
	return &OrderDetector{config: config}
}

// Order returns a reading-order permutation of the token ids. When the
// precedence graph is acyclic the order satisfies every edge; ties between
// simultaneously ready tokens are broken by (top, left), so repeated runs
// on identical input yield the identical order. A cyclic graph falls back
// to plain raster order sorted by (top, left).
func (d *OrderDetector) Order(toks []model.Token) []string {
	if len(toks) == 0 {
		return nil
	}

	g := buildPrecedenceGraph(toks, d.config)

	// Raster ranks double as the deterministic tie-break key and as the
	// fallback sort order.
	ranks := rasterRanks(toks)

	order, ok := topologicalOrder(g, ranks)
	if !ok {
		order = make([]int, len(toks))
		for rank, idx := range ranks {
			order[rank] = idx
		}
	}

	ids := make([]string, len(order))
	for i, idx := range order {
		ids[i] = toks[idx].ID
	}
	return ids
}

// rasterRanks returns token indices sorted by (top, left) ascending, with
// the original index as a final tie-break for fully coincident boxes.
func rasterRanks(toks []model.Token) []int {
	ranks := make([]int, len(toks))
	for i := range ranks {
		ranks[i] = i
	}
	sort.SliceStable(ranks, func(a, b int) bool {
		ta, tb := toks[ranks[a]], toks[ranks[b]]
		if ta.BBox.Top != tb.BBox.Top {
			return ta.BBox.Top < tb.BBox.Top
		}
		if ta.BBox.Left != tb.BBox.Left {
			return ta.BBox.Left < tb.BBox.Left
		}
		return ranks[a] < ranks[b]
	})
	return ranks
}

// topologicalOrder runs Kahn's algorithm with a ready-queue ordered by
// raster rank. Returns ok=false when the graph contains a cycle.
func topologicalOrder(g *precedenceGraph, ranks []int) ([]int, bool) {
	n := len(g.indegree)

	// rankOf[i] = position of token i in raster order.
	rankOf := make([]int, n)
	for rank, idx := range ranks {
		rankOf[idx] = rank
	}

	indegree := make([]int, n)
	copy(indegree, g.indegree)

	ready := &rankHeap{rankOf: rankOf}
	for i := 0; i < n; i++ {
		if indegree[i] == 0 {
			heap.Push(ready, i)
		}
	}

	order := make([]int, 0, n)
	for ready.Len() > 0 {
		i := heap.Pop(ready).(int)
		order = append(order, i)
		for _, j := range g.adj[i] {
			indegree[j]--
			if indegree[j] == 0 {
				heap.Push(ready, j)
			}
		}
	}

	if len(order) != n {
		return nil, false // cycle
	}
	return order, true
}

// rankHeap is a min-heap of token indices keyed by raster rank.
type rankHeap struct {
	items  []int
	rankOf []int
}

func (h *rankHeap) Len() int           { return len(h.items) }
func (h *rankHeap) Less(a, b int) bool { return h.rankOf[h.items[a]] < h.rankOf[h.items[b]] }
func (h *rankHeap) Swap(a, b int)      { h.items[a], h.items[b] = h.items[b], h.items[a] }

func (h *rankHeap) Push(x any) {
	h.items = append(h.items, x.(int))
}

func (h *rankHeap) Pop() any {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}
