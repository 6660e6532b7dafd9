package layout

import (
	"math"

	"github.com/tsawler/folio/model"
)

// OrderConfig holds configuration for reading-order detection.
type OrderConfig struct {
	// AboveMargin is the vertical gap (pixels) required before one token
	// is considered strictly above another.
	AboveMargin float64

	// SameLineTolerance is the maximum vertical-center delta (pixels) for
	// two tokens to count as being on the same line.
	SameLineTolerance float64
}

// DefaultOrderConfig returns sensible default configuration.
func DefaultOrderConfig() OrderConfig {
	return OrderConfig{
		AboveMargin:       5.0,
		SameLineTolerance: 10.0,
	}
}

// precedenceGraph is an adjacency structure over indexed tokens. An edge
// i -> j means token i must be read before token j.
type precedenceGraph struct {
	adj      [][]int
	indegree []int
}

// buildPrecedenceGraph evaluates the geometric rules over every ordered
// pair of tokens. This is O(n^2) in the token count; page-sized inputs keep
// n small enough that a spatial index has not been worth its complexity.
func buildPrecedenceGraph(toks []model.Token, config OrderConfig) *precedenceGraph {
	n := len(toks)
	g := &precedenceGraph{
		adj:      make([][]int, n),
		indegree: make([]int, n),
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if precedes(toks[i], toks[j], config) {
				g.adj[i] = append(g.adj[i], j)
				g.indegree[j]++
			}
		}
	}

	return g
}

// precedes reports whether a must be read before b. The above rule wins
// over the same-line rule when both could apply.
func precedes(a, b model.Token, config OrderConfig) bool {
	if a.BBox.Bottom < b.BBox.Top-config.AboveMargin {
		return true
	}
	if math.Abs(a.Center.Y-b.Center.Y) < config.SameLineTolerance {
		return a.BBox.Right < b.BBox.Left
	}
	return false
}
