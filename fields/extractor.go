// Package fields locates named field values on a page by spatial proximity
// to label anchors, then normalizes and validates them against per-label
// pattern rules.
package fields

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/search"

	"github.com/tsawler/folio/model"
)

// ExtractorConfig holds the search-window geometry for anchor-based field
// extraction. All distances are in page-image pixels.
type ExtractorConfig struct {
	// RightMaxGap is the maximum horizontal gap between the anchor's right
	// edge and a candidate's left edge.
	RightMaxGap float64

	// RightLineTolerance is the maximum vertical-center delta for a
	// right-window candidate.
	RightLineTolerance float64

	// BelowMaxGap is the maximum vertical gap between the anchor's bottom
	// edge and a candidate's top edge.
	BelowMaxGap float64

	// BelowColumnTolerance is the maximum horizontal-center delta for a
	// below-window candidate.
	BelowColumnTolerance float64
}

// DefaultExtractorConfig returns the default search-window geometry.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		RightMaxGap:          250.0,
		RightLineTolerance:   20.0,
		BelowMaxGap:          80.0,
		BelowColumnTolerance: 60.0,
	}
}

// Extractor locates field values near label anchors.
//
// A candidate qualifies under at most one window, right checked first, and
// is scored by its raw pixel distance along that window's own axis. The
// winner is the global minimum across both windows, so a horizontal gap is
// compared directly against a vertical gap. That cross-axis comparison is a
// long-standing behavior downstream consumers depend on; it slightly favors
// below-matches, which tend to sit closer than row neighbors.
type Extractor struct {
	config ExtractorConfig
}

// NewExtractor creates an extractor with default configuration.
func NewExtractor() *Extractor {
	return &Extractor{config: DefaultExtractorConfig()}
}

// NewExtractorWithConfig creates an extractor with custom configuration.
func NewExtractorWithConfig(config ExtractorConfig) *Extractor {
	return &Extractor{config: config}
}

// Extract returns the best-candidate raw text per label, before any
// normalization or validation. Tokens must be in reading order; ties in
// candidate score resolve to the earlier token in that order. Labels with
// no anchor, or an anchor with no qualifying neighbor, are omitted.
func (e *Extractor) Extract(ordered []model.Token, labels []string) map[string]string {
	found := make(map[string]string, len(labels))
	if len(ordered) == 0 {
		return found
	}

	// Case-insensitive substring matching with Unicode folding.
	matcher := search.New(language.Und, search.IgnoreCase)

	for _, label := range labels {
		if label == "" {
			continue
		}
		pattern := matcher.CompileString(label)

		anchor, ok := findAnchor(ordered, pattern)
		if !ok {
			continue
		}

		if text, ok := e.bestCandidate(ordered, anchor); ok {
			found[label] = text
		}
	}

	return found
}

// findAnchor scans the reading-ordered tokens for the first whose text
// contains the label.
func findAnchor(ordered []model.Token, pattern *search.Pattern) (model.Token, bool) {
	for _, tok := range ordered {
		if start, _ := pattern.IndexString(tok.Text); start >= 0 {
			return tok, true
		}
	}
	return model.Token{}, false
}

// bestCandidate evaluates every other token against the two search windows
// and returns the text of the lowest-scoring qualifier.
func (e *Extractor) bestCandidate(ordered []model.Token, anchor model.Token) (string, bool) {
	bestScore := math.Inf(1)
	bestText := ""
	qualified := false

	for _, tok := range ordered {
		if tok.ID == anchor.ID {
			continue
		}

		score, ok := e.windowScore(tok, anchor)
		if !ok {
			continue
		}
		if score < bestScore {
			bestScore = score
			bestText = tok.Text
			qualified = true
		}
	}

	return bestText, qualified
}

// windowScore checks the right window first, then the below window, and
// returns the candidate's distance along the matching window's axis.
func (e *Extractor) windowScore(tok, anchor model.Token) (float64, bool) {
	dx := tok.BBox.Left - anchor.BBox.Right
	if dx > 0 && dx < e.config.RightMaxGap &&
		math.Abs(tok.Center.Y-anchor.Center.Y) < e.config.RightLineTolerance {
		return dx, true
	}

	dy := tok.BBox.Top - anchor.BBox.Bottom
	if dy > 0 && dy < e.config.BelowMaxGap &&
		math.Abs(tok.Center.X-anchor.Center.X) < e.config.BelowColumnTolerance {
		return dy, true
	}

	return 0, false
}
