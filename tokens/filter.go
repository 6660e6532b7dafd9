// Package tokens turns raw OCR word records into the immutable tokens the
// layout pipeline operates on.
package tokens

import (
	"fmt"
	"strings"

	"github.com/tsawler/folio/model"
)

// Record is one raw recognition result as delivered by the OCR engine:
// text with a confidence score and pixel offsets relative to the page
// image's top-left corner.
type Record struct {
	Text       string
	Confidence float64 // 0-100
	Left       float64
	Top        float64
	Width      float64
	Height     float64
}

// FilterConfig holds configuration for token filtering.
type FilterConfig struct {
	// MinConfidence is the exclusive lower bound on recognition confidence.
	// Records at or below it are discarded.
	MinConfidence float64
}

// DefaultFilterConfig returns the default filtering configuration.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		MinConfidence: 40.0,
	}
}

// Filter produces the page's token list from raw recognition records. A
// record is kept iff its trimmed text is non-empty, its confidence exceeds
// the threshold, and its geometry is well-formed. Token ids combine the
// page number with the record's original index, so identical input always
// yields identical ids. Pure function of its input.
func Filter(records []Record, pageNum int, config FilterConfig) []model.Token {
	toks := make([]model.Token, 0, len(records))
	for i, rec := range records {
		text := strings.TrimSpace(rec.Text)
		if text == "" || rec.Confidence <= config.MinConfidence {
			continue
		}

		bbox := model.NewBBoxFromOffsets(rec.Left, rec.Top, rec.Width, rec.Height)
		if !bbox.IsValid() {
			// Malformed geometry stops here; the precedence graph never
			// sees a degenerate box.
			continue
		}

		id := fmt.Sprintf("p%d_e%d", pageNum, i)
		toks = append(toks, model.NewToken(id, text, bbox, rec.Confidence))
	}
	return toks
}
