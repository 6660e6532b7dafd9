package folio

import (
	"github.com/tsawler/folio/fields"
	"github.com/tsawler/folio/layout"
	"github.com/tsawler/folio/tables"
	"github.com/tsawler/folio/tokens"
)

// Options holds configuration for an Agent.
type Options struct {
	// Workers bounds how many pages are processed concurrently. Pages are
	// independent, so any value >= 1 yields identical results; output is
	// always reassembled in page order. Values below 1 mean sequential.
	Workers int

	// Filter configures token filtering (confidence threshold).
	Filter tokens.FilterConfig

	// Order configures reading-order detection.
	Order layout.OrderConfig

	// Extractor configures the anchor search windows.
	Extractor fields.ExtractorConfig

	// Tables configures row clustering, including the FlushTrailingRow
	// compatibility flag.
	Tables tables.Config
}

// DefaultOptions returns the default agent configuration.
func DefaultOptions() Options {
	return Options{
		Workers:   1,
		Filter:    tokens.DefaultFilterConfig(),
		Order:     layout.DefaultOrderConfig(),
		Extractor: fields.DefaultExtractorConfig(),
		Tables:    tables.DefaultConfig(),
	}
}
