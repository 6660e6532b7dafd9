// Package tables detects a best-effort tabular grid by clustering
// reading-ordered tokens into rows of vertically aligned neighbors.
package tables

import (
	"sort"

	"github.com/tsawler/folio/model"
)

// Config holds detector configuration.
type Config struct {
	// RowTolerance is the maximum vertical-center delta (pixels) between a
	// token and the last token placed in the current row.
	RowTolerance float64

	// MinColumns is the minimum token count for a closed row to be emitted
	// as tabular data; smaller clusters are treated as body text.
	MinColumns int

	// FlushTrailingRow controls whether the final, never-explicitly-closed
	// row is evaluated at end of traversal. The historical behavior drops
	// it unconditionally, so the default is false; set true to also emit a
	// qualifying trailing row.
	FlushTrailingRow bool
}

// DefaultConfig returns the default detector configuration.
func DefaultConfig() Config {
	return Config{
		RowTolerance:     12.0,
		MinColumns:       3,
		FlushTrailingRow: false,
	}
}

// Detector clusters tokens into candidate table rows.
type Detector struct {
	config Config
}

// NewDetector creates a detector with default configuration.
func NewDetector() *Detector {
	return &Detector{config: DefaultConfig()}
}

// NewDetectorWithConfig creates a detector with custom configuration.
func NewDetectorWithConfig(config Config) *Detector {
	return &Detector{config: config}
}

// Detect traverses tokens in reading order, growing a row while each token's
// vertical center stays within RowTolerance of the previous token's, and
// closing the row otherwise. Closed rows with at least MinColumns tokens are
// emitted with their texts sorted by ascending left coordinate. Empty input
// produces an empty table.
func (d *Detector) Detect(ordered []model.Token) []model.TableRow {
	if len(ordered) == 0 {
		return nil
	}

	var rows []model.TableRow
	current := []model.Token{ordered[0]}

	for _, tok := range ordered[1:] {
		last := current[len(current)-1]
		delta := tok.Center.Y - last.Center.Y
		if delta < 0 {
			delta = -delta
		}

		if delta < d.config.RowTolerance {
			current = append(current, tok)
			continue
		}

		if row, ok := d.closeRow(current); ok {
			rows = append(rows, row)
		}
		current = []model.Token{tok}
	}

	if d.config.FlushTrailingRow {
		if row, ok := d.closeRow(current); ok {
			rows = append(rows, row)
		}
	}

	return rows
}

// closeRow evaluates a finished cluster against the column threshold and
// orders its texts left to right.
func (d *Detector) closeRow(cluster []model.Token) (model.TableRow, bool) {
	if len(cluster) < d.config.MinColumns {
		return nil, false
	}

	sorted := make([]model.Token, len(cluster))
	copy(sorted, cluster)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BBox.Left < sorted[j].BBox.Left
	})

	row := make(model.TableRow, len(sorted))
	for i, tok := range sorted {
		row[i] = tok.Text
	}
	return row, true
}
