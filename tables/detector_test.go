package tables

import (
	"testing"

	"github.com/tsawler/folio/model"
)

// makeCell creates a token for table detection tests.
func makeCell(id, text string, left, top, right, bottom float64) model.Token {
	return model.NewToken(id, text, model.NewBBox(left, top, right, bottom), 90)
}

// rowOfThree builds three same-line tokens at the given top coordinate,
// supplied in left-to-right order.
func rowOfThree(top float64, prefix string) []model.Token {
	return []model.Token{
		makeCell(prefix+"1", prefix+"1", 10, top, 60, top+15),
		makeCell(prefix+"2", prefix+"2", 70, top, 130, top+15),
		makeCell(prefix+"3", prefix+"3", 140, top, 200, top+15),
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	if config.RowTolerance != 12.0 {
		t.Errorf("Expected RowTolerance 12.0, got %f", config.RowTolerance)
	}
	if config.MinColumns != 3 {
		t.Errorf("Expected MinColumns 3, got %d", config.MinColumns)
	}
	if config.FlushTrailingRow {
		t.Error("Expected FlushTrailingRow false by default")
	}
}

func TestDetectEmptyInput(t *testing.T) {
	d := NewDetector()
	if rows := d.Detect(nil); rows != nil {
		t.Errorf("Expected nil rows for empty input, got %v", rows)
	}
}

func TestDetectSingleRow(t *testing.T) {
	d := NewDetector()
	// One full row followed by a lone token that closes it.
	toks := append(rowOfThree(100, "a"), makeCell("x", "x", 10, 200, 60, 215))

	rows := d.Detect(toks)
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	if len(rows[0]) != 3 {
		t.Fatalf("Expected 3 columns, got %d", len(rows[0]))
	}
	want := []string{"a1", "a2", "a3"}
	for i := range want {
		if rows[0][i] != want[i] {
			t.Errorf("Column %d: expected %s, got %s", i, want[i], rows[0][i])
		}
	}
}

func TestDetectColumnsSortedByLeft(t *testing.T) {
	d := NewDetector()
	// Row tokens arrive out of left-to-right order; a follow-up token
	// closes the row.
	toks := []model.Token{
		makeCell("c", "c", 140, 100, 200, 115),
		makeCell("a", "a", 10, 100, 60, 115),
		makeCell("b", "b", 70, 100, 130, 115),
		makeCell("x", "x", 10, 200, 60, 215),
	}

	rows := d.Detect(toks)
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	want := []string{"a", "b", "c"}
	for i := range want {
		if rows[0][i] != want[i] {
			t.Errorf("Column %d: expected %s, got %s", i, want[i], rows[0][i])
		}
	}
}

func TestDetectShortClusterIsBodyText(t *testing.T) {
	d := NewDetector()
	toks := []model.Token{
		makeCell("a", "a", 10, 100, 60, 115),
		makeCell("b", "b", 70, 100, 130, 115),
		makeCell("x", "x", 10, 200, 60, 215), // closes the 2-token cluster
		makeCell("y", "y", 10, 300, 60, 315), // closes the 1-token cluster
	}

	rows := d.Detect(toks)
	if len(rows) != 0 {
		t.Errorf("Expected no rows for sub-threshold clusters, got %v", rows)
	}
}

func TestDetectTrailingRowDroppedByDefault(t *testing.T) {
	d := NewDetector()
	// A qualifying row that is never followed by anything: historical
	// behavior drops it.
	rows := d.Detect(rowOfThree(100, "a"))
	if len(rows) != 0 {
		t.Errorf("Expected trailing row to be dropped, got %v", rows)
	}
}

func TestDetectTrailingRowFlushed(t *testing.T) {
	config := DefaultConfig()
	config.FlushTrailingRow = true
	d := NewDetectorWithConfig(config)

	rows := d.Detect(rowOfThree(100, "a"))
	if len(rows) != 1 {
		t.Fatalf("Expected flushed trailing row, got %d rows", len(rows))
	}
	if len(rows[0]) != 3 {
		t.Errorf("Expected 3 columns, got %d", len(rows[0]))
	}
}

func TestDetectMultipleRows(t *testing.T) {
	config := DefaultConfig()
	config.FlushTrailingRow = true
	d := NewDetectorWithConfig(config)

	var toks []model.Token
	toks = append(toks, rowOfThree(100, "a")...)
	toks = append(toks, rowOfThree(130, "b")...)
	toks = append(toks, rowOfThree(160, "c")...)

	rows := d.Detect(toks)
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}
	for _, row := range rows {
		if len(row) < 3 {
			t.Errorf("Expected every row to have at least 3 entries, got %d", len(row))
		}
	}
}

func TestDetectRowToleranceBoundary(t *testing.T) {
	d := NewDetector()
	// Second token sits exactly 12 px below the first's center: that is
	// outside the strict tolerance, so it starts a new row.
	toks := []model.Token{
		makeCell("a", "a", 10, 100, 60, 110),
		makeCell("b", "b", 70, 112, 130, 122),
		makeCell("x", "x", 10, 300, 60, 315),
	}

	rows := d.Detect(toks)
	if len(rows) != 0 {
		t.Errorf("Expected clusters to split at the tolerance boundary, got %v", rows)
	}
}
