package folio

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/tsawler/folio/tokens"
)

// makeRecord creates a recognition record for pipeline tests.
func makeRecord(text string, conf, left, top, width, height float64) tokens.Record {
	return tokens.Record{
		Text:       text,
		Confidence: conf,
		Left:       left,
		Top:        top,
		Width:      width,
		Height:     height,
	}
}

func TestNew(t *testing.T) {
	agent := New()
	if agent == nil {
		t.Fatal("New returned nil")
	}
	if agent.Identity() != "folio/"+Version {
		t.Errorf("Unexpected identity %s", agent.Identity())
	}
}

func TestProcessPageAnchoredField(t *testing.T) {
	agent := New()
	// "Total:" with "120.50" on the same line, 10 px to the right.
	input := PageInput{
		Number: 1,
		Records: []tokens.Record{
			makeRecord("Total:", 95, 10, 100, 50, 15),
			makeRecord("120.50", 95, 70, 100, 60, 15),
		},
	}

	result := agent.ProcessPage(input, []string{"Total"})
	field, ok := result.Fields["Total"]
	if !ok {
		t.Fatal("Expected a Total field result")
	}
	if field.Value != "120.50" {
		t.Errorf("Expected value %q, got %q", "120.50", field.Value)
	}
	if !field.Valid {
		t.Error("Expected valid=true")
	}
}

func TestProcessPageAbsentAnchor(t *testing.T) {
	agent := New()
	input := PageInput{
		Number: 1,
		Records: []tokens.Record{
			makeRecord("Subtotal", 95, 10, 100, 60, 15),
		},
	}

	result := agent.ProcessPage(input, []string{"Invoice"})
	if len(result.Fields) != 0 {
		t.Errorf("Expected no field entries, got %v", result.Fields)
	}
}

func TestProcessPageRawText(t *testing.T) {
	agent := New()
	// Two lines, second line supplied before the first.
	input := PageInput{
		Number: 1,
		Records: []tokens.Record{
			makeRecord("world", 95, 10, 200, 60, 15),
			makeRecord("hello", 95, 10, 100, 60, 15),
		},
	}

	result := agent.ProcessPage(input, nil)
	if result.RawText != "hello world" {
		t.Errorf("Expected raw text %q, got %q", "hello world", result.RawText)
	}
}

func TestProcessPageTable(t *testing.T) {
	agent := New()
	input := PageInput{
		Number: 1,
		Records: []tokens.Record{
			// One aligned row of three, then a token far below to close it.
			makeRecord("Qty", 95, 10, 100, 40, 15),
			makeRecord("Item", 95, 70, 100, 50, 15),
			makeRecord("Price", 95, 140, 100, 60, 15),
			makeRecord("end", 95, 10, 300, 40, 15),
		},
	}

	result := agent.ProcessPage(input, nil)
	if len(result.Table) != 1 {
		t.Fatalf("Expected 1 table row, got %d", len(result.Table))
	}
	row := result.Table[0]
	if len(row) != 3 {
		t.Fatalf("Expected 3 columns, got %d", len(row))
	}
	want := []string{"Qty", "Item", "Price"}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("Column %d: expected %s, got %s", i, want[i], row[i])
		}
	}
}

func TestProcessPageEmpty(t *testing.T) {
	agent := New()
	result := agent.ProcessPage(PageInput{Number: 2}, []string{"Total"})
	if result.Page != 2 {
		t.Errorf("Expected page 2, got %d", result.Page)
	}
	if len(result.Fields) != 0 || len(result.Table) != 0 || result.RawText != "" {
		t.Errorf("Expected empty page result, got %+v", result)
	}
}

func TestProcessDocumentMetadata(t *testing.T) {
	agent := New()
	pages := []PageInput{
		{Number: 1, Records: []tokens.Record{makeRecord("one", 95, 10, 10, 40, 15)}},
		{Number: 2, Records: []tokens.Record{makeRecord("two", 95, 10, 10, 40, 15)}},
	}

	result := agent.ProcessDocument(pages, nil)
	if result.Metadata.Pages != 2 {
		t.Errorf("Expected 2 pages, got %d", result.Metadata.Pages)
	}
	if result.Metadata.Agent != "folio/"+Version {
		t.Errorf("Unexpected agent %s", result.Metadata.Agent)
	}
	if result.Metadata.TimeSec < 0 {
		t.Errorf("Expected non-negative duration, got %f", result.Metadata.TimeSec)
	}
	if len(result.Data) != 2 {
		t.Fatalf("Expected 2 page results, got %d", len(result.Data))
	}
	if result.Data[0].Page != 1 || result.Data[1].Page != 2 {
		t.Errorf("Expected page order preserved, got %d, %d", result.Data[0].Page, result.Data[1].Page)
	}
}

func TestProcessDocumentParallelMatchesSequential(t *testing.T) {
	records := []tokens.Record{
		makeRecord("Total:", 95, 10, 100, 50, 15),
		makeRecord("S120.00", 95, 70, 100, 60, 15),
		makeRecord("Qty", 95, 10, 200, 40, 15),
		makeRecord("Item", 95, 70, 200, 50, 15),
		makeRecord("Price", 95, 140, 200, 60, 15),
		makeRecord("end", 95, 10, 400, 40, 15),
	}
	var pages []PageInput
	for i := 1; i <= 8; i++ {
		pages = append(pages, PageInput{Number: i, Records: records})
	}

	sequential := New().ProcessDocument(pages, []string{"Total"})

	options := DefaultOptions()
	options.Workers = 4
	parallel := NewWithOptions(options).ProcessDocument(pages, []string{"Total"})

	if len(sequential.Data) != len(parallel.Data) {
		t.Fatalf("Result lengths differ: %d vs %d", len(sequential.Data), len(parallel.Data))
	}
	for i := range sequential.Data {
		s, p := sequential.Data[i], parallel.Data[i]
		if s.Page != p.Page {
			t.Errorf("Page %d: numbers differ (%d vs %d)", i, s.Page, p.Page)
		}
		if s.RawText != p.RawText {
			t.Errorf("Page %d: raw text differs", i)
		}
		if len(s.Fields) != len(p.Fields) {
			t.Errorf("Page %d: field counts differ", i)
		}
		for label, sf := range s.Fields {
			if pf := p.Fields[label]; pf != sf {
				t.Errorf("Page %d field %s: %+v vs %+v", i, label, sf, pf)
			}
		}
	}
}

func TestProcessPageNormalization(t *testing.T) {
	agent := New()
	input := PageInput{
		Number: 1,
		Records: []tokens.Record{
			makeRecord("Total:", 95, 10, 100, 50, 15),
			makeRecord("S120.00", 95, 70, 100, 60, 15),
		},
	}

	result := agent.ProcessPage(input, []string{"Total"})
	field := result.Fields["Total"]
	if field.Value != "$120.00" {
		t.Errorf("Expected normalized value %q, got %q", "$120.00", field.Value)
	}
	if !field.Valid {
		t.Error("Expected valid=true after normalization")
	}
}

func TestResultJSONShape(t *testing.T) {
	agent := New()
	pages := []PageInput{{
		Number: 1,
		Records: []tokens.Record{
			makeRecord("Total:", 95, 10, 100, 50, 15),
			makeRecord("120.50", 95, 70, 100, 60, 15),
		},
	}}

	result := agent.ProcessDocument(pages, []string{"Total"})
	raw, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	for _, key := range []string{`"metadata"`, `"time_sec"`, `"pages"`, `"agent"`, `"data"`, `"fields"`, `"table"`, `"raw_text"`, `"value"`, `"valid"`} {
		if !strings.Contains(string(raw), key) {
			t.Errorf("Expected JSON to contain %s, got %s", key, raw)
		}
	}
}
