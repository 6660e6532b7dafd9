// Package folio turns a raster-scanned page, already reduced to recognized
// text tokens with pixel bounding boxes, into a structured interpretation:
// a deterministic reading order, named fields located by spatial proximity
// to label anchors, validated field values, and a best-effort tabular grid.
//
// Basic usage:
//
//	agent := folio.New()
//	result := agent.ProcessDocument(pages, []string{"Total", "Date"})
//	fmt.Println(result.Metadata.Agent, result.Data[0].RawText)
//
// The agent consumes per-page recognition records (see [PageInput]); OCR,
// rasterization and job orchestration live outside this package. The ocr
// and imaging packages provide adapters for the input side, and the service
// package wraps the agent in an HTTP job API.
package folio

import (
	"fmt"
	"sync"
	"time"

	"github.com/tsawler/folio/fields"
	"github.com/tsawler/folio/layout"
	"github.com/tsawler/folio/model"
	"github.com/tsawler/folio/tables"
	"github.com/tsawler/folio/tokens"
)

// Version is the processor version reported in result metadata.
const Version = "1.2.0"

// agentName identifies this processor in result metadata.
const agentName = "folio"

// Agent runs the page-interpretation pipeline. An Agent is immutable after
// construction and safe for concurrent use.
type Agent struct {
	options   Options
	order     *layout.OrderDetector
	extractor *fields.Extractor
	validator *fields.Validator
	tables    *tables.Detector
}

// PageInput is one page's worth of raw recognition records, in the order
// the recognizer emitted them.
type PageInput struct {
	// Number is the 1-indexed page number.
	Number int

	// Records are the raw OCR word records for the page.
	Records []tokens.Record
}

// New creates an agent with default options.
func New() *Agent {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates an agent with custom options.
func NewWithOptions(options Options) *Agent {
	return &Agent{
		options:   options,
		order:     layout.NewOrderDetectorWithConfig(options.Order),
		extractor: fields.NewExtractorWithConfig(options.Extractor),
		validator: fields.NewValidator(),
		tables:    tables.NewDetectorWithConfig(options.Tables),
	}
}

// Identity returns the processor identity string used in result metadata.
func (a *Agent) Identity() string {
	return fmt.Sprintf("%s/%s", agentName, Version)
}

// ProcessPage runs the full pipeline for one page: filter, reading order,
// anchored field extraction with validation, and table detection. It is a
// pure function of its input; degraded pages (empty, skewed, ambiguous)
// produce empty or partial results, never an error.
func (a *Agent) ProcessPage(input PageInput, targetFields []string) model.PageResult {
	toks := tokens.Filter(input.Records, input.Number, a.options.Filter)

	page := model.NewPage(input.Number, toks)
	page.SetOrder(a.order.Order(toks))
	ordered := page.OrderedTokens()

	raw := a.extractor.Extract(ordered, targetFields)

	table := a.tables.Detect(ordered)
	if table == nil {
		// Serialize as an empty list, not null.
		table = []model.TableRow{}
	}

	return model.PageResult{
		Page:    input.Number,
		Fields:  a.validator.Validate(raw),
		Table:   table,
		RawText: page.RawText(),
	}
}

// ProcessDocument runs ProcessPage for every page and wraps the results
// with document metadata. Pages are distributed over a bounded worker pool
// when Options.Workers exceeds one; the result list is always in the order
// the pages were supplied.
func (a *Agent) ProcessDocument(pages []PageInput, targetFields []string) *model.Result {
	start := time.Now()

	data := make([]model.PageResult, len(pages))

	workers := a.options.Workers
	if workers > len(pages) {
		workers = len(pages)
	}

	if workers <= 1 {
		for i, page := range pages {
			data[i] = a.ProcessPage(page, targetFields)
		}
	} else {
		indexes := make(chan int)
		var wg sync.WaitGroup
		wg.Add(workers)
		for w := 0; w < workers; w++ {
			go func() {
				defer wg.Done()
				for i := range indexes {
					data[i] = a.ProcessPage(pages[i], targetFields)
				}
			}()
		}
		for i := range pages {
			indexes <- i
		}
		close(indexes)
		wg.Wait()
	}

	return &model.Result{
		Metadata: model.Metadata{
			TimeSec: time.Since(start).Seconds(),
			Pages:   len(pages),
			Agent:   a.Identity(),
		},
		Data: data,
	}
}
