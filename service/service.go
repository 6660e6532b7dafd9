// Package service wraps the folio agent in an asynchronous HTTP job API:
// document intake, a persistent job registry with polling, and bounded
// background execution. The layout-inference core never touches storage or
// transport; everything in this package exists to feed it and to hold its
// results.
package service

import (
	"image"
	"log/slog"

	"github.com/tsawler/folio"
	"github.com/tsawler/folio/tokens"
)

// Recognizer produces word-level recognition records from encoded image
// data. The ocr package's Client satisfies this when built with -tags ocr.
type Recognizer interface {
	RecognizeWords(imageData []byte) ([]tokens.Record, error)
}

// Rasterizer renders a PDF file into one image per page. No implementation
// ships with this module; deployments plug in an external renderer. When
// nil, PDF submissions are rejected at intake (images are always accepted).
type Rasterizer interface {
	Rasterize(path string) ([]image.Image, error)
}

// Service owns document intake, the job registry, and job execution.
type Service struct {
	config     Config
	logger     *slog.Logger
	store      *Store
	agent      *folio.Agent
	recognizer Recognizer
	rasterizer Rasterizer

	// slots bounds concurrently running jobs.
	slots chan struct{}
}

// New creates a service. The recognizer is required; the rasterizer may be
// nil (PDF intake is then rejected with guidance to submit page images).
func New(config Config, store *Store, recognizer Recognizer, rasterizer Rasterizer, logger *slog.Logger) *Service {
	config.defaults()
	if logger == nil {
		logger = slog.Default()
	}

	options := folio.DefaultOptions()
	options.Workers = config.PageWorkers
	options.Tables.FlushTrailingRow = config.FlushTrailingRow

	return &Service{
		config:     config,
		logger:     logger,
		store:      store,
		agent:      folio.NewWithOptions(options),
		recognizer: recognizer,
		rasterizer: rasterizer,
		slots:      make(chan struct{}, config.Workers),
	}
}
