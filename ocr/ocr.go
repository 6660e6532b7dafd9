//go:build ocr

// Package ocr provides word-level OCR for page images, producing the raw
// recognition records the token filter consumes.
//
// This package wraps the Tesseract OCR engine via gosseract. It requires
// Tesseract to be installed on the system. On macOS, install via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"

	"github.com/tsawler/folio/tokens"
)

// Client wraps Tesseract for OCR operations.
type Client struct {
	client *gosseract.Client
}

// New creates a new OCR client.
// The client should be closed when no longer needed to release resources.
func New() (*Client, error) {
	client := gosseract.NewClient()
	return &Client{client: client}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// RecognizeWords performs OCR on image data (PNG, TIFF, JPEG, etc.) and
// returns one record per recognized word, with its confidence (0-100) and
// pixel bounding box relative to the image's top-left corner, in the order
// the engine emitted them.
func (c *Client) RecognizeWords(imageData []byte) ([]tokens.Record, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := c.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	records := make([]tokens.Record, 0, len(boxes))
	for _, box := range boxes {
		records = append(records, tokens.Record{
			Text:       box.Word,
			Confidence: box.Confidence,
			Left:       float64(box.Box.Min.X),
			Top:        float64(box.Box.Min.Y),
			Width:      float64(box.Box.Dx()),
			Height:     float64(box.Box.Dy()),
		})
	}

	return records, nil
}

// SetLanguage sets the language(s) for OCR recognition.
// Multiple languages can be specified as a "+" separated string (e.g., "eng+fra").
// Default is "eng" (English).
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(lang)
}

// SetPageSegMode sets the page segmentation mode.
// This affects how Tesseract analyzes the page layout.
// See gosseract.PageSegMode constants for available modes.
func (c *Client) SetPageSegMode(mode gosseract.PageSegMode) error {
	return c.client.SetPageSegMode(mode)
}
