package model

// Token is a single recognized text unit with geometry. Tokens are created
// once per page by the token filter and never mutated afterwards.
type Token struct {
	// ID is unique within a page and stable across runs on identical input
	// (derived from the page number and the record's recognition index).
	ID string

	// Text is the trimmed recognized text. Never empty.
	Text string

	// BBox is the token's bounding box in page-image pixels.
	BBox BBox

	// Center is the exact midpoint of BBox, precomputed because every
	// layout rule consults it.
	Center Point

	// Confidence is the recognizer's confidence on a 0-100 scale.
	Confidence float64
}

// NewToken builds a token with its center derived from the bounding box.
func NewToken(id, text string, bbox BBox, confidence float64) Token {
	return Token{
		ID:         id,
		Text:       text,
		BBox:       bbox,
		Center:     bbox.Center(),
		Confidence: confidence,
	}
}
