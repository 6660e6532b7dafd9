package model

// Metadata carries document-level processing information.
type Metadata struct {
	// TimeSec is the wall-clock duration of the whole document run.
	TimeSec float64 `json:"time_sec"`

	// Pages is the number of pages processed.
	Pages int `json:"pages"`

	// Agent identifies the processor and its version.
	Agent string `json:"agent"`
}

// Result is the JSON-serializable outcome of processing one document.
type Result struct {
	Metadata Metadata     `json:"metadata"`
	Data     []PageResult `json:"data"`
}

// PageCount returns the number of page results.
func (r *Result) PageCount() int {
	return len(r.Data)
}

// GetPage returns a page result by number (1-indexed), or nil.
func (r *Result) GetPage(number int) *PageResult {
	for i := range r.Data {
		if r.Data[i].Page == number {
			return &r.Data[i]
		}
	}
	return nil
}
