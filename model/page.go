package model

import "strings"

// FieldResult is the validated value located for one requested field label.
type FieldResult struct {
	// Value is the candidate text after character normalization.
	Value string `json:"value"`

	// Valid is true iff the label's validation rule matched anywhere in
	// the normalized value. A false value is still returned; only a label
	// whose anchor was never located is absent from the field map.
	Valid bool `json:"valid"`
}

// TableRow is one detected grid row: token texts ordered by ascending left
// coordinate.
type TableRow []string

// PageResult is the structured interpretation of a single page.
type PageResult struct {
	// Page is the 1-indexed page number.
	Page int `json:"page"`

	// Fields maps each located field label to its result. Labels whose
	// anchor was not found carry no entry (absence means "not located",
	// not "invalid").
	Fields map[string]FieldResult `json:"fields"`

	// Table is the detected grid, in reading order of its rows.
	Table []TableRow `json:"table"`

	// RawText is the token texts joined in reading order with single spaces.
	RawText string `json:"raw_text"`
}

// Page holds the working state for one page: the filtered tokens in raw
// recognition order plus the derived reading-order permutation.
type Page struct {
	Number  int
	Tokens  []Token
	Order   []string // reading-order permutation of token ids
	byID    map[string]Token
	ordered []Token
}

// NewPage creates a page from filtered tokens.
func NewPage(number int, tokens []Token) *Page {
	return &Page{Number: number, Tokens: tokens}
}

// SetOrder records the reading-order permutation and invalidates caches.
func (p *Page) SetOrder(order []string) {
	p.Order = order
	p.ordered = nil
}

// OrderedTokens returns the tokens in reading order. Ids in the order that
// do not resolve to a token are skipped (cannot happen for a permutation).
func (p *Page) OrderedTokens() []Token {
	if p.ordered != nil {
		return p.ordered
	}
	if p.byID == nil {
		p.byID = make(map[string]Token, len(p.Tokens))
		for _, tok := range p.Tokens {
			p.byID[tok.ID] = tok
		}
	}
	ordered := make([]Token, 0, len(p.Order))
	for _, id := range p.Order {
		if tok, ok := p.byID[id]; ok {
			ordered = append(ordered, tok)
		}
	}
	p.ordered = ordered
	return ordered
}

// RawText joins the reading-ordered token texts with single spaces.
func (p *Page) RawText() string {
	ordered := p.OrderedTokens()
	parts := make([]string, len(ordered))
	for i, tok := range ordered {
		parts[i] = tok.Text
	}
	return strings.Join(parts, " ")
}
