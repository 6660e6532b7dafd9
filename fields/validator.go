package fields

import (
	"regexp"

	"github.com/tsawler/folio/model"
)

// ruleTable maps field labels to their validation patterns. A pattern
// matching anywhere in the normalized value marks the field valid.
var ruleTable = map[string]*regexp.Regexp{
	// One or more digits, a decimal separator, exactly two digits.
	"Total": regexp.MustCompile(`\d+[.,]\d{2}`),
	// Numeric groups separated by -, / or .
	"Date": regexp.MustCompile(`\d+[-/.]\d+[-/.]\d+`),
}

// matchAny is the rule for labels without a table entry.
var matchAny = regexp.MustCompile(`.*`)

// RuleFor returns the validation pattern for a label, falling back to a
// match-anything rule for labels the table does not know.
func RuleFor(label string) *regexp.Regexp {
	if rule, ok := ruleTable[label]; ok {
		return rule
	}
	return matchAny
}

// Validator normalizes raw field values and checks them against the rule
// table. A mismatch is not an error: the value is still returned, marked
// invalid.
type Validator struct{}

// NewValidator creates a validator backed by the fixed rule table.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate produces a FieldResult for every raw value. The result map has
// exactly the raw map's keys.
func (v *Validator) Validate(raw map[string]string) map[string]model.FieldResult {
	results := make(map[string]model.FieldResult, len(raw))
	for label, value := range raw {
		normalized := Normalize(value)
		results[label] = model.FieldResult{
			Value: normalized,
			Valid: RuleFor(label).MatchString(normalized),
		}
	}
	return results
}
