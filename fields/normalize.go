package fields

import "strings"

// confusables is the fixed OCR-confusable substitution set: characters the
// recognizer routinely misreads in monetary and numeric contexts. The
// replacement is applied to the whole string, so legitimate letters are
// corrected too; consumers rely on that blunt behavior and it must not be
// narrowed without a compatibility break.
var confusables = strings.NewReplacer(
	"S", "$",
	"O", "0",
)

// Normalize applies the OCR-confusable character substitution to a raw
// field value. It is a separate, named pass so a context-aware corrector
// can replace it without touching validation.
func Normalize(value string) string {
	return confusables.Replace(value)
}
