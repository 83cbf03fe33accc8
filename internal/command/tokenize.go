package command

import (
	"fmt"
	"strings"

	"github.com/tracon/scopecmd/internal/scoperr"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// tokenSeparator is the only character that separates tokens. Runs of it are
// not collapsed.
const tokenSeparator = " "

var lower = cases.Lower(language.Und)

// Normalize gives the form of a line that command matching works on. The
// entire line is lower-cased, including arguments such as fix names, so every
// downstream consumer sees lower-case tokens.
func Normalize(line string) string {
	return lower.String(line)
}

// Tokenize normalizes the line and splits it on every single space. Repeated
// spaces are not collapsed; "a  b" gives the three tokens "a", "", and "b",
// and the empty token is treated like any other during resolution.
//
// The returned slice is owned by the caller.
func Tokenize(line string) []string {
	return strings.Split(Normalize(line), tokenSeparator)
}

// TokenizeInput is Tokenize for input of unknown type, such as a value decoded
// from JSON. If v is not a string, an error matching scoperr.ErrInputType is
// returned and nothing is tokenized.
func TokenizeInput(v any) ([]string, error) {
	line, ok := v.(string)
	if !ok {
		return nil, &scoperr.InputTypeError{Got: fmt.Sprintf("%T", v)}
	}
	return Tokenize(line), nil
}
