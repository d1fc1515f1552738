package pattern

import (
	"errors"
	"fmt"
)

// Kinds of syntax errors. A *SyntaxError wraps exactly one of these, to be
// checked with errors.Is.
var (
	ErrUnexpectedEOF    = errors.New("unexpected end of pattern")
	ErrUnexpectedSymbol = errors.New("unexpected symbol")
	ErrMisplacedMeta    = errors.New("misplaced metacharacter")
	ErrTrailingInput    = errors.New("trailing input after pattern")
	ErrUnknownEscape    = errors.New("unknown escape sequence")
	ErrUnknownClass     = errors.New("unknown character class")
	ErrBadRepeat        = errors.New("invalid repetition bounds")
)

// SyntaxError describes a malformed pattern.
type SyntaxError struct {
	Pattern  string // the pattern text
	Offset   int    // 0-based rune offset of the error
	Expected string // description of what the parser expected
	Found    string // the symbol found at Offset; empty at end of input
	Err      error  // kind of error
}

func (e *SyntaxError) Error() string {
	if e.Found == "" {
		return fmt.Sprintf("pattern %q: %v (expected %s)", e.Pattern, e.Err, e.Expected)
	}
	return fmt.Sprintf("pattern %q: %v %q at position %d (expected %s)",
		e.Pattern, e.Err, e.Found, e.Offset, e.Expected)
}

// Unwrap returns the kind of error.
func (e *SyntaxError) Unwrap() error {
	return e.Err
}
