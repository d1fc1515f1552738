package pattern

import (
	"unicode"

	"github.com/npillmayer/majora"
	"golang.org/x/text/unicode/rangetable"
)

func span(from, to rune) []rune {
	runes := make([]rune, 0, to-from+1)
	for r := from; r <= to; r++ {
		runes = append(runes, r)
	}
	return runes
}

// Range tables for the character classes. Classes are restricted to ASCII.
var (
	DigitTable = rangetable.New(span('0', '9')...)
	AlphaTable = rangetable.New(append(span('A', 'Z'), span('a', 'z')...)...)
	AlnumTable = rangetable.Merge(DigitTable, AlphaTable)
)

// Digit is the predicate for character class [:digit:].
func Digit(r rune) bool {
	return unicode.Is(DigitTable, r)
}

// Alpha is the predicate for character class [:alpha:].
func Alpha(r rune) bool {
	return unicode.Is(AlphaTable, r)
}

// Alnum is the predicate for character class [:alnum:].
func Alnum(r rune) bool {
	return unicode.Is(AlnumTable, r)
}

// Any is the predicate for the wildcard '.'. It accepts every rune.
func Any(r rune) bool {
	return true
}

// Labels are created once, so that every occurrence of a class within
// a pattern shares the same predicate identity.
var (
	anyLabel = majora.NamedPredicateLabel(".", Any)
	classes  = map[string]majora.Label[rune]{
		"digit": majora.NamedPredicateLabel("[:digit:]", Digit),
		"alpha": majora.NamedPredicateLabel("[:alpha:]", Alpha),
		"alnum": majora.NamedPredicateLabel("[:alnum:]", Alnum),
	}
)
