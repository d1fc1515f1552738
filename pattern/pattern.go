package pattern

import (
	"context"

	"github.com/npillmayer/majora"
)

// Pattern is a compiled pattern. A Pattern holds a prototype automaton
// which is never advanced itself; matching always happens on clones.
// Therefore a Pattern may be shared between goroutines.
type Pattern struct {
	text  string
	proto *majora.Automaton[rune]
}

// New compiles a pattern.
func New(text string) (*Pattern, error) {
	nfa, err := Compile(text)
	if err != nil {
		return nil, err
	}
	return &Pattern{text: text, proto: nfa}, nil
}

// MustNew is like New, but panics if the pattern is malformed.
func MustNew(text string) *Pattern {
	p, err := New(text)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the pattern text.
func (p *Pattern) String() string {
	return p.text
}

// Matcher returns a fresh automaton for the pattern, ready to consume input.
func (p *Pattern) Matcher() *majora.Automaton[rune] {
	m := p.proto.Clone()
	m.Begin()
	return m
}

// Match reports whether the complete input s matches the pattern.
func (p *Pattern) Match(s string) bool {
	m := p.Matcher()
	for _, r := range s {
		if m.Consume(r); m.IsDead() {
			return false
		}
	}
	return m.IsFinal()
}

// Pool creates a pool of matchers for p. Clients validating many inputs
// concurrently may borrow a matcher per input.
func (p *Pattern) Pool(ctx context.Context, opts ...majora.PoolOption) *majora.Pool[rune] {
	return majora.NewPool(ctx, p.proto, opts...)
}
