package majora

import "fmt"

type labelKind uint8

const (
	epsilonLabel labelKind = iota
	literalLabel
	predicateLabel
)

// predicate boxes a predicate function. Labels refer to predicates by
// pointer, which gives them an identity: two labels carrying predicates are
// equal iff they share the same box.
type predicate[T comparable] struct {
	name string
	fn   func(T) bool
}

// Label is the label of a transition. It is one of
//
//   Literal(t)     accepts a token equal to t
//   Predicate(fn)  accepts a token for which fn returns true
//   Epsilon        accepts nothing; the transition is taken without consuming input
//
// Labels are comparable: literals compare by value, predicates by identity.
// The zero value is the epsilon label.
type Label[T comparable] struct {
	kind labelKind
	lit  T
	pred *predicate[T]
}

// EpsilonLabel returns the label for transitions which do not consume a token.
func EpsilonLabel[T comparable]() Label[T] {
	return Label[T]{kind: epsilonLabel}
}

// LiteralLabel returns a label accepting exactly token t.
func LiteralLabel[T comparable](t T) Label[T] {
	return Label[T]{kind: literalLabel, lit: t}
}

// PredicateLabel returns a label accepting all tokens for which fn returns true.
// Every call creates a label with a new identity, even for identical functions.
// Clients wanting Follow() to report a predicate once, regardless of how
// often it occurs in an automaton, should create the label once and re-use it.
func PredicateLabel[T comparable](fn func(T) bool) Label[T] {
	return NamedPredicateLabel("", fn)
}

// NamedPredicateLabel is like PredicateLabel, but attaches a name to the predicate.
// The name is used by String().
func NamedPredicateLabel[T comparable](name string, fn func(T) bool) Label[T] {
	if fn == nil {
		panic("majora: predicate label requires a predicate function")
	}
	return Label[T]{kind: predicateLabel, pred: &predicate[T]{name: name, fn: fn}}
}

// IsEpsilon is true for the epsilon label.
func (l Label[T]) IsEpsilon() bool {
	return l.kind == epsilonLabel
}

// IsLiteral is true for labels created by LiteralLabel.
func (l Label[T]) IsLiteral() bool {
	return l.kind == literalLabel
}

// IsPredicate is true for labels created by PredicateLabel or NamedPredicateLabel.
func (l Label[T]) IsPredicate() bool {
	return l.kind == predicateLabel
}

// Literal returns the token of a literal label. The second return value is
// false for any other kind of label.
func (l Label[T]) Literal() (T, bool) {
	return l.lit, l.kind == literalLabel
}

// Predicate returns the predicate function of a predicate label, or nil.
func (l Label[T]) Predicate() func(T) bool {
	if l.kind != predicateLabel {
		return nil
	}
	return l.pred.fn
}

// Accepts is true if a transition with label l may consume token.
// Epsilon labels accept no token.
func (l Label[T]) Accepts(token T) bool {
	switch l.kind {
	case literalLabel:
		return l.lit == token
	case predicateLabel:
		return l.pred.fn(token)
	}
	return false
}

// String is a simple stringer for debugging and error messages.
func (l Label[T]) String() string {
	switch l.kind {
	case literalLabel:
		if r, ok := any(l.lit).(rune); ok {
			return string(r)
		}
		return fmt.Sprintf("%v", l.lit)
	case predicateLabel:
		if l.pred.name != "" {
			return l.pred.name
		}
		return fmt.Sprintf("<predicate %p>", l.pred)
	}
	return "ε"
}
