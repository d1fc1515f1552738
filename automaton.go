package majora

import (
	"fmt"
	"strconv"

	"github.com/emirpasic/gods/sets/treeset"
)

// transition is an edge to state #to. The source state is the owner of
// the transition.
type transition[T comparable] struct {
	label Label[T]
	to    int
}

// state is a node in the automaton graph. States are identified by their
// position in the arena of the automaton which owns them.
type state[T comparable] struct {
	initial bool
	final   bool
	edges   []transition[T]
}

// Automaton is a non-deterministic finite automaton over tokens of type T.
//
// An Automaton exclusively owns its states, which live in an arena and are
// addressed by index. Transitions never point to states of another
// automaton. Structural operators moving states from one automaton to
// another re-index them and invalidate the source.
//
// Besides its structure, an Automaton carries a cursor: the set of active
// states. The cursor is always epsilon-closed. It is nil until Begin() is
// called for the first time.
type Automaton[T comparable] struct {
	states    []state[T]
	active    *treeset.Set // of state indices
	observers []subscription[T]
	nextSubID int
	moved     bool
}

// Empty creates an automaton matching the empty input: a single state,
// which is both initial and final.
func Empty[T comparable]() *Automaton[T] {
	a := &Automaton[T]{}
	a.add(true, true)
	return a
}

// ForToken creates an automaton with two states, connected by a transition
// with the given label. The first state is initial, the second one is final.
func ForToken[T comparable](label Label[T]) *Automaton[T] {
	a := &Automaton[T]{}
	from, to := a.add(true, false), a.add(false, true)
	a.link(from, to, label)
	return a
}

// ForLiteral creates an automaton accepting the single token t.
func ForLiteral[T comparable](t T) *Automaton[T] {
	return ForToken(LiteralLabel(t))
}

// ForPredicate creates an automaton accepting a single token for which
// fn returns true.
func ForPredicate[T comparable](fn func(T) bool) *Automaton[T] {
	return ForToken(PredicateLabel(fn))
}

// Concatenation chains automata sequentially. The final states of each
// automaton become non-final and get epsilon transitions to the initial
// states of the next one, which lose their initial flag.
//
// Concatenation takes ownership of its arguments: their states are moved
// into the result and the arguments must not be used afterwards.
// Concatenating zero automata results in Empty().
func Concatenation[T comparable](parts ...*Automaton[T]) *Automaton[T] {
	if len(parts) == 0 {
		return Empty[T]()
	}
	result := &Automaton[T]{}
	var finals []int // finals of the previous part
	for i, part := range parts {
		offset := result.absorb(part)
		if i > 0 {
			initials := result.collectInitials(offset)
			for _, f := range finals {
				for _, s := range initials {
					result.link(f, s, EpsilonLabel[T]())
				}
			}
		}
		if i < len(parts)-1 {
			finals = finals[:0]
			for s := offset; s < len(result.states); s++ {
				if result.states[s].final {
					result.states[s].final = false
					finals = append(finals, s)
				}
			}
		}
	}
	return result
}

// Union creates an automaton accepting the input of any of its arguments.
// A new initial state is connected by epsilon transitions to the initial
// states of all arguments, which lose their initial flag.
//
// Union takes ownership of its arguments, in the same way as Concatenation.
// The union of zero automata results in Empty().
func Union[T comparable](parts ...*Automaton[T]) *Automaton[T] {
	if len(parts) == 0 {
		return Empty[T]()
	}
	result := &Automaton[T]{}
	start := result.add(true, false)
	for _, part := range parts {
		offset := result.absorb(part)
		for _, s := range result.collectInitials(offset) {
			result.link(start, s, EpsilonLabel[T]())
		}
	}
	return result
}

// Kleene turns a into an automaton accepting zero or more repetitions of
// its input. A new state, both initial and final, is linked to the former
// initial states, and every final state is linked back to every former
// initial state.
//
// Kleene mutates a in place and returns it. The cursor of a is reset, i.e.
// clients have to call Begin() before using it.
func Kleene[T comparable](a *Automaton[T]) *Automaton[T] {
	a.mustBeUsable()
	initials := a.collectInitials(0)
	var finals []int
	for s := range a.states {
		if a.states[s].final {
			finals = append(finals, s)
		}
	}
	start := a.add(true, true)
	for _, s := range initials {
		a.link(start, s, EpsilonLabel[T]())
		for _, f := range finals {
			a.link(f, s, EpsilonLabel[T]())
		}
	}
	a.active = nil
	return a
}

// Quantify creates an automaton accepting between min and max repetitions of
// the input of a: min mandatory copies of a, followed by max-min optional ones.
// Every copy is an independent clone; a itself is left untouched.
//
// Quantify panics if min < 0 or max < min.
func Quantify[T comparable](a *Automaton[T], min, max int) *Automaton[T] {
	if min < 0 || max < min {
		panic(fmt.Sprintf("majora: invalid repetition bounds {%d,%d}", min, max))
	}
	a.mustBeUsable()
	parts := make([]*Automaton[T], 0, max)
	for i := 0; i < min; i++ {
		parts = append(parts, a.Clone())
	}
	for i := min; i < max; i++ {
		parts = append(parts, Union(Empty[T](), a.Clone()))
	}
	return Concatenation(parts...)
}

// Clone creates a deep copy of a. The copy shares no states or transitions
// with a. Labels are copied as values, which means that predicates keep
// their identity.
//
// Neither the cursor nor the observers are copied: the clone has to be
// started with Begin().
func (a *Automaton[T]) Clone() *Automaton[T] {
	a.mustBeUsable()
	c := &Automaton[T]{states: make([]state[T], len(a.states))}
	for i, s := range a.states {
		c.states[i] = state[T]{initial: s.initial, final: s.final}
		if len(s.edges) > 0 {
			c.states[i].edges = make([]transition[T], len(s.edges))
			copy(c.states[i].edges, s.edges)
		}
	}
	return c
}

// Size returns the number of states of a.
func (a *Automaton[T]) Size() int {
	a.mustBeUsable()
	return len(a.states)
}

// String is a simple stringer for debugging purposes.
func (a *Automaton[T]) String() string {
	if a == nil {
		return "[nil automaton]"
	}
	if a.moved {
		return "[moved automaton]"
	}
	active := "-"
	if a.active != nil {
		active = strconv.Itoa(a.active.Size())
	}
	return fmt.Sprintf("[automaton |Q|=%d active=%s]", len(a.states), active)
}

// --- Internals --------------------------------------------------------

func (a *Automaton[T]) add(initial, final bool) int {
	a.states = append(a.states, state[T]{initial: initial, final: final})
	return len(a.states) - 1
}

func (a *Automaton[T]) link(from, to int, label Label[T]) {
	a.states[from].edges = append(a.states[from].edges, transition[T]{label: label, to: to})
}

// absorb moves all states of b into a, re-indexing them, and invalidates b.
// It returns the index of b's first state within a.
func (a *Automaton[T]) absorb(b *Automaton[T]) int {
	b.mustBeUsable()
	if a == b {
		panic("majora: cannot move an automaton into itself")
	}
	offset := len(a.states)
	for _, s := range b.states {
		for j := range s.edges {
			s.edges[j].to += offset
		}
		a.states = append(a.states, s)
	}
	b.invalidate()
	return offset
}

// collectInitials clears the initial flag of all states from index offset
// on and returns their indices.
func (a *Automaton[T]) collectInitials(offset int) []int {
	var initials []int
	for s := offset; s < len(a.states); s++ {
		if a.states[s].initial {
			a.states[s].initial = false
			initials = append(initials, s)
		}
	}
	return initials
}

func (a *Automaton[T]) invalidate() {
	a.states = nil
	a.active = nil
	a.observers = nil
	a.moved = true
}

func (a *Automaton[T]) mustBeUsable() {
	if a == nil {
		panic("majora: nil automaton")
	}
	if a.moved {
		panic(ErrMoved)
	}
}
