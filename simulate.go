package majora

import (
	"fmt"
	"strconv"

	"github.com/emirpasic/gods/sets/treeset"
)

func newStateSet() *treeset.Set {
	return treeset.NewWithIntComparator()
}

// Begin resets the cursor to the epsilon-closure of the initial states.
// Begin must be called before the first call to Consume and may be called
// at any time to restart matching.
func (a *Automaton[T]) Begin() {
	a.mustBeUsable()
	initials := newStateSet()
	for s := range a.states {
		if a.states[s].initial {
			initials.Add(s)
		}
	}
	a.active = a.closure(initials)
	CT().P("active", strconv.Itoa(a.active.Size())).Debugf("majora: begin")
}

// Consume advances the cursor by a single token.
//
// All transitions out of active states which accept token are followed, and
// the epsilon-closure of their destinations becomes the new set of active
// states. If no transition accepts token, observers are notified with a
// RejectEvent. Unless an observer prevents the default, the cursor then
// becomes empty: the automaton is dead and will not accept any further
// input until Begin() is called again.
func (a *Automaton[T]) Consume(token T) {
	a.mustBeBegun()
	next := newStateSet()
	it := a.active.Iterator()
	for it.Next() {
		for _, e := range a.states[it.Value().(int)].edges {
			if e.label.Accepts(token) {
				next.Add(e.to)
			}
		}
	}
	if next.Empty() {
		CT().P("token", fmt.Sprintf("%v", token)).Debugf("majora: token rejected")
		if a.publishRejected(token) {
			return
		}
		a.active = next
		return
	}
	a.active = a.closure(next)
	a.publishConsumed(token)
}

// ConsumeAll consumes tokens one at a time, in order.
func (a *Automaton[T]) ConsumeAll(tokens ...T) {
	for _, t := range tokens {
		a.Consume(t)
	}
}

// ConsumeString consumes the runes of s one at a time.
func ConsumeString(a *Automaton[rune], s string) {
	for _, r := range s {
		a.Consume(r)
	}
}

// IsFinal is true if at least one active state is final, i.e. if the input
// consumed since the last call to Begin() is a complete match.
func (a *Automaton[T]) IsFinal() bool {
	a.mustBeBegun()
	it := a.active.Iterator()
	for it.Next() {
		if a.states[it.Value().(int)].final {
			return true
		}
	}
	return false
}

// IsDead is true if there are no active states left, i.e. no continuation
// of the input consumed so far will ever be accepted.
func (a *Automaton[T]) IsDead() bool {
	a.mustBeBegun()
	return a.active.Empty()
}

// Follow returns the labels of all transitions leaving the active states,
// i.e. the set of tokens acceptable as next input. Epsilon labels are never
// part of the result. Every label is reported once; literals are compared by
// value and predicates by identity.
//
// Labels are ordered by the states they leave, then by transition order.
// A dead automaton returns an empty follow set.
func (a *Automaton[T]) Follow() []Label[T] {
	a.mustBeBegun()
	var follow []Label[T]
	seen := make(map[Label[T]]struct{})
	it := a.active.Iterator()
	for it.Next() {
		for _, e := range a.states[it.Value().(int)].edges {
			if e.label.IsEpsilon() {
				continue
			}
			if _, ok := seen[e.label]; !ok {
				seen[e.label] = struct{}{}
				follow = append(follow, e.label)
			}
		}
	}
	return follow
}

// closure extends set to its epsilon-closure, by iterating until no
// more states get added.
func (a *Automaton[T]) closure(set *treeset.Set) *treeset.Set {
	for changed := true; changed; {
		changed = false
		for _, v := range set.Values() {
			for _, e := range a.states[v.(int)].edges {
				if e.label.IsEpsilon() && !set.Contains(e.to) {
					set.Add(e.to)
					changed = true
				}
			}
		}
	}
	return set
}

func (a *Automaton[T]) mustBeBegun() {
	a.mustBeUsable()
	if a.active == nil {
		panic(ErrNotBegun)
	}
}
