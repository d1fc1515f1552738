package majora

import "fmt"

// A TokenObserver is a receiver of token events. Observers subscribe to an
// automaton and are notified synchronously, from within Consume, in the
// order of subscription.
//
// TokenRejected is called whenever a token is not accepted by any transition
// out of the active states. At this point the cursor of the automaton has not
// yet been changed. Observers may perform recovery by consuming tokens
// on the event's automaton, and suppress the default action (the automaton
// becoming dead) by calling PreventDefault() on the event.
//
// TokenConsumed is called after every successful advance of the cursor.
type TokenObserver[T comparable] interface {
	TokenRejected(*RejectEvent[T])
	TokenConsumed(token T)
}

// RejectEvent is the event for a token not accepted by an automaton.
type RejectEvent[T comparable] struct {
	Token     T             // the offending token
	Automaton *Automaton[T] // the automaton which rejected Token
	prevented bool
}

// PreventDefault tells the automaton not to become dead. The cursor will
// be left as the observers left it.
func (ev *RejectEvent[T]) PreventDefault() {
	ev.prevented = true
}

// DefaultPrevented is true if any observer has called PreventDefault.
func (ev *RejectEvent[T]) DefaultPrevented() bool {
	return ev.prevented
}

// Simple stringer for debugging purposes.
func (ev *RejectEvent[T]) String() string {
	return fmt.Sprintf("[reject %v, prevented=%v]", ev.Token, ev.prevented)
}

// ObserverFuncs is an adapter to use ordinary functions as a TokenObserver.
// Nil functions are treated as no-ops.
type ObserverFuncs[T comparable] struct {
	OnReject  func(*RejectEvent[T])
	OnConsume func(T)
}

// TokenRejected is part of interface TokenObserver.
func (o ObserverFuncs[T]) TokenRejected(ev *RejectEvent[T]) {
	if o.OnReject != nil {
		o.OnReject(ev)
	}
}

// TokenConsumed is part of interface TokenObserver.
func (o ObserverFuncs[T]) TokenConsumed(token T) {
	if o.OnConsume != nil {
		o.OnConsume(token)
	}
}

type subscription[T comparable] struct {
	id  int
	obs TokenObserver[T]
}

// Subscribe lets an observer subscribe to token events of a. It returns a
// function to unsubscribe the observer again.
//
// Observers are not copied by Clone() and are dropped when a is moved into
// a composite automaton.
func (a *Automaton[T]) Subscribe(obs TokenObserver[T]) (unsubscribe func()) {
	a.mustBeUsable()
	if obs == nil {
		return func() {}
	}
	a.nextSubID++
	id := a.nextSubID
	a.observers = append(a.observers, subscription[T]{id: id, obs: obs})
	return func() {
		for i, sub := range a.observers {
			if sub.id == id {
				a.observers = append(a.observers[:i:i], a.observers[i+1:]...)
				return
			}
		}
	}
}

// publishRejected notifies all observers of a rejected token and reports
// whether any of them prevented the default.
func (a *Automaton[T]) publishRejected(token T) bool {
	if len(a.observers) == 0 {
		return false
	}
	ev := &RejectEvent[T]{Token: token, Automaton: a}
	for _, sub := range a.snapshotObservers() {
		sub.obs.TokenRejected(ev)
	}
	if ev.prevented {
		CT().Debugf("majora: rejection of %v handled by observer", token)
	}
	return ev.prevented
}

func (a *Automaton[T]) publishConsumed(token T) {
	for _, sub := range a.snapshotObservers() {
		sub.obs.TokenConsumed(token)
	}
}

// Observers may unsubscribe while being notified; we iterate over a copy.
func (a *Automaton[T]) snapshotObservers() []subscription[T] {
	if len(a.observers) == 0 {
		return nil
	}
	subs := make([]subscription[T], len(a.observers))
	copy(subs, a.observers)
	return subs
}
