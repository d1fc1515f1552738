package majora

import (
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/npillmayer/majora/internal/tracing"
)

// --- Helpers ----------------------------------------------------------

func followOf[T comparable](a *Automaton[T]) string {
	var labels []string
	for _, l := range a.Follow() {
		labels = append(labels, l.String())
	}
	sort.Strings(labels)
	return strings.Join(labels, ",")
}

func check[T comparable](t *testing.T, step string, a *Automaton[T], final bool, follow string) {
	t.Helper()
	if a.IsFinal() != final {
		t.Errorf("%s: expected final=%v, is %v", step, final, a.IsFinal())
	}
	if f := followOf(a); f != follow {
		t.Errorf("%s: expected follow={%s}, is {%s}", step, follow, f)
	}
}

func lit(s string) *Automaton[rune] {
	return ForLiteral([]rune(s)[0])
}

func expectPanic(t *testing.T, what string, expected error, f func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Errorf("%s: expected panic, did not panic", what)
			return
		}
		if expected != nil {
			if err, ok := r.(error); !ok || !errors.Is(err, expected) {
				t.Errorf("%s: expected panic with %v, got %v", what, expected, r)
			}
		}
	}()
	f()
}

// ----------------------------------------------------------------------

func TestEmpty(t *testing.T) {
	teardown := tracing.SetTestingLog(t)
	defer teardown()
	//
	nfa := Empty[string]()
	nfa.Begin()
	check(t, "begin", nfa, true, "")
	if nfa.IsDead() {
		t.Errorf("empty automaton should not be dead after Begin()")
	}
}

func TestSingleToken(t *testing.T) {
	teardown := tracing.SetTestingLog(t)
	defer teardown()
	//
	nfa := ForLiteral("T")
	nfa.Begin()
	check(t, "begin", nfa, false, "T")
	nfa.Consume("T")
	check(t, "T", nfa, true, "")
}

func TestSingleFunctionToken(t *testing.T) {
	teardown := tracing.SetTestingLog(t)
	defer teardown()
	//
	label := NamedPredicateLabel("t|T", func(token string) bool {
		return token == "t" || token == "T"
	})
	nfa := ForToken(label)
	nfa.Begin()
	follow := nfa.Follow()
	if len(follow) != 1 || follow[0] != label {
		t.Errorf("expected follow set to contain exactly the predicate, is %v", follow)
	}
	nfa.Consume("t")
	check(t, "t", nfa, true, "")
}

func TestNotAccept(t *testing.T) {
	teardown := tracing.SetTestingLog(t)
	defer teardown()
	//
	nfa := ForLiteral("T")
	nfa.Begin()
	nfa.Consume("x")
	check(t, "x", nfa, false, "")
	if !nfa.IsDead() {
		t.Errorf("automaton should be dead after rejecting a token")
	}
	nfa.Consume("T") // dead automata stay dead
	check(t, "x T", nfa, false, "")
	nfa.Begin()
	check(t, "re-begin", nfa, false, "T")
}

func TestConcatenation(t *testing.T) {
	teardown := tracing.SetTestingLog(t)
	defer teardown()
	//
	nfa := Concatenation(lit("a"), lit("b"))
	nfa.Begin()
	check(t, "begin", nfa, false, "a")
	nfa.Consume('a')
	check(t, "a", nfa, false, "b")
	nfa.Consume('b')
	check(t, "ab", nfa, true, "")
}

func TestConcatenateZeroAndOne(t *testing.T) {
	teardown := tracing.SetTestingLog(t)
	defer teardown()
	//
	nfa := Concatenation[rune]()
	nfa.Begin()
	check(t, "zero", nfa, true, "")
	nfa = Concatenation(lit("a"))
	nfa.Begin()
	check(t, "one/begin", nfa, false, "a")
	nfa.Consume('a')
	check(t, "one/a", nfa, true, "")
}

func TestConcatenateMany(t *testing.T) {
	teardown := tracing.SetTestingLog(t)
	defer teardown()
	//
	nfa := Concatenation(lit("a"), lit("b"), lit("c"), lit("d"))
	nfa.Begin()
	check(t, "begin", nfa, false, "a")
	ConsumeString(nfa, "abc")
	check(t, "abc", nfa, false, "d")
	nfa.Consume('d')
	check(t, "abcd", nfa, true, "")
}

func TestUnion(t *testing.T) {
	teardown := tracing.SetTestingLog(t)
	defer teardown()
	//
	nfa := Union(lit("a"), lit("b"))
	nfa.Begin()
	check(t, "begin", nfa, false, "a,b")
	nfa.Consume('a')
	check(t, "a", nfa, true, "")
	nfa.Begin()
	check(t, "re-begin", nfa, false, "a,b")
	nfa.Consume('b')
	check(t, "b", nfa, true, "")
}

func TestUnionZeroOneMany(t *testing.T) {
	teardown := tracing.SetTestingLog(t)
	defer teardown()
	//
	nfa := Union[rune]()
	nfa.Begin()
	check(t, "zero", nfa, true, "")
	nfa = Union(lit("a"))
	nfa.Begin()
	check(t, "one/begin", nfa, false, "a")
	nfa.Consume('a')
	check(t, "one/a", nfa, true, "")
	nfa = Union(lit("a"), lit("b"), lit("c"), lit("d"))
	nfa.Begin()
	check(t, "many/begin", nfa, false, "a,b,c,d")
	nfa.Consume('a')
	check(t, "many/a", nfa, true, "")
	nfa.Begin()
	nfa.Consume('b')
	check(t, "many/b", nfa, true, "")
}

func TestKleene(t *testing.T) {
	teardown := tracing.SetTestingLog(t)
	defer teardown()
	//
	nfa := Kleene(lit("x"))
	nfa.Begin()
	check(t, "begin", nfa, true, "x")
	for i := 0; i < 3; i++ {
		nfa.Consume('x')
		check(t, "x", nfa, true, "x")
	}
}

func TestQuantify(t *testing.T) {
	teardown := tracing.SetTestingLog(t)
	defer teardown()
	//
	nfa := Quantify(Concatenation(lit("a"), lit("b")), 2, 3)
	nfa.Begin()
	check(t, "begin", nfa, false, "a")
	ConsumeString(nfa, "ab")
	check(t, "ab", nfa, false, "a")
	ConsumeString(nfa, "ab")
	check(t, "abab", nfa, true, "a")
	ConsumeString(nfa, "ab")
	check(t, "ababab", nfa, true, "")
}

func TestQuantifyBoundary(t *testing.T) {
	teardown := tracing.SetTestingLog(t)
	defer teardown()
	//
	nfa := Quantify(lit("a"), 2, 3)
	nfa.Begin()
	nfa.Consume('a')
	check(t, "a", nfa, false, "a")
	nfa.Consume('a')
	check(t, "aa", nfa, true, "a")
	nfa.Consume('a')
	check(t, "aaa", nfa, true, "")
	nfa.Consume('a')
	check(t, "aaaa", nfa, false, "")
	if !nfa.IsDead() {
		t.Errorf("4th 'a' should leave automaton dead")
	}
	nfa.Begin()
	nfa.ConsumeAll('a', 'a', 'a')
	check(t, "all aaa", nfa, true, "")
	nfa.Begin()
	nfa.ConsumeAll('a', 'a', 'a', 'a')
	check(t, "all aaaa", nfa, false, "")
	if !nfa.IsDead() {
		t.Errorf("ConsumeAll of 4 'a' should leave automaton dead")
	}
}

func TestQuantifyKeepsInput(t *testing.T) {
	teardown := tracing.SetTestingLog(t)
	defer teardown()
	//
	a := lit("a")
	q := Quantify(a, 0, 0)
	q.Begin()
	check(t, "{0,0}", q, true, "")
	a.Begin() // still usable
	check(t, "input", a, false, "a")
	expectPanic(t, "{2,1}", nil, func() { Quantify(a, 2, 1) })
	expectPanic(t, "{-1,1}", nil, func() { Quantify(a, -1, 1) })
}

func TestComplex(t *testing.T) {
	teardown := tracing.SetTestingLog(t)
	defer teardown()
	//
	nfa1 := Concatenation(Concatenation(lit("a"), lit("b")), lit("c")) // abc
	nfa2 := Concatenation(lit("a"), Kleene(lit("b")))                  // ab*
	nfa3 := Kleene(Concatenation(lit("a"), lit("b")))                  // (ab)*
	nfa := Union(nfa1, Union(nfa2, nfa3))                              // abc | ab* | (ab)*
	nfa.Begin()
	check(t, "begin", nfa, true, "a")
	nfa.Consume('a')
	check(t, "a", nfa, true, "b")
	nfa.Consume('b')
	check(t, "ab", nfa, true, "a,b,c")
	nfa.Consume('b')
	check(t, "abb", nfa, true, "b")
	nfa.Begin()
	ConsumeString(nfa, "aba")
	check(t, "aba", nfa, false, "b")
	nfa.Consume('b')
	check(t, "abab", nfa, true, "a")
	//
	nfa = Concatenation(nfa, nfa.Clone()) // (abc | ab* | (ab)*) (abc | ab* | (ab)*)
	nfa.Begin()
	ConsumeString(nfa, "abc")
	check(t, "2: abc", nfa, true, "a")
	ConsumeString(nfa, "abc")
	check(t, "2: abcabc", nfa, true, "")
	nfa.Begin()
	ConsumeString(nfa, "abb")
	check(t, "2: abb", nfa, true, "a,b")
	ConsumeString(nfa, "aba")
	check(t, "2: abbaba", nfa, false, "b")
	nfa.Consume('b')
	check(t, "2: abbabab", nfa, true, "a")
}

func TestCloneTrajectory(t *testing.T) {
	teardown := tracing.SetTestingLog(t)
	defer teardown()
	//
	orig := Concatenation(Kleene(Union(lit("x"), lit("y"))), lit("-"), Quantify(lit("z"), 1, 2))
	clone := orig.Clone()
	if clone.Size() != orig.Size() {
		t.Fatalf("clone has %d states, original has %d", clone.Size(), orig.Size())
	}
	orig.Begin()
	clone.Begin()
	for i, r := range "xyxx-zzz" {
		orig.Consume(r)
		clone.Consume(r)
		if orig.IsFinal() != clone.IsFinal() || followOf(orig) != followOf(clone) {
			t.Errorf("step %d: trajectories differ: %v/{%s} vs %v/{%s}", i,
				orig.IsFinal(), followOf(orig), clone.IsFinal(), followOf(clone))
		}
	}
	// clone does not alias the original's structure
	Kleene(clone)
	if clone.Size() != orig.Size()+1 {
		t.Errorf("modifying clone should not modify original")
	}
}

func TestAssociativity(t *testing.T) {
	teardown := tracing.SetTestingLog(t)
	defer teardown()
	//
	build := []func() *Automaton[rune]{
		func() *Automaton[rune] {
			return Concatenation(Concatenation(lit("a"), Kleene(lit("b"))), Union(lit("c"), lit("a")))
		},
		func() *Automaton[rune] {
			return Concatenation(lit("a"), Concatenation(Kleene(lit("b")), Union(lit("c"), lit("a"))))
		},
		func() *Automaton[rune] {
			return Concatenation(lit("a"), Kleene(lit("b")), Union(lit("c"), lit("a")))
		},
	}
	for _, input := range []string{"abbbc", "aa", "ac", "abx", "b", "abca"} {
		var trajectories []string
		for _, b := range build {
			nfa := b()
			nfa.Begin()
			var sb strings.Builder
			for _, r := range input {
				nfa.Consume(r)
				if nfa.IsFinal() {
					sb.WriteByte('F')
				} else {
					sb.WriteByte('-')
				}
			}
			trajectories = append(trajectories, sb.String())
		}
		if trajectories[0] != trajectories[1] || trajectories[1] != trajectories[2] {
			t.Errorf("input %q: trajectories differ: %v", input, trajectories)
		}
	}
}

func TestPredicateIdentity(t *testing.T) {
	teardown := tracing.SetTestingLog(t)
	defer teardown()
	//
	isX := func(r rune) bool { return r == 'x' }
	shared := PredicateLabel(isX)
	nfa := Union(ForToken(shared), ForToken(shared), ForPredicate(isX))
	nfa.Begin()
	if n := len(nfa.Follow()); n != 2 {
		t.Errorf("expected 2 distinct predicates in follow set, have %d", n)
	}
	nfa = Union(lit("x"), lit("x"))
	nfa.Begin()
	if n := len(nfa.Follow()); n != 1 {
		t.Errorf("expected literals to be de-duplicated by value, have %d", n)
	}
}

func TestMoved(t *testing.T) {
	teardown := tracing.SetTestingLog(t)
	defer teardown()
	//
	a, b := lit("a"), lit("b")
	c := Concatenation(a, b)
	expectPanic(t, "begin moved", ErrMoved, func() { a.Begin() })
	expectPanic(t, "clone moved", ErrMoved, func() { b.Clone() })
	expectPanic(t, "union of moved", ErrMoved, func() { Union(a, lit("x")) })
	expectPanic(t, "same automaton twice", ErrMoved, func() {
		x := lit("x")
		Concatenation(x, x)
	})
	expectPanic(t, "consume before begin", ErrNotBegun, func() { c.Consume('a') })
	expectPanic(t, "kleene resets cursor", ErrNotBegun, func() {
		k := lit("k")
		k.Begin()
		Kleene(k)
		k.IsFinal()
	})
	if s := a.String(); s != "[moved automaton]" {
		t.Errorf("unexpected stringer output for moved automaton: %s", s)
	}
}
