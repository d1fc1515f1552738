/*
Package validate checks streams of runes against patterns.

Typical Usage

Validator provides an interface similar to bufio.Scanner. Successive calls
to a validator's Next() method will step through the runes of the input,
feeding each one to an automaton. Next() returns false as soon as the
input ends or a rune is rejected by the automaton.

  v := validate.NewValidator(p.Matcher())
  v.Init(strings.NewReader(input))
  for v.Next() {
    // v.Text() is the input accepted so far
  }
  if err := v.Err(); err != nil {
    // input contains a rune not matching the pattern
  }
  complete := v.Accepted()

For the common case of checking a complete input, use Validate.

BSD License

Copyright (c) 2021, Norbert Pillmayer

All rights reserved.
Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/
package validate

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/npillmayer/majora"
	"github.com/npillmayer/majora/internal/tracing"
	"github.com/npillmayer/majora/pattern"
)

// ErrNotInitialized is returned if a validator's Next-function is called
// without first setting an input source.
// ErrRejected is wrapped by every RejectError.
// ErrIncomplete is returned by Validate for input which is a valid prefix only.
var (
	ErrNotInitialized = errors.New("validator not initialized; must call Init(...) first")
	ErrRejected       = errors.New("input rejected")
	ErrIncomplete     = errors.New("input incomplete")
)

// RejectError reports a rune not accepted by the pattern.
type RejectError struct {
	Rune     rune     // the offending rune
	Pos      int64    // position of Rune within the consumed runes
	Expected []string // labels of the runes acceptable at Pos
}

func (e *RejectError) Error() string {
	if len(e.Expected) == 0 {
		return fmt.Sprintf("%v: %q at position %d, expected end of input", ErrRejected, e.Rune, e.Pos)
	}
	return fmt.Sprintf("%v: %q at position %d, expected one of %s", ErrRejected, e.Rune, e.Pos,
		strings.Join(e.Expected, " "))
}

// Unwrap returns ErrRejected.
func (e *RejectError) Unwrap() error {
	return ErrRejected
}

// A Validator receives a sequence of code-points from an io.RuneReader and
// feeds them to an automaton.
type Validator struct {
	nfa      *majora.Automaton[rune] // the automaton to match against
	reader   io.RuneReader           // where we get the next runes from
	buffer   *bytes.Buffer           // input accepted so far
	pos      int64                   // current position in text
	pending  *RejectError            // rejection reported by the automaton, not yet final
	rejected *RejectError
	err      error
}

// NewValidator creates a validator for an automaton, which usually will have
// been created by pattern.Compile or pattern.Pattern.Matcher.
// The validator subscribes to token events of nfa.
//
// Before using newly created validators, clients will have to call Init(...)
// on them.
func NewValidator(nfa *majora.Automaton[rune]) *Validator {
	v := &Validator{nfa: nfa, buffer: &bytes.Buffer{}}
	nfa.Subscribe(majora.ObserverFuncs[rune]{
		OnReject:  v.tokenRejected,
		OnConsume: v.tokenConsumed,
	})
	return v
}

// tokenConsumed records every rune the automaton advanced on, including
// runes injected by recovering observers.
func (v *Validator) tokenConsumed(r rune) {
	v.buffer.WriteRune(r)
	v.pos++
}

func (v *Validator) tokenRejected(ev *majora.RejectEvent[rune]) {
	follow := ev.Automaton.Follow()
	expected := make([]string, len(follow))
	for i, l := range follow {
		expected[i] = l.String()
	}
	v.pending = &RejectError{Rune: ev.Token, Pos: v.pos, Expected: expected}
}

// Init initializes a Validator with an io.RuneReader to read from.
// Init may be called more than once, re-starting the automaton every time.
func (v *Validator) Init(reader io.RuneReader) {
	if reader == nil {
		reader = strings.NewReader("")
	}
	v.reader = reader
	v.buffer.Reset()
	v.pos = 0
	v.pending, v.rejected = nil, nil
	v.err = nil
	v.nfa.Begin()
}

// Next reads the next rune and feeds it to the automaton.
//
// Next returns false when validation stops, either by reaching the end of
// the input, by a rune rejected by the automaton, or by an error.
// After Next() returns false, the Err() method will return any error
// that occurred, except for io.EOF.
func (v *Validator) Next() bool {
	if v.reader == nil {
		v.setErr(ErrNotInitialized)
	}
	if v.err != nil {
		return false
	}
	r, _, err := v.reader.ReadRune()
	if err != nil {
		v.setErr(err)
		return false
	}
	v.nfa.Consume(r)
	if v.nfa.IsDead() {
		if v.pending == nil { // automaton was dead before
			v.pending = &RejectError{Rune: r, Pos: v.pos}
		}
		v.rejected = v.pending
		tracing.CT().P("pos", strconv.FormatInt(v.pos, 10)).Debugf("validate: %v", v.rejected)
		v.setErr(v.rejected)
		return false
	}
	v.pending = nil // an observer may have recovered
	return true
}

// Pos returns the number of runes consumed by the automaton so far.
// If observers recover from rejections by injecting runes, this may differ
// from the number of runes read.
func (v *Validator) Pos() int64 {
	return v.pos
}

// Text returns the runes consumed by the automaton so far.
func (v *Validator) Text() string {
	return v.buffer.String()
}

// Rejected returns the rune which has been rejected by the automaton and
// its position. If no rune has been rejected, ok is false.
func (v *Validator) Rejected() (r rune, pos int64, ok bool) {
	if v.rejected == nil {
		return 0, 0, false
	}
	return v.rejected.Rune, v.rejected.Pos, true
}

// Accepted is true if the input read so far is a complete match.
func (v *Validator) Accepted() bool {
	return v.rejected == nil && v.nfa.IsFinal()
}

// Err returns the first non-EOF error that was encountered by the
// Validator.
func (v *Validator) Err() error {
	if v.err == io.EOF {
		return nil
	}
	return v.err
}

// setErr records the first error encountered.
func (v *Validator) setErr(err error) {
	if v.err == nil || v.err == io.EOF {
		v.err = err
	}
}

// Validate checks a complete input against a pattern. It returns nil if the
// input matches, ErrIncomplete if the input is a valid prefix of a match,
// and a *RejectError otherwise. Errors of r other than io.EOF are returned
// unchanged.
func Validate(p *pattern.Pattern, r io.RuneReader) error {
	v := NewValidator(p.Matcher())
	v.Init(r)
	for v.Next() {
	}
	if err := v.Err(); err != nil {
		return err
	}
	if !v.Accepted() {
		return ErrIncomplete
	}
	return nil
}
