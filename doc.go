/*
Package majora is about incremental matching of token streams against
non-deterministic finite automata (NFA).

Description

Package majora is intended as an embeddable matching engine for interactive
validation, e.g. validating partial user input against a pattern while it
is being typed. It is not a bulk regex-search library: the automaton does
not search for matches within a text, but rather keeps track of how far
a stream of tokens has progressed through a pattern.

An Automaton holds a graph of states and labeled transitions, plus a
cursor: the set of currently active states. Clients reset the cursor by
calling Begin() and then feed tokens, one at a time or in bulk. After
every step the automaton answers two questions:

  IsFinal()   is the input consumed so far a complete match?
  Follow()    which tokens would be accepted next?

A token is an opaque atomic unit of any comparable type. Transitions are
labeled with either a literal token (compared by equality), a predicate
over a token, or epsilon (consuming nothing). Labels are modeled as a
tagged variant, see type Label.

Building Automata

Automata are built bottom-up from structural operators, following
Thompson's construction:

  Empty()              matches the empty input
  ForToken(label)      matches a single token
  Concatenation(a...)  sequential composition
  Union(a...)          alternation
  Kleene(a)            zero or more repetitions
  Quantify(a, m, n)    between m and n repetitions

Concatenation and Union take ownership of their arguments: the states of
the input automata are moved into the result and the inputs become
unusable. Using a moved automaton panics with ErrMoved. Clients which need
to keep an automaton have to pass a Clone() instead.

Sub-package pattern provides a compiler for a small textual pattern
language, which translates patterns like

  ((x|y){2,3}-){2}.(x|y|z)*

into calls of the structural operators.

Observers

Clients may subscribe a TokenObserver to an automaton. Observers get
notified whenever a token has been consumed and whenever a token has been
rejected. A rejection notification is sent before the automaton gives up,
enabling observers to perform recovery, e.g. injecting a separator
character the user forgot to type.

Concurrency

Automata are not safe for concurrent use, as Begin() and Consume() mutate
the cursor. Clients matching a pattern against more than one stream
concurrently will have to clone the automaton per stream; type Pool
manages a pool of clones.

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
package majora

import (
	"errors"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// CT traces to the core-tracer.
func CT() tracing.Trace {
	return gtrace.CoreTracer
}

// ErrMoved is the panic value for operations on an automaton which has been
// moved into a composite automaton by Concatenation or Union.
// ErrNotBegun is the panic value for querying or advancing an automaton
// before Begin() has been called.
var (
	ErrMoved    = errors.New("majora: automaton has been moved into a composite automaton")
	ErrNotBegun = errors.New("majora: automaton not started; must call Begin() first")
)
