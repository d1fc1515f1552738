package pattern

import (
	"fmt"
	"strconv"

	"github.com/npillmayer/majora"
	"github.com/npillmayer/majora/internal/tracing"
)

// Grammar of patterns:
//
//   union         = concatenation ("|" concatenation)*
//   concatenation = unit*
//   unit          = atom quantifier?
//   atom          = "(" union ")" | "\" meta | "[" charclass "]" | "." | literal
//   quantifier    = "*" | "+" | "?" | "{" int ("," int)? "}"
//   charclass     = ":digit:" | ":alpha:" | ":alnum:"
//
// literal is any rune except the metacharacters.

const metachars = `()[]{}*+?|\.`

// MaxRepeat is the maximum bound allowed in quantifiers {m,n}.
const MaxRepeat = 1000

// MaxStates limits the number of states a quantified sub-pattern may
// expand to. Nested quantifiers multiply, e.g. (a{1000}){1000}.
const MaxStates = 1 << 16

func isMeta(r rune) bool {
	for _, m := range metachars {
		if r == m {
			return true
		}
	}
	return false
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// parser is a recursive descent parser with a lookahead of one rune.
type parser struct {
	text  string
	input []rune
	pos   int // position of lookahead
}

func newParser(text string) *parser {
	return &parser{text: text, input: []rune(text)}
}

// Compile translates a pattern into an automaton over runes. The automaton
// has already been started with Begin(), i.e. it is ready to consume input.
//
// Errors are of type *SyntaxError.
func Compile(text string) (*majora.Automaton[rune], error) {
	p := newParser(text)
	nfa, err := p.union()
	if err != nil {
		tracing.ST().Debugf("pattern: %v", err)
		return nil, err
	}
	if !p.eof() {
		return nil, p.error(ErrTrailingInput, "end of pattern")
	}
	nfa.Begin()
	tracing.ST().P("pattern", text).Debugf("compiled to automaton with %d states", nfa.Size())
	return nfa, nil
}

// MustCompile is like Compile, but panics if the pattern is malformed.
func MustCompile(text string) *majora.Automaton[rune] {
	nfa, err := Compile(text)
	if err != nil {
		panic(err)
	}
	return nfa
}

// --- Input handling ---------------------------------------------------

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *parser) peek() rune {
	if p.eof() {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) at(r rune) bool {
	return !p.eof() && p.input[p.pos] == r
}

func (p *parser) advance() rune {
	r := p.input[p.pos]
	p.pos++
	return r
}

// expect reads the lookahead, which has to be r.
func (p *parser) expect(r rune) error {
	if p.eof() {
		return p.error(ErrUnexpectedEOF, strconv.QuoteRune(r))
	}
	if p.peek() != r {
		return p.error(ErrUnexpectedSymbol, strconv.QuoteRune(r))
	}
	p.advance()
	return nil
}

// error creates a syntax error at the position of the lookahead.
// At end of input, every kind of error is reported as ErrUnexpectedEOF.
func (p *parser) error(kind error, expected string) error {
	return p.errorAt(p.pos, kind, expected)
}

func (p *parser) errorAt(pos int, kind error, expected string) error {
	err := &SyntaxError{
		Pattern:  p.text,
		Offset:   pos,
		Expected: expected,
		Err:      kind,
	}
	if pos < len(p.input) {
		err.Found = string(p.input[pos])
	} else {
		err.Err = ErrUnexpectedEOF
	}
	return err
}

// --- Productions ------------------------------------------------------

func (p *parser) union() (*majora.Automaton[rune], error) {
	nfa, err := p.concatenation()
	if err != nil {
		return nil, err
	}
	branches := []*majora.Automaton[rune]{nfa}
	for p.at('|') {
		p.advance()
		if nfa, err = p.concatenation(); err != nil {
			return nil, err
		}
		branches = append(branches, nfa)
	}
	if len(branches) == 1 {
		return branches[0], nil
	}
	return majora.Union(branches...), nil
}

func (p *parser) concatenation() (*majora.Automaton[rune], error) {
	var units []*majora.Automaton[rune]
	for !p.eof() && !p.at('|') && !p.at(')') {
		unit, err := p.unit()
		if err != nil {
			return nil, err
		}
		units = append(units, unit)
	}
	if len(units) == 1 {
		return units[0], nil
	}
	return majora.Concatenation(units...), nil
}

func (p *parser) unit() (*majora.Automaton[rune], error) {
	atom, err := p.atom()
	if err != nil {
		return nil, err
	}
	return p.quantifier(atom)
}

func (p *parser) atom() (*majora.Automaton[rune], error) {
	switch r := p.peek(); r {
	case '(':
		p.advance()
		nfa, err := p.union()
		if err != nil {
			return nil, err
		}
		if err = p.expect(')'); err != nil {
			return nil, err
		}
		return nfa, nil
	case '\\':
		p.advance()
		if p.eof() {
			return nil, p.error(ErrUnexpectedEOF, "escaped character")
		}
		if !isMeta(p.peek()) {
			return nil, p.error(ErrUnknownEscape, "one of "+metachars)
		}
		return majora.ForLiteral(p.advance()), nil
	case '[':
		return p.charclass()
	case '.':
		p.advance()
		return majora.ForToken(anyLabel), nil
	default:
		if isMeta(r) {
			return nil, p.error(ErrMisplacedMeta, "character, group or character class")
		}
		return majora.ForLiteral(p.advance()), nil
	}
}

func (p *parser) quantifier(atom *majora.Automaton[rune]) (*majora.Automaton[rune], error) {
	switch p.peek() {
	case '*':
		p.advance()
		return majora.Kleene(atom), nil
	case '+':
		p.advance()
		return majora.Concatenation(atom, majora.Kleene(atom.Clone())), nil
	case '?':
		p.advance()
		return majora.Quantify(atom, 0, 1), nil
	case '{':
		open := p.pos
		min, max, err := p.bounds()
		if err != nil {
			return nil, err
		}
		// every optional copy adds 2 states for Union(Empty(), copy)
		if n := atom.Size()*max + 2*(max-min); n > MaxStates {
			return nil, p.errorAt(open, ErrBadRepeat,
				fmt.Sprintf("at most %d states, quantifier expands to %d", MaxStates, n))
		}
		return majora.Quantify(atom, min, max), nil
	}
	return atom, nil
}

// bounds reads a quantifier of form {m} or {m,n}.
func (p *parser) bounds() (min, max int, err error) {
	open := p.pos
	p.advance()
	if min, err = p.integer(); err != nil {
		return
	}
	max = min
	if p.at(',') {
		p.advance()
		if max, err = p.integer(); err != nil {
			return
		}
	}
	if err = p.expect('}'); err != nil {
		return
	}
	if min > max {
		err = p.errorAt(open, ErrBadRepeat, fmt.Sprintf("{m,n} with m ≤ n, have {%d,%d}", min, max))
	}
	return
}

func (p *parser) integer() (int, error) {
	start := p.pos
	for !p.eof() && isDigit(p.peek()) {
		p.advance()
	}
	if p.pos == start {
		return 0, p.error(ErrMisplacedMeta, "integer in quantifier {m} or {m,n}")
	}
	n, err := strconv.Atoi(string(p.input[start:p.pos]))
	if err != nil || n > MaxRepeat {
		return 0, p.errorAt(start, ErrBadRepeat, fmt.Sprintf("integer ≤ %d", MaxRepeat))
	}
	return n, nil
}

// charclass reads one of the class keywords [:digit:], [:alpha:], [:alnum:].
func (p *parser) charclass() (*majora.Automaton[rune], error) {
	p.advance()
	if err := p.expect(':'); err != nil {
		return nil, err
	}
	start := p.pos
	for !p.eof() && p.peek() >= 'a' && p.peek() <= 'z' {
		p.advance()
	}
	name := string(p.input[start:p.pos])
	label, ok := classes[name]
	if !ok {
		return nil, p.errorAt(start, ErrUnknownClass, "digit, alpha or alnum")
	}
	if err := p.expect(':'); err != nil {
		return nil, err
	}
	if err := p.expect(']'); err != nil {
		return nil, err
	}
	return majora.ForToken(label), nil
}
