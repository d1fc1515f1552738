/*
Package pattern compiles textual patterns into automata.

Content

Patterns are a small subset of regular expressions, intended for
validating input incrementally, i.e. while a user is typing it. A pattern
is compiled into a non-deterministic finite automaton over runes, which
is able to tell after every rune whether the input so far is complete,
and which runes may follow.

Syntax

  x          literal rune x, if x is not a metacharacter
  \x         escaped metacharacter x, one of ( ) [ ] { } * + ? | \ .
  .          any rune
  [:digit:]  0 to 9
  [:alpha:]  A to Z, a to z
  [:alnum:]  union of [:digit:] and [:alpha:]
  (p)        grouping
  p|q        alternative
  p*         zero or more
  p+         one or more
  p?         zero or one
  p{m}       exactly m
  p{m,n}     m to n

There are no capture groups, anchors or backreferences. Patterns always
have to match the complete input.

Typical Usage

  p, err := pattern.New("[:digit:]{4}-[:digit:]{2}-[:digit:]{2}")
  ...
  m := p.Matcher()
  for _, r := range input {
      m.Consume(r)
      if m.IsDead() { ... }
  }
  fmt.Println(m.IsFinal(), m.Follow())

Malformed patterns result in errors of type *SyntaxError, which will
carry the rune offset of the error.

Quantifier bounds are limited to MaxRepeat, and a quantified sub-pattern
may not expand to more than MaxStates states.

______________________________________________________________________

License

This project is provided under the terms of the 3-Clause BSD license.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package pattern
