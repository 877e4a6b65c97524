// Package ptypes holds the value types shared across the lexer, grammar,
// parser, and translation packages: token classes, tokens, token streams,
// and parse trees. None of these types know how a grammar is built or how
// a table is constructed; they are the currency those packages exchange.
package ptypes

import "strings"

// TokenClass identifies a terminal symbol of a grammar. Two TokenClasses
// are the same terminal iff their ID is the same.
type TokenClass interface {
	// ID returns the canonical (lower-cased) identifier of the class, used
	// as the terminal's name in the grammar.
	ID() string

	// Human returns a human-readable name, used in diagnostics and error
	// messages.
	Human() string

	Equal(o any) bool
}

type simpleClass string

func (c simpleClass) ID() string     { return strings.ToLower(string(c)) }
func (c simpleClass) Human() string  { return string(c) }
func (c simpleClass) Equal(o any) bool {
	other, ok := o.(TokenClass)
	if !ok {
		return false
	}
	return other.ID() == c.ID()
}

// NamedClass returns a TokenClass whose ID is the lower-cased form of id
// and whose Human name is human.
func NamedClass(id, human string) TokenClass {
	return namedClass{id: strings.ToLower(id), human: human}
}

type namedClass struct {
	id    string
	human string
}

func (c namedClass) ID() string    { return c.id }
func (c namedClass) Human() string { return c.human }
func (c namedClass) Equal(o any) bool {
	other, ok := o.(TokenClass)
	if !ok {
		return false
	}
	return other.ID() == c.id
}

// MakeDefaultClass builds a TokenClass whose ID is the lower-cased form of
// s and whose Human name is s unmodified.
func MakeDefaultClass(s string) TokenClass {
	return simpleClass(s)
}

// Distinguished classes referenced throughout the grammar and lexer
// packages. TokenEndOfText is the `$` end-of-input marker; TokenError
// marks a lexical error produced by the tokenizer.
const (
	TokenUndefined = simpleClass("undefined_token")
	TokenEndOfText = simpleClass("$")
	TokenError     = simpleClass("lexical_error")
)
