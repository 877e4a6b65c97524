// Package icerrors defines the structured error taxonomy used across the
// grammar, automaton, parse, and lex packages: InvalidGrammar, Unresolvable,
// UnexpectedToken, ParseError, and IOFailure. Constructors fail fast with
// one of these types rather than a bare fmt.Errorf, so callers can recover
// the offending symbol/production/state with errors.As.
package icerrors

import (
	"fmt"

	"github.com/dekarrin/parsegen/ptypes"
)

// InvalidGrammarError reports a malformed grammar: an undefined symbol on
// some rhs, a duplicate operator declaration, or a violated invariant
// (G1-G4 in the data model).
type InvalidGrammarError struct {
	Reason    string
	Symbol    string
	Production int
	Cause     error
}

func (e *InvalidGrammarError) Error() string {
	msg := "invalid grammar: " + e.Reason
	if e.Symbol != "" {
		msg += fmt.Sprintf(" (symbol %q)", e.Symbol)
	}
	if e.Production >= 0 {
		msg += fmt.Sprintf(" (production %d)", e.Production)
	}
	return msg
}

func (e *InvalidGrammarError) Unwrap() error { return e.Cause }

// NewInvalidGrammar returns an InvalidGrammarError with no symbol/production
// context attached.
func NewInvalidGrammar(reason string) *InvalidGrammarError {
	return &InvalidGrammarError{Reason: reason, Production: -1}
}

// UnresolvableError reports an LL(1) table collision, or an LR conflict
// left unresolved when emission/interpretation was demanded.
type UnresolvableError struct {
	Reason    string
	State     int
	Symbol    string
	Conflicts []string
}

func (e *UnresolvableError) Error() string {
	msg := "unresolvable: " + e.Reason
	if e.Symbol != "" {
		msg += fmt.Sprintf(" on %q", e.Symbol)
	}
	if len(e.Conflicts) > 0 {
		msg += fmt.Sprintf(" (%v)", e.Conflicts)
	}
	return msg
}

func (e *UnresolvableError) Unwrap() error { return nil }

// UnexpectedTokenError reports that the tokenizer could not match any rule
// at the cursor.
type UnexpectedTokenError struct {
	Offset, Line, LinePos int
	FullLine              string
}

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("unexpected input at %d:%d", e.Line, e.LinePos)
}

func (e *UnexpectedTokenError) Unwrap() error { return nil }

// ParseError reports that an interpreter hit an error cell, or an
// unexpected token at a given state.
type ParseError struct {
	Message string
	Token   ptypes.Token
}

func (e *ParseError) Error() string {
	if e.Token != nil {
		return fmt.Sprintf("%s (at %d:%d, got %q)", e.Message, e.Token.Line(), e.Token.LinePos(), e.Token.Lexeme())
	}
	return e.Message
}

func (e *ParseError) Unwrap() error { return nil }

// NewParseErrorFromToken builds a ParseError describing msg at the location
// of tok.
func NewParseErrorFromToken(msg string, tok ptypes.Token) *ParseError {
	return &ParseError{Message: msg, Token: tok}
}

// IOFailureError wraps a boundary I/O failure (grammar file or input file
// not readable). This is never returned by the core constructors
// themselves; it exists so the CLI front end can report failures using the
// same taxonomy as the core.
type IOFailureError struct {
	Path  string
	Cause error
}

func (e *IOFailureError) Error() string {
	return fmt.Sprintf("cannot read %q: %s", e.Path, e.Cause)
}

func (e *IOFailureError) Unwrap() error { return e.Cause }
