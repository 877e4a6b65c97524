package lex

import "github.com/dekarrin/parsegen/ptypes"

// Rule is a single lexical rule: an anchored regular expression pattern,
// the start condition it applies under, and the action to run on match.
type Rule struct {
	Pattern string
	State   string
	Action  Action
}

// Spec is the embedded lexical grammar a Grammar carries (C3's input):
// a set of token classes, the rules that recognize them per start
// condition, the initial start condition, and lexer-wide flags.
type Spec struct {
	Classes         []ptypes.TokenClass
	Rules           []Rule
	StartState      string
	CaseInsensitive bool
}

// Merge appends other's classes and rules to a copy of s, used when the
// `lex` CLI option supplies an external lex grammar to merge into the
// grammar file's own lex rules.
func (s Spec) Merge(other Spec) Spec {
	merged := Spec{
		StartState:      s.StartState,
		CaseInsensitive: s.CaseInsensitive || other.CaseInsensitive,
	}
	merged.Classes = append(append([]ptypes.TokenClass{}, s.Classes...), other.Classes...)
	merged.Rules = append(append([]Rule{}, s.Rules...), other.Rules...)
	if merged.StartState == "" {
		merged.StartState = other.StartState
	}
	return merged
}

// WithWhitespaceSkip returns a copy of s with a `\s+` skip rule prepended
// for the given start condition, used for the `ignore-whitespaces` option when no
// lex grammar was otherwise supplied.
func (s Spec) WithWhitespaceSkip(state string) Spec {
	cp := s
	cp.Rules = append([]Rule{{Pattern: `\s+`, State: state, Action: Discard()}}, cp.Rules...)
	return cp
}
