package grammar

import (
	"fmt"

	"github.com/dekarrin/parsegen/icerrors"
)

// Mode selects which parsing-set/table construction strategy a grammar
// targets.
type Mode string

const (
	ModeLR0          Mode = "LR0"
	ModeSLR1         Mode = "SLR1"
	ModeCLR1         Mode = "CLR1"
	ModeLALR1BySLR1  Mode = "LALR1_BY_SLR1"
	ModeLALR1ByCLR1  Mode = "LALR1_BY_CLR1"
	ModeLL1          Mode = "LL1"
)

// Grammar is an immutable bag of numbered productions, a start symbol, a
// mode, and an operator-precedence table. Once returned from Build, a
// Grammar is never mutated; FIRST/FOLLOW/PREDICT results are memoized on
// it but the productions themselves never change. Augmented returns the
// receiver unchanged, since Build already adds production 0.
type Grammar struct {
	productions []Production
	bySymbol    map[string][]int // lhs -> indices into productions, in source order
	terminals   map[string]bool
	nonterms    map[string]bool
	start       string
	mode        Mode
	operators   map[string]Operator
	captureLoc  bool

	augmentedStart string // S' name chosen by Build

	firstCache  map[string]map[string]bool
	followCache map[string]map[string]bool
}

// GetProduction returns production number n.
func (g *Grammar) GetProduction(n int) (Production, bool) {
	if n < 0 || n >= len(g.productions) {
		return Production{}, false
	}
	return g.productions[n], true
}

// GetProductionsForSymbol returns every production whose lhs is sym, in
// source order (production 0's lhs, the augmented start, included only
// for the augmented start symbol itself).
func (g *Grammar) GetProductionsForSymbol(sym string) []Production {
	idxs := g.bySymbol[sym]
	out := make([]Production, len(idxs))
	for i, idx := range idxs {
		out[i] = g.productions[idx]
	}
	return out
}

// Productions returns every production in number order.
func (g *Grammar) Productions() []Production {
	out := make([]Production, len(g.productions))
	copy(out, g.productions)
	return out
}

// GetTerminals returns the grammar's terminal names, in insertion
// (first-seen) order.
func (g *Grammar) GetTerminals() []string {
	return orderedKnown(g.terminals, g.productions, true)
}

// GetNonterminals returns the grammar's nonterminal names, in the order
// their first production was declared.
func (g *Grammar) GetNonterminals() []string {
	out := []string{}
	seen := map[string]bool{}
	for _, p := range g.productions {
		if !seen[p.LHS] {
			seen[p.LHS] = true
			out = append(out, p.LHS)
		}
	}
	return out
}

func orderedKnown(set map[string]bool, prods []Production, terminalsOnly bool) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, p := range prods {
		for _, s := range p.RHS {
			if s == Epsilon {
				continue
			}
			if set[s] && !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}

// GetStartSymbol returns the user start symbol (not the augmented S').
func (g *Grammar) GetStartSymbol() string { return g.start }

// GetMode returns the grammar's configured construction mode.
func (g *Grammar) GetMode() Mode { return g.mode }

// GetOperator returns the precedence/associativity entry for terminal t,
// if any was declared.
func (g *Grammar) GetOperator(t string) (Operator, bool) {
	op, ok := g.operators[t]
	return op, ok
}

// CaptureLocations reports whether the grammar was built with location
// capture enabled (the `loc` option of the invocation surface).
func (g *Grammar) CaptureLocations() bool { return g.captureLoc }

// IsTerminal reports whether sym is a known terminal.
func (g *Grammar) IsTerminal(sym string) bool {
	if sym == EndOfInput {
		return true
	}
	return g.terminals[sym]
}

// IsNonterminal reports whether sym is a known nonterminal.
func (g *Grammar) IsNonterminal(sym string) bool {
	return g.nonterms[sym]
}

// AugmentedStartSymbol returns the synthesized S' symbol name.
func (g *Grammar) AugmentedStartSymbol() string {
	if g.augmentedStart != "" {
		return g.augmentedStart
	}
	return g.start + "'"
}

// Augmented returns a copy of g whose production 0's lhs is treated as the
// grammar's start symbol, i.e. a view suitable for canonical-collection
// construction, which always seeds its initial state from production 0.
// Since Build already synthesizes production 0 as S' -> S, Augmented on a
// built Grammar is the grammar itself; the method exists so automaton
// construction has a single, explicit entry point regardless of how the
// Grammar was obtained (matching the teacher's g.Augmented() convention).
func (g *Grammar) Augmented() *Grammar {
	return g
}

// Validate checks invariants G1-G4 from the data model: exactly one
// production numbered 0, every rhs symbol known, contiguous numbering
// from 0, and the start symbol appears as some lhs.
func (g *Grammar) Validate() error {
	if len(g.productions) == 0 {
		return icerrors.NewInvalidGrammar("grammar has no productions")
	}
	if g.productions[0].Number != 0 {
		return icerrors.NewInvalidGrammar("production 0 missing or mis-numbered")
	}
	for i, p := range g.productions {
		if p.Number != i {
			return &icerrors.InvalidGrammarError{Reason: "production numbers are not contiguous from 0", Production: p.Number}
		}
		for _, s := range p.RHS {
			if s == Epsilon {
				continue
			}
			if !g.terminals[s] && !g.nonterms[s] {
				return &icerrors.InvalidGrammarError{Reason: fmt.Sprintf("unknown symbol %q on rhs", s), Symbol: s, Production: p.Number}
			}
		}
	}
	if !g.nonterms[g.start] {
		return &icerrors.InvalidGrammarError{Reason: "start symbol is not the lhs of any production", Symbol: g.start, Production: -1}
	}
	return nil
}

// Copy returns a shallow copy of g suitable for attaching to a parser
// instance without aliasing the caller's memoization caches.
func (g *Grammar) Copy() *Grammar {
	cp := *g
	cp.firstCache = nil
	cp.followCache = nil
	return &cp
}
