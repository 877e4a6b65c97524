package grammar

import (
	"fmt"
	"strings"

	"github.com/dekarrin/parsegen/icerrors"
)

// Alt is one alternative of a rule's right-hand side: a sequence of symbols
// (terminals and nonterminals, whitespace-separated at the call site) plus
// the semantic action text attached to it, and an optional `%prec`
// override naming the terminal whose precedence this alternative should
// use instead of its rightmost terminal's.
type Alt struct {
	Symbols       []string
	Action        string
	PrecOverride  string
}

// Rule is one nonterminal's full set of alternatives: LHS -> Alt1 | Alt2 | ...
type Rule struct {
	Head string
	Alts []Alt
}

// BuilderInput is the normalized, pre-parsed form of a grammar definition:
// every rule the grammar declares, the set of terminal names used (so the
// builder need not guess whether a bare identifier is a terminal or
// nonterminal), the user's chosen start symbol (defaulting to the first
// rule's head), the construction mode, an ordered operator-precedence
// table (earliest entries bind weakest), and whether location capture is
// requested.
type BuilderInput struct {
	Rules       []Rule
	Terminals   []string
	Start       string
	Mode        Mode
	Operators   []Operator
	CaptureLoc  bool
}

// Build normalizes a BuilderInput into a validated Grammar: it synthesizes
// the augmenting production 0 (S' -> S), numbers every production in
// declaration order starting at 1, classifies every rhs symbol as terminal
// or nonterminal, and resolves each production's shift/reduce precedence
// to the rightmost terminal in its rhs that carries an operator-table
// entry, unless overridden by an explicit %prec marker.
func Build(in BuilderInput) (*Grammar, error) {
	if len(in.Rules) == 0 {
		return nil, icerrors.NewInvalidGrammar("no rules declared")
	}

	start := in.Start
	if start == "" {
		start = in.Rules[0].Head
	}

	g := &Grammar{
		bySymbol:  map[string][]int{},
		terminals: map[string]bool{},
		nonterms:  map[string]bool{},
		start:     start,
		mode:      in.Mode,
		operators: map[string]Operator{},
		captureLoc: in.CaptureLoc,
	}

	for _, t := range in.Terminals {
		g.terminals[t] = true
	}
	for _, r := range in.Rules {
		g.nonterms[r.Head] = true
	}
	if !g.nonterms[start] {
		return nil, &icerrors.InvalidGrammarError{Reason: "start symbol is not the lhs of any rule", Symbol: start, Production: -1}
	}

	for i, op := range in.Operators {
		if _, dup := g.operators[op.Terminal]; dup {
			return nil, &icerrors.InvalidGrammarError{Reason: "duplicate operator declaration", Symbol: op.Terminal, Production: -1}
		}
		op.Level = i + 1
		g.operators[op.Terminal] = op
	}

	augStart := start + "'"
	for g.nonterms[augStart] {
		augStart += "'"
	}
	g.augmentedStart = augStart
	g.nonterms[augStart] = true

	g.productions = append(g.productions, Production{
		Number: 0,
		LHS:    augStart,
		RHS:    []string{start},
	})
	g.bySymbol[augStart] = []int{0}

	num := 1
	for _, r := range in.Rules {
		for _, alt := range r.Alts {
			p := Production{Number: num, LHS: r.Head, Action: alt.Action}
			if len(alt.Symbols) == 0 || (len(alt.Symbols) == 1 && alt.Symbols[0] == Epsilon) {
				p.Empty = true
			} else {
				p.RHS = alt.Symbols
			}

			for _, sym := range p.RHS {
				if !g.terminals[sym] && !g.nonterms[sym] {
					// unknown symbols default to terminal: a grammar's
					// terminal set is usually derived from what its lex
					// spec can produce, which callers pass via
					// BuilderInput.Terminals, but any symbol that never
					// appears as a rule head is by definition terminal.
					g.terminals[sym] = true
				}
			}

			precTerm := alt.PrecOverride
			if precTerm == "" {
				for i := len(p.RHS) - 1; i >= 0; i-- {
					if _, ok := g.operators[p.RHS[i]]; ok {
						precTerm = p.RHS[i]
						break
					}
				}
			}
			if precTerm != "" {
				if op, ok := g.operators[precTerm]; ok {
					opCopy := op
					p.Precedence = &opCopy
				} else {
					return nil, &icerrors.InvalidGrammarError{Reason: fmt.Sprintf("%%prec names undeclared operator %q", precTerm), Symbol: precTerm, Production: num}
				}
			}

			g.bySymbol[r.Head] = append(g.bySymbol[r.Head], len(g.productions))
			g.productions = append(g.productions, p)
			num++
		}
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// ParseAlt splits a raw rhs alternative string (whitespace-separated
// symbols, with an optional trailing "%prec SYMBOL" marker) into an Alt.
// This is the loader-facing counterpart to BuilderInput's already-split
// Alt.Symbols, used by the object-form grammar loader which reads rules as
// flat strings from YAML.
func ParseAlt(raw string, action string) Alt {
	raw = strings.TrimSpace(raw)
	var prec string
	if idx := strings.Index(raw, "%prec"); idx >= 0 {
		prec = strings.TrimSpace(raw[idx+len("%prec"):])
		raw = strings.TrimSpace(raw[:idx])
	}
	var symbols []string
	if raw != "" && raw != Epsilon {
		symbols = strings.Fields(raw)
	}
	return Alt{Symbols: symbols, Action: action, PrecOverride: prec}
}
