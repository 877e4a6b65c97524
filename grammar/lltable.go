package grammar

import (
	"fmt"

	"github.com/dekarrin/parsegen/icerrors"
)

// LLTable is a built LL(1) parse table: for each (nonterminal, terminal)
// pair, at most one production to expand. Cells are addressed by
// production number; 0 means "no entry" since production 0 is always the
// augmenting production and can never appear in a predictive cell.
type LLTable struct {
	cells map[string]map[string]int
	nts   []string
	terms []string
}

// Cell returns the production number predicted for (nt, term), and
// whether any entry exists.
func (t *LLTable) Cell(nt, term string) (int, bool) {
	row, ok := t.cells[nt]
	if !ok {
		return 0, false
	}
	p, ok := row[term]
	return p, ok
}

// Nonterminals returns the table's row labels in declaration order.
func (t *LLTable) Nonterminals() []string { return t.nts }

// Terminals returns the table's column labels in order of first
// appearance on a production's rhs, followed by the end-of-input marker.
func (t *LLTable) Terminals() []string { return t.terms }

// IsLL1 reports whether g's grammar admits a collision-free LL(1) table:
// every pair of distinct productions for the same nonterminal must have
// disjoint PREDICT sets.
func (g *Grammar) IsLL1() bool {
	_, err := g.LLParseTable()
	return err == nil
}

// LLParseTable builds the LL(1) parse table for g (C7): for every
// production, PREDICT(p) names the terminals that select it; a second
// production selected by the same (nonterminal, terminal) pair is an
// Unresolvable collision, since LL(1) construction defines no
// precedence-based tie-break (unlike the LR table builder).
func (g *Grammar) LLParseTable() (*LLTable, error) {
	t := &LLTable{
		cells: map[string]map[string]int{},
		nts:   g.GetNonterminals(),
		terms: append(g.GetTerminals(), EndOfInput),
	}
	for _, nt := range t.nts {
		t.cells[nt] = map[string]int{}
	}

	for _, p := range g.productions {
		if p.Number == 0 {
			continue
		}
		predict := g.PREDICT(p)
		for term := range predict {
			row := t.cells[p.LHS]
			if existing, ok := row[term]; ok && existing != p.Number {
				return nil, &icerrors.UnresolvableError{
					Reason:    fmt.Sprintf("grammar is not LL(1): multiple productions predicted for nonterminal %q on terminal %q", p.LHS, term),
					Symbol:    term,
					Conflicts: []string{fmt.Sprintf("production %d", existing), fmt.Sprintf("production %d", p.Number)},
				}
			}
			row[term] = p.Number
		}
	}
	return t, nil
}
