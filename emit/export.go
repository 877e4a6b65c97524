// Package emit exposes the finished Grammar/Sets/Table/Collection as a
// pure, structured data export (C9): the only thing the core hands across
// the boundary to an external target-language renderer. Iteration order
// is always deterministic, matching invariant I-6.
package emit

import (
	"sort"

	"github.com/dekarrin/parsegen/automaton"
	"github.com/dekarrin/parsegen/grammar"
	"github.com/dekarrin/parsegen/parse"
)

// ProductionExport is one production's exported shape.
type ProductionExport struct {
	Number int      `rezi:"1"`
	LHS    string   `rezi:"2"`
	RHS    []string `rezi:"3"`
	Action string   `rezi:"4"`
	Empty  bool     `rezi:"5"`
}

// StateExport is one canonical-collection state's exported shape: its
// number and the dotted-item strings it contains, in sorted order.
type StateExport struct {
	Num   int      `rezi:"1"`
	Items []string `rezi:"2"`
}

// ActionCell is one exported ACTION table cell, encoded per §4.4.
type ActionCell struct {
	State  int    `rezi:"1"`
	Symbol string `rezi:"2"`
	Entry  string `rezi:"3"`
}

// GotoCell is one exported GOTO table cell.
type GotoCell struct {
	State  int    `rezi:"1"`
	Symbol string `rezi:"2"`
	Target int    `rezi:"3"`
}

// LLCell is one exported LL(1) table cell.
type LLCell struct {
	Nonterminal string `rezi:"1"`
	Terminal    string `rezi:"2"`
	Production  int    `rezi:"3"`
}

// SetsExport holds the computed FIRST/FOLLOW sets for every nonterminal
// (including the augmented start symbol), keyed by symbol name, values
// sorted for determinism.
type SetsExport struct {
	First  map[string][]string `rezi:"1"`
	Follow map[string][]string `rezi:"2"`
}

// Export is the full structured payload C9 hands to an external renderer.
type Export struct {
	StartSymbol    string             `rezi:"1"`
	Mode           string             `rezi:"2"`
	Terminals      []string           `rezi:"3"`
	Nonterminals   []string           `rezi:"4"`
	Productions    []ProductionExport `rezi:"5"`
	Sets           SetsExport         `rezi:"6"`
	States         []StateExport      `rezi:"7"`
	ActionTable    []ActionCell       `rezi:"8"`
	GotoTable      []GotoCell         `rezi:"9"`
	LLTable        []LLCell           `rezi:"10"`
}

// FromParser builds a deterministic Export from a built grammar and (for
// LR modes) its table/collection, or (for LL1) its LL table.
func FromParser(g *grammar.Grammar, p *parse.Parser) Export {
	exp := Export{
		StartSymbol:  g.GetStartSymbol(),
		Mode:         string(g.GetMode()),
		Terminals:    g.GetTerminals(),
		Nonterminals: g.GetNonterminals(),
		Sets: SetsExport{
			First:  map[string][]string{},
			Follow: map[string][]string{},
		},
	}

	for _, p := range g.Productions() {
		exp.Productions = append(exp.Productions, ProductionExport{
			Number: p.Number, LHS: p.LHS, RHS: p.RHS, Action: p.Action, Empty: p.Empty,
		})
	}

	for _, nt := range append(append([]string{}, g.GetNonterminals()...), g.AugmentedStartSymbol()) {
		exp.Sets.First[nt] = g.FIRST(nt).OrderedElements()
		exp.Sets.Follow[nt] = g.FOLLOW(nt).OrderedElements()
	}

	if p == nil {
		return exp
	}

	if p.Collection != nil {
		exp.States = exportCollection(p.Collection)
	}
	if p.LRTable != nil {
		exp.ActionTable, exp.GotoTable = exportLRTable(p.LRTable)
	}
	if p.LLTable != nil {
		exp.LLTable = exportLLTable(p.LLTable)
	}

	return exp
}

func exportCollection(col *automaton.Collection) []StateExport {
	out := make([]StateExport, len(col.States))
	for i, s := range col.States {
		items := make([]string, len(s.Items))
		for j, it := range s.Items {
			items[j] = it.String()
		}
		sort.Strings(items)
		out[i] = StateExport{Num: s.Num, Items: items}
	}
	return out
}

func exportLRTable(t *parse.LRTable) ([]ActionCell, []GotoCell) {
	var actions []ActionCell
	for state, row := range t.Action {
		for sym, action := range row {
			actions = append(actions, ActionCell{State: state, Symbol: sym, Entry: action.Encode()})
		}
	}
	sort.Slice(actions, func(i, j int) bool {
		if actions[i].State != actions[j].State {
			return actions[i].State < actions[j].State
		}
		return actions[i].Symbol < actions[j].Symbol
	})

	var gotos []GotoCell
	for state, row := range t.Goto {
		for sym, target := range row {
			gotos = append(gotos, GotoCell{State: state, Symbol: sym, Target: target})
		}
	}
	sort.Slice(gotos, func(i, j int) bool {
		if gotos[i].State != gotos[j].State {
			return gotos[i].State < gotos[j].State
		}
		return gotos[i].Symbol < gotos[j].Symbol
	})

	return actions, gotos
}

func exportLLTable(t *grammar.LLTable) []LLCell {
	var out []LLCell
	for _, nt := range t.Nonterminals() {
		for _, term := range t.Terminals() {
			if p, ok := t.Cell(nt, term); ok {
				out = append(out, LLCell{Nonterminal: nt, Terminal: term, Production: p})
			}
		}
	}
	return out
}
