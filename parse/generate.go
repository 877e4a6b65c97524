package parse

import (
	"github.com/dekarrin/parsegen/automaton"
	"github.com/dekarrin/parsegen/grammar"
	"github.com/dekarrin/parsegen/icerrors"
)

// Parser bundles a grammar with the table (LR) or LL table that was built
// for it, ready to hand to an LRInterpreter/LLInterpreter.
type Parser struct {
	Grammar    *grammar.Grammar
	LRTable    *LRTable    // set for every mode but LL1
	LLTable    *grammar.LLTable // set only for LL1
	Collection *automaton.Collection
}

// GenerateLR0Parser builds the LR(0) table for g. g must have been built
// with Mode == ModeLR0.
func GenerateLR0Parser(g *grammar.Grammar, opts GenerateOptions) (*Parser, error) {
	return generateLR(g, grammar.ModeLR0, opts)
}

// GenerateSLR1Parser builds the SLR(1) table for g.
func GenerateSLR1Parser(g *grammar.Grammar, opts GenerateOptions) (*Parser, error) {
	return generateLR(g, grammar.ModeSLR1, opts)
}

// GenerateCLR1Parser builds the canonical LR(1) table for g.
func GenerateCLR1Parser(g *grammar.Grammar, opts GenerateOptions) (*Parser, error) {
	return generateLR(g, grammar.ModeCLR1, opts)
}

// GenerateLALR1BySLR1Parser builds the LALR(1) table for g using the
// kernel-merge-then-FOLLOW route.
func GenerateLALR1BySLR1Parser(g *grammar.Grammar, opts GenerateOptions) (*Parser, error) {
	return generateLR(g, grammar.ModeLALR1BySLR1, opts)
}

// GenerateLALR1ByCLR1Parser builds the LALR(1) table for g using the
// build-CLR1-then-merge route.
func GenerateLALR1ByCLR1Parser(g *grammar.Grammar, opts GenerateOptions) (*Parser, error) {
	return generateLR(g, grammar.ModeLALR1ByCLR1, opts)
}

func generateLR(g *grammar.Grammar, wantMode grammar.Mode, opts GenerateOptions) (*Parser, error) {
	if g.GetMode() != wantMode {
		return nil, &icerrors.InvalidGrammarError{Reason: "grammar was not built with the requested mode"}
	}
	col, err := automaton.Build(g)
	if err != nil {
		return nil, err
	}
	table, err := GenerateLRTable(g, col, opts)
	if err != nil {
		return nil, err
	}
	return &Parser{Grammar: g, LRTable: table, Collection: col}, nil
}

// GenerateLL1Parser builds the LL(1) table for g. g must have been built
// with Mode == ModeLL1.
func GenerateLL1Parser(g *grammar.Grammar) (*Parser, error) {
	if g.GetMode() != grammar.ModeLL1 {
		return nil, &icerrors.InvalidGrammarError{Reason: "grammar was not built with LL1 mode"}
	}
	table, err := g.LLParseTable()
	if err != nil {
		return nil, err
	}
	return &Parser{Grammar: g, LLTable: table}, nil
}
