package automaton_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/parsegen/automaton"
	"github.com/dekarrin/parsegen/grammar"
)

// calcInput is the left-recursive expression grammar
// E -> E + T | T; T -> T * F | F; F -> ( E ) | id.
func calcInput() grammar.BuilderInput {
	return grammar.BuilderInput{
		Terminals: []string{"+", "*", "(", ")", "id"},
		Rules: []grammar.Rule{
			{Head: "E", Alts: []grammar.Alt{{Symbols: []string{"E", "+", "T"}}, {Symbols: []string{"T"}}}},
			{Head: "T", Alts: []grammar.Alt{{Symbols: []string{"T", "*", "F"}}, {Symbols: []string{"F"}}}},
			{Head: "F", Alts: []grammar.Alt{{Symbols: []string{"(", "E", ")"}}, {Symbols: []string{"id"}}}},
		},
		Mode: grammar.ModeLALR1BySLR1,
	}
}

// danglingElseInput is the classic ambiguous if/else grammar (scenario S3):
//
//	S -> if E then S | if E then S else S | other
func danglingElseInput(mode grammar.Mode) grammar.BuilderInput {
	return grammar.BuilderInput{
		Terminals: []string{"if", "then", "else", "e", "other"},
		Rules: []grammar.Rule{
			{Head: "S", Alts: []grammar.Alt{
				{Symbols: []string{"if", "e", "then", "S"}},
				{Symbols: []string{"if", "e", "then", "S", "else", "S"}},
				{Symbols: []string{"other"}},
			}},
		},
		Mode: mode,
	}
}

func TestBuild_StateZeroIsClosureOfAugmentedStart(t *testing.T) {
	g, err := grammar.Build(calcInput())
	require.NoError(t, err)

	col, err := automaton.Build(g)
	require.NoError(t, err)
	require.NotEmpty(t, col.States)

	s0 := col.States[0]
	foundSeed := false
	for _, it := range s0.Items {
		if it.Production == 0 && it.Dot == 0 {
			foundSeed = true
		}
	}
	assert.True(t, foundSeed, "state 0 must contain the seed item (P0, dot=0)")
	// closure must have pulled in every E/T/F production too
	assert.Greater(t, len(s0.Items), 1)
}

func TestBuild_AcceptStateExists(t *testing.T) {
	g, err := grammar.Build(calcInput())
	require.NoError(t, err)

	col, err := automaton.Build(g)
	require.NoError(t, err)

	_, ok := col.AcceptState()
	assert.True(t, ok)
}

func TestBuild_LALRBySLR1MergesKernels(t *testing.T) {
	g, err := grammar.Build(calcInput())
	require.NoError(t, err)

	slr, err := grammar.Build(func() grammar.BuilderInput {
		in := calcInput()
		in.Mode = grammar.ModeSLR1
		return in
	}())
	require.NoError(t, err)

	lalrCol, err := automaton.Build(g)
	require.NoError(t, err)
	slrCol, err := automaton.Build(slr)
	require.NoError(t, err)

	assert.Equal(t, len(slrCol.States), len(lalrCol.States))
}

func TestBuild_LALRByCLR1MergesStatesWithEqualKernels(t *testing.T) {
	in := calcInput()
	in.Mode = grammar.ModeLALR1ByCLR1
	g, err := grammar.Build(in)
	require.NoError(t, err)

	clrIn := calcInput()
	clrIn.Mode = grammar.ModeCLR1
	clrG, err := grammar.Build(clrIn)
	require.NoError(t, err)

	lalrCol, err := automaton.Build(g)
	require.NoError(t, err)
	clrCol, err := automaton.Build(clrG)
	require.NoError(t, err)

	// merging by kernel can only ever shrink (or preserve) the state count
	assert.LessOrEqual(t, len(lalrCol.States), len(clrCol.States))
}

func TestBuild_DanglingElseHasShiftReduceAmbiguity(t *testing.T) {
	g, err := grammar.Build(danglingElseInput(grammar.ModeSLR1))
	require.NoError(t, err)

	col, err := automaton.Build(g)
	require.NoError(t, err)
	require.NotEmpty(t, col.States)

	// some state must contain both a reduce item for "if e then S ." and
	// a shift opportunity on "else" (the classic dangling-else conflict)
	found := false
	for _, s := range col.States {
		hasReduceIfThenS := false
		hasShiftElse := false
		for _, it := range s.Items {
			if it.AtEnd() && len(it.RHS) == 4 {
				hasReduceIfThenS = true
			}
			if sym, ok := it.NextSymbol(); ok && sym == "else" {
				hasShiftElse = true
			}
		}
		if hasReduceIfThenS && hasShiftElse {
			found = true
		}
	}
	assert.True(t, found, "expected a state exhibiting the dangling-else shift/reduce conflict")
}
