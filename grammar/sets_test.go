package grammar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/parsegen/grammar"
)

func TestFIRST_OfTerminalIsItself(t *testing.T) {
	g, err := grammar.Build(calcInput())
	require.NoError(t, err)

	first := g.FIRST("id")
	assert.True(t, first.Has("id"))
	assert.Equal(t, 1, first.Len())
}

func TestFIRST_PropagatesThroughNonterminals(t *testing.T) {
	g, err := grammar.Build(calcInput())
	require.NoError(t, err)

	first := g.FIRST("F")
	assert.True(t, first.Has("("))
	assert.True(t, first.Has("id"))
	assert.Equal(t, 2, first.Len())

	firstE := g.FIRST("E")
	assert.True(t, firstE.Has("("))
	assert.True(t, firstE.Has("id"))
}

func TestFOLLOW_OfStartIncludesEndOfInput(t *testing.T) {
	g, err := grammar.Build(calcInput())
	require.NoError(t, err)

	follow := g.FOLLOW("E")
	assert.True(t, follow.Has(grammar.EndOfInput))
	assert.True(t, follow.Has(")"))
	assert.True(t, follow.Has("+"))
}

func TestFOLLOW_PropagatesAcrossProductions(t *testing.T) {
	g, err := grammar.Build(calcInput())
	require.NoError(t, err)

	followT := g.FOLLOW("T")
	assert.True(t, followT.Has("+"))
	assert.True(t, followT.Has("*"))
	assert.True(t, followT.Has(grammar.EndOfInput))
	assert.True(t, followT.Has(")"))
}

func TestPREDICT_NullableProductionIncludesFollow(t *testing.T) {
	in := grammar.BuilderInput{
		Terminals: []string{"a"},
		Rules: []grammar.Rule{
			{Head: "S", Alts: []grammar.Alt{
				{Symbols: []string{"A", "a"}},
			}},
			{Head: "A", Alts: []grammar.Alt{
				{Symbols: []string{}},
			}},
		},
		Mode: grammar.ModeLL1,
	}
	g, err := grammar.Build(in)
	require.NoError(t, err)

	aProd := g.GetProductionsForSymbol("A")[0]
	predict := g.PREDICT(aProd)
	assert.True(t, predict.Has("a"))
}

func TestLLParseTable_BuildsForNonLeftRecursiveGrammar(t *testing.T) {
	in := grammar.BuilderInput{
		Terminals: []string{"+", "(", ")", "id"},
		Rules: []grammar.Rule{
			{Head: "E", Alts: []grammar.Alt{
				{Symbols: []string{"T", "Ep"}},
			}},
			{Head: "Ep", Alts: []grammar.Alt{
				{Symbols: []string{"+", "T", "Ep"}},
				{Symbols: []string{}},
			}},
			{Head: "T", Alts: []grammar.Alt{
				{Symbols: []string{"(", "E", ")"}},
				{Symbols: []string{"id"}},
			}},
		},
		Mode: grammar.ModeLL1,
	}
	g, err := grammar.Build(in)
	require.NoError(t, err)

	assert.True(t, g.IsLL1())
	table, err := g.LLParseTable()
	require.NoError(t, err)

	p, ok := table.Cell("E", "id")
	require.True(t, ok)
	prod, _ := g.GetProduction(p)
	assert.Equal(t, "E", prod.LHS)

	p, ok = table.Cell("Ep", grammar.EndOfInput)
	require.True(t, ok)
	prod, _ = g.GetProduction(p)
	assert.True(t, prod.IsEpsilon())
}

func TestLLParseTable_DetectsLeftRecursionAsCollision(t *testing.T) {
	in := calcInput()
	in.Mode = grammar.ModeLL1
	g, err := grammar.Build(in)
	require.NoError(t, err)

	assert.False(t, g.IsLL1())
	_, err = g.LLParseTable()
	assert.Error(t, err)
}
