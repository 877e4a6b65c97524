package grammar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/parsegen/grammar"
)

// calcInput builds the classic left-recursive additive-expression grammar:
//
//	E -> E + T | T
//	T -> T * F | F
//	F -> ( E ) | id
func calcInput() grammar.BuilderInput {
	return grammar.BuilderInput{
		Terminals: []string{"+", "*", "(", ")", "id"},
		Rules: []grammar.Rule{
			{Head: "E", Alts: []grammar.Alt{
				{Symbols: []string{"E", "+", "T"}},
				{Symbols: []string{"T"}},
			}},
			{Head: "T", Alts: []grammar.Alt{
				{Symbols: []string{"T", "*", "F"}},
				{Symbols: []string{"F"}},
			}},
			{Head: "F", Alts: []grammar.Alt{
				{Symbols: []string{"(", "E", ")"}},
				{Symbols: []string{"id"}},
			}},
		},
		Mode: grammar.ModeLALR1BySLR1,
	}
}

func TestBuild_SynthesizesProductionZero(t *testing.T) {
	g, err := grammar.Build(calcInput())
	require.NoError(t, err)

	p0, ok := g.GetProduction(0)
	require.True(t, ok)
	assert.Equal(t, 0, p0.Number)
	assert.Equal(t, []string{"E"}, p0.RHS)
	assert.Equal(t, g.AugmentedStartSymbol(), p0.LHS)
}

func TestBuild_NumbersProductionsContiguously(t *testing.T) {
	g, err := grammar.Build(calcInput())
	require.NoError(t, err)

	for i, p := range g.Productions() {
		assert.Equal(t, i, p.Number)
	}
}

func TestBuild_ClassifiesTerminalsAndNonterminals(t *testing.T) {
	g, err := grammar.Build(calcInput())
	require.NoError(t, err)

	assert.True(t, g.IsTerminal("id"))
	assert.True(t, g.IsTerminal("+"))
	assert.True(t, g.IsNonterminal("E"))
	assert.True(t, g.IsNonterminal("T"))
	assert.False(t, g.IsTerminal("E"))
	assert.False(t, g.IsNonterminal("id"))
}

func TestBuild_RejectsUnknownStartSymbol(t *testing.T) {
	in := calcInput()
	in.Start = "NoSuchRule"
	_, err := grammar.Build(in)
	assert.Error(t, err)
}

func TestBuild_OperatorPrecedenceInheritedFromRightmostTerminal(t *testing.T) {
	in := grammar.BuilderInput{
		Terminals: []string{"+", "*", "id"},
		Rules: []grammar.Rule{
			{Head: "E", Alts: []grammar.Alt{
				{Symbols: []string{"E", "+", "E"}},
				{Symbols: []string{"E", "*", "E"}},
				{Symbols: []string{"id"}},
			}},
		},
		Operators: []grammar.Operator{
			{Terminal: "+", Assoc: grammar.AssocLeft},
			{Terminal: "*", Assoc: grammar.AssocLeft},
		},
		Mode: grammar.ModeSLR1,
	}
	g, err := grammar.Build(in)
	require.NoError(t, err)

	plus, ok := g.GetProduction(1)
	require.True(t, ok)
	require.NotNil(t, plus.Precedence)
	assert.Equal(t, "+", plus.Precedence.Terminal)
	assert.Equal(t, 1, plus.Precedence.Level)

	star, ok := g.GetProduction(2)
	require.True(t, ok)
	require.NotNil(t, star.Precedence)
	assert.Equal(t, "*", star.Precedence.Terminal)
	assert.Equal(t, 2, star.Precedence.Level)
}

func TestBuild_PrecOverrideViaParseAlt(t *testing.T) {
	alt := grammar.ParseAlt(`"-" E %prec UMINUS`, "")
	assert.Equal(t, []string{`"-"`, "E"}, alt.Symbols)
	assert.Equal(t, "UMINUS", alt.PrecOverride)
}

func TestValidate_AcceptsBuiltGrammar(t *testing.T) {
	g, err := grammar.Build(calcInput())
	require.NoError(t, err)
	assert.NoError(t, g.Validate())
}
