package parse_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/parsegen/grammar"
	"github.com/dekarrin/parsegen/lex"
	"github.com/dekarrin/parsegen/parse"
	"github.com/dekarrin/parsegen/ptypes"
	"github.com/dekarrin/parsegen/translation"
)

// arithLexer tokenizes NUMBER/+/*/^/(/) for the scenario grammars,
// skipping whitespace.
func arithLexer(t *testing.T) *lex.Lexer {
	spec := lex.Spec{
		Classes: []ptypes.TokenClass{
			ptypes.NamedClass("number", "number"),
			ptypes.NamedClass("+", "plus"),
			ptypes.NamedClass("*", "star"),
			ptypes.NamedClass("^", "caret"),
		},
		Rules: []lex.Rule{
			{Pattern: `\s+`, Action: lex.Discard()},
			{Pattern: `[0-9]+`, Action: lex.LexAs("number")},
			{Pattern: `\+`, Action: lex.LexAs("+")},
			{Pattern: `\*`, Action: lex.LexAs("*")},
			{Pattern: `\^`, Action: lex.LexAs("^")},
		},
	}
	lx, err := lex.Build(spec)
	require.NoError(t, err)
	return lx
}

// arithEvaluator folds production values by inspecting the args it's
// given: a single numeric leaf passes through; a binary (lhs, op, rhs)
// triple combines according to which operator token was matched.
type arithEvaluator struct{}

func (arithEvaluator) Evaluate(action string, args []any) (any, error) {
	if len(args) == 1 {
		if tok, ok := args[0].(ptypes.Token); ok {
			n, _ := strconv.Atoi(tok.Lexeme())
			return n, nil
		}
		return args[0], nil
	}
	lhs := args[0].(int)
	opTok := args[1].(ptypes.Token)
	rhs := args[2].(int)
	switch opTok.Class().ID() {
	case "+":
		return lhs + rhs, nil
	case "*":
		return lhs * rhs, nil
	case "^":
		result := 1
		for i := 0; i < rhs; i++ {
			result *= lhs
		}
		return result, nil
	}
	return nil, nil
}

func S1AdditiveCalculatorInput() grammar.BuilderInput {
	return grammar.BuilderInput{
		Terminals: []string{"+", "*", "number"},
		Rules: []grammar.Rule{
			{Head: "E", Alts: []grammar.Alt{
				{Symbols: []string{"E", "+", "E"}},
				{Symbols: []string{"E", "*", "E"}},
				{Symbols: []string{"number"}},
			}},
		},
		Operators: []grammar.Operator{
			{Terminal: "+", Assoc: grammar.AssocLeft},
			{Terminal: "*", Assoc: grammar.AssocLeft},
		},
		Mode: grammar.ModeLALR1BySLR1,
	}
}

func TestS1_AdditiveCalculator_PrecedenceResolvesAllConflicts(t *testing.T) {
	g, err := grammar.Build(S1AdditiveCalculatorInput())
	require.NoError(t, err)

	p, err := parse.GenerateLALR1BySLR1Parser(g, parse.GenerateOptions{ResolveConflicts: true})
	require.NoError(t, err)

	unresolved := 0
	for _, c := range p.LRTable.Conflicts {
		if c.ResolvedBy == "unresolved" {
			unresolved++
		}
	}
	assert.Equal(t, 0, unresolved)
}

func TestS1_AdditiveCalculator_EvaluatesWithPrecedence(t *testing.T) {
	g, err := grammar.Build(S1AdditiveCalculatorInput())
	require.NoError(t, err)

	p, err := parse.GenerateLALR1BySLR1Parser(g, parse.GenerateOptions{ResolveConflicts: true})
	require.NoError(t, err)

	lx := arithLexer(t)
	interp := parse.NewLRInterpreter(g, p.LRTable, arithEvaluator{})

	for _, tc := range []struct {
		input string
		want  int
	}{
		{"1+2*3", 7},
		{"1*2+3", 5},
	} {
		stream, err := lx.Lex(strings.NewReader(tc.input))
		require.NoError(t, err)
		result, err := interp.Parse(stream)
		require.NoError(t, err)
		assert.Equal(t, tc.want, result)
	}
}

func TestS2_RightAssociativeExponent(t *testing.T) {
	in := grammar.BuilderInput{
		Terminals: []string{"+", "*", "^", "number"},
		Rules: []grammar.Rule{
			{Head: "E", Alts: []grammar.Alt{
				{Symbols: []string{"E", "+", "E"}},
				{Symbols: []string{"E", "*", "E"}},
				{Symbols: []string{"E", "^", "E"}},
				{Symbols: []string{"number"}},
			}},
		},
		Operators: []grammar.Operator{
			{Terminal: "+", Assoc: grammar.AssocLeft},
			{Terminal: "*", Assoc: grammar.AssocLeft},
			{Terminal: "^", Assoc: grammar.AssocRight},
		},
		Mode: grammar.ModeLALR1BySLR1,
	}
	g, err := grammar.Build(in)
	require.NoError(t, err)

	p, err := parse.GenerateLALR1BySLR1Parser(g, parse.GenerateOptions{ResolveConflicts: true})
	require.NoError(t, err)

	lx := arithLexer(t)
	interp := parse.NewLRInterpreter(g, p.LRTable, arithEvaluator{})

	stream, err := lx.Lex(strings.NewReader("2^2^2^2"))
	require.NoError(t, err)
	result, err := interp.Parse(stream)
	require.NoError(t, err)
	assert.Equal(t, 65536, result)
}

func S3DanglingElseInput(resolve bool) grammar.BuilderInput {
	return grammar.BuilderInput{
		Terminals: []string{"if", "then", "else", "e", "x"},
		Rules: []grammar.Rule{
			{Head: "S", Alts: []grammar.Alt{
				{Symbols: []string{"if", "e", "then", "S"}},
				{Symbols: []string{"if", "e", "then", "S", "else", "S"}},
				{Symbols: []string{"x"}},
			}},
		},
		Mode: grammar.ModeSLR1,
	}
}

func TestS3_DanglingElse_UnresolvedWithoutPolicy(t *testing.T) {
	g, err := grammar.Build(S3DanglingElseInput(false))
	require.NoError(t, err)

	p, err := parse.GenerateSLR1Parser(g, parse.GenerateOptions{ResolveConflicts: false})
	require.NoError(t, err)

	found := false
	for _, c := range p.LRTable.Conflicts {
		if c.Kind == parse.ShiftReduce && c.ResolvedBy == "unresolved" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestS3_DanglingElse_ShiftWinsWithResolution(t *testing.T) {
	g, err := grammar.Build(S3DanglingElseInput(true))
	require.NoError(t, err)

	p, err := parse.GenerateSLR1Parser(g, parse.GenerateOptions{ResolveConflicts: true})
	require.NoError(t, err)

	for _, c := range p.LRTable.Conflicts {
		if c.Kind == parse.ShiftReduce {
			assert.Equal(t, "default", c.ResolvedBy)
		}
	}
}

func TestS5_ReduceReduceOnEmpty(t *testing.T) {
	in := grammar.BuilderInput{
		Rules: []grammar.Rule{
			{Head: "S", Alts: []grammar.Alt{
				{Symbols: []string{"A"}},
				{Symbols: []string{"B"}},
			}},
			{Head: "A", Alts: []grammar.Alt{{Symbols: []string{}}}},
			{Head: "B", Alts: []grammar.Alt{{Symbols: []string{}}}},
		},
		Mode: grammar.ModeSLR1,
	}
	g, err := grammar.Build(in)
	require.NoError(t, err)

	p, err := parse.GenerateSLR1Parser(g, parse.GenerateOptions{ResolveConflicts: true})
	require.NoError(t, err)

	found := false
	for _, c := range p.LRTable.Conflicts {
		if c.Kind == parse.ReduceReduce && c.Symbol == grammar.EndOfInput {
			found = true
			assert.Equal(t, "default", c.ResolvedBy)
		}
	}
	assert.True(t, found, "expected a reduce-reduce conflict recorded on $")
}

func TestS4_LL1Arithmetic(t *testing.T) {
	in := grammar.BuilderInput{
		Terminals: []string{"+", "(", ")", "id"},
		Rules: []grammar.Rule{
			{Head: "E", Alts: []grammar.Alt{{Symbols: []string{"T", "Ep"}}}},
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

	assert.ElementsMatch(t, []string{"(", "id"}, g.FIRST("E").OrderedElements())
	assert.ElementsMatch(t, []string{")", grammar.EndOfInput}, g.FOLLOW("Ep").OrderedElements())

	p, err := parse.GenerateLL1Parser(g)
	require.NoError(t, err)

	lx, err := lex.Build(lex.Spec{
		Classes: []ptypes.TokenClass{ptypes.NamedClass("id", "id"), ptypes.NamedClass("+", "plus")},
		Rules: []lex.Rule{
			{Pattern: `\s+`, Action: lex.Discard()},
			{Pattern: `id`, Action: lex.LexAs("id")},
			{Pattern: `\+`, Action: lex.LexAs("+")},
		},
	})
	require.NoError(t, err)

	stream, err := lx.Lex(strings.NewReader("id+id+id"))
	require.NoError(t, err)

	interp := parse.NewLLInterpreter(g, p.LLTable)
	tree, err := interp.Parse(stream)
	require.NoError(t, err)
	assert.False(t, tree.Terminal)
	assert.Equal(t, "E", tree.Value)
}

var _ translation.Evaluator = arithEvaluator{}
