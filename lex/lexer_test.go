package lex_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/parsegen/lex"
	"github.com/dekarrin/parsegen/ptypes"
)

func idSpec() lex.Spec {
	return lex.Spec{
		Classes: []ptypes.TokenClass{ptypes.NamedClass("id", "identifier")},
		Rules: []lex.Rule{
			{Pattern: `\s+`, Action: lex.Discard()},
			{Pattern: `[a-z]+`, Action: lex.LexAs("id")},
		},
	}
}

func TestLexer_LocationTracking(t *testing.T) {
	lx, err := lex.Build(idSpec())
	require.NoError(t, err)

	stream, err := lx.Lex(strings.NewReader("ab\ncd"))
	require.NoError(t, err)

	first := stream.Next()
	assert.Equal(t, "id", first.Class().ID())
	assert.Equal(t, "ab", first.Lexeme())
	assert.Equal(t, 1, first.Line())
	assert.Equal(t, 0, first.LinePos())

	second := stream.Next()
	assert.Equal(t, "id", second.Class().ID())
	assert.Equal(t, "cd", second.Lexeme())
	assert.Equal(t, 2, second.Line())
	assert.Equal(t, 0, second.LinePos())

	eot := stream.Next()
	assert.True(t, eot.Class().Equal(ptypes.TokenEndOfText))
	assert.False(t, stream.HasNext())
}

func TestLexer_DiscardsWhitespace(t *testing.T) {
	lx, err := lex.Build(idSpec())
	require.NoError(t, err)

	stream, err := lx.Lex(strings.NewReader("  ab   cd  "))
	require.NoError(t, err)

	var lexemes []string
	for stream.HasNext() {
		tok := stream.Next()
		if tok.Class().Equal(ptypes.TokenEndOfText) {
			break
		}
		lexemes = append(lexemes, tok.Lexeme())
	}
	assert.Equal(t, []string{"ab", "cd"}, lexemes)
}

func TestLexer_FirstDefinedRuleWins(t *testing.T) {
	spec := lex.Spec{
		Classes: []ptypes.TokenClass{
			ptypes.NamedClass("id", "identifier"),
			ptypes.NamedClass("kw_if", "if keyword"),
		},
		Rules: []lex.Rule{
			{Pattern: `if`, Action: lex.LexAs("kw_if")},
			{Pattern: `[a-z]+`, Action: lex.LexAs("id")},
		},
	}
	lx, err := lex.Build(spec)
	require.NoError(t, err)

	stream, err := lx.Lex(strings.NewReader("iffy"))
	require.NoError(t, err)

	tok := stream.Next()
	assert.Equal(t, "id", tok.Class().ID())
	assert.Equal(t, "iffy", tok.Lexeme())
}

func TestLexer_UnexpectedInputProducesErrorToken(t *testing.T) {
	lx, err := lex.Build(idSpec())
	require.NoError(t, err)

	stream, err := lx.Lex(strings.NewReader("ab#cd"))
	require.NoError(t, err)

	first := stream.Next()
	assert.Equal(t, "ab", first.Lexeme())

	errTok := stream.Next()
	assert.True(t, errTok.Class().Equal(ptypes.TokenError))

	next := stream.Next()
	assert.Equal(t, "cd", next.Lexeme())
}

func TestLexer_StartConditionPushPop(t *testing.T) {
	spec := lex.Spec{
		Classes: []ptypes.TokenClass{
			ptypes.NamedClass("enter", "enter"),
			ptypes.NamedClass("body", "body"),
			ptypes.NamedClass("exit", "exit"),
		},
		StartState: "INITIAL",
		Rules: []lex.Rule{
			{Pattern: `\(`, State: "INITIAL", Action: lex.Action{Type: lex.ActionScanAndState, ClassID: "enter", State: "INNER", StatePush: true}},
			{Pattern: `[a-z]+`, State: "INNER", Action: lex.LexAs("body")},
			{Pattern: `\)`, State: "INNER", Action: lex.Action{Type: lex.ActionScanAndState, ClassID: "exit", StatePop: true}},
		},
	}
	lx, err := lex.Build(spec)
	require.NoError(t, err)

	stream, err := lx.Lex(strings.NewReader("(abc)"))
	require.NoError(t, err)

	toks := []string{}
	for {
		tok := stream.Next()
		if tok.Class().Equal(ptypes.TokenEndOfText) {
			break
		}
		toks = append(toks, tok.Class().ID())
	}
	assert.Equal(t, []string{"enter", "body", "exit"}, toks)
}
