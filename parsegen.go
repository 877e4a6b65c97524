package parsegen

import (
	"io"

	"github.com/dekarrin/parsegen/automaton"
	"github.com/dekarrin/parsegen/grammar"
	"github.com/dekarrin/parsegen/icerrors"
	"github.com/dekarrin/parsegen/lex"
	"github.com/dekarrin/parsegen/parse"
	"github.com/dekarrin/parsegen/ptypes"
	"github.com/dekarrin/parsegen/translation"
)

// Frontend bundles a built grammar, its optional tokenizer, and the table
// needed to interpret input against it — the object an embedding host
// gets back from Build and hands strings/files to.
type Frontend struct {
	Grammar *grammar.Grammar
	Lexer   *lex.Lexer
	Parser  *parse.Parser

	evaluator translation.Evaluator
	trace     func(string)
}

// BuildInput is everything Build needs: the normalized grammar data, its
// embedded lex spec (if any), whether conflicts should be resolved by
// default policy, and the semantic-action evaluator to install.
type BuildInput struct {
	Grammar          grammar.BuilderInput
	Lex              *lex.Spec
	ResolveConflicts bool
	Evaluator        translation.Evaluator
}

// Build normalizes and constructs a Frontend: grammar builder (C2), then
// (if a lex spec was supplied) the tokenizer (C3), then the table for the
// grammar's configured mode (C5/C6 for LR modes, C7 for LL1).
func Build(ic InvocationContext, in BuildInput) (*Frontend, error) {
	ic.trace("building grammar (session %s)", ic.ID)

	g, err := grammar.Build(in.Grammar)
	if err != nil {
		return nil, err
	}

	fe := &Frontend{Grammar: g, evaluator: in.Evaluator, trace: ic.Trace}
	if fe.evaluator == nil {
		fe.evaluator = translation.NoOpEvaluator{}
	}

	if in.Lex != nil {
		lx, err := lex.Build(*in.Lex)
		if err != nil {
			return nil, err
		}
		fe.Lexer = lx
	}

	opts := parse.GenerateOptions{ResolveConflicts: in.ResolveConflicts}
	switch g.GetMode() {
	case grammar.ModeLL1:
		p, err := parse.GenerateLL1Parser(g)
		if err != nil {
			return nil, err
		}
		fe.Parser = p
	case grammar.ModeLR0:
		p, err := parse.GenerateLR0Parser(g, opts)
		if err != nil {
			return nil, err
		}
		fe.Parser = p
	case grammar.ModeSLR1:
		p, err := parse.GenerateSLR1Parser(g, opts)
		if err != nil {
			return nil, err
		}
		fe.Parser = p
	case grammar.ModeCLR1:
		p, err := parse.GenerateCLR1Parser(g, opts)
		if err != nil {
			return nil, err
		}
		fe.Parser = p
	case grammar.ModeLALR1BySLR1:
		p, err := parse.GenerateLALR1BySLR1Parser(g, opts)
		if err != nil {
			return nil, err
		}
		fe.Parser = p
	case grammar.ModeLALR1ByCLR1:
		p, err := parse.GenerateLALR1ByCLR1Parser(g, opts)
		if err != nil {
			return nil, err
		}
		fe.Parser = p
	default:
		return nil, icerrors.NewInvalidGrammar("unknown mode")
	}

	return fe, nil
}

// Collection returns the frontend's canonical collection, or nil for an
// LL(1) frontend (which has no LR automaton).
func (fe *Frontend) Collection() *automaton.Collection {
	if fe.Parser == nil {
		return nil
	}
	return fe.Parser.Collection
}

// Tokenize runs the frontend's tokenizer (if one was supplied) over r,
// returning every produced token up to and including end-of-text.
func (fe *Frontend) Tokenize(r io.Reader) ([]ptypes.Token, error) {
	if fe.Lexer == nil {
		return nil, icerrors.NewInvalidGrammar("frontend has no lex grammar")
	}
	stream, err := fe.Lexer.Lex(r)
	if err != nil {
		return nil, err
	}
	var toks []ptypes.Token
	for {
		tok := stream.Next()
		toks = append(toks, tok)
		if tok.Class().Equal(ptypes.TokenEndOfText) {
			return toks, nil
		}
	}
}

// AnalyzeString tokenizes s with the frontend's lexer and parses the
// result, returning either the LR interpreter's synthesized value or the
// LL interpreter's parse tree, depending on the grammar's mode.
func (fe *Frontend) AnalyzeString(s string) (any, error) {
	return fe.Analyze(stringReader(s))
}

// Analyze tokenizes r with the frontend's lexer and parses the result.
func (fe *Frontend) Analyze(r io.Reader) (any, error) {
	if fe.Lexer == nil {
		return nil, icerrors.NewInvalidGrammar("frontend has no lex grammar")
	}
	stream, err := fe.Lexer.Lex(r)
	if err != nil {
		return nil, err
	}

	if fe.Grammar.GetMode() == grammar.ModeLL1 {
		interp := parse.NewLLInterpreter(fe.Grammar, fe.Parser.LLTable)
		interp.Trace = fe.trace
		return interp.Parse(stream)
	}

	interp := parse.NewLRInterpreter(fe.Grammar, fe.Parser.LRTable, fe.evaluator)
	interp.Trace = fe.trace
	return interp.Parse(stream)
}

type stringReaderType struct {
	s   string
	pos int
}

func (r *stringReaderType) Read(p []byte) (int, error) {
	if r.pos >= len(r.s) {
		return 0, io.EOF
	}
	n := copy(p, r.s[r.pos:])
	r.pos += n
	return n, nil
}

func stringReader(s string) io.Reader {
	return &stringReaderType{s: s}
}
