package parse

import (
	"fmt"

	"github.com/dekarrin/parsegen/grammar"
	"github.com/dekarrin/parsegen/icerrors"
	"github.com/dekarrin/parsegen/internal/util"
	"github.com/dekarrin/parsegen/ptypes"
)

// LLInterpreter runs a built grammar.LLTable against a token stream,
// building a ptypes.ParseTree (spec §4.6's LL interpreter): a symbol
// stack seeded with [S, $], driven purely by table lookups since LL(1)
// never needs a value stack of its own — the parse tree itself is the
// synthesized structure.
type LLInterpreter struct {
	Grammar *grammar.Grammar
	Table   *grammar.LLTable
	Trace   func(string)
}

// NewLLInterpreter builds an interpreter over g/t.
func NewLLInterpreter(g *grammar.Grammar, t *grammar.LLTable) *LLInterpreter {
	return &LLInterpreter{Grammar: g, Table: t}
}

func (interp *LLInterpreter) trace(format string, args ...any) {
	if interp.Trace != nil {
		interp.Trace(fmt.Sprintf(format, args...))
	}
}

// symStackEntry pairs a stack symbol with the tree node it should attach
// its eventual children to (nil for the bottom-of-stack $ marker).
type symStackEntry struct {
	symbol string
	node   *ptypes.ParseTree
}

// Parse runs the LL(1) algorithm to completion, returning the root of the
// built parse tree.
func (interp *LLInterpreter) Parse(stream ptypes.TokenStream) (*ptypes.ParseTree, error) {
	root := &ptypes.ParseTree{Value: interp.Grammar.GetStartSymbol()}

	stack := util.Stack[symStackEntry]{}
	stack.Push(symStackEntry{symbol: grammar.EndOfInput})
	stack.Push(symStackEntry{symbol: interp.Grammar.GetStartSymbol(), node: root})

	for {
		top := stack.Pop()
		tok := stream.Peek()

		if top.symbol == grammar.EndOfInput {
			if tok.Class().Equal(ptypes.TokenEndOfText) {
				return root, nil
			}
			return nil, icerrors.NewParseErrorFromToken("unexpected trailing input", tok)
		}

		if interp.Grammar.IsTerminal(top.symbol) {
			if top.symbol != tok.Class().ID() {
				return nil, icerrors.NewParseErrorFromToken(
					fmt.Sprintf("expected %q, got %q", top.symbol, tok.Lexeme()), tok)
			}
			if top.node != nil {
				top.node.Terminal = true
				top.node.Source = tok
			}
			interp.trace("match %q", tok.Lexeme())
			stream.Next()
			continue
		}

		prodNum, ok := interp.Table.Cell(top.symbol, tok.Class().ID())
		if !ok {
			return nil, &icerrors.ParseError{
				Message: fmt.Sprintf("no rule for nonterminal %q on lookahead %q", top.symbol, tok.Class().ID()),
				Token:   tok,
			}
		}
		p, _ := interp.Grammar.GetProduction(prodNum)
		interp.trace("predict %s -> %s", top.symbol, p.String())

		if top.node == nil {
			top.node = &ptypes.ParseTree{Value: top.symbol}
		}
		if p.IsEpsilon() {
			continue
		}
		children := make([]*ptypes.ParseTree, len(p.RHS))
		for i, sym := range p.RHS {
			children[i] = &ptypes.ParseTree{Value: sym}
		}
		top.node.Children = children
		for i := len(p.RHS) - 1; i >= 0; i-- {
			stack.Push(symStackEntry{symbol: p.RHS[i], node: children[i]})
		}
	}
}
