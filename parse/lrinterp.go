package parse

import (
	"fmt"

	"github.com/dekarrin/parsegen/grammar"
	"github.com/dekarrin/parsegen/icerrors"
	"github.com/dekarrin/parsegen/internal/util"
	"github.com/dekarrin/parsegen/ptypes"
	"github.com/dekarrin/parsegen/translation"
)

// LRInterpreter runs a built LRTable against a token stream (C8): a state
// stack seeded with 0, a value stack aligned with it, and (when the
// grammar requests location capture) a location stack aligned with both.
type LRInterpreter struct {
	Grammar   *grammar.Grammar
	Table     *LRTable
	Evaluator translation.Evaluator

	// Trace, if set, is called with a human-readable line before every
	// shift/reduce/accept action, following the teacher's trace-listener
	// pattern rather than writing to a package logger directly.
	Trace func(string)
}

// NewLRInterpreter builds an interpreter over g/t. If eval is nil, a
// translation.NoOpEvaluator is installed.
func NewLRInterpreter(g *grammar.Grammar, t *LRTable, eval translation.Evaluator) *LRInterpreter {
	if eval == nil {
		eval = translation.NoOpEvaluator{}
	}
	return &LRInterpreter{Grammar: g, Table: t, Evaluator: eval}
}

func (interp *LRInterpreter) trace(format string, args ...any) {
	if interp.Trace != nil {
		interp.Trace(fmt.Sprintf(format, args...))
	}
}

// Parse runs the LR algorithm (spec §4.6) to completion, returning the
// single synthesized value left by accept, or a *icerrors.ParseError /
// *icerrors.UnresolvableError describing the failure.
func (interp *LRInterpreter) Parse(stream ptypes.TokenStream) (any, error) {
	states := util.Stack[int]{}
	values := util.Stack[any]{}
	states.Push(0)

	for {
		tok := stream.Peek()
		top := states.Peek()

		row, ok := interp.Table.Action[top]
		var action LRAction
		if ok {
			action, ok = row[tok.Class().ID()]
		}
		if !ok {
			action = LRAction{Kind: ActionError}
		}

		switch action.Kind {
		case ActionShift:
			interp.trace("shift %d on %q", action.State, tok.Lexeme())
			values.Push(tok)
			states.Push(action.State)
			stream.Next()

		case ActionReduce:
			p, found := interp.Grammar.GetProduction(action.Production)
			if !found {
				return nil, &icerrors.ParseError{Message: fmt.Sprintf("table refers to unknown production %d", action.Production), Token: tok}
			}
			n := len(p.RHS)
			if p.IsEpsilon() {
				n = 0
			}
			args := make([]any, n)
			for i := n - 1; i >= 0; i-- {
				args[i] = values.Pop()
				states.Pop()
			}
			result, err := interp.Evaluator.Evaluate(p.Action, args)
			if err != nil {
				return nil, err
			}
			values.Push(result)
			newTop := states.Peek()
			gotoRow, ok := interp.Table.Goto[newTop]
			if !ok {
				return nil, &icerrors.ParseError{Message: fmt.Sprintf("no goto from state %d on %q", newTop, p.LHS), Token: tok}
			}
			nextState, ok := gotoRow[p.LHS]
			if !ok {
				return nil, &icerrors.ParseError{Message: fmt.Sprintf("no goto from state %d on %q", newTop, p.LHS), Token: tok}
			}
			states.Push(nextState)
			interp.trace("reduce by production %d (%s)", p.Number, p.LHS)

		case ActionAccept:
			interp.trace("accept")
			return values.Pop(), nil

		default:
			if len(action.Conflicts) > 0 && action.ResolvedBy == "unresolved" {
				return nil, &icerrors.UnresolvableError{
					Reason:    "unresolved conflict encountered during parse",
					State:     top,
					Symbol:    tok.Class().ID(),
					Conflicts: action.Conflicts,
				}
			}
			return nil, icerrors.NewParseErrorFromToken(
				fmt.Sprintf("unexpected token %q", tok.Lexeme()), tok)
		}
	}
}
