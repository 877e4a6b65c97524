// Package parsegen is the top-level façade: it wires the grammar, lex,
// automaton, parse, and translation packages into the single entry point
// an embedding host or the cmd/parsegen binary calls.
package parsegen

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// InvocationContext replaces the source's process-wide debug/output flags
// with an explicit, per-invocation value: parsegen.Build accepts one
// instead of touching package-level state, tags its first trace line with
// the session id, and hands the trace sink on to the interpreters. The
// package-level constructors (grammar.Build, lex.Build, parse.Generate*)
// do not take one.
type InvocationContext struct {
	ID    uuid.UUID
	Ctx   context.Context
	Trace func(string)
}

// NewInvocationContext returns a fresh InvocationContext with a new
// random session id and no trace sink installed.
func NewInvocationContext(ctx context.Context) InvocationContext {
	if ctx == nil {
		ctx = context.Background()
	}
	return InvocationContext{ID: uuid.New(), Ctx: ctx}
}

// WithTrace returns a copy of ic with sink installed as its trace
// listener.
func (ic InvocationContext) WithTrace(sink func(string)) InvocationContext {
	ic.Trace = sink
	return ic
}

func (ic InvocationContext) trace(format string, args ...any) {
	if ic.Trace == nil {
		return
	}
	if len(args) == 0 {
		ic.Trace(format)
		return
	}
	ic.Trace(fmt.Sprintf(format, args...))
}
