// Package translation supplies the semantic-action evaluation capability
// an LR/LL interpreter needs at each reduce: turning a production's
// opaque action text plus its popped rhs values into one synthesized
// value, without the core embedding a scripting runtime itself.
package translation

import "github.com/dekarrin/parsegen/icerrors"

// Evaluator evaluates a production's semantic action against the values
// popped for its rhs, returning the value to push for its lhs.
type Evaluator interface {
	Evaluate(action string, args []any) (any, error)
}

// NoOpEvaluator is the default Evaluator installed when a caller supplies
// none: productions with no action text synthesize nil, and any non-empty
// action text fails with Unresolvable, since there is no scripting runtime
// installed to run it.
type NoOpEvaluator struct{}

// Evaluate implements Evaluator.
func (NoOpEvaluator) Evaluate(action string, args []any) (any, error) {
	if action == "" {
		return nil, nil
	}
	return nil, &icerrors.UnresolvableError{
		Reason: "semantic action present but no Evaluator installed: " + action,
	}
}

// FuncEvaluator adapts a plain function into an Evaluator, letting a host
// embedding this module wire its own expression language without
// implementing the interface on a named type.
type FuncEvaluator func(action string, args []any) (any, error)

// Evaluate implements Evaluator.
func (f FuncEvaluator) Evaluate(action string, args []any) (any, error) {
	return f(action, args)
}
