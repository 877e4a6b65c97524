package grammar

import "strings"

// Production is production number Number: LHS -> RHS. Production 0 is
// always the synthesized augmenting production S' -> S.
//
// Productions are immutable once built by Build; nothing in this package
// mutates a Production's fields after construction.
type Production struct {
	Number int
	LHS     string
	RHS     []string

	// Action is the semantic-action text attached to the production,
	// preserved verbatim as an opaque string; the core never interprets
	// it (see translation.Evaluator).
	Action string

	// Precedence is the operator token this production inherits its
	// shift/reduce precedence from: the rightmost rhs terminal with an
	// operator-table entry, or an explicit override recorded by the
	// external normalizer from a trailing `%prec SYMBOL` marker.
	Precedence *Operator

	// Empty is true iff RHS has no effective symbols (an epsilon
	// production, i.e. RHS == []string{Epsilon} or RHS is empty).
	Empty bool
}

// IsEpsilon reports whether p is an epsilon production.
func (p Production) IsEpsilon() bool {
	return p.Empty
}

// String renders the production as "RHS1 RHS2 ..." (no LHS, matching the
// teacher's convention that the lhs is tracked separately from the
// production body in error messages and table cells).
func (p Production) String() string {
	if p.Empty {
		return Epsilon
	}
	return strings.Join(p.RHS, " ")
}

// Equal reports whether two productions have the same number, lhs, and
// rhs. Actions and precedence are not part of identity.
func (p Production) Equal(o any) bool {
	other, ok := o.(Production)
	if !ok {
		op, ok := o.(*Production)
		if !ok || op == nil {
			return false
		}
		other = *op
	}
	if p.Number != other.Number || p.LHS != other.LHS || len(p.RHS) != len(other.RHS) {
		return false
	}
	for i := range p.RHS {
		if p.RHS[i] != other.RHS[i] {
			return false
		}
	}
	return true
}
