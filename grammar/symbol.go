// Package grammar implements the symbol/production model (C1), the
// grammar builder (C2), FIRST/FOLLOW/PREDICT set computation (C4), and the
// LL(1) table builder (C7). LR items, canonical collections, and LR
// tables live in the automaton and parse packages, which depend on this
// one.
package grammar

// Epsilon is the reserved name for the empty-string symbol. A production
// whose entire rhs is Epsilon is the grammar's epsilon production for its
// lhs.
const Epsilon = "ε"

// EndOfInput is the reserved end-of-input marker symbol, "$".
const EndOfInput = "$"

// Associativity is the conflict-resolution associativity of an operator.
type Associativity int

const (
	AssocNone Associativity = iota
	AssocLeft
	AssocRight
	AssocNonAssoc
)

func (a Associativity) String() string {
	switch a {
	case AssocLeft:
		return "left"
	case AssocRight:
		return "right"
	case AssocNonAssoc:
		return "nonassoc"
	default:
		return "none"
	}
}

// Operator is a precedence/associativity entry attached to a terminal.
// Level increases with binding strength; entries declared earlier in the
// operators list of a BuilderInput get lower (weaker) Level values.
type Operator struct {
	Terminal string
	Level    int
	Assoc    Associativity
}
