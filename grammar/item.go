package grammar

import (
	"strings"

	"github.com/cnf/structhash"
)

// LRItem is a dotted production with an optional lookahead set: an LR(0)
// item when Lookahead is nil, an LR(1) item otherwise. Dot is the number of
// RHS symbols already consumed (0 <= Dot <= len(RHS), or Dot == 0 for an
// epsilon production since there is nothing to consume).
type LRItem struct {
	Production int
	LHS        string
	RHS        []string
	Dot        int
	Lookahead  []string // sorted, nil for an LR(0) item
}

// AtEnd reports whether the dot has reached the end of RHS (a reduce item).
func (it LRItem) AtEnd() bool {
	return it.Dot >= len(it.RHS)
}

// NextSymbol returns the symbol immediately after the dot, and false if the
// item is a reduce item.
func (it LRItem) NextSymbol() (string, bool) {
	if it.AtEnd() {
		return "", false
	}
	return it.RHS[it.Dot], true
}

// Advance returns a copy of it with the dot moved one symbol to the right.
// It does not check AtEnd; callers only advance over NextSymbol.
func (it LRItem) Advance() LRItem {
	cp := it
	cp.Dot++
	return cp
}

// Core returns the LR(0) core of the item (lookahead stripped), used as the
// item-set kernel identity for LALR(1) merging.
func (it LRItem) Core() LRItem {
	cp := it
	cp.Lookahead = nil
	return cp
}

// Key returns a stable, hashable string identity for the item, grounded on
// structhash's stable struct hashing so item sets can use Go maps/sets
// keyed by content rather than pointer identity.
func (it LRItem) Key() string {
	hash, err := structhash.Hash(it, 1)
	if err != nil {
		// structhash only fails on unsupported field kinds; LRItem's
		// fields are all hashable primitives and slices thereof.
		return it.String()
	}
	return hash
}

// String renders the item in dotted-production notation, e.g. "E -> E + . T"
// or, with a lookahead set, "E -> E + . T, +/-".
func (it LRItem) String() string {
	var sb strings.Builder
	sb.WriteString(it.LHS)
	sb.WriteString(" -> ")
	if len(it.RHS) == 0 {
		sb.WriteString(". " + Epsilon)
	} else {
		for i, sym := range it.RHS {
			if i == it.Dot {
				sb.WriteString(". ")
			}
			sb.WriteString(sym)
			if i+1 < len(it.RHS) {
				sb.WriteRune(' ')
			}
		}
		if it.Dot == len(it.RHS) {
			sb.WriteString(" .")
		}
	}
	if it.Lookahead != nil {
		sb.WriteString(", ")
		sb.WriteString(strings.Join(it.Lookahead, "/"))
	}
	return sb.String()
}

// NewLR0Item builds the LR(0) item for production p with the dot at dotPos.
func NewLR0Item(p Production, dotPos int) LRItem {
	rhs := p.RHS
	if p.IsEpsilon() {
		rhs = nil
	}
	return LRItem{Production: p.Number, LHS: p.LHS, RHS: rhs, Dot: dotPos}
}

// NewLR1Item builds the LR(1) item for production p, dot position dotPos,
// and a single lookahead terminal.
func NewLR1Item(p Production, dotPos int, lookahead string) LRItem {
	it := NewLR0Item(p, dotPos)
	it.Lookahead = []string{lookahead}
	return it
}
