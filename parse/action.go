// Package parse projects a built canonical collection (or a grammar's
// PREDICT sets) into LR/LL parse tables (C6/C7), resolves conflicts per
// the precedence-based policy, and runs the resulting tables as
// table-driven stack machines (C8).
package parse

import (
	"fmt"
	"sort"
	"strings"
)

// ActionKind distinguishes the four LR action kinds.
type ActionKind int

const (
	ActionError ActionKind = iota
	ActionShift
	ActionReduce
	ActionAccept
)

// LRAction is one ACTION table cell's resolved entry: a shift to State, a
// reduce of Production, accept, or (if Conflicts is non-empty and the
// conflict was left unresolved) an error cell carrying the competing
// entries for diagnosis.
type LRAction struct {
	Kind       ActionKind
	State      int // valid when Kind == ActionShift
	Production int // valid when Kind == ActionReduce

	// Conflicts holds every competing encoded entry (e.g. "s5", "r3") when
	// this cell was a shift-reduce or reduce-reduce conflict, regardless
	// of whether it was ultimately resolved. Empty for a clean cell.
	Conflicts []string

	// ResolvedBy names how a conflict on this cell was settled:
	// "precedence", "associativity", "nonassoc" (an error cell), "default",
	// or "unresolved".
	ResolvedBy string
}

// Encode renders the action using the wire encoding from the data model:
// "sN" for shift, "rN" for reduce, "acc" for accept, and a slash-joined
// composite (e.g. "s5/r3") for an unresolved conflict.
func (a LRAction) Encode() string {
	if len(a.Conflicts) > 1 && a.ResolvedBy == "unresolved" {
		sorted := append([]string{}, a.Conflicts...)
		sort.Strings(sorted)
		return strings.Join(sorted, "/")
	}
	switch a.Kind {
	case ActionShift:
		return fmt.Sprintf("s%d", a.State)
	case ActionReduce:
		return fmt.Sprintf("r%d", a.Production)
	case ActionAccept:
		return "acc"
	default:
		return ""
	}
}

func shiftEntry(state int) string   { return fmt.Sprintf("s%d", state) }
func reduceEntry(prod int) string   { return fmt.Sprintf("r%d", prod) }
func gotoEntry(state int) string    { return fmt.Sprintf("g%d", state) }
