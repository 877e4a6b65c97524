package parse

import (
	"github.com/dekarrin/parsegen/automaton"
	"github.com/dekarrin/parsegen/grammar"
)

// LRTable is a built ACTION/GOTO table (C6): one ACTION row per state per
// terminal (including $), and one GOTO row per state per nonterminal.
type LRTable struct {
	Action map[int]map[string]LRAction
	Goto   map[int]map[string]int
	States int

	// Conflicts records every conflict cell encountered during
	// construction, resolved or not, for later diagnosis regardless of
	// the resolution the table cell itself settled on.
	Conflicts []ConflictRecord
}

// ConflictKind distinguishes a shift-reduce conflict from a reduce-reduce
// one.
type ConflictKind string

const (
	ShiftReduce ConflictKind = "shift-reduce"
	ReduceReduce ConflictKind = "reduce-reduce"
)

// ConflictRecord is one entry of the table's conflict ledger.
type ConflictRecord struct {
	State      int
	Symbol     string
	Kind       ConflictKind
	Entries    []string
	ResolvedBy string
}

// GenerateOptions configures table construction's conflict policy.
type GenerateOptions struct {
	// ResolveConflicts, when true, applies the default tie-break (shift
	// on an unresolvable shift-reduce cell, lowest production number on
	// an unresolvable reduce-reduce cell) instead of leaving the cell
	// unresolved.
	ResolveConflicts bool
}

// cellAccum holds every action proposed for one (state, terminal) cell
// before conflict resolution collapses it to one LRAction.
type cellAccum struct {
	shift   *int // target state, at most one by construction
	reduces []int
}

// GenerateLRTable builds the ACTION/GOTO table for col under g's operator
// table and the SLR(1)/CLR(1)/LALR(1) lookahead rule implied by g's mode:
// SLR(1) uses FOLLOW(lhs) for every reduce item; CLR(1)/LALR(1) use the
// item's own (already-computed) lookahead set; LR(0) reduces on every
// terminal unconditionally (a grammar is LR(0) only when this never
// collides).
func GenerateLRTable(g *grammar.Grammar, col *automaton.Collection, opts GenerateOptions) (*LRTable, error) {
	t := &LRTable{
		Action: map[int]map[string]LRAction{},
		Goto:   map[int]map[string]int{},
		States: len(col.States),
	}

	accums := map[int]map[string]*cellAccum{}
	cell := func(state int, term string) *cellAccum {
		if accums[state] == nil {
			accums[state] = map[string]*cellAccum{}
		}
		c, ok := accums[state][term]
		if !ok {
			c = &cellAccum{}
			accums[state][term] = c
		}
		return c
	}

	terminals := append(g.GetTerminals(), grammar.EndOfInput)

	for from, row := range col.Goto {
		for sym, to := range row {
			if g.IsTerminal(sym) {
				target := to
				cell(from, sym).shift = &target
			} else {
				if t.Goto[from] == nil {
					t.Goto[from] = map[string]int{}
				}
				t.Goto[from][sym] = to
			}
		}
	}

	for _, s := range col.States {
		for _, it := range s.Items {
			if !it.AtEnd() {
				continue
			}
			if it.Production == 0 {
				cell(s.Num, grammar.EndOfInput).reduces = append(cell(s.Num, grammar.EndOfInput).reduces, -1)
				continue
			}
			var reduceOn []string
			switch g.GetMode() {
			case grammar.ModeLR0:
				reduceOn = terminals
			case grammar.ModeSLR1:
				reduceOn = g.FOLLOW(it.LHS).OrderedElements()
			default: // CLR1, LALR1_BY_SLR1, LALR1_BY_CLR1
				reduceOn = it.Lookahead
			}
			for _, term := range reduceOn {
				cell(s.Num, term).reduces = append(cell(s.Num, term).reduces, it.Production)
			}
		}
	}

	for state, row := range accums {
		for term, acc := range row {
			action, conflict, err := resolveCell(g, term, acc, opts)
			if err != nil {
				return nil, err
			}
			if t.Action[state] == nil {
				t.Action[state] = map[string]LRAction{}
			}
			t.Action[state][term] = action
			if conflict != nil {
				conflict.State = state
				conflict.Symbol = term
				t.Conflicts = append(t.Conflicts, *conflict)
			}
		}
	}

	return t, nil
}

// resolveCell collapses one cell's accumulated shift/reduce proposals into
// a single LRAction, applying the precedence-based policy from the data
// model.
func resolveCell(g *grammar.Grammar, term string, acc *cellAccum, opts GenerateOptions) (LRAction, *ConflictRecord, error) {
	hasShift := acc.shift != nil
	numReduces := len(acc.reduces)

	// accept: the lone reduce of production -1 sentinel marks (P0, dot=1)
	if numReduces == 1 && acc.reduces[0] == -1 && !hasShift {
		return LRAction{Kind: ActionAccept}, nil, nil
	}

	if !hasShift && numReduces == 0 {
		return LRAction{Kind: ActionError}, nil, nil
	}

	if !hasShift && numReduces == 1 {
		return LRAction{Kind: ActionReduce, Production: acc.reduces[0]}, nil, nil
	}

	if hasShift && numReduces == 0 {
		return LRAction{Kind: ActionShift, State: *acc.shift}, nil, nil
	}

	// conflict: at least a shift+reduce, or multiple reduces. Resolve any
	// reduce-reduce competition first (lowest production number wins),
	// then treat the survivor as a normal shift-reduce cell.
	best := acc.reduces[0]
	reduceReduce := numReduces > 1
	if reduceReduce {
		best = lowestProduction(acc.reduces)
	}

	entries := encodeReduceEntries(acc.reduces)
	if hasShift {
		entries = append(entries, shiftEntry(*acc.shift))
	}

	if !hasShift {
		// pure reduce-reduce: the lowest-numbered production always wins
		// once resolution is requested; otherwise the cell stays
		// unresolved and is reported as a conflict either way.
		resolvedBy := "unresolved"
		action := LRAction{Kind: ActionError, Conflicts: entries, ResolvedBy: resolvedBy}
		if opts.ResolveConflicts {
			resolvedBy = "default"
			action = LRAction{Kind: ActionReduce, Production: best, Conflicts: entries, ResolvedBy: resolvedBy}
		}
		return action, &ConflictRecord{Kind: ReduceReduce, Entries: entries, ResolvedBy: resolvedBy}, nil
	}

	if reduceReduce && !opts.ResolveConflicts {
		return LRAction{Kind: ActionError, Conflicts: entries, ResolvedBy: "unresolved"},
			&ConflictRecord{Kind: ReduceReduce, Entries: entries, ResolvedBy: "unresolved"}, nil
	}

	action, resolvedBy := resolveShiftReduce(g, term, *acc.shift, best, opts)
	action.Conflicts = entries
	action.ResolvedBy = resolvedBy
	kind := ShiftReduce
	if reduceReduce {
		kind = ReduceReduce
	}
	return action, &ConflictRecord{Kind: kind, Entries: entries, ResolvedBy: resolvedBy}, nil
}

func lowestProduction(prods []int) int {
	best := prods[0]
	for _, p := range prods[1:] {
		if p < best {
			best = p
		}
	}
	return best
}

func encodeReduceEntries(prods []int) []string {
	out := make([]string, len(prods))
	for i, p := range prods {
		out[i] = reduceEntry(p)
	}
	return out
}

// resolveShiftReduce applies the precedence/associativity policy of
// spec §4.4 item 1 to a single shift-vs-reduce cell: shiftState is the
// state a shift on term would move to, reduceProd is the (possibly
// reduce-reduce-resolved) competing reduce.
func resolveShiftReduce(g *grammar.Grammar, term string, shiftState, reduceProd int, opts GenerateOptions) (LRAction, string) {
	p, _ := g.GetProduction(reduceProd)
	termOp, hasTermOp := g.GetOperator(term)

	if p.Precedence != nil && hasTermOp {
		switch {
		case p.Precedence.Level > termOp.Level:
			return LRAction{Kind: ActionReduce, Production: reduceProd}, "precedence"
		case p.Precedence.Level < termOp.Level:
			return LRAction{Kind: ActionShift, State: shiftState}, "precedence"
		default:
			switch p.Precedence.Assoc {
			case grammar.AssocLeft:
				return LRAction{Kind: ActionReduce, Production: reduceProd}, "associativity"
			case grammar.AssocRight:
				return LRAction{Kind: ActionShift, State: shiftState}, "associativity"
			default:
				return LRAction{Kind: ActionError}, "nonassoc"
			}
		}
	}

	if opts.ResolveConflicts {
		return LRAction{Kind: ActionShift, State: shiftState}, "default"
	}
	return LRAction{Kind: ActionError}, "unresolved"
}
