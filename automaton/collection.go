// Package automaton builds the canonical collection of LR item sets (C5):
// the closure/goto DFA over a Grammar's items, under each of the five
// construction modes the grammar may target.
package automaton

import (
	"sort"

	"github.com/emirpasic/gods/sets/hashset"

	"github.com/dekarrin/parsegen/grammar"
	"github.com/dekarrin/parsegen/internal/util"
)

// unionLookaheads merges two item lookahead sets during LALR1_BY_CLR1's
// kernel-based state merge. Backed by gods' hashset rather than the
// plain StringSet the rest of the package uses: lookahead merging runs
// once per kernel collision across possibly large terminal alphabets, the
// case the data model's "bitsets indexed by terminal id" note is aimed
// at, so this is where that fast-union path actually earns its keep.
func unionLookaheads(a, b []string) []string {
	set := hashset.New()
	for _, t := range a {
		set.Add(t)
	}
	for _, t := range b {
		set.Add(t)
	}
	out := make([]string, 0, set.Size())
	for _, v := range set.Values() {
		out = append(out, v.(string))
	}
	sort.Strings(out)
	return out
}

// State is one numbered item set of the canonical collection.
type State struct {
	Num   int
	Items []grammar.LRItem
}

// Collection is the built canonical collection: a dense, zero-based
// sequence of states plus the goto map recorded during construction.
// State 0 is always closure({P0 with dot at 0, lookahead $}).
type Collection struct {
	States []State
	// Goto maps (stateNum, symbol) -> stateNum.
	Goto map[int]map[string]int
}

// AcceptState returns the state number containing the item (P0, dot=1),
// the state at which the augmenting production is fully recognized.
func (c *Collection) AcceptState() (int, bool) {
	for _, s := range c.States {
		for _, it := range s.Items {
			if it.Production == 0 && it.Dot == 1 {
				return s.Num, true
			}
		}
	}
	return 0, false
}

// kernelKey returns a stable identity for a state's kernel (its items with
// lookaheads stripped), used to detect when a freshly computed goto/closure
// set duplicates an existing state.
func kernelKey(items []grammar.LRItem) string {
	cores := make([]string, len(items))
	for i, it := range items {
		cores[i] = it.Core().Key()
	}
	sort.Strings(cores)
	key := ""
	for _, c := range cores {
		key += c + "|"
	}
	return key
}

// fullKey additionally folds in lookaheads, used for CLR(1) state identity
// where two states with the same core but different lookaheads are
// distinct.
func fullKey(items []grammar.LRItem) string {
	keys := make([]string, len(items))
	for i, it := range items {
		keys[i] = it.Key()
	}
	sort.Strings(keys)
	key := ""
	for _, k := range keys {
		key += k + "|"
	}
	return key
}

// Build constructs the canonical collection for g under its configured
// Mode. LALR1_BY_SLR1 and LALR1_BY_CLR1 both return item sets already
// carrying the merged lookahead sets described in the data model; the two
// routes differ only in how they arrive there (see lalrBySLR1/lalrByCLR1).
func Build(g *grammar.Grammar) (*Collection, error) {
	switch g.GetMode() {
	case grammar.ModeLR0, grammar.ModeSLR1:
		return buildKernelKeyed(g, false)
	case grammar.ModeCLR1:
		return buildFullKeyed(g)
	case grammar.ModeLALR1BySLR1:
		return lalrBySLR1(g)
	case grammar.ModeLALR1ByCLR1:
		return lalrByCLR1(g)
	default:
		return buildKernelKeyed(g, false)
	}
}

// closure computes the closure of a seed item set for g, under either
// LR(0)-style empty lookaheads (withLookaheads=false) or CLR(1)-style
// propagated lookaheads (withLookaheads=true): for each item with the dot
// before nonterminal B, every B-production is added at dot 0, with
// lookahead FIRST(beta a) for every lookahead a of the source item, where
// beta is the symbols following B.
func closure(g *grammar.Grammar, seed []grammar.LRItem, withLookaheads bool) []grammar.LRItem {
	type key struct {
		core   string
		lookahead string
	}
	seen := map[key]bool{}
	var out []grammar.LRItem

	add := func(it grammar.LRItem) bool {
		la := ""
		if it.Lookahead != nil {
			la = it.Lookahead[0]
		}
		k := key{core: it.Core().Key(), lookahead: la}
		if seen[k] {
			return false
		}
		seen[k] = true
		out = append(out, it)
		return true
	}

	for _, it := range seed {
		add(it)
	}

	changed := true
	for changed {
		changed = false
		for _, it := range append([]grammar.LRItem{}, out...) {
			sym, ok := it.NextSymbol()
			if !ok || !g.IsNonterminal(sym) {
				continue
			}
			prods := g.GetProductionsForSymbol(sym)

			if !withLookaheads {
				for _, p := range prods {
					if add(grammar.NewLR0Item(p, 0)) {
						changed = true
					}
				}
				continue
			}

			beta := it.RHS[it.Dot+1:]
			lookaheads := util.NewStringSet()
			if len(it.Lookahead) > 0 {
				betaLA := g.FIRSTString(append(append([]string{}, beta...), it.Lookahead[0]))
				for t := range betaLA {
					if t != grammar.Epsilon {
						lookaheads.Add(t)
					}
				}
			}
			for _, p := range prods {
				for la := range lookaheads {
					if add(grammar.NewLR1Item(p, 0, la)) {
						changed = true
					}
				}
			}
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}

// gotoSet computes goto(state, X): advance the dot over X in every item
// that has X next, then close the result.
func gotoSet(g *grammar.Grammar, items []grammar.LRItem, sym string, withLookaheads bool) []grammar.LRItem {
	var moved []grammar.LRItem
	for _, it := range items {
		next, ok := it.NextSymbol()
		if !ok || next != sym {
			continue
		}
		moved = append(moved, it.Advance())
	}
	if len(moved) == 0 {
		return nil
	}
	return closure(g, moved, withLookaheads)
}

// symbolsAfterDot returns, in first-seen order, every grammar symbol that
// appears immediately after some item's dot.
func symbolsAfterDot(items []grammar.LRItem) []string {
	seen := map[string]bool{}
	var out []string
	for _, it := range items {
		sym, ok := it.NextSymbol()
		if !ok || seen[sym] {
			continue
		}
		seen[sym] = true
		out = append(out, sym)
	}
	return out
}

// buildKernelKeyed constructs LR(0)/SLR(1)-style collections: kernel
// equality, no lookaheads carried on items (the SLR(1) table builder
// consults FOLLOW directly instead).
func buildKernelKeyed(g *grammar.Grammar, _ bool) (*Collection, error) {
	return buildGeneric(g, false, kernelKey)
}

// buildFullKeyed constructs a CLR(1) collection: full item equality
// including lookaheads distinguishes states.
func buildFullKeyed(g *grammar.Grammar) (*Collection, error) {
	return buildGeneric(g, true, fullKey)
}

func buildGeneric(g *grammar.Grammar, withLookaheads bool, keyFn func([]grammar.LRItem) string) (*Collection, error) {
	p0, _ := g.GetProduction(0)
	var seed grammar.LRItem
	if withLookaheads {
		seed = grammar.NewLR1Item(p0, 0, grammar.EndOfInput)
	} else {
		seed = grammar.NewLR0Item(p0, 0)
	}
	start := closure(g, []grammar.LRItem{seed}, withLookaheads)

	col := &Collection{Goto: map[int]map[string]int{}}
	index := map[string]int{}

	col.States = append(col.States, State{Num: 0, Items: start})
	index[keyFn(start)] = 0

	worklist := []int{0}
	for len(worklist) > 0 {
		cur := worklist[0]
		worklist = worklist[1:]
		state := col.States[cur]

		for _, sym := range symbolsAfterDot(state.Items) {
			next := gotoSet(g, state.Items, sym, withLookaheads)
			if len(next) == 0 {
				continue
			}
			k := keyFn(next)
			target, exists := index[k]
			if !exists {
				target = len(col.States)
				col.States = append(col.States, State{Num: target, Items: next})
				index[k] = target
				worklist = append(worklist, target)
			}
			if col.Goto[cur] == nil {
				col.Goto[cur] = map[string]int{}
			}
			col.Goto[cur][sym] = target
		}
	}

	return col, nil
}

// lalrBySLR1 builds an LR(0) collection (kernel-keyed, no lookaheads) and
// then assigns every reduce item (A -> alpha .) the set FOLLOW(A), per the
// data model's LALR1_BY_SLR1 state-equality rule: kernel equality first,
// lookaheads attached after the DFA is complete.
func lalrBySLR1(g *grammar.Grammar) (*Collection, error) {
	col, err := buildKernelKeyed(g, false)
	if err != nil {
		return nil, err
	}
	for si, s := range col.States {
		newItems := make([]grammar.LRItem, len(s.Items))
		for ii, it := range s.Items {
			if it.AtEnd() {
				follow := g.FOLLOW(it.LHS)
				it.Lookahead = follow.OrderedElements()
			}
			newItems[ii] = it
		}
		col.States[si].Items = newItems
	}
	return col, nil
}

// lalrByCLR1 builds the full CLR(1) collection and then merges every pair
// of states whose kernels (lookaheads stripped) agree, unioning their
// per-item lookahead sets — the data model's LALR1_BY_CLR1 route.
func lalrByCLR1(g *grammar.Grammar) (*Collection, error) {
	clr, err := buildFullKeyed(g)
	if err != nil {
		return nil, err
	}

	// group CLR states by kernel
	groupOf := map[int]int{} // clr state num -> merged state index
	var groups [][]int       // merged state index -> clr state nums
	keyToGroup := map[string]int{}

	for _, s := range clr.States {
		k := kernelKey(s.Items)
		gi, ok := keyToGroup[k]
		if !ok {
			gi = len(groups)
			keyToGroup[k] = gi
			groups = append(groups, nil)
		}
		groups[gi] = append(groups[gi], s.Num)
		groupOf[s.Num] = gi
	}

	merged := &Collection{Goto: map[int]map[string]int{}}
	for gi, members := range groups {
		itemsByCore := map[string]grammar.LRItem{}
		var coreOrder []string
		for _, m := range members {
			for _, it := range clr.States[m].Items {
				ck := it.Core().Key()
				existing, ok := itemsByCore[ck]
				if !ok {
					itemsByCore[ck] = it
					coreOrder = append(coreOrder, ck)
					continue
				}
				existing.Lookahead = unionLookaheads(existing.Lookahead, it.Lookahead)
				itemsByCore[ck] = existing
			}
		}
		sort.Strings(coreOrder)
		items := make([]grammar.LRItem, len(coreOrder))
		for i, ck := range coreOrder {
			items[i] = itemsByCore[ck]
		}
		merged2 := State{Num: gi, Items: items}
		merged.States = append(merged.States, merged2)
	}

	for clrFrom, row := range clr.Goto {
		fromGroup := groupOf[clrFrom]
		for sym, clrTo := range row {
			toGroup := groupOf[clrTo]
			if merged.Goto[fromGroup] == nil {
				merged.Goto[fromGroup] = map[string]int{}
			}
			merged.Goto[fromGroup][sym] = toGroup
		}
	}

	return merged, nil
}
