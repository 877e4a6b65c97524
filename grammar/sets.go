package grammar

import "github.com/dekarrin/parsegen/internal/util"

// FIRST computes the FIRST set of a single grammar symbol, memoizing the
// result on g. FIRST(terminal) = {terminal}; FIRST(ε) = {ε}.
func (g *Grammar) FIRST(sym string) util.StringSet {
	g.computeFirstSets()
	return util.StringSet(g.firstCache[sym])
}

// FIRSTString computes FIRST of a symbol sequence (the rhs of some
// production, or any suffix of one), per the standard chained definition:
// FIRST(X1 X2 ... Xn) includes FIRST(X1)\{ε}, and FIRST(X2)\{ε} if X1 is
// nullable, and so on; ε is included iff every Xi is nullable.
func (g *Grammar) FIRSTString(seq []string) util.StringSet {
	out := util.NewStringSet()
	if len(seq) == 0 {
		out.Add(Epsilon)
		return out
	}
	allNullable := true
	for _, sym := range seq {
		f := g.FIRST(sym)
		for t := range f {
			if t != Epsilon {
				out.Add(t)
			}
		}
		if !f.Has(Epsilon) {
			allNullable = false
			break
		}
	}
	if allNullable {
		out.Add(Epsilon)
	}
	return out
}

// FOLLOW computes the FOLLOW set of a nonterminal, memoizing the result on
// g.
func (g *Grammar) FOLLOW(nonterm string) util.StringSet {
	g.computeFollowSets()
	return util.StringSet(g.followCache[nonterm])
}

// PREDICT computes the PREDICT set of production p: FIRST(RHS) with ε
// replaced by FOLLOW(LHS) whenever RHS is nullable. This is the set an
// LL(1) table uses to decide when p applies.
func (g *Grammar) PREDICT(p Production) util.StringSet {
	first := g.FIRSTString(p.RHS)
	out := util.NewStringSet()
	for t := range first {
		if t != Epsilon {
			out.Add(t)
		}
	}
	if first.Has(Epsilon) {
		out.AddAll(g.FOLLOW(p.LHS))
	}
	return out
}

func (g *Grammar) computeFirstSets() {
	if g.firstCache != nil {
		return
	}
	first := map[string]map[string]bool{}

	for t := range g.terminals {
		first[t] = map[string]bool{t: true}
	}
	first[EndOfInput] = map[string]bool{EndOfInput: true}
	for nt := range g.nonterms {
		first[nt] = map[string]bool{}
	}

	changed := true
	for changed {
		changed = false
		for _, p := range g.productions {
			lhsSet := util.StringSet(first[p.LHS])
			if p.IsEpsilon() {
				if !lhsSet.Has(Epsilon) {
					lhsSet.Add(Epsilon)
					changed = true
				}
				continue
			}
			allNullable := true
			for _, sym := range p.RHS {
				symSet := util.StringSet(first[sym])
				for t := range symSet {
					if t != Epsilon && !lhsSet.Has(t) {
						lhsSet.Add(t)
						changed = true
					}
				}
				if !symSet.Has(Epsilon) {
					allNullable = false
					break
				}
			}
			if allNullable && !lhsSet.Has(Epsilon) {
				lhsSet.Add(Epsilon)
				changed = true
			}
		}
	}
	g.firstCache = first
}

func (g *Grammar) computeFollowSets() {
	if g.followCache != nil {
		return
	}
	g.computeFirstSets()

	follow := map[string]map[string]bool{}
	for nt := range g.nonterms {
		follow[nt] = map[string]bool{}
	}
	follow[g.start] = map[string]bool{EndOfInput: true}

	changed := true
	for changed {
		changed = false
		for _, p := range g.productions {
			for i, sym := range p.RHS {
				if !g.nonterms[sym] {
					continue
				}
				rest := p.RHS[i+1:]
				restFirst := g.FIRSTString(rest)
				symSet := util.StringSet(follow[sym])
				for t := range restFirst {
					if t != Epsilon && !symSet.Has(t) {
						symSet.Add(t)
						changed = true
					}
				}
				if restFirst.Has(Epsilon) {
					if symSet.AddAll(util.StringSet(follow[p.LHS])) {
						changed = true
					}
				}
			}
		}
	}
	g.followCache = follow
}
