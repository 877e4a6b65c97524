// Package diag renders deterministic, human-readable diagnostics for
// grammars, sets, canonical collections, and parse tables (spec §6's
// "human-readable, deterministic" diagnostic output and §4.4's conflict
// reporting), using rosed for table layout and pterm for terminal
// severity coloring.
package diag

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dekarrin/rosed"
	"github.com/pterm/pterm"

	"github.com/dekarrin/parsegen/automaton"
	"github.com/dekarrin/parsegen/grammar"
	"github.com/dekarrin/parsegen/parse"
)

// Printer renders diagnostics to an io.Writer. Colorized is disabled for
// non-tty output so plain-text runs stay byte-deterministic under test.
type Printer struct {
	Out       io.Writer
	Colorized bool
}

// NewPrinter returns a Printer writing to w. Pass colorized=true only for
// an interactive terminal; automated/test callers should leave it false.
func NewPrinter(w io.Writer, colorized bool) *Printer {
	return &Printer{Out: w, Colorized: colorized}
}

func (p *Printer) severity(tag string) string {
	if !p.Colorized {
		return tag
	}
	switch tag {
	case "CONFLICT":
		return pterm.NewStyle(pterm.FgRed).Sprint(tag)
	case "RESOLVED":
		return pterm.NewStyle(pterm.FgYellow).Sprint(tag)
	default:
		return pterm.NewStyle(pterm.FgGreen).Sprint(tag)
	}
}

// PrintSets prints a FIRST/FOLLOW table for every nonterminal, sorted by
// symbol name for determinism. which is not consulted: every call prints
// both columns, and PREDICT sets are not printed.
func (p *Printer) PrintSets(g *grammar.Grammar, which string) {
	nts := append([]string{}, g.GetNonterminals()...)
	sort.Strings(nts)

	rows := [][]string{{"Symbol", "FIRST", "FOLLOW"}}
	for _, nt := range nts {
		first := strings.Join(g.FIRST(nt).OrderedElements(), " ")
		follow := strings.Join(g.FOLLOW(nt).OrderedElements(), " ")
		rows = append(rows, []string{nt, first, follow})
	}

	table := rosed.Edit("").
		InsertTableOpts(0, rows, 100, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
	fmt.Fprintln(p.Out, table)
}

// PrintCollection prints every canonical-collection state's items in
// numeric order.
func (p *Printer) PrintCollection(col *automaton.Collection) {
	for _, s := range col.States {
		fmt.Fprintf(p.Out, "I%d:\n", s.Num)
		items := make([]string, len(s.Items))
		for i, it := range s.Items {
			items[i] = it.String()
		}
		sort.Strings(items)
		for _, it := range items {
			fmt.Fprintf(p.Out, "  %s\n", it)
		}
	}
}

// PrintTable prints the ACTION table, one row per filled (state, terminal)
// cell, ordered by state and then symbol. GOTO entries are not printed.
func (p *Printer) PrintTable(t *parse.LRTable) {
	rows := [][]string{{"State", "Symbol", "Action"}}
	states := make([]int, 0, len(t.Action))
	for s := range t.Action {
		states = append(states, s)
	}
	sort.Ints(states)
	for _, s := range states {
		syms := make([]string, 0, len(t.Action[s]))
		for sym := range t.Action[s] {
			syms = append(syms, sym)
		}
		sort.Strings(syms)
		for _, sym := range syms {
			rows = append(rows, []string{fmt.Sprint(s), sym, t.Action[s][sym].Encode()})
		}
	}
	table := rosed.Edit("").
		InsertTableOpts(0, rows, 100, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
	fmt.Fprintln(p.Out, table)
}

// PrintConflicts prints the table's conflict ledger: per spec §6, a
// shift-reduce conflict prints the set of competing lookahead symbols and
// entries; a reduce-reduce conflict prints the paired productions.
func (p *Printer) PrintConflicts(t *parse.LRTable) {
	conflicts := append([]parse.ConflictRecord{}, t.Conflicts...)
	sort.Slice(conflicts, func(i, j int) bool {
		if conflicts[i].State != conflicts[j].State {
			return conflicts[i].State < conflicts[j].State
		}
		return conflicts[i].Symbol < conflicts[j].Symbol
	})

	for _, c := range conflicts {
		tag := "CONFLICT"
		if c.ResolvedBy != "unresolved" && c.ResolvedBy != "" {
			tag = "RESOLVED"
		}
		fmt.Fprintf(p.Out, "[%s] state %d, symbol %q, %s: %s (resolved by %s)\n",
			p.severity(tag), c.State, c.Symbol, c.Kind, strings.Join(c.Entries, "/"), c.ResolvedBy)
	}
}
