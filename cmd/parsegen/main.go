/*
Parsegen builds FIRST/FOLLOW/PREDICT sets, canonical LR item collections,
and LL(1)/LR parse tables from a grammar definition, and can interpret
source text against the resulting table.

Usage:

	parsegen -g FILE [flags]

The flags are:

	-g, --grammar FILE
		Grammar definition file (object-form YAML).

	    --lex FILE
		External lex grammar, merged into the grammar file's own lex rules.

	-m, --mode MODE
		One of LR0, SLR1, CLR1, LALR1, LALR1_BY_SLR1, LALR1_BY_CLR1, LL1.
		Case-insensitive. Defaults to LALR1 (LALR1_BY_SLR1) when absent or
		unrecognized; the grammar file has no mode key.

	-p, --parse STRING
	-f, --file FILE
		Input to interpret, as a literal string or a file to read it from.

	    --table, --collection, --sets MODE
		Print the requested diagnostic. Any non-empty --sets value prints the
		FIRST/FOLLOW table; PREDICT sets are not printed.

	    --tokenize
		Print the token stream produced by the lexer and exit.

	    --ignore-whitespaces
		Inject a `\s+` skip rule when no lex grammar supplies one.

	    --case-insensitive
		Set the lexer-wide case-insensitive flag.

	    --loc
		Enable location capture during grammar construction.

	-r, --resolve-conflicts
		Enable default shift/lowest-numbered-production conflict resolution.

	-o, --output FILE
		Reserved for future code-emitter target output.

	    --validate
		Run conflict diagnosis without emission and exit.

	    --cache FILE
		After building, write a binary snapshot of the grammar, sets,
		collection and tables to FILE. An existing FILE is overwritten; it is
		never read.

	    --repl
		Start an interactive shell instead of a one-shot run.
*/
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/dekarrin/parsegen"
	"github.com/dekarrin/parsegen/diag"
	"github.com/dekarrin/parsegen/emit"
	"github.com/dekarrin/parsegen/grammar"
	"github.com/dekarrin/parsegen/lex"
)

var stdLexSpec = lex.Spec{StartState: "INITIAL"}

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagGrammar          = pflag.StringP("grammar", "g", "", "Grammar definition file (object-form YAML)")
	flagLex              = pflag.String("lex", "", "External lex grammar file, merged into the grammar's own lex rules")
	flagMode             = pflag.StringP("mode", "m", "", "Construction mode: LR0, SLR1, CLR1, LALR1, LALR1_BY_SLR1, LALR1_BY_CLR1, LL1")
	flagParse            = pflag.StringP("parse", "p", "", "Literal input string to interpret")
	flagFile             = pflag.StringP("file", "f", "", "Input file to interpret")
	flagTable            = pflag.Bool("table", false, "Print the ACTION table")
	flagCollection       = pflag.Bool("collection", false, "Print the canonical LR item collection")
	flagSets             = pflag.String("sets", "", "Print the FIRST/FOLLOW sets table (any non-empty value)")
	flagTokenize         = pflag.Bool("tokenize", false, "Print the token stream and exit")
	flagIgnoreWhitespace = pflag.Bool("ignore-whitespaces", false, "Inject a whitespace-skip rule when no lex grammar supplies one")
	flagCaseInsensitive  = pflag.Bool("case-insensitive", false, "Set the lexer-wide case-insensitive flag")
	flagLoc              = pflag.Bool("loc", false, "Enable location capture")
	flagResolve          = pflag.BoolP("resolve-conflicts", "r", false, "Enable default shift/lowest-production conflict resolution")
	flagOutput           = pflag.StringP("output", "o", "", "Emission target file (reserved)")
	flagValidate         = pflag.Bool("validate", false, "Run conflict diagnosis without emission")
	flagCache            = pflag.String("cache", "", "Binary snapshot cache file path")
	flagRepl             = pflag.Bool("repl", false, "Start an interactive shell")
)

func main() {
	pflag.Parse()

	if *flagGrammar == "" {
		fmt.Fprintln(os.Stderr, "ERROR: --grammar is required")
		os.Exit(ExitError)
	}

	loader := yamlLoader{Mode: parseMode(*flagMode)}
	builderIn, lexSpec, err := loader.Load(*flagGrammar)
	if err != nil {
		fail(err)
	}

	if *flagLex != "" {
		extLoader := yamlLoader{}
		_, extLex, err := extLoader.Load(*flagLex)
		if err != nil {
			fail(err)
		}
		if extLex != nil {
			if lexSpec == nil {
				lexSpec = extLex
			} else {
				merged := lexSpec.Merge(*extLex)
				lexSpec = &merged
			}
		}
	}
	if *flagIgnoreWhitespace && (lexSpec == nil || len(lexSpec.Rules) == 0) {
		if lexSpec == nil {
			lexSpec = &stdLexSpec
		}
		withSkip := lexSpec.WithWhitespaceSkip(lexSpec.StartState)
		lexSpec = &withSkip
	}
	if lexSpec != nil && *flagCaseInsensitive {
		lexSpec.CaseInsensitive = true
	}
	builderIn.CaptureLoc = *flagLoc

	ic := parsegen.NewInvocationContext(nil)
	fe, err := parsegen.Build(ic, parsegen.BuildInput{
		Grammar:          builderIn,
		Lex:              lexSpec,
		ResolveConflicts: *flagResolve,
	})
	if err != nil {
		fail(err)
	}

	printer := diag.NewPrinter(os.Stdout, isTerminal(os.Stdout))

	if *flagSets != "" {
		printer.PrintSets(fe.Grammar, *flagSets)
	}
	if *flagCollection && fe.Collection() != nil {
		printer.PrintCollection(fe.Collection())
	}
	if *flagTable && fe.Parser.LRTable != nil {
		printer.PrintTable(fe.Parser.LRTable)
	}
	if fe.Parser.LRTable != nil && len(fe.Parser.LRTable.Conflicts) > 0 {
		printer.PrintConflicts(fe.Parser.LRTable)
		if *flagValidate || (*flagOutput != "" && !*flagResolve) {
			os.Exit(ExitError)
		}
	}
	if *flagValidate {
		os.Exit(ExitSuccess)
	}

	if *flagCache != "" {
		if err := writeCache(*flagCache, fe); err != nil {
			fail(err)
		}
	}

	if *flagRepl {
		if err := runRepl(fe); err != nil {
			fail(err)
		}
		return
	}

	if *flagTokenize {
		runTokenize(fe)
		return
	}

	input, hasInput := resolveInput()
	if !hasInput {
		return
	}

	result, err := fe.AnalyzeString(input)
	if err != nil {
		fail(err)
	}
	fmt.Printf("%v\n", result)
}

func resolveInput() (string, bool) {
	if *flagParse != "" {
		return *flagParse, true
	}
	if *flagFile != "" {
		data, err := os.ReadFile(*flagFile)
		if err != nil {
			fail(err)
		}
		return string(data), true
	}
	return "", false
}

func runTokenize(fe *parsegen.Frontend) {
	input, hasInput := resolveInput()
	if !hasInput {
		return
	}
	toks, err := fe.Tokenize(strings.NewReader(input))
	if err != nil {
		fail(err)
	}
	for _, t := range toks {
		fmt.Printf("%s\n", t.String())
	}
}

func writeCache(path string, fe *parsegen.Frontend) error {
	exp := emit.FromParser(fe.Grammar, fe.Parser)
	data, err := emit.Snapshot(exp)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func parseMode(s string) grammar.Mode {
	switch strings.ToUpper(s) {
	case "LR0":
		return grammar.ModeLR0
	case "SLR1":
		return grammar.ModeSLR1
	case "CLR1":
		return grammar.ModeCLR1
	case "LALR1", "LALR1_BY_SLR1":
		return grammar.ModeLALR1BySLR1
	case "LALR1_BY_CLR1":
		return grammar.ModeLALR1ByCLR1
	case "LL1":
		return grammar.ModeLL1
	default:
		return grammar.ModeLALR1BySLR1
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
	os.Exit(ExitError)
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
