package main

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dekarrin/parsegen/grammar"
	"github.com/dekarrin/parsegen/icerrors"
	"github.com/dekarrin/parsegen/lex"
	"github.com/dekarrin/parsegen/ptypes"
)

// GrammarLoader reads a grammar definition from path and returns it in the
// core's normalized form. yamlLoader is the only implementation; BNF-text
// parsing is not implemented by this binary.
type GrammarLoader interface {
	Load(path string) (grammar.BuilderInput, *lex.Spec, error)
}

// yamlLoader reads the object-form grammar record: a mapping with `lex`,
// `operators`, `bnf`, optional `start` and `moduleInclude` keys.
type yamlLoader struct {
	Mode grammar.Mode
}

type yamlDoc struct {
	Start         string               `yaml:"start"`
	ModuleInclude string               `yaml:"moduleInclude"`
	Operators     []yamlOperator       `yaml:"operators"`
	BNF           map[string][]yamlAlt `yaml:"bnf"`
	Lex           *yamlLex             `yaml:"lex"`
}

type yamlOperator struct {
	Assoc     string   `yaml:"assoc"`
	Terminals []string `yaml:"terminals"`
}

type yamlAlt struct {
	RHS    string `yaml:"rhs"`
	Action string `yaml:"action"`
	Prec   string `yaml:"prec"`
}

type yamlLex struct {
	StartState      string          `yaml:"startState"`
	CaseInsensitive bool            `yaml:"caseInsensitive"`
	Classes         []string        `yaml:"classes"`
	Rules           []yamlLexRule   `yaml:"rules"`
}

type yamlLexRule struct {
	Pattern string        `yaml:"pattern"`
	State   string        `yaml:"state"`
	Action  yamlLexAction `yaml:"action"`
}

type yamlLexAction struct {
	Type  string `yaml:"type"` // "scan", "push", "pop", "swap", "scanAndSwap", "" (discard)
	Class string `yaml:"class"`
	State string `yaml:"state"`
}

// Load reads the file at path, parses it as the object-form grammar
// record, and normalizes it into a grammar.BuilderInput plus, if a `lex`
// section was present, a lex.Spec.
func (l yamlLoader) Load(path string) (grammar.BuilderInput, *lex.Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return grammar.BuilderInput{}, nil, &icerrors.IOFailureError{Path: path, Cause: err}
	}

	var doc yamlDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return grammar.BuilderInput{}, nil, &icerrors.IOFailureError{Path: path, Cause: err}
	}

	in := grammar.BuilderInput{
		Start: doc.Start,
		Mode:  l.Mode,
	}

	// bnf is a map, so iteration order isn't meaningful; sort heads for
	// determinism the way the builder expects rule declaration order to
	// matter (first rule's head is the default start symbol).
	heads := make([]string, 0, len(doc.BNF))
	for head := range doc.BNF {
		heads = append(heads, head)
	}
	sortStrings(heads)
	if in.Start == "" && len(heads) > 0 {
		in.Start = heads[0]
	}

	for _, head := range heads {
		alts := doc.BNF[head]
		rule := grammar.Rule{Head: head}
		for _, a := range alts {
			alt := grammar.ParseAlt(a.RHS, a.Action)
			if a.Prec != "" {
				alt.PrecOverride = a.Prec
			}
			rule.Alts = append(rule.Alts, alt)
		}
		in.Rules = append(in.Rules, rule)
	}

	level := 0
	for _, op := range doc.Operators {
		assoc := grammar.AssocNone
		switch op.Assoc {
		case "left":
			assoc = grammar.AssocLeft
		case "right":
			assoc = grammar.AssocRight
		case "nonassoc":
			assoc = grammar.AssocNonAssoc
		}
		for _, t := range op.Terminals {
			in.Operators = append(in.Operators, grammar.Operator{Terminal: t, Level: level, Assoc: assoc})
			in.Terminals = append(in.Terminals, t)
		}
		level++
	}

	var lexSpec *lex.Spec
	if doc.Lex != nil {
		lexSpec = buildLexSpec(doc.Lex)
	}

	return in, lexSpec, nil
}

func buildLexSpec(l *yamlLex) *lex.Spec {
	spec := &lex.Spec{
		StartState:      l.StartState,
		CaseInsensitive:  l.CaseInsensitive,
	}
	if spec.StartState == "" {
		spec.StartState = "INITIAL"
	}
	for _, c := range l.Classes {
		spec.Classes = append(spec.Classes, ptypes.NamedClass(c, c))
	}
	for _, r := range l.Rules {
		state := r.State
		if state == "" {
			state = spec.StartState
		}
		spec.Rules = append(spec.Rules, lex.Rule{
			Pattern: r.Pattern,
			State:   state,
			Action:  convertLexAction(r.Action),
		})
	}
	return spec
}

func convertLexAction(a yamlLexAction) lex.Action {
	switch a.Type {
	case "scan":
		return lex.LexAs(a.Class)
	case "push":
		return lex.PushState(a.State)
	case "pop":
		return lex.PopState()
	case "swap":
		return lex.SwapState(a.State)
	case "scanAndSwap":
		return lex.LexAndSwapState(a.Class, a.State)
	default:
		return lex.Discard()
	}
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
