package lex

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dekarrin/parsegen/icerrors"
	"github.com/dekarrin/parsegen/ptypes"
)

// compiledState is the compiled form of every rule active in one start
// condition: a single "super-pattern" built by OR-ing each rule's pattern
// as its own capturing group, so one regex match tells us both that some
// rule matched and which one (by which group captured).
type compiledState struct {
	pattern *regexp.Regexp
	actions []Action
}

// Lexer is a built tokenizer: the compiled per-state patterns and the
// token classes they may produce. It is immutable once built by Build; a
// Lex call creates a fresh, independent cursor over the given input.
type Lexer struct {
	states     map[string]compiledState
	classes    map[string]ptypes.TokenClass
	startState string
}

// Build compiles spec into a Lexer. Returns an InvalidGrammarError if any
// rule's pattern fails to compile or references an undeclared class.
func Build(spec Spec) (*Lexer, error) {
	lx := &Lexer{
		states:     map[string]compiledState{},
		classes:    map[string]ptypes.TokenClass{},
		startState: spec.StartState,
	}
	if lx.startState == "" {
		lx.startState = "INITIAL"
	}

	for _, c := range spec.Classes {
		lx.classes[c.ID()] = c
	}

	byState := map[string][]Rule{}
	order := []string{}
	for _, r := range spec.Rules {
		st := r.State
		if st == "" {
			st = lx.startState
		}
		if _, ok := byState[st]; !ok {
			order = append(order, st)
		}
		byState[st] = append(byState[st], r)
	}

	caseFlag := ""
	if spec.CaseInsensitive {
		caseFlag = "(?i)"
	}

	for _, st := range order {
		rules := byState[st]
		var sb strings.Builder
		sb.WriteString(caseFlag)
		sb.WriteString("^(?:")
		actions := make([]Action, len(rules))
		for i, r := range rules {
			if r.Action.Type == ActionScan || r.Action.Type == ActionScanAndState {
				if _, ok := lx.classes[strings.ToLower(r.Action.ClassID)]; !ok {
					return nil, &icerrors.InvalidGrammarError{Reason: fmt.Sprintf("rule references undeclared token class %q", r.Action.ClassID)}
				}
			}
			sb.WriteString("(" + r.Pattern + ")")
			if i+1 < len(rules) {
				sb.WriteRune('|')
			}
			actions[i] = r.Action
		}
		sb.WriteRune(')')

		compiled, err := regexp.Compile(sb.String())
		if err != nil {
			return nil, &icerrors.InvalidGrammarError{Reason: fmt.Sprintf("cannot compile rules for state %q: %s", st, err)}
		}
		lx.states[st] = compiledState{pattern: compiled, actions: actions}
	}

	return lx, nil
}

// Lex returns a fresh TokenStream over input, read fully into memory
// (streaming is not a requirement of this tokenizer; see spec §5).
func (lx *Lexer) Lex(input io.Reader) (ptypes.TokenStream, error) {
	data, err := io.ReadAll(input)
	if err != nil {
		return nil, &icerrors.IOFailureError{Cause: err}
	}
	return &stream{
		lx:         lx,
		src:        string(data),
		stateStack: []string{lx.startState},
		line:       1,
		lineStart:  0,
	}, nil
}

// stream is the lazy, tick-based cursor over one input string. Each call
// to Next/Peek advances at most one token; an UnexpectedToken condition
// enters panic mode, discarding runes until a rule matches again.
type stream struct {
	lx         *Lexer
	src        string
	cursor     int
	stateStack []string
	line       int
	lineStart  int // byte offset of the start of the current line
	done       bool
	panicMode  bool
	panicErr   error
}

func (s *stream) curState() string {
	return s.stateStack[len(s.stateStack)-1]
}

func (s *stream) Next() ptypes.Token {
	if s.done {
		return s.eotToken()
	}

	for {
		if s.panicMode {
			if s.cursor >= len(s.src) {
				s.done = true
				s.panicMode = false
				return s.eotToken()
			}
			r, sz := utf8Decode(s.src[s.cursor:])
			s.advanceLoc(r, sz)
			if m := s.tryMatch(); m != nil {
				s.panicMode = false
				if tok, cont := s.applyMatch(m); !cont {
					return tok
				}
				continue
			}
			continue
		}

		if s.cursor >= len(s.src) {
			s.done = true
			return s.eotToken()
		}

		m := s.tryMatch()
		if m == nil {
			offset, line, col := s.cursor, s.line, s.cursor-s.lineStart
			s.panicMode = true
			s.panicErr = &icerrors.UnexpectedTokenError{Offset: offset, Line: line, LinePos: col, FullLine: s.currentFullLine()}
			return ptypes.NewToken(ptypes.TokenError, s.panicErr.Error(), offset, line, col, s.currentFullLine())
		}
		if tok, cont := s.applyMatch(m); !cont {
			return tok
		}
	}
}

type matchResult struct {
	actionIdx int
	lexeme    string
}

// tryMatch runs the current state's super-pattern at the cursor, applying
// GNU-lex longest-match-wins with first-defined-rule as the tiebreaker,
// and returns which rule matched (if any).
func (s *stream) tryMatch() *matchResult {
	cs, ok := s.lx.states[s.curState()]
	if !ok {
		return nil
	}
	loc := cs.pattern.FindStringSubmatchIndex(s.src[s.cursor:])
	if loc == nil {
		return nil
	}

	best := -1
	bestLen := -1
	// group 0 is the whole super-match; groups 1..n are one per rule.
	for i := 0; i < len(cs.actions); i++ {
		gi := 1 + i
		if gi*2+1 >= len(loc) {
			break
		}
		start, end := loc[gi*2], loc[gi*2+1]
		if start < 0 {
			continue
		}
		length := utf8.RuneCountInString(s.src[s.cursor+start : s.cursor+end])
		if length > bestLen {
			bestLen = length
			best = i
		}
	}
	if best == -1 {
		return nil
	}
	return &matchResult{actionIdx: best, lexeme: s.src[s.cursor : s.cursor+loc[1]]}
}

// applyMatch runs the action for a match, advancing location counters.
// The bool return is true if scanning should continue (skip/state-only).
func (s *stream) applyMatch(m *matchResult) (ptypes.Token, bool) {
	cs := s.lx.states[s.curState()]
	action := cs.actions[m.actionIdx]

	startOffset, startLine, startCol := s.cursor, s.line, s.cursor-s.lineStart
	startFullLine := s.currentFullLine()

	for _, r := range m.lexeme {
		s.advanceLoc(r, utf8.RuneLen(r))
	}

	switch action.Type {
	case ActionNone:
		return ptypes.Token(nil), true
	case ActionScan:
		return s.makeToken(action.ClassID, m.lexeme, startOffset, startLine, startCol, startFullLine), false
	case ActionState:
		s.applyStateChange(action)
		return ptypes.Token(nil), true
	case ActionScanAndState:
		tok := s.makeToken(action.ClassID, m.lexeme, startOffset, startLine, startCol, startFullLine)
		s.applyStateChange(action)
		return tok, false
	}
	return ptypes.Token(nil), true
}

func (s *stream) applyStateChange(a Action) {
	switch {
	case a.StatePop:
		if len(s.stateStack) > 1 {
			s.stateStack = s.stateStack[:len(s.stateStack)-1]
		}
	case a.StatePush:
		s.stateStack = append(s.stateStack, a.State)
	default:
		s.stateStack[len(s.stateStack)-1] = a.State
	}
}

func (s *stream) advanceLoc(r rune, sz int) {
	if r == '\n' {
		s.line++
		s.lineStart = s.cursor + sz
	}
	s.cursor += sz
}

func (s *stream) currentFullLine() string {
	end := strings.IndexByte(s.src[s.lineStart:], '\n')
	if end < 0 {
		return s.src[s.lineStart:]
	}
	return s.src[s.lineStart : s.lineStart+end]
}

func (s *stream) makeToken(classID, lexeme string, offset, line, col int, fullLine string) ptypes.Token {
	class, ok := s.lx.classes[strings.ToLower(classID)]
	if !ok {
		class = ptypes.MakeDefaultClass(classID)
	}
	return ptypes.NewToken(class, lexeme, offset, line, col, fullLine)
}

func (s *stream) eotToken() ptypes.Token {
	return ptypes.NewToken(ptypes.TokenEndOfText, "", s.cursor, s.line, s.cursor-s.lineStart, s.currentFullLine())
}

func (s *stream) Peek() ptypes.Token {
	saved := *s
	savedStack := append([]string{}, s.stateStack...)
	tok := s.Next()
	*s = saved
	s.stateStack = savedStack
	return tok
}

func (s *stream) HasNext() bool {
	return !s.done
}

func utf8Decode(s string) (rune, int) {
	r, sz := utf8.DecodeRuneInString(s)
	return r, sz
}
