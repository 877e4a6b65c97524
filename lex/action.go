package lex

// ActionType distinguishes what a matched rule does: emit a token, switch
// the tokenizer's start-condition state, both, or neither (skip).
type ActionType int

const (
	ActionNone ActionType = iota
	ActionScan
	ActionState
	ActionScanAndState
)

// Action is what happens when a rule's pattern matches: emit a token of
// ClassID, shift the current start-condition, both, or — per the spec's
// open question on empty-return semantics — neither, which discards the
// lexeme and continues scanning (e.g. whitespace).
//
// State transitions operate on an explicit stack of start conditions:
// Push/Pop push or pop a condition, while a plain State swaps the top of
// the stack in place (the common case; most lexical specifications never
// need nested conditions at all).
type Action struct {
	Type      ActionType
	ClassID   string
	State     string
	StatePush bool
	StatePop  bool
}

// LexAs returns an Action that emits a token of the given class.
func LexAs(classID string) Action {
	return Action{Type: ActionScan, ClassID: classID}
}

// SwapState returns an Action that replaces the current start-condition
// with toState without emitting a token.
func SwapState(toState string) Action {
	return Action{Type: ActionState, State: toState}
}

// PushState returns an Action that pushes toState onto the start-condition
// stack without emitting a token.
func PushState(toState string) Action {
	return Action{Type: ActionState, State: toState, StatePush: true}
}

// PopState returns an Action that pops the start-condition stack without
// emitting a token.
func PopState() Action {
	return Action{Type: ActionState, StatePop: true}
}

// LexAndSwapState returns an Action that emits a token of the given class
// and then replaces the current start-condition with newState.
func LexAndSwapState(classID, newState string) Action {
	return Action{Type: ActionScanAndState, ClassID: classID, State: newState}
}

// Discard returns the zero Action: match and skip, emitting nothing.
func Discard() Action {
	return Action{}
}
