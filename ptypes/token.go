package ptypes

import "fmt"

// Token is a lexeme read from source text, tagged with the TokenClass it
// was lexed as and the location data needed for error reporting.
type Token interface {
	Class() TokenClass
	Lexeme() string

	// Offset is the 0-based byte offset of the first byte of the lexeme in
	// the source text.
	Offset() int

	// Line is the 1-based line number the token starts on.
	Line() int

	// LinePos is the 0-based column the token starts on within Line.
	LinePos() int

	// FullLine is the complete source text of the line the token starts on.
	FullLine() string

	String() string
}

// NewToken constructs a Token with the given class, lexeme, and location.
func NewToken(class TokenClass, lexeme string, offset, line, linePos int, fullLine string) Token {
	return simpleToken{
		class:    class,
		lexeme:   lexeme,
		offset:   offset,
		line:     line,
		linePos:  linePos,
		fullLine: fullLine,
	}
}

type simpleToken struct {
	class    TokenClass
	lexeme   string
	offset   int
	line     int
	linePos  int
	fullLine string
}

func (t simpleToken) Class() TokenClass { return t.class }
func (t simpleToken) Lexeme() string    { return t.lexeme }
func (t simpleToken) Offset() int       { return t.offset }
func (t simpleToken) Line() int         { return t.line }
func (t simpleToken) LinePos() int      { return t.linePos }
func (t simpleToken) FullLine() string  { return t.fullLine }

func (t simpleToken) String() string {
	return fmt.Sprintf("(%s %q @ %d:%d)", t.class.ID(), t.lexeme, t.line, t.linePos)
}
