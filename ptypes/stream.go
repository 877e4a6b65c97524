package ptypes

// TokenStream is a stream of tokens read from source text, consumed by the
// LR and LL interpreters one token at a time.
type TokenStream interface {
	// Next returns the next token and advances the stream.
	Next() Token

	// Peek returns the next token without advancing the stream.
	Peek() Token

	// HasNext returns whether the stream has more tokens to give; once the
	// end-of-text token has been returned by Next, HasNext returns false.
	HasNext() bool
}

// SliceStream adapts a pre-lexed slice of tokens into a TokenStream, so
// tokens can be replayed without re-running the tokenizer.
type SliceStream struct {
	toks []Token
	pos  int
}

// NewSliceStream returns a TokenStream over the given tokens. If the last
// token is not of class TokenEndOfText, one is appended.
func NewSliceStream(toks []Token) *SliceStream {
	if len(toks) == 0 || !toks[len(toks)-1].Class().Equal(TokenEndOfText) {
		toks = append(toks, NewToken(TokenEndOfText, "", 0, 0, 0, ""))
	}
	return &SliceStream{toks: toks}
}

func (s *SliceStream) Next() Token {
	t := s.Peek()
	if s.pos < len(s.toks)-1 {
		s.pos++
	}
	return t
}

func (s *SliceStream) Peek() Token {
	return s.toks[s.pos]
}

func (s *SliceStream) HasNext() bool {
	return s.pos < len(s.toks)-1
}
