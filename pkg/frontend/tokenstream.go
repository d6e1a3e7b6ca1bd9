package frontend

// Tokenizer produces a channel-driven stream of tokens. TokenStream is the
// default implementation; tests substitute a buffered mock that replays a
// fixed slice of tokens without touching a real Buffer.
type Tokenizer interface {
	// Do scans on the goroutine it is called from (callers run it with
	// go) and sends tokens to the channel returned by Chan, terminating
	// with exactly one KindEOF token.
	Do()

	// Chan returns the channel tokens are sent on.
	Chan() chan Token
}

// TokenStream drives a Scanner on a goroutine and publishes tokens on a
// channel, a producer/consumer split that keeps the parser pulling one
// meaningful token at a time.
type TokenStream struct {
	scanner *Scanner
	output  chan Token
}

// NewTokenStream wraps a Scanner for channel-based consumption.
func NewTokenStream(scanner *Scanner) *TokenStream {
	return &TokenStream{
		scanner: scanner,
		output:  make(chan Token, 4),
	}
}

// Chan returns the result channel.
func (t *TokenStream) Chan() chan Token {
	return t.output
}

// Do scans the full source on the calling goroutine's behalf, closing the
// channel once a KindEOF token has been sent.
func (t *TokenStream) Do() {
	for {
		tok := t.scanner.Next()
		t.output <- tok
		if tok.Kind == KindEOF {
			break
		}
	}
	close(t.output)
}

// Run scans synchronously and returns every token including comments and
// errors, the shape the token-listing menu option needs.
func (t *TokenStream) Run() []Token {
	go t.Do()

	var toks []Token
	for tok := range t.output {
		toks = append(toks, tok)
	}
	return toks
}
