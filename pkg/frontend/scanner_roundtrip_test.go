package frontend

import (
	"testing"

	"github.com/ShubhamX90/compiler-design/internal/test"
	"github.com/stretchr/testify/assert"
)

// TestScannerRoundTripsRandomValidLexemes drives the scanner over a
// generated, space-separated run of lexemes drawn from every recognised
// lexical category. Since every generated lexeme is independently valid
// and space-delimited, the scanner must reproduce exactly that many
// non-EOF tokens with zero lexical errors — a cheap way to sweep far more
// token-boundary combinations than a hand-written table can enumerate.
func TestScannerRoundTripsRandomValidLexemes(t *testing.T) {
	const size = 200
	src := test.GetRandomLexemes(size)

	toks := scanAll(t, src)
	assert.Equal(t, size+1, len(toks), "size lexemes plus the trailing EOF token")

	errCount := 0
	for _, tok := range toks {
		if tok.Kind == KindError {
			errCount++
			t.Logf("unexpected lexical error on generated input: %s", tok.ErrMsg)
		}
	}
	assert.Equal(t, 0, errCount, "every generated lexeme is drawn from a known-valid category")
}
