package frontend

import (
	"testing"

	"github.com/openconfig/gnmi/errdiff"
	"github.com/stretchr/testify/assert"
)

func scanOne(t *testing.T, src string) Token {
	t.Helper()
	path := writeTempSource(t, src)
	buf, err := NewBuffer(path)
	assert.NoError(t, err)
	defer buf.Close()
	return NewScanner(buf).Next()
}

func scanAll(t *testing.T, src string) []Token {
	t.Helper()
	path := writeTempSource(t, src)
	buf, err := NewBuffer(path)
	assert.NoError(t, err)
	defer buf.Close()

	s := NewScanner(buf)
	var toks []Token
	for {
		tok := s.Next()
		toks = append(toks, tok)
		if tok.Kind == KindEOF {
			return toks
		}
	}
}

func TestScannerKeywordsAndFieldID(t *testing.T) {
	cases := []struct {
		src  string
		kind Kind
	}{
		{"while", KindWhile},
		{"endrecord", KindEndRecord},
		{"definetype", KindDefineType},
		{"lowerword", KindFieldID}, // not in the 27-entry keyword table
	}
	for _, c := range cases {
		tok := scanOne(t, c.src)
		assert.Equal(t, c.kind, tok.Kind, c.src)
		assert.Equal(t, c.src, tok.Lexeme)
		assert.Equal(t, 1, tok.Line)
	}
}

func TestScannerVariableID(t *testing.T) {
	// bd digit27 bd* digit27*
	tok := scanOne(t, "b2")
	assert.Equal(t, KindID, tok.Kind)
	assert.Equal(t, "b2", tok.Lexeme)

	tok = scanOne(t, "d5cc34")
	assert.Equal(t, KindID, tok.Kind)
	assert.Equal(t, "d5cc34", tok.Lexeme, "identifier bug regression: tail starting with a bd letter must not be dropped")
}

func TestScannerVariableIDTooLong(t *testing.T) {
	// Mandatory "bd digit27" prefix, then a long bd* run, then a long
	// digit27* run: 2 + 15 + 10 = 27 characters, over the 20-char limit.
	over := "b2" + stringOfLen('b', 15) + stringOfLen('2', 10)
	tok := scanOne(t, over)
	assert.Equal(t, KindError, tok.Kind)
	assert.Equal(t, ErrVarIDTooLong, tok.ErrKind)
}

func TestScannerFunctionID(t *testing.T) {
	tok := scanOne(t, "_main")
	assert.Equal(t, KindMain, tok.Kind)

	tok = scanOne(t, "_fnOne12")
	assert.Equal(t, KindFunID, tok.Kind)
	assert.Equal(t, "_fnOne12", tok.Lexeme)

	long := "_" + stringOfLen('a', 31)
	tok = scanOne(t, long)
	assert.Equal(t, KindError, tok.Kind)
	assert.Equal(t, ErrFunIDTooLong, tok.ErrKind)
}

func stringOfLen(c byte, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = c
	}
	return string(b)
}

func TestScannerRecordUnionID(t *testing.T) {
	tok := scanOne(t, "#myrecord")
	assert.Equal(t, KindRUID, tok.Kind)
	assert.Equal(t, "#myrecord", tok.Lexeme)
}

func TestScannerIntegerLiteral(t *testing.T) {
	tok := scanOne(t, "42")
	assert.Equal(t, KindNum, tok.Kind)
	assert.True(t, tok.HasValue)
	assert.Equal(t, int64(42), tok.IntValue)
}

func TestScannerRealLiteral(t *testing.T) {
	tok := scanOne(t, "45.67")
	assert.Equal(t, KindRNum, tok.Kind)
	assert.True(t, tok.HasValue)
	assert.InDelta(t, 45.67, tok.RealValue, 1e-9)

	tok = scanOne(t, "45.67E12")
	assert.Equal(t, KindRNum, tok.Kind)
	assert.InDelta(t, 45.67e12, tok.RealValue, 1e6)

	tok = scanOne(t, "45.67E+12")
	assert.Equal(t, KindRNum, tok.Kind)

	tok = scanOne(t, "45.67E-12")
	assert.Equal(t, KindRNum, tok.Kind)
}

func TestScannerRealLiteralErrors(t *testing.T) {
	// Exactly one fraction digit is an error.
	tok := scanOne(t, "23.4")
	assert.Equal(t, KindError, tok.Kind)
	assert.Equal(t, ErrUnknownMultiCharPattern, tok.ErrKind)

	// Trailing dot with no digits.
	toks := scanAll(t, "23.")
	assert.Equal(t, KindError, toks[0].Kind)
	assert.Equal(t, "23.", toks[0].Lexeme)
	assert.Equal(t, KindEOF, toks[1].Kind, "the scanner must report EOF on the next call, not loop")
}

func TestScannerRealLiteralIncompleteExponentRetracts(t *testing.T) {
	// "E" with no digits following: retract back to the valid digit+.dd
	// prefix and emit that as a real literal, leaving "Ex" unconsumed for
	// the next call (which will report 'E' as an unknown symbol, since
	// the scanner's word-family case only matches lowercase letters).
	toks := scanAll(t, "12.34Ex")
	assert.Equal(t, KindRNum, toks[0].Kind)
	assert.Equal(t, "12.34", toks[0].Lexeme)
}

func TestScannerAssignmentAndRetraction(t *testing.T) {
	toks := scanAll(t, "<---")
	assert.Equal(t, KindAssignOp, toks[0].Kind)
	assert.Equal(t, "<---", toks[0].Lexeme)
	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, KindEOF, toks[1].Kind)

	toks = scanAll(t, "<-")
	assert.Equal(t, KindLT, toks[0].Kind)
	assert.Equal(t, "<", toks[0].Lexeme)
	assert.Equal(t, KindMinus, toks[1].Kind)
	assert.Equal(t, "-", toks[1].Lexeme)
	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 1, toks[1].Line)

	tok := scanOne(t, "<--x")
	assert.Equal(t, KindError, tok.Kind)
	assert.Equal(t, ErrUnknownMultiCharPattern, tok.ErrKind)
}

func TestScannerRelationalOperators(t *testing.T) {
	cases := map[string]Kind{
		"<": KindLT, "<=": KindLE, ">": KindGT, ">=": KindGE,
		"==": KindEQ, "!=": KindNE,
	}
	for src, kind := range cases {
		tok := scanOne(t, src)
		assert.Equal(t, kind, tok.Kind, src)
	}

	tok := scanOne(t, "=x")
	assert.Equal(t, KindError, tok.Kind)
	assert.Equal(t, ErrUnknownSingleSymbol, tok.ErrKind)

	tok = scanOne(t, "!x")
	assert.Equal(t, KindError, tok.Kind)
	assert.Equal(t, ErrUnknownSingleSymbol, tok.ErrKind)
}

func TestScannerLogicalOperators(t *testing.T) {
	tok := scanOne(t, "&&&")
	assert.Equal(t, KindAnd, tok.Kind)

	tok = scanOne(t, "@@@")
	assert.Equal(t, KindOr, tok.Kind)

	tok = scanOne(t, "&x")
	assert.Equal(t, KindError, tok.Kind)
	assert.Equal(t, ErrUnknownSingleSymbol, tok.ErrKind)

	tok = scanOne(t, "&&x")
	assert.Equal(t, KindError, tok.Kind)
	assert.Equal(t, ErrUnknownMultiCharPattern, tok.ErrKind)

	tok = scanOne(t, "@x")
	assert.Equal(t, KindError, tok.Kind)
	assert.Equal(t, ErrUnknownSingleSymbol, tok.ErrKind)

	tok = scanOne(t, "@@x")
	assert.Equal(t, KindError, tok.Kind)
	assert.Equal(t, ErrUnknownMultiCharPattern, tok.ErrKind)
}

func TestScannerSingleCharacterTokens(t *testing.T) {
	cases := map[string]Kind{
		"~": KindNot, "+": KindPlus, "-": KindMinus, "*": KindMul,
		"/": KindDiv, ",": KindComma, ";": KindSemicolon, ":": KindColon,
		".": KindDot, "(": KindParenOpen, ")": KindParenClose,
		"[": KindSquareOpen, "]": KindSquareClose,
	}
	for src, kind := range cases {
		tok := scanOne(t, src)
		assert.Equal(t, kind, tok.Kind, src)
	}
}

func TestScannerCommentAndWhitespace(t *testing.T) {
	toks := scanAll(t, "  % a comment\nwhile")
	assert.Equal(t, KindComment, toks[0].Kind)
	assert.Equal(t, KindWhile, toks[1].Kind, "whitespace is consumed, not tokenized")
	assert.Equal(t, 2, toks[1].Line)
}

func TestScannerUnknownSingleSymbol(t *testing.T) {
	tok := scanOne(t, "$")
	assert.Equal(t, KindError, tok.Kind)
	assert.Equal(t, ErrUnknownSingleSymbol, tok.ErrKind)
	if diff := errdiff.Substring(assertErr(tok), "unknown symbol"); diff != "" {
		t.Error(diff)
	}
}

// assertErr adapts an error-carrying Token into a plain error for
// errdiff, which only understands the standard error interface.
func assertErr(tok Token) error {
	if tok.Kind != KindError {
		return nil
	}
	return errString(tok.ErrMsg)
}

type errString string

func (e errString) Error() string { return string(e) }

func TestScannerEOFDoesNotLoopOnTrailingWhitespace(t *testing.T) {
	toks := scanAll(t, "while   \t\n  ")
	assert.Equal(t, KindWhile, toks[0].Kind)
	assert.Equal(t, KindEOF, toks[1].Kind)
	assert.Len(t, toks, 2, "trailing whitespace before EOF must not produce extra tokens or hang")
}
