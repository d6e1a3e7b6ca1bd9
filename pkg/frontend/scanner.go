package frontend

import (
	"fmt"
	"strconv"
)

const (
	maxVarIDLength = 20
	maxFunIDLength = 30
)

// Scanner drives a Buffer through the DFA and emits one Token per call to
// Next. It never reaches past the file's end-of-file sentinel and never
// retracts across one, so a Scanner can safely be driven to exhaustion by
// calling Next until it returns a KindEOF token.
type Scanner struct {
	buf *Buffer
}

// NewScanner wraps a Buffer in a Scanner.
func NewScanner(buf *Buffer) *Scanner {
	return &Scanner{buf: buf}
}

// Next produces the next token from the source, skipping whitespace. A
// KindEOF token is returned once and may be requested repeatedly
// thereafter without side effects.
func (s *Scanner) Next() Token {
	for {
		s.buf.MarkLexemeStart()
		line := s.buf.Line()

		c, ok := s.buf.Next()
		if !ok {
			return Token{Kind: KindEOF, Line: line}
		}

		switch {
		case isWhitespace(c):
			continue
		case c == '%':
			return s.scanComment(line)
		case isLower(c):
			return s.scanWordFamily(line, c)
		case isDigit(c):
			return s.scanNumber(line)
		case c == '_':
			return s.scanFunID(line)
		case c == '#':
			return s.scanRUID(line)
		case c == '<':
			return s.scanLT(line)
		case c == '>':
			return s.scanGT(line)
		case c == '=':
			return s.scanEQ(line)
		case c == '!':
			return s.scanNE(line)
		case c == '&':
			return s.scanAnd(line)
		case c == '@':
			return s.scanOr(line)
		case c == '~':
			return s.single(KindNot, line)
		case c == '+':
			return s.single(KindPlus, line)
		case c == '-':
			return s.single(KindMinus, line)
		case c == '*':
			return s.single(KindMul, line)
		case c == '/':
			return s.single(KindDiv, line)
		case c == ',':
			return s.single(KindComma, line)
		case c == ';':
			return s.single(KindSemicolon, line)
		case c == ':':
			return s.single(KindColon, line)
		case c == '.':
			return s.single(KindDot, line)
		case c == '(':
			return s.single(KindParenOpen, line)
		case c == ')':
			return s.single(KindParenClose, line)
		case c == '[':
			return s.single(KindSquareOpen, line)
		case c == ']':
			return s.single(KindSquareClose, line)
		default:
			return s.lexError(ErrUnknownSingleSymbol, line, fmt.Sprintf("unknown symbol '%c'", c))
		}
	}
}

func (s *Scanner) single(k Kind, line int) Token {
	return Token{Kind: k, Lexeme: s.buf.Lexeme(), Line: line}
}

func (s *Scanner) lexError(kind ErrorKind, line int, msg string) Token {
	return Token{Kind: KindError, Lexeme: s.buf.Lexeme(), Line: line, ErrKind: kind, ErrMsg: msg}
}

func (s *Scanner) scanComment(line int) Token {
	for {
		c, ok := s.buf.Next()
		if !ok {
			break
		}
		if c == '\n' {
			s.buf.Retract(1)
			break
		}
	}
	return Token{Kind: KindComment, Lexeme: s.buf.Lexeme(), Line: line}
}

// scanWordFamily disambiguates the variable-id pattern (bd digit27 bd*
// digit27*) from a plain lowercase run (keyword or field-id). The
// mandatory bd+digit27 prefix must be fully consumed before the bd*/
// digit27* tail loops start, or a tail beginning with a bd letter is
// silently dropped.
func (s *Scanner) scanWordFamily(line int, c1 byte) Token {
	if isBD(c1) {
		c2, ok2 := s.buf.Next()
		if ok2 && isDigit27(c2) {
			return s.scanVariableIDTail(line)
		}
		if ok2 && !isLower(c2) {
			s.buf.Retract(1)
		}
	}
	return s.scanLowercaseRunTail(line)
}

func (s *Scanner) scanLowercaseRunTail(line int) Token {
	for {
		c, ok := s.buf.Next()
		if ok && isLower(c) {
			continue
		}
		if ok {
			s.buf.Retract(1)
		}
		break
	}
	lexeme := s.buf.Lexeme()
	if kind, isKeyword := keywordKind(lexeme); isKeyword {
		return Token{Kind: kind, Lexeme: lexeme, Line: line}
	}
	return Token{Kind: KindFieldID, Lexeme: lexeme, Line: line}
}

func (s *Scanner) scanVariableIDTail(line int) Token {
	for {
		c, ok := s.buf.Next()
		if ok && isBD(c) {
			continue
		}
		if ok {
			s.buf.Retract(1)
		}
		break
	}
	for {
		c, ok := s.buf.Next()
		if ok && isDigit27(c) {
			continue
		}
		if ok {
			s.buf.Retract(1)
		}
		break
	}
	lexeme := s.buf.Lexeme()
	if len(lexeme) > maxVarIDLength {
		return s.lexError(ErrVarIDTooLong, line, fmt.Sprintf("variable identifier %q exceeds %d characters", lexeme, maxVarIDLength))
	}
	return Token{Kind: KindID, Lexeme: lexeme, Line: line}
}

func (s *Scanner) scanFunID(line int) Token {
	letters := 0
	for {
		c, ok := s.buf.Next()
		if ok && isLetter(c) {
			letters++
			continue
		}
		if ok {
			s.buf.Retract(1)
		}
		break
	}
	if letters == 0 {
		return s.lexError(ErrUnknownSingleSymbol, line, "unexpected character '_'")
	}
	for {
		c, ok := s.buf.Next()
		if ok && isDigit(c) {
			continue
		}
		if ok {
			s.buf.Retract(1)
		}
		break
	}
	lexeme := s.buf.Lexeme()
	if lexeme == "_main" {
		return Token{Kind: KindMain, Lexeme: lexeme, Line: line}
	}
	if len(lexeme) > maxFunIDLength {
		return s.lexError(ErrFunIDTooLong, line, fmt.Sprintf("function identifier %q exceeds %d characters", lexeme, maxFunIDLength))
	}
	return Token{Kind: KindFunID, Lexeme: lexeme, Line: line}
}

func (s *Scanner) scanRUID(line int) Token {
	letters := 0
	for {
		c, ok := s.buf.Next()
		if ok && isLower(c) {
			letters++
			continue
		}
		if ok {
			s.buf.Retract(1)
		}
		break
	}
	if letters == 0 {
		return s.lexError(ErrUnknownSingleSymbol, line, "unexpected character '#'")
	}
	return Token{Kind: KindRUID, Lexeme: s.buf.Lexeme(), Line: line}
}

func (s *Scanner) scanNumber(line int) Token {
	for {
		c, ok := s.buf.Next()
		if ok && isDigit(c) {
			continue
		}
		if ok {
			s.buf.Retract(1)
		}
		break
	}

	dot, okDot := s.buf.Next()
	if !okDot || dot != '.' {
		if okDot {
			s.buf.Retract(1)
		}
		return s.intToken(line)
	}

	d1, ok1 := s.buf.Next()
	if !ok1 || !isDigit(d1) {
		if ok1 {
			s.buf.Retract(1)
		}
		return s.lexError(ErrUnknownMultiCharPattern, line, "real literal requires two fraction digits")
	}

	d2, ok2 := s.buf.Next()
	if !ok2 || !isDigit(d2) {
		if ok2 {
			s.buf.Retract(1)
		}
		return s.lexError(ErrUnknownMultiCharPattern, line, "real literal requires two fraction digits")
	}

	s.scanOptionalExponent()
	return s.realToken(line)
}

// scanOptionalExponent consumes E[+-]dd if it is present and complete. If
// the remainder does not complete, it retracts exactly the characters it
// looked at, leaving the buffer positioned right after the valid
// digit+.digit digit prefix so the caller can emit that as a real literal.
func (s *Scanner) scanOptionalExponent() bool {
	e, okE := s.buf.Next()
	if !okE || e != 'E' {
		if okE {
			s.buf.Retract(1)
		}
		return false
	}
	n := 1

	sign, okS := s.buf.Next()
	hasSign := okS && (sign == '+' || sign == '-')
	if okS {
		if hasSign {
			n++
		} else {
			s.buf.Retract(1)
		}
	}

	e1, okE1 := s.buf.Next()
	if okE1 {
		n++
	}
	if !okE1 || !isDigit(e1) {
		if okE1 {
			s.buf.Retract(1)
			n--
		}
		s.buf.Retract(n)
		return false
	}

	e2, okE2 := s.buf.Next()
	if okE2 {
		n++
	}
	if !okE2 || !isDigit(e2) {
		if okE2 {
			s.buf.Retract(1)
			n--
		}
		s.buf.Retract(n)
		return false
	}

	return true
}

func (s *Scanner) intToken(line int) Token {
	lexeme := s.buf.Lexeme()
	v, _ := strconv.ParseInt(lexeme, 10, 64)
	return Token{Kind: KindNum, Lexeme: lexeme, Line: line, HasValue: true, IntValue: v}
}

func (s *Scanner) realToken(line int) Token {
	lexeme := s.buf.Lexeme()
	v, _ := strconv.ParseFloat(lexeme, 64)
	return Token{Kind: KindRNum, Lexeme: lexeme, Line: line, HasValue: true, RealValue: v}
}

// scanLT disambiguates <, <=, <---, and the <-- error/retract cases. A
// bare "<-" not followed by a third '-' must retract twice so the '-'
// resurfaces as its own minus token on the next call.
func (s *Scanner) scanLT(line int) Token {
	c2, ok2 := s.buf.Next()
	if ok2 && c2 == '=' {
		return s.single(KindLE, line)
	}
	if !(ok2 && c2 == '-') {
		if ok2 {
			s.buf.Retract(1)
		}
		return s.single(KindLT, line)
	}

	c3, ok3 := s.buf.Next()
	if !(ok3 && c3 == '-') {
		retractN := 1
		if ok3 {
			retractN++
		}
		s.buf.Retract(retractN)
		return s.single(KindLT, line)
	}

	c4, ok4 := s.buf.Next()
	if ok4 && c4 == '-' {
		return s.single(KindAssignOp, line)
	}
	if ok4 {
		s.buf.Retract(1)
	}
	return s.lexError(ErrUnknownMultiCharPattern, line, fmt.Sprintf("unknown pattern %q", s.buf.Lexeme()))
}

func (s *Scanner) scanGT(line int) Token {
	c2, ok2 := s.buf.Next()
	if ok2 && c2 == '=' {
		return s.single(KindGE, line)
	}
	if ok2 {
		s.buf.Retract(1)
	}
	return s.single(KindGT, line)
}

func (s *Scanner) scanEQ(line int) Token {
	c2, ok2 := s.buf.Next()
	if ok2 && c2 == '=' {
		return s.single(KindEQ, line)
	}
	if ok2 {
		s.buf.Retract(1)
	}
	return s.lexError(ErrUnknownSingleSymbol, line, "unknown symbol '='")
}

func (s *Scanner) scanNE(line int) Token {
	c2, ok2 := s.buf.Next()
	if ok2 && c2 == '=' {
		return s.single(KindNE, line)
	}
	if ok2 {
		s.buf.Retract(1)
	}
	return s.lexError(ErrUnknownSingleSymbol, line, "unknown symbol '!'")
}

func (s *Scanner) scanAnd(line int) Token {
	c2, ok2 := s.buf.Next()
	if !(ok2 && c2 == '&') {
		if ok2 {
			s.buf.Retract(1)
		}
		return s.lexError(ErrUnknownSingleSymbol, line, "unknown symbol '&'")
	}
	c3, ok3 := s.buf.Next()
	if !(ok3 && c3 == '&') {
		if ok3 {
			s.buf.Retract(1)
		}
		return s.lexError(ErrUnknownMultiCharPattern, line, fmt.Sprintf("unknown pattern %q", s.buf.Lexeme()))
	}
	return s.single(KindAnd, line)
}

func (s *Scanner) scanOr(line int) Token {
	c2, ok2 := s.buf.Next()
	if !(ok2 && c2 == '@') {
		if ok2 {
			s.buf.Retract(1)
		}
		return s.lexError(ErrUnknownSingleSymbol, line, "unknown symbol '@'")
	}
	c3, ok3 := s.buf.Next()
	if !(ok3 && c3 == '@') {
		if ok3 {
			s.buf.Retract(1)
		}
		return s.lexError(ErrUnknownMultiCharPattern, line, fmt.Sprintf("unknown pattern %q", s.buf.Lexeme()))
	}
	return s.single(KindOr, line)
}
