package frontend

// keywordTable holds all 27 reserved words as a flat, reviewable list
// rather than building it programmatically from the Kind constants.
var keywordTable = map[string]Kind{
	"with":       KindWith,
	"parameters": KindParameters,
	"end":        KindEnd,
	"while":      KindWhile,
	"union":      KindUnion,
	"endunion":   KindEndUnion,
	"definetype": KindDefineType,
	"as":         KindAs,
	"type":       KindType,
	"global":     KindGlobal,
	"parameter":  KindParameter,
	"list":       KindList,
	"input":      KindInput,
	"output":     KindOutput,
	"int":        KindInt,
	"real":       KindReal,
	"endwhile":   KindEndWhile,
	"if":         KindIf,
	"then":       KindThen,
	"endif":      KindEndIf,
	"read":       KindRead,
	"write":      KindWrite,
	"return":     KindReturn,
	"call":       KindCall,
	"record":     KindRecord,
	"endrecord":  KindEndRecord,
	"else":       KindElse,
}

func keywordKind(word string) (Kind, bool) {
	k, ok := keywordTable[word]
	return k, ok
}

func isDigit(c byte) bool      { return c >= '0' && c <= '9' }
func isDigit27(c byte) bool    { return c >= '2' && c <= '7' }
func isLower(c byte) bool      { return c >= 'a' && c <= 'z' }
func isLetter(c byte) bool     { return isLower(c) || (c >= 'A' && c <= 'Z') }
func isBD(c byte) bool         { return c == 'b' || c == 'c' || c == 'd' }
func isWhitespace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }
