// Package test holds shared generators used by scanner and parser tests
// across the frontend package.
package test

import (
	"math/rand"
	"strings"
)

// validLexemes holds every keyword plus example lexemes for each other
// token category the scanner recognises (comments excepted), used to build
// random-but-valid source snippets for
// benchmarks and fuzz-style round-trip tests.
var validLexemes = []string{
	"with", "parameters", "end", "while", "union", "endunion",
	"definetype", "as", "type", "_main", "global", "parameter", "list",
	"input", "output", "int", "real", "endwhile", "if", "then", "endif",
	"read", "write", "return", "call", "record", "endrecord", "else",
	"d5cc34", "b27", "#myrecord", "_fnOne12", "123", "45.67", "45.67E12",
	"<---", "<", "+", "-", "*", "/", "&&&", "@@@", "~", "<=", ">=", "==",
	"!=", "<", ">", ",", ";", ":", ".", "(", ")", "[", "]", "lowerword",
}

// GetRandomLexemes returns size space-separated lexemes drawn from the
// scanner's valid categories.
func GetRandomLexemes(size int) string {
	return GetRandomLexemesWithSep(size, " ")
}

// GetRandomLexemesWithSep is GetRandomLexemes with a custom separator.
func GetRandomLexemesWithSep(size int, sep string) string {
	var toks []string
	for len(toks) < size {
		toks = append(toks, validLexemes[rand.Intn(len(validLexemes))])
	}
	return strings.Join(toks, sep)
}
