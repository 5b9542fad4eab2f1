// Package nlp holds the small amount of text processing the KB linker needs:
// a tokenizer that keeps byte offsets, n-gram span enumeration and
// normalization of surface forms for alias lookup.
package nlp

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Letters and digits, with inner apostrophes, dots, commas and hyphens kept
// so "U.S.", "O'Neill" and "Saint-Étienne" stay single tokens.
var tokenRE = regexp.MustCompile(`[\p{L}\p{N}_]+(?:['’.,\-][\p{L}\p{N}_]+)*`)

// Token is a word and its byte range in the input.
type Token struct {
	Text  string
	Start int
	End   int
}

// Tokenize splits s into word tokens.
func Tokenize(s string) []string {
	matches := tokenRE.FindAllString(s, -1)
	return matches
}

// TokenizePos is Tokenize with byte offsets into s.
func TokenizePos(s string) []Token {
	locs := tokenRE.FindAllStringIndex(s, -1)
	tokens := make([]Token, 0, len(locs))
	for _, loc := range locs {
		tokens = append(tokens, Token{Text: s[loc[0]:loc[1]], Start: loc[0], End: loc[1]})
	}
	return tokens
}

// Normalize maps a surface form to its lookup key: NFC, case folded,
// curly apostrophes straightened and runs of whitespace collapsed.
func Normalize(s string) string {
	s = norm.NFC.String(s)
	s = strings.ReplaceAll(s, "’", "'")
	s = cases.Fold().String(s)
	return strings.Join(strings.Fields(s), " ")
}

// Key is the alias lookup form of a name: its normalized tokens joined by
// single spaces, so punctuation between words does not matter.
func Key(name string) string {
	return strings.Join(Tokenize(Normalize(name)), " ")
}

// JoinTokens renders a token run as a lookup key.
func JoinTokens(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.Text
	}
	return Key(strings.Join(parts, " "))
}
