// Package text screens proposal descriptions for natural language before any
// money moves. Spam, hex dumps and non-English posts score low and are not
// traded.
package text

import (
	_ "embed"
	"strings"
	"unicode"
)

//go:embed words.txt
var wordData string

var vocabulary = buildVocabulary(wordData)

const genuineThreshold = 0.5

func buildVocabulary(data string) map[string]struct{} {
	out := make(map[string]struct{}, 2048)
	for _, w := range strings.Fields(data) {
		out[strings.ToLower(w)] = struct{}{}
	}
	return out
}

// ValidityScore returns the proportion of tokens recognized as English
// words, in [0, 1]. Punctuation-only tokens are dropped before counting.
func ValidityScore(s string) float64 {
	tokens := tokenize(s)
	if len(tokens) == 0 {
		return 0
	}
	valid := 0
	for _, tok := range tokens {
		if _, ok := vocabulary[tok]; ok {
			valid++
		}
	}
	return float64(valid) / float64(len(tokens))
}

// Genuine reports whether more than half of the tokens are recognized words.
func Genuine(s string) bool {
	return ValidityScore(s) > genuineThreshold
}

func tokenize(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
