package services

import (
	"strings"
	"unicode"
)

var lineBreakReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Corrector flattens recognized text to a single line and repairs OCR
// misspellings against a language dictionary. For a fixed dictionary the
// output is deterministic, and running it over already-correct text is a
// no-op (beyond whitespace normalization).
type Corrector struct {
	dict Dictionary
}

func NewCorrector(dict Dictionary) *Corrector {
	return &Corrector{dict: dict}
}

// Correct collapses line breaks to spaces, then scans tokens in order and
// replaces every token unknown to the dictionary with its top-ranked
// candidate. Identical misspelled tokens get identical corrections. Only
// all-letter tokens are considered; numbers, dates and tokens carrying
// punctuation pass through untouched.
func (c *Corrector) Correct(raw string) string {
	flat := lineBreakReplacer.Replace(raw)
	tokens := strings.Fields(flat)

	for i, token := range tokens {
		if !isCorrectable(token) {
			continue
		}
		if c.dict.IsKnown(token) {
			continue
		}
		candidates := c.dict.Candidates(token)
		if len(candidates) == 0 {
			continue
		}
		tokens[i] = matchCase(candidates[0], token)
	}

	return strings.Join(tokens, " ")
}

// isCorrectable accepts tokens made only of letters, at least two runes
// long.
func isCorrectable(token string) bool {
	n := 0
	for _, r := range token {
		if !unicode.IsLetter(r) {
			return false
		}
		n++
	}
	return n >= 2
}

// matchCase shapes a lowercase candidate after the original token: all
// caps stays all caps, a leading capital is preserved.
func matchCase(candidate, original string) string {
	if original == strings.ToUpper(original) && strings.ToLower(original) != original {
		return strings.ToUpper(candidate)
	}
	first := []rune(original)[0]
	if unicode.IsUpper(first) {
		runes := []rune(candidate)
		runes[0] = unicode.ToUpper(runes[0])
		return string(runes)
	}
	return candidate
}
