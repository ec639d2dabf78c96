// Package textproc provides token normalization and filtering shared by
// the corpus assemblers and the vocabulary indexer.
//
// Two kinds of text pass through here. Raw abstract text from the
// archive is lowercased and split into maximal runs of word characters
// plus internal hyphens; no filtering is applied at that point. Standard
// corpus lines are already tokenized, and their tokens are filtered:
// stopwords first, then hyphen rules, the numeric pattern, and the
// minimum length.
package textproc

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// numericPattern matches tokens that are numbers: optional sign, digits
// with periods or commas, optional trailing percent sign. Abstracts
// contain lots of measurements; these never make useful topic words.
var numericPattern = regexp.MustCompile(`^[+-]?[0-9.,]+%?$`)

// wordRun extracts maximal runs of Unicode word characters plus
// internal hyphens from raw text.
var wordRun = regexp.MustCompile(`[\p{L}\p{N}_-]+`)

// TokenizeRaw lowercases and strips raw abstract text and splits it
// into tokens. Filtering is deferred to consumers of the resulting
// corpus line.
func TokenizeRaw(text string) []string {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return nil
	}
	return wordRun.FindAllString(text, -1)
}

// Accept reports whether a corpus-line token survives all five filters:
// not a stopword, no embedded double hyphen, no leading hyphen, not
// numeric, and at least minLen runes long.
func Accept(tok string, stop StopwordSet, minLen int) bool {
	if stop.Contains(tok) {
		return false
	}
	if strings.Contains(tok, "--") {
		return false
	}
	if strings.HasPrefix(tok, "-") {
		return false
	}
	if numericPattern.MatchString(tok) {
		return false
	}
	if utf8.RuneCountInString(tok) < minLen {
		return false
	}
	return true
}

// Filter returns the tokens of a corpus line that pass Accept, in their
// original order.
func Filter(tokens []string, stop StopwordSet, minLen int) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if Accept(tok, stop, minLen) {
			out = append(out, tok)
		}
	}
	return out
}
