package search

import (
	"strings"
	"unicode"
)

// Words too common to count toward a verbatim match.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "be": {}, "is": {}, "are": {}, "was": {},
	"to": {}, "of": {}, "and": {}, "in": {}, "that": {}, "have": {}, "it": {},
	"for": {}, "not": {}, "on": {}, "with": {}, "as": {}, "you": {}, "do": {},
	"at": {}, "this": {}, "but": {}, "by": {}, "from": {}, "what": {}, "how": {},
}

// keywords lowercases text and splits it on anything that is not a letter,
// digit or '$', dropping stop words.
func keywords(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '$'
	})

	out := fields[:0]
	for _, f := range fields {
		if _, stop := stopWords[f]; !stop {
			out = append(out, f)
		}
	}
	return out
}

// containsAll reports whether every query keyword occurs in the document.
// A query with no keywords never matches.
func containsAll(document string, query []string) bool {
	if len(query) == 0 {
		return false
	}

	words := make(map[string]struct{})
	for _, w := range keywords(document) {
		words[w] = struct{}{}
	}
	for _, q := range query {
		if _, ok := words[q]; !ok {
			return false
		}
	}
	return true
}
