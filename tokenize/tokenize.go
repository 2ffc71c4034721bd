package tokenize

import (
	"regexp"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// tokenRe matches a run of word characters or a single non-space,
// non-word character.
var tokenRe = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]+|[^\s\p{L}\p{M}\p{N}_]`)

// Split tokenizes text into words and standalone punctuation marks.
// When keepCase is false the text is lower-cased before splitting.
func Split(text string, keepCase bool) []string {
	text = norm.NFC.String(text)
	if !keepCase {
		text = Lower(text)
	}
	return tokenRe.FindAllString(text, -1)
}

// lowerPool holds language-neutral lower-casing Casers. A Caser is stateful
// and must not be shared between goroutines.
var lowerPool = sync.Pool{
	New: func() any {
		c := cases.Lower(language.Und)
		return &c
	},
}

// Lower folds s to lower case using language-neutral rules. Strings with
// nothing to fold are returned as is. Safe for concurrent use.
func Lower(s string) string {
	if !needsLower(s) {
		return s
	}
	c := lowerPool.Get().(*cases.Caser)
	out := c.String(s)
	lowerPool.Put(c)
	return out
}

func needsLower(s string) bool {
	for _, r := range s {
		if r < 'A' {
			continue
		}
		if r <= 'Z' {
			return true
		}
		if r >= 0x80 && unicode.ToLower(r) != r {
			return true
		}
	}
	return false
}
