package tokenize

import "unicode"

// Kind is the coarse class of a token.
type Kind int

const (
	// Word is any token that is neither punctuation nor a numeral.
	Word Kind = iota
	// Punct is a token that starts with a non-word character and does not end in a letter.
	Punct
	// Numeral is a token made only of decimal digits.
	Numeral
)

func (k Kind) String() string {
	switch k {
	case Punct:
		return "punct"
	case Numeral:
		return "numeral"
	default:
		return "word"
	}
}

// KindOf classifies a token. Punctuation takes precedence over numerals.
func KindOf(token string) Kind {
	if IsPunct(token) {
		return Punct
	}
	if IsNumeral(token) {
		return Numeral
	}
	return Word
}

// IsPunct reports whether the token begins with a character that is neither a
// word character nor whitespace, and its final character is not alphabetic.
func IsPunct(token string) bool {
	runes := []rune(token)
	if len(runes) == 0 {
		return false
	}
	first := runes[0]
	if isWordRune(first) || unicode.IsSpace(first) {
		return false
	}
	return !unicode.IsLetter(runes[len(runes)-1])
}

// IsNumeral reports whether every character of a non-empty token is a digit.
func IsNumeral(token string) bool {
	if token == "" {
		return false
	}
	for _, r := range token {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsNumber(r)
}
