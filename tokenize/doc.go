// Package tokenize splits raw text into word and punctuation tokens and
// classifies each token before any language or named-entity logic runs.
//
// Text is composed to Unicode NFC first so that precomposed and decomposed
// accents produce the same character n-grams. Case folding uses
// golang.org/x/text/cases rather than strings.ToLower so that training text
// and queried tokens are folded with identical rules.
package tokenize
