// Package ner abstracts the external named-entity recognizers used by the
// classifier. Each language channel has its own Provider; the classifier only
// depends on the Provider capability, never on a concrete tagger.
package ner

import "context"

// Outside is the tag meaning "not a named entity".
const Outside = "O"

// Pair is one token and the tag a provider assigned to it.
type Pair struct {
	Token string
	Tag   string
}

// Provider tags an ordered batch of tokens. Implementations must return one
// pair per input token, in input order.
type Provider interface {
	Tag(ctx context.Context, tokens []string) ([]Pair, error)
}

// Func adapts an ordinary function to Provider.
type Func func(ctx context.Context, tokens []string) ([]Pair, error)

// Tag calls f.
func (f Func) Tag(ctx context.Context, tokens []string) ([]Pair, error) {
	return f(ctx, tokens)
}

// Nop tags every token Outside.
type Nop struct{}

// Tag returns Outside for every token.
func (Nop) Tag(_ context.Context, tokens []string) ([]Pair, error) {
	out := make([]Pair, len(tokens))
	for i, tok := range tokens {
		out[i] = Pair{Token: tok, Tag: Outside}
	}
	return out, nil
}

// Channel binds a provider to the language whose recognizer it wraps.
type Channel struct {
	Language string
	Provider Provider
}
