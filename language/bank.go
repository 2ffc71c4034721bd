package language

import (
	"fmt"

	"github.com/ieee0824/codeswitch-go/tokenize"
)

// Bank holds one CharModel per language tag. Tags keep their construction
// order, which decides ties in Guess.
type Bank struct {
	models map[string]*CharModel
	tags   []string
}

// NewBank creates a bank from at least two models with distinct tags.
func NewBank(models ...*CharModel) (*Bank, error) {
	if len(models) < 2 {
		return nil, fmt.Errorf("%w: bank needs at least 2 models, got %d", ErrInvalidModel, len(models))
	}
	b := &Bank{
		models: make(map[string]*CharModel, len(models)),
		tags:   make([]string, 0, len(models)),
	}
	for i, m := range models {
		if m == nil {
			return nil, fmt.Errorf("%w: model %d is nil", ErrInvalidModel, i)
		}
		if _, dup := b.models[m.lang]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateLanguage, m.lang)
		}
		b.models[m.lang] = m
		b.tags = append(b.tags, m.lang)
	}
	return b, nil
}

// Tags returns the language tags in construction order.
func (b *Bank) Tags() []string {
	out := make([]string, len(b.tags))
	copy(out, b.tags)
	return out
}

// Model returns the model for tag.
func (b *Bank) Model(tag string) (*CharModel, bool) {
	m, ok := b.models[tag]
	return m, ok
}

// Guess returns the tag whose model gives the lower-cased word the highest
// log probability. Equal scores resolve to the earliest constructed model.
func (b *Bank) Guess(word string) string {
	lower := tokenize.Lower(word)
	best := b.tags[0]
	bestScore := b.models[best].WordLogProb(lower)
	for _, tag := range b.tags[1:] {
		if s := b.models[tag].WordLogProb(lower); s > bestScore {
			best, bestScore = tag, s
		}
	}
	return best
}

// ScoreFor returns the log probability of the lower-cased word under tag's model.
func (b *Bank) ScoreFor(tag, word string) (float64, error) {
	m, ok := b.models[tag]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLanguage, tag)
	}
	return m.WordLogProb(tokenize.Lower(word)), nil
}

// Scores returns the log probability of word under every model, keyed by tag.
func (b *Bank) Scores(word string) map[string]float64 {
	lower := tokenize.Lower(word)
	out := make(map[string]float64, len(b.tags))
	for _, tag := range b.tags {
		out[tag] = b.models[tag].WordLogProb(lower)
	}
	return out
}
