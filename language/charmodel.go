package language

import (
	"fmt"
	"math"
)

// Boundary pads both ends of a word before it is cut into n-grams.
const Boundary = ' '

// CharModel is a smoothed character n-gram model for one language.
// It is immutable once returned by Build, Builder.Model or LoadModel and is
// safe for concurrent readers.
type CharModel struct {
	lang         string
	order        int
	alphabetSize int
	counts       map[string]map[rune]int // context -> next rune -> count
	totals       map[string]int          // context -> sum of counts
	probs        map[string]map[rune]float64
}

// Builder accumulates training words for a CharModel.
type Builder struct {
	lang         string
	order        int
	alphabetSize int
	words        int
	counts       map[string]map[rune]int
}

// NewBuilder creates a builder for a model of the given order and alphabet size.
func NewBuilder(lang string, order, alphabetSize int) (*Builder, error) {
	if order < 2 {
		return nil, fmt.Errorf("%w: order %d, must be at least 2", ErrInvalidModel, order)
	}
	if alphabetSize < 1 {
		return nil, fmt.Errorf("%w: alphabet size %d, must be positive", ErrInvalidModel, alphabetSize)
	}
	return &Builder{
		lang:         lang,
		order:        order,
		alphabetSize: alphabetSize,
		counts:       make(map[string]map[rune]int),
	}, nil
}

// AddWord counts every n-gram of word. Empty words are ignored.
func (b *Builder) AddWord(word string) {
	if word == "" {
		return
	}
	b.words++
	for _, g := range grams(word, b.order) {
		next, ok := b.counts[g.ctx]
		if !ok {
			next = make(map[rune]int)
			b.counts[g.ctx] = next
		}
		next[g.c]++
	}
}

// Words returns the number of non-empty words added so far.
func (b *Builder) Words() int {
	return b.words
}

// Model normalizes the accumulated counts into a CharModel.
// The builder must not be reused afterwards.
func (b *Builder) Model() (*CharModel, error) {
	if b.words == 0 {
		return nil, fmt.Errorf("build %s model: %w", b.lang, ErrEmptyTrainingData)
	}
	m := &CharModel{
		lang:         b.lang,
		order:        b.order,
		alphabetSize: b.alphabetSize,
		counts:       b.counts,
	}
	m.normalize()
	b.counts = nil
	return m, nil
}

// Build creates a model from a training word list.
func Build(lang string, words []string, order, alphabetSize int) (*CharModel, error) {
	b, err := NewBuilder(lang, order, alphabetSize)
	if err != nil {
		return nil, err
	}
	for _, w := range words {
		b.AddWord(w)
	}
	return b.Model()
}

// normalize fills totals and probs from counts.
// P(c|ctx) = (count(ctx,c) + 1) / (total(ctx) + A)
func (m *CharModel) normalize() {
	m.totals = make(map[string]int, len(m.counts))
	m.probs = make(map[string]map[rune]float64, len(m.counts))
	denomPad := float64(m.alphabetSize)
	for ctx, next := range m.counts {
		total := 0
		for _, c := range next {
			total += c
		}
		m.totals[ctx] = total
		p := make(map[rune]float64, len(next))
		for r, c := range next {
			p[r] = float64(c+1) / (float64(total) + denomPad)
		}
		m.probs[ctx] = p
	}
}

// Language returns the model's language tag.
func (m *CharModel) Language() string { return m.lang }

// Order returns the n-gram length.
func (m *CharModel) Order() int { return m.order }

// AlphabetSize returns the smoothing constant.
func (m *CharModel) AlphabetSize() int { return m.alphabetSize }

// Contexts returns the number of distinct contexts seen in training.
func (m *CharModel) Contexts() int { return len(m.counts) }

// Count returns the raw training count of c following ctx.
func (m *CharModel) Count(ctx string, c rune) int {
	return m.counts[ctx][c]
}

// NGramProb returns P(c | ctx). Unseen contexts and unseen successors
// get the uniform fallback 1/A.
func (m *CharModel) NGramProb(ctx string, c rune) float64 {
	if p, ok := m.probs[ctx][c]; ok {
		return p
	}
	return 1.0 / float64(m.alphabetSize)
}

// WordLogProb returns the natural-log probability of word: the sum of
// log P(c|ctx) over every padded n-gram.
func (m *CharModel) WordLogProb(word string) float64 {
	total := 0.0
	for _, g := range grams(word, m.order) {
		total += math.Log(m.NGramProb(g.ctx, g.c))
	}
	return total
}

// gram is one n-gram split into its n-1 rune context and final rune.
type gram struct {
	ctx string
	c   rune
}

// grams pads word with n-1 Boundary runes on each side and returns every
// overlapping n-gram.
func grams(word string, n int) []gram {
	runes := make([]rune, 0, len(word)+2*(n-1))
	for i := 0; i < n-1; i++ {
		runes = append(runes, Boundary)
	}
	runes = append(runes, []rune(word)...)
	for i := 0; i < n-1; i++ {
		runes = append(runes, Boundary)
	}
	out := make([]gram, 0, len(runes)-n+1)
	for i := 0; i+n <= len(runes); i++ {
		out = append(out, gram{ctx: string(runes[i : i+n-1]), c: runes[i+n-1]})
	}
	return out
}

// NGrams returns the padded n-grams of word as strings of n runes.
func NGrams(word string, n int) []string {
	gs := grams(word, n)
	out := make([]string, len(gs))
	for i, g := range gs {
		out[i] = g.ctx + string(g.c)
	}
	return out
}
