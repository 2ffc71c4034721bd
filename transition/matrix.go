// Package transition estimates language-switch probabilities between
// adjacent tokens from a gold-standard tag sequence.
package transition

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ieee0824/codeswitch-go/internal/mathutil"
)

// ErrInsufficientData is returned when the gold sequence has fewer than two tags.
var ErrInsufficientData = errors.New("insufficient data: need at least 2 gold tags")

// Normalization selects how pair counts become probabilities.
type Normalization int

const (
	// Joint divides each pair count by the total number of pairs.
	Joint Normalization = iota
	// Conditional divides each pair count by the number of pairs leaving the
	// same source tag, so every observed row sums to 1.
	Conditional
)

func (n Normalization) String() string {
	if n == Conditional {
		return "conditional"
	}
	return "joint"
}

// ParseNormalization parses "joint" or "conditional" (case-insensitive).
func ParseNormalization(s string) (Normalization, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "joint":
		return Joint, nil
	case "conditional":
		return Conditional, nil
	default:
		return Joint, fmt.Errorf("unknown transition normalization %q", s)
	}
}

// Matrix holds log P(src -> dst) for a fixed tag set. Pairs never seen in the
// gold data are absent and report LogZero. A Matrix is immutable.
type Matrix struct {
	tags   []string
	index  map[string]int
	counts [][]int
	logp   mathutil.Mat
	norm   Normalization
	pairs  int
}

// Option configures Build.
type Option func(*Matrix)

// WithNormalization selects the normalization mode. The default is Joint.
func WithNormalization(n Normalization) Option {
	return func(m *Matrix) {
		m.norm = n
	}
}

// Build counts adjacent tag pairs in gold and converts them to log
// probabilities. Pairs involving a tag outside tags are not counted.
func Build(gold []string, tags []string, opts ...Option) (*Matrix, error) {
	if len(gold) < 2 {
		return nil, fmt.Errorf("build transition matrix from %d tags: %w", len(gold), ErrInsufficientData)
	}
	if len(tags) == 0 {
		return nil, errors.New("build transition matrix: empty tag set")
	}

	m := &Matrix{
		tags:  append([]string(nil), tags...),
		index: make(map[string]int, len(tags)),
	}
	for i, tag := range tags {
		if _, dup := m.index[tag]; dup {
			return nil, fmt.Errorf("build transition matrix: duplicate tag %q", tag)
		}
		m.index[tag] = i
	}
	for _, opt := range opts {
		opt(m)
	}

	T := len(tags)
	m.counts = make([][]int, T)
	for i := range m.counts {
		m.counts[i] = make([]int, T)
	}
	for k := 0; k+1 < len(gold); k++ {
		i, okI := m.index[gold[k]]
		j, okJ := m.index[gold[k+1]]
		if !okI || !okJ {
			continue
		}
		m.counts[i][j]++
		m.pairs++
	}

	m.logp = mathutil.NewMatFill(T, T, mathutil.LogZero)
	for i := 0; i < T; i++ {
		rowTotal := 0
		for j := 0; j < T; j++ {
			rowTotal += m.counts[i][j]
		}
		for j := 0; j < T; j++ {
			c := m.counts[i][j]
			if c == 0 {
				continue
			}
			denom := m.pairs
			if m.norm == Conditional {
				denom = rowTotal
			}
			m.logp[i][j] = math.Log(float64(c) / float64(denom))
		}
	}
	return m, nil
}

// LogProb returns log P(src -> dst), or LogZero for an unobserved pair or unknown tag.
func (m *Matrix) LogProb(src, dst string) float64 {
	i, okI := m.index[src]
	j, okJ := m.index[dst]
	if !okI || !okJ {
		return mathutil.LogZero
	}
	return m.logp[i][j]
}

// Has reports whether the pair was observed in the gold data.
func (m *Matrix) Has(src, dst string) bool {
	return m.Count(src, dst) > 0
}

// Count returns the raw number of src -> dst pairs.
func (m *Matrix) Count(src, dst string) int {
	i, okI := m.index[src]
	j, okJ := m.index[dst]
	if !okI || !okJ {
		return 0
	}
	return m.counts[i][j]
}

// Row returns the observed destinations of src with their log probabilities.
func (m *Matrix) Row(src string) map[string]float64 {
	i, ok := m.index[src]
	if !ok {
		return nil
	}
	row := make(map[string]float64)
	for j, tag := range m.tags {
		if m.counts[i][j] > 0 {
			row[tag] = m.logp[i][j]
		}
	}
	return row
}

// Dense returns a copy of the T x T log-probability matrix in tag order.
func (m *Matrix) Dense() mathutil.Mat {
	T := len(m.tags)
	out := mathutil.NewMat(T, T)
	for i := range out {
		copy(out[i], m.logp[i])
	}
	return out
}

// Tags returns the tag order used by Dense.
func (m *Matrix) Tags() []string {
	return append([]string(nil), m.tags...)
}

// Index returns the position of tag in Tags.
func (m *Matrix) Index(tag string) (int, bool) {
	i, ok := m.index[tag]
	return i, ok
}

// Pairs returns the number of counted adjacent pairs.
func (m *Matrix) Pairs() int { return m.pairs }

// Normalization returns the mode the matrix was built with.
func (m *Matrix) Normalization() Normalization { return m.norm }
