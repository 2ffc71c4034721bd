// Package decoder finds the most likely language-tag sequence for a token
// sequence with the Viterbi algorithm, combining per-token emission scores
// with tag-to-tag transition probabilities.
package decoder

import (
	"errors"
	"fmt"
	"math"

	"github.com/ieee0824/codeswitch-go/internal/mathutil"
	"github.com/ieee0824/codeswitch-go/transition"
)

// ErrEmptyInput is returned when Decode is given no tokens.
var ErrEmptyInput = errors.New("empty input: no tokens to decode")

// Emitter scores a word under a language tag in natural log space.
// *language.Bank satisfies it.
type Emitter interface {
	ScoreFor(tag, word string) (float64, error)
}

// Decode returns the maximum-likelihood tag sequence for words. States are
// the tags of tm in order; the initial state distribution is uniform.
//
// Ties between predecessors, and between final states, go to the lowest tag
// index. Unobserved transitions are LogZero and are only chosen when every
// predecessor is equally impossible.
func Decode(words []string, em Emitter, tm *transition.Matrix) (*Result, error) {
	L := len(words)
	if L == 0 {
		return nil, ErrEmptyInput
	}
	tags := tm.Tags()
	T := len(tags)
	trans := tm.Dense()

	// Pre-compute emission log-likelihoods
	emit := mathutil.NewMat(L, T)
	for k, w := range words {
		for j, tag := range tags {
			s, err := em.ScoreFor(tag, w)
			if err != nil {
				return nil, fmt.Errorf("emission for token %d (%q) under %s: %w", k, w, tag, err)
			}
			emit[k][j] = s
		}
	}

	lat := newLattice(L, T)
	prior := math.Log(1.0 / float64(T))
	for j := 0; j < T; j++ {
		lat.score[0][j] = prior + emit[0][j]
	}

	for k := 1; k < L; k++ {
		prev := lat.score[k-1]
		for j := 0; j < T; j++ {
			best := mathutil.LogZero
			bestPrev := 0
			for i := 0; i < T; i++ {
				if s := prev[i] + trans[i][j]; s > best {
					best = s
					bestPrev = i
				}
			}
			lat.back[k][j] = int32(bestPrev)
			if mathutil.IsLogZero(best) {
				continue
			}
			lat.score[k][j] = best + emit[k][j]
		}
	}

	end := mathutil.ArgMax(lat.score[L-1])
	states := lat.retrace(end)
	out := make([]string, L)
	for k, s := range states {
		out[k] = tags[s]
	}
	return &Result{
		Tags:     out,
		States:   states,
		LogScore: lat.score[L-1][end],
	}, nil
}
