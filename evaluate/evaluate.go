// Package evaluate scores classifier output against a gold standard.
//
// Rows whose gold tag is a primary language count toward language accuracy,
// rows tagged with the named-entity tag count toward NE accuracy, and every
// other row (punctuation, numerals, unknown tags) is not applicable.
package evaluate

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ieee0824/codeswitch-go/classify"
	"github.com/ieee0824/codeswitch-go/gold"
)

// ErrUndefinedRatio is returned by Ratio.Value when nothing was counted.
var ErrUndefinedRatio = errors.New("undefined ratio: zero denominator")

// Ratio is a correct/total count pair.
type Ratio struct {
	Num int
	Den int
}

// Value returns Num/Den, or ErrUndefinedRatio when Den is zero.
func (r Ratio) Value() (float64, error) {
	if r.Den == 0 {
		return 0, ErrUndefinedRatio
	}
	return float64(r.Num) / float64(r.Den), nil
}

// String formats the ratio as a decimal, or "undefined".
func (r Ratio) String() string {
	v, err := r.Value()
	if err != nil {
		return "undefined"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Verdict is the per-token outcome.
type Verdict int

const (
	NotApplicable Verdict = iota
	Correct
	Incorrect
)

func (v Verdict) String() string {
	switch v {
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	default:
		return "not applicable"
	}
}

// Config names the tags evaluation keys on.
type Config struct {
	Primary        [2]string
	NamedEntityTag string
	Outside        string
}

// Entry is one evaluated token.
type Entry struct {
	Token       string
	Gold        string
	Language    string
	NamedEntity string
	Verdict     Verdict
}

// Report is the outcome of one evaluation.
type Report struct {
	Language    Ratio
	NamedEntity Ratio
	Entries     []Entry
}

// Evaluate compares tokens with rows position by position. The gold tags
// are expected to be alias-normalized already.
func Evaluate(rows []gold.Row, tokens []classify.Token, cfg Config) (*Report, error) {
	if len(rows) != len(tokens) {
		return nil, fmt.Errorf("evaluate: %d gold rows but %d classified tokens", len(rows), len(tokens))
	}
	outside := cfg.Outside
	if outside == "" {
		outside = "O"
	}
	rep := &Report{Entries: make([]Entry, len(rows))}
	for i, row := range rows {
		tok := tokens[i]
		e := Entry{
			Token:       row.Token,
			Gold:        row.Tag,
			Language:    tok.Language,
			NamedEntity: tok.NamedEntity,
		}
		switch {
		case row.Tag == cfg.Primary[0] || row.Tag == cfg.Primary[1]:
			rep.Language.Den++
			e.Verdict = Incorrect
			if tok.Language == row.Tag {
				rep.Language.Num++
				e.Verdict = Correct
			}
		case cfg.NamedEntityTag != "" && row.Tag == cfg.NamedEntityTag:
			rep.NamedEntity.Den++
			e.Verdict = Incorrect
			if tok.IsEntity(outside) {
				rep.NamedEntity.Num++
				e.Verdict = Correct
			}
		}
		rep.Entries[i] = e
	}
	return rep, nil
}
