package classify

import "github.com/ieee0824/codeswitch-go/tokenize"

// Token is one classified token. Tokens are never modified after Classify
// returns them.
type Token struct {
	Text     string
	Position int
	Kind     tokenize.Kind
	// Language is the decoded language tag, or the punctuation / numeral tag.
	Language string
	// NamedEntity is the merged NE label: the channel tags joined with the
	// separator when any channel fires, the outside tag otherwise.
	NamedEntity string
	// Channels holds each channel's raw tag, in channel order.
	Channels []string
	// Diagnostics is nil when not applicable (punctuation, numerals).
	Diagnostics *Diagnostics
}

// Diagnostics are the per-source log scores behind a language decision.
type Diagnostics struct {
	// Emission is the token's log probability under each primary language,
	// in Config.Primary order.
	Emission [2]float64
	// Transition is the log probability of moving from the previous
	// language-tagged token to this one.
	Transition float64
	// Combined is Transition plus the emission of the assigned language.
	Combined float64
}

// IsEntity reports whether the token was marked as a named entity by any
// channel, given the outside tag it was classified with.
func (t Token) IsEntity(outside string) bool {
	return t.NamedEntity != "" && t.NamedEntity != outside
}
