package decoder

// Result holds the decoded tag sequence.
type Result struct {
	Tags     []string // one language tag per input token
	States   []int    // tag indices into the transition matrix's tag order
	LogScore float64  // cumulative log score of the best path
}
