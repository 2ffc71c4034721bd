// Package classify produces the final per-token annotation of a document.
//
// A Classifier runs the Viterbi decoder over the whole token sequence, then
// walks the tokens in order: punctuation and numerals override the decoded
// language, every non-punctuation token is looked up in each named-entity
// channel, and tokens tagged with a primary language receive emission,
// transition and combined diagnostic scores.
package classify
