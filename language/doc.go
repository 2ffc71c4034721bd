// Package language implements smoothed character n-gram models, one per
// language, and a Bank that scores a token against every model.
//
// Each word is padded on both sides with order-1 Boundary runes so that the
// first and last characters of a word have their own contexts. Probabilities
// use additive (Laplace) smoothing with the alphabet size as the constant and
// are precomputed when the model is built; all scoring is done in natural log
// space.
package language
