package language

import "errors"

var (
	// ErrEmptyTrainingData is returned when a model is built from no words.
	ErrEmptyTrainingData = errors.New("empty training data")
	// ErrDuplicateLanguage is returned when two models in a bank share a tag.
	ErrDuplicateLanguage = errors.New("duplicate language")
	// ErrUnknownLanguage is returned when a bank has no model for a tag.
	ErrUnknownLanguage = errors.New("unknown language")
	// ErrInvalidModel is returned for out-of-range model parameters.
	ErrInvalidModel = errors.New("invalid model")
	// ErrMalformedModel is returned when a serialized model cannot be parsed.
	ErrMalformedModel = errors.New("malformed model file")
)
