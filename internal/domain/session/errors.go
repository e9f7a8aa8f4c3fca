package session

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrUnknownVerbInSubmission marks a submission naming a verb the corpus
	// does not hold. The whole aggregation aborts: a partially graded
	// report would misstate the score.
	ErrUnknownVerbInSubmission = errors.New("submission references unknown verb")
)
