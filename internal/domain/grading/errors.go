package grading

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrUnknownForm marks a grade request for a form outside the closed
	// set. This is a contract violation by the caller, not a wrong answer.
	ErrUnknownForm = errors.New("unknown form")
)
