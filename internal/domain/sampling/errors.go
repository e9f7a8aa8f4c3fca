package sampling

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrInvalidCount marks a draw request for zero or fewer verbs.
	ErrInvalidCount = errors.New("invalid verb count")

	// ErrNotEnoughVerbs marks a draw request larger than the corpus.
	// Oversized requests are rejected, never clamped.
	ErrNotEnoughVerbs = errors.New("not enough verbs in corpus")
)
