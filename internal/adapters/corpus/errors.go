package corpus

import "errors"

// Sentinel kinds for corpus errors.
var (
	// ErrLoad marks a missing, malformed or incomplete backing source.
	// It is fatal at first use: the service must not grade without a corpus.
	ErrLoad = errors.New("corpus load failed")

	// ErrUnknownVerb marks a lookup for an infinitive absent from the corpus.
	ErrUnknownVerb = errors.New("unknown verb")
)
