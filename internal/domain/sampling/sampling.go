// Package sampling draws random duplicate-free verb subsets for quiz
// sessions.
//
// Selection is uniform without replacement: a partial Fisher-Yates shuffle
// over the corpus snapshot, so a draw can never repeat a verb. The order
// verbs come out of the shuffle is the presentation order; it is not
// re-sorted, so consecutive sessions look different even for overlapping
// draws.
package sampling

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/okian/starkverb/internal/domain/model"
)

// Corpus abstracts the verb snapshot the sampler draws from.
type Corpus interface {
	All() ([]model.VerbEntry, error)
}

// Option applies a configuration option to the Sampler.
type Option func(*Sampler)

// WithSeed fixes the random source, making draws deterministic.
func WithSeed(seed int64) Option {
	return func(s *Sampler) {
		s.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // quiz selection needs no crypto randomness
	}
}

// Sampler draws random verb subsets from a corpus.
type Sampler struct {
	corpus Corpus

	mu  sync.Mutex // rand.Rand is not safe for concurrent use
	rng *rand.Rand
}

// New creates a Sampler over corpus with a time-seeded random source.
func New(corpus Corpus, opts ...Option) *Sampler {
	s := &Sampler{
		corpus: corpus,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // quiz selection needs no crypto randomness
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Draw returns n distinct verbs chosen uniformly from the corpus, in draw
// order. It fails with ErrInvalidCount for n <= 0 and ErrNotEnoughVerbs
// when the corpus holds fewer than n verbs.
func (s *Sampler) Draw(_ context.Context, n int) ([]model.VerbEntry, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, n)
	}

	all, err := s.corpus.All()
	if err != nil {
		return nil, err
	}
	if n > len(all) {
		return nil, fmt.Errorf("%w: requested %d, have %d", ErrNotEnoughVerbs, n, len(all))
	}

	// Partial Fisher-Yates over an index permutation; the snapshot itself
	// is shared with other readers and must stay untouched.
	idx := make([]int, len(all))
	for i := range idx {
		idx[i] = i
	}

	s.mu.Lock()
	for i := 0; i < n; i++ {
		j := i + s.rng.Intn(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	s.mu.Unlock()

	drawn := make([]model.VerbEntry, n)
	for i := 0; i < n; i++ {
		drawn[i] = all[idx[i]]
	}
	return drawn, nil
}
