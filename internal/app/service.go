// Package service provides the core business service that implements the
// dependencies required by the HTTP API: corpus access, verb sampling,
// answer grading and session aggregation behind one composition root.
package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/starkverb/internal/adapters/corpus"
	"github.com/okian/starkverb/internal/domain/model"
	"github.com/okian/starkverb/internal/domain/sampling"
	"github.com/okian/starkverb/internal/domain/session"
	"github.com/okian/starkverb/pkg/logger"
	"github.com/okian/starkverb/pkg/metrics"
)

// Service owns the corpus store and the domain components built on it.
// All grading state is request-scoped; the corpus snapshot is the only
// shared value, and it is immutable between reloads.
type Service struct {
	mu sync.RWMutex

	// Core components
	corpus     *corpus.Store
	sampler    *sampling.Sampler
	aggregator *session.Aggregator

	// Configuration
	verbsPath        string
	translationsPath string
	examplesPath     string
	defaultCount     int
	maxCount         int
	watchCorpus      bool
	seed             *int64

	// State
	started   bool
	stopWatch context.CancelFunc
	watchDone chan struct{}

	// Hint example picks need their own guarded source; rand.Rand is not
	// safe for concurrent handlers.
	rngMu sync.Mutex
	rng   *rand.Rand

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithVerbsPath sets the verb forms corpus document.
func WithVerbsPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.verbsPath = path
		}
	}
}

// WithTranslationsPath sets the optional translations hint file.
func WithTranslationsPath(path string) Option {
	return func(s *Service) {
		s.translationsPath = path
	}
}

// WithExamplesPath sets the optional example-sentence hint file.
func WithExamplesPath(path string) Option {
	return func(s *Service) {
		s.examplesPath = path
	}
}

// WithDefaultCount sets the session size used when the client omits count.
func WithDefaultCount(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.defaultCount = n
		}
	}
}

// WithMaxCount caps the session size a client may request.
func WithMaxCount(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxCount = n
		}
	}
}

// WithWatchCorpus enables hot-reloading the corpus on file mutation.
func WithWatchCorpus(enabled bool) Option {
	return func(s *Service) {
		s.watchCorpus = enabled
	}
}

// WithSeed fixes the random sources, making sampling and example picks
// deterministic. Intended for tests.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.seed = &seed
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		verbsPath:    "data/verbs_forms.json",
		defaultCount: 10,
		maxCount:     20,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the corpus and wires the domain components. The load happens
// here, before any traffic, so a broken corpus is a startup failure rather
// than a surprise on the first request.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.corpus = corpus.NewStore(s.verbsPath,
		corpus.WithTranslationsPath(s.translationsPath),
		corpus.WithExamplesPath(s.examplesPath),
		corpus.WithLogger(s.logger),
	)
	if err := s.corpus.Load(); err != nil {
		return err
	}

	var samplerOpts []sampling.Option
	seed := time.Now().UnixNano()
	if s.seed != nil {
		seed = *s.seed
		samplerOpts = append(samplerOpts, sampling.WithSeed(seed))
	}
	s.sampler = sampling.New(s.corpus, samplerOpts...)
	s.aggregator = session.New(s.corpus)
	s.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // hint picks need no crypto randomness

	size, err := s.corpus.Len()
	if err != nil {
		return err
	}
	metrics.UpdateCorpusSize(size)

	if s.watchCorpus {
		watchCtx, cancel := context.WithCancel(context.Background())
		s.stopWatch = cancel
		s.watchDone = make(chan struct{})
		go func() {
			defer close(s.watchDone)
			if err := s.corpus.Watch(watchCtx); err != nil {
				s.logger.Error(watchCtx, "corpus watcher stopped", logger.Error(err))
			}
		}()
	}

	s.started = true
	s.logger.Info(ctx, "quiz service started",
		logger.Int("verbs", size),
		logger.Int("defaultCount", s.defaultCount),
		logger.Int("maxCount", s.maxCount),
		logger.Any("watchCorpus", s.watchCorpus),
	)
	return nil
}

// Stop shuts down the corpus watcher, if any.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if s.stopWatch != nil {
		s.stopWatch()
		<-s.watchDone
		s.stopWatch = nil
		s.watchDone = nil
	}
	s.started = false
	s.logger.Info(context.Background(), "quiz service stopped")
}

// StartSession draws count verbs and packages them as a fresh selection.
// The returned session ID is a correlation token only; nothing about the
// selection is retained server-side.
func (s *Service) StartSession(ctx context.Context, count int) (model.QuizSelection, error) {
	drawn, err := s.sampler.Draw(ctx, count)
	if err != nil {
		return model.QuizSelection{}, err
	}

	selection := model.QuizSelection{
		SessionID: uuid.New().String(),
		Verbs:     make([]model.OfferedVerb, len(drawn)),
	}
	for i, entry := range drawn {
		selection.Verbs[i] = model.OfferedVerb{
			Infinitive:   entry.Infinitive,
			Index:        i,
			Translations: entry.Translations,
			Example:      s.pickExample(entry.Examples),
		}
	}

	metrics.RecordSessionStarted()
	s.logger.Debug(ctx, "session started",
		logger.String("sessionID", selection.SessionID),
		logger.Int("verbs", len(selection.Verbs)),
	)
	return selection, nil
}

// SubmitAnswers grades a full submission into a session report.
func (s *Service) SubmitAnswers(ctx context.Context, answers []model.Answer) (model.SessionReport, error) {
	report, err := s.aggregator.Grade(ctx, answers)
	if err != nil {
		return model.SessionReport{}, err
	}

	metrics.RecordSessionGraded(report.ScorePercentage)
	metrics.RecordAnswersGraded(report.TotalForms, report.CorrectCount)
	s.logger.Debug(ctx, "session graded",
		logger.Int("verbs", report.TotalVerbs),
		logger.Int("correct", report.CorrectCount),
		logger.Int("score", report.ScorePercentage),
	)
	return report, nil
}

// CorpusSize reports the number of loaded verbs, for health checks.
func (s *Service) CorpusSize(ctx context.Context) (int, error) {
	return s.corpus.Len()
}

// Reload re-parses the corpus source on demand.
func (s *Service) Reload(ctx context.Context) error {
	if err := s.corpus.Reload(); err != nil {
		metrics.RecordCorpusReloadError()
		return err
	}
	metrics.RecordCorpusReload()
	size, err := s.corpus.Len()
	if err != nil {
		return err
	}
	metrics.UpdateCorpusSize(size)
	s.logger.Info(ctx, "corpus reloaded", logger.Int("verbs", size))
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":      s.started,
		"defaultCount": s.defaultCount,
		"maxCount":     s.maxCount,
		"watchCorpus":  s.watchCorpus,
	}
	if s.started {
		if size, err := s.corpus.Len(); err == nil {
			stats["verbsLoaded"] = size
		}
	}
	return stats
}

// pickExample chooses one example sentence for display, if any exist.
func (s *Service) pickExample(examples []string) string {
	if len(examples) == 0 {
		return ""
	}
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return examples[s.rng.Intn(len(examples))]
}
