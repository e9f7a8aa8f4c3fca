package corpus

import "github.com/okian/starkverb/pkg/logger"

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithTranslationsPath sets the optional translations hint file.
func WithTranslationsPath(path string) Option {
	return func(s *Store) {
		s.translationsPath = path
	}
}

// WithExamplesPath sets the optional example-sentence hint file.
func WithExamplesPath(path string) Option {
	return func(s *Store) {
		s.examplesPath = path
	}
}

// WithLogger sets a custom logger for the store.
func WithLogger(log logger.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.logger = log
		}
	}
}
