// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Layer sources via Load: defaults -> YAML file -> env -> flags.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// VerbsPath locates the JSON document holding the verb forms corpus.
	VerbsPath string `koanf:"verbs_path"`

	// TranslationsPath locates the optional translations hint file.
	TranslationsPath string `koanf:"translations_path"`

	// ExamplesPath locates the optional example-sentence hint file.
	ExamplesPath string `koanf:"examples_path"`

	// DefaultCount is the session size used when the client omits count.
	DefaultCount int `koanf:"default_count"`

	// MaxCount caps the count accepted by GET /api/session/start.
	MaxCount int `koanf:"max_count"`

	// WatchCorpus enables hot-reloading the corpus on file mutation.
	WatchCorpus bool `koanf:"watch_corpus"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":8080",
		VerbsPath:        "data/verbs_forms.json",
		TranslationsPath: "data/translations/verbs_translation_ru.json",
		ExamplesPath:     "data/verbs_examples.json",
		DefaultCount:     10,
		MaxCount:         20,
		WatchCorpus:      true,
	}
}
