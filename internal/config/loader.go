package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Load builds a Config by layering defaults, optional file, env vars and
// command-line flags. Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if STARKVERB_CONFIG is set
//  3. env (prefix STARKVERB_)
//  4. flags (when a parsed pflag set is passed)
func Load(_ context.Context, flags *pflag.FlagSet) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("STARKVERB_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: STARKVERB_ADDR, STARKVERB_MAX_COUNT, ...
	// Keys keep their underscores to match the koanf tags on the struct.
	envProvider := env.Provider("STARKVERB_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "starkverb_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Flags win over everything; only flags the user actually set apply.
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects configurations the service cannot run with.
func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.VerbsPath == "":
		return fmt.Errorf("%w: verbs_path must not be empty", ErrInvalidConfig)
	case c.MaxCount < 1:
		return fmt.Errorf("%w: max_count must be at least 1", ErrInvalidConfig)
	case c.DefaultCount < 1 || c.DefaultCount > c.MaxCount:
		return fmt.Errorf("%w: default_count must be within [1, max_count]", ErrInvalidConfig)
	}
	return nil
}
