package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/starkverb/internal/adapters/http/api"
	"github.com/okian/starkverb/internal/adapters/http/site"
	"github.com/okian/starkverb/internal/adapters/http/swagger"
	service "github.com/okian/starkverb/internal/app"
	"github.com/okian/starkverb/internal/config"
	"github.com/okian/starkverb/pkg/logger"

	"github.com/spf13/pflag"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	flags := pflag.NewFlagSet("starkverb", pflag.ContinueOnError)
	flags.String("addr", ":8080", "listen address")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text or json)")
	flags.String("verbs-path", "data/verbs_forms.json", "path to the verb forms corpus")
	flags.String("translations-path", "data/translations/verbs_translation_ru.json", "path to verb translations")
	flags.String("examples-path", "data/verbs_examples.json", "path to verb example sentences")
	flags.Int("default-count", 10, "verbs per session when count is omitted")
	flags.Int("max-count", 20, "maximum verbs per session")
	flags.Bool("watch-corpus", true, "reload corpus files when they change on disk")
	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Stderr.WriteString("failed to parse flags: " + err.Error() + "\n")
		return
	}

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env -> flags).
	cfg, err := config.Load(ctx, flags)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.InitWithFormat(cfg.LogFormat); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input).
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Create and start the service with configuration options.
	svc := service.New(
		service.WithLogger(log),
		service.WithVerbsPath(cfg.VerbsPath),
		service.WithTranslationsPath(cfg.TranslationsPath),
		service.WithExamplesPath(cfg.ExamplesPath),
		service.WithDefaultCount(cfg.DefaultCount),
		service.WithMaxCount(cfg.MaxCount),
		service.WithWatchCorpus(cfg.WatchCorpus),
	)
	if err := svc.Start(ctx); err != nil {
		log.Error(ctx, "failed to start service", logger.Error(err))
		return
	}
	defer svc.Stop()

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// API documentation under /api-docs.
	swagger.Register(ctx, mux)

	// Business API routes backed by the service.
	apiServer := api.NewServer(svc, svc, api.CountLimits{Default: cfg.DefaultCount, Max: cfg.MaxCount})
	apiServer.Register(ctx, mux)

	// Static quiz frontend, mounted last so "/" falls through to it.
	site.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}
