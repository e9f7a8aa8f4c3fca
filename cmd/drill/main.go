package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/starkverb/internal/drill"
)

// Default configuration constants.
const (
	defaultCount        = 10
	defaultRounds       = 20
	defaultTimeout      = 30 * time.Second
	defaultDrillTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL   = flag.String("url", "http://localhost:8080", "Base URL of the service")
		verbsFile = flag.String("verbs", "data/verbs_forms.json", "Corpus file used as the answer key")
		count     = flag.Int("count", defaultCount, "Verbs requested per session")
		rounds    = flag.Int("rounds", defaultRounds, "Number of start/submit rounds")
		mode      = flag.String("mode", drill.ModeCorrect, "Answer mode: correct, wrong or mixed")
		timeout   = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		logFile   = flag.String("log", "", "Log file for drill output (default: drill_log_TIMESTAMP.log)")
		verbose   = flag.Bool("verbose", false, "Enable verbose logging")
		help      = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		drill.ShowHelp()
		return
	}

	if err := drill.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultDrillTimeout)
	defer cancel()

	config := &drill.Config{
		BaseURL:   *baseURL,
		VerbsFile: *verbsFile,
		Count:     *count,
		Rounds:    *rounds,
		Mode:      *mode,
		Timeout:   *timeout,
		LogFile:   *logFile,
		Verbose:   *verbose,
	}

	if err := drill.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Drill failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
