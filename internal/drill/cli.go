package drill

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/okian/starkverb/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "drill_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the drill tool.
func ShowHelp() {
	os.Stdout.WriteString(`Starkverb Quiz Drill
====================

A tool for exercising the Starkverb quiz service end to end: it starts
sessions, submits answers built from the corpus file, and verifies the
reported scores.

Usage:
  go run cmd/drill/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8080")
  -verbs string
        Corpus file used as the answer key (default "data/verbs_forms.json")
  -count int
        Verbs requested per session (default 10)
  -rounds int
        Number of start/submit rounds (default 20)
  -mode string
        Answer mode: correct, wrong or mixed (default "correct")
  -timeout duration
        HTTP request timeout (default 30s)
  -log string
        Log file for drill output (default: drill_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Verify every round scores 100%
  go run cmd/drill/main.go -mode correct

  # Alternate correct and wrong verbs
  go run cmd/drill/main.go -mode mixed -rounds 50

  # Point at a different instance
  go run cmd/drill/main.go -url http://localhost:9090 -count 5
`)
}
