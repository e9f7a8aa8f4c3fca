package drill

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/okian/starkverb/pkg/logger"
)

// Run executes the complete quiz drill.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting quiz drill",
		logger.String("baseURL", config.BaseURL),
		logger.String("verbsFile", config.VerbsFile),
		logger.Int("count", config.Count),
		logger.Int("rounds", config.Rounds),
		logger.String("mode", config.Mode),
		logger.String("timeout", config.Timeout.String()),
		logger.Any("verbose", config.Verbose))

	// Step 1: load the answer key from the corpus file.
	key, err := LoadAnswerKey(config.VerbsFile)
	if err != nil {
		return fmt.Errorf("answer key load failed: %w", err)
	}
	logger.Get().Info(ctx, "answer key loaded", logger.Int("verbs", len(key)))

	// Step 2: check service health.
	client := newHTTPClient(config.Timeout)
	if err := checkServiceHealth(ctx, client, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 3: run start/submit rounds.
	for round := 1; round <= config.Rounds; round++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := runRound(ctx, client, config, key, stats); err != nil {
			stats.RoundsFailed++
			logger.Get().Error(ctx, "drill round failed",
				logger.Int("round", round), logger.Error(err))
			continue
		}
		stats.RoundsVerified++
		if config.Verbose {
			logger.Get().Info(ctx, "drill round verified", logger.Int("round", round))
		}
	}

	// Final statistics.
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(stats)

	if stats.RoundsFailed > 0 {
		return fmt.Errorf("%d of %d rounds failed", stats.RoundsFailed, stats.RoundsRun)
	}
	logger.Get().Info(ctx, "drill completed successfully")
	return nil
}

// runRound starts one session, answers it per the configured mode,
// submits, and verifies the reported score against the expectation.
func runRound(ctx context.Context, client *httpClient, config *Config, key AnswerKey, stats *Stats) error {
	stats.RoundsRun++

	startURL := fmt.Sprintf("%s/api/session/start?count=%d", config.BaseURL, config.Count)
	resp, err := client.Get(ctx, startURL)
	if err != nil {
		return fmt.Errorf("session start request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return fmt.Errorf("session start returned status %d", resp.StatusCode)
	}
	var start startResponse
	if err := decodeResponse(resp, &start); err != nil {
		return fmt.Errorf("session start decode failed: %w", err)
	}
	if len(start.Verbs) != config.Count {
		return fmt.Errorf("expected %d verbs, got %d", config.Count, len(start.Verbs))
	}
	stats.VerbsOffered += len(start.Verbs)

	answers, err := buildAnswers(config.Mode, start.Verbs, key)
	if err != nil {
		return err
	}

	submitURL := config.BaseURL + "/api/session/submit"
	resp, err = client.Post(ctx, submitURL, submitRequest{
		SessionID: start.SessionID,
		Answers:   answers,
	})
	if err != nil {
		return fmt.Errorf("submission request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return fmt.Errorf("submission returned status %d", resp.StatusCode)
	}
	var report submitResponse
	if err := decodeResponse(resp, &report); err != nil {
		return fmt.Errorf("submission decode failed: %w", err)
	}

	stats.FormsGraded += report.TotalForms
	stats.FormsCorrect += report.CorrectCount

	if report.TotalVerbs != len(answers) {
		return fmt.Errorf("report covers %d verbs, submitted %d", report.TotalVerbs, len(answers))
	}
	want := expectedScore(config.Mode, len(answers))
	if report.ScorePercentage != want {
		return fmt.Errorf("expected score %d, got %d", want, report.ScorePercentage)
	}
	return nil
}

// checkServiceHealth verifies the service is running and has a corpus.
func checkServiceHealth(ctx context.Context, client *httpClient, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	resp, err := client.Get(ctx, config.BaseURL+"/api/health")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	var health healthResponse
	if err := decodeResponse(resp, &health); err != nil {
		return err
	}
	if health.VerbsLoaded < config.Count {
		return fmt.Errorf("corpus holds %d verbs, drill needs %d", health.VerbsLoaded, config.Count)
	}

	logger.Get().Info(ctx, "service is healthy", logger.Int("verbsLoaded", health.VerbsLoaded))
	return nil
}

// displayFinalStats prints the final drill statistics.
func displayFinalStats(stats *Stats) {
	var roundsPerSecond float64
	if stats.Duration > 0 {
		roundsPerSecond = float64(stats.RoundsRun) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("roundsRun", stats.RoundsRun),
		logger.Int("roundsVerified", stats.RoundsVerified),
		logger.Int("roundsFailed", stats.RoundsFailed),
		logger.Int("verbsOffered", stats.VerbsOffered),
		logger.Int("formsGraded", stats.FormsGraded),
		logger.Int("formsCorrect", stats.FormsCorrect),
		logger.String("duration", stats.Duration.String()),
		logger.Any("roundsPerSecond", roundsPerSecond))
}
