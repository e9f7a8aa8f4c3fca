package drill

import (
	"encoding/json"
	"fmt"
	"os"
)

// Corpus disk keys, matching the server's verb forms file.
const (
	keyPraesens    = "Präsens"
	keyPraeteritum = "Präteritum"
	keyPerfekt     = "Perfekt"
)

// AnswerKey maps infinitives to their canonical principal parts. It is
// loaded from the same corpus file the server serves from, so a
// "correct" drill round is correct by construction.
type AnswerKey map[string]struct {
	Praesens    string
	Praeteritum string
	Perfekt     string
}

// LoadAnswerKey reads the verb forms corpus file used by the server.
func LoadAnswerKey(path string) (AnswerKey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read answer key: %w", err)
	}

	var entries map[string]map[string]string
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse answer key: %w", err)
	}

	key := make(AnswerKey, len(entries))
	for infinitive, forms := range entries {
		key[infinitive] = struct {
			Praesens    string
			Praeteritum string
			Perfekt     string
		}{
			Praesens:    forms[keyPraesens],
			Praeteritum: forms[keyPraeteritum],
			Perfekt:     forms[keyPerfekt],
		}
	}
	return key, nil
}

// buildAnswers fills the submission for the offered verbs according to
// the drill mode. In mixed mode even slots are answered correctly and
// odd slots wrongly, so the expected score is computable up front.
func buildAnswers(mode string, verbs []verbInfo, key AnswerKey) ([]answerPayload, error) {
	answers := make([]answerPayload, len(verbs))
	for i, v := range verbs {
		canonical, ok := key[v.Infinitive]
		if !ok {
			return nil, fmt.Errorf("offered verb %q is missing from the answer key", v.Infinitive)
		}

		correct := answerPayload{
			Infinitive:  v.Infinitive,
			Praesens:    canonical.Praesens,
			Praeteritum: canonical.Praeteritum,
			Perfekt:     canonical.Perfekt,
		}
		wrong := answerPayload{
			Infinitive:  v.Infinitive,
			Praesens:    "xxx",
			Praeteritum: "xxx",
			Perfekt:     "xxx",
		}

		switch mode {
		case ModeCorrect:
			answers[i] = correct
		case ModeWrong:
			answers[i] = wrong
		case ModeMixed:
			if i%2 == 0 {
				answers[i] = correct
			} else {
				answers[i] = wrong
			}
		default:
			return nil, fmt.Errorf("unknown drill mode %q", mode)
		}
	}
	return answers, nil
}

// expectedScore computes the score percentage a round should report,
// using the same round-half-up rule as the server.
func expectedScore(mode string, verbCount int) int {
	if verbCount == 0 {
		return 0
	}
	switch mode {
	case ModeCorrect:
		return 100
	case ModeWrong:
		return 0
	case ModeMixed:
		correctVerbs := (verbCount + 1) / 2
		totalForms := verbCount * 3
		correctForms := correctVerbs * 3
		return int(float64(correctForms)/float64(totalForms)*100 + 0.5)
	default:
		return 0
	}
}
