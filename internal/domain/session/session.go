// Package session turns a list of submitted answers into a whole-session
// score report.
//
// Aggregation is pure and all-or-nothing: every answer must resolve to a
// corpus verb before any result is returned. There are no retries; grading
// the same submission twice yields the same report.
package session

import (
	"context"
	"fmt"
	"math"

	"github.com/okian/starkverb/internal/domain/grading"
	"github.com/okian/starkverb/internal/domain/model"
)

// Corpus abstracts the verb resolution the aggregator needs.
type Corpus interface {
	Lookup(infinitive string) (model.VerbEntry, error)
}

// Aggregator grades submissions against a corpus.
type Aggregator struct {
	corpus Corpus
}

// New creates an Aggregator resolving verbs through corpus.
func New(corpus Corpus) *Aggregator {
	return &Aggregator{corpus: corpus}
}

// Grade grades every answer and composes the session report. An answer
// naming a verb absent from the corpus aborts the whole aggregation with
// ErrUnknownVerbInSubmission; no partial report is ever returned.
func (a *Aggregator) Grade(_ context.Context, answers []model.Answer) (model.SessionReport, error) {
	report := model.SessionReport{
		TotalVerbs: len(answers),
		TotalForms: len(answers) * len(model.Forms()),
		Results:    make([]model.VerbResult, 0, len(answers)),
	}

	for _, answer := range answers {
		entry, err := a.corpus.Lookup(answer.Infinitive)
		if err != nil {
			return model.SessionReport{}, fmt.Errorf("%w: %q: %w", ErrUnknownVerbInSubmission, answer.Infinitive, err)
		}
		vr, err := grading.GradeVerb(entry, answer)
		if err != nil {
			return model.SessionReport{}, err
		}
		report.CorrectCount += vr.CorrectCount()
		report.Results = append(report.Results, vr)
	}

	report.ScorePercentage = percentage(report.CorrectCount, report.TotalForms)
	return report, nil
}

// percentage computes round-half-up(100*correct/total), 0 for an empty
// session.
func percentage(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}
