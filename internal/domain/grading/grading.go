// Package grading decides the correctness of submitted conjugation forms
// against the corpus ground truth.
//
// Matching is deliberately strict: the submission is trimmed of leading and
// trailing whitespace and then compared byte-exact. Case, diacritics and
// internal whitespace all count, so "hat gemacht" vs "hat  gemacht" and
// "Ging" vs "ging" are wrong answers. The perfect tense in particular must
// include the right auxiliary verb.
package grading

import (
	"fmt"
	"strings"

	"github.com/okian/starkverb/internal/domain/model"
)

// Grade compares one submitted string against the canonical form of entry.
// It never fails for a wrong or empty submission; the only error is a form
// outside the closed set.
func Grade(entry model.VerbEntry, form model.Form, submitted string) (model.FormResult, error) {
	canonical, ok := entry.Forms.Value(form)
	if !ok {
		return model.FormResult{}, fmt.Errorf("grade %q: %w: %q", entry.Infinitive, ErrUnknownForm, form)
	}
	return model.FormResult{
		Form:          form,
		IsCorrect:     strings.TrimSpace(submitted) == canonical,
		UserAnswer:    submitted,
		CorrectAnswer: canonical,
	}, nil
}

// GradeVerb grades all three forms of one answer against entry. The answer's
// infinitive is not checked here; resolving it is the caller's job.
func GradeVerb(entry model.VerbEntry, answer model.Answer) (model.VerbResult, error) {
	result := model.VerbResult{Infinitive: entry.Infinitive}
	for i, form := range model.Forms() {
		submitted, _ := answer.Value(form)
		fr, err := Grade(entry, form, submitted)
		if err != nil {
			return model.VerbResult{}, err
		}
		result.Results[i] = fr
	}
	return result, nil
}
