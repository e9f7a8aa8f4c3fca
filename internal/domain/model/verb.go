package model

// VerbEntry is one corpus record: an infinitive, its three canonical
// conjugated forms, and optional hint data for the quiz frontend.
type VerbEntry struct {
	Infinitive   string
	Forms        FormSet
	Translations []string
	Examples     []string
}

// Answer carries one user-submitted record for grading. Absent fields are
// represented as empty strings and graded as incorrect, never as errors.
type Answer struct {
	Infinitive  string
	Praesens    string
	Praeteritum string
	Perfekt     string
}

// Value returns the submitted string for the given form. The boolean is
// false only for forms outside the closed set.
func (a Answer) Value(f Form) (string, bool) {
	switch f {
	case FormPraesens:
		return a.Praesens, true
	case FormPraeteritum:
		return a.Praeteritum, true
	case FormPerfekt:
		return a.Perfekt, true
	default:
		return "", false
	}
}

// FormResult is the graded outcome of one (verb, form) pair.
type FormResult struct {
	Form          Form
	IsCorrect     bool
	UserAnswer    string
	CorrectAnswer string
}

// VerbResult aggregates the three form results for one verb.
type VerbResult struct {
	Infinitive string
	Results    [3]FormResult
}

// CorrectCount returns how many of the three forms were answered correctly.
func (r VerbResult) CorrectCount() int {
	n := 0
	for _, fr := range r.Results {
		if fr.IsCorrect {
			n++
		}
	}
	return n
}

// AllCorrect reports whether every form of this verb was answered correctly.
func (r VerbResult) AllCorrect() bool {
	return r.CorrectCount() == len(r.Results)
}

// SessionReport aggregates all verb results of one graded session.
type SessionReport struct {
	TotalVerbs      int
	TotalForms      int
	CorrectCount    int
	ScorePercentage int
	Results         []VerbResult
}
