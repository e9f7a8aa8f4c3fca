// Package model contains domain types passed between layers.
package model

import "fmt"

// Form identifies one of the three conjugation targets of a quiz entry.
// The set is closed; anything outside it is a contract violation, not a
// user input error.
type Form string

// The three graded forms, all third person.
const (
	FormPraesens    Form = "praesens"
	FormPraeteritum Form = "praeteritum"
	FormPerfekt     Form = "perfekt"
)

// Forms returns the closed set of forms in presentation order.
func Forms() [3]Form {
	return [3]Form{FormPraesens, FormPraeteritum, FormPerfekt}
}

// Valid reports whether f belongs to the closed form set.
func (f Form) Valid() bool {
	switch f {
	case FormPraesens, FormPraeteritum, FormPerfekt:
		return true
	default:
		return false
	}
}

// ParseForm converts a wire-level form name into a Form.
func ParseForm(s string) (Form, error) {
	f := Form(s)
	if !f.Valid() {
		return "", fmt.Errorf("unknown form %q", s)
	}
	return f, nil
}

// FormSet holds the canonical ground-truth strings for one verb.
type FormSet struct {
	Praesens    string
	Praeteritum string
	Perfekt     string
}

// Value returns the canonical string for the given form. The boolean is
// false only for forms outside the closed set.
func (s FormSet) Value(f Form) (string, bool) {
	switch f {
	case FormPraesens:
		return s.Praesens, true
	case FormPraeteritum:
		return s.Praeteritum, true
	case FormPerfekt:
		return s.Perfekt, true
	default:
		return "", false
	}
}

// Complete reports whether all three canonical strings are non-empty.
func (s FormSet) Complete() bool {
	return s.Praesens != "" && s.Praeteritum != "" && s.Perfekt != ""
}
