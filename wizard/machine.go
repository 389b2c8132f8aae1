// Package wizard implements the multi-step registration flow as one generic
// linear step machine. Donor registration runs it over four steps; hospital
// registration over a single long form. The machine owns step position and
// per-step errors; the accumulated draft belongs to the caller and is
// reached through validator closures.
package wizard

import "fmt"

// FieldErrors holds per-field validation messages, scoped to the step that
// produced them.
type FieldErrors map[string]string

// Any reports whether any field failed.
func (fe FieldErrors) Any() bool { return len(fe) > 0 }

// StepValidator checks the fields belonging to one step. It runs only when
// that step is submitted or advanced, never earlier.
type StepValidator func() FieldErrors

// Step is one screen of the wizard.
type Step struct {
	Name     string
	Validate StepValidator
}

// Machine is a finite, linear state machine over steps 1..N.
type Machine struct {
	steps      []Step
	current    int // zero-based
	errors     FieldErrors
	submitRule StepValidator // conditional-required hook, run on Submit
}

// Option modifies a Machine during construction.
type Option func(*Machine)

// WithSubmitRule installs a conditional-required rule evaluated on Submit in
// addition to the final step's validator (e.g. appointment fields become
// required only when scheduling was opted into).
func WithSubmitRule(rule StepValidator) Option {
	return func(m *Machine) {
		m.submitRule = rule
	}
}

// NewMachine builds a wizard over the given steps.
func NewMachine(steps []Step, options ...Option) (*Machine, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("[NewMachine] at least one step is required")
	}
	for i, step := range steps {
		if step.Validate == nil {
			return nil, fmt.Errorf("[NewMachine] step %d (%s) has no validator", i+1, step.Name)
		}
	}

	m := &Machine{steps: steps, errors: FieldErrors{}}
	for _, opt := range options {
		opt(m)
	}
	return m, nil
}

// Current returns the 1-based active step number.
func (m *Machine) Current() int { return m.current + 1 }

// StepCount returns the number of steps.
func (m *Machine) StepCount() int { return len(m.steps) }

// StepName returns the active step's name.
func (m *Machine) StepName() string { return m.steps[m.current].Name }

// OnLastStep reports whether the active step is the final one.
func (m *Machine) OnLastStep() bool { return m.current == len(m.steps)-1 }

// Errors returns the active step's field errors from the last failed
// transition.
func (m *Machine) Errors() FieldErrors { return m.errors }

// Next validates only the active step's fields. On any failure it records
// the errors and stays put - there is no partial advance, and repeated calls
// with invalid input never move the step. On success it advances (clamped to
// the last step) and clears the errors.
func (m *Machine) Next() bool {
	if errs := m.steps[m.current].Validate(); errs.Any() {
		m.errors = errs
		return false
	}

	m.errors = FieldErrors{}
	if m.current < len(m.steps)-1 {
		m.current++
	}
	return true
}

// Back moves to the previous step, clamped to the first. It neither
// re-validates nor discards data already entered in later steps.
func (m *Machine) Back() {
	if m.current > 0 {
		m.current--
	}
	m.errors = FieldErrors{}
}

// Submit re-validates the final step plus the conditional submit rule. A nil
// return means the draft may be serialized and sent; otherwise the errors
// are recorded and the wizard stays on the final step.
func (m *Machine) Submit() FieldErrors {
	errs := m.steps[len(m.steps)-1].Validate()
	if errs == nil {
		errs = FieldErrors{}
	}
	if m.submitRule != nil {
		for field, msg := range m.submitRule() {
			errs[field] = msg
		}
	}

	if errs.Any() {
		m.current = len(m.steps) - 1
		m.errors = errs
		return errs
	}
	m.errors = FieldErrors{}
	return nil
}
