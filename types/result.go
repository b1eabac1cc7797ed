package types

import "time"

// Outcome classifies a single executed test unit.
type Outcome string

const (
	OutcomePass Outcome = "pass"
	OutcomeFail Outcome = "fail"
	OutcomeSkip Outcome = "skip"
)

// Tally holds per-suite or aggregate outcome counts. Counts only grow during
// a campaign; repeat iterations accumulate into the same tally.
type Tally struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
}

// Record adds one executed unit's outcome to the tally.
func (t *Tally) Record(o Outcome) {
	t.Total++
	switch o {
	case OutcomePass:
		t.Passed++
	case OutcomeFail:
		t.Failed++
	case OutcomeSkip:
		t.Skipped++
	}
}

// Merge adds another tally component-wise.
func (t *Tally) Merge(other Tally) {
	t.Total += other.Total
	t.Passed += other.Passed
	t.Failed += other.Failed
	t.Skipped += other.Skipped
}

// UnitResult is the recorded outcome of one unit execution.
type UnitResult struct {
	Name     string
	Outcome  Outcome
	Err      error
	Duration time.Duration
}

// SuiteResult captures one runner pass over a suite.
type SuiteResult struct {
	Name     string
	Tally    Tally
	Units    []UnitResult
	SetupErr error // non-nil when the suite setup hook failed
	Duration time.Duration
}

// Status reduces a suite result to a single outcome for display.
func (s *SuiteResult) Status() Outcome {
	switch {
	case s.Tally.Failed > 0:
		return OutcomeFail
	case s.Tally.Passed == 0 && s.Tally.Skipped > 0:
		return OutcomeSkip
	default:
		return OutcomePass
	}
}
