package harness

import (
	"github.com/roach88/matapex/internal/engine"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success: every run was clean and every
	// assertion held.
	Pass bool `json:"pass"`

	// HTML is the NFC-normalized inner HTML of <body> after the runs and
	// events. Used for golden comparison.
	HTML string `json:"html"`

	// Outcomes are the per-rule outcomes of the last run.
	Outcomes []engine.Outcome `json:"outcomes"`

	// Successes are the page success messages shown while events ran.
	Successes []string `json:"successes,omitempty"`

	// FABs is the number of floating action buttons constructed across all
	// runs. Idempotent runs construct each one exactly once.
	FABs int `json:"fabs"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:     true,
		Outcomes: []engine.Outcome{},
		Errors:   []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Applied returns the names of the rules that were applied in the last run.
func (r *Result) Applied() []string {
	var names []string
	for _, o := range r.Outcomes {
		if o.Status == engine.StatusApplied {
			names = append(names, o.Rule)
		}
	}
	return names
}
