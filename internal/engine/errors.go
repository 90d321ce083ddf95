package engine

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// ErrAlreadyRun is returned by Run on a pipeline that has already run.
var ErrAlreadyRun = errors.New("pipeline already run")

// RuleError reports a rule whose action failed. The pipeline recovers from
// the failure and continues with the next rule.
type RuleError struct {
	// Rule is the rule name.
	Rule string

	// Step is the 1-based position of the rule in the evaluated set.
	Step int

	// Err is the underlying failure.
	Err error
}

// Error implements the error interface.
func (e *RuleError) Error() string {
	return fmt.Sprintf("rule %s (step %d): %v", e.Rule, e.Step, e.Err)
}

// Unwrap returns the underlying failure.
func (e *RuleError) Unwrap() error {
	return e.Err
}

// IsRuleError returns true if err is or wraps a RuleError.
// Uses errors.As to handle wrapped errors.
func IsRuleError(err error) bool {
	var re *RuleError
	return errors.As(err, &re)
}

// RuleErrors extracts every RuleError from an error returned by Run.
func RuleErrors(err error) []*RuleError {
	var out []*RuleError
	for _, e := range multierr.Errors(err) {
		var re *RuleError
		if errors.As(e, &re) {
			out = append(out, re)
		}
	}
	return out
}

func newPanicError(rule string, step int, recovered any) *RuleError {
	err, ok := recovered.(error)
	if !ok {
		err = fmt.Errorf("panic: %v", recovered)
	} else {
		err = fmt.Errorf("panic: %w", err)
	}
	return &RuleError{Rule: rule, Step: step, Err: err}
}
