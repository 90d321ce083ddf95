// Package engine implements the matapex pipeline driver.
//
// A Pipeline runs the ordered rule set exactly once over one parsed document,
// the server-side equivalent of the page-ready handler.
//
// LIFECYCLE:
//
//	NotRun --Run--> Run (terminal)
//
// A second Run returns ErrAlreadyRun and touches nothing.
//
// RULE EVALUATION:
//  1. Message defaults are registered with the host.
//  2. Rules are evaluated in declaration order (the slice is copied at
//     construction and never reordered).
//  3. A guarded rule is skipped when its marker class is absent.
//  4. Selectors are evaluated fresh by each action, so later rules see the
//     edits of earlier ones.
//  5. A panicking action is recovered, logged and reported as a RuleError;
//     evaluation continues with the next rule.
//  6. Class attributes are tidied once all rules have run.
//
// Absent markup is never an error. Timing instrumentation is emitted only when
// the host debug level is above off.
package engine
