// Package host models the surface the rewrite pipeline consumes from the APEX
// runtime and the Materialize widget library.
//
// The pipeline never reaches into global state. Everything it needs from the
// page environment goes through the Host interface, which is injected at
// construction time:
//
//   - message catalog registration and lookup
//   - the page-level success notification
//   - the debug level that gates timing instrumentation
//   - the spinner factory (wrapped by WrapSpinner)
//   - datepicker default hooks and the sticky-top offset function
//   - the floating-action-button constructor
//   - input focus
//
// Page is the in-memory implementation used by the CLI, the harness and tests.
package host
