// Package rules holds the ordered battery of DOM rules that retrofit
// Materialize conventions onto APEX markup.
//
// A Rule is a (guard, selector, action) unit covering one widget family. The
// pipeline evaluates rules strictly in Default() order. Each rule re-queries the
// document, so later rules observe earlier edits.
//
// ORDERING:
//
//   - interactive-report marks the report search box as an .input-field, so it
//     runs before the label rules.
//   - checkables and input-field-labels restructure label/input pairs; they run
//     before switches and the other layout clean-ups that rely on .input-field
//     wrappers.
//   - fab produces the .fixed-action-btn > ul > li structure that fab-tooltips,
//     fab-relative and tooltips inspect.
//
// Dependencies are declared in Rule.After and checked by Set.Validate.
//
// Every action is idempotent: running the whole set a second time over its own
// output changes nothing.
package rules
