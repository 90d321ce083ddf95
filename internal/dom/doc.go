// Package dom provides the structural primitives every rewrite rule is built from.
//
// The package knows nothing about specific widgets. It offers:
//   - A presence guard (Exists) that answers "is this marker class on the page at all"
//     with one walk over the node tree and no selector compilation.
//   - Normalizer primitives (RemoveIfEmpty, UnwrapInto, EnsureIdentity, Relabel, ...)
//     that edit a goquery selection in place.
//   - Identity generators for page-unique element ids.
//
// INVARIANTS:
//   - Every primitive is a no-op on an empty selection.
//   - No primitive assumes a singleton match; all iterate the selection.
//   - Every primitive is idempotent: applying it to its own output changes nothing.
package dom
