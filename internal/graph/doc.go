// Package graph builds the compiler-internal view of a workflow
// document and provides the traversal primitives code generation is
// built on: lookup indices (Model), Kahn topological ordering with a
// deterministic cycle-residue policy, control-flow scope collection,
// and subflow extraction.
//
// Everything operates on plain node-id sets rather than linked node
// objects, so cyclic documents never create ownership or lifetime
// problems; they merely degrade to best-effort ordering.
package graph
