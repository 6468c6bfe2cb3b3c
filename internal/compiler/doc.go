// Package compiler turns a workflow document into a standalone Python
// script. It owns the generator registry (module type tag → code
// generator, with a never-failing fallback) and the orchestration:
// extract subflows, then emit header, variable initialization, one
// routine per sub-procedure, the main routine and the entry point.
//
// Compilation is a pure synchronous transform. It never fails: cycles,
// dangling references, unknown module types and malformed control nodes
// all degrade to best-effort output, surfaced through diagnostics and
// inline marker comments rather than errors.
package compiler
