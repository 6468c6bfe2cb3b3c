// Package app is the composition root of the flowc binary: it owns the
// logger, loads export options and the workflow document, assembles the
// compiler with the core generator modules, and writes the resulting
// script. All file I/O lives here; the compiler itself never touches
// the filesystem.
package app
