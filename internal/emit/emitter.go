// Package emit provides the indentation-aware line buffer the code
// generators write into. The emitter knows nothing about semantics; it
// assembles text in the order components request it.
package emit

import (
	"fmt"
	"strings"
)

// DefaultIndent is one level of indentation in generated Python.
const DefaultIndent = "    "

// Emitter accumulates output lines, prefixing each with the current
// indentation level. It is owned by a single compilation and passed by
// reference through the generator call chain.
type Emitter struct {
	lines []string
	level int
	unit  string
}

// New returns an emitter using the given indent unit; an empty unit
// selects DefaultIndent.
func New(unit string) *Emitter {
	if unit == "" {
		unit = DefaultIndent
	}
	return &Emitter{unit: unit}
}

// Line appends one line at the current indentation level.
func (e *Emitter) Line(text string) {
	if text == "" {
		e.Blank()
		return
	}
	e.lines = append(e.lines, strings.Repeat(e.unit, e.level)+text)
}

// Linef appends one formatted line at the current indentation level.
func (e *Emitter) Linef(format string, args ...any) {
	e.Line(fmt.Sprintf(format, args...))
}

// Blank appends an empty line, never indented.
func (e *Emitter) Blank() {
	e.lines = append(e.lines, "")
}

// WithIndent runs fn one indentation level deeper. The level is
// restored on every exit path, including panics, so an aborted
// generator cannot skew the indentation of everything after it.
func (e *Emitter) WithIndent(fn func()) {
	e.level++
	defer func() { e.level-- }()
	fn()
}

// Len returns the number of emitted lines.
func (e *Emitter) Len() int { return len(e.lines) }

// String assembles the buffer into the final text, newline-terminated.
func (e *Emitter) String() string {
	if len(e.lines) == 0 {
		return ""
	}
	return strings.Join(e.lines, "\n") + "\n"
}
