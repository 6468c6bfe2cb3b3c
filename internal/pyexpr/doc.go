// Package pyexpr turns the editor's string-interpolation syntax into
// Python expressions. A raw configuration string may embed variable
// references as {identifier} tokens; the package scans them into a
// small segment list (never find-and-replace, so resolution is
// idempotent even when a value itself contains braces) and renders
// string literals, variable lookups, or f-string concatenations.
//
// It also owns identifier sanitization and the typed-value bridge:
// document values are lifted into cty values and rendered as Python
// literals.
package pyexpr
