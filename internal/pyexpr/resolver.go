package pyexpr

import (
	"fmt"
	"strings"
)

// varsDict is the name of the variables dictionary in generated
// scripts. Every routine receives it as a parameter, so lookups are the
// same expression everywhere.
const varsDict = "variables"

// EmptyString is the lookup default used for user-facing text fields.
const EmptyString = "''"

// Lookup renders a direct variable-lookup expression with the given
// Python default, e.g. variables.get('greeting', ''). The raw name is
// sanitized first. Single quotes keep the expression legal inside
// f-strings.
func Lookup(rawName, pyDefault string) string {
	return fmt.Sprintf("%s.get('%s', %s)", varsDict, SanitizeIdent(rawName), pyDefault)
}

// Assign renders the left-hand side of a variable store, e.g.
// variables['result'].
func Assign(rawName string) string {
	return fmt.Sprintf("%s['%s']", varsDict, SanitizeIdent(rawName))
}

// Resolve turns a raw configuration string into a Python expression
// with empty-string lookup defaults. The three template rules:
//
//   - no tokens: a plain string literal
//   - exactly one token spanning the whole string: a direct lookup
//   - tokens interleaved with text: an f-string embedding lookups
func Resolve(raw string) string {
	return ResolveDefault(raw, EmptyString)
}

// ResolveDefault is Resolve with a caller-chosen lookup default, for
// fields where absence should produce something other than '' (a
// foreach source defaults to an empty list, for example).
func ResolveDefault(raw, pyDefault string) string {
	segs := scanTemplate(raw)
	if !hasLookup(segs) {
		return StringLiteral(raw)
	}
	if len(segs) == 1 {
		return Lookup(segs[0].text, pyDefault)
	}

	var b strings.Builder
	b.WriteString(`f"`)
	for _, seg := range segs {
		switch seg.kind {
		case segLiteral:
			b.WriteString(escapeFString(seg.text))
		case segLookup:
			b.WriteByte('{')
			b.WriteString(Lookup(seg.text, EmptyString))
			b.WriteByte('}')
		}
	}
	b.WriteString(`"`)
	return b.String()
}

// StringLiteral renders s as a double-quoted Python string literal.
func StringLiteral(s string) string {
	return `"` + escapeString(s) + `"`
}

// escapeString escapes s for use inside a double-quoted Python string.
func escapeString(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// escapeFString additionally doubles literal braces, which delimit
// expressions inside f-strings.
func escapeFString(s string) string {
	escaped := escapeString(s)
	escaped = strings.ReplaceAll(escaped, "{", "{{")
	return strings.ReplaceAll(escaped, "}", "}}")
}
