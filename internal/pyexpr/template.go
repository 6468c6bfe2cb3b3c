package pyexpr

import "strings"

type segmentKind int

const (
	segLiteral segmentKind = iota
	segLookup
)

// segment is one piece of a scanned template: either literal text or a
// raw (unsanitized) variable reference.
type segment struct {
	kind segmentKind
	text string
}

// scanTemplate splits raw into literal and lookup segments. A token is
// a non-empty brace-delimited run containing no nested braces; anything
// else, including unmatched or empty braces, stays literal text.
func scanTemplate(raw string) []segment {
	var segs []segment
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			segs = append(segs, segment{kind: segLiteral, text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(raw); {
		if raw[i] != '{' {
			lit.WriteByte(raw[i])
			i++
			continue
		}
		end := strings.IndexByte(raw[i+1:], '}')
		if end < 0 {
			lit.WriteByte(raw[i])
			i++
			continue
		}
		inner := raw[i+1 : i+1+end]
		if inner == "" || strings.ContainsAny(inner, "{}") {
			lit.WriteByte(raw[i])
			i++
			continue
		}
		flush()
		segs = append(segs, segment{kind: segLookup, text: inner})
		i += end + 2
	}
	flush()
	return segs
}

// hasLookup reports whether any segment is a variable reference.
func hasLookup(segs []segment) bool {
	for _, s := range segs {
		if s.kind == segLookup {
			return true
		}
	}
	return false
}
