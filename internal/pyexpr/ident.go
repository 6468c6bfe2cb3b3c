package pyexpr

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// fallbackIdent is used when sanitization leaves nothing usable.
const fallbackIdent = "var"

// SanitizeIdent maps an arbitrary raw name to a valid Python
// identifier. Unicode letters, digits and underscores survive, every
// other rune becomes an underscore, a leading digit gets a "v_" prefix,
// and an empty result falls back to a fixed name. The mapping is
// deterministic and idempotent: sanitizing an already-sanitized name is
// a no-op.
func SanitizeIdent(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	s := b.String()
	if s == "" {
		return fallbackIdent
	}
	if first, _ := utf8.DecodeRuneInString(s); unicode.IsDigit(first) {
		s = "v_" + s
	}
	return s
}
