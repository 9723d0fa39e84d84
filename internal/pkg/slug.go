package pkg

import (
	"strings"
	"unicode"
)

// Slugify lowers a title into a hyphenated URL-safe token. Runs of anything
// that is not an ASCII letter or digit collapse into a single hyphen; leading
// and trailing hyphens are trimmed. The result may be empty, callers supply
// their own fallback token.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // swallow leading separators
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			// non-ASCII letters/digits are dropped, like any other symbol
			fallthrough
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// TruncateSlug cuts a slug base to max bytes without leaving a trailing
// hyphen behind.
func TruncateSlug(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return strings.TrimRight(s[:max], "-")
}
