package common

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Slugify converts a title into a URL-safe slug: lowercase ASCII,
// non-alphanumeric runs collapsed to single hyphens.
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) && r < 128, unicode.IsDigit(r) && r < 128:
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimRight(b.String(), "-")
}

// Truncate cuts s to at most n bytes, backing off to a rune boundary so
// multibyte input never yields invalid UTF-8. Used for previews and meta
// fields.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
