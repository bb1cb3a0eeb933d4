// Package sanitize scrubs client-supplied strings before they reach
// validation or storage.  Handlers call these helpers on every bound
// request field so that control characters, stray whitespace and
// inconsistent casing never make it past the HTTP boundary.
package sanitize

import (
	"strings"
	"unicode"
)

// Text trims surrounding whitespace and strips control characters
// (including NUL and ANSI escape bytes) from s.  Printable unicode,
// including spaces inside the string, is preserved.
func Text(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// Email normalizes an email address: scrubbed, lower-cased.  Validation of
// the address shape stays with the caller.
func Email(s string) string {
	return strings.ToLower(Text(s))
}

// Phone reduces a phone number to its digits, dropping spaces, dashes,
// parentheses and a leading plus sign.
func Phone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Slug normalizes a URL slug: scrubbed, lower-cased, spaces and
// underscores collapsed to single dashes, anything outside [a-z0-9-]
// dropped.
func Slug(s string) string {
	s = strings.ToLower(Text(s))
	var b strings.Builder
	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case r == ' ' || r == '-' || r == '_':
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
