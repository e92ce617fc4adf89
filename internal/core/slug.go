package core

import (
	"strings"
	"unicode"
)

// Slugify turns a display name into a URL-safe identifier: lowercase,
// runs of non-alphanumerics collapsed into single hyphens, no leading or
// trailing hyphen. Uniqueness is the storage layer's job.
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
