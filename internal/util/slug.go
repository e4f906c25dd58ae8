package util

import (
	"strings"
	"unicode"
)

// Slugify derives a URL slug from a title: lowercased, runs of
// non-alphanumerics collapsed to single hyphens. Unicode letters are kept
// so non-latin titles stay addressable.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteRune('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
