package domain

import (
	"strings"
)

// Slugify derives a URL slug from a product name:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - replaces runs of whitespace with a single hyphen
//
// Diacritics and other punctuation are preserved; slugs only need to
// be stable and unique, not ASCII-clean.
func Slugify(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	name = strings.ToLower(name)

	var b strings.Builder
	b.Grow(len(name))
	prevSpace := false
	for _, r := range name {
		if r == ' ' || r == '\t' {
			if prevSpace {
				continue
			}
			prevSpace = true
			b.WriteRune('-')
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
