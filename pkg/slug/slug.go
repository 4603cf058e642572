// Package slug builds URL-safe identifiers for public job pages.
package slug

import (
	"strings"
	"unicode"
)

const maxBaseLength = 60

// Make lowercases title, collapses every run of non alphanumeric runes into a
// single dash and appends a short suffix taken from id so slugs stay unique.
func Make(title, id string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}

	base := strings.Trim(b.String(), "-")
	if len(base) > maxBaseLength {
		base = strings.Trim(base[:maxBaseLength], "-")
	}
	if base == "" {
		base = "job"
	}

	suffix := strings.ToLower(strings.ReplaceAll(id, "-", ""))
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	if suffix == "" {
		return base
	}
	return base + "-" + suffix
}
