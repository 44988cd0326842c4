package nav

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	nonWordRe    = regexp.MustCompile(`[^\w-]+`)
	hyphenRunRe  = regexp.MustCompile(`-{2,}`)
)

// Slugify converts a folder name into its URL form: lowercase, diacritics
// stripped via NFD decomposition, whitespace collapsed to single hyphens,
// everything outside word characters and hyphens dropped, hyphen runs
// collapsed, leading/trailing hyphens trimmed.
//
// It is pure and stable, and is the single source of truth used both when
// generating paths and when resolving a path back to a folder.
func Slugify(name string) string {
	s := norm.NFD.String(strings.ToLower(name))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		// Drop combining marks left over from decomposition.
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}

	s = whitespaceRe.ReplaceAllString(b.String(), "-")
	s = nonWordRe.ReplaceAllString(s, "")
	s = hyphenRunRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
