package chapters

import (
	"strings"
	"unicode/utf8"
)

// invalidFilenameChars are removed from titles before use as file names.
const invalidFilenameChars = `\/*?:"<>|`

// maxTitleLen caps sanitized titles at 100 characters.
const maxTitleLen = 100

// SanitizeTitle converts a chapter title into a safe file name component.
// Characters that are unsafe in file names are removed, spaces become
// underscores, and the result is truncated to 100 characters. Sanitizing an
// already sanitized title returns it unchanged. The result may be empty if
// the title contained only unsafe characters.
func SanitizeTitle(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	for _, r := range title {
		if strings.ContainsRune(invalidFilenameChars, r) {
			continue
		}
		if r == ' ' {
			r = '_'
		}
		b.WriteRune(r)
	}
	s := b.String()
	if utf8.RuneCountInString(s) <= maxTitleLen {
		return s
	}
	return string([]rune(s)[:maxTitleLen])
}
