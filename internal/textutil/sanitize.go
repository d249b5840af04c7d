package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MaxTitleBytes caps sanitized titles so derived filenames stay below common
// 255-byte filesystem limits once the video ID and extension are appended.
const MaxTitleBytes = 200

// illegalRunes are characters rejected by at least one mainstream filesystem.
const illegalRunes = `\/:*?"<>|`

// SanitizeTitle converts a video title into a filesystem-safe filename stem.
// Illegal characters become underscores, control characters are dropped,
// whitespace runs collapse to a single space, and leading/trailing spaces and
// dots are trimmed. The result is NFC-normalized and capped at MaxTitleBytes
// without separating a letter from its combining marks. SanitizeTitle is
// idempotent. It returns "" when nothing usable remains.
func SanitizeTitle(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	pendingSpace := false
	for _, r := range title {
		switch {
		case r == utf8.RuneError:
			continue
		case unicode.IsSpace(r):
			pendingSpace = b.Len() > 0
			continue
		case unicode.IsControl(r) || unicode.Is(unicode.Cf, r):
			continue
		case strings.ContainsRune(illegalRunes, r):
			r = '_'
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteRune(r)
	}

	// Normalize after filtering: dropping a character between a letter and
	// its combining mark leaves a sequence that only composes now.
	return trimStem(truncateNormalized(norm.NFC.String(b.String()), MaxTitleBytes))
}

func trimStem(value string) string {
	return strings.Trim(value, " .")
}

// truncateNormalized cuts value to at most limit bytes on a normalization
// boundary so the prefix stays in NFC.
func truncateNormalized(value string, limit int) string {
	if len(value) <= limit {
		return value
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(value[cut]) {
		cut--
	}
	if !norm.NFC.PropertiesString(value[cut:]).BoundaryBefore() {
		cut = norm.NFC.LastBoundary([]byte(value[:cut]))
		if cut < 0 {
			return ""
		}
	}
	return value[:cut]
}
