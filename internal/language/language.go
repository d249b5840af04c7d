package language

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Normalize converts a language code into its canonical BCP 47 form
// (e.g. "EN_us" becomes "en-US"). Unparseable input is returned lowercased and
// trimmed so callers can still report it.
func Normalize(code string) string {
	code = strings.ReplaceAll(strings.TrimSpace(code), "_", "-")
	if code == "" {
		return ""
	}
	tag, err := language.Parse(code)
	if err != nil {
		return strings.ToLower(code)
	}
	return tag.String()
}

// Valid reports whether code parses as a BCP 47 language tag.
func Valid(code string) bool {
	code = strings.ReplaceAll(strings.TrimSpace(code), "_", "-")
	if code == "" {
		return false
	}
	_, err := language.Parse(code)
	return err == nil
}

// Base returns the primary language subtag ("pt-BR" becomes "pt").
func Base(code string) string {
	normalized := Normalize(code)
	if i := strings.IndexByte(normalized, '-'); i > 0 {
		return normalized[:i]
	}
	return normalized
}

// DisplayName returns a human-readable English language name for code.
// Returns "Unknown" for empty input, or the code itself when it is not a
// recognized tag.
func DisplayName(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return "Unknown"
	}
	tag, err := language.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil {
		return code
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return code
}

// NormalizeList deduplicates and normalizes a list of language codes while
// preserving preference order.
func NormalizeList(languages []string) []string {
	if len(languages) == 0 {
		return nil
	}
	normalized := make([]string, 0, len(languages))
	seen := make(map[string]struct{}, len(languages))
	for _, lang := range languages {
		code := Normalize(lang)
		if code == "" {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		normalized = append(normalized, code)
	}
	return normalized
}

// Match picks the first preferred language available in offered. An exact tag
// match wins; otherwise the first offered code sharing the preferred base
// language is used. Preferences are consulted strictly in order, so an
// earlier preference matched by base language beats a later exact match.
func Match(preferred, offered []string) (string, bool) {
	for _, want := range preferred {
		want = Normalize(want)
		if want == "" {
			continue
		}
		for _, have := range offered {
			if Normalize(have) == want {
				return have, true
			}
		}
		wantBase := Base(want)
		for _, have := range offered {
			if Base(have) == wantBase {
				return have, true
			}
		}
	}
	return "", false
}
