package stats

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// A leading "commune de", "commune d'", "commune du", "commune des",
	// "commune de la" or "commune de l'", together with any label text
	// in front of it ("Données de la commune de ...").
	communePrefixRegex = regexp.MustCompile(`^.*?\bcommunes?\s+(de\s+la\s+|de\s+l['’]\s*|du\s+|des\s+|de\s+|d['’]\s*)`)

	// Same phrase, matched against display text.
	displayPrefixRegex = regexp.MustCompile(`(?i)^\s*communes?\s+(de\s+la\s+|de\s+l['’]\s*|du\s+|des\s+|de\s+|d['’]\s*)`)

	nonKeyRegex = regexp.MustCompile(`[^a-z0-9]`)
)

// NormalizeName maps a free-text commune name to its canonical key.
//
// "Commune de Tarfaya", "TARFAYA" and "Tarfaya " all give "tarfaya".
// An empty result means the name could not be resolved.
func NormalizeName(name string) string {
	if name == "" {
		return ""
	}

	s := strings.ToLower(name)
	s = communePrefixRegex.ReplaceAllString(s, "")
	s = foldAccents(s)
	s = nonKeyRegex.ReplaceAllString(s, "")

	return strings.TrimSpace(s)
}

// namesCommune reports whether label carries a "commune de ..." phrase
// followed by a name.
func namesCommune(label string) bool {
	s := strings.ToLower(label)
	loc := communePrefixRegex.FindStringIndex(s)
	return loc != nil && strings.TrimSpace(s[loc[1]:]) != ""
}

// DisplayName strips the leading "Commune de" phrase from a name for use
// as a short label.
func DisplayName(name string) string {
	short := strings.TrimSpace(displayPrefixRegex.ReplaceAllString(name, ""))
	if short == "" {
		return strings.TrimSpace(name)
	}
	return short
}

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func foldAccents(s string) string {
	result, _, err := transform.String(stripAccents, s)
	if err != nil {
		return s
	}
	return result
}

// matchLabel reports whether label matches pattern, exactly or as a
// substring, ignoring case and accents.
func matchLabel(label, pattern string) bool {
	if pattern == "" {
		return false
	}
	l := strings.ToLower(foldAccents(strings.TrimSpace(label)))
	p := strings.ToLower(foldAccents(strings.TrimSpace(pattern)))
	return strings.Contains(l, p)
}
