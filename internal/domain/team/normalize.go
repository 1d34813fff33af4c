package team

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stateSuffix = regexp.MustCompile(`-[A-Z]{2}$`)

// aliases maps cleaned name variants to the short canonical club name.
// Canonical names that themselves carry a state suffix are listed as their
// own fixed points, which keeps Normalize idempotent: the alias lookup runs
// before the suffix strip, so "Atletico-MG" never degrades to "Atletico".
var aliases = map[string]string{
	"Atletico Mineiro":                "Atletico-MG",
	"Atletico-MG":                     "Atletico-MG",
	"Atletico MG":                     "Atletico-MG",
	"Atletico Paranaense":             "Athletico-PR",
	"Athletico Paranaense":            "Athletico-PR",
	"Athletico-PR":                    "Athletico-PR",
	"Atletico Goianiense":             "Atletico-GO",
	"Atletico-GO":                     "Atletico-GO",
	"Sport Club Corinthians Paulista": "Corinthians",
	"Sociedade Esportiva Palmeiras":   "Palmeiras",
	"Sao Paulo FC":                    "Sao Paulo",
	"Sao Paulo Futebol Clube":         "Sao Paulo",
}

// deaccent rewrites accented latin characters to their unaccented base form
// by decomposing and dropping combining marks.
var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize maps a raw team name to its canonical identity. It is pure,
// total and idempotent; unknown names pass through structurally cleaned
// (accents stripped, whitespace collapsed, trailing "-XX" state suffix
// removed). Empty input normalizes to the empty string.
func Normalize(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return ""
	}

	if cleaned, _, err := transform.String(deaccent, name); err == nil {
		name = cleaned
	}
	name = strings.Join(strings.Fields(name), " ")

	if canonical, ok := aliases[name]; ok {
		return canonical
	}

	name = stateSuffix.ReplaceAllString(name, "")
	if canonical, ok := aliases[name]; ok {
		return canonical
	}
	return name
}
