package textutil

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// TitleLabel turns a key such as "my_portfolio" into "My Portfolio".
func TitleLabel(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	spaced := strings.NewReplacer("_", " ", "-", " ").Replace(key)
	return cases.Title(language.Und).String(strings.Join(strings.Fields(spaced), " "))
}

// RuneLength counts characters after NFC normalization so composed and
// decomposed accents count the same.
func RuneLength(value string) int {
	return utf8.RuneCountInString(norm.NFC.String(value))
}

// Truncate shortens value to at most limit characters, appending an ellipsis
// when it cuts.
func Truncate(value string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(norm.NFC.String(value))
	if len(runes) <= limit {
		return string(runes)
	}
	if limit == 1 {
		return "…"
	}
	return string(runes[:limit-1]) + "…"
}
