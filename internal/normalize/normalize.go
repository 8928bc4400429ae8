// Package normalize turns raw repository path segments and user input into comparable
// keys and display labels.
package normalize

import (
	"html"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/unicode/norm"
)

var (
	jsonSuffix = regexp.MustCompile(`(?i)\.json$`)

	// Notes are plain text; every tag is stripped.
	notesPolicy = bluemonday.StrictPolicy()
)

// Name converts a raw segment into a normalized key: underscores and hyphens become
// spaces, whitespace runs collapse to one space, and the result is trimmed and lower-cased.
//
//	"Audi_R8-LMS  evo" -> "audi r8 lms evo"
func Name(value string) string {
	value = norm.NFC.String(sanitizeString(value))
	value = strings.NewReplacer("_", " ", "-", " ").Replace(value)
	return strings.ToLower(strings.Join(strings.Fields(value), " "))
}

// TitleCase upper-cases the first letter of every space separated word and leaves the
// rest of each word untouched. Empty words are dropped.
func TitleCase(value string) string {
	words := strings.Split(value, " ")
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		out = append(out, string(unicode.ToUpper(r))+w[size:])
	}
	return strings.Join(out, " ")
}

// DisplayName returns the title-cased label for a raw segment, or "" when the segment
// normalizes to nothing.
func DisplayName(value string) string {
	return TitleCase(Name(value))
}

// FileDisplayName is DisplayName with a trailing ".json" (any case) removed first.
func FileDisplayName(value string) string {
	return DisplayName(jsonSuffix.ReplaceAllString(value, ""))
}

// Notes strips markup and surrounding whitespace from user-entered free text.
func Notes(value string) string {
	clean := notesPolicy.Sanitize(sanitizeString(value))
	return strings.TrimSpace(html.UnescapeString(clean))
}

// sanitizeString removes null bytes, which break SQLite text columns and JSON output.
func sanitizeString(s string) string {
	return strings.Map(func(r rune) rune {
		if r == 0 {
			return -1
		}
		return r
	}, s)
}
