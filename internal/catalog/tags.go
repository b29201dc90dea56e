package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/mrlokans/plotpoint/internal/entities"
)

// TagTypeLabel returns the display name of a tag type, e.g. "Genre".
func TagTypeLabel(t entities.TagType) string {
	return cases.Title(language.English).String(string(t))
}

// sharedTag returns the first name of a that also appears in b, ignoring
// case, or "" when the lists are disjoint.
func sharedTag(a, b []string) string {
	fold := cases.Fold()
	seen := make(map[string]bool, len(b))
	for _, name := range b {
		seen[fold.String(name)] = true
	}
	for _, name := range a {
		if seen[fold.String(name)] {
			return name
		}
	}
	return ""
}

// NormalizeTags trims and NFC-normalizes tag names, dropping blanks and
// case-insensitive repeats. The first spelling of a repeated name wins.
func NormalizeTags(names []string) []string {
	fold := cases.Fold()
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = norm.NFC.String(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		key := fold.String(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, name)
	}
	return out
}
