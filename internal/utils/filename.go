package utils

import (
	"regexp"
	"strings"
)

var (
	// Characters invalid in filenames on most filesystems
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	// Whitespace characters to normalize
	whitespaceChars = regexp.MustCompile(`[\r\n\t]`)
	// Multiple spaces to collapse
	multipleSpaces = regexp.MustCompile(`\s+`)
)

// maxFilenameBytes leaves room for an extension under the common 255 limit.
const maxFilenameBytes = 200

// SanitizeFilename turns free text such as a shelf or user name into a safe
// file name. Markdown link characters are dropped or softened as well.
func SanitizeFilename(filename string) string {
	filename = invalidFilenameChars.ReplaceAllString(filename, "")
	filename = whitespaceChars.ReplaceAllString(filename, " ")
	filename = multipleSpaces.ReplaceAllString(filename, " ")
	filename = strings.TrimSpace(filename)

	filename = strings.ReplaceAll(filename, "#", "")
	filename = strings.ReplaceAll(filename, "[", "(")
	filename = strings.ReplaceAll(filename, "]", ")")

	if len(filename) > maxFilenameBytes {
		filename = strings.TrimSpace(truncateUTF8(filename, maxFilenameBytes))
	}

	if filename == "" {
		filename = "Untitled"
	}

	return filename
}

// MarkdownFilename sanitizes each part, joins them with " - " and appends
// the .md extension.
func MarkdownFilename(parts ...string) string {
	clean := make([]string, 0, len(parts))
	for _, part := range parts {
		clean = append(clean, SanitizeFilename(part))
	}
	return strings.Join(clean, " - ") + ".md"
}

// QuoteYAML renders s as a double-quoted YAML scalar.
func QuoteYAML(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = whitespaceChars.ReplaceAllString(s, " ")
	return `"` + s + `"`
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && (s[n]&0xC0) == 0x80 {
		n--
	}
	return s[:n]
}
