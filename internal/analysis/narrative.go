package analysis

import (
	"html"
	"html/template"
	"regexp"
	"strings"
)

var (
	boldPattern   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicPattern = regexp.MustCompile(`\*(.+?)\*`)
)

// FormatNarrative projects the markdown subset used by the narrative model into HTML:
// **x** becomes <strong>, *x* becomes <em>, a blank line starts a new paragraph and a
// single newline becomes a line break. Input text is escaped before any substitution.
func FormatNarrative(text string) template.HTML {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	escaped := html.EscapeString(text)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")

	formatted := boldPattern.ReplaceAllString(escaped, "<strong>$1</strong>")
	formatted = italicPattern.ReplaceAllString(formatted, "<em>$1</em>")
	formatted = strings.ReplaceAll(formatted, "\n\n", "</p><p>")
	formatted = strings.ReplaceAll(formatted, "\n", "<br>")

	return template.HTML("<p>" + formatted + "</p>")
}
