package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// SanitizePaste cleans pasted content: escape sequences and control
// characters other than \n and \t are dropped, CRLF becomes LF and
// trailing whitespace is trimmed.
func SanitizePaste(content string) string {
	content = strings.ReplaceAll(ansi.Strip(content), "\r\n", "\n")

	var b strings.Builder
	for _, r := range content {
		switch {
		case r == '\n', r == '\t':
			b.WriteRune(r)
		case r == '\r':
			b.WriteRune('\n')
		case r < 32, r == 127:
			continue
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimRight(b.String(), " \t\n")
}

// collapseNewlines joins the lines of content with single spaces, for
// single-line inputs.
func collapseNewlines(content string) string {
	lines := strings.FieldsFunc(content, func(r rune) bool { return r == '\n' })
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return strings.Join(lines, " ")
}
