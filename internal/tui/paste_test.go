package tui

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/mark3labs/campus/internal/school"
	"github.com/stretchr/testify/assert"
)

func TestSanitizePaste(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"color codes", "\x1b[31mred text\x1b[0m", "red text"},
		{"cursor control", "\x1b[2K\x1b[1Gclear line", "clear line"},
		{"null and bell", "a\x00b\x07c", "abc"},
		{"crlf", "one\r\ntwo\rthree", "one\ntwo\nthree"},
		{"tabs kept", "a\tb", "a\tb"},
		{"trailing whitespace", "text  \n\n\t", "text"},
		{"plain", "plain text", "plain text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizePaste(tt.input))
		})
	}
}

func TestCollapseNewlines(t *testing.T) {
	assert.Equal(t, "334 Nguyen Trai Thanh Xuan", collapseNewlines("334 Nguyen Trai\n\n  Thanh Xuan "))
	assert.Equal(t, "", collapseNewlines("\n\n"))
}

func TestInfoStep_PasteIsSingleLine(t *testing.T) {
	s := newInfoStep()
	s.Load(school.NewFormData())
	s.Focus(school.FieldName)

	s.Update(tea.PasteMsg{Content: "\x1b[1mHanoi University\x1b[0m\r\nof Science\n"})

	var f school.FormData
	s.Apply(&f)
	assert.Equal(t, "Hanoi University of Science", f.Name)
}

func TestListStep_PasteKeepsMarkdownLines(t *testing.T) {
	s := newScholarshipsStep()
	s.Load(school.NewFormData())
	s.Focus("")
	s.Update(key("ctrl+a"))
	s.Update(key("tab")) // description

	s.Update(tea.PasteMsg{Content: "Covers **tuition**\r\n\r\n- housing\n"})

	var f school.FormData
	s.Apply(&f)
	if assert.Len(t, f.Scholarships, 1) {
		assert.Equal(t, "Covers **tuition**\n\n- housing", f.Scholarships[0].Description)
	}
}
