package tui

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mark3labs/campus/internal/school"
	"github.com/mark3labs/campus/internal/tui/testfixtures"
	"github.com/stretchr/testify/require"
)

func key(s string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Text: s}
}

// plain strips styling so assertions can span several styled runs.
func plain(s string) string {
	return ansi.Strip(s)
}

// collect runs cmd and flattens batches into the produced messages.
// Only use it with commands that return immediately.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func findMsg[M tea.Msg](msgs []tea.Msg) (M, bool) {
	for _, m := range msgs {
		if v, ok := m.(M); ok {
			return v, true
		}
	}
	var zero M
	return zero, false
}

func newTestWizard(t *testing.T, schools *testfixtures.MockSchools, initial school.FormData) *CreateWizard {
	t.Helper()
	if schools == nil {
		schools = testfixtures.NewMockSchools()
	}
	w, err := NewCreateWizard(context.Background(), Deps{Schools: schools}, initial)
	require.NoError(t, err)
	w.SetSize(testfixtures.TestTermWidth, testfixtures.TestTermHeight-3)
	w.Init()
	return w
}
