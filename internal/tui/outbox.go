package tui

import (
	"sync"

	tea "charm.land/bubbletea/v2"
)

// outbox collects controller notifications and navigation emitted from a
// background command so they can be replayed on the UI loop.
// It implements wizard.Notifier and wizard.Navigator.
type outbox struct {
	mu     sync.Mutex
	toasts []ShowToastMsg
	path   string
}

func (o *outbox) Success(message string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.toasts = append(o.toasts, ShowToastMsg{Text: message, Kind: ToastSuccess})
}

func (o *outbox) Error(message string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.toasts = append(o.toasts, ShowToastMsg{Text: message, Kind: ToastError})
}

func (o *outbox) GoTo(path string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.path = path
}

// drain returns and clears the collected messages.
func (o *outbox) drain() ([]ShowToastMsg, string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	toasts, path := o.toasts, o.path
	o.toasts, o.path = nil, ""
	return toasts, path
}

// cmds converts drained messages into commands, toasts first.
func (o *outbox) cmds() []tea.Cmd {
	toasts, path := o.drain()
	var cmds []tea.Cmd
	for _, t := range toasts {
		cmds = append(cmds, ShowToast(t.Kind, t.Text))
	}
	if path != "" {
		cmds = append(cmds, Navigate(path))
	}
	return cmds
}
