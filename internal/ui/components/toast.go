package components

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/dayekim/devprep/internal/ui/theme"
)

// ToastLevel selects the toast accent color.
type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastSuccess
	ToastError
)

// DefaultToastDuration is how long a toast stays visible.
const DefaultToastDuration = 3 * time.Second

// ShowToastMsg asks the app to display a transient notification. Any
// screen can return it from Update; failures never block the view.
type ShowToastMsg struct {
	Title       string
	Description string
	Level       ToastLevel
}

// toastExpiredMsg dismisses the toast identified by seq.
type toastExpiredMsg struct {
	seq int
}

// Toaster renders at most one transient notification at a time. A new
// toast replaces the current one and restarts the expiry timer.
type Toaster struct {
	current *ShowToastMsg
	seq     int
}

// Show installs the toast and returns the expiry command.
func (t *Toaster) Show(msg ShowToastMsg) tea.Cmd {
	t.seq++
	t.current = &msg
	seq := t.seq
	return tea.Tick(DefaultToastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

// Update handles expiry. Stale timers from replaced toasts are ignored.
func (t *Toaster) Update(msg tea.Msg) {
	if exp, ok := msg.(toastExpiredMsg); ok && exp.seq == t.seq {
		t.current = nil
	}
}

// Visible reports whether a toast is showing.
func (t *Toaster) Visible() bool {
	return t.current != nil
}

// View renders the toast box, or "" when nothing is showing.
func (t *Toaster) View(width int) string {
	if t.current == nil {
		return ""
	}

	accent := theme.Primary
	switch t.current.Level {
	case ToastSuccess:
		accent = theme.Success
	case ToastError:
		accent = theme.Error
	}

	title := lipgloss.NewStyle().Foreground(accent).Bold(true).Render(t.current.Title)
	body := title
	if t.current.Description != "" {
		body += "\n" + lipgloss.NewStyle().Foreground(theme.Text).Render(t.current.Description)
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Background(theme.BgCard).
		Padding(0, 1).
		Render(body)

	return lipgloss.NewStyle().Width(width).Align(lipgloss.Right).Render(box)
}
