package profile

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/dayekim/devprep/internal/api"
	"github.com/dayekim/devprep/internal/auth"
	"github.com/dayekim/devprep/internal/router"
	"github.com/dayekim/devprep/internal/screen"
	"github.com/dayekim/devprep/internal/ui/layout"
	"github.com/dayekim/devprep/internal/ui/theme"
)

type loggedOutMsg struct{}

// ProfileScreen shows the signed-in member and offers logout.
type ProfileScreen struct {
	client  *api.Client
	session *auth.Session

	confirmingLogout bool
}

var _ screen.Screen = (*ProfileScreen)(nil)
var _ screen.KeyHintProvider = (*ProfileScreen)(nil)

// New creates the profile screen.
func New(client *api.Client, session *auth.Session) *ProfileScreen {
	return &ProfileScreen{client: client, session: session}
}

func (s *ProfileScreen) Init() tea.Cmd {
	return nil
}

func (s *ProfileScreen) Title() string {
	return "Profile"
}

func (s *ProfileScreen) KeyHints() []layout.KeyHint {
	if s.confirmingLogout {
		return []layout.KeyHint{
			{Key: "Y", Description: "Log out"},
			{Key: "N", Description: "Stay"},
		}
	}
	return []layout.KeyHint{
		{Key: "L", Description: "Log out"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ProfileScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loggedOutMsg:
		return s, func() tea.Msg { return auth.LoggedOutMsg{} }

	case tea.KeyMsg:
		key := msg.String()

		if s.confirmingLogout {
			switch key {
			case "y", "Y":
				session := s.session
				client := s.client
				return s, func() tea.Msg {
					// Best effort on the backend; the local token is
					// removed regardless.
					_ = session.Logout(context.Background(), client)
					return loggedOutMsg{}
				}
			case "n", "N", "esc":
				s.confirmingLogout = false
			}
			return s, nil
		}

		switch key {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "l", "L":
			s.confirmingLogout = true
		}
	}

	return s, nil
}

func (s *ProfileScreen) View(width, height int) string {
	member := s.session.Profile()
	if member == nil {
		return theme.Subtitle.Width(width).Render("\nNot signed in.")
	}

	if s.confirmingLogout {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render("\n\n" + theme.Card.Render(
				theme.Body.Render("Log out of devprep?")+"\n"+
					theme.Hint.Render("[y/n]")))
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render(member.Nickname))
	b.WriteString("\n\n")

	card := theme.Card.Width(max(width-8, 20)).Render(
		row("Name", member.Name) + "\n" +
			row("Nickname", member.Nickname) + "\n" +
			row("Email", member.Email))
	b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(card))
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("  Press l to log out."))

	return b.String()
}

func row(label, value string) string {
	if value == "" {
		value = "-"
	}
	return theme.Hint.Render(label+": ") + theme.Body.Render(value)
}
