package login

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/dayekim/devprep/internal/api"
	"github.com/dayekim/devprep/internal/auth"
	"github.com/dayekim/devprep/internal/screen"
	"github.com/dayekim/devprep/internal/ui/components"
	"github.com/dayekim/devprep/internal/ui/layout"
	"github.com/dayekim/devprep/internal/ui/theme"
)

// loginResultMsg carries the outcome of a login attempt.
type loginResultMsg struct {
	Err error
}

// LoginScreen collects a bearer token and validates it.
type LoginScreen struct {
	client    *api.Client
	session   *auth.Session
	input     components.TextInput
	verifying bool
	errMsg    string
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates the login screen.
func New(client *api.Client, session *auth.Session) *LoginScreen {
	return &LoginScreen{
		client:  client,
		session: session,
		input:   components.NewTextInput("Paste your access token...", 512),
	}
}

func (s *LoginScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *LoginScreen) Title() string {
	return "Sign in"
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Sign in"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		s.verifying = false
		if msg.Err != nil {
			s.errMsg = "Sign in failed. Check the token and try again."
			return s, s.input.Reset()
		}
		return s, func() tea.Msg { return auth.LoggedInMsg{} }

	case tea.KeyMsg:
		if msg.String() == "enter" && !s.verifying {
			token := strings.TrimSpace(s.input.Value())
			if token == "" {
				return s, nil
			}
			s.verifying = true
			s.errMsg = ""
			return s, s.login(token)
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *LoginScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n\n")
	b.WriteString(theme.Title.Width(width).Render("Sign in to devprep"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Get a token from the web app under Settings → API tokens"))
	b.WriteString("\n\n")

	line := "Token: " + s.input.View()
	if s.verifying {
		line = theme.Hint.Render("Verifying token...")
	}
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(line))

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(s.errMsg))
	}

	return b.String()
}

func (s *LoginScreen) login(token string) tea.Cmd {
	return func() tea.Msg {
		err := s.session.Login(context.Background(), s.client, token)
		return loginResultMsg{Err: err}
	}
}
