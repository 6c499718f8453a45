package home

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/dayekim/devprep/internal/api"
	"github.com/dayekim/devprep/internal/auth"
	"github.com/dayekim/devprep/internal/router"
	"github.com/dayekim/devprep/internal/screen"
	"github.com/dayekim/devprep/internal/screens/blogs"
	"github.com/dayekim/devprep/internal/screens/interviews"
	"github.com/dayekim/devprep/internal/screens/profile"
	"github.com/dayekim/devprep/internal/store"
	"github.com/dayekim/devprep/internal/ui/components"
	"github.com/dayekim/devprep/internal/ui/theme"
)

// HomeScreen is the top-level menu.
type HomeScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen with its navigation targets.
func New(client *api.Client, session *auth.Session, marks *store.Store, pageSize int, debounce time.Duration) *HomeScreen {
	menu := components.NewMenu([]components.MenuItem{
		{Label: "Tech Blogs", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: blogs.New(client, marks, pageSize, debounce)}
			}
		}},
		{Label: "My Interviews", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: interviews.New(client)}
			}
		}},
		{Label: "Profile", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: profile.New(client, session)}
			}
		}},
		{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	})

	return &HomeScreen{menu: menu}
}

func (s *HomeScreen) Init() tea.Cmd {
	return nil
}

func (s *HomeScreen) Title() string {
	return "Home"
}

func (s *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *HomeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("devprep"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("mock interviews & tech blog feed"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(s.menu.View()))

	return b.String()
}
