package interviews

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/dayekim/devprep/internal/api"
	"github.com/dayekim/devprep/internal/auth"
	"github.com/dayekim/devprep/internal/router"
	"github.com/dayekim/devprep/internal/screen"
	"github.com/dayekim/devprep/internal/screens/result"
	"github.com/dayekim/devprep/internal/screens/session"
	"github.com/dayekim/devprep/internal/ui/components"
	"github.com/dayekim/devprep/internal/ui/layout"
	"github.com/dayekim/devprep/internal/ui/theme"
)

const pageSize = 10

type interviewsLoadedMsg struct {
	Page *api.InterviewPage
	Err  error
}

// InterviewsScreen lists the caller's interviews, server-paged.
type InterviewsScreen struct {
	client   *api.Client
	rows     []api.InterviewSummary
	pageInfo api.PageInfo
	page     int
	cursor   int
	loading  bool
	loaded   bool
}

var _ screen.Screen = (*InterviewsScreen)(nil)
var _ screen.KeyHintProvider = (*InterviewsScreen)(nil)

// New creates the interview list screen.
func New(client *api.Client) *InterviewsScreen {
	return &InterviewsScreen{client: client}
}

func (s *InterviewsScreen) Init() tea.Cmd {
	return s.fetch(0)
}

func (s *InterviewsScreen) Title() string {
	return "My Interviews"
}

func (s *InterviewsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Open"},
		{Key: "←→", Description: "Page"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *InterviewsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case interviewsLoadedMsg:
		s.loading = false
		s.loaded = true
		if msg.Err != nil {
			if api.IsUnauthorized(msg.Err) {
				return s, func() tea.Msg { return auth.LoggedOutMsg{Forced: true} }
			}
			return s, func() tea.Msg {
				return components.ShowToastMsg{
					Title:       "Failed to load interviews",
					Description: "Press r to retry.",
					Level:       components.ToastError,
				}
			}
		}
		s.rows = msg.Page.Content
		s.pageInfo = msg.Page.Page
		s.page = msg.Page.Page.Number
		s.cursor = 0
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg.String())
	}

	return s, nil
}

func (s *InterviewsScreen) handleKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "r":
		return s, s.fetch(s.page)
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.rows)-1 {
			s.cursor++
		}
	case "left", "h":
		if s.page > 0 && !s.loading {
			return s, s.fetch(s.page - 1)
		}
	case "right", "l":
		if s.page+1 < s.pageInfo.TotalPages && !s.loading {
			return s, s.fetch(s.page + 1)
		}
	case "enter":
		if s.cursor >= len(s.rows) {
			return s, nil
		}
		row := s.rows[s.cursor]
		if row.InterviewStatus == api.InterviewProgress {
			return s, func() tea.Msg {
				return router.PushScreenMsg{Screen: session.New(s.client, row.InterviewID)}
			}
		}
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: result.New(s.client, row.InterviewID)}
		}
	}
	return s, nil
}

func (s *InterviewsScreen) View(width, height int) string {
	var b strings.Builder

	if !s.loaded || s.loading {
		b.WriteString(theme.Hint.Render("  Loading interviews..."))
		return b.String()
	}

	if len(s.rows) == 0 {
		b.WriteString("\n")
		b.WriteString(theme.Subtitle.Width(width).Render("No interviews yet. Start one from the web app."))
		return b.String()
	}

	b.WriteString(theme.Hint.Render(fmt.Sprintf("  %d interviews · page %d/%d",
		s.pageInfo.TotalElements, s.page+1, max(s.pageInfo.TotalPages, 1))))
	b.WriteString("\n\n")

	for i, row := range s.rows {
		var status string
		switch row.InterviewStatus {
		case api.InterviewProgress:
			status = lipgloss.NewStyle().Foreground(theme.Accent).Render("in progress")
		case api.InterviewComplete, api.InterviewDone:
			status = lipgloss.NewStyle().Foreground(theme.Success).Render("done")
		default:
			status = lipgloss.NewStyle().Foreground(theme.TextDim).Render(strings.ToLower(row.InterviewStatus))
		}
		line := fmt.Sprintf("%s  %s  %s",
			row.Title,
			theme.Hint.Render(fmt.Sprintf("%d questions", row.QuestionCount)),
			status)

		if i == s.cursor {
			b.WriteString(theme.Selected.Render("  ▸ " + line))
		} else {
			b.WriteString(theme.Unselected.Render("    " + line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (s *InterviewsScreen) fetch(page int) tea.Cmd {
	s.loading = true
	return func() tea.Msg {
		p, err := s.client.MyInterviews(context.Background(), page, pageSize)
		return interviewsLoadedMsg{Page: p, Err: err}
	}
}
