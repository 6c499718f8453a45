package result

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/dayekim/devprep/internal/api"
	"github.com/dayekim/devprep/internal/router"
	"github.com/dayekim/devprep/internal/screen"
	"github.com/dayekim/devprep/internal/ui/components"
	"github.com/dayekim/devprep/internal/ui/layout"
	"github.com/dayekim/devprep/internal/ui/theme"
)

type resultLoadedMsg struct {
	Result *api.InterviewResult
	Err    error
}

// ResultScreen shows the graded outcome of a completed interview.
type ResultScreen struct {
	client      *api.Client
	interviewID int64
	result      *api.InterviewResult
	cursor      int
	loaded      bool
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates the result screen for the given interview.
func New(client *api.Client, interviewID int64) *ResultScreen {
	return &ResultScreen{client: client, interviewID: interviewID}
}

func (s *ResultScreen) Init() tea.Cmd {
	return func() tea.Msg {
		r, err := s.client.InterviewResult(context.Background(), s.interviewID)
		return resultLoadedMsg{Result: r, Err: err}
	}
}

func (s *ResultScreen) Title() string {
	return "Result"
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Questions"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resultLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			return s, func() tea.Msg {
				return components.ShowToastMsg{
					Title:       "Failed to load result",
					Description: "Go back and try again.",
					Level:       components.ToastError,
				}
			}
		}
		s.result = msg.Result
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.result != nil && s.cursor < len(s.result.InterviewQuestions)-1 {
				s.cursor++
			}
		}
	}

	return s, nil
}

func (s *ResultScreen) View(width, height int) string {
	if !s.loaded {
		return theme.Hint.Render("  Loading result...")
	}
	if s.result == nil {
		return theme.Subtitle.Width(width).Render("\nResult unavailable.")
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render(s.result.Title))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render(fmt.Sprintf("Overall score: %d", s.result.Score)))
	b.WriteString("\n\n")

	for i, q := range s.result.InterviewQuestions {
		line := fmt.Sprintf("Q%d. %s  %s", i+1, q.Question,
			theme.Hint.Render(fmt.Sprintf("score %d", q.Score)))
		if i == s.cursor {
			b.WriteString(theme.Selected.Render("  ▸ " + line))
			b.WriteString("\n")
			b.WriteString(s.renderDetail(q, width))
		} else {
			b.WriteString(theme.Unselected.Render("    " + line))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (s *ResultScreen) renderDetail(q api.ResultQuestion, width int) string {
	answer := q.AnswerContent
	if answer == "" {
		answer = "(skipped)"
	}
	feedback := q.AIFeedback
	if feedback == "" {
		feedback = "(no feedback)"
	}

	box := theme.Card.Width(max(width-10, 10)).Render(
		lipgloss.NewStyle().Foreground(theme.Secondary).Render("Your answer") + "\n" +
			theme.Body.Render(answer) + "\n\n" +
			lipgloss.NewStyle().Foreground(theme.Accent).Render("Feedback") + "\n" +
			theme.Body.Render(feedback))

	return lipgloss.NewStyle().PaddingLeft(4).Render(box) + "\n"
}
