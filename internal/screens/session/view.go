package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/dayekim/devprep/internal/api"
	"github.com/dayekim/devprep/internal/interview"
	"github.com/dayekim/devprep/internal/ui/components"
	"github.com/dayekim/devprep/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	if s.confirmingQuit {
		return renderQuitConfirm(width)
	}

	switch s.ctrl.State() {
	case interview.StateLoading:
		return theme.Hint.Render("  Loading question...")
	case interview.StateDone:
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Render("\n\nInterview complete! Opening your results...")
	}

	var b strings.Builder

	index, size := s.ctrl.Progress()
	bar := components.ProgressBar{
		Label:   "  Progress",
		Current: index,
		Total:   size,
		Width:   width - 4,
	}
	b.WriteString(bar.View())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-2, 0))))
	b.WriteString("\n")

	if s.detail != nil && len(s.detail.InterviewQuestions) > 0 {
		b.WriteString(s.renderQuestionList(width))
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-2, 0))))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(s.renderTranscript(width))
	b.WriteString("\n")

	if s.ctrl.State() == interview.StateAwaiting {
		b.WriteString("  Answer: " + s.input.View())
	} else {
		b.WriteString(theme.Hint.Render("  Waiting for evaluation..."))
	}

	return b.String()
}

// renderQuestionList shows the session's fixed question list with
// per-question answer state, the pointed-to question marked.
func (s *SessionScreen) renderQuestionList(width int) string {
	currentID := int64(-1)
	if q := s.ctrl.Current(); q != nil {
		currentID = q.InterviewQuestionID
	}

	var b strings.Builder
	for i, q := range s.detail.InterviewQuestions {
		marker := "·"
		style := theme.Unselected
		switch {
		case q.InterviewQuestionID == currentID:
			marker = "▸"
			style = theme.Selected
		case q.AnswerState == api.AnswerStateComplete:
			marker = "✓"
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case q.AnswerState == api.AnswerStatePass:
			marker = "-"
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		}
		line := fmt.Sprintf("%s Q%d. %s", marker, i+1, truncate(q.Question, max(width-12, 10)))
		b.WriteString(style.Render("  " + line))
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-1]) + "…"
}

func (s *SessionScreen) renderTranscript(width int) string {
	var b strings.Builder

	bubbleWidth := max(width-16, 20)
	for _, e := range s.ctrl.Transcript() {
		switch e.Kind {
		case interview.KindQuestion:
			bubble := theme.QuestionBubble.Width(min(bubbleWidth, lipgloss.Width(e.Text)+4)).Render(e.Text)
			b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(bubble))
		case interview.KindAnswer:
			bubble := theme.AnswerBubble.Width(min(bubbleWidth, lipgloss.Width(e.Text)+4)).Render(e.Text)
			b.WriteString(lipgloss.NewStyle().Width(width - 2).Align(lipgloss.Right).Render(bubble))
		case interview.KindSystem:
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Render(theme.SystemLine.Render(e.Text)))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func renderQuitConfirm(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render("\n\n" + theme.Card.Render(
			theme.Body.Render("Leave this interview?")+"\n"+
				theme.Hint.Render("Your progress is saved server-side. [y/n]")))
}
