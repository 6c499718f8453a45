package session

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/dayekim/devprep/internal/api"
	"github.com/dayekim/devprep/internal/auth"
	"github.com/dayekim/devprep/internal/interview"
	"github.com/dayekim/devprep/internal/router"
	"github.com/dayekim/devprep/internal/screen"
	"github.com/dayekim/devprep/internal/screens/result"
	"github.com/dayekim/devprep/internal/ui/components"
	"github.com/dayekim/devprep/internal/ui/layout"
)

// completionDelay keeps the completion notice visible before the
// screen hands off to the result view.
const completionDelay = time.Second

// SessionScreen is the chat-style interview conversation.
type SessionScreen struct {
	client *api.Client
	ctrl   *interview.Controller
	detail *api.Interview
	input  components.TextInput

	// gen invalidates in-flight results once the screen is torn down
	// or hands off, so late responses are discarded, not applied.
	gen int

	confirmingQuit bool
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.Teardown = (*SessionScreen)(nil)

// New creates the session screen for the given interview.
func New(client *api.Client, interviewID int64) *SessionScreen {
	return &SessionScreen{
		client: client,
		ctrl:   interview.NewController(interviewID),
		input:  components.NewTextInput("Type your answer...", 2000),
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	return tea.Batch(
		s.fetchDetail(),
		s.fetchQuestion(),
		s.input.Init(),
	)
}

func (s *SessionScreen) Title() string {
	return "Interview"
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.confirmingQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave"},
			{Key: "N", Description: "Stay"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+S", Description: "Skip"},
		{Key: "Esc", Description: "Leave"},
	}
}

// Teardown invalidates in-flight work for this screen.
func (s *SessionScreen) Teardown() {
	s.gen++
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionLoadedMsg:
		return s.handleQuestionLoaded(msg)

	case detailLoadedMsg:
		if msg.Gen == s.gen && msg.Err == nil {
			s.detail = msg.Detail
		}
		return s, nil

	case submitResolvedMsg:
		return s.handleSubmitResolved(msg)

	case goToResultMsg:
		if msg.Gen != s.gen {
			return s, nil
		}
		id := s.ctrl.InterviewID()
		client := s.client
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: result.New(client, id)}
		}

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.ctrl.State() == interview.StateAwaiting && !s.confirmingQuit {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SessionScreen) handleQuestionLoaded(msg questionLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.Gen != s.gen {
		return s, nil
	}
	if msg.Err != nil {
		if api.IsUnauthorized(msg.Err) {
			return s, func() tea.Msg { return auth.LoggedOutMsg{Forced: true} }
		}
		return s, func() tea.Msg {
			return components.ShowToastMsg{
				Title:       "Failed to load question",
				Description: "Press r to retry.",
				Level:       components.ToastError,
			}
		}
	}

	s.ctrl.ApplyQuestion(msg.Question)

	if s.ctrl.State() == interview.StateDone {
		// Show the completion notice, then hand off to the result view
		// after a fixed delay so the notice is visible. The state gate
		// means no further question fetches can happen.
		gen := s.gen
		toast := func() tea.Msg {
			return components.ShowToastMsg{
				Title:       "Interview complete",
				Description: "All questions answered. Opening your results.",
				Level:       components.ToastSuccess,
			}
		}
		navigate := tea.Tick(completionDelay, func(time.Time) tea.Msg {
			return goToResultMsg{Gen: gen}
		})
		return s, tea.Batch(toast, navigate)
	}

	return s, s.input.Reset()
}

func (s *SessionScreen) handleSubmitResolved(msg submitResolvedMsg) (screen.Screen, tea.Cmd) {
	if msg.Gen != s.gen {
		return s, nil
	}
	if msg.Err != nil {
		s.ctrl.ApplySubmitError()
		return s, s.input.Reset()
	}

	s.ctrl.ApplyResult(msg.Result)

	if s.ctrl.State() == interview.StateLoading {
		// No follow-up: advance to the next top-level question and
		// refresh the question list's answer states.
		return s, tea.Batch(s.fetchQuestion(), s.fetchDetail())
	}
	// Follow-up question arrived; keep the transcript and re-focus.
	return s, s.input.Reset()
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirmingQuit {
		switch key {
		case "y", "Y":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.confirmingQuit = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.confirmingQuit = true
		return s, nil
	case "r":
		if s.ctrl.State() == interview.StateLoading {
			return s, s.fetchQuestion()
		}
	case "enter":
		if sub, ok := s.ctrl.Submit(s.input.Value()); ok {
			return s, tea.Batch(s.submit(sub), s.input.Reset())
		}
		return s, nil
	case "ctrl+s":
		if sub, ok := s.ctrl.Skip(); ok {
			return s, tea.Batch(s.submit(sub), s.input.Reset())
		}
		return s, nil
	}

	if s.ctrl.State() == interview.StateAwaiting {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SessionScreen) fetchQuestion() tea.Cmd {
	gen := s.gen
	return func() tea.Msg {
		q, err := s.client.CurrentQuestion(context.Background(), s.ctrl.InterviewID())
		return questionLoadedMsg{Gen: gen, Question: q, Err: err}
	}
}

func (s *SessionScreen) fetchDetail() tea.Cmd {
	gen := s.gen
	return func() tea.Msg {
		d, err := s.client.Interview(context.Background(), s.ctrl.InterviewID())
		return detailLoadedMsg{Gen: gen, Detail: d, Err: err}
	}
}

func (s *SessionScreen) submit(sub interview.Submission) tea.Cmd {
	gen := s.gen
	return func() tea.Msg {
		var (
			res *api.SubmitResult
			err error
		)
		if sub.Tail {
			res, err = s.client.SubmitTailAnswer(context.Background(), sub.TailQuestionID, api.TailSubmitRequest{
				InterviewQuestionID: sub.InterviewQuestionID,
				TailQuestionID:      sub.TailQuestionID,
				AnswerState:         sub.AnswerState,
				TimeToAnswer:        sub.TimeToAnswer,
				AnswerContent:       sub.AnswerContent,
			})
		} else {
			res, err = s.client.SubmitAnswer(context.Background(), sub.InterviewID, api.SubmitRequest{
				InterviewQuestionID: sub.InterviewQuestionID,
				AnswerState:         sub.AnswerState,
				TimeToAnswer:        sub.TimeToAnswer,
				AnswerContent:       sub.AnswerContent,
			})
		}
		return submitResolvedMsg{Gen: gen, Result: res, Err: err}
	}
}
