package interviews

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayekim/devprep/internal/api"
	"github.com/dayekim/devprep/internal/router"
	"github.com/dayekim/devprep/internal/screens/result"
	"github.com/dayekim/devprep/internal/screens/session"
)

func loadedPage() *api.InterviewPage {
	return &api.InterviewPage{
		Content: []api.InterviewSummary{
			{InterviewID: 1, Title: "Backend basics", InterviewStatus: api.InterviewProgress, QuestionCount: 5},
			{InterviewID: 2, Title: "Go deep dive", InterviewStatus: api.InterviewComplete, QuestionCount: 10},
		},
		Page: api.PageInfo{Size: 10, Number: 0, TotalElements: 2, TotalPages: 1},
	}
}

func TestViewShowsStatusPerRow(t *testing.T) {
	s := New(nil)
	s.Update(interviewsLoadedMsg{Page: loadedPage()})

	view := s.View(100, 30)
	assert.Contains(t, view, "Backend basics")
	assert.Contains(t, view, "in progress")
	assert.Contains(t, view, "Go deep dive")
	assert.Contains(t, view, "done")
}

func TestEnterOpensSessionOrResult(t *testing.T) {
	s := New(nil)
	s.Update(interviewsLoadedMsg{Page: loadedPage()})

	// In-progress row resumes the session.
	_, cmd := s.handleKey("enter")
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	_, ok = push.Screen.(*session.SessionScreen)
	assert.True(t, ok)

	// Completed row opens the graded result.
	s.cursor = 1
	_, cmd = s.handleKey("enter")
	require.NotNil(t, cmd)
	push, ok = cmd().(router.PushScreenMsg)
	require.True(t, ok)
	_, ok = push.Screen.(*result.ResultScreen)
	assert.True(t, ok)
}
