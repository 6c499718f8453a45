package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayekim/devprep/internal/api"
	"github.com/dayekim/devprep/internal/interview"
)

func sessionDetail() *api.Interview {
	return &api.Interview{
		InterviewID:    42,
		InterviewState: api.InterviewProgress,
		InterviewQuestions: []api.InterviewQuestion{
			{InterviewQuestionID: 1, Question: "Explain goroutines", AnswerState: api.AnswerStateComplete},
			{InterviewQuestionID: 2, Question: "Explain channels", AnswerState: "INIT"},
			{InterviewQuestionID: 3, Question: "Explain interfaces", AnswerState: "INIT"},
		},
	}
}

func currentQuestion(id int64, text string, index int) *api.CurrentQuestion {
	return &api.CurrentQuestion{
		InterviewID:         42,
		InterviewQuestionID: id,
		Question:            text,
		Index:               index,
		Size:                3,
		InterviewStatus:     api.InterviewProgress,
	}
}

func TestViewRendersQuestionList(t *testing.T) {
	s := New(nil, 42)
	s.Update(questionLoadedMsg{Gen: 0, Question: currentQuestion(2, "Explain channels", 2)})

	// Before the detail resolves only the transcript shows the question.
	view := s.View(100, 40)
	assert.NotContains(t, view, "Q1.")

	s.Update(detailLoadedMsg{Gen: 0, Detail: sessionDetail()})
	view = s.View(100, 40)

	assert.Contains(t, view, "Q1. Explain goroutines")
	assert.Contains(t, view, "Q2. Explain channels")
	assert.Contains(t, view, "Q3. Explain interfaces")
	assert.Contains(t, view, "▸ Q2.", "pointed-to question is marked")
	assert.Contains(t, view, "✓ Q1.", "answered question is checked")
	assert.Contains(t, view, "· Q3.", "unanswered question is pending")
}

func TestStaleDetailDiscardedAfterTeardown(t *testing.T) {
	s := New(nil, 42)
	s.Update(questionLoadedMsg{Gen: 0, Question: currentQuestion(2, "Explain channels", 2)})
	s.Teardown()

	s.Update(detailLoadedMsg{Gen: 0, Detail: sessionDetail()})
	assert.Nil(t, s.detail)
}

func TestAdvanceRefreshesQuestionAndDetail(t *testing.T) {
	s := New(nil, 42)
	s.Update(questionLoadedMsg{Gen: 0, Question: currentQuestion(1, "Explain goroutines", 1)})
	s.Update(detailLoadedMsg{Gen: 0, Detail: sessionDetail()})

	_, ok := s.ctrl.Submit("they are cheap userspace threads")
	require.True(t, ok)

	_, cmd := s.Update(submitResolvedMsg{Gen: 0, Result: &api.SubmitResult{}})
	assert.Equal(t, interview.StateLoading, s.ctrl.State())
	assert.NotNil(t, cmd, "advancing re-fetches the question and the detail")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "0123456…", truncate("0123456789", 8))
}
