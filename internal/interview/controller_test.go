package interview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayekim/devprep/internal/api"
)

// fakeClock advances a controller's notion of time by fixed steps.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) now() time.Time {
	return f.t
}

func (f *fakeClock) advance(d time.Duration) {
	f.t = f.t.Add(d)
}

func newTestController(clock *fakeClock) *Controller {
	c := NewController(42)
	c.now = clock.now
	return c
}

func question(id int64, text string, index int) *api.CurrentQuestion {
	return &api.CurrentQuestion{
		InterviewID:         42,
		InterviewQuestionID: id,
		Question:            text,
		Index:               index,
		Size:                5,
		InterviewStatus:     api.InterviewProgress,
	}
}

func texts(entries []Entry) []string {
	var out []string
	for _, e := range entries {
		out = append(out, e.Text)
	}
	return out
}

func TestApplyQuestionStartsConversation(t *testing.T) {
	clock := newFakeClock()
	c := newTestController(clock)

	c.ApplyQuestion(question(1, "What is a goroutine?", 1))

	assert.Equal(t, StateAwaiting, c.State())
	assert.False(t, c.TailActive())
	require.Len(t, c.Transcript(), 1)
	assert.Equal(t, KindQuestion, c.Transcript()[0].Kind)

	index, size := c.Progress()
	assert.Equal(t, 1, index)
	assert.Equal(t, 5, size)
}

func TestSubmitRejectsEmptyAnswer(t *testing.T) {
	c := newTestController(newFakeClock())
	c.ApplyQuestion(question(1, "Q", 1))

	_, ok := c.Submit("   \n\t ")
	assert.False(t, ok)
	assert.Equal(t, StateAwaiting, c.State())
	assert.Len(t, c.Transcript(), 1)
}

func TestSubmitMeasuresTimeToAnswer(t *testing.T) {
	clock := newFakeClock()
	c := newTestController(clock)
	c.ApplyQuestion(question(1, "Q", 1))

	clock.advance(37 * time.Second)
	sub, ok := c.Submit("channels and the scheduler")
	require.True(t, ok)

	assert.Equal(t, 37, sub.TimeToAnswer)
	assert.Equal(t, api.AnswerStateComplete, sub.AnswerState)
	assert.Equal(t, int64(42), sub.InterviewID)
	assert.Equal(t, int64(1), sub.InterviewQuestionID)
	assert.False(t, sub.Tail)

	// One answer at a time: a second submit is rejected until resolve.
	assert.Equal(t, StateSubmitting, c.State())
	_, ok = c.Submit("another answer")
	assert.False(t, ok)
}

func TestSubmitShowsEvaluatingUntilResolve(t *testing.T) {
	c := newTestController(newFakeClock())
	c.ApplyQuestion(question(1, "Q", 1))

	_, ok := c.Submit("an answer")
	require.True(t, ok)
	assert.Contains(t, texts(c.Transcript()), evaluatingText)

	c.ApplyResult(&api.SubmitResult{})
	assert.NotContains(t, texts(c.Transcript()), evaluatingText)
}

func TestTailQuestionKeepsTranscript(t *testing.T) {
	clock := newFakeClock()
	c := newTestController(clock)
	c.ApplyQuestion(question(1, "Explain channels", 1))

	_, ok := c.Submit("they move values between goroutines")
	require.True(t, ok)

	tailID := int64(77)
	c.ApplyResult(&api.SubmitResult{
		TailQuestionID: &tailID,
		Question:       "What about buffered channels?",
	})

	assert.Equal(t, StateAwaiting, c.State())
	assert.True(t, c.TailActive())

	// Original question, first answer, and follow-up all visible.
	got := texts(c.Transcript())
	require.Len(t, got, 3)
	assert.Equal(t, "Explain channels", got[0])
	assert.Equal(t, "What about buffered channels?", got[2])

	// The next submission targets the tail endpoint.
	clock.advance(10 * time.Second)
	sub, ok := c.Submit("they decouple sender and receiver")
	require.True(t, ok)
	assert.True(t, sub.Tail)
	assert.Equal(t, int64(77), sub.TailQuestionID)
	assert.Equal(t, 10, sub.TimeToAnswer)
}

func TestNoTailAdvancesAndClearsTranscript(t *testing.T) {
	c := newTestController(newFakeClock())
	c.ApplyQuestion(question(1, "Q1", 1))

	_, ok := c.Submit("answer")
	require.True(t, ok)
	c.ApplyResult(&api.SubmitResult{TailQuestionID: nil})

	assert.Equal(t, StateLoading, c.State())
	assert.False(t, c.TailActive())
	assert.Empty(t, c.Transcript())

	// The re-fetched question starts a fresh conversation.
	c.ApplyQuestion(question(2, "Q2", 2))
	assert.Equal(t, StateAwaiting, c.State())
	require.Len(t, c.Transcript(), 1)
	assert.Equal(t, "Q2", c.Transcript()[0].Text)
}

func TestTailResolvedOnNextAdvance(t *testing.T) {
	c := newTestController(newFakeClock())
	c.ApplyQuestion(question(1, "Q1", 1))

	_, _ = c.Submit("a1")
	tailID := int64(9)
	c.ApplyResult(&api.SubmitResult{TailQuestionID: &tailID, Question: "follow-up"})

	_, ok := c.Submit("a2")
	require.True(t, ok)
	c.ApplyResult(&api.SubmitResult{TailQuestionID: nil})

	assert.False(t, c.TailActive())
	assert.Equal(t, StateLoading, c.State())

	// Back at a fresh top-level question, submissions are top-level again.
	c.ApplyQuestion(question(2, "Q2", 2))
	sub, ok := c.Submit("a3")
	require.True(t, ok)
	assert.False(t, sub.Tail)
}

func TestSkipSendsPassWithoutContent(t *testing.T) {
	c := newTestController(newFakeClock())
	c.ApplyQuestion(question(1, "Q", 1))

	sub, ok := c.Skip()
	require.True(t, ok)
	assert.Equal(t, api.AnswerStatePass, sub.AnswerState)
	assert.Empty(t, sub.AnswerContent)
	assert.Equal(t, StateSubmitting, c.State())
	assert.Contains(t, texts(c.Transcript()), skippedText)

	_, ok = c.Skip()
	assert.False(t, ok, "skip rejected while submitting")
}

func TestSubmitErrorAllowsRetry(t *testing.T) {
	c := newTestController(newFakeClock())
	c.ApplyQuestion(question(1, "Q", 1))

	_, ok := c.Submit("first try")
	require.True(t, ok)
	c.ApplySubmitError()

	assert.Equal(t, StateAwaiting, c.State())
	got := texts(c.Transcript())
	assert.NotContains(t, got, evaluatingText)
	assert.Contains(t, got, submitFailedText)

	// Same question, manual retry.
	sub, ok := c.Submit("second try")
	require.True(t, ok)
	assert.Equal(t, int64(1), sub.InterviewQuestionID)
}

func TestDoneIsTerminal(t *testing.T) {
	c := newTestController(newFakeClock())
	c.ApplyQuestion(&api.CurrentQuestion{InterviewStatus: api.InterviewDone})

	assert.Equal(t, StateDone, c.State())
	assert.Nil(t, c.Current())
	assert.Empty(t, c.Transcript())

	// No submissions and no new questions once done.
	_, ok := c.Submit("late answer")
	assert.False(t, ok)
	c.ApplyQuestion(question(1, "Q", 1))
	assert.Equal(t, StateDone, c.State())
}

func TestStaleResultIgnoredOutsideSubmitting(t *testing.T) {
	c := newTestController(newFakeClock())
	c.ApplyQuestion(question(1, "Q", 1))

	tailID := int64(5)
	c.ApplyResult(&api.SubmitResult{TailQuestionID: &tailID, Question: "x"})
	assert.Equal(t, StateAwaiting, c.State())
	assert.False(t, c.TailActive())

	c.ApplySubmitError()
	assert.Equal(t, StateAwaiting, c.State())
	assert.Len(t, c.Transcript(), 1)
}
