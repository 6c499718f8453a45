package interview

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dayekim/devprep/internal/api"
)

// State is the conversational phase of an active session.
type State int

const (
	// StateLoading waits for the current question fetch.
	StateLoading State = iota
	// StateAwaiting has a question on screen and accepts an answer.
	StateAwaiting
	// StateSubmitting has a submission in flight; further submissions
	// are rejected until it resolves, which serializes answers.
	StateSubmitting
	// StateDone is terminal: the server reported completion and no
	// further question fetches are permitted.
	StateDone
)

// EntryKind classifies a transcript line.
type EntryKind int

const (
	KindQuestion EntryKind = iota
	KindAnswer
	KindSystem
)

// Entry is one line of the ephemeral conversation for the current
// top-level question. Pure UI state, never persisted.
type Entry struct {
	ID   string
	Kind EntryKind
	Text string
	At   time.Time
}

// Submission describes one answer to send. Tail selects between the
// tail-question endpoint and the top-level endpoint.
type Submission struct {
	Tail                bool
	TailQuestionID      int64
	InterviewID         int64
	InterviewQuestionID int64
	AnswerState         string
	TimeToAnswer        int
	AnswerContent       string
}

const (
	evaluatingText   = "Evaluating your answer..."
	submitFailedText = "Submission failed. Press Enter to retry."
	skippedText      = "Question skipped."
)

// Controller is the state machine over a single active interview. It
// performs no I/O: the session screen executes Submissions and question
// fetches and feeds outcomes back through the Apply methods.
type Controller struct {
	interviewID int64
	state       State
	current     *api.CurrentQuestion
	tailID      *int64
	transcript  []Entry
	askedAt     time.Time
	pendingID   string // transient "evaluating" entry, removed on resolve

	now func() time.Time
}

// NewController creates a controller for the given interview.
func NewController(interviewID int64) *Controller {
	return &Controller{
		interviewID: interviewID,
		now:         time.Now,
	}
}

// InterviewID returns the session identifier.
func (c *Controller) InterviewID() int64 {
	return c.interviewID
}

// State returns the current phase.
func (c *Controller) State() State {
	return c.state
}

// Current returns the pointed-to question, nil while loading or done.
func (c *Controller) Current() *api.CurrentQuestion {
	return c.current
}

// TailActive reports whether a follow-up question is pending.
func (c *Controller) TailActive() bool {
	return c.tailID != nil
}

// Transcript returns the conversation lines in order.
func (c *Controller) Transcript() []Entry {
	return c.transcript
}

// Progress returns the 1-based position and total of top-level questions.
func (c *Controller) Progress() (index, size int) {
	if c.current == nil {
		return 0, 0
	}
	return c.current.Index, c.current.Size
}

// ApplyQuestion installs a freshly fetched current question. A DONE
// status ends the session; otherwise the transcript restarts with the
// question text and the controller awaits an answer.
func (c *Controller) ApplyQuestion(q *api.CurrentQuestion) {
	if c.state == StateDone {
		return
	}
	if q.Done() {
		c.state = StateDone
		c.current = nil
		c.tailID = nil
		c.transcript = nil
		return
	}
	c.current = q
	c.tailID = nil
	c.transcript = []Entry{c.entry(KindQuestion, q.Question)}
	c.askedAt = c.now()
	c.state = StateAwaiting
}

// Submit accepts a free-text answer while awaiting one. Empty or
// whitespace-only text is rejected before it reaches the server, as is
// any call while a submission is already in flight.
func (c *Controller) Submit(text string) (Submission, bool) {
	text = strings.TrimSpace(text)
	if text == "" || c.state != StateAwaiting || c.current == nil {
		return Submission{}, false
	}

	c.transcript = append(c.transcript, c.entry(KindAnswer, text))
	c.appendPending()
	c.state = StateSubmitting

	return c.submission(api.AnswerStateComplete, text), true
}

// Skip bypasses the pending question with a PASS submission and no
// answer content. Not permitted while a submission is in flight.
func (c *Controller) Skip() (Submission, bool) {
	if c.state != StateAwaiting || c.current == nil {
		return Submission{}, false
	}

	c.transcript = append(c.transcript, c.entry(KindSystem, skippedText))
	c.appendPending()
	c.state = StateSubmitting

	return c.submission(api.AnswerStatePass, ""), true
}

// ApplyResult handles the grader's response. A follow-up id keeps the
// transcript and nests the conversation under the tail question; a nil
// id clears the transcript and returns to loading so the screen
// re-fetches the current question (which may now report DONE).
func (c *Controller) ApplyResult(res *api.SubmitResult) {
	if c.state != StateSubmitting {
		return
	}
	c.removePending()

	if res.TailQuestionID != nil {
		id := *res.TailQuestionID
		c.tailID = &id
		c.transcript = append(c.transcript, c.entry(KindQuestion, res.Question))
		c.askedAt = c.now()
		c.state = StateAwaiting
		return
	}

	c.tailID = nil
	c.transcript = nil
	c.state = StateLoading
}

// ApplySubmitError returns to awaiting with the same pending question
// so the user can retry manually. No automatic retry.
func (c *Controller) ApplySubmitError() {
	if c.state != StateSubmitting {
		return
	}
	c.removePending()
	c.transcript = append(c.transcript, c.entry(KindSystem, submitFailedText))
	c.state = StateAwaiting
}

func (c *Controller) submission(answerState, content string) Submission {
	sub := Submission{
		InterviewID:         c.interviewID,
		InterviewQuestionID: c.current.InterviewQuestionID,
		AnswerState:         answerState,
		TimeToAnswer:        int(c.now().Sub(c.askedAt).Seconds()),
		AnswerContent:       content,
	}
	if c.tailID != nil {
		sub.Tail = true
		sub.TailQuestionID = *c.tailID
	}
	return sub
}

func (c *Controller) appendPending() {
	e := c.entry(KindSystem, evaluatingText)
	c.pendingID = e.ID
	c.transcript = append(c.transcript, e)
}

func (c *Controller) removePending() {
	if c.pendingID == "" {
		return
	}
	for i, e := range c.transcript {
		if e.ID == c.pendingID {
			c.transcript = append(c.transcript[:i], c.transcript[i+1:]...)
			break
		}
	}
	c.pendingID = ""
}

func (c *Controller) entry(kind EntryKind, text string) Entry {
	return Entry{
		ID:   uuid.New().String(),
		Kind: kind,
		Text: text,
		At:   c.now(),
	}
}
