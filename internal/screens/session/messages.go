package session

import (
	"github.com/dayekim/devprep/internal/api"
)

// questionLoadedMsg is sent when the current-question fetch resolves.
type questionLoadedMsg struct {
	Gen      int
	Question *api.CurrentQuestion
	Err      error
}

// detailLoadedMsg is sent when the session detail (fixed question list)
// resolves.
type detailLoadedMsg struct {
	Gen    int
	Detail *api.Interview
	Err    error
}

// submitResolvedMsg is sent when an answer submission resolves.
type submitResolvedMsg struct {
	Gen    int
	Result *api.SubmitResult
	Err    error
}

// goToResultMsg fires after the completion notice has been visible for
// its fixed delay, navigating to the result view.
type goToResultMsg struct {
	Gen int
}
