package auth

// LoggedInMsg is emitted when a login completes; the app resets the
// screen stack to the home screen.
type LoggedInMsg struct{}

// LoggedOutMsg is emitted on logout, user-initiated or forced by an
// invalid session; the app resets the screen stack to the login screen.
type LoggedOutMsg struct {
	Forced bool
}
