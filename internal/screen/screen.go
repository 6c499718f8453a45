package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/dayekim/devprep/internal/ui/layout"
)

// Screen is one full-frame view managed by the router.
type Screen interface {
	// Init returns an initial command when the screen is first shown.
	Init() tea.Cmd

	// Update handles messages and returns the updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider lets a screen supply custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Teardown lets a screen cancel pending work (debounce arms, in-flight
// request generations) when the router removes it, so late results for
// a discarded view are never applied.
type Teardown interface {
	Teardown()
}
