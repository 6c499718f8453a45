package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/dayekim/devprep/internal/api"
	"github.com/dayekim/devprep/internal/auth"
	"github.com/dayekim/devprep/internal/config"
	"github.com/dayekim/devprep/internal/router"
	"github.com/dayekim/devprep/internal/screen"
	"github.com/dayekim/devprep/internal/screens/home"
	"github.com/dayekim/devprep/internal/screens/login"
	"github.com/dayekim/devprep/internal/store"
	"github.com/dayekim/devprep/internal/ui/components"
	"github.com/dayekim/devprep/internal/ui/layout"
)

// Options carries the wired-up dependencies for the TUI.
type Options struct {
	Client  *api.Client
	Session *auth.Session
	Marks   *store.Store
	Cfg     *config.Config
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts   Options
	router *router.Router
	toast  components.Toaster
	width  int
	height int
}

// newAppModel creates the root model, landing on home when a valid
// session exists and on the sign-in screen otherwise.
func newAppModel(opts Options) AppModel {
	var initial screen.Screen
	if opts.Session.Authenticated() {
		initial = homeScreen(opts)
	} else {
		initial = login.New(opts.Client, opts.Session)
	}
	return AppModel{
		opts:   opts,
		router: router.New(initial),
	}
}

func homeScreen(opts Options) screen.Screen {
	return home.New(opts.Client, opts.Session, opts.Marks,
		opts.Cfg.Feed.PageSize, opts.Cfg.Feed.GetDebounce())
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case components.ShowToastMsg:
		return m, m.toast.Show(msg)

	case auth.LoggedInMsg:
		return m, m.router.Reset(homeScreen(m.opts))

	case auth.LoggedOutMsg:
		cmd := m.router.Reset(login.New(m.opts.Client, m.opts.Session))
		if msg.Forced {
			return m, tea.Batch(cmd, m.toast.Show(components.ShowToastMsg{
				Title:       "Session expired",
				Description: "Please sign in again.",
				Level:       components.ToastError,
			}))
		}
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	m.toast.Update(msg)
	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	member := ""
	if p := m.opts.Session.Profile(); p != nil {
		member = p.Nickname
	}
	header := layout.RenderHeader(title, member, m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = append(hp.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := m.height - layout.HeaderHeight - layout.FooterHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	if m.toast.Visible() {
		content = m.toast.View(m.width) + "\n" + content
	}

	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
