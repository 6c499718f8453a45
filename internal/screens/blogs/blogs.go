package blogs

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/dayekim/devprep/internal/api"
	"github.com/dayekim/devprep/internal/auth"
	"github.com/dayekim/devprep/internal/feed"
	"github.com/dayekim/devprep/internal/router"
	"github.com/dayekim/devprep/internal/screen"
	"github.com/dayekim/devprep/internal/store"
	"github.com/dayekim/devprep/internal/ui/components"
	"github.com/dayekim/devprep/internal/ui/layout"
)

// scrollAhead is how close the cursor may get to the end of the list
// before the next page is requested.
const scrollAhead = 3

type pageLoadedMsg struct {
	Req  feed.PageRequest
	Page *api.BlogPage
	Err  error
}

type sourcesLoadedMsg struct {
	Sources []api.TechSource
	Err     error
}

// searchTickMsg fires when the debounce window for token elapses.
type searchTickMsg struct {
	Token int
}

type readMarksMsg struct {
	Read map[int64]bool
}

// BlogsScreen is the searchable, incrementally loading blog feed.
type BlogsScreen struct {
	client   *api.Client
	marks    *store.Store
	ctrl     *feed.Controller
	debounce *feed.Debouncer
	pageSize int

	sources   []api.TechSource
	read      map[int64]bool
	cursor    int
	expanded  bool
	searching bool
	input     components.TextInput

	// Source filter overlay.
	filtering    bool
	filterCursor int
	selected     map[string]bool
}

var _ screen.Screen = (*BlogsScreen)(nil)
var _ screen.KeyHintProvider = (*BlogsScreen)(nil)
var _ screen.Teardown = (*BlogsScreen)(nil)

// New creates the blog feed screen.
func New(client *api.Client, marks *store.Store, pageSize int, debounce time.Duration) *BlogsScreen {
	return &BlogsScreen{
		client:   client,
		marks:    marks,
		ctrl:     feed.NewController(),
		debounce: feed.NewDebouncer(debounce),
		pageSize: pageSize,
		read:     make(map[int64]bool),
		selected: make(map[string]bool),
		input:    components.NewTextInput("Search posts...", 100),
	}
}

func (s *BlogsScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{s.loadSources()}
	if req, ok := s.ctrl.Reload(); ok {
		cmds = append(cmds, s.fetchPage(req))
	}
	return tea.Batch(cmds...)
}

func (s *BlogsScreen) Title() string {
	return "Tech Blogs"
}

func (s *BlogsScreen) KeyHints() []layout.KeyHint {
	if s.filtering {
		return []layout.KeyHint{
			{Key: "Space", Description: "Toggle"},
			{Key: "Enter", Description: "Apply"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	if s.searching {
		return []layout.KeyHint{
			{Key: "Enter/Esc", Description: "Done"},
		}
	}
	return []layout.KeyHint{
		{Key: "/", Description: "Search"},
		{Key: "s", Description: "Sort"},
		{Key: "f", Description: "Sources"},
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

// Teardown cancels the pending debounce arm so a late timer cannot
// commit a search for a discarded screen.
func (s *BlogsScreen) Teardown() {
	s.debounce.Cancel()
}

func (s *BlogsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case pageLoadedMsg:
		return s.handlePageLoaded(msg)

	case sourcesLoadedMsg:
		if msg.Err == nil {
			s.sources = msg.Sources
		}
		return s, nil

	case searchTickMsg:
		if text, ok := s.debounce.Fire(msg.Token); ok {
			if s.ctrl.SetSearch(text) {
				if req, ok := s.ctrl.Reload(); ok {
					s.cursor = 0
					return s, s.fetchPage(req)
				}
			}
		}
		return s, nil

	case readMarksMsg:
		for id, read := range msg.Read {
			if read {
				s.read[id] = true
			}
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *BlogsScreen) handlePageLoaded(msg pageLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.ctrl.ApplyError(msg.Req)
		if api.IsUnauthorized(msg.Err) {
			return s, func() tea.Msg { return auth.LoggedOutMsg{Forced: true} }
		}
		return s, func() tea.Msg {
			return components.ShowToastMsg{
				Title:       "Failed to load posts",
				Description: "The feed is unchanged. Scroll again to retry.",
				Level:       components.ToastError,
			}
		}
	}

	s.ctrl.ApplyPage(msg.Req, msg.Page)
	if s.cursor >= len(s.ctrl.Items()) {
		s.cursor = max(len(s.ctrl.Items())-1, 0)
	}
	return s, s.loadReadMarks(msg.Page.Content)
}

func (s *BlogsScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.filtering {
		return s.handleFilterKey(key)
	}

	if s.searching {
		switch key {
		case "enter", "esc":
			s.searching = false
			return s, nil
		}
		var cmd tea.Cmd
		before := s.input.Value()
		s.input, cmd = s.input.Update(msg)
		if s.input.Value() != before {
			token := s.debounce.Arm(s.input.Value())
			tick := tea.Tick(s.debounce.Delay(), func(time.Time) tea.Msg {
				return searchTickMsg{Token: token}
			})
			return s, tea.Batch(cmd, tick)
		}
		return s, cmd
	}

	switch key {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "/":
		s.searching = true
		return s, s.input.Init()
	case "s":
		if s.ctrl.SetSort(s.ctrl.Query().Sort.Next()) {
			if req, ok := s.ctrl.Reload(); ok {
				s.cursor = 0
				return s, s.fetchPage(req)
			}
		}
		return s, nil
	case "f":
		s.filtering = true
		s.filterCursor = 0
		return s, nil
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
			s.expanded = false
		}
		return s, nil
	case "down", "j":
		if s.cursor < len(s.ctrl.Items())-1 {
			s.cursor++
			s.expanded = false
		}
		return s, s.maybeNextPage()
	case "enter":
		return s, s.openCurrent()
	}

	return s, nil
}

func (s *BlogsScreen) handleFilterKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "esc":
		s.filtering = false
		return s, nil
	case "up", "k":
		if s.filterCursor > 0 {
			s.filterCursor--
		}
		return s, nil
	case "down", "j":
		if s.filterCursor < len(s.sources)-1 {
			s.filterCursor++
		}
		return s, nil
	case "space", " ":
		if s.filterCursor < len(s.sources) {
			name := s.sources[s.filterCursor].Name
			s.selected[name] = !s.selected[name]
		}
		return s, nil
	case "enter":
		s.filtering = false
		var names []string
		for _, src := range s.sources {
			if s.selected[src.Name] {
				names = append(names, src.Name)
			}
		}
		if s.ctrl.SetSources(names) {
			if req, ok := s.ctrl.Reload(); ok {
				s.cursor = 0
				return s, s.fetchPage(req)
			}
		}
		return s, nil
	}
	return s, nil
}

// maybeNextPage requests the next page once the cursor nears the end of
// the accumulated list. The controller's in-flight and last-page gates
// make repeated triggers no-ops.
func (s *BlogsScreen) maybeNextPage() tea.Cmd {
	if s.cursor < len(s.ctrl.Items())-scrollAhead {
		return nil
	}
	req, ok := s.ctrl.NextPage()
	if !ok {
		return nil
	}
	return s.fetchPage(req)
}

// openCurrent expands the post under the cursor and marks it read.
func (s *BlogsScreen) openCurrent() tea.Cmd {
	items := s.ctrl.Items()
	if s.cursor >= len(items) {
		return nil
	}
	post := items[s.cursor]
	s.expanded = !s.expanded
	if s.read[post.ID] {
		return nil
	}
	s.read[post.ID] = true
	return func() tea.Msg {
		// Read marks are cosmetic: failures degrade silently.
		_ = s.marks.MarkRead(context.Background(), post.ID)
		return nil
	}
}

func (s *BlogsScreen) fetchPage(req feed.PageRequest) tea.Cmd {
	return func() tea.Msg {
		page, err := s.client.ListBlogPosts(
			context.Background(),
			req.Query.Search,
			req.Query.Sort.String(),
			req.Query.Page,
			s.pageSize,
			req.Query.Sources,
		)
		return pageLoadedMsg{Req: req, Page: page, Err: err}
	}
}

func (s *BlogsScreen) loadSources() tea.Cmd {
	return func() tea.Msg {
		sources, err := s.client.ListTechSources(context.Background())
		return sourcesLoadedMsg{Sources: sources, Err: err}
	}
}

func (s *BlogsScreen) loadReadMarks(posts []api.BlogPost) tea.Cmd {
	ids := make([]int64, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	return func() tea.Msg {
		read, err := s.marks.ReadSet(context.Background(), ids)
		if err != nil {
			return nil
		}
		return readMarksMsg{Read: read}
	}
}
