package feed

import (
	"slices"

	"github.com/dayekim/devprep/internal/api"
)

// Sort is the server-side ordering of the feed.
type Sort int

const (
	SortLatest Sort = iota
	SortOldest
	SortPopular
)

// String returns the wire value of the sort order.
func (s Sort) String() string {
	switch s {
	case SortOldest:
		return "oldest"
	case SortPopular:
		return "popular"
	default:
		return "latest"
	}
}

// Label returns the display name of the sort order.
func (s Sort) Label() string {
	switch s {
	case SortOldest:
		return "Oldest"
	case SortPopular:
		return "Popular"
	default:
		return "Latest"
	}
}

// Next cycles to the following sort order.
func (s Sort) Next() Sort {
	return (s + 1) % 3
}

// Query is the committed search/filter/sort/page state. Changing any
// field other than Page discards accumulated items and returns to
// page 0; stale pages must never mix with a new query's pages.
type Query struct {
	Search  string
	Sort    Sort
	Sources []string
	Page    int
}

// PageRequest identifies one fetch. Gen ties the eventual result back
// to the query generation that issued it; results for a superseded
// generation are discarded rather than applied.
type PageRequest struct {
	Gen   int
	Query Query
}

// Controller accumulates a de-duplicated, ordered feed of blog posts
// for the committed query, handing out at most one page fetch at a
// time. It performs no I/O: the owning screen executes PageRequests and
// feeds results back through ApplyPage / ApplyError.
type Controller struct {
	query    Query
	items    []api.BlogPost
	gen      int
	inFlight bool
	last     bool
}

// NewController creates an empty feed controller.
func NewController() *Controller {
	return &Controller{}
}

// Query returns the committed query state.
func (c *Controller) Query() Query {
	return c.query
}

// Items returns the accumulated posts in server order.
func (c *Controller) Items() []api.BlogPost {
	return c.items
}

// Loading reports whether a page fetch is in flight.
func (c *Controller) Loading() bool {
	return c.inFlight
}

// Exhausted reports whether the server declared the last page.
func (c *Controller) Exhausted() bool {
	return c.last
}

// SetSearch commits a new search text. The caller is responsible for
// debouncing keystrokes before committing. Returns true if the query
// changed and a reload is needed.
func (c *Controller) SetSearch(text string) bool {
	if c.query.Search == text {
		return false
	}
	c.query.Search = text
	c.reset()
	return true
}

// SetSort commits a new sort order immediately.
func (c *Controller) SetSort(s Sort) bool {
	if c.query.Sort == s {
		return false
	}
	c.query.Sort = s
	c.reset()
	return true
}

// SetSources commits a new source filter immediately. Order-insensitive
// equality: toggling the same selection back is not a change.
func (c *Controller) SetSources(sources []string) bool {
	a := slices.Clone(c.query.Sources)
	b := slices.Clone(sources)
	slices.Sort(a)
	slices.Sort(b)
	if slices.Equal(a, b) {
		return false
	}
	c.query.Sources = slices.Clone(sources)
	c.reset()
	return true
}

// Reload starts the page-0 fetch for the current query. It is a no-op
// while a fetch for this generation is already in flight.
func (c *Controller) Reload() (PageRequest, bool) {
	if c.inFlight {
		return PageRequest{}, false
	}
	c.query.Page = 0
	c.inFlight = true
	return PageRequest{Gen: c.gen, Query: c.query}, true
}

// NextPage requests the following page. It is a no-op while a fetch is
// in flight or once the last page has been received, so repeated
// scroll triggers issue exactly one request.
func (c *Controller) NextPage() (PageRequest, bool) {
	if c.inFlight || c.last {
		return PageRequest{}, false
	}
	c.query.Page++
	c.inFlight = true
	return PageRequest{Gen: c.gen, Query: c.query}, true
}

// ApplyPage installs a fetched page. Page 0 replaces the accumulated
// list, later pages append in server order. Results from a superseded
// generation are ignored entirely.
func (c *Controller) ApplyPage(req PageRequest, page *api.BlogPage) {
	if req.Gen != c.gen {
		return
	}
	c.inFlight = false
	c.last = page.Last
	if req.Query.Page == 0 {
		c.items = slices.Clone(page.Content)
		return
	}
	c.items = append(c.items, page.Content...)
}

// ApplyError records a failed fetch: accumulated items stay untouched
// and the page index rolls back so the same page can be re-requested.
// No automatic retry happens here; the screen surfaces the error.
func (c *Controller) ApplyError(req PageRequest) {
	if req.Gen != c.gen {
		return
	}
	c.inFlight = false
	if req.Query.Page > 0 && c.query.Page == req.Query.Page {
		c.query.Page--
	}
}

// reset discards accumulated state after a query mutation. Bumping the
// generation makes any in-flight result stale.
func (c *Controller) reset() {
	c.query.Page = 0
	c.items = nil
	c.last = false
	c.inFlight = false
	c.gen++
}
