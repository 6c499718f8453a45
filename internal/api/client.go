package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeout bounds every request so a hung backend surfaces as a
// user-visible failure instead of an indefinite loading state.
const DefaultTimeout = 15 * time.Second

// TokenSource supplies the current bearer token. An empty string means
// no token; the Authorization header is then omitted and protected
// routes are expected to answer 401.
type TokenSource func() string

// Client is a thin wrapper over the devprep REST backend. It holds no
// request state beyond the injected token source; all methods are safe
// for use from concurrently running tea commands.
type Client struct {
	baseURL string
	http    *http.Client
	token   TokenSource
	logger  *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHTTPClient substitutes the underlying http.Client (tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger attaches a debug logger; failures are recorded there since
// the TUI owns the terminal.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a Client for the given base URL and token source.
func New(baseURL string, token TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		token:   token,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// ListBlogPosts fetches one page of the blog feed. Query parameters
// mirror the backend contract: empty title is still sent (the server
// treats it as no filter), the source filter is omitted when empty.
func (c *Client) ListBlogPosts(ctx context.Context, title, sort string, page, size int, sources []string) (*BlogPage, error) {
	q := url.Values{}
	q.Set("title", title)
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	if sort != "" {
		q.Set("sort", sort)
	}
	if len(sources) > 0 {
		q.Set("select", strings.Join(sources, ","))
	}

	var out BlogPage
	if err := c.get(ctx, "/api/v1/blogs?"+q.Encode(), &out); err != nil {
		return nil, fmt.Errorf("list blog posts: %w", err)
	}
	return &out, nil
}

// ListTechSources fetches the dynamic list of tech-blog sources.
func (c *Client) ListTechSources(ctx context.Context) ([]TechSource, error) {
	var out []TechSource
	if err := c.get(ctx, "/api/v1/blogs/tech", &out); err != nil {
		return nil, fmt.Errorf("list tech sources: %w", err)
	}
	return out, nil
}

// CurrentQuestion fetches the question the session is waiting on.
func (c *Client) CurrentQuestion(ctx context.Context, interviewID int64) (*CurrentQuestion, error) {
	var out CurrentQuestion
	path := fmt.Sprintf("/api/interviews/%d/current/problem", interviewID)
	if err := c.get(ctx, path, &out); err != nil {
		return nil, fmt.Errorf("fetch current question: %w", err)
	}
	return &out, nil
}

// SubmitAnswer submits an answer to the current top-level question.
func (c *Client) SubmitAnswer(ctx context.Context, interviewID int64, req SubmitRequest) (*SubmitResult, error) {
	var out SubmitResult
	path := fmt.Sprintf("/api/interviews/%d/submit", interviewID)
	if err := c.post(ctx, path, req, &out); err != nil {
		return nil, fmt.Errorf("submit answer: %w", err)
	}
	return &out, nil
}

// SubmitTailAnswer submits an answer to a pending follow-up question.
func (c *Client) SubmitTailAnswer(ctx context.Context, tailQuestionID int64, req TailSubmitRequest) (*SubmitResult, error) {
	var out SubmitResult
	path := fmt.Sprintf("/api/tail-questions/%d/submit", tailQuestionID)
	if err := c.post(ctx, path, req, &out); err != nil {
		return nil, fmt.Errorf("submit tail answer: %w", err)
	}
	return &out, nil
}

// Interview fetches the session detail (fixed question list and state).
func (c *Client) Interview(ctx context.Context, interviewID int64) (*Interview, error) {
	var out Interview
	if err := c.get(ctx, fmt.Sprintf("/api/interviews/%d", interviewID), &out); err != nil {
		return nil, fmt.Errorf("fetch interview: %w", err)
	}
	return &out, nil
}

// InterviewResult fetches the graded result of a completed session.
func (c *Client) InterviewResult(ctx context.Context, interviewID int64) (*InterviewResult, error) {
	var out InterviewResult
	if err := c.get(ctx, fmt.Sprintf("/api/interviews/%d/result", interviewID), &out); err != nil {
		return nil, fmt.Errorf("fetch interview result: %w", err)
	}
	return &out, nil
}

// MyInterviews fetches one page of the caller's interviews.
func (c *Client) MyInterviews(ctx context.Context, page, size int) (*InterviewPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))

	var out InterviewPage
	if err := c.get(ctx, "/api/interviews/me?"+q.Encode(), &out); err != nil {
		return nil, fmt.Errorf("list my interviews: %w", err)
	}
	return &out, nil
}

// Me fetches the authenticated member's profile.
func (c *Client) Me(ctx context.Context) (*Member, error) {
	var out Member
	if err := c.get(ctx, "/api/v1/members/me", &out); err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	return &out, nil
}

// Logout invalidates the session server-side. Callers treat failures as
// best effort; the local token is removed regardless.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.post(ctx, "/api/v1/auth/logout", nil, nil); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		rd = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logf("%s %s: %v", method, path, err)
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logf("%s %s: status %d", method, path, resp.StatusCode)
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *Client) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}
