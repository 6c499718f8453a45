package auth

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dayekim/devprep/internal/api"
)

// Backend is the slice of the API surface the session lifecycle needs.
type Backend interface {
	Me(ctx context.Context) (*api.Member, error)
	Logout(ctx context.Context) error
}

// Session owns the bearer-token lifecycle. Controllers reach the token
// only through the read-only Token accessor handed to the API client;
// they never touch storage or mutate auth state themselves.
type Session struct {
	path    string
	token   string
	profile *api.Member
}

// NewSession creates a Session persisting its token at path.
func NewSession(path string) *Session {
	return &Session{path: path}
}

// Load reads the persisted token, if any. A missing file means
// unauthenticated, not an error.
func (s *Session) Load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.token = ""
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading token file: %w", err)
	}
	s.token = strings.TrimSpace(string(data))
	return nil
}

// Token returns the current bearer token, empty when unauthenticated.
// This is the api.TokenSource for the client.
func (s *Session) Token() string {
	return s.token
}

// Authenticated reports whether a token is held and has been validated.
func (s *Session) Authenticated() bool {
	return s.token != "" && s.profile != nil
}

// Profile returns the cached member profile, nil until validated.
func (s *Session) Profile() *api.Member {
	return s.profile
}

// Validate fetches the profile with the held token. An unreadable
// profile implies an invalid session: the token is discarded so the
// caller lands on the login flow.
func (s *Session) Validate(ctx context.Context, be Backend) error {
	if s.token == "" {
		return nil
	}
	me, err := be.Me(ctx)
	if err != nil {
		s.invalidate()
		return fmt.Errorf("validate session: %w", err)
	}
	s.profile = me
	return nil
}

// Login persists the token and validates it. On validation failure the
// token is removed again and the error returned.
func (s *Session) Login(ctx context.Context, be Backend, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("empty token")
	}
	if err := s.write(token); err != nil {
		return err
	}
	s.token = token
	if err := s.Validate(ctx, be); err != nil {
		return err
	}
	return nil
}

// Logout tells the backend to invalidate the session (best effort) and
// removes the local token either way.
func (s *Session) Logout(ctx context.Context, be Backend) error {
	var logoutErr error
	if s.token != "" {
		logoutErr = be.Logout(ctx)
	}
	s.invalidate()
	return logoutErr
}

// invalidate drops the in-memory and on-disk token.
func (s *Session) invalidate() {
	s.token = ""
	s.profile = nil
	_ = os.Remove(s.path)
}

func (s *Session) write(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating token directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	return nil
}
