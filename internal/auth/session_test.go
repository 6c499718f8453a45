package auth

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayekim/devprep/internal/api"
)

type fakeBackend struct {
	me        *api.Member
	meErr     error
	logoutErr error
	logouts   int
}

func (f *fakeBackend) Me(ctx context.Context) (*api.Member, error) {
	return f.me, f.meErr
}

func (f *fakeBackend) Logout(ctx context.Context) error {
	f.logouts++
	return f.logoutErr
}

func tokenPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "token")
}

func TestLoadMissingFileMeansUnauthenticated(t *testing.T) {
	s := NewSession(tokenPath(t))
	require.NoError(t, s.Load())
	assert.Empty(t, s.Token())
	assert.False(t, s.Authenticated())
}

func TestLoginPersistsAndValidates(t *testing.T) {
	path := tokenPath(t)
	s := NewSession(path)
	be := &fakeBackend{me: &api.Member{Nickname: "daye"}}

	require.NoError(t, s.Login(context.Background(), be, "  tok-abc \n"))

	assert.Equal(t, "tok-abc", s.Token())
	assert.True(t, s.Authenticated())
	assert.Equal(t, "daye", s.Profile().Nickname)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "tok-abc\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// A fresh session picks the token back up.
	s2 := NewSession(path)
	require.NoError(t, s2.Load())
	assert.Equal(t, "tok-abc", s2.Token())
}

func TestLoginRejectsEmptyToken(t *testing.T) {
	s := NewSession(tokenPath(t))
	err := s.Login(context.Background(), &fakeBackend{}, "   ")
	require.Error(t, err)
}

func TestLoginInvalidTokenRemovedAgain(t *testing.T) {
	path := tokenPath(t)
	s := NewSession(path)
	be := &fakeBackend{meErr: errors.New("401")}

	err := s.Login(context.Background(), be, "bad-token")
	require.Error(t, err)

	assert.Empty(t, s.Token())
	assert.False(t, s.Authenticated())
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestValidateFailureDiscardsToken(t *testing.T) {
	path := tokenPath(t)
	require.NoError(t, os.WriteFile(path, []byte("stale-token\n"), 0o600))

	s := NewSession(path)
	require.NoError(t, s.Load())
	require.Equal(t, "stale-token", s.Token())

	be := &fakeBackend{meErr: errors.New("401")}
	err := s.Validate(context.Background(), be)
	require.Error(t, err)

	assert.Empty(t, s.Token())
	assert.Nil(t, s.Profile())
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "stale token file must be removed")
}

func TestValidateWithoutTokenIsNoop(t *testing.T) {
	s := NewSession(tokenPath(t))
	be := &fakeBackend{meErr: errors.New("should not be called")}
	require.NoError(t, s.Validate(context.Background(), be))
}

func TestLogoutRemovesTokenEvenOnBackendFailure(t *testing.T) {
	path := tokenPath(t)
	s := NewSession(path)
	be := &fakeBackend{me: &api.Member{Nickname: "daye"}, logoutErr: errors.New("boom")}
	require.NoError(t, s.Login(context.Background(), be, "tok"))

	err := s.Logout(context.Background(), be)
	require.Error(t, err)

	assert.Equal(t, 1, be.logouts)
	assert.Empty(t, s.Token())
	assert.False(t, s.Authenticated())
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestLogoutWithoutTokenSkipsBackend(t *testing.T) {
	s := NewSession(tokenPath(t))
	be := &fakeBackend{}
	require.NoError(t, s.Logout(context.Background(), be))
	assert.Zero(t, be.logouts)
}
