package version

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReleaseServer(t *testing.T, tag string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/dayekim/devprep/releases/latest", r.URL.Path)
		fmt.Fprintf(w, `{"tag_name":%q}`, tag)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCheckReportsUpdate(t *testing.T) {
	srv := newReleaseServer(t, "v1.2.0")

	c := NewChecker(WithAPIBaseURL(srv.URL))
	result, err := c.Check(context.Background(), "v1.1.0")
	require.NoError(t, err)

	assert.True(t, result.UpdateAvailable)
	assert.Equal(t, "v1.2.0", result.LatestVersion)
	assert.Equal(t, "v1.1.0", result.CurrentVersion)
}

func TestCheckAlreadyLatest(t *testing.T) {
	srv := newReleaseServer(t, "v1.2.0")

	c := NewChecker(WithAPIBaseURL(srv.URL))
	result, err := c.Check(context.Background(), "v1.2.0")
	require.NoError(t, err)
	assert.False(t, result.UpdateAvailable)
}

func TestCheckDevBuildSkipsLookup(t *testing.T) {
	c := NewChecker(WithAPIBaseURL("http://127.0.0.1:1"))
	result, err := c.Check(context.Background(), "(devel)")
	require.NoError(t, err)
	assert.False(t, result.UpdateAvailable)
	assert.Empty(t, result.LatestVersion)
}

func TestCheckHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewChecker(WithAPIBaseURL(srv.URL))
	_, err := c.Check(context.Background(), "v1.0.0")
	require.Error(t, err)
}

func TestIsNewer(t *testing.T) {
	tests := []struct {
		name    string
		latest  string
		current string
		want    bool
	}{
		{"newer patch", "v1.0.1", "v1.0.0", true},
		{"newer minor", "v1.1.0", "v1.0.9", true},
		{"equal", "v1.0.0", "v1.0.0", false},
		{"older", "v0.9.0", "v1.0.0", false},
		{"tag without v prefix", "1.1.0", "v1.0.0", true},
		{"current without v prefix", "v1.1.0", "1.0.0", true},
		{"invalid latest", "release-1", "v1.0.0", false},
		{"invalid current", "v1.1.0", "yesterday", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isNewer(tt.latest, tt.current))
		})
	}
}
