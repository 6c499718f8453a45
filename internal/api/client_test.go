package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticToken(tok string) TokenSource {
	return func() string { return tok }
}

func TestListBlogPostsQueryParams(t *testing.T) {
	var gotQuery map[string][]string
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/api/v1/blogs", r.URL.Path)
		_ = json.NewEncoder(w).Encode(BlogPage{
			Content: []BlogPost{{ID: 1, Title: "first"}},
			Last:    true,
		})
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("tok-123"))
	page, err := c.ListBlogPosts(context.Background(), "go", "latest", 2, 12, []string{"kakao", "toss"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, []string{"go"}, gotQuery["title"])
	assert.Equal(t, []string{"2"}, gotQuery["page"])
	assert.Equal(t, []string{"12"}, gotQuery["size"])
	assert.Equal(t, []string{"latest"}, gotQuery["sort"])
	assert.Equal(t, []string{"kakao,toss"}, gotQuery["select"])

	require.Len(t, page.Content, 1)
	assert.True(t, page.Last)
}

func TestListBlogPostsOmitsEmptySourceFilter(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_ = json.NewEncoder(w).Encode(BlogPage{})
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken(""))
	_, err := c.ListBlogPosts(context.Background(), "", "latest", 0, 12, nil)
	require.NoError(t, err)

	_, hasSelect := gotQuery["select"]
	assert.False(t, hasSelect, "empty source filter must be omitted")
	assert.Equal(t, []string{""}, gotQuery["title"], "empty title is still sent")
}

func TestNoAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	var hasAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, hasAuth = r.Header["Authorization"]
		_ = json.NewEncoder(w).Encode([]TechSource{})
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken(""))
	_, err := c.ListTechSources(context.Background())
	require.NoError(t, err)
	assert.False(t, hasAuth, gotAuth)
}

func TestSubmitAnswerBody(t *testing.T) {
	var gotPath string
	var gotBody SubmitRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(SubmitResult{Question: "follow-up?"})
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("t"))
	res, err := c.SubmitAnswer(context.Background(), 42, SubmitRequest{
		InterviewQuestionID: 7,
		AnswerState:         AnswerStateComplete,
		TimeToAnswer:        21,
		AnswerContent:       "an answer",
	})
	require.NoError(t, err)

	assert.Equal(t, "/api/interviews/42/submit", gotPath)
	assert.Equal(t, int64(7), gotBody.InterviewQuestionID)
	assert.Equal(t, AnswerStateComplete, gotBody.AnswerState)
	assert.Equal(t, 21, gotBody.TimeToAnswer)
	assert.Nil(t, res.TailQuestionID)
}

func TestSubmitTailAnswerPath(t *testing.T) {
	var gotPath string
	var gotBody TailSubmitRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		tail := int64(88)
		_ = json.NewEncoder(w).Encode(SubmitResult{TailQuestionID: &tail, Question: "deeper?"})
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("t"))
	res, err := c.SubmitTailAnswer(context.Background(), 77, TailSubmitRequest{
		InterviewQuestionID: 7,
		TailQuestionID:      77,
		AnswerState:         AnswerStatePass,
	})
	require.NoError(t, err)

	assert.Equal(t, "/api/tail-questions/77/submit", gotPath)
	assert.Equal(t, int64(77), gotBody.TailQuestionID)
	require.NotNil(t, res.TailQuestionID)
	assert.Equal(t, int64(88), *res.TailQuestionID)
}

func TestStatusErrorCarriesCodeAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"expired token"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("stale"))
	_, err := c.Me(context.Background())
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.Code)
	assert.Contains(t, statusErr.Body, "expired token")
	assert.True(t, IsUnauthorized(err))
}

func TestIsUnauthorizedFalseForOtherErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("t"))
	_, err := c.Me(context.Background())
	require.Error(t, err)
	assert.False(t, IsUnauthorized(err))
}

func TestCurrentQuestionDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/interviews/5/current/problem", r.URL.Path)
		_ = json.NewEncoder(w).Encode(CurrentQuestion{
			InterviewID:         5,
			InterviewQuestionID: 50,
			Question:            "What is REST?",
			Index:               2,
			Size:                5,
			InterviewStatus:     InterviewProgress,
		})
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("t"))
	q, err := c.CurrentQuestion(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(50), q.InterviewQuestionID)
	assert.False(t, q.Done())
}

func TestLogoutPostsWithoutBody(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("t"))
	require.NoError(t, c.Logout(context.Background()))
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/v1/auth/logout", gotPath)
}
