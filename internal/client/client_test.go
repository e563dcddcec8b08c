package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Minahil-Hamza/taskdesk/internal/domain"
	"github.com/Minahil-Hamza/taskdesk/internal/session"
)

func newAuthedStore(t *testing.T) *session.Store {
	t.Helper()
	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	store.Login(domain.AuthResponse{
		AccessToken: "test-token",
		TokenType:   "bearer",
		User:        domain.User{ID: "u-1", Email: "a@b.c"},
	})
	return store
}

func TestRequestHeaders(t *testing.T) {
	var got http.Header
	var gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		gotMethod = r.Method
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	c := New(srv.URL, newAuthedStore(t), 0)
	_, err := c.ListTasks(context.Background())
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, "Bearer test-token", got.Get("Authorization"))
	assert.Equal(t, "no-store", got.Get("Cache-Control"))
}

func TestNoBearerWithoutSession(t *testing.T) {
	var authHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		w.Write([]byte(`{"access_token":"t","token_type":"bearer","user":{"id":"u","email":"a@b.c"}}`))
	}))
	defer srv.Close()

	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	c := New(srv.URL, store, 0)
	_, err := c.Login(context.Background(), "a@b.c", "password123")
	require.NoError(t, err)
	assert.Empty(t, authHeader)
}

func TestUnauthorizedClassification(t *testing.T) {
	bodies := map[string]string{
		"empty body":      "",
		"unparsable body": "<html>nope</html>",
		"detail body":     `{"detail":"Not authenticated"}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(body))
			}))
			defer srv.Close()

			c := New(srv.URL, newAuthedStore(t), 0)
			_, err := c.ListTasks(context.Background())
			assert.ErrorIs(t, err, ErrUnauthorized)

			var apiErr *APIError
			assert.False(t, errors.As(err, &apiErr), "401 must never be a generic APIError")
		})
	}
}

func TestLogin401IsNotUnauthorizedSentinel(t *testing.T) {
	// Auth endpoints are not session-scoped: a 401 there is just bad
	// credentials and must surface its detail message.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Incorrect email or password"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, session.NewStore(filepath.Join(t.TempDir(), "s.json")), 0)
	_, err := c.Login(context.Background(), "a@b.c", "wrong")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Incorrect email or password", apiErr.Detail)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

func TestDetailExtraction(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		fallback string
		want     string
		fields   map[string]string
	}{
		{"string detail", `{"detail":"boom"}`, "fallback", "boom", nil},
		{"nested message", `{"detail":{"message":"nested boom"}}`, "fallback", "nested boom", nil},
		{"missing detail", `{"error":"other"}`, "fallback", "fallback", nil},
		{"unparsable", `garbage`, "fallback", "fallback", nil},
		{"empty", ``, "fallback", "fallback", nil},
		{
			"field errors",
			`{"detail":[{"loc":["body","title"],"msg":"field required"},{"loc":["body","age"],"msg":"ensure this value is greater than 0"}]}`,
			"fallback",
			"fallback",
			map[string]string{"title": "field required", "age": "ensure this value is greater than 0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, fields := extractDetail([]byte(tt.body), tt.fallback)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.fields, fields)
		})
	}
}

func TestCreateTaskFailureCarriesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":{"message":"title too long"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, newAuthedStore(t), 0)
	_, err := c.CreateTask(context.Background(), domain.CreateTaskInput{Title: "x"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "title too long", apiErr.Detail)
}

func TestDeleteOutcomes(t *testing.T) {
	tests := []struct {
		name   string
		status int
		ok     bool
	}{
		{"no content", http.StatusNoContent, true},
		{"plain ok", http.StatusOK, true},
		{"not found", http.StatusNotFound, false},
		{"server error", http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			c := New(srv.URL, newAuthedStore(t), 0)
			ok, err := c.DeleteTask(context.Background(), "t-1")
			require.NoError(t, err)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestDelete401IsUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(srv.URL, newAuthedStore(t), 0)
	_, err := c.DeleteAllTasks(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestListTasksDecodesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/tasks/", r.URL.Path)
		w.Write([]byte(`[{"id":"t-1","user_id":"u-1","title":"Buy milk","completed":false,"priority":"high","category":"shopping","created_at":"2024-03-01T10:00:00Z","updated_at":"2024-03-01T10:00:00Z"}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, newAuthedStore(t), 0)
	tasks, err := c.ListTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk", tasks[0].Title)
	assert.Equal(t, domain.PriorityHigh, tasks[0].Priority)
	assert.Nil(t, tasks[0].Description)
}
