package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/quotekeeper/internal/entities"
)

const postsBody = `[
	{"userId": 1, "id": 1, "title": "sunt aut facere", "body": "quia et suscipit"},
	{"userId": 1, "id": 2, "title": "qui est esse", "body": "est rerum tempore"},
	{"userId": 1, "id": 3, "title": "ea molestias", "body": "et iusto sed"}
]`

func newTestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(Options{})

	assert.Equal(t, DefaultSourceURL, c.sourceURL)
	assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)
	assert.Equal(t, DefaultMaxRecords, c.maxRecords)
	assert.False(t, c.useResponse)
}

func TestFetch_ReturnsStandInByDefault(t *testing.T) {
	server := newTestServer(t, http.StatusOK, postsBody)
	c := NewClient(Options{SourceURL: server.URL})

	got, err := c.Fetch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []entities.Quote{
		{ID: 1, Text: "Server quote 1", Category: "Server"},
		{ID: 2, Text: "Server quote 2", Category: "Server"},
	}, got)
}

func TestFetch_MapsResponseWhenEnabled(t *testing.T) {
	server := newTestServer(t, http.StatusOK, postsBody)
	c := NewClient(Options{SourceURL: server.URL, UseResponse: true, MaxRecords: 2})

	got, err := c.Fetch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []entities.Quote{
		{ID: 1, Text: "sunt aut facere", Category: "Server"},
		{ID: 2, Text: "qui est esse", Category: "Server"},
	}, got)
}

func TestFetch_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   `{"error": "boom"}`,
			check: func(t *testing.T, err error) {
				var serverErr *ServerError
				require.True(t, errors.As(err, &serverErr))
				assert.Equal(t, http.StatusInternalServerError, serverErr.StatusCode)
			},
		},
		{
			name:   "not found",
			status: http.StatusNotFound,
			body:   ``,
			check: func(t *testing.T, err error) {
				var serverErr *ServerError
				require.True(t, errors.As(err, &serverErr))
				assert.Equal(t, http.StatusNotFound, serverErr.StatusCode)
			},
		},
		{
			name:   "object body",
			status: http.StatusOK,
			body:   `{"id": 1}`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrUnexpectedResponse)
			},
		},
		{
			name:   "null body",
			status: http.StatusOK,
			body:   `null`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrUnexpectedResponse)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(t, tt.status, tt.body)
			c := NewClient(Options{SourceURL: server.URL})

			got, err := c.Fetch(context.Background())

			require.Error(t, err)
			assert.Nil(t, got)
			tt.check(t, err)
		})
	}
}

func TestFetch_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer server.Close()

	c := NewClient(Options{SourceURL: server.URL, Timeout: 20 * time.Millisecond})

	_, err := c.Fetch(context.Background())

	assert.Error(t, err)
}

func TestFetch_UnreachableServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c := NewClient(Options{SourceURL: url})

	_, err := c.Fetch(context.Background())

	assert.Error(t, err)
}
