package rag

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackend(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, NewClient(srv.URL, 2*time.Second)
}

func TestAsk_Success(t *testing.T) {
	_, c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/query", r.URL.Path)

		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "hello", in["prompt"])
		assert.Equal(t, "user-1", in["userId"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"answer":"hi","sources":["https://a","b"],"suggestion":"try this"}`))
	})

	got, err := c.Ask(context.Background(), "hello", "user-1")
	require.NoError(t, err)
	assert.Equal(t, "hi", got.Answer)
	assert.Equal(t, []string{"https://a", "b"}, got.Sources)
	assert.Equal(t, "try this", got.Suggestion)
}

func TestAsk_SuggestionDefaultsToEmpty(t *testing.T) {
	cases := map[string]string{
		"absent":     `{"answer":"hi","sources":[]}`,
		"null":       `{"answer":"hi","sources":[],"suggestion":null}`,
		"not_string": `{"answer":"hi","sources":[],"suggestion":42}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			})

			got, err := c.Ask(context.Background(), "hello", "user-1")
			require.NoError(t, err)
			assert.Equal(t, "", got.Suggestion)
			assert.NotNil(t, got.Sources)
		})
	}
}

func TestAsk_ContractViolations(t *testing.T) {
	cases := map[string]string{
		"missing_answer":     `{"sources":[]}`,
		"answer_not_string":  `{"answer":7,"sources":[]}`,
		"missing_sources":    `{"answer":"hi"}`,
		"sources_not_array":  `{"answer":"hi","sources":"nope"}`,
		"sources_mixed":      `{"answer":"hi","sources":[1,2]}`,
		"not_json":           `<html>oops</html>`,
		"null_sources_value": `{"answer":"hi","sources":123}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			})

			_, err := c.Ask(context.Background(), "hello", "user-1")
			require.ErrorIs(t, err, ErrBadResponse)
		})
	}
}

func TestAsk_NullSourcesBecomesEmptyArray(t *testing.T) {
	_, c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"answer":"hi","sources":null}`))
	})

	// JSON null unmarshals into a nil string slice without error, and the
	// invariant is that sources is always an array.
	got, err := c.Ask(context.Background(), "hello", "user-1")
	require.NoError(t, err)
	assert.NotNil(t, got.Sources)
	assert.Empty(t, got.Sources)
}

func TestAsk_BackendError(t *testing.T) {
	_, c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := c.Ask(context.Background(), "hello", "user-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrBadResponse)
	assert.NotErrorIs(t, err, ErrTimeout)
}

func TestAsk_Timeout(t *testing.T) {
	block := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(block) })

	c := NewClient(srv.URL, 50*time.Millisecond)

	_, err := c.Ask(context.Background(), "hello", "user-1")
	require.ErrorIs(t, err, ErrTimeout)
}

func TestUserQueries(t *testing.T) {
	t.Run("returns backend order untouched", func(t *testing.T) {
		_, c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/user_queries", r.URL.Path)
			w.Write([]byte(`{"Queries":["b","a","c"]}`))
		})

		got, err := c.UserQueries(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "a", "c"}, got)
	})

	t.Run("null list becomes empty", func(t *testing.T) {
		_, c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"Queries":null}`))
		})

		got, err := c.UserQueries(context.Background(), "user-1")
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("malformed body", func(t *testing.T) {
		_, c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		})

		_, err := c.UserQueries(context.Background(), "user-1")
		require.ErrorIs(t, err, ErrBadResponse)
	})
}

func TestStoredResponse(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		_, c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/query_response", r.URL.Path)

			var in map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			assert.Equal(t, "what is a slice", in["query"])
			assert.Equal(t, "user-1", in["userID"])

			w.Write([]byte(`{"response":"a growable view over an array"}`))
		})

		got, err := c.StoredResponse(context.Background(), "what is a slice", "user-1")
		require.NoError(t, err)
		assert.Equal(t, "a growable view over an array", got)
	})

	t.Run("response not a string", func(t *testing.T) {
		_, c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"response":{"nested":true}}`))
		})

		_, err := c.StoredResponse(context.Background(), "q", "user-1")
		require.ErrorIs(t, err, ErrBadResponse)
	})
}
