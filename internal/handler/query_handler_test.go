package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ragwall/internal/app/rag"
)

func TestSearch_EmptyInput(t *testing.T) {
	backend := &stubBackend{}
	deps := testDeps(newStubStore(), backend)

	for _, input := range []string{"", "   ", "\t\n"} {
		w := postJSON(t, HandleSearch(deps), map[string]string{
			"input":  input,
			"userId": "x",
		})

		require.Equal(t, http.StatusBadRequest, w.Code)

		var body SearchResponse
		decodeBody(t, w, &body)
		assert.Equal(t, "Input is required", body.Answer)
		assert.NotNil(t, body.Sources)
		assert.Empty(t, body.Sources)
	}

	// Validation failures never reach the backend.
	assert.Equal(t, 0, backend.askCount())
}

func TestSearch_MissingUserID(t *testing.T) {
	backend := &stubBackend{}
	deps := testDeps(newStubStore(), backend)

	w := postJSON(t, HandleSearch(deps), map[string]string{
		"input":  "hello",
		"userId": "  ",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body SearchResponse
	decodeBody(t, w, &body)
	assert.Equal(t, "Please log in to ask a question", body.Answer)
	assert.Equal(t, 0, backend.askCount())
}

func TestSearch_UnknownUserID(t *testing.T) {
	backend := &stubBackend{}
	deps := testDeps(newStubStore(), backend)

	w := postJSON(t, HandleSearch(deps), map[string]string{
		"input":  "hello",
		"userId": "no-such-user",
	})

	require.Equal(t, http.StatusUnauthorized, w.Code)

	var body SearchResponse
	decodeBody(t, w, &body)
	assert.Equal(t, "Session expired, please log in again", body.Answer)
	assert.Empty(t, body.Sources)
	assert.Equal(t, 0, backend.askCount())
}

func TestSearch_Success(t *testing.T) {
	store := newStubStore()
	acct := registerAccount(t, store, "a@b.com", "Abc123!@")

	backend := &stubBackend{
		askResult: &rag.Exchange{
			Answer:     "hi",
			Sources:    []string{},
			Suggestion: "",
		},
	}
	deps := testDeps(store, backend)

	w := postJSON(t, HandleSearch(deps), map[string]string{
		"input":  "hello",
		"userId": acct.ID,
	})

	require.Equal(t, http.StatusOK, w.Code)

	var body SearchResponse
	decodeBody(t, w, &body)
	assert.Equal(t, "hi", body.Answer)
	assert.NotNil(t, body.Sources)
	assert.Empty(t, body.Sources)
	assert.Equal(t, "", body.Suggestion)
	assert.Equal(t, 1, backend.askCount())
}

func TestSearch_NoCaching(t *testing.T) {
	store := newStubStore()
	acct := registerAccount(t, store, "a@b.com", "Abc123!@")

	backend := &stubBackend{
		askResult: &rag.Exchange{Answer: "hi", Sources: []string{}},
	}
	deps := testDeps(store, backend)

	req := map[string]string{"input": "hello", "userId": acct.ID}
	postJSON(t, HandleSearch(deps), req)
	postJSON(t, HandleSearch(deps), req)

	// Identical requests mean two independent backend calls.
	assert.Equal(t, 2, backend.askCount())
}

func TestSearch_UpstreamFailures(t *testing.T) {
	store := newStubStore()
	acct := registerAccount(t, store, "a@b.com", "Abc123!@")

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantAnswer string
	}{
		{
			name:       "contract violation",
			err:        rag.ErrBadResponse,
			wantStatus: http.StatusBadGateway,
			wantAnswer: "Invalid response from AI server",
		},
		{
			name:       "timeout",
			err:        rag.ErrTimeout,
			wantStatus: http.StatusGatewayTimeout,
			wantAnswer: "The AI server took too long to respond. Please try again.",
		},
		{
			name:       "network error",
			err:        errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantAnswer: "Error processing search request",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			backend := &stubBackend{askErr: tc.err}
			deps := testDeps(store, backend)

			w := postJSON(t, HandleSearch(deps), map[string]string{
				"input":  "hello",
				"userId": acct.ID,
			})

			require.Equal(t, tc.wantStatus, w.Code)

			var body SearchResponse
			decodeBody(t, w, &body)
			assert.Equal(t, tc.wantAnswer, body.Answer)
			assert.NotNil(t, body.Sources)
			assert.Empty(t, body.Sources)
			assert.Equal(t, "", body.Suggestion)
		})
	}
}

func TestUserQueries_Success(t *testing.T) {
	backend := &stubBackend{queriesResult: []string{"what is a slice", "what is a map"}}
	deps := testDeps(newStubStore(), backend)

	w := postJSON(t, HandleUserQueries(deps), map[string]string{"userId": "user-1"})

	require.Equal(t, http.StatusOK, w.Code)

	var body UserQueriesResponse
	decodeBody(t, w, &body)
	assert.Equal(t, []string{"what is a slice", "what is a map"}, body.Queries)
}

func TestUserQueries_MissingUserID(t *testing.T) {
	backend := &stubBackend{}
	deps := testDeps(newStubStore(), backend)

	w := postJSON(t, HandleUserQueries(deps), map[string]string{"userId": " "})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, backend.queriesCalls)
}

func TestUserQueries_UpstreamFailureDegradesToEmpty(t *testing.T) {
	backend := &stubBackend{queriesErr: errors.New("backend down")}
	deps := testDeps(newStubStore(), backend)

	w := postJSON(t, HandleUserQueries(deps), map[string]string{"userId": "user-1"})

	// The history panel renders an empty list instead of an error.
	require.Equal(t, http.StatusOK, w.Code)

	var body UserQueriesResponse
	decodeBody(t, w, &body)
	assert.NotNil(t, body.Queries)
	assert.Empty(t, body.Queries)
}

func TestQueryResponse_Success(t *testing.T) {
	backend := &stubBackend{responseResult: "a growable view over an array"}
	deps := testDeps(newStubStore(), backend)

	w := postJSON(t, HandleQueryResponse(deps), map[string]string{
		"query":  "what is a slice",
		"userId": "user-1",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var body QueryResponseBody
	decodeBody(t, w, &body)
	assert.Equal(t, "a growable view over an array", body.Response)
}

func TestQueryResponse_Validation(t *testing.T) {
	backend := &stubBackend{}
	deps := testDeps(newStubStore(), backend)

	for _, input := range []map[string]string{
		{"query": "", "userId": "user-1"},
		{"query": "what is a slice", "userId": ""},
	} {
		w := postJSON(t, HandleQueryResponse(deps), input)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
	assert.Equal(t, 0, backend.responseCalls)
}

func TestQueryResponse_UpstreamFailure(t *testing.T) {
	backend := &stubBackend{responseErr: errors.New("backend down")}
	deps := testDeps(newStubStore(), backend)

	w := postJSON(t, HandleQueryResponse(deps), map[string]string{
		"query":  "what is a slice",
		"userId": "user-1",
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// TestRouter_RegisterLoginSearch walks the documented scenario end to end
// through the full middleware stack.
func TestRouter_RegisterLoginSearch(t *testing.T) {
	store := newStubStore()
	backend := &stubBackend{
		askResult: &rag.Exchange{Answer: "hi", Sources: []string{}, Suggestion: ""},
	}
	deps := testDeps(store, backend)
	router := Router(deps)

	do := func(path string, payload any) *httptest.ResponseRecorder {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		r := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
		r.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		return w
	}

	reg := do("/Register", map[string]string{
		"FirstName": "A", "LastName": "B", "Email": "a@b.com", "password": "Abc123!@",
	})
	require.Equal(t, http.StatusCreated, reg.Code)

	login := do("/login", map[string]string{"Email": "a@b.com", "password": "Abc123!@"})
	require.Equal(t, http.StatusOK, login.Code)

	var loginBody LoginResponse
	require.NoError(t, json.Unmarshal(login.Body.Bytes(), &loginBody))
	assert.Equal(t, "a@b.com", loginBody.Email)
	require.NotEmpty(t, loginBody.UserID)

	search := do("/search", map[string]string{"input": "hello", "userId": loginBody.UserID})
	require.Equal(t, http.StatusOK, search.Code)

	var searchBody SearchResponse
	require.NoError(t, json.Unmarshal(search.Body.Bytes(), &searchBody))
	assert.Equal(t, "hi", searchBody.Answer)
	assert.Empty(t, searchBody.Sources)
	assert.Equal(t, "", searchBody.Suggestion)
}
