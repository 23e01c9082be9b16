/*
Package rag contains the HTTP client for the external retrieval-augmented
generation backend. The backend is an opaque collaborator: this package owns
nothing of its retrieval or answering behavior, only the wire contract and its
enforcement. A payload whose answer is not a string or whose sources is not an
array of strings is never handed to callers.
*/
package rag

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// Exchange is one prompt/response cycle as returned by the backend.
// Sources is always non-nil; Suggestion defaults to the empty string when the
// backend omits it or sends something that is not a string.
type Exchange struct {
	Answer     string
	Sources    []string
	Suggestion string
}

var (
	// ErrBadResponse means the backend answered 2xx but violated the response contract.
	ErrBadResponse = errors.New("rag backend returned an invalid response")

	// ErrTimeout means the backend did not answer within the bounded call timeout.
	ErrTimeout = errors.New("rag backend timed out")
)

// Backend is the collaborator contract the handlers depend on. The HTTP
// client below is the production implementation; tests substitute stubs.
type Backend interface {
	Ask(ctx context.Context, prompt, userID string) (*Exchange, error)
	UserQueries(ctx context.Context, userID string) ([]string, error)
	StoredResponse(ctx context.Context, query, userID string) (string, error)
}

// Client calls the RAG backend over plain HTTP POST with a bounded per-call
// timeout. An unbounded wait on the backend would let slow upstream calls pin
// gateway goroutines indefinitely under load.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient returns a Client for the backend at baseURL with the given
// per-call timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		timeout: timeout,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// askWire captures the /query response with the contested fields left raw so
// their types can be checked before anything is forwarded.
type askWire struct {
	Answer     json.RawMessage `json:"answer"`
	Sources    json.RawMessage `json:"sources"`
	Suggestion json.RawMessage `json:"suggestion"`
}

// Ask forwards a prompt to POST /query and enforces the response contract:
// answer must be a string and sources an array of strings, otherwise
// ErrBadResponse. suggestion passes through when it is a string and defaults
// to "" in every other case.
func (c *Client) Ask(ctx context.Context, prompt, userID string) (*Exchange, error) {
	body, err := c.post(ctx, "/query", map[string]string{
		"prompt": prompt,
		"userId": userID,
	})
	if err != nil {
		return nil, err
	}

	var wire askWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	var answer string
	if wire.Answer == nil || json.Unmarshal(wire.Answer, &answer) != nil {
		return nil, fmt.Errorf("%w: answer is missing or not a string", ErrBadResponse)
	}

	var sources []string
	if wire.Sources == nil || json.Unmarshal(wire.Sources, &sources) != nil {
		return nil, fmt.Errorf("%w: sources is missing or not an array of strings", ErrBadResponse)
	}
	if sources == nil {
		sources = []string{}
	}

	suggestion := ""
	if wire.Suggestion != nil {
		// Non-string suggestions are dropped, not rejected.
		_ = json.Unmarshal(wire.Suggestion, &suggestion)
	}

	return &Exchange{
		Answer:     answer,
		Sources:    sources,
		Suggestion: suggestion,
	}, nil
}

// UserQueries fetches the user's prior prompts from POST /user_queries.
// The backend's ordering is passed through untouched.
func (c *Client) UserQueries(ctx context.Context, userID string) ([]string, error) {
	body, err := c.post(ctx, "/user_queries", map[string]string{
		"userId": userID,
	})
	if err != nil {
		return nil, err
	}

	var wire struct {
		Queries []string `json:"Queries"`
	}
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	if wire.Queries == nil {
		return []string{}, nil
	}
	return wire.Queries, nil
}

// StoredResponse re-fetches the stored answer for a previously asked prompt
// via POST /query_response. Lookup is by the literal prompt text; only the
// answer is retrievable, not its original sources or suggestion.
func (c *Client) StoredResponse(ctx context.Context, query, userID string) (string, error) {
	body, err := c.post(ctx, "/query_response", map[string]string{
		"query":  query,
		"userID": userID,
	})
	if err != nil {
		return "", err
	}

	var wire struct {
		Response json.RawMessage `json:"response"`
	}
	if err := json.Unmarshal(body, &wire); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	var response string
	if wire.Response == nil || json.Unmarshal(wire.Response, &response) != nil {
		return "", fmt.Errorf("%w: response is missing or not a string", ErrBadResponse)
	}

	return response, nil
}

// post issues one synchronous round trip to the backend and returns the raw
// response body. Timeouts are folded into ErrTimeout so callers can surface
// them distinctly from other upstream failures.
func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request for %s: %w", path, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %s", ErrTimeout, path)
		}
		return nil, fmt.Errorf("call %s: %w", path, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, 4<<20))
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %s", ErrTimeout, path)
		}
		return nil, fmt.Errorf("read response from %s: %w", path, err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("call %s: backend returned status %d", path, res.StatusCode)
	}

	return body, nil
}

// isTimeout reports whether err stems from the call deadline rather than a
// reachability or protocol failure.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
