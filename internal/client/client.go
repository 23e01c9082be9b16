/*
Package client wraps the gateway's HTTP API for the terminal client.

It carries a pending-request guard: a second query submitted while one is in
flight is refused rather than queued, and every call runs under a bounded
timeout.
*/
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"
)

// ErrRequestInFlight is returned when a query is submitted while a previous
// one has not resolved yet.
var ErrRequestInFlight = errors.New("a request is already in flight")

// LoginResult is the session identity handed back by a successful login.
type LoginResult struct {
	Email  string `json:"email"`
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

// SearchResult is one query exchange as returned by the gateway.
type SearchResult struct {
	Answer     string   `json:"answer"`
	Sources    []string `json:"sources"`
	Suggestion string   `json:"suggestion"`
}

// Client talks to the ragwall gateway.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string

	searching atomic.Bool
}

// New returns a Client for the gateway at baseURL with the given per-call timeout.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SetToken stores the identity token issued at login; subsequent requests
// carry it as a bearer credential.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Register creates a new account. The gateway's conflict and validation
// messages come back as plain errors.
func (c *Client) Register(ctx context.Context, firstName, lastName, email, password string) error {
	var out struct {
		Message string `json:"message"`
	}

	status, err := c.post(ctx, "/Register", map[string]string{
		"FirstName": firstName,
		"LastName":  lastName,
		"Email":     email,
		"password":  password,
	}, &out)
	if err != nil {
		return err
	}

	if status != http.StatusCreated {
		return fmt.Errorf("registration failed: %s", orUnknown(out.Message))
	}
	return nil
}

// Login verifies credentials and returns the session identity.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var out struct {
		Message string `json:"message"`
		LoginResult
	}

	status, err := c.post(ctx, "/login", map[string]string{
		"Email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK {
		return nil, fmt.Errorf("login failed: %s", orUnknown(out.Message))
	}

	c.token = out.Token
	return &out.LoginResult, nil
}

// Search submits a prompt. Only one search may be in flight at a time; a
// concurrent submission returns ErrRequestInFlight immediately.
func (c *Client) Search(ctx context.Context, input, userID string) (*SearchResult, error) {
	if !c.searching.CompareAndSwap(false, true) {
		return nil, ErrRequestInFlight
	}
	defer c.searching.Store(false)

	var out SearchResult
	status, err := c.post(ctx, "/search", map[string]string{
		"input":  input,
		"userId": userID,
	}, &out)
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK {
		// Failure payloads arrive in the same shape, with the message as the answer.
		return nil, fmt.Errorf("search failed: %s", orUnknown(out.Answer))
	}

	if out.Sources == nil {
		out.Sources = []string{}
	}
	return &out, nil
}

// History lists the user's prior prompts. The gateway degrades failures to an
// empty list, so an error here means the gateway itself was unreachable.
func (c *Client) History(ctx context.Context, userID string) ([]string, error) {
	var out struct {
		Queries []string `json:"Queries"`
	}

	status, err := c.post(ctx, "/user_query", map[string]string{
		"userId": userID,
	}, &out)
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK {
		return nil, fmt.Errorf("history fetch failed with status %d", status)
	}
	return out.Queries, nil
}

// StoredResponse re-fetches the stored answer for a previously asked prompt.
func (c *Client) StoredResponse(ctx context.Context, query, userID string) (string, error) {
	var out struct {
		Message  string `json:"message"`
		Response string `json:"response"`
	}

	status, err := c.post(ctx, "/query_response", map[string]string{
		"query":  query,
		"userId": userID,
	}, &out)
	if err != nil {
		return "", err
	}

	if status != http.StatusOK {
		return "", fmt.Errorf("stored answer fetch failed: %s", orUnknown(out.Message))
	}
	return out.Response, nil
}

// post sends one JSON request and decodes the response body into out. The
// HTTP status is returned alongside so callers can branch on outcome while
// still reading the body's message vocabulary.
func (c *Client) post(ctx context.Context, path string, payload any, out any) (int, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("marshal request for %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(reqBody))
	if err != nil {
		return 0, fmt.Errorf("build request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("call %s: %w", path, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, 4<<20))
	if err != nil {
		return res.StatusCode, fmt.Errorf("read response from %s: %w", path, err)
	}

	if len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return res.StatusCode, fmt.Errorf("decode response from %s: %w", path, err)
		}
	}

	return res.StatusCode, nil
}

func orUnknown(message string) string {
	if message == "" {
		return "unknown error"
	}
	return message
}
