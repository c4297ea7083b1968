package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"
)

const refreshPath = "/api/v1/auth/refresh"

// APIError is a decoded error envelope from the server.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// User is the public user projection the auth endpoints return.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Client is an API client holding session cookies and transparently
// refreshing the access token.
//
// On any 401 from a non-refresh endpoint the client runs exactly one refresh
// no matter how many requests hit the 401 concurrently: the first caller
// performs it, later callers wait for its outcome. Each request is retried
// at most once; a 401 from the refresh endpoint itself is terminal.
type Client struct {
	baseURL string
	http    *http.Client

	mu         sync.Mutex
	refreshing bool
	waiters    []chan error
	state      SessionState
}

func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
		state: StateAnonymous,
	}, nil
}

func (c *Client) State() SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Client) setState(s SessionState) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// Register creates an account; the response cookies open the session.
func (c *Client) Register(ctx context.Context, email, password, name string) (*User, error) {
	var data struct {
		User User `json:"user"`
	}
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/register",
		map[string]string{"email": email, "password": password, "name": name}, &data)
	if err != nil {
		return nil, err
	}
	c.setState(StateAuthenticated)
	return &data.User, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var data struct {
		User User `json:"user"`
	}
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/login",
		map[string]string{"email": email, "password": password}, &data)
	if err != nil {
		return nil, err
	}
	c.setState(StateAuthenticated)
	return &data.User, nil
}

func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/logout", nil, nil); err != nil {
		return err
	}
	c.setState(StateAnonymous)
	return nil
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	var data struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/me", nil, &data); err != nil {
		return nil, err
	}
	return &data.User, nil
}

// Get performs an authenticated GET and decodes the envelope data into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post performs an authenticated POST and decodes the envelope data into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put performs an authenticated PUT and decodes the envelope data into out.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// do sends the request, and on a 401 from a non-refresh endpoint refreshes
// the session and replays the request once.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return err
		}
	}

	status, respBody, err := c.send(ctx, method, path, payload)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized && path != refreshPath {
		if err := c.refreshSession(ctx); err != nil {
			return err
		}
		status, respBody, err = c.send(ctx, method, path, payload)
		if err != nil {
			return err
		}
	}

	return decodeEnvelope(status, respBody, out)
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte) (int, []byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, respBody, nil
}

// refreshSession is the single-flight gate. The first caller performs the
// network refresh; concurrent callers block until that one resolves and
// share its result without issuing a second refresh.
func (c *Client) refreshSession(ctx context.Context) error {
	c.mu.Lock()
	if c.refreshing {
		ch := make(chan error, 1)
		c.waiters = append(c.waiters, ch)
		c.mu.Unlock()

		select {
		case err := <-ch:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	c.refreshing = true
	c.state = StateAccessExpired
	c.mu.Unlock()

	err := c.doRefresh(ctx)

	c.mu.Lock()
	c.refreshing = false
	if err != nil {
		c.state = StateExpired
	} else {
		c.state = StateAuthenticated
	}
	waiters := c.waiters
	c.waiters = nil
	c.mu.Unlock()

	for _, ch := range waiters {
		ch <- err
	}
	return err
}

func (c *Client) doRefresh(ctx context.Context) error {
	status, respBody, err := c.send(ctx, http.MethodPost, refreshPath, nil)
	if err != nil {
		return err
	}
	return decodeEnvelope(status, respBody, nil)
}

// decodeEnvelope unwraps {success, data, error} and surfaces API failures
// as *APIError.
func decodeEnvelope(status int, body []byte, out any) error {
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   *struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}

	if len(body) > 0 {
		if err := json.Unmarshal(body, &envelope); err != nil {
			return fmt.Errorf("decode response (status %d): %w", status, err)
		}
	}

	if status >= http.StatusBadRequest || !envelope.Success {
		apiErr := &APIError{StatusCode: status, Code: "UNKNOWN", Message: http.StatusText(status)}
		if envelope.Error != nil {
			apiErr.Code = envelope.Error.Code
			apiErr.Message = envelope.Error.Message
		}
		return apiErr
	}

	if out != nil && envelope.Data != nil {
		return json.Unmarshal(envelope.Data, out)
	}
	return nil
}
