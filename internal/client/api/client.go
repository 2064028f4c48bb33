package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Client is a thin wrapper around the TaskKeeper HTTP API. It holds the
// current token pair and transparently retries a request once through the
// refresh endpoint when the access token has expired.
//
// Client is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

// User mirrors the server's user representation. Password material never
// appears here.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// Task mirrors the server's task representation.
type Task struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type authResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// IsLoggedIn reports whether the client currently holds a token pair.
func (c *Client) IsLoggedIn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken != ""
}

func (c *Client) setTokens(access, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = access
	c.refreshToken = refresh
}

func (c *Client) tokens() (access, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken, c.refreshToken
}

// ClearTokens drops the stored token pair. Tokens are stateless, so this is
// all a logout amounts to on the client side.
func (c *Client) ClearTokens() {
	c.setTokens("", "")
}

// Ping checks server reachability.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/ping", nil, nil, false)
}

// Register creates an account and stores the returned token pair, so the
// user is signed in immediately afterwards.
func (c *Client) Register(ctx context.Context, email, password, displayName string) (*User, error) {
	req := map[string]string{"email": email, "password": password, "display_name": displayName}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &resp, false); err != nil {
		return nil, err
	}
	c.setTokens(resp.AccessToken, resp.RefreshToken)
	return &resp.User, nil
}

// Login authenticates and stores the returned token pair.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	req := map[string]string{"email": email, "password": password}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &resp, false); err != nil {
		return nil, err
	}
	c.setTokens(resp.AccessToken, resp.RefreshToken)
	return &resp.User, nil
}

// Logout notifies the server and drops the stored token pair. The local pair
// is cleared even when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, true)
	c.ClearTokens()
	return err
}

func (c *Client) ListTasks(ctx context.Context) ([]Task, error) {
	var tasks []Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &tasks, true); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, title, description string) (*Task, error) {
	req := map[string]string{"title": title, "description": description}
	var task Task
	if err := c.do(ctx, http.MethodPost, "/api/tasks", req, &task, true); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) GetTask(ctx context.Context, id string) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks/"+id, nil, &task, true); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) UpdateTask(ctx context.Context, id, title, description string, completed *bool) (*Task, error) {
	req := map[string]any{"title": title, "description": description}
	if completed != nil {
		req["completed"] = *completed
	}
	var task Task
	if err := c.do(ctx, http.MethodPut, "/api/tasks/"+id, req, &task, true); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) ToggleTask(ctx context.Context, id string) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodPatch, "/api/tasks/"+id+"/toggle", nil, &task, true); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+id, nil, nil, true)
}

// refresh exchanges the stored refresh token for a new access token.
func (c *Client) refresh(ctx context.Context) error {
	_, refreshToken := c.tokens()
	if refreshToken == "" {
		return ErrUnauthorized
	}

	req := map[string]string{"refresh_token": refreshToken}
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/refresh", req, &resp, false); err != nil {
		return err
	}

	c.setTokens(resp.AccessToken, refreshToken)
	return nil
}

// do performs a single API call. For authorized calls that come back 401 it
// refreshes the access token and retries exactly once; a second 401 is
// returned as ErrUnauthorized.
func (c *Client) do(ctx context.Context, method, path string, in, out any, authorized bool) error {
	var body []byte
	if in != nil {
		var err error
		body, err = json.Marshal(in)
		if err != nil {
			return err
		}
	}

	err := c.send(ctx, method, path, body, out, authorized)
	if authorized && errors.Is(err, ErrUnauthorized) {
		if rerr := c.refresh(ctx); rerr != nil {
			return ErrUnauthorized
		}
		err = c.send(ctx, method, path, body, out, authorized)
	}
	return err
}

func (c *Client) send(ctx context.Context, method, path string, body []byte, out any, authorized bool) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorized {
		accessToken, _ := c.tokens()
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return apiError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return err
		}
	}
	return nil
}

func apiError(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	}

	var er errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil || er.Error == "" {
		er.Error = http.StatusText(resp.StatusCode)
	}
	return &APIError{StatusCode: resp.StatusCode, Message: er.Error}
}
