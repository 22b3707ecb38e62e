// Package authclient is the Go client for the admin panel API. It carries the
// session flow the panel's front end performs: token persistence, bearer
// injection, identity rehydration and role-gated navigation decisions.
package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Roles understood by the API. The set is closed; anything else is treated
// as unauthorized by the route guard.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the identity projection returned by the server. It is a cache of
// server-side truth and stale until revalidated by Me.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserPatch names the fields an update may change. Nil leaves a field as is.
type UserPatch struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Role  *string `json:"role,omitempty"`
}

// envelope is the {success, data|error} body every endpoint responds with.
type envelope struct {
	Success bool            `json:"success"`
	Count   int             `json:"count"`
	Token   string          `json:"token"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// Client talks to the admin panel API. The base URL is configuration, not
// contract; all paths below are relative to it.
type Client struct {
	baseURL string
	httpc   *http.Client
	tr      *transport
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its transport is
// wrapped so bearer injection and the 401 policy still apply.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		tr := *hc
		c.tr.base = hc.Transport
		tr.Transport = c.tr
		c.httpc = &tr
	}
}

// New builds a Client against baseURL using store for the bearer token.
func New(baseURL string, store TokenStore, opts ...Option) *Client {
	tr := &transport{store: store}
	c := &Client{
		baseURL: baseURL,
		tr:      tr,
		httpc:   &http.Client{Transport: tr},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnUnauthorized registers fn to run whenever any response comes back 401.
// The token store has already been cleared by the time fn runs.
func (c *Client) OnUnauthorized(fn func()) {
	c.tr.onUnauthorized = fn
}

// Register creates an account and returns the issued token.
func (c *Client) Register(ctx context.Context, name, email, password, role string) (string, error) {
	body := map[string]string{"name": name, "email": email, "password": password, "role": role}
	env, err := c.do(ctx, http.MethodPost, "/auth/register", body)
	if err != nil {
		return "", err
	}
	return env.Token, nil
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	env, err := c.do(ctx, http.MethodPost, "/auth/login", body)
	if err != nil {
		return "", err
	}
	return env.Token, nil
}

// Me resolves the identity behind the stored token.
func (c *Client) Me(ctx context.Context) (*User, error) {
	env, err := c.do(ctx, http.MethodGet, "/auth/me", nil)
	if err != nil {
		return nil, err
	}
	var u User
	if err := json.Unmarshal(env.Data, &u); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &u, nil
}

// Logout asks the server to revoke the presented token.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/logout", nil)
	return err
}

// ListUsers returns the full user collection. Admin only.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	env, err := c.do(ctx, http.MethodGet, "/users", nil)
	if err != nil {
		return nil, err
	}
	var users []User
	if err := json.Unmarshal(env.Data, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

// UpdateUser applies patch to the user with the given id. Admin only.
func (c *Client) UpdateUser(ctx context.Context, id string, patch UserPatch) (*User, error) {
	env, err := c.do(ctx, http.MethodPut, "/users/"+id, patch)
	if err != nil {
		return nil, err
	}
	var u User
	if err := json.Unmarshal(env.Data, &u); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &u, nil
}

// DeleteUser removes the user with the given id. Admin only. Deleting an id
// that no longer exists succeeds; the server's contract is delete-if-exists.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/users/"+id, nil)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*envelope, error) {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		if decodeErr == nil {
			apiErr.Message = env.Error
		}
		return nil, apiErr
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode response: %w", decodeErr)
	}
	return &env, nil
}
