// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/morganforge/avocoach-tui/internal/model"
)

// =============================================================================
// CLIENT
// =============================================================================

// DefaultBaseURL is the backend address used when none is configured.
const DefaultBaseURL = "http://localhost:8000"

// DefaultTimeout is the per-request deadline. Coaching replies can take a
// while to generate, so this is generous.
const DefaultTimeout = 120 * time.Second

// ClientConfig configures a Client.
type ClientConfig struct {
	// BaseURL is the backend root, e.g. "http://localhost:8000".
	BaseURL string
	// Timeout is the per-request deadline. Zero means DefaultTimeout.
	Timeout time.Duration
	// CookiePath is the file session cookies persist to. Empty disables
	// persistence; cookies then live only in memory.
	CookiePath string
	// OnSessionExpired is invoked (at most once per redirect budget) when
	// the backend answers 401 on a non-auth request.
	OnSessionExpired func()
}

// Client talks to the AVOCoach backend. Authentication is cookie-based:
// login/signup set a session cookie which the jar carries on every later
// request. All methods are safe for concurrent use.
type Client struct {
	base      *url.URL
	http      *http.Client
	jar       *PersistentJar
	guard     *RedirectGuard
	onExpired func()
}

// NewClient creates a client for the backend at cfg.BaseURL.
func NewClient(cfg ClientConfig) (*Client, error) {
	raw := cfg.BaseURL
	if raw == "" {
		raw = DefaultBaseURL
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL %q: %w", raw, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid server URL %q: scheme must be http or https", raw)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	jar, err := NewPersistentJar(cfg.CookiePath, base)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}

	return &Client{
		base: base,
		http: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		jar:       jar,
		guard:     NewRedirectGuard(),
		onExpired: cfg.OnSessionExpired,
	}, nil
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// =============================================================================
// AUTH
// =============================================================================

// Login authenticates with the backend. On success the session cookie is
// stored in the jar and the returned user describes the account.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", loginRequest{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Register creates an account and logs it in.
func (c *Client) Register(ctx context.Context, fullName, email, password, confirm string) (*User, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/signup", signupRequest{
		FullName:        fullName,
		Email:           email,
		Password:        password,
		ConfirmPassword: confirm,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Logout ends the session. The local cookie jar is cleared even when the
// backend call fails, so the client is logged out either way.
func (c *Client) Logout(ctx context.Context) error {
	// The logout route is mounted outside the /api prefix.
	err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	c.jar.Clear()
	c.guard.Reset()
	return err
}

// =============================================================================
// CHAT
// =============================================================================

// SendMessage posts a user message to a bot. For a new conversation pass
// model.NoChat(); the backend then creates a conversation and returns its id
// alongside the reply.
func (c *Client) SendMessage(ctx context.Context, botID, message string, ref model.ChatRef) (*SendMessageResponse, error) {
	req := sendMessageRequest{BotID: botID, Message: message}
	if id, ok := ref.IsChat(); ok {
		req.ChatID = id
	}

	var resp SendMessageResponse
	if err := c.do(ctx, http.MethodPost, "/api/chat", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// History lists the conversations for a bot, newest first as the backend
// orders them.
func (c *Client) History(ctx context.Context, botID string) ([]model.ChatSummary, error) {
	var resp historyResponse
	path := "/api/history/" + url.PathEscape(botID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	out := make([]model.ChatSummary, 0, len(resp.Items))
	for _, it := range resp.Items {
		out = append(out, model.ChatSummary{ChatID: it.ChatID, Title: it.Title})
	}
	return out, nil
}

// Conversation fetches the full transcript of one conversation. Messages
// get fresh local ids; the backend does not identify individual messages.
func (c *Client) Conversation(ctx context.Context, botID, chatID string) ([]model.Message, error) {
	var resp conversationResponse
	path := "/api/history/" + url.PathEscape(botID) + "/" + url.PathEscape(chatID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	out := make([]model.Message, 0, len(resp.Messages))
	for _, m := range resp.Messages {
		out = append(out, model.NewMessage(model.Role(m.Role), m.Content))
	}
	return out, nil
}

// CreateChat asks the backend for a fresh empty conversation and returns
// its id.
func (c *Client) CreateChat(ctx context.Context, botID string) (string, error) {
	var resp newChatResponse
	path := "/api/history/" + url.PathEscape(botID) + "/new"
	if err := c.do(ctx, http.MethodPost, path, nil, &resp); err != nil {
		return "", err
	}
	return resp.ChatID, nil
}

// =============================================================================
// TRANSPORT
// =============================================================================

// isAuthPath reports whether the request is itself an authentication call.
// A 401 from these means bad credentials, not an expired session, and must
// not trip the redirect guard.
func isAuthPath(path string) bool {
	return strings.HasPrefix(path, "/api/auth/") || strings.HasPrefix(path, "/auth/")
}

// do performs one JSON request against the backend. A nil body sends no
// payload; a nil out discards the response body.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	u := c.base.JoinPath(path)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return newError(ErrorTypeUnknown, "encode request", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return newError(ErrorTypeUnknown, "build request", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return c.mapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return c.handleUnauthorized(path)
	}
	if resp.StatusCode >= 400 {
		return c.mapStatusError(resp)
	}

	// Any 2xx restores the redirect budget: the session is evidently alive.
	c.guard.Reset()

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return newError(ErrorTypeDecode, "decode response", err)
	}
	return nil
}

// handleUnauthorized turns a 401 into ErrSessionExpired and, for non-auth
// requests, raises the session-expired callback subject to the guard.
func (c *Client) handleUnauthorized(path string) error {
	if isAuthPath(path) {
		// Re-authenticating restores the redirect budget even when the
		// credentials are wrong; the user is already at the login view.
		c.guard.Reset()
		return newError(ErrorTypeRejected, "invalid credentials", nil)
	}
	if c.guard.ShouldRedirect() && c.onExpired != nil {
		c.onExpired()
	}
	return newError(ErrorTypeAuth, "session expired", nil)
}

// mapTransportError classifies request-level failures.
func (c *Client) mapTransportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return newError(ErrorTypeUnknown, "request canceled", err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return newError(ErrorTypeTimeout, "request timed out", err)
	}
	var ue *url.Error
	if errors.As(err, &ue) && ue.Timeout() {
		return newError(ErrorTypeTimeout, "request timed out", err)
	}
	return newError(ErrorTypeConnection, fmt.Sprintf("cannot reach %s", c.base.Host), err)
}

// mapStatusError classifies non-401 HTTP failures. The body is read for the
// backend's detail string when it has one.
func (c *Client) mapStatusError(resp *http.Response) error {
	detail := readErrorDetail(resp.Body)

	if resp.StatusCode >= 500 {
		msg := fmt.Sprintf("server error (HTTP %d)", resp.StatusCode)
		if detail != "" {
			msg = detail
		}
		return newError(ErrorTypeServer, msg, nil)
	}

	msg := fmt.Sprintf("request rejected (HTTP %d)", resp.StatusCode)
	if detail != "" {
		msg = detail
	}
	return newError(ErrorTypeRejected, msg, nil)
}

// readErrorDetail pulls a human-readable message out of an error body.
// Backends in this family answer either {"detail": "..."} or {"error": "..."}.
func readErrorDetail(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	var body struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if body.Detail != "" {
		return body.Detail
	}
	return body.Error
}
