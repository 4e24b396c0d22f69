// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth holds the login/register/logout flow and the current
// user record. Session expiry has no local timer; it is detected when
// any authenticated call comes back unauthorized.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"

	"github.com/morganforge/avocoach-tui/internal/api"
)

// minPasswordLen matches the backend's signup requirement.
const minPasswordLen = 8

// ValidationError reports a locally rejected form field. These never reach
// the backend.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Service is the slice of the API client the session needs. Narrowed for
// tests.
type Service interface {
	Login(ctx context.Context, email, password string) (*api.User, error)
	Register(ctx context.Context, fullName, email, password, confirm string) (*api.User, error)
	Logout(ctx context.Context) error
}

// Session tracks the authenticated user. Safe for concurrent use.
type Session struct {
	mu      sync.Mutex
	service Service
	user    *api.User
}

// NewSession creates a logged-out session backed by the given service.
func NewSession(service Service) *Session {
	return &Session{service: service}
}

// User returns the current user record, or nil when logged out.
func (s *Session) User() *api.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// LoggedIn reports whether a user record is present.
func (s *Session) LoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

// Login validates the form fields locally, then authenticates. Any failure
// comes back as a single human-readable error.
func (s *Session) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if err := validateEmail(email); err != nil {
		return err
	}
	if password == "" {
		return &ValidationError{Field: "password", Message: "Password is required"}
	}

	user, err := s.service.Login(ctx, email, password)
	if err != nil {
		return errors.New(humanizeAuthError(err, "Login failed"))
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return nil
}

// Register validates the signup form locally, then creates the account. On
// success the new user is logged in.
func (s *Session) Register(ctx context.Context, fullName, email, password, confirm string) error {
	fullName = strings.TrimSpace(fullName)
	email = strings.TrimSpace(email)

	if fullName == "" {
		return &ValidationError{Field: "full_name", Message: "Full name is required"}
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	if len(password) < minPasswordLen {
		return &ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("Password must be at least %d characters", minPasswordLen),
		}
	}
	if password != confirm {
		return &ValidationError{Field: "confirm_password", Message: "Passwords do not match"}
	}

	user, err := s.service.Register(ctx, fullName, email, password, confirm)
	if err != nil {
		return errors.New(humanizeAuthError(err, "Registration failed"))
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return nil
}

// Logout ends the session. The local user record is cleared no matter what
// the backend says; the returned error is informational.
func (s *Session) Logout(ctx context.Context) error {
	err := s.service.Logout(ctx)

	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	return err
}

// Expire drops the local user record without calling the backend. Used when
// a 401 proves the session is already gone server-side.
func (s *Session) Expire() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
}

func validateEmail(email string) error {
	if email == "" {
		return &ValidationError{Field: "email", Message: "Email is required"}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return &ValidationError{Field: "email", Message: "Enter a valid email address"}
	}
	return nil
}

// humanizeAuthError flattens a client error into one sentence for the form.
func humanizeAuthError(err error, fallback string) string {
	var ce *api.ClientError
	if !errors.As(err, &ce) {
		return fallback
	}
	switch ce.Type {
	case api.ErrorTypeConnection:
		return "Cannot reach the server. Check your connection and try again."
	case api.ErrorTypeTimeout:
		return "The server took too long to respond. Try again."
	case api.ErrorTypeRejected:
		if ce.Message != "" {
			return ce.Message
		}
		return fallback
	default:
		return fallback
	}
}
