// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"errors"
	"fmt"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrorType classifies client failures so callers can branch on the kind of
// failure without string matching.
type ErrorType int

const (
	// ErrorTypeUnknown is an unclassified failure.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeConnection means the backend could not be reached.
	ErrorTypeConnection
	// ErrorTypeTimeout means the request deadline elapsed.
	ErrorTypeTimeout
	// ErrorTypeAuth means the session is missing or expired (HTTP 401).
	ErrorTypeAuth
	// ErrorTypeRejected means the backend refused the request (4xx other
	// than 401, e.g. bad credentials or a malformed body).
	ErrorTypeRejected
	// ErrorTypeServer means the backend failed (5xx).
	ErrorTypeServer
	// ErrorTypeDecode means the response body was not the expected shape.
	ErrorTypeDecode
)

// Sentinel errors for errors.Is checks.
var (
	// ErrSessionExpired is returned when the backend answers 401.
	ErrSessionExpired = errors.New("session expired")
	// ErrUnreachable is returned when the backend cannot be reached.
	ErrUnreachable = errors.New("backend unreachable")
	// ErrTimeout is returned when a request times out.
	ErrTimeout = errors.New("request timed out")
)

// ClientError is the error type returned by all Client methods.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Is maps error types onto the package sentinels so callers can use
// errors.Is without caring whether the sentinel is the direct cause.
func (e *ClientError) Is(target error) bool {
	switch target {
	case ErrSessionExpired:
		return e.Type == ErrorTypeAuth
	case ErrUnreachable:
		return e.Type == ErrorTypeConnection
	case ErrTimeout:
		return e.Type == ErrorTypeTimeout
	}
	return false
}

// newError builds a ClientError.
func newError(t ErrorType, message string, cause error) *ClientError {
	return &ClientError{Type: t, Message: message, Cause: cause}
}
