// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the HTTP client for the AVOCoach backend.
//
// The backend is a cookie-session JSON API: login and signup set an
// HTTP-only session cookie, and every other endpoint authenticates by
// that cookie. The client persists the cookie jar to disk so sessions
// survive restarts.
//
// # Key Types
//
//   - Client: the backend client (auth, chat, history endpoints)
//   - ClientError: typed error with an ErrorType category
//   - PersistentJar: cookie jar persisted to the local config directory
//   - RedirectGuard: rate limiter for session-expiry redirects
//
// # Error Handling
//
// All failures come back as *ClientError. Callers can match categories
// through the sentinel errors:
//
//	if errors.Is(err, api.ErrSessionExpired) {
//	    // send the user back to login
//	}
//
// A 401 on a non-auth endpoint fires the OnSessionExpired callback at
// most a few times in a burst; the budget refills over time and resets
// on any successful request. A 401 on the auth endpoints themselves is
// a credential rejection, not an expired session.
package api
