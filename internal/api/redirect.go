// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Redirect guard limits. A burst of concurrent requests that all come back
// 401 must produce one trip to the login screen, not one per request.
const (
	redirectBurst  = 3
	redirectRefill = 10 * time.Second
)

// RedirectGuard rate-limits the session-expired redirect so that several
// concurrently failing requests cannot bounce the UI to the login view in a
// loop. Constructed once per client; Reset restores the full burst after a
// request succeeds or the user re-authenticates.
type RedirectGuard struct {
	mu      sync.Mutex
	limiter *rate.Limiter
}

// NewRedirectGuard creates a guard with the default burst.
func NewRedirectGuard() *RedirectGuard {
	return &RedirectGuard{
		limiter: rate.NewLimiter(rate.Every(redirectRefill), redirectBurst),
	}
}

// ShouldRedirect reports whether a session-expired redirect may be raised
// now. Each allowed redirect consumes one token from the burst.
func (g *RedirectGuard) ShouldRedirect() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.limiter.Allow()
}

// Reset restores the full redirect budget.
func (g *RedirectGuard) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.limiter = rate.NewLimiter(rate.Every(redirectRefill), redirectBurst)
}
