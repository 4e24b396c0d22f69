// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import "testing"

func TestRedirectGuardBurst(t *testing.T) {
	g := NewRedirectGuard()

	for i := 0; i < redirectBurst; i++ {
		if !g.ShouldRedirect() {
			t.Fatalf("redirect %d within burst should be allowed", i+1)
		}
	}
	if g.ShouldRedirect() {
		t.Error("redirect beyond burst should be suppressed")
	}
}

func TestRedirectGuardReset(t *testing.T) {
	g := NewRedirectGuard()

	for i := 0; i < redirectBurst; i++ {
		g.ShouldRedirect()
	}
	if g.ShouldRedirect() {
		t.Fatal("budget should be exhausted")
	}

	g.Reset()
	if !g.ShouldRedirect() {
		t.Error("Reset should restore the redirect budget")
	}
}
