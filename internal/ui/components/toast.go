// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the avocoach TUI.
//
// Toasts are non-blocking corner notifications that auto-dismiss. Network
// failures surface here rather than as modal dialogs so the user can keep
// typing while a send retries.
package components

import (
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/avocoach-tui/internal/ui/styles"
	"github.com/morganforge/avocoach-tui/internal/util"
)

// =============================================================================
// TOAST TYPES
// =============================================================================

// ToastKind represents the type of toast notification.
type ToastKind int

const (
	// ToastKindStatus is an informational toast
	ToastKindStatus ToastKind = iota
	// ToastKindError is an error toast
	ToastKindError
)

// DefaultToastDuration is the auto-dismiss duration for status toasts.
const DefaultToastDuration = 4 * time.Second

// ErrorToastDuration is the auto-dismiss duration for error toasts.
const ErrorToastDuration = 8 * time.Second

// Toast is one notification.
type Toast struct {
	ID        int
	Message   string
	Kind      ToastKind
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired returns true if the toast should be dismissed.
func (t *Toast) IsExpired() bool {
	return time.Since(t.CreatedAt) >= t.Duration
}

// =============================================================================
// TOAST MANAGER
// =============================================================================

// ToastManager owns the active toast stack. Safe for concurrent use; the
// conversation layer notifies it from background goroutines.
type ToastManager struct {
	mu     sync.Mutex
	toasts []Toast
	nextID int
}

// NewToastManager creates an empty manager.
func NewToastManager() *ToastManager {
	return &ToastManager{nextID: 1}
}

// AddError queues an error toast and returns its id.
func (m *ToastManager) AddError(message string) int {
	return m.add(Toast{
		Message:  message,
		Kind:     ToastKindError,
		Duration: ErrorToastDuration,
	})
}

// AddStatus queues an informational toast and returns its id.
func (m *ToastManager) AddStatus(message string) int {
	return m.add(Toast{
		Message:  message,
		Kind:     ToastKindStatus,
		Duration: DefaultToastDuration,
	})
}

func (m *ToastManager) add(t Toast) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	t.ID = m.nextID
	m.nextID++
	t.CreatedAt = time.Now()
	m.toasts = append(m.toasts, t)
	return t.ID
}

// Error satisfies the conversation layer's notifier port.
func (m *ToastManager) Error(message string) {
	m.AddError(message)
}

// RemoveToast dismisses a toast by id.
func (m *ToastManager) RemoveToast(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.toasts[:0]
	for _, t := range m.toasts {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	m.toasts = kept
}

// Tick drops expired toasts and returns the survivors.
func (m *ToastManager) Tick() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.toasts[:0]
	for _, t := range m.toasts {
		if !t.IsExpired() {
			kept = append(kept, t)
		}
	}
	m.toasts = kept

	out := make([]Toast, len(m.toasts))
	copy(out, m.toasts)
	return out
}

// Toasts returns the active toasts.
func (m *ToastManager) Toasts() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Toast, len(m.toasts))
	copy(out, m.toasts)
	return out
}

// HasToasts reports whether any toast is visible.
func (m *ToastManager) HasToasts() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.toasts) > 0
}

// =============================================================================
// BUBBLETEA INTEGRATION
// =============================================================================

// ToastTickMsg drives toast expiry.
type ToastTickMsg struct {
	Time time.Time
}

// ToastTickCmd schedules the next expiry check.
func ToastTickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return ToastTickMsg{Time: t}
	})
}

// =============================================================================
// RENDERING
// =============================================================================

// RenderToastStack renders the active toasts bottom-up for the corner of
// the screen.
func RenderToastStack(theme *styles.Theme, toasts []Toast, width int) string {
	if len(toasts) == 0 {
		return ""
	}

	maxWidth := width - 4
	if maxWidth < 20 {
		maxWidth = 20
	}

	lines := make([]string, 0, len(toasts))
	for _, t := range toasts {
		style := theme.ToastInfo
		prefix := "· "
		if t.Kind == ToastKindError {
			style = theme.ToastError
			prefix = "✗ "
		}
		msg := t.Message
		if lipgloss.Width(prefix+msg) > maxWidth {
			msg = util.TruncateWidth(msg, maxWidth-lipgloss.Width(prefix))
		}
		lines = append(lines, style.Render(prefix+msg))
	}
	return strings.Join(lines, "\n")
}
