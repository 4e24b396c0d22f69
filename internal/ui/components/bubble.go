// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/avocoach-tui/internal/conversation"
	"github.com/morganforge/avocoach-tui/internal/model"
	"github.com/morganforge/avocoach-tui/internal/ui/styles"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer renders coach replies. Built lazily because glamour
// probes the terminal, and rebuilt when the wrap width changes.
var (
	markdownMu       sync.Mutex
	markdownRenderer *glamour.TermRenderer
	markdownWidth    int
)

// renderMarkdown renders markdown content for terminal display. Returns the
// original content if rendering fails.
func renderMarkdown(content string, width int) string {
	markdownMu.Lock()
	defer markdownMu.Unlock()

	if markdownRenderer == nil || markdownWidth != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return content
		}
		markdownRenderer = r
		markdownWidth = width
	}

	out, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}

// =============================================================================
// MESSAGE BUBBLES
// =============================================================================

// MessageBubble renders one transcript message.
type MessageBubble struct {
	Message  model.Message
	MaxWidth int
	// Selected marks the message targeted by the edit/regenerate cursor.
	Selected bool
}

// Render renders the bubble for the given theme. User messages are shown as
// plain text on the right; coach replies render as markdown on the left.
func (b MessageBubble) Render(theme *styles.Theme) string {
	width := b.MaxWidth
	if width < 30 {
		width = 30
	}
	bubbleWidth := width * 3 / 4

	label := theme.BubbleMeta.Render(b.Message.Role.DisplayName())
	if b.Selected {
		label = theme.ShortcutKey.Render("▸ " + b.Message.Role.DisplayName())
	}

	var bubble string
	switch {
	case b.Message.Role == model.RoleUser:
		bubble = theme.UserBubble.MaxWidth(bubbleWidth).Render(b.Message.Content)
	case b.Message.Content == conversation.ErrorReply:
		bubble = theme.ErrorBubble.MaxWidth(bubbleWidth).Render(b.Message.Content)
	default:
		bubble = renderCoachContent(theme, b.Message.Content, bubbleWidth)
	}

	if b.Message.Role == model.RoleUser {
		block := lipgloss.JoinVertical(lipgloss.Right, label, bubble)
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Right).Render(block)
	}
	return lipgloss.JoinVertical(lipgloss.Left, label, bubble)
}

// renderCoachContent renders a coach reply. Fenced code blocks are pulled
// out and highlighted separately; the surrounding prose goes through the
// markdown renderer.
func renderCoachContent(theme *styles.Theme, content string, maxWidth int) string {
	style := theme.CoachBubble

	if !strings.Contains(content, "```") {
		return style.MaxWidth(maxWidth).Render(renderMarkdown(content, maxWidth-6))
	}

	var parts []string
	var text []string
	var code []string
	var language string
	inCode := false

	flushText := func() {
		joined := strings.TrimSpace(strings.Join(text, "\n"))
		if joined != "" {
			parts = append(parts, style.MaxWidth(maxWidth).Render(renderMarkdown(joined, maxWidth-6)))
		}
		text = nil
	}

	for _, line := range strings.Split(content, "\n") {
		switch {
		case strings.HasPrefix(line, "```") && !inCode:
			flushText()
			language = strings.TrimSpace(strings.TrimPrefix(line, "```"))
			inCode = true

		case strings.HasPrefix(line, "```"):
			cb := NewCodeBlock(language, strings.Join(code, "\n"))
			cb.MaxWidth = maxWidth
			parts = append(parts, cb.Render(theme))
			code = nil
			language = ""
			inCode = false

		case inCode:
			code = append(code, line)

		default:
			text = append(text, line)
		}
	}
	flushText()

	// Unclosed fence: treat the remainder as code anyway.
	if inCode && len(code) > 0 {
		cb := NewCodeBlock(language, strings.Join(code, "\n"))
		cb.MaxWidth = maxWidth
		parts = append(parts, cb.Render(theme))
	}

	return strings.Join(parts, "\n")
}

// RenderTranscript renders the whole message list.
func RenderTranscript(theme *styles.Theme, messages []model.Message, width, selected int) string {
	if len(messages) == 0 {
		return theme.ThinkingText.Render("No messages yet. Say hello to your coach.")
	}

	parts := make([]string, 0, len(messages))
	for i, m := range messages {
		b := MessageBubble{Message: m, MaxWidth: width, Selected: i == selected}
		parts = append(parts, b.Render(theme))
	}
	return strings.Join(parts, "\n\n")
}
