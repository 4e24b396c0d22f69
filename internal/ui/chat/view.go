// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the chat screen: optional sidebar, header, transcript,
// typing indicator, and input line.
func (m Model) View() string {
	var b strings.Builder

	chatID := "new chat"
	if id, ok := m.session.Ref().IsChat(); ok {
		chatID = id
	}
	header := m.theme.Header.Render(m.bot.Icon+" "+m.bot.Label) +
		"  " + m.theme.HeaderSubtitle.Render(chatID)
	b.WriteString(header)
	b.WriteString("\n")

	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if ind := m.typingIndicator(); ind != "" {
		b.WriteString(ind)
		b.WriteString("\n")
	}

	if m.focus == focusEdit {
		b.WriteString(m.theme.InputContainer.Render(m.editInput.View()))
		b.WriteString("\n")
		b.WriteString(m.theme.ShortcutDesc.Render("enter replay from here · ctrl+s save only · up/down pick message · esc cancel"))
	} else {
		b.WriteString(m.theme.InputContainer.Render(m.input.View()))
	}

	content := b.String()
	if m.sidebarOpen {
		content = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.View(), content)
	}
	return content
}
