// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/avocoach-tui/internal/metadata"
	"github.com/morganforge/avocoach-tui/internal/model"
	"github.com/morganforge/avocoach-tui/internal/ui/styles"
	"github.com/morganforge/avocoach-tui/internal/util"
)

// =============================================================================
// SIDEBAR EVENTS
// =============================================================================

// SelectChatMsg is emitted when the user picks a conversation.
type SelectChatMsg struct {
	ChatID string
}

// NewChatMsg is emitted when the user asks for a fresh conversation.
type NewChatMsg struct{}

// ChatDeletedMsg is emitted after a conversation is locally deleted. If the
// deleted chat was active the chat view must fall back to the empty state.
type ChatDeletedMsg struct {
	ChatID string
}

// sidebarMode is the sidebar's input mode.
type sidebarMode int

const (
	sidebarList sidebarMode = iota
	sidebarSearch
	sidebarRename
)

// =============================================================================
// SIDEBAR
// =============================================================================

// Sidebar shows the bot's conversation list with the local metadata overlay
// applied: pins first, renames shown, deleted hidden. A search box filters
// by title.
type Sidebar struct {
	theme *styles.Theme
	meta  *metadata.Store

	history []model.ChatSummary
	visible []metadata.DisplayEntry

	cursor int
	active model.ChatRef
	mode   sidebarMode
	search textinput.Model
	rename textinput.Model

	width  int
	height int
}

// NewSidebar creates a sidebar over the given metadata store.
func NewSidebar(theme *styles.Theme, meta *metadata.Store) Sidebar {
	search := textinput.New()
	search.Placeholder = "search chats"
	search.CharLimit = 64

	rename := textinput.New()
	rename.Placeholder = "new title"
	rename.CharLimit = 120

	return Sidebar{
		theme:  theme,
		meta:   meta,
		search: search,
		rename: rename,
	}
}

// SetTheme swaps the color scheme.
func (s *Sidebar) SetTheme(theme *styles.Theme) {
	s.theme = theme
}

// SetSize updates the sidebar dimensions.
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.search.Width = width - 4
	s.rename.Width = width - 4
}

// SetHistory replaces the raw history list and recomputes the view.
func (s *Sidebar) SetHistory(history []model.ChatSummary) {
	s.history = history
	s.refresh()
}

// SetActive marks the currently open conversation.
func (s *Sidebar) SetActive(ref model.ChatRef) {
	s.active = ref
}

// Searching reports whether the search or rename input owns the keyboard.
func (s *Sidebar) Searching() bool {
	return s.mode != sidebarList
}

// refresh recomputes the visible list from history, overlay, and filter.
func (s *Sidebar) refresh() {
	entries := s.meta.DisplayList(s.history)

	filter := strings.ToLower(strings.TrimSpace(s.search.Value()))
	if filter != "" {
		kept := entries[:0]
		for _, e := range entries {
			if strings.Contains(strings.ToLower(e.Title), filter) {
				kept = append(kept, e)
			}
		}
		entries = kept
	}
	s.visible = entries

	if s.cursor >= len(s.visible) {
		s.cursor = len(s.visible) - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

// selected returns the entry under the cursor.
func (s *Sidebar) selected() (metadata.DisplayEntry, bool) {
	if s.cursor < 0 || s.cursor >= len(s.visible) {
		return metadata.DisplayEntry{}, false
	}
	return s.visible[s.cursor], true
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles key input. The returned command carries sidebar events for
// the chat view.
func (s Sidebar) Update(msg tea.Msg) (Sidebar, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch s.mode {
	case sidebarSearch:
		return s.updateSearch(key)
	case sidebarRename:
		return s.updateRename(key)
	}
	return s.updateList(key)
}

func (s Sidebar) updateList(key tea.KeyMsg) (Sidebar, tea.Cmd) {
	switch key.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}

	case "down", "j":
		if s.cursor < len(s.visible)-1 {
			s.cursor++
		}

	case "enter":
		if e, ok := s.selected(); ok {
			id := e.ChatID
			return s, func() tea.Msg { return SelectChatMsg{ChatID: id} }
		}

	case "n":
		return s, func() tea.Msg { return NewChatMsg{} }

	case "/":
		s.mode = sidebarSearch
		s.search.Focus()

	case "p":
		if e, ok := s.selected(); ok {
			s.meta.TogglePin(e.ChatID)
			s.refresh()
		}

	case "r":
		if e, ok := s.selected(); ok {
			s.mode = sidebarRename
			s.rename.SetValue(e.Title)
			s.rename.Focus()
			s.rename.CursorEnd()
		}

	case "d":
		if e, ok := s.selected(); ok {
			s.meta.SoftDelete(e.ChatID)
			s.refresh()
			id := e.ChatID
			return s, func() tea.Msg { return ChatDeletedMsg{ChatID: id} }
		}
	}
	return s, nil
}

func (s Sidebar) updateSearch(key tea.KeyMsg) (Sidebar, tea.Cmd) {
	switch key.String() {
	case "esc":
		s.mode = sidebarList
		s.search.SetValue("")
		s.search.Blur()
		s.refresh()
		return s, nil

	case "enter":
		s.mode = sidebarList
		s.search.Blur()
		return s, nil
	}

	var cmd tea.Cmd
	s.search, cmd = s.search.Update(key)
	s.refresh()
	return s, cmd
}

func (s Sidebar) updateRename(key tea.KeyMsg) (Sidebar, tea.Cmd) {
	switch key.String() {
	case "esc":
		s.mode = sidebarList
		s.rename.Blur()
		return s, nil

	case "enter":
		if e, ok := s.selected(); ok {
			s.meta.Rename(e.ChatID, s.rename.Value())
		}
		s.mode = sidebarList
		s.rename.Blur()
		s.refresh()
		return s, nil
	}

	var cmd tea.Cmd
	s.rename, cmd = s.rename.Update(key)
	return s, cmd
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the sidebar.
func (s Sidebar) View() string {
	if s.width <= 0 {
		return ""
	}
	inner := s.width - 3

	var b strings.Builder
	b.WriteString(s.theme.SidebarTitle.Render("Conversations"))
	b.WriteString("\n")

	switch s.mode {
	case sidebarSearch:
		b.WriteString(s.theme.SidebarSearch.Render(s.search.View()))
		b.WriteString("\n")
	case sidebarRename:
		b.WriteString(s.theme.SidebarSearch.Render(s.rename.View()))
		b.WriteString("\n")
	default:
		if s.search.Value() != "" {
			b.WriteString(s.theme.SidebarSearch.Render("filter: " + s.search.Value()))
			b.WriteString("\n")
		}
	}

	if len(s.visible) == 0 {
		b.WriteString(s.theme.ThinkingText.Render("no chats yet"))
	}

	activeID, _ := s.active.IsChat()
	for i, e := range s.visible {
		marker := "  "
		if e.Pinned {
			marker = s.theme.SidebarItemPinned.Render("★ ")
		}

		title := e.Title
		if title == "" {
			title = e.ChatID
		}
		title = util.TruncateWidth(title, inner-4)

		line := marker + title
		if e.ChatID == activeID {
			line += " ●"
		}

		if i == s.cursor {
			b.WriteString(s.theme.SidebarItemSelected.Render(line))
		} else {
			b.WriteString(s.theme.SidebarItem.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.theme.ShortcutDesc.Render("n new · / search · p pin · r rename · d delete"))

	return s.theme.Sidebar.
		Width(s.width).
		Height(s.height).
		Render(lipgloss.NewStyle().MaxWidth(inner).Render(b.String()))
}
