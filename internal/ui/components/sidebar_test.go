// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/avocoach-tui/internal/metadata"
	"github.com/morganforge/avocoach-tui/internal/model"
	"github.com/morganforge/avocoach-tui/internal/ui/styles"
)

type memKV struct {
	data map[string]string
}

func (m *memKV) Get(key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(key, value string) error {
	m.data[key] = value
	return nil
}

func newTestSidebar(history []model.ChatSummary) (Sidebar, *metadata.Store) {
	meta := metadata.NewStore(&memKV{data: make(map[string]string)}, "personal")
	s := NewSidebar(styles.NewTheme(styles.ModeDark), meta)
	s.SetSize(30, 20)
	s.SetHistory(history)
	return s, meta
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func TestSidebarSelectEmitsChatID(t *testing.T) {
	s, _ := newTestSidebar([]model.ChatSummary{
		{ChatID: "a", Title: "first"},
		{ChatID: "b", Title: "second"},
	})

	s, _ = s.Update(keyMsg("down"))
	s, cmd := s.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatal("enter should emit a command")
	}
	msg, ok := cmd().(SelectChatMsg)
	if !ok || msg.ChatID != "b" {
		t.Errorf("msg = %#v, want SelectChatMsg{b}", msg)
	}
}

func TestSidebarNewChat(t *testing.T) {
	s, _ := newTestSidebar(nil)

	_, cmd := s.Update(keyMsg("n"))
	if cmd == nil {
		t.Fatal("n should emit a command")
	}
	if _, ok := cmd().(NewChatMsg); !ok {
		t.Error("expected NewChatMsg")
	}
}

func TestSidebarDeleteHidesEntry(t *testing.T) {
	s, meta := newTestSidebar([]model.ChatSummary{
		{ChatID: "a", Title: "first"},
		{ChatID: "b", Title: "second"},
	})

	s, cmd := s.Update(keyMsg("d"))
	if cmd == nil {
		t.Fatal("d should emit a command")
	}
	msg, ok := cmd().(ChatDeletedMsg)
	if !ok || msg.ChatID != "a" {
		t.Errorf("msg = %#v", msg)
	}
	if !meta.IsDeleted("a") {
		t.Error("delete should mark the overlay entry")
	}
	if len(s.visible) != 1 || s.visible[0].ChatID != "b" {
		t.Errorf("visible = %+v", s.visible)
	}
}

func TestSidebarPinReorders(t *testing.T) {
	s, _ := newTestSidebar([]model.ChatSummary{
		{ChatID: "a", Title: "first"},
		{ChatID: "b", Title: "second"},
	})

	s, _ = s.Update(keyMsg("down"))
	s, _ = s.Update(keyMsg("p"))

	if s.visible[0].ChatID != "b" || !s.visible[0].Pinned {
		t.Errorf("visible = %+v, want b pinned first", s.visible)
	}
}

func TestSidebarSearchFilters(t *testing.T) {
	s, _ := newTestSidebar([]model.ChatSummary{
		{ChatID: "a", Title: "quarterly review"},
		{ChatID: "b", Title: "email draft"},
	})

	s, _ = s.Update(keyMsg("/"))
	if !s.Searching() {
		t.Fatal("slash should enter search mode")
	}
	for _, r := range "email" {
		s, _ = s.Update(keyMsg(string(r)))
	}
	if len(s.visible) != 1 || s.visible[0].ChatID != "b" {
		t.Errorf("visible = %+v", s.visible)
	}

	// Escape clears the filter.
	s, _ = s.Update(keyMsg("esc"))
	if s.Searching() {
		t.Error("esc should leave search mode")
	}
	if len(s.visible) != 2 {
		t.Errorf("filter should be cleared, visible = %+v", s.visible)
	}
}

func TestSidebarRename(t *testing.T) {
	s, meta := newTestSidebar([]model.ChatSummary{
		{ChatID: "a", Title: "old title"},
	})

	s, _ = s.Update(keyMsg("r"))
	if !s.Searching() {
		t.Fatal("r should enter rename mode")
	}
	s.rename.SetValue("new title")
	s, _ = s.Update(keyMsg("enter"))

	e, ok := meta.Entry("a")
	if !ok || e.TitleOverride != "new title" {
		t.Errorf("entry = %+v", e)
	}
	if s.visible[0].Title != "new title" {
		t.Errorf("visible title = %q", s.visible[0].Title)
	}
}
