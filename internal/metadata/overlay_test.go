// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morganforge/avocoach-tui/internal/model"
)

// memKV is an in-memory KV port for tests.
type memKV struct {
	data map[string]string
	sets int
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string]string)}
}

func (m *memKV) Get(key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(key, value string) error {
	m.sets++
	m.data[key] = value
	return nil
}

func TestRename(t *testing.T) {
	kv := newMemKV()
	s := NewStore(kv, "personal")

	require.NoError(t, s.Rename("c-1", "  My Chat  "))
	e, ok := s.Entry("c-1")
	require.True(t, ok)
	assert.Equal(t, "My Chat", e.TitleOverride)

	// Blank titles are ignored.
	require.NoError(t, s.Rename("c-1", "   "))
	e, _ = s.Entry("c-1")
	assert.Equal(t, "My Chat", e.TitleOverride)
}

func TestTogglePinRoundTrip(t *testing.T) {
	s := NewStore(newMemKV(), "personal")

	require.NoError(t, s.TogglePin("c-1"))
	e, _ := s.Entry("c-1")
	assert.True(t, e.Pinned, "first toggle on an absent entry must pin")

	require.NoError(t, s.TogglePin("c-1"))
	e, _ = s.Entry("c-1")
	assert.False(t, e.Pinned, "second toggle must restore the original value")
}

func TestSoftDeleteKeepsEntry(t *testing.T) {
	s := NewStore(newMemKV(), "personal")
	require.NoError(t, s.Rename("c-1", "keep me"))
	require.NoError(t, s.SoftDelete("c-1"))

	e, ok := s.Entry("c-1")
	require.True(t, ok, "soft delete must not remove the entry")
	assert.True(t, e.Deleted)
	assert.Equal(t, "keep me", e.TitleOverride)
	assert.True(t, s.IsDeleted("c-1"))
}

func TestDisplayListFiltersDeleted(t *testing.T) {
	s := NewStore(newMemKV(), "personal")
	require.NoError(t, s.SoftDelete("a"))

	history := []model.ChatSummary{
		{ChatID: "a", Title: "first"},
		{ChatID: "b", Title: "second"},
	}
	list := s.DisplayList(history)
	require.Len(t, list, 1)
	assert.Equal(t, "b", list[0].ChatID)
}

func TestDisplayListPinnedFirstStableOrder(t *testing.T) {
	s := NewStore(newMemKV(), "personal")
	require.NoError(t, s.TogglePin("c"))
	require.NoError(t, s.TogglePin("e"))

	history := []model.ChatSummary{
		{ChatID: "a"}, {ChatID: "b"}, {ChatID: "c"}, {ChatID: "d"}, {ChatID: "e"},
	}
	list := s.DisplayList(history)
	require.Len(t, list, 5)

	var order []string
	for _, d := range list {
		order = append(order, d.ChatID)
	}
	// Pinned in history order, then unpinned in history order.
	assert.Equal(t, []string{"c", "e", "a", "b", "d"}, order)
}

func TestDisplayListAppliesTitleOverride(t *testing.T) {
	s := NewStore(newMemKV(), "personal")
	require.NoError(t, s.Rename("a", "renamed"))

	list := s.DisplayList([]model.ChatSummary{
		{ChatID: "a", Title: "server title"},
		{ChatID: "b", Title: "untouched"},
	})
	require.Len(t, list, 2)
	assert.Equal(t, "renamed", list[0].Title)
	assert.Equal(t, "untouched", list[1].Title)
}

func TestOverlayPersistsAcrossStores(t *testing.T) {
	kv := newMemKV()

	first := NewStore(kv, "personal")
	require.NoError(t, first.Rename("c-1", "saved"))
	require.NoError(t, first.TogglePin("c-1"))

	second := NewStore(kv, "personal")
	e, ok := second.Entry("c-1")
	require.True(t, ok)
	assert.Equal(t, "saved", e.TitleOverride)
	assert.True(t, e.Pinned)
}

func TestOverlayIsScopedPerBot(t *testing.T) {
	kv := newMemKV()

	personal := NewStore(kv, "personal")
	require.NoError(t, personal.SoftDelete("c-1"))

	email := NewStore(kv, "email")
	assert.False(t, email.IsDeleted("c-1"), "overlays are keyed per bot")
}

func TestCorruptRecordStartsEmpty(t *testing.T) {
	kv := newMemKV()
	kv.data["chat_meta:personal"] = "{not json"

	s := NewStore(kv, "personal")
	_, ok := s.Entry("anything")
	assert.False(t, ok)
}

func TestEveryMutationPersists(t *testing.T) {
	kv := newMemKV()
	s := NewStore(kv, "personal")

	require.NoError(t, s.Rename("c-1", "x"))
	require.NoError(t, s.TogglePin("c-1"))
	require.NoError(t, s.SoftDelete("c-1"))
	assert.Equal(t, 3, kv.sets)
}
