// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package metadata implements the client-side chat metadata overlay:
// renames, pins, and soft deletes layered over the server's history list.
// The backend never sees these; they live in local storage only.
package metadata

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/morganforge/avocoach-tui/internal/model"
)

// KV is the persistence port the overlay writes through. Keys are plain
// strings; values are opaque serialized blobs.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Entry is the per-chat overlay record. Entries are never removed, only
// marked; local history is append-only.
type Entry struct {
	TitleOverride string `json:"title_override,omitempty"`
	Pinned        bool   `json:"pinned,omitempty"`
	Deleted       bool   `json:"deleted,omitempty"`
}

// DisplayEntry is one row of the sidebar list after the overlay is applied.
type DisplayEntry struct {
	ChatID string
	Title  string
	Pinned bool
}

// storageKey returns the per-bot key the overlay map persists under.
func storageKey(botID string) string {
	return fmt.Sprintf("chat_meta:%s", botID)
}

// =============================================================================
// STORE
// =============================================================================

// Store holds one bot's overlay map and writes every mutation through the
// KV port. Safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	kv      KV
	botID   string
	entries map[string]Entry
}

// NewStore loads the overlay for a bot. A missing or unreadable record
// starts the overlay empty rather than failing; overlay data is cosmetic.
func NewStore(kv KV, botID string) *Store {
	s := &Store{kv: kv, botID: botID, entries: make(map[string]Entry)}

	raw, ok, err := kv.Get(storageKey(botID))
	if err == nil && ok {
		var m map[string]Entry
		if json.Unmarshal([]byte(raw), &m) == nil && m != nil {
			s.entries = m
		}
	}
	return s
}

// Entry returns the overlay record for a chat, if any.
func (s *Store) Entry(chatID string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[chatID]
	return e, ok
}

// Rename sets a local title override. Blank titles are ignored.
func (s *Store) Rename(chatID, newTitle string) error {
	newTitle = strings.TrimSpace(newTitle)
	if newTitle == "" {
		return nil
	}
	return s.mutate(chatID, func(e *Entry) {
		e.TitleOverride = newTitle
	})
}

// TogglePin flips a chat's pinned flag. A chat with no entry counts as
// unpinned, so the first toggle always pins.
func (s *Store) TogglePin(chatID string) error {
	return s.mutate(chatID, func(e *Entry) {
		e.Pinned = !e.Pinned
	})
}

// SoftDelete hides a chat from the display list. The entry stays in the
// map; the conversation still exists server-side.
func (s *Store) SoftDelete(chatID string) error {
	return s.mutate(chatID, func(e *Entry) {
		e.Deleted = true
	})
}

// IsDeleted reports whether a chat is locally soft-deleted.
func (s *Store) IsDeleted(chatID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[chatID].Deleted
}

// mutate applies fn to the chat's entry and persists the whole map.
func (s *Store) mutate(chatID string, fn func(*Entry)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entries[chatID]
	fn(&e)
	s.entries[chatID] = e
	return s.persist()
}

// persist serializes the map through the KV port. Caller holds the mutex.
// Last write wins; there is no cross-process merge.
func (s *Store) persist() error {
	data, err := json.Marshal(s.entries)
	if err != nil {
		return err
	}
	return s.kv.Set(storageKey(s.botID), string(data))
}

// =============================================================================
// DISPLAY LIST
// =============================================================================

// DisplayList merges the server history with the overlay: deleted chats are
// filtered out, title overrides applied, and pinned chats moved to the
// front. Within the pinned and unpinned groups the server's relative order
// is preserved.
func (s *Store) DisplayList(history []model.ChatSummary) []DisplayEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pinned, rest []DisplayEntry
	for _, h := range history {
		e := s.entries[h.ChatID]
		if e.Deleted {
			continue
		}
		title := h.Title
		if e.TitleOverride != "" {
			title = e.TitleOverride
		}
		d := DisplayEntry{ChatID: h.ChatID, Title: title, Pinned: e.Pinned}
		if e.Pinned {
			pinned = append(pinned, d)
		} else {
			rest = append(rest, d)
		}
	}
	return append(pinned, rest...)
}
