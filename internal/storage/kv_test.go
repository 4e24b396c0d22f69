// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *KVStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "local.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGetMissingKey(t *testing.T) {
	s := openTestStore(t)

	_, ok, err := s.Get("nope")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("missing key should report not found")
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	s := openTestStore(t)

	if err := s.Set("theme", "dark"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok, err := s.Get("theme")
	if err != nil || !ok {
		t.Fatalf("Get: %v, ok=%v", err, ok)
	}
	if v != "dark" {
		t.Errorf("value = %q", v)
	}
}

func TestSetReplaces(t *testing.T) {
	s := openTestStore(t)

	s.Set("theme", "dark")
	if err := s.Set("theme", "light"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, _, _ := s.Get("theme")
	if v != "light" {
		t.Errorf("value = %q, want light", v)
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)

	s.Set("k", "v")
	if err := s.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := s.Get("k"); ok {
		t.Error("deleted key should be gone")
	}
	if err := s.Delete("absent"); err != nil {
		t.Errorf("deleting an absent key should not fail: %v", err)
	}
}

func TestPersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.db")

	first, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	first.Set("chat_meta:personal", `{"c-1":{"pinned":true}}`)
	first.Close()

	second, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()

	v, ok, err := second.Get("chat_meta:personal")
	if err != nil || !ok {
		t.Fatalf("Get after reopen: %v, ok=%v", err, ok)
	}
	if v != `{"c-1":{"pinned":true}}` {
		t.Errorf("value = %q", v)
	}
}
