// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the local SQLite-backed key-value store.
//
// The store backs everything the client persists between runs that is
// not the config file or the cookie jar: the chat metadata overlays and
// the theme choice. It uses the pure-Go modernc.org/sqlite driver, so
// builds need no cgo.
//
//	store, err := storage.Open(path)
//	defer store.Close()
//	value, ok, err := store.Get("theme")
package storage
