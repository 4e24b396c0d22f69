// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package metadata overlays local chat metadata onto server history.
//
// The backend only knows chat ids and titles. Renames, pins, and
// deletions live client-side in a per-coach Store persisted through the
// KV port. DisplayList merges a server history list with the overlay:
// deleted chats are filtered out, title overrides applied, and pinned
// chats float to the top without disturbing relative order.
//
// Deletion is soft: the chat stays on the server and the overlay entry
// is kept so the chat remains hidden after every history refresh.
package metadata
