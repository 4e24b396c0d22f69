// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package conversation manages per-coach chat sessions.
//
// A Session owns the transcript, the active chat reference, the loading
// flag, and the coach's chat history list. It talks to the backend
// through the Service port and reports background failures through the
// Notifier port, so the whole state machine runs under test without a
// network or a UI.
//
// # Behavior
//
//   - Sends append the user message optimistically before the network
//     call; on failure the message stays and a synthetic error reply is
//     appended after it.
//   - A send against a fresh session adopts the chat id the server
//     assigns, then refreshes the history list before reporting done.
//   - Regenerating from an earlier user message truncates the transcript
//     through that message and replays it.
//   - Navigating away mid-flight bumps a generation counter; responses
//     from a previous generation are discarded, never spliced into the
//     wrong chat.
//
// Only one send or regenerate may be in flight per session; further
// attempts while busy are rejected.
package conversation
