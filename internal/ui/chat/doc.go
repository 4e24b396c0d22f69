// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the conversation screen: the transcript
// viewport, the message input, the history sidebar, and the edit mode
// that replays the conversation from an earlier user message.
//
// All session work (send, load, regenerate) runs in Bubble Tea commands
// on background goroutines; the model re-reads session state when the
// completion message arrives.
package chat
