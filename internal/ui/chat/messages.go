// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation view for the TUI.
//
// This file defines the Bubble Tea message types the view exchanges with
// its background commands. All network work happens in commands; the
// messages below report completion so the view re-renders from the
// session's current state.
package chat

// BackMsg asks the app to return to the bot dashboard.
type BackMsg struct{}

// sendDoneMsg signals that a send or regenerate finished (either way).
type sendDoneMsg struct{}

// chatLoadedMsg signals that a conversation transcript finished loading.
type chatLoadedMsg struct{}

// historyLoadedMsg signals that the history list was refreshed.
type historyLoadedMsg struct{}

// newChatMsg signals that a fresh conversation was created.
type newChatMsg struct{}
