// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// ChatRef identifies the chat a conversation session is bound to. It is a
// two-state value: either no chat exists yet (a fresh session that the
// backend has not assigned an id to), or the session is bound to a concrete
// server-assigned chat id. The zero value is NoChat, so the "empty string
// means no chat" convention can never leak into comparisons.
type ChatRef struct {
	id string
}

// NoChat returns the reference for a session with no backing chat.
func NoChat() ChatRef {
	return ChatRef{}
}

// Chat returns a reference to the chat with the given server-assigned id.
// An empty id collapses to NoChat.
func Chat(id string) ChatRef {
	return ChatRef{id: id}
}

// IsChat reports whether the reference points at a concrete chat, and if
// so returns its id.
func (r ChatRef) IsChat() (string, bool) {
	return r.id, r.id != ""
}

// IsNone reports whether the reference is the no-chat state.
func (r ChatRef) IsNone() bool {
	return r.id == ""
}

// String returns the chat id, or "(new)" for the no-chat state. For display
// and debugging only; use IsChat for logic.
func (r ChatRef) String() string {
	if r.id == "" {
		return "(new)"
	}
	return r.id
}
