// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model defines the core data types shared across the client:
// chat messages and roles, the ChatRef reference to an active
// conversation, history summaries, and the coach catalogue.
//
// ChatRef is deliberately not a string. A conversation is either not
// yet created on the server (NoChat) or bound to a server id
// (Chat(id)); code that needs the id must go through IsChat and handle
// the empty case.
package model
