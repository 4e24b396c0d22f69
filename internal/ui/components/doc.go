// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the reusable UI pieces of the avocoach TUI.

Each component takes a *styles.Theme and renders with Lip Gloss; the
interactive ones follow the Bubble Tea Update/View shape and communicate
upward through typed messages rather than callbacks.

# Components

BotList (botlist.go) - Coach cards on the dashboard; emits SelectBotMsg.
Sidebar (sidebar.go) - Chat history list with search, rename, pin, and
delete; emits SelectChatMsg, NewChatMsg, ChatDeletedMsg.
MessageBubble (bubble.go) - Chat bubbles; coach replies render through
Glamour as markdown.
CodeBlock (codeblock.go) - Syntax-highlighted code blocks using Chroma.
ToastManager (toast.go) - Transient status and error toasts with expiry.
StatusBar (statusbar.go) - Bottom bar with context label and shortcuts.

ToastManager also satisfies the conversation Notifier port, so background
session failures surface as error toasts without the session knowing
about the UI.
*/
package components
