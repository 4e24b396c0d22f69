// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the AVOCoach backend.
package api

// =============================================================================
// AUTH TYPES
// =============================================================================

// User is the account record returned by login and signup.
type User struct {
	ID       string `json:"id,omitempty"`
	FullName string `json:"full_name,omitempty"`
	Email    string `json:"email,omitempty"`
}

// loginRequest is the body for POST /api/auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// signupRequest is the body for POST /api/auth/signup.
type signupRequest struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// authResponse is the body returned by both auth endpoints.
type authResponse struct {
	OK   bool `json:"ok"`
	User User `json:"user"`
}

// =============================================================================
// CHAT TYPES
// =============================================================================

// sendMessageRequest is the body for POST /api/chat. ChatID is omitted for
// the first message of a new conversation; the backend then assigns one.
type sendMessageRequest struct {
	BotID   string `json:"bot_id"`
	Message string `json:"message"`
	ChatID  string `json:"chat_id,omitempty"`
}

// SendMessageResponse is the reply from POST /api/chat.
type SendMessageResponse struct {
	ChatID string `json:"chat_id"`
	Reply  string `json:"reply"`
}

// historyResponse is the body of GET /api/history/{bot_id}.
type historyResponse struct {
	Items []historyItem `json:"items"`
}

type historyItem struct {
	ChatID string `json:"chat_id"`
	Title  string `json:"title"`
}

// conversationResponse is the body of GET /api/history/{bot_id}/{chat_id}.
type conversationResponse struct {
	Messages []wireMessage `json:"messages"`
}

// wireMessage is a transcript entry as the backend sends it. Local message
// identity is assigned client-side.
type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// newChatResponse is the body of POST /api/history/{bot_id}/new.
type newChatResponse struct {
	ChatID string `json:"chat_id"`
}
