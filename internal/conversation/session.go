// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package conversation holds the per-bot chat session state: the message
// transcript, the history list, and the send/regenerate flow against the
// backend.
package conversation

import (
	"context"
	"strings"
	"sync"

	"github.com/morganforge/avocoach-tui/internal/api"
	"github.com/morganforge/avocoach-tui/internal/model"
)

// ErrorReply is appended to the transcript when a send fails, so the
// conversation itself shows that something went wrong. The optimistic user
// message stays; the user's input is never silently lost.
const ErrorReply = "Sorry, an error occurred. Please try again."

// Service is the backend surface a session needs. *api.Client satisfies it.
type Service interface {
	SendMessage(ctx context.Context, botID, message string, ref model.ChatRef) (*api.SendMessageResponse, error)
	History(ctx context.Context, botID string) ([]model.ChatSummary, error)
	Conversation(ctx context.Context, botID, chatID string) ([]model.Message, error)
	CreateChat(ctx context.Context, botID string) (string, error)
}

// Notifier receives user-visible failure notices. Network failures never
// escape the session as raw errors; they surface here and in the transcript.
type Notifier interface {
	Error(message string)
}

// nopNotifier is used when no notifier is wired.
type nopNotifier struct{}

func (nopNotifier) Error(string) {}

// =============================================================================
// SESSION
// =============================================================================

// Session is the conversation state for one bot. At most one send or
// regenerate is in flight at a time; a second one issued while the first is
// outstanding is rejected, not queued.
//
// Methods that perform network I/O block and are meant to be called from a
// background goroutine (a tea.Cmd); accessors are cheap and safe to call
// from the UI loop.
type Session struct {
	mu       sync.Mutex
	svc      Service
	notify   Notifier
	botID    string
	ref      model.ChatRef
	messages []model.Message
	history  []model.ChatSummary
	loading  bool

	// generation is bumped every time the session navigates (LoadChat,
	// reset, new chat). A response that arrives for an older generation
	// is discarded instead of overwriting the newer state.
	generation uint64
}

// NewSession creates an empty session for the given bot.
func NewSession(svc Service, botID string, notify Notifier) *Session {
	if notify == nil {
		notify = nopNotifier{}
	}
	return &Session{svc: svc, notify: notify, botID: botID}
}

// BotID returns the bot this session talks to.
func (s *Session) BotID() string {
	return s.botID
}

// Ref returns the current chat reference.
func (s *Session) Ref() model.ChatRef {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ref
}

// Loading reports whether a network operation is in flight.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Messages returns a copy of the transcript.
func (s *Session) Messages() []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// History returns a copy of the bot's conversation list.
func (s *Session) History() []model.ChatSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ChatSummary, len(s.history))
	copy(out, s.history)
	return out
}

// =============================================================================
// NAVIGATION
// =============================================================================

// LoadHistory refreshes the conversation list. On failure the prior list is
// left untouched and the failure surfaces as a notification.
func (s *Session) LoadHistory(ctx context.Context) {
	items, err := s.svc.History(ctx, s.botID)
	if err != nil {
		s.notify.Error("Could not load chat history")
		return
	}

	s.mu.Lock()
	s.history = items
	s.mu.Unlock()
}

// LoadChat switches the session to the given chat. NoChat resets to the
// empty not-yet-created state with no server call; a concrete id fetches
// that chat's transcript and sets it verbatim.
func (s *Session) LoadChat(ctx context.Context, ref model.ChatRef) {
	id, ok := ref.IsChat()
	if !ok {
		s.mu.Lock()
		s.reset()
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.loading = true
	s.mu.Unlock()

	msgs, err := s.svc.Conversation(ctx, s.botID, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		// The user navigated away while this fetch was in flight.
		return
	}
	s.loading = false
	if err != nil {
		// The prior transcript and chat id stay in place on a failed load.
		s.notify.Error("Could not load the conversation")
		return
	}
	s.ref = ref
	s.messages = msgs
}

// CreateNewChat asks the backend for a fresh conversation, resets the
// transcript, and adopts the new id. Returns the id, or NoChat on failure.
func (s *Session) CreateNewChat(ctx context.Context) model.ChatRef {
	id, err := s.svc.CreateChat(ctx, s.botID)
	if err != nil {
		s.notify.Error("Could not create a new chat")
		return model.NoChat()
	}

	s.mu.Lock()
	s.reset()
	s.ref = model.Chat(id)
	s.mu.Unlock()

	s.LoadHistory(ctx)
	return model.Chat(id)
}

// Reset returns the session to the empty no-chat state.
func (s *Session) Reset() {
	s.mu.Lock()
	s.reset()
	s.mu.Unlock()
}

// reset clears transcript and chat id. Caller holds the mutex.
func (s *Session) reset() {
	s.ref = model.NoChat()
	s.messages = nil
	s.loading = false
	s.generation++
}

// =============================================================================
// SENDING
// =============================================================================

// SendMessage posts a user message. Blank input or an in-flight operation
// makes it a no-op and returns false. The user message is appended
// optimistically before the network call; on success the assistant reply is
// appended, any server-assigned chat id adopted, and the history list
// refreshed before returning. On failure the transcript gains the synthetic
// error reply instead.
func (s *Session) SendMessage(ctx context.Context, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return false
	}
	s.loading = true
	s.messages = append(s.messages, model.NewUserMessage(text))
	ref := s.ref
	gen := s.generation
	s.mu.Unlock()

	s.deliver(ctx, text, ref, gen)
	return true
}

// RegenerateFromIndex rewinds the conversation to the message at index,
// replaces its content with newText, and replays from there. Everything
// after index is discarded. No-op when busy, when index is out of bounds,
// or when newText trims to empty.
func (s *Session) RegenerateFromIndex(ctx context.Context, index int, newText string) bool {
	newText = strings.TrimSpace(newText)
	if newText == "" {
		return false
	}

	s.mu.Lock()
	if s.loading || index < 0 || index >= len(s.messages) {
		s.mu.Unlock()
		return false
	}
	s.loading = true
	s.messages = s.messages[:index+1]
	s.messages[index].Content = newText
	ref := s.ref
	gen := s.generation
	s.mu.Unlock()

	s.deliver(ctx, newText, ref, gen)
	return true
}

// UpdateMessage edits a transcript entry locally without contacting the
// backend. Used by the edit flow before the user confirms a regenerate.
// Blank replacement content is rejected; a message is never blanked.
func (s *Session) UpdateMessage(index int, newContent string) bool {
	newContent = strings.TrimSpace(newContent)
	if newContent == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.messages) {
		return false
	}
	s.messages[index].Content = newContent
	return true
}

// deliver runs the network half of a send or regenerate: issue the message,
// then apply the outcome unless the session has navigated away since.
func (s *Session) deliver(ctx context.Context, text string, ref model.ChatRef, gen uint64) {
	resp, err := s.svc.SendMessage(ctx, s.botID, text, ref)

	s.mu.Lock()
	if s.generation != gen {
		// Stale response for a chat the user already left.
		s.mu.Unlock()
		return
	}
	if err != nil {
		s.loading = false
		s.messages = append(s.messages, model.NewAssistantMessage(ErrorReply))
		s.mu.Unlock()
		s.notify.Error("Message failed to send")
		return
	}
	if resp.ChatID != "" {
		s.ref = model.Chat(resp.ChatID)
	}
	s.messages = append(s.messages, model.NewAssistantMessage(resp.Reply))
	s.mu.Unlock()

	// History reflects the send before the caller observes completion. The
	// busy guard stays held through the refresh; a send is one operation
	// from optimistic append to updated history.
	s.LoadHistory(ctx)

	s.mu.Lock()
	if s.generation == gen {
		s.loading = false
	}
	s.mu.Unlock()
}
