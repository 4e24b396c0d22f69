// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/morganforge/avocoach-tui/internal/api"
	"github.com/morganforge/avocoach-tui/internal/model"
)

type fakeBackend struct {
	mu           sync.Mutex
	sendErr      error
	historyErr   error
	convErr      error
	createErr    error
	chatID       string
	reply        string
	history      []model.ChatSummary
	transcript   []model.Message
	sendCalls    int
	historyCalls int
	lastRef      model.ChatRef
	sendHook     func()
	historyHook  func()
}

func (f *fakeBackend) SendMessage(ctx context.Context, botID, message string, ref model.ChatRef) (*api.SendMessageResponse, error) {
	f.mu.Lock()
	f.sendCalls++
	f.lastRef = ref
	hook := f.sendHook
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	return &api.SendMessageResponse{ChatID: f.chatID, Reply: f.reply}, nil
}

func (f *fakeBackend) History(ctx context.Context, botID string) ([]model.ChatSummary, error) {
	f.mu.Lock()
	f.historyCalls++
	hook := f.historyHook
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	return f.history, nil
}

func (f *fakeBackend) Conversation(ctx context.Context, botID, chatID string) ([]model.Message, error) {
	if f.convErr != nil {
		return nil, f.convErr
	}
	return f.transcript, nil
}

func (f *fakeBackend) CreateChat(ctx context.Context, botID string) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	return f.chatID, nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	errors []string
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	n.errors = append(n.errors, msg)
	n.mu.Unlock()
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.errors)
}

func TestLoadChatNoneResetsState(t *testing.T) {
	s := NewSession(&fakeBackend{}, "personal", nil)
	s.LoadChat(context.Background(), model.NoChat())

	if len(s.Messages()) != 0 {
		t.Error("messages should be empty")
	}
	if !s.Ref().IsNone() {
		t.Error("ref should be NoChat")
	}
	if s.Loading() {
		t.Error("loading should be false")
	}
}

func TestLoadChatFetchesTranscript(t *testing.T) {
	be := &fakeBackend{transcript: []model.Message{
		model.NewUserMessage("q"),
		model.NewAssistantMessage("a"),
	}}
	s := NewSession(be, "personal", nil)

	s.LoadChat(context.Background(), model.Chat("c-1"))
	if got := len(s.Messages()); got != 2 {
		t.Fatalf("len = %d", got)
	}
	if id, _ := s.Ref().IsChat(); id != "c-1" {
		t.Errorf("ref = %v", s.Ref())
	}
	if s.Loading() {
		t.Error("loading must clear after fetch")
	}
}

func TestSendBlankIsNoOp(t *testing.T) {
	be := &fakeBackend{}
	s := NewSession(be, "personal", nil)

	for _, text := range []string{"", "   ", "\n\t"} {
		if s.SendMessage(context.Background(), text) {
			t.Errorf("SendMessage(%q) should be a no-op", text)
		}
	}
	if be.sendCalls != 0 {
		t.Error("no network call for blank input")
	}
	if len(s.Messages()) != 0 || s.Loading() {
		t.Error("state must be unchanged")
	}
}

func TestSendSuccess(t *testing.T) {
	be := &fakeBackend{
		chatID:  "c-42",
		reply:   "here to help",
		history: []model.ChatSummary{{ChatID: "c-42", Title: "hi"}},
	}
	s := NewSession(be, "personal", nil)

	if !s.SendMessage(context.Background(), "hi") {
		t.Fatal("send should proceed")
	}

	msgs := s.Messages()
	if len(msgs) != 2 {
		t.Fatalf("len = %d, want 2", len(msgs))
	}
	if msgs[0].Role != model.RoleUser || msgs[0].Content != "hi" {
		t.Errorf("msgs[0] = %+v", msgs[0])
	}
	if msgs[1].Role != model.RoleAssistant || msgs[1].Content != "here to help" {
		t.Errorf("msgs[1] = %+v", msgs[1])
	}
	if id, _ := s.Ref().IsChat(); id != "c-42" {
		t.Errorf("server-assigned id not adopted: %v", s.Ref())
	}
	// History is refreshed before SendMessage returns.
	if be.historyCalls != 1 {
		t.Errorf("historyCalls = %d, want 1", be.historyCalls)
	}
	if len(s.History()) != 1 {
		t.Errorf("history = %+v", s.History())
	}
	if s.Loading() {
		t.Error("loading must clear")
	}
}

func TestSendFailureKeepsUserMessage(t *testing.T) {
	be := &fakeBackend{sendErr: errors.New("boom")}
	notify := &recordingNotifier{}
	s := NewSession(be, "personal", notify)

	s.SendMessage(context.Background(), "hi")

	msgs := s.Messages()
	if len(msgs) != 2 {
		t.Fatalf("len = %d, want 2", len(msgs))
	}
	if msgs[0].Content != "hi" {
		t.Error("optimistic user message must be retained")
	}
	if msgs[1].Role != model.RoleAssistant || msgs[1].Content != ErrorReply {
		t.Errorf("msgs[1] = %+v, want synthetic error reply", msgs[1])
	}
	if notify.count() != 1 {
		t.Errorf("notifications = %d, want 1", notify.count())
	}
	if s.Loading() {
		t.Error("loading must clear after failure")
	}
}

func TestSendWhileBusyIsRejected(t *testing.T) {
	be := &fakeBackend{reply: "ok"}
	s := NewSession(be, "personal", nil)

	release := make(chan struct{})
	entered := make(chan struct{})
	var once sync.Once
	be.sendHook = func() {
		once.Do(func() { close(entered) })
		<-release
	}

	done := make(chan struct{})
	go func() {
		s.SendMessage(context.Background(), "first")
		close(done)
	}()

	<-entered
	if s.SendMessage(context.Background(), "second") {
		t.Error("second send while busy should be rejected")
	}
	close(release)
	<-done

	if be.sendCalls != 1 {
		t.Errorf("sendCalls = %d, want 1", be.sendCalls)
	}
}

func TestSendStaysBusyThroughHistoryRefresh(t *testing.T) {
	be := &fakeBackend{
		chatID:  "c-1",
		reply:   "ok",
		history: []model.ChatSummary{{ChatID: "c-1", Title: "hi"}},
	}
	s := NewSession(be, "personal", nil)

	release := make(chan struct{})
	entered := make(chan struct{})
	var once sync.Once
	be.historyHook = func() {
		once.Do(func() { close(entered) })
		<-release
	}

	done := make(chan struct{})
	go func() {
		s.SendMessage(context.Background(), "first")
		close(done)
	}()

	// The reply has landed but the awaited history refresh has not; the
	// send is still one outstanding operation.
	<-entered
	if !s.Loading() {
		t.Error("session must stay busy until the history refresh lands")
	}
	if s.SendMessage(context.Background(), "second") {
		t.Error("second send during the first's history refresh should be rejected")
	}
	close(release)
	<-done

	if be.sendCalls != 1 {
		t.Errorf("sendCalls = %d, want 1", be.sendCalls)
	}
	if s.Loading() {
		t.Error("loading must clear once the refresh completes")
	}
}

func TestLoadChatFailureKeepsPriorTranscript(t *testing.T) {
	be := &fakeBackend{transcript: []model.Message{
		model.NewUserMessage("q"),
		model.NewAssistantMessage("a"),
	}}
	notify := &recordingNotifier{}
	s := NewSession(be, "personal", notify)

	s.LoadChat(context.Background(), model.Chat("c-1"))
	if len(s.Messages()) != 2 {
		t.Fatal("expected the first chat to load")
	}

	be.convErr = errors.New("boom")
	s.LoadChat(context.Background(), model.Chat("c-2"))

	if len(s.Messages()) != 2 {
		t.Error("failed load must not discard the prior transcript")
	}
	if id, _ := s.Ref().IsChat(); id != "c-1" {
		t.Errorf("ref = %v, want the prior chat", s.Ref())
	}
	if s.Loading() {
		t.Error("loading must clear after a failed load")
	}
	if notify.count() != 1 {
		t.Error("failed load should notify")
	}
}

func TestRegenerateTruncatesAndReplays(t *testing.T) {
	be := &fakeBackend{chatID: "c-1", reply: "new answer"}
	s := NewSession(be, "personal", nil)
	be.transcript = []model.Message{
		model.NewUserMessage("q1"),
		model.NewAssistantMessage("a1"),
		model.NewUserMessage("q2"),
		model.NewAssistantMessage("a2"),
	}
	s.LoadChat(context.Background(), model.Chat("c-1"))

	if !s.RegenerateFromIndex(context.Background(), 1, "edited") {
		t.Fatal("regenerate should proceed")
	}

	msgs := s.Messages()
	if len(msgs) != 3 {
		t.Fatalf("len = %d, want 3", len(msgs))
	}
	if msgs[1].Content != "edited" {
		t.Errorf("msgs[1] = %q, want edited", msgs[1].Content)
	}
	if msgs[2].Content != "new answer" {
		t.Errorf("msgs[2] = %q", msgs[2].Content)
	}
}

func TestRegenerateOutOfBoundsIsNoOp(t *testing.T) {
	be := &fakeBackend{}
	s := NewSession(be, "personal", nil)
	be.transcript = []model.Message{model.NewUserMessage("q")}
	s.LoadChat(context.Background(), model.Chat("c-1"))

	if s.RegenerateFromIndex(context.Background(), -1, "x") {
		t.Error("negative index should be a no-op")
	}
	if s.RegenerateFromIndex(context.Background(), 1, "x") {
		t.Error("index past the end should be a no-op")
	}
	if s.RegenerateFromIndex(context.Background(), 0, "   ") {
		t.Error("blank replacement should be a no-op")
	}
	if len(s.Messages()) != 1 {
		t.Error("transcript must be unchanged")
	}
}

func TestUpdateMessageIsLocal(t *testing.T) {
	be := &fakeBackend{}
	s := NewSession(be, "personal", nil)
	be.transcript = []model.Message{model.NewUserMessage("orig")}
	s.LoadChat(context.Background(), model.Chat("c-1"))

	if !s.UpdateMessage(0, "changed") {
		t.Fatal("update should succeed")
	}
	if s.Messages()[0].Content != "changed" {
		t.Error("content not updated")
	}
	if be.sendCalls != 0 {
		t.Error("UpdateMessage must not hit the backend")
	}
	if s.UpdateMessage(5, "x") {
		t.Error("out-of-bounds update should be rejected")
	}
	if s.UpdateMessage(0, "   ") {
		t.Error("blank replacement should be rejected")
	}
	if s.Messages()[0].Content != "changed" {
		t.Error("blank replacement must not blank the message")
	}
	if !s.UpdateMessage(0, "  padded  ") {
		t.Fatal("trimmable content should be accepted")
	}
	if s.Messages()[0].Content != "padded" {
		t.Errorf("content = %q, want trimmed", s.Messages()[0].Content)
	}
}

func TestCreateNewChatAdoptsID(t *testing.T) {
	be := &fakeBackend{chatID: "fresh", history: []model.ChatSummary{{ChatID: "fresh"}}}
	s := NewSession(be, "personal", nil)
	be.transcript = []model.Message{model.NewUserMessage("old")}
	s.LoadChat(context.Background(), model.Chat("c-1"))

	ref := s.CreateNewChat(context.Background())
	if id, ok := ref.IsChat(); !ok || id != "fresh" {
		t.Errorf("ref = %v", ref)
	}
	if len(s.Messages()) != 0 {
		t.Error("transcript should be reset")
	}
	if len(s.History()) != 1 {
		t.Error("history should be refreshed")
	}
}

func TestCreateNewChatFailure(t *testing.T) {
	be := &fakeBackend{createErr: errors.New("boom")}
	notify := &recordingNotifier{}
	s := NewSession(be, "personal", notify)

	ref := s.CreateNewChat(context.Background())
	if !ref.IsNone() {
		t.Error("failure should return NoChat")
	}
	if notify.count() != 1 {
		t.Error("failure should notify")
	}
}

func TestLoadHistoryFailureKeepsPriorList(t *testing.T) {
	be := &fakeBackend{history: []model.ChatSummary{{ChatID: "a", Title: "t"}}}
	notify := &recordingNotifier{}
	s := NewSession(be, "personal", notify)

	s.LoadHistory(context.Background())
	if len(s.History()) != 1 {
		t.Fatal("expected one entry")
	}

	be.historyErr = errors.New("boom")
	s.LoadHistory(context.Background())
	if len(s.History()) != 1 {
		t.Error("failed refresh must leave the prior list untouched")
	}
	if notify.count() != 1 {
		t.Error("failed refresh should notify")
	}
}

func TestStaleReplyIsDiscardedAfterNavigation(t *testing.T) {
	be := &fakeBackend{chatID: "c-old", reply: "stale answer"}
	s := NewSession(be, "personal", nil)

	release := make(chan struct{})
	entered := make(chan struct{})
	var once sync.Once
	be.sendHook = func() {
		once.Do(func() { close(entered) })
		<-release
	}

	done := make(chan struct{})
	go func() {
		s.SendMessage(context.Background(), "hello")
		close(done)
	}()

	// Navigate away mid-flight.
	<-entered
	s.Reset()
	close(release)
	<-done

	if len(s.Messages()) != 0 {
		t.Errorf("stale reply applied: %+v", s.Messages())
	}
	if !s.Ref().IsNone() {
		t.Error("stale chat id adopted after navigation")
	}
	if s.Loading() {
		t.Error("loading flag leaked")
	}
}
