// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/avocoach-tui/internal/conversation"
	"github.com/morganforge/avocoach-tui/internal/metadata"
	"github.com/morganforge/avocoach-tui/internal/model"
	"github.com/morganforge/avocoach-tui/internal/ui/components"
	"github.com/morganforge/avocoach-tui/internal/ui/styles"
)

// focusArea is the part of the view that owns the keyboard.
type focusArea int

const (
	focusInput focusArea = iota
	focusSidebar
	focusEdit
)

// sidebarWidth is the fixed sidebar column width.
const sidebarWidth = 32

// Model is the chat view for one bot.
type Model struct {
	theme   *styles.Theme
	session *conversation.Session
	meta    *metadata.Store
	bot     model.Bot

	sidebar components.Sidebar
	toasts  *components.ToastManager

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	focus       focusArea
	sidebarOpen bool
	sending     bool

	// Edit mode state: editIndex is the transcript index being edited.
	editIndex int
	editInput textinput.Model

	width  int
	height int
}

// New creates a chat view bound to a session and its metadata store.
func New(theme *styles.Theme, session *conversation.Session, meta *metadata.Store, toasts *components.ToastManager, sidebarOpen bool) Model {
	bot, _ := model.LookupBot(session.BotID())

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type a message..."
	ti.CharLimit = 4096
	ti.Focus()

	edit := textinput.New()
	edit.Prompt = "edit> "
	edit.CharLimit = 4096

	vp := viewport.New(80, 20)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		theme:       theme,
		session:     session,
		meta:        meta,
		bot:         bot,
		sidebar:     components.NewSidebar(theme, meta),
		toasts:      toasts,
		viewport:    vp,
		input:       ti,
		editInput:   edit,
		spinner:     sp,
		sidebarOpen: sidebarOpen,
		editIndex:   -1,
	}
}

// Init loads the bot's history.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadHistoryCmd(), m.spinner.Tick)
}

// SetTheme swaps the color scheme.
func (m *Model) SetTheme(theme *styles.Theme) {
	m.theme = theme
	m.sidebar.SetTheme(theme)
}

// SetSize updates the layout dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	contentWidth := width
	if m.sidebarOpen {
		contentWidth -= sidebarWidth
	}
	m.viewport.Width = contentWidth
	m.viewport.Height = height - 4
	m.input.Width = contentWidth - 4
	m.editInput.Width = contentWidth - 8
	m.sidebar.SetSize(sidebarWidth, height-1)
	m.syncViewport()
}

// =============================================================================
// COMMANDS
// =============================================================================

func (m Model) loadHistoryCmd() tea.Cmd {
	session := m.session
	return func() tea.Msg {
		session.LoadHistory(context.Background())
		return historyLoadedMsg{}
	}
}

func (m Model) loadChatCmd(ref model.ChatRef) tea.Cmd {
	session := m.session
	return func() tea.Msg {
		session.LoadChat(context.Background(), ref)
		return chatLoadedMsg{}
	}
}

func (m Model) sendCmd(text string) tea.Cmd {
	session := m.session
	return func() tea.Msg {
		session.SendMessage(context.Background(), text)
		return sendDoneMsg{}
	}
}

func (m Model) regenerateCmd(index int, text string) tea.Cmd {
	session := m.session
	return func() tea.Msg {
		session.RegenerateFromIndex(context.Background(), index, text)
		return sendDoneMsg{}
	}
}

func (m Model) newChatCmd() tea.Cmd {
	session := m.session
	return func() tea.Msg {
		session.CreateNewChat(context.Background())
		return newChatMsg{}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles input and command results.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		m.sidebar.SetHistory(m.session.History())
		return m, nil

	case chatLoadedMsg, newChatMsg:
		m.sending = false
		m.sidebar.SetActive(m.session.Ref())
		m.sidebar.SetHistory(m.session.History())
		m.syncViewport()
		m.viewport.GotoBottom()
		return m, nil

	case sendDoneMsg:
		m.sending = false
		m.sidebar.SetActive(m.session.Ref())
		m.sidebar.SetHistory(m.session.History())
		m.syncViewport()
		m.viewport.GotoBottom()
		return m, nil

	case components.SelectChatMsg:
		m.sending = false
		m.focus = focusInput
		m.input.Focus()
		return m, m.loadChatCmd(model.Chat(msg.ChatID))

	case components.NewChatMsg:
		m.focus = focusInput
		m.input.Focus()
		return m, m.newChatCmd()

	case components.ChatDeletedMsg:
		// Deleting the active chat falls back to the empty state.
		if id, ok := m.session.Ref().IsChat(); ok && id == msg.ChatID {
			m.session.Reset()
			m.syncViewport()
		}
		m.sidebar.SetActive(m.session.Ref())
		m.toasts.AddStatus("Chat hidden from history")
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(key tea.KeyMsg) (Model, tea.Cmd) {
	// Global chat-view keys.
	switch key.String() {
	case "ctrl+b":
		m.sidebarOpen = !m.sidebarOpen
		m.SetSize(m.width, m.height)
		if !m.sidebarOpen && m.focus == focusSidebar {
			m.focus = focusInput
			m.input.Focus()
		}
		return m, nil

	case "tab":
		if m.focus == focusEdit {
			break
		}
		if m.sidebarOpen && m.focus == focusInput {
			m.focus = focusSidebar
			m.input.Blur()
		} else if m.focus == focusSidebar {
			m.focus = focusInput
			m.input.Focus()
		}
		return m, nil
	}

	switch m.focus {
	case focusSidebar:
		if key.String() == "esc" && !m.sidebar.Searching() {
			return m, func() tea.Msg { return BackMsg{} }
		}
		var cmd tea.Cmd
		m.sidebar, cmd = m.sidebar.Update(key)
		return m, cmd

	case focusEdit:
		return m.handleEditKey(key)
	}
	return m.handleInputKey(key)
}

func (m Model) handleInputKey(key tea.KeyMsg) (Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		return m, func() tea.Msg { return BackMsg{} }

	case "enter":
		text := m.input.Value()
		if m.sending {
			return m, nil
		}
		m.input.SetValue("")
		m.sending = true
		m.syncViewport()
		m.viewport.GotoBottom()
		return m, m.sendCmd(text)

	case "ctrl+e":
		// Edit the last user message and replay from there.
		if idx := m.lastUserIndex(); idx >= 0 && !m.sending {
			m.focus = focusEdit
			m.editIndex = idx
			msgs := m.session.Messages()
			m.editInput.SetValue(msgs[idx].Content)
			m.editInput.Focus()
			m.editInput.CursorEnd()
			m.input.Blur()
			m.syncViewport()
		}
		return m, nil

	case "pgup":
		m.viewport.HalfViewUp()
		return m, nil

	case "pgdown":
		m.viewport.HalfViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return m, cmd
}

func (m Model) handleEditKey(key tea.KeyMsg) (Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.focus = focusInput
		m.editIndex = -1
		m.editInput.Blur()
		m.input.Focus()
		m.syncViewport()
		return m, nil

	case "up":
		if idx := m.prevUserIndex(m.editIndex); idx >= 0 {
			m.editIndex = idx
			m.editInput.SetValue(m.session.Messages()[idx].Content)
			m.editInput.CursorEnd()
			m.syncViewport()
		}
		return m, nil

	case "down":
		if idx := m.nextUserIndex(m.editIndex); idx >= 0 {
			m.editIndex = idx
			m.editInput.SetValue(m.session.Messages()[idx].Content)
			m.editInput.CursorEnd()
			m.syncViewport()
		}
		return m, nil

	case "enter":
		index := m.editIndex
		text := m.editInput.Value()
		m.focus = focusInput
		m.editIndex = -1
		m.editInput.Blur()
		m.input.Focus()
		m.sending = true
		m.syncViewport()
		return m, m.regenerateCmd(index, text)

	case "ctrl+s":
		// Save the edit in place without replaying the conversation.
		m.session.UpdateMessage(m.editIndex, m.editInput.Value())
		m.focus = focusInput
		m.editIndex = -1
		m.editInput.Blur()
		m.input.Focus()
		m.syncViewport()
		return m, nil
	}

	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(key)
	return m, cmd
}

// =============================================================================
// HELPERS
// =============================================================================

// lastUserIndex returns the index of the newest user message, or -1.
func (m *Model) lastUserIndex() int {
	msgs := m.session.Messages()
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == model.RoleUser {
			return i
		}
	}
	return -1
}

// prevUserIndex returns the user message index before from, or -1.
func (m *Model) prevUserIndex(from int) int {
	msgs := m.session.Messages()
	for i := from - 1; i >= 0; i-- {
		if msgs[i].Role == model.RoleUser {
			return i
		}
	}
	return -1
}

// nextUserIndex returns the user message index after from, or -1.
func (m *Model) nextUserIndex(from int) int {
	msgs := m.session.Messages()
	for i := from + 1; i < len(msgs); i++ {
		if msgs[i].Role == model.RoleUser {
			return i
		}
	}
	return -1
}

// syncViewport re-renders the transcript into the viewport.
func (m *Model) syncViewport() {
	selected := -1
	if m.focus == focusEdit {
		selected = m.editIndex
	}
	content := components.RenderTranscript(m.theme, m.session.Messages(), m.viewport.Width, selected)
	m.viewport.SetContent(content)
}

// typingIndicator returns the in-flight line, or empty.
func (m *Model) typingIndicator() string {
	if !m.sending {
		return ""
	}
	return m.spinner.View() + " " + m.theme.ThinkingText.Render(m.bot.Label+" is thinking...")
}
