// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package login implements the login and signup forms.
package login

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/morganforge/avocoach-tui/internal/auth"
	"github.com/morganforge/avocoach-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// AuthenticatedMsg is emitted when login or signup succeeds.
type AuthenticatedMsg struct{}

// resultMsg carries the outcome of a background auth call.
type resultMsg struct {
	err error
}

// formMode selects between the login and signup forms.
type formMode int

const (
	modeLogin formMode = iota
	modeRegister
)

// Field indices for the register form; login uses only email and password.
const (
	fieldFullName = iota
	fieldEmail
	fieldPassword
	fieldConfirm
	fieldCount
)

// =============================================================================
// MODEL
// =============================================================================

// Model is the auth screen.
type Model struct {
	theme   *styles.Theme
	session *auth.Session

	mode   formMode
	inputs [fieldCount]textinput.Model
	focus  int
	errMsg string
	busy   bool

	width  int
	height int
}

// New creates the auth screen in login mode.
func New(theme *styles.Theme, session *auth.Session) Model {
	m := Model{theme: theme, session: session, focus: fieldEmail}

	for i := range m.inputs {
		in := textinput.New()
		in.CharLimit = 128
		m.inputs[i] = in
	}
	m.inputs[fieldFullName].Placeholder = "Full name"
	m.inputs[fieldEmail].Placeholder = "Email"
	m.inputs[fieldPassword].Placeholder = "Password"
	m.inputs[fieldPassword].EchoMode = textinput.EchoPassword
	m.inputs[fieldConfirm].Placeholder = "Confirm password"
	m.inputs[fieldConfirm].EchoMode = textinput.EchoPassword

	m.inputs[fieldEmail].Focus()
	return m
}

// SetTheme swaps the color scheme.
func (m *Model) SetTheme(theme *styles.Theme) {
	m.theme = theme
}

// SetSize updates the layout dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// fields returns the active field indices for the current mode, in tab
// order.
func (m *Model) fields() []int {
	if m.mode == modeRegister {
		return []int{fieldFullName, fieldEmail, fieldPassword, fieldConfirm}
	}
	return []int{fieldEmail, fieldPassword}
}

func (m *Model) setFocus(field int) {
	m.focus = field
	for i := range m.inputs {
		if i == field {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles input and auth results.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		return m, func() tea.Msg { return AuthenticatedMsg{} }

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			m.cycleFocus(1)
			return m, nil

		case "shift+tab", "up":
			m.cycleFocus(-1)
			return m, nil

		case "ctrl+s":
			m.toggleMode()
			return m, nil

		case "enter":
			fields := m.fields()
			if m.focus != fields[len(fields)-1] {
				m.cycleFocus(1)
				return m, nil
			}
			return m.submit()
		}

		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) cycleFocus(dir int) {
	fields := m.fields()
	pos := 0
	for i, f := range fields {
		if f == m.focus {
			pos = i
		}
	}
	pos = (pos + dir + len(fields)) % len(fields)
	m.setFocus(fields[pos])
}

func (m *Model) toggleMode() {
	if m.mode == modeLogin {
		m.mode = modeRegister
		m.setFocus(fieldFullName)
	} else {
		m.mode = modeLogin
		m.setFocus(fieldEmail)
	}
	m.errMsg = ""
}

// submit runs the auth call in the background.
func (m Model) submit() (Model, tea.Cmd) {
	m.errMsg = ""
	m.busy = true

	session := m.session
	email := m.inputs[fieldEmail].Value()
	password := m.inputs[fieldPassword].Value()

	if m.mode == modeRegister {
		fullName := m.inputs[fieldFullName].Value()
		confirm := m.inputs[fieldConfirm].Value()
		return m, func() tea.Msg {
			return resultMsg{err: session.Register(context.Background(), fullName, email, password, confirm)}
		}
	}
	return m, func() tea.Msg {
		return resultMsg{err: session.Login(context.Background(), email, password)}
	}
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the form.
func (m Model) View() string {
	var b strings.Builder

	title := "Sign in to AVOCoach"
	action := "Ctrl+S switch to sign up"
	if m.mode == modeRegister {
		title = "Create your AVOCoach account"
		action = "Ctrl+S switch to sign in"
	}
	b.WriteString(m.theme.HeaderTitle.Render(title))
	b.WriteString("\n\n")

	labels := [fieldCount]string{"Name", "Email", "Password", "Confirm"}
	for _, f := range m.fields() {
		b.WriteString(m.theme.FormLabel.Render(labels[f]))
		b.WriteString("\n")
		b.WriteString(m.inputs[f].View())
		b.WriteString("\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(m.theme.FormError.Render(m.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.busy {
		b.WriteString(m.theme.ThinkingText.Render("Signing in..."))
	} else {
		b.WriteString(m.theme.FormButtonFocus.Render("Enter to submit"))
		b.WriteString("  ")
		b.WriteString(m.theme.ShortcutDesc.Render(action))
	}

	box := m.theme.FormBox.Render(b.String())
	if m.width > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}
