// avocoach - a terminal client for the AVOCoach coaching assistants.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/morganforge/avocoach-tui/internal/api"
	"github.com/morganforge/avocoach-tui/internal/auth"
	"github.com/morganforge/avocoach-tui/internal/cli"
	"github.com/morganforge/avocoach-tui/internal/config"
	"github.com/morganforge/avocoach-tui/internal/conversation"
	"github.com/morganforge/avocoach-tui/internal/metadata"
	"github.com/morganforge/avocoach-tui/internal/storage"
	"github.com/morganforge/avocoach-tui/internal/ui/chat"
	"github.com/morganforge/avocoach-tui/internal/ui/components"
	"github.com/morganforge/avocoach-tui/internal/ui/login"
	"github.com/morganforge/avocoach-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	var err error
	switch cmd {
	case cli.CmdTUI:
		err = runTUI(args)
	case cli.CmdAsk:
		err = cli.RunAsk(args)
	case cli.CmdChat:
		err = cli.RunChat(args)
	case cli.CmdBots:
		err = cli.RunBots(args)
	case cli.CmdLogin:
		err = cli.RunLogin(args)
	case cli.CmdLogout:
		err = cli.RunLogout(args)
	case cli.CmdVersion:
		err = cli.RunVersion()
	case cli.CmdHelp:
		err = cli.RunHelp()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// TUI APP MODEL
// =============================================================================

// themeKey is the local storage key holding the persisted theme choice.
const themeKey = "theme"

// appState is the top-level screen.
type appState int

const (
	stateLogin appState = iota
	stateDashboard
	stateChat
)

// sessionExpiredMsg is delivered when the API client sees a 401.
type sessionExpiredMsg struct{}

// loggedOutMsg is delivered after a voluntary logout completes.
type loggedOutMsg struct{}

// configReloadedMsg is delivered when the config file changes on disk.
type configReloadedMsg struct {
	cfg *config.Config
}

// appModel is the root Bubble Tea model.
type appModel struct {
	cfg     *config.Config
	theme   *styles.Theme
	client  *api.Client
	authSes *auth.Session
	store   *storage.KVStore
	toasts  *components.ToastManager

	state   appState
	login   login.Model
	botList components.BotList
	chat    chat.Model
	status  components.StatusBar

	// One conversation session and overlay store per bot, created lazily.
	sessions map[string]*conversation.Session
	overlays map[string]*metadata.Store

	width  int
	height int
}

func runTUI(args cli.Args) error {
	cfg := config.Global()
	if args.Server != "" {
		cfg.Server.URL = args.Server
	}

	// Theme: local storage wins over config, matching the persisted toggle.
	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return err
	}
	store, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open local storage: %w", err)
	}
	defer store.Close()

	mode := styles.Mode(cfg.UI.Theme)
	if saved, ok, _ := store.Get(themeKey); ok {
		mode = styles.Mode(saved)
	}
	theme := styles.NewTheme(mode)

	cookiePath, err := cfg.CookiePath()
	if err != nil {
		return err
	}

	var program *tea.Program

	client, err := api.NewClient(api.ClientConfig{
		BaseURL:    cfg.Server.URL,
		Timeout:    time.Duration(cfg.Server.TimeoutSecs) * time.Second,
		CookiePath: cookiePath,
		OnSessionExpired: func() {
			if program != nil {
				program.Send(sessionExpiredMsg{})
			}
		},
	})
	if err != nil {
		return err
	}

	authSes := auth.NewSession(client)

	m := appModel{
		cfg:      cfg,
		theme:    theme,
		client:   client,
		authSes:  authSes,
		store:    store,
		toasts:   components.NewToastManager(),
		state:    stateLogin,
		login:    login.New(theme, authSes),
		botList:  components.NewBotList(theme),
		status:   components.NewStatusBar(theme),
		sessions: make(map[string]*conversation.Session),
		overlays: make(map[string]*metadata.Store),
	}

	program = tea.NewProgram(m, tea.WithAltScreen())

	// Hot-reload config changes (server URL needs a restart; theme and
	// sidebar defaults apply live).
	watcher, err := config.Watch(func(cfg *config.Config) {
		program.Send(configReloadedMsg{cfg: cfg})
	})
	if err == nil {
		defer watcher.Close()
	}

	_, err = program.Run()
	return err
}

// sessionFor returns (creating if needed) the conversation session and
// metadata overlay for a bot.
func (m *appModel) sessionFor(botID string) (*conversation.Session, *metadata.Store) {
	if _, ok := m.sessions[botID]; !ok {
		m.sessions[botID] = conversation.NewSession(m.client, botID, m.toasts)
		m.overlays[botID] = metadata.NewStore(m.store, botID)
	}
	return m.sessions[botID], m.overlays[botID]
}

// Init starts the toast ticker.
func (m appModel) Init() tea.Cmd {
	return components.ToastTickCmd()
}

// Update routes messages to the active screen.
func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.theme.SetSize(msg.Width, msg.Height)
		m.login.SetSize(msg.Width, msg.Height)
		m.botList.SetSize(msg.Width, msg.Height-1)
		m.status.SetWidth(msg.Width)
		if m.state == stateChat {
			m.chat.SetSize(msg.Width, msg.Height-1)
		}
		return m, nil

	case components.ToastTickMsg:
		m.toasts.Tick()
		return m, components.ToastTickCmd()

	case sessionExpiredMsg:
		// The backend rejected the session; back to login.
		m.authSes.Expire()
		m.toasts.AddError("Session expired. Please sign in again.")
		m.state = stateLogin
		m.login = login.New(m.theme, m.authSes)
		m.login.SetSize(m.width, m.height)
		return m, nil

	case loggedOutMsg:
		m.state = stateLogin
		m.login = login.New(m.theme, m.authSes)
		m.login.SetSize(m.width, m.height)
		return m, nil

	case configReloadedMsg:
		m.cfg = msg.cfg
		m.toasts.AddStatus("Configuration reloaded")
		return m, nil

	case login.AuthenticatedMsg:
		m.state = stateDashboard
		return m, nil

	case components.SelectBotMsg:
		return m.openChat(msg.BotID)

	case chat.BackMsg:
		m.state = stateDashboard
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "ctrl+t":
			return m.toggleTheme()
		}
	}

	return m.updateScreen(msg)
}

// updateScreen forwards the message to the active screen.
func (m appModel) updateScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case stateLogin:
		m.login, cmd = m.login.Update(msg)
	case stateDashboard:
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+l" {
			return m, m.logoutCmd()
		}
		m.botList, cmd = m.botList.Update(msg)
	case stateChat:
		m.chat, cmd = m.chat.Update(msg)
	}
	return m, cmd
}

// openChat switches to the chat screen for a bot.
func (m appModel) openChat(botID string) (tea.Model, tea.Cmd) {
	session, overlay := m.sessionFor(botID)
	m.chat = chat.New(m.theme, session, overlay, m.toasts, !m.cfg.UI.SidebarCollapsed)
	m.chat.SetSize(m.width, m.height-1)
	m.state = stateChat
	return m, m.chat.Init()
}

// toggleTheme flips dark/light and persists the choice.
func (m appModel) toggleTheme() (tea.Model, tea.Cmd) {
	m.theme = m.theme.Toggle()
	m.store.Set(themeKey, string(m.theme.Mode))

	m.login.SetTheme(m.theme)
	m.botList.SetTheme(m.theme)
	m.status.SetTheme(m.theme)
	if m.state == stateChat {
		m.chat.SetTheme(m.theme)
	}
	return m, nil
}

// logoutCmd ends the session in the background.
func (m appModel) logoutCmd() tea.Cmd {
	authSes := m.authSes
	return func() tea.Msg {
		authSes.Logout(context.Background())
		return loggedOutMsg{}
	}
}

// View renders the active screen, the status bar, and the toast stack.
func (m appModel) View() string {
	var screen string
	switch m.state {
	case stateLogin:
		screen = m.login.View()

	case stateDashboard:
		label := "avocoach"
		if u := m.authSes.User(); u != nil && u.FullName != "" {
			label = u.FullName
		}
		screen = m.botList.View() + "\n" + m.status.View(label, []components.Shortcut{
			{Key: "enter", Desc: "open"},
			{Key: "ctrl+t", Desc: "theme"},
			{Key: "ctrl+l", Desc: "logout"},
			{Key: "ctrl+c", Desc: "quit"},
		})

	case stateChat:
		screen = m.chat.View() + "\n" + m.status.View("avocoach", []components.Shortcut{
			{Key: "tab", Desc: "sidebar"},
			{Key: "ctrl+e", Desc: "edit"},
			{Key: "ctrl+b", Desc: "toggle sidebar"},
			{Key: "esc", Desc: "back"},
		})
	}

	if toasts := m.toasts.Toasts(); len(toasts) > 0 {
		screen += "\n" + components.RenderToastStack(m.theme, toasts, m.width)
	}
	return screen
}
