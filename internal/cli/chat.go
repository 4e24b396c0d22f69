// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/morganforge/avocoach-tui/internal/api"
	"github.com/morganforge/avocoach-tui/internal/config"
	"github.com/morganforge/avocoach-tui/internal/model"
)

var (
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#34D399")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FB7185")).Bold(true)
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FBBF24"))
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// replInput provides input history and line editing for the REPL.
type replInput struct {
	line        *liner.State
	historyFile string
}

func newReplInput() *replInput {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	r := &replInput{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	if f, err := os.Open(r.historyFile); err == nil {
		r.line.ReadHistory(f)
		f.Close()
	}
	return r
}

func (r *replInput) read(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

func (r *replInput) close() {
	if err := config.EnsureConfigDir(); err == nil {
		if f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			r.line.WriteHistory(f)
			f.Close()
		}
	}
	r.line.Close()
}

// =============================================================================
// CHAT COMMAND
// =============================================================================

// RunChat is the interactive REPL: one continuing conversation with a
// coach, with readline-style history and slash commands.
func RunChat(args Args) error {
	bot, ok := model.LookupBot(args.Bot)
	if !ok {
		return fmt.Errorf("unknown coach %q (see: avocoach bots)", args.Bot)
	}

	client, err := newClient(args)
	if err != nil {
		return err
	}

	input := newReplInput()
	defer input.close()

	ref := model.NoChat()

	fmt.Printf("%s %s\n", bot.Icon, bot.Label)
	fmt.Println(subtleStyle.Render("Type /new for a fresh conversation, /quit to exit."))

	for {
		line, err := input.read(promptStyle.Render("you> "))
		if err != nil {
			if err == liner.ErrPromptAborted {
				fmt.Println()
				return nil
			}
			// EOF (Ctrl+D) exits gracefully.
			fmt.Println()
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			switch line {
			case "/quit", "/exit", "/q":
				return nil
			case "/new":
				ref = model.NoChat()
				fmt.Println(subtleStyle.Render("Started a new conversation."))
			case "/help":
				fmt.Println(subtleStyle.Render("/new  fresh conversation\n/quit exit"))
			default:
				fmt.Println(warningStyle.Render("Unknown command: " + line))
			}
			continue
		}
		if strings.EqualFold(line, "exit") || strings.EqualFold(line, "quit") {
			return nil
		}

		resp, err := client.SendMessage(context.Background(), bot.ID, line, ref)
		if err != nil {
			if errors.Is(err, api.ErrSessionExpired) {
				fmt.Fprintln(os.Stderr, errorStyle.Render("Session expired. Run: avocoach login"))
				return nil
			}
			fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("[Error]"), err)
			continue
		}
		ref = model.Chat(resp.ChatID)

		if args.Plain {
			fmt.Println(resp.Reply)
		} else {
			fmt.Println(renderMarkdown(resp.Reply))
		}
	}
}
