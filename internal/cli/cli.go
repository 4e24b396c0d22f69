// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command handlers for avocoach.
package cli

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/morganforge/avocoach-tui/internal/model"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdBots
	CmdLogin
	CmdLogout
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Bot    string
	Server string
	Quiet  bool
	Plain  bool

	// Command-specific
	Query string

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `avocoach - terminal client for the AVOCoach coaching assistants

Usage:
  avocoach                 Start the interactive TUI
  avocoach ask <question>  Ask a coach one question and print the reply
  avocoach chat            Interactive REPL chat with a coach
  avocoach bots            List the available coaches
  avocoach login           Log in and store the session
  avocoach logout          Log out and clear the stored session
  avocoach version         Print version information
  avocoach help            Show this help

Flags:
  --bot <id>      Coach to talk to (default: personal)
  --server <url>  Backend URL (default from config)
  --plain         Disable markdown rendering
  --quiet         Only print the reply

Environment:
  AVOCOACH_SERVER_URL  Backend URL override
  AVOCOACH_THEME       "dark" or "light"
  AVOCOACH_BOT         Default coach id
`

// Parse parses os.Args into a command and its arguments.
func Parse() (Command, Args) {
	raw := os.Args[1:]
	remaining, args := parseGlobalFlags(raw)

	if len(remaining) == 0 {
		return CmdTUI, args
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	args.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, args

	case "ask":
		args.Query = strings.Join(remaining, " ")
		return CmdAsk, args

	case "chat":
		return CmdChat, args

	case "bots", "coaches":
		return CmdBots, args

	case "login":
		return CmdLogin, args

	case "logout":
		return CmdLogout, args

	case "version", "-v", "--version":
		return CmdVersion, args

	case "help", "-h", "--help":
		return CmdHelp, args
	}

	// Unknown word: treat the whole line as an ask query.
	args.Query = strings.Join(append([]string{cmd}, remaining...), " ")
	return CmdAsk, args
}

// parseGlobalFlags strips global flags from the argument list.
func parseGlobalFlags(raw []string) ([]string, Args) {
	args := Args{Bot: "personal"}
	var remaining []string

	i := 0
	for i < len(raw) {
		arg := raw[i]
		switch {
		case arg == "--bot" && i+1 < len(raw):
			args.Bot = raw[i+1]
			i += 2

		case strings.HasPrefix(arg, "--bot="):
			args.Bot = strings.TrimPrefix(arg, "--bot=")
			i++

		case arg == "--server" && i+1 < len(raw):
			args.Server = raw[i+1]
			i += 2

		case strings.HasPrefix(arg, "--server="):
			args.Server = strings.TrimPrefix(arg, "--server=")
			i++

		case arg == "--quiet" || arg == "-q":
			args.Quiet = true
			i++

		case arg == "--plain":
			args.Plain = true
			i++

		default:
			remaining = append(remaining, arg)
			i++
		}
	}
	return remaining, args
}

// RunBots prints the bot catalogue.
func RunBots(args Args) error {
	for _, b := range model.Bots() {
		if args.Quiet {
			fmt.Println(b.ID)
			continue
		}
		fmt.Printf("%s %-14s %s\n", b.Icon, b.ID, b.Label)
		fmt.Printf("   %s\n", b.Description)
	}
	return nil
}

// RunVersion prints version information.
func RunVersion() error {
	fmt.Printf("avocoach %s (%s, %s, %s/%s)\n",
		Version, GitCommit, BuildDate, runtime.GOOS, runtime.GOARCH)
	return nil
}

// RunHelp prints usage.
func RunHelp() error {
	fmt.Print(usageText)
	return nil
}
