// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/morganforge/avocoach-tui/internal/api"
	"github.com/morganforge/avocoach-tui/internal/auth"
	"github.com/morganforge/avocoach-tui/internal/config"
)

// newClient builds an API client from config plus CLI overrides.
func newClient(args Args) (*api.Client, error) {
	cfg := config.Global()

	serverURL := cfg.Server.URL
	if args.Server != "" {
		serverURL = args.Server
	}

	cookiePath, err := cfg.CookiePath()
	if err != nil {
		return nil, err
	}

	return api.NewClient(api.ClientConfig{
		BaseURL:    serverURL,
		Timeout:    time.Duration(cfg.Server.TimeoutSecs) * time.Second,
		CookiePath: cookiePath,
	})
}

// RunLogin prompts for credentials and stores the session cookie.
func RunLogin(args Args) error {
	client, err := newClient(args)
	if err != nil {
		return err
	}
	session := auth.NewSession(client)

	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Email: ")
	email, err := reader.ReadString('\n')
	if err != nil {
		return err
	}

	// No-echo password input when stdin is a terminal.
	var password string
	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Print("Password: ")
		passBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return err
		}
		password = string(passBytes)
	} else {
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		password = strings.TrimRight(line, "\r\n")
	}

	if err := session.Login(context.Background(), email, password); err != nil {
		return err
	}

	user := session.User()
	name := user.FullName
	if name == "" {
		name = user.Email
	}
	fmt.Printf("Logged in as %s\n", name)
	return nil
}

// RunLogout ends the session and clears the stored cookie.
func RunLogout(args Args) error {
	client, err := newClient(args)
	if err != nil {
		return err
	}
	session := auth.NewSession(client)

	if err := session.Logout(context.Background()); err != nil {
		// The local session is gone regardless; report but succeed.
		fmt.Fprintf(os.Stderr, "Warning: backend logout failed: %v\n", err)
	}
	fmt.Println("Logged out")
	return nil
}
