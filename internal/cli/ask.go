// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/morganforge/avocoach-tui/internal/api"
	"github.com/morganforge/avocoach-tui/internal/model"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer is the glamour renderer for one-shot output.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fallback to plain text if renderer initialization fails
		markdownRenderer = nil
	}
}

// renderMarkdown renders markdown content for terminal display. Returns the
// original content if rendering fails or the renderer is unavailable.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}
	out, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimSpace(out)
}

// =============================================================================
// ASK COMMAND
// =============================================================================

// RunAsk sends one question to a coach and prints the reply. Each ask is a
// fresh conversation; the REPL keeps context, one-shots do not.
func RunAsk(args Args) error {
	query := strings.TrimSpace(args.Query)
	if query == "" {
		return errors.New("usage: avocoach ask <question>")
	}
	if _, ok := model.LookupBot(args.Bot); !ok {
		return fmt.Errorf("unknown coach %q (see: avocoach bots)", args.Bot)
	}

	client, err := newClient(args)
	if err != nil {
		return err
	}

	resp, err := client.SendMessage(context.Background(), args.Bot, query, model.NoChat())
	if err != nil {
		if errors.Is(err, api.ErrSessionExpired) {
			return errors.New("not logged in (run: avocoach login)")
		}
		return err
	}

	if args.Plain || args.Quiet {
		fmt.Println(resp.Reply)
		return nil
	}
	fmt.Fprintln(os.Stdout, renderMarkdown(resp.Reply))
	return nil
}
