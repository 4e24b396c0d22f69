// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"os"
	"testing"
)

func parseWith(t *testing.T, argv ...string) (Command, Args) {
	t.Helper()
	old := os.Args
	os.Args = append([]string{"avocoach"}, argv...)
	t.Cleanup(func() { os.Args = old })
	return Parse()
}

func TestParseDefaultsToTUI(t *testing.T) {
	cmd, args := parseWith(t)
	if cmd != CmdTUI {
		t.Errorf("cmd = %v, want TUI", cmd)
	}
	if args.Bot != "personal" {
		t.Errorf("bot = %q, want personal default", args.Bot)
	}
}

func TestParseAsk(t *testing.T) {
	cmd, args := parseWith(t, "ask", "how", "do", "I", "delegate?")
	if cmd != CmdAsk {
		t.Fatalf("cmd = %v", cmd)
	}
	if args.Query != "how do I delegate?" {
		t.Errorf("query = %q", args.Query)
	}
}

func TestParseBotFlag(t *testing.T) {
	cmd, args := parseWith(t, "--bot", "email", "ask", "draft an intro")
	if cmd != CmdAsk {
		t.Fatalf("cmd = %v", cmd)
	}
	if args.Bot != "email" {
		t.Errorf("bot = %q", args.Bot)
	}

	_, args = parseWith(t, "--bot=training", "chat")
	if args.Bot != "training" {
		t.Errorf("bot = %q", args.Bot)
	}
}

func TestParseServerFlag(t *testing.T) {
	_, args := parseWith(t, "--server", "http://box:9000", "bots")
	if args.Server != "http://box:9000" {
		t.Errorf("server = %q", args.Server)
	}
}

func TestParseCommands(t *testing.T) {
	cases := []struct {
		argv []string
		want Command
	}{
		{[]string{"tui"}, CmdTUI},
		{[]string{"chat"}, CmdChat},
		{[]string{"bots"}, CmdBots},
		{[]string{"coaches"}, CmdBots},
		{[]string{"login"}, CmdLogin},
		{[]string{"logout"}, CmdLogout},
		{[]string{"version"}, CmdVersion},
		{[]string{"--version"}, CmdVersion},
		{[]string{"help"}, CmdHelp},
	}
	for _, tc := range cases {
		cmd, _ := parseWith(t, tc.argv...)
		if cmd != tc.want {
			t.Errorf("Parse(%v) = %v, want %v", tc.argv, cmd, tc.want)
		}
	}
}

func TestParseBareQuestionBecomesAsk(t *testing.T) {
	cmd, args := parseWith(t, "why", "is", "my", "team", "stuck?")
	if cmd != CmdAsk {
		t.Fatalf("cmd = %v", cmd)
	}
	if args.Query != "why is my team stuck?" {
		t.Errorf("query = %q", args.Query)
	}
}

func TestParseQuietAndPlain(t *testing.T) {
	_, args := parseWith(t, "-q", "--plain", "ask", "hi")
	if !args.Quiet || !args.Plain {
		t.Errorf("args = %+v", args)
	}
}
