// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the command-line surface of avocoach.
//
// With no arguments the binary launches the TUI; everything else is a
// subcommand:
//
//	avocoach                      launch the TUI
//	avocoach ask <question>       one-shot question, fresh conversation
//	avocoach chat                 interactive REPL with history
//	avocoach bots                 list the available coaches
//	avocoach login / logout       manage the session
//	avocoach version              build information
//
// Bare words that are not a known command are treated as an ask query,
// so "avocoach how do I delegate?" just works.
//
// Global flags: --bot, --server, --quiet/-q, --plain.
package cli
