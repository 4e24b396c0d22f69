// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual theme for the avocoach TUI.
//
// A Theme bundles every Lip Gloss style the views use, built from one
// of two fixed palettes (dark, light). The palettes are explicit rather
// than terminal-adaptive because the mode is a user choice, toggled at
// runtime and persisted, not something inferred from the terminal
// background.
//
//	theme := styles.NewTheme(styles.ModeDark)
//	theme = theme.Toggle()
package styles
