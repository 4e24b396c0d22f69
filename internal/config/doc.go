// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for avocoach.
//
// Configuration lives in ~/.avocoach/config.toml with sensible defaults,
// environment variable overrides, and validation.
//
// # Configuration Precedence
//
// Settings are resolved from (in order of precedence):
//   - Environment variables (AVOCOACH_*)
//   - ~/.avocoach/config.toml
//   - Built-in defaults
//
// # Usage
//
// Load the shared configuration:
//
//	cfg := config.Global()
//	url := cfg.Server.URL
//
// Watch for edits on disk:
//
//	w, err := config.Watch(func(cfg *config.Config) {
//	    // re-read settings
//	})
//	defer w.Close()
package config
