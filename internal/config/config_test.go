// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Server.URL != "http://localhost:8000" {
		t.Errorf("URL = %q", cfg.Server.URL)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("Theme = %q", cfg.UI.Theme)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"https", func(c *Config) { c.Server.URL = "https://coach.example.com" }, false},
		{"bad scheme", func(c *Config) { c.Server.URL = "ftp://x" }, true},
		{"no host", func(c *Config) { c.Server.URL = "http://" }, true},
		{"bad theme", func(c *Config) { c.UI.Theme = "sepia" }, true},
		{"zero timeout", func(c *Config) { c.Server.TimeoutSecs = 0 }, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.Server.URL = "https://coach.example.com"
	cfg.UI.Theme = "light"
	cfg.UI.SidebarCollapsed = true

	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML: %v", err)
	}

	loaded := Default()
	if err := LoadTOML(loaded, path); err != nil {
		t.Fatalf("LoadTOML: %v", err)
	}
	if loaded.Server.URL != "https://coach.example.com" {
		t.Errorf("URL = %q", loaded.Server.URL)
	}
	if loaded.UI.Theme != "light" {
		t.Errorf("Theme = %q", loaded.UI.Theme)
	}
	if !loaded.UI.SidebarCollapsed {
		t.Error("SidebarCollapsed not persisted")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("permissions = %o, want 0600", perm)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("AVOCOACH_SERVER_URL", "http://10.0.0.5:9000")
	t.Setenv("AVOCOACH_THEME", "Light")
	t.Setenv("AVOCOACH_TIMEOUT_SECS", "30")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Server.URL != "http://10.0.0.5:9000" {
		t.Errorf("URL = %q", cfg.Server.URL)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("Theme = %q, env value should be lowercased", cfg.UI.Theme)
	}
	if cfg.Server.TimeoutSecs != 30 {
		t.Errorf("TimeoutSecs = %d", cfg.Server.TimeoutSecs)
	}
}

func TestApplyEnvOverridesIgnoresBadTimeout(t *testing.T) {
	t.Setenv("AVOCOACH_TIMEOUT_SECS", "not-a-number")

	cfg := Default()
	cfg.ApplyEnvOverrides()
	if cfg.Server.TimeoutSecs != 120 {
		t.Errorf("TimeoutSecs = %d, want default", cfg.Server.TimeoutSecs)
	}
}

func TestSetDefaultsFillsZeroValues(t *testing.T) {
	cfg := &Config{}
	cfg.SetDefaults()
	if cfg.Server.URL == "" || cfg.UI.Theme == "" || cfg.Server.TimeoutSecs == 0 {
		t.Errorf("defaults not filled: %+v", cfg)
	}
}

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := []byte("version = \"1\"\n\n[server]\nurl = \"http://box:8000\"\n")
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.Server.URL != "http://box:8000" {
		t.Errorf("URL = %q", cfg.Server.URL)
	}
	// Unspecified fields come from defaults.
	if cfg.UI.Theme != "dark" {
		t.Errorf("Theme = %q", cfg.UI.Theme)
	}
}
