package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	t.Setenv(EnvConfigDir, t.TempDir())

	cfg, _, exists, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("expected no config file to exist")
	}
	if cfg.Remote.BaseURL != "https://ankiweb.net" {
		t.Fatalf("unexpected base url: %q", cfg.Remote.BaseURL)
	}
	if !cfg.Cache.Enabled {
		t.Fatal("cache should default to enabled")
	}
	if cfg.Format.ImageMaxBytes != defaultImageMaxBytes {
		t.Fatalf("unexpected image limit: %d", cfg.Format.ImageMaxBytes)
	}
}

func TestLoadParsesFileAndExpandsPaths(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)

	content := strings.Join([]string{
		`[remote]`,
		`base_url = "https://remote.example/"`,
		`timeout_seconds = 3`,
		``,
		`[cache]`,
		`enabled = true`,
		`path = "~/cachedir/decks.db"`,
	}, "\n")
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected to load %s, got %s exists=%v", path, resolved, exists)
	}
	if cfg.Remote.BaseURL != "https://remote.example" {
		t.Fatalf("base url not trimmed: %q", cfg.Remote.BaseURL)
	}
	if cfg.Remote.TimeoutSeconds != 3 {
		t.Fatalf("timeout not parsed: %d", cfg.Remote.TimeoutSeconds)
	}
	if strings.HasPrefix(cfg.Cache.Path, "~") {
		t.Fatalf("cache path not expanded: %q", cfg.Cache.Path)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty base url", func(c *Config) { c.Remote.BaseURL = "" }},
		{"bad url", func(c *Config) { c.Remote.BaseURL = "not a url" }},
		{"zero timeout", func(c *Config) { c.Remote.TimeoutSeconds = 0 }},
		{"zero image limit", func(c *Config) { c.Format.ImageMaxBytes = 0 }},
		{"cache without path", func(c *Config) { c.Cache.Path = "" }},
		{"bad log format", func(c *Config) { c.Logging.Format = "yaml" }},
		{"unknown theme", func(c *Config) { c.Format.DefaultTheme = "mauve" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error for %s", tc.name)
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)

	path := filepath.Join(dir, "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	cfg, _, exists, err := Load("")
	if err != nil {
		t.Fatalf("Load after CreateSample: %v", err)
	}
	if !exists {
		t.Fatal("sample config not detected")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sample config should validate: %v", err)
	}
}

func TestDirHonorsEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)

	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir: %v", err)
	}
	if got != dir {
		t.Fatalf("Dir = %q, want %q", got, dir)
	}

	settings, err := SettingsPath()
	if err != nil {
		t.Fatalf("SettingsPath: %v", err)
	}
	if settings != filepath.Join(dir, "settings.json") {
		t.Fatalf("unexpected settings path: %q", settings)
	}
}
