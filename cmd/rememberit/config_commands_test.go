package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rememberit/internal/config"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	ctx := newCommandContext()
	cmd := newRootCommand(ctx)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	ctx.close()
	return out.String(), err
}

func TestConfigInitWritesSample(t *testing.T) {
	t.Setenv(config.EnvConfigDir, t.TempDir())

	target := filepath.Join(t.TempDir(), "config.toml")
	out, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, "Wrote sample configuration") {
		t.Fatalf("unexpected output: %s", out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	// A second init without --overwrite must refuse.
	if _, err := runCommand(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error when config already exists")
	}
}

func TestConfigShow(t *testing.T) {
	t.Setenv(config.EnvConfigDir, t.TempDir())

	out, err := runCommand(t, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "Remote base URL:") {
		t.Fatalf("missing base URL line:\n%s", out)
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	t.Setenv(config.EnvConfigDir, t.TempDir())

	_, err := runCommand(t, "delete", "Spanish")
	if err == nil || !strings.Contains(err.Error(), "--yes") {
		t.Fatalf("expected confirmation error, got %v", err)
	}
}
