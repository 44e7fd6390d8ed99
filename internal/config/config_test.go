package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestConfigDirEnv(t *testing.T) {
	t.Setenv("ROVI_CONFIG_HOME", "/tmp/rovi-config")
	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir error: %v", err)
	}
	if dir != "/tmp/rovi-config" {
		t.Fatalf("ConfigDir = %q, want %q", dir, "/tmp/rovi-config")
	}

	t.Setenv("ROVI_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err = ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir error: %v", err)
	}
	if dir != "/tmp/xdg/rovi" {
		t.Fatalf("ConfigDir = %q, want %q", dir, "/tmp/xdg/rovi")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("ROVI_CONFIG_HOME", t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Editor.TabWidth != 4 {
		t.Fatalf("TabWidth = %d, want 4", cfg.Editor.TabWidth)
	}
	if cfg.Theme.Foreground == "" {
		t.Fatalf("default foreground empty")
	}
}

func TestLoadWithOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ROVI_CONFIG_HOME", dir)

	writeFile(t, filepath.Join(dir, "config.toml"), `
[editor]
tab-width = 8
debug = true

[theme]
foreground = "#111111"
error-foreground = "#ff0000"
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Editor.TabWidth != 8 {
		t.Fatalf("TabWidth = %d, want 8", cfg.Editor.TabWidth)
	}
	if !cfg.Editor.Debug {
		t.Fatalf("Debug = false, want true")
	}
	if cfg.Theme.Foreground != "#111111" {
		t.Fatalf("Foreground = %q, want %q", cfg.Theme.Foreground, "#111111")
	}
	if cfg.Theme.ErrorForeground != "#ff0000" {
		t.Fatalf("ErrorForeground = %q, want %q", cfg.Theme.ErrorForeground, "#ff0000")
	}
	// Untouched fields keep their defaults.
	if cfg.Theme.Background != Default().Theme.Background {
		t.Fatalf("Background = %q, want default", cfg.Theme.Background)
	}
}

func TestLoadMalformedConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ROVI_CONFIG_HOME", dir)

	writeFile(t, filepath.Join(dir, "config.toml"), `[editor`)

	if _, err := Load(); err == nil {
		t.Fatalf("Load: expected error for malformed config")
	}
}
