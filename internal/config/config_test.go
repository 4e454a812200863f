package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFile_MissingReturnsDefaults(t *testing.T) {
	t.Setenv(HostEnv, "")
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.API.Host != "http://localhost:3000" {
		t.Errorf("Host = %q, want default", cfg.API.Host)
	}
	if cfg.TUI.RefreshIntervalSec != 30 {
		t.Errorf("RefreshIntervalSec = %d, want 30", cfg.TUI.RefreshIntervalSec)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
}

func TestSaveAndLoadFile(t *testing.T) {
	t.Setenv(HostEnv, "")
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	cfg := DefaultConfig()
	cfg.API.Host = "https://expenses.example.com"
	cfg.General.DefaultCategory = "Food"
	cfg.TUI.AutoRefresh = true
	if err := SaveFile(path, cfg); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("perm = %o, want 600", perm)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got.API.Host != cfg.API.Host || got.General.DefaultCategory != "Food" || !got.TUI.AutoRefresh {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestLoadFile_EnvOverridesHost(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[api]\nhost = \"http://file:1\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(HostEnv, "http://env:2")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.API.Host != "http://env:2" {
		t.Errorf("Host = %q, want env override", cfg.API.Host)
	}
}

func TestLoadFile_BadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[api\nhost="), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile accepted malformed TOML")
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.API.Host = "localhost:3000"
	cfg.General.DefaultCategory = "Rent"
	cfg.TUI.RefreshIntervalSec = 5

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate = nil, want errors")
	}
	for _, want := range []string{"api.host", "default_category", "refresh_interval_sec"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestLogPath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/state")
	cfg := DefaultConfig()
	if got := cfg.LogPath(); got != filepath.Join("/tmp/state", "spendwatch", "spendwatch.log") {
		t.Errorf("LogPath = %q", got)
	}
	cfg.Log.File = "/var/log/sw.log"
	if got := cfg.LogPath(); got != "/var/log/sw.log" {
		t.Errorf("LogPath = %q", got)
	}
}
