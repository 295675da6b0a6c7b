package config

import (
	"os"
	"path/filepath"
	"testing"
)

// --- Resolve tests ---

func TestResolve_HonorsEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)

	p, err := Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if p.Dir != dir {
		t.Errorf("expected dir %s, got %s", dir, p.Dir)
	}
	if p.Data != filepath.Join(dir, "projects.json") {
		t.Errorf("unexpected data path %s", p.Data)
	}
	if p.Config != filepath.Join(dir, "config.yaml") {
		t.Errorf("unexpected config path %s", p.Config)
	}
}

func TestResolve_DefaultsToHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv(HomeEnv, "")
	t.Setenv("HOME", home)

	p, err := Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if p.Dir != filepath.Join(home, ".tasks") {
		t.Errorf("expected ~/.tasks, got %s", p.Dir)
	}
}

// --- Load / Save tests ---

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Version != 1 {
		t.Errorf("expected version 1, got %d", cfg.Version)
	}
	if !cfg.ShouldConfirmDelete() {
		t.Error("expected confirm_delete default true")
	}
	if cfg.DateFormat != DefaultDateFormat {
		t.Errorf("expected default date format, got %q", cfg.DateFormat)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	off := false
	cfg.ConfirmDelete = &off
	cfg.LogLevel = "debug"
	cfg.DataFile = "work.json"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.ShouldConfirmDelete() {
		t.Error("expected confirm_delete false after round trip")
	}
	if got.LogLevel != "debug" {
		t.Errorf("expected debug, got %q", got.LogLevel)
	}
	if got.DataFile != "work.json" {
		t.Errorf("expected work.json, got %q", got.DataFile)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("log_level: warn\n"), 0644)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("expected warn, got %q", cfg.LogLevel)
	}
	if !cfg.ShouldConfirmDelete() || cfg.DateFormat != DefaultDateFormat {
		t.Error("expected unspecified fields to keep defaults")
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("log_level: chatty\n"), 0644)

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown log level")
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("log_level: [unterminated\n"), 0644)

	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

// --- Path expansion tests ---

func TestDataPath(t *testing.T) {
	p := PathsIn("/data/tasks")
	cfg := DefaultConfig()

	if got := cfg.DataPath(p); got != "/data/tasks/projects.json" {
		t.Errorf("expected default data path, got %s", got)
	}
	cfg.DataFile = "work.json"
	if got := cfg.DataPath(p); got != "/data/tasks/work.json" {
		t.Errorf("expected relative path under dir, got %s", got)
	}
	cfg.DataFile = "/elsewhere/p.json"
	if got := cfg.DataPath(p); got != "/elsewhere/p.json" {
		t.Errorf("expected absolute path kept, got %s", got)
	}

	home := t.TempDir()
	t.Setenv("HOME", home)
	cfg.DataFile = "~/p.json"
	if got := cfg.DataPath(p); got != filepath.Join(home, "p.json") {
		t.Errorf("expected ~ expanded, got %s", got)
	}
}

func TestLogPath(t *testing.T) {
	p := PathsIn("/data/tasks")
	cfg := DefaultConfig()
	if got := cfg.LogPath(p); got != "/data/tasks/tasks.log" {
		t.Errorf("expected default log path, got %s", got)
	}
}
