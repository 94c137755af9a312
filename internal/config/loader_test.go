package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadWritesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, resolved, err := Load(nil, path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if resolved != path {
		t.Fatalf("expected path %s, got %s", path, resolved)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config not written: %v", err)
	}

	def := Default()
	if cfg.Addr != def.Addr || cfg.ShutdownTimeout != def.ShutdownTimeout || cfg.MaxIDAttempts != def.MaxIDAttempts {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadFileAndEnvPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("addr: \":9000\"\nlog_level: debug\nenforce_capacity: true\nsession_ttl: 1h\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("PRESENCE_LOG_LEVEL", "warn")
	t.Setenv("PRESENCE_JOURNAL_PATH", "/tmp/journal.db")

	cfg, _, err := Load(nil, path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Addr != ":9000" {
		t.Errorf("expected addr from file, got %q", cfg.Addr)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("expected env to override file, got %q", cfg.LogLevel)
	}
	if !cfg.EnforceCapacity {
		t.Errorf("expected enforce_capacity from file")
	}
	if cfg.SessionTTL != time.Hour {
		t.Errorf("expected session_ttl 1h, got %v", cfg.SessionTTL)
	}
	if cfg.JournalPath != "/tmp/journal.db" {
		t.Errorf("expected journal path from env, got %q", cfg.JournalPath)
	}
	if cfg.SessionCookie != Default().SessionCookie {
		t.Errorf("expected default cookie name, got %q", cfg.SessionCookie)
	}
}

func TestUpdateFromKeepsZeroValues(t *testing.T) {
	cfg := Default()
	cfg.UpdateFrom(Config{Addr: ":1234", EnforceCapacity: true})

	if cfg.Addr != ":1234" || !cfg.EnforceCapacity {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.LogLevel != Default().LogLevel {
		t.Fatalf("zero value overwrote log level: %q", cfg.LogLevel)
	}
}
