package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != 1 {
		t.Errorf("expected version 1, got %d", cfg.Version)
	}
	if cfg.Database.Path == "" {
		t.Error("expected a default database path")
	}
	if cfg.Storage.MaxAttachmentBytes <= 0 {
		t.Error("expected a default attachment ceiling")
	}
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labrecord.yaml")
	content := `
version: 1
database:
  path: /var/lib/labrecord/records.db
storage:
  max_attachment_bytes: 1048576
seed:
  admin_username: chief
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, usedPath, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if usedPath != path {
		t.Errorf("expected path %s, got %s", path, usedPath)
	}
	if cfg.Database.Path != "/var/lib/labrecord/records.db" {
		t.Errorf("unexpected database path: %s", cfg.Database.Path)
	}
	if cfg.Storage.MaxAttachmentBytes != 1048576 {
		t.Errorf("unexpected attachment ceiling: %d", cfg.Storage.MaxAttachmentBytes)
	}
	if cfg.Seed.AdminUsername != "chief" {
		t.Errorf("unexpected seed username: %s", cfg.Seed.AdminUsername)
	}
}

func TestLoadFromPathAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labrecord.yaml")
	if err := os.WriteFile(path, []byte("storage:\n  max_attachment_bytes: 5\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Version != 1 {
		t.Errorf("expected defaulted version 1, got %d", cfg.Version)
	}
	if cfg.Database.Path == "" {
		t.Error("expected defaulted database path")
	}
	if cfg.Storage.MaxAttachmentBytes != 5 {
		t.Errorf("explicit value overwritten: %d", cfg.Storage.MaxAttachmentBytes)
	}
}

func TestLoadFromPathRejectsBadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labrecord.yaml")
	if err := os.WriteFile(path, []byte("database: [not a mapping"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, _, err := LoadFromPath(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestFindConfigPathEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("version: 1\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(EnvConfigPath, path)
	if got := FindConfigPath(); got != path {
		t.Errorf("expected %s, got %s", path, got)
	}

	// A pointed-to file that does not exist falls through the search order.
	t.Setenv(EnvConfigPath, filepath.Join(dir, "missing.yaml"))
	if got := FindConfigPath(); got == filepath.Join(dir, "missing.yaml") {
		t.Error("nonexistent explicit path must not be returned")
	}
}
