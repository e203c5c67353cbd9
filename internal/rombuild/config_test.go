package rombuild

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigParsesKeyValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rombuilder.conf")
	content := `
# release settings
SERVER_RELEASE_DIR = /srv/releases
LOG_DIR="/var/log/rombuilder"
FILEHOST_URL='https://files.example.com/upload'
malformed line without equals
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if got := cfg.Values["SERVER_RELEASE_DIR"]; got != "/srv/releases" {
		t.Errorf("SERVER_RELEASE_DIR = %q", got)
	}
	if got := cfg.Values["LOG_DIR"]; got != "/var/log/rombuilder" {
		t.Errorf("quotes not trimmed: %q", got)
	}
	if got := cfg.Values["FILEHOST_URL"]; got != "https://files.example.com/upload" {
		t.Errorf("single quotes not trimmed: %q", got)
	}
}

func TestLoadConfigMissingFileIsEmpty(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "absent.conf"))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if got := cfg.Values["SERVER_RELEASE_DIR"]; got != "" {
		t.Errorf("expected empty config, got SERVER_RELEASE_DIR=%q", got)
	}
}

func TestEnvOverridesWin(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rombuilder.conf")
	os.WriteFile(path, []byte("LOG_DIR=/from/file\n"), 0o644)

	t.Setenv("ROMBUILDER_LOG_DIR", "/from/env")
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if got := cfg.Values["LOG_DIR"]; got != "/from/env" {
		t.Errorf("LOG_DIR = %q, want /from/env", got)
	}
}
