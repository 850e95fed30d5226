package internal

import (
	"os"
	"path/filepath"
	"testing"

	"pdfchat/testutil"
)

func TestLoadConfig_MissingFile(t *testing.T) {
	dir := testutil.CreateTempDir(t)

	cfg, err := LoadConfig(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.ServerURL != DefaultServerURL {
		t.Errorf("ServerURL = %q, want %q", cfg.ServerURL, DefaultServerURL)
	}
	if cfg.QuotaBytes != DefaultQuotaBytes {
		t.Errorf("QuotaBytes = %d, want %d", cfg.QuotaBytes, DefaultQuotaBytes)
	}
}

func TestLoadConfig_Valid(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	path := filepath.Join(dir, "config.yaml")
	content := "server_url: http://backend:8080\nstorage_path: /tmp/chat.db\nquota_bytes: 1048576\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.ServerURL != "http://backend:8080" {
		t.Errorf("ServerURL = %q", cfg.ServerURL)
	}
	if cfg.StoragePath != "/tmp/chat.db" {
		t.Errorf("StoragePath = %q", cfg.StoragePath)
	}
	if cfg.QuotaBytes != 1048576 {
		t.Errorf("QuotaBytes = %d", cfg.QuotaBytes)
	}
}

func TestLoadConfig_PartialFillsDefaults(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("storage_path: /tmp/chat.db\n"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.ServerURL != DefaultServerURL {
		t.Errorf("ServerURL = %q, want default", cfg.ServerURL)
	}
	if cfg.QuotaBytes != DefaultQuotaBytes {
		t.Errorf("QuotaBytes = %d, want default", cfg.QuotaBytes)
	}
}

func TestLoadConfig_Malformed(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(":\n\t- not yaml"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() expected error for malformed YAML")
	}
}
