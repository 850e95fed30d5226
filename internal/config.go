package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultServerURL points at a locally running backend.
const DefaultServerURL = "http://localhost:5000"

// Config holds client settings, loadable from an optional YAML file.
type Config struct {
	ServerURL   string `yaml:"server_url"`
	StoragePath string `yaml:"storage_path"`
	QuotaBytes  int64  `yaml:"quota_bytes"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		ServerURL:  DefaultServerURL,
		QuotaBytes: DefaultQuotaBytes,
	}
}

// DefaultConfigPath returns the standard config file location.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".pdfchat", "config.yaml"), nil
}

// DefaultStoragePath returns the standard chat database location.
func DefaultStoragePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".pdfchat", "chat.db"), nil
}

// LoadConfig reads the YAML config at path. A missing file yields the
// defaults; a malformed one is an error so a typo never silently points
// the client at the wrong backend.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultServerURL
	}
	if cfg.QuotaBytes <= 0 {
		cfg.QuotaBytes = DefaultQuotaBytes
	}
	return cfg, nil
}
