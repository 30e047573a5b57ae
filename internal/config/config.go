// ABOUTME: Client configuration: server base URL, page and chunk sizes
// ABOUTME: JSON file under XDG config with GAZETTE_* environment overrides

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config stores gazette client configuration. Environment variables
// override the file on every load.
type Config struct {
	// BaseURL is the Gazette server root, e.g. "https://gazette.example.com".
	BaseURL string `json:"base_url,omitempty" env:"GAZETTE_BASE_URL"`

	// PageSize is how many entries a list view shows per page.
	PageSize int `json:"page_size,omitempty" env:"GAZETTE_PAGE_SIZE"`

	// ChunkSize is the batch size used when prefetching full collections.
	ChunkSize int `json:"chunk_size,omitempty" env:"GAZETTE_CHUNK_SIZE"`

	// TokenPath overrides where the session token is persisted.
	TokenPath string `json:"token_path,omitempty" env:"GAZETTE_TOKEN_PATH"`
}

const (
	defaultPageSize  = 10
	defaultChunkSize = 100
)

// GetPageSize returns the configured page size, defaulting to 10.
func (c *Config) GetPageSize() int {
	if c.PageSize <= 0 {
		return defaultPageSize
	}
	return c.PageSize
}

// GetChunkSize returns the configured prefetch chunk size, defaulting
// to 100.
func (c *Config) GetChunkSize() int {
	if c.ChunkSize <= 0 {
		return defaultChunkSize
	}
	return c.ChunkSize
}

// GetTokenPath returns the token file location with ~ expanded, empty
// when the default should be used.
func (c *Config) GetTokenPath() string {
	if c.TokenPath == "" {
		return ""
	}
	return ExpandPath(c.TokenPath)
}

// Validate checks that the config is usable for issuing requests.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("no server configured: set base_url in %s or GAZETTE_BASE_URL", GetConfigPath())
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("base_url must start with http:// or https://, got %q", c.BaseURL)
	}
	return nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "gazette", "config.json")
}

// Load reads config from disk and applies environment overrides. A
// missing file yields defaults, not an error.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom reads config from an explicit path, for tests and --config.
func LoadFrom(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &cfg, nil
}

// Save writes config to disk, creating the directory as needed.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo writes config to an explicit path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
