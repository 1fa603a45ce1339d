// Package config handles persistent client configuration and API base
// resolution for tweetsense.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/subosito/gotenv"
)

// DefaultAPIPort is the port the backend listens on. The hostname part is
// configurable because session cookies are host-scoped: the client must talk
// to the exact hostname the cookie was issued for (localhost and 127.0.0.1
// are NOT interchangeable).
const DefaultAPIPort = 5000

// Config is the persistent application configuration.
type Config struct {
	// APIBase, when set, is used verbatim as the API origin (including the
	// /api prefix). Overrides APIHost entirely.
	APIBase string `json:"api_base,omitempty"`

	// APIHost is combined with DefaultAPIPort when APIBase is empty.
	APIHost string `json:"api_host,omitempty"`

	// UI preferences
	UI UIConfig `json:"ui"`
}

// UIConfig holds UI preferences.
type UIConfig struct {
	ExportDir string `json:"export_dir,omitempty"` // where admin exports are written; default cwd
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{}
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".tweetsense", "config.json")
}

// Load reads config from disk, or returns defaults. Environment variables
// (including any loaded from a local .env file) take precedence over the
// file's values.
func Load() (*Config, error) {
	// Best effort; a missing .env is the normal case.
	_ = gotenv.Load()

	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			cfg = DefaultConfig()
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	cfg.applyEnv()
	return cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := ConfigPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// applyEnv fills in settings from environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("TWEETSENSE_API_BASE"); v != "" {
		c.APIBase = v
	}
	if v := os.Getenv("TWEETSENSE_API_HOST"); v != "" {
		c.APIHost = v
	}
	if v := os.Getenv("TWEETSENSE_EXPORT_DIR"); v != "" {
		c.UI.ExportDir = v
	}
}

// ResolveAPIBase returns the API origin to use, resolved once at startup.
// Precedence: explicit APIBase override > APIHost with the fixed port >
// hardcoded local fallback.
func (c *Config) ResolveAPIBase() string {
	if c.APIBase != "" {
		return c.APIBase
	}
	if c.APIHost != "" {
		return fmt.Sprintf("http://%s:%d/api", c.APIHost, DefaultAPIPort)
	}
	return fmt.Sprintf("http://localhost:%d/api", DefaultAPIPort)
}
