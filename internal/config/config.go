// Package config provides layered configuration loading.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds the resolved configuration.
type Config struct {
	// API settings
	BaseURL   string `json:"base_url"`
	AccountID string `json:"account_id"`

	// Cache settings
	CacheDir     string `json:"cache_dir"`
	CacheEnabled bool   `json:"cache_enabled"`

	// Output settings
	Format string `json:"format"`

	// List settings
	PerPage int `json:"per_page,omitempty"`

	// Sources tracks where each value came from (for debugging).
	Sources map[string]string `json:"-"`
}

// Source indicates where a config value came from.
type Source string

const (
	SourceDefault Source = "default"
	SourceGlobal  Source = "global"
	SourceLocal   Source = "local"
	SourceEnv     Source = "env"
	SourceFlag    Source = "flag"
)

// FlagOverrides holds command-line flag values.
type FlagOverrides struct {
	Account  string
	BaseURL  string
	CacheDir string
	Format   string
}

// DefaultPerPage is the page size used when none is configured.
const DefaultPerPage = 5

// Default returns the default configuration.
func Default() *Config {
	cacheDir := os.Getenv("XDG_CACHE_HOME")
	if cacheDir == "" {
		home, _ := os.UserHomeDir()
		cacheDir = filepath.Join(home, ".cache")
	}

	return &Config{
		BaseURL:      "https://api.agencydesk.example.com/api/v1",
		CacheDir:     filepath.Join(cacheDir, "agencydesk"),
		CacheEnabled: true,
		Format:       "auto",
		PerPage:      DefaultPerPage,
		Sources:      make(map[string]string),
	}
}

// Load loads configuration from all sources with proper precedence.
// Precedence: flags > env > local > global > defaults
func Load(overrides FlagOverrides) (*Config, error) {
	cfg := Default()

	loadFromFile(cfg, GlobalPath(), SourceGlobal)
	if path := localPath(); path != "" {
		loadFromFile(cfg, path, SourceLocal)
	}

	LoadFromEnv(cfg)
	ApplyOverrides(cfg, overrides)

	return cfg, nil
}

func loadFromFile(cfg *Config, path string, source Source) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: Path is from trusted config locations
	if err != nil {
		return // File doesn't exist, skip
	}

	var fileCfg map[string]any
	if err := json.Unmarshal(data, &fileCfg); err != nil {
		fmt.Fprintf(os.Stderr, "warning: skipping malformed config at %s: %v\n", path, err)
		return
	}

	// base_url controls where the token is sent; local config in a cloned
	// repo must not redirect authenticated traffic.
	if v, ok := fileCfg["base_url"].(string); ok && v != "" {
		if source == SourceLocal {
			fmt.Fprintf(os.Stderr, "warning: ignoring base_url %q from local config at %s\n", v, path)
		} else {
			cfg.BaseURL = v
			cfg.Sources["base_url"] = string(source)
		}
	}
	if v := getStringOrNumber(fileCfg, "account_id"); v != "" {
		cfg.AccountID = v
		cfg.Sources["account_id"] = string(source)
	}
	if v, ok := fileCfg["cache_dir"].(string); ok && v != "" {
		cfg.CacheDir = v
		cfg.Sources["cache_dir"] = string(source)
	}
	if v, ok := fileCfg["cache_enabled"].(bool); ok {
		cfg.CacheEnabled = v
		cfg.Sources["cache_enabled"] = string(source)
	}
	if v, ok := fileCfg["format"].(string); ok && v != "" {
		cfg.Format = v
		cfg.Sources["format"] = string(source)
	}
	if v, ok := fileCfg["per_page"].(float64); ok && v >= 1 {
		cfg.PerPage = int(v)
		cfg.Sources["per_page"] = string(source)
	}
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("AGENCYDESK_BASE_URL"); v != "" {
		cfg.BaseURL = v
		cfg.Sources["base_url"] = string(SourceEnv)
	}
	if v := os.Getenv("AGENCYDESK_ACCOUNT_ID"); v != "" {
		cfg.AccountID = v
		cfg.Sources["account_id"] = string(SourceEnv)
	}
	if v := os.Getenv("AGENCYDESK_CACHE_DIR"); v != "" {
		cfg.CacheDir = v
		cfg.Sources["cache_dir"] = string(SourceEnv)
	}
	if v := os.Getenv("AGENCYDESK_CACHE_ENABLED"); v != "" {
		cfg.CacheEnabled = strings.ToLower(v) == "true" || v == "1"
		cfg.Sources["cache_enabled"] = string(SourceEnv)
	}
}

// ApplyOverrides applies non-empty flag overrides to cfg.
func ApplyOverrides(cfg *Config, o FlagOverrides) {
	if o.Account != "" {
		cfg.AccountID = o.Account
		cfg.Sources["account_id"] = string(SourceFlag)
	}
	if o.BaseURL != "" {
		cfg.BaseURL = o.BaseURL
		cfg.Sources["base_url"] = string(SourceFlag)
	}
	if o.CacheDir != "" {
		cfg.CacheDir = o.CacheDir
		cfg.Sources["cache_dir"] = string(SourceFlag)
	}
	if o.Format != "" {
		cfg.Format = o.Format
		cfg.Sources["format"] = string(SourceFlag)
	}
}

// Set writes a single key into the global config file.
func Set(key, value string) error {
	path := GlobalPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	fileCfg := make(map[string]any)
	if data, err := os.ReadFile(path); err == nil { //nolint:gosec // G304: trusted path
		_ = json.Unmarshal(data, &fileCfg)
	}

	switch key {
	case "base_url", "account_id", "cache_dir", "format":
		fileCfg[key] = value
	case "cache_enabled":
		fileCfg[key] = strings.ToLower(value) == "true" || value == "1"
	case "per_page":
		var n int
		if _, err := fmt.Sscanf(value, "%d", &n); err != nil || n < 1 {
			return fmt.Errorf("per_page must be a positive integer, got %q", value)
		}
		fileCfg[key] = n
	default:
		return fmt.Errorf("unknown config key %q", key)
	}

	data, err := json.MarshalIndent(fileCfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o600)
}

// getStringOrNumber extracts a value that may be either a string or number in JSON.
func getStringOrNumber(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return fmt.Sprintf("%.0f", val)
	default:
		return ""
	}
}

// GlobalPath returns the path of the user-level config file.
func GlobalPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, _ := os.UserHomeDir()
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "agencydesk", "config.json")
}

// localPath returns the path of a project-local config file, or "" if none
// exists in the current directory.
func localPath() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	path := filepath.Join(dir, ".agencydesk", "config.json")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
