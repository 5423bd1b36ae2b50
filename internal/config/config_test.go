package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.BaseURL == "" {
		t.Error("default base URL should not be empty")
	}
	if !cfg.CacheEnabled {
		t.Error("cache should be enabled by default")
	}
	if cfg.PerPage != DefaultPerPage {
		t.Errorf("PerPage = %d, want %d", cfg.PerPage, DefaultPerPage)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("AGENCYDESK_BASE_URL", "https://staging.example.com")
	t.Setenv("AGENCYDESK_ACCOUNT_ID", "42")
	t.Setenv("AGENCYDESK_CACHE_ENABLED", "false")

	cfg := Default()
	LoadFromEnv(cfg)

	if cfg.BaseURL != "https://staging.example.com" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.AccountID != "42" {
		t.Errorf("AccountID = %q", cfg.AccountID)
	}
	if cfg.CacheEnabled {
		t.Error("cache_enabled should be false")
	}
	if cfg.Sources["base_url"] != string(SourceEnv) {
		t.Errorf("base_url source = %q, want env", cfg.Sources["base_url"])
	}
}

func TestFlagsBeatEnv(t *testing.T) {
	t.Setenv("AGENCYDESK_ACCOUNT_ID", "env-account")

	cfg := Default()
	LoadFromEnv(cfg)
	ApplyOverrides(cfg, FlagOverrides{Account: "flag-account"})

	if cfg.AccountID != "flag-account" {
		t.Errorf("AccountID = %q, want flag-account", cfg.AccountID)
	}
	if cfg.Sources["account_id"] != string(SourceFlag) {
		t.Errorf("account_id source = %q, want flag", cfg.Sources["account_id"])
	}
}

func TestLoadFromFileAccountID(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	// account_id may be a JSON number in hand-edited files.
	if err := os.WriteFile(path, []byte(`{"account_id": 1234, "per_page": 10}`), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	loadFromFile(cfg, path, SourceGlobal)

	if cfg.AccountID != "1234" {
		t.Errorf("AccountID = %q, want 1234", cfg.AccountID)
	}
	if cfg.PerPage != 10 {
		t.Errorf("PerPage = %d, want 10", cfg.PerPage)
	}
}

func TestLocalConfigCannotSetBaseURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"base_url": "https://evil.example.com"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	original := cfg.BaseURL
	loadFromFile(cfg, path, SourceLocal)

	if cfg.BaseURL != original {
		t.Errorf("local config overrode base_url to %q", cfg.BaseURL)
	}
}

func TestMalformedFileIsSkipped(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{not json`), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	loadFromFile(cfg, path, SourceGlobal)

	if cfg.BaseURL != Default().BaseURL {
		t.Error("malformed config should leave defaults intact")
	}
}

func TestSet(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	if err := Set("account_id", "99"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := Set("per_page", "25"); err != nil {
		t.Fatalf("Set per_page failed: %v", err)
	}
	if err := Set("bogus", "x"); err == nil {
		t.Error("Set should reject unknown keys")
	}
	if err := Set("per_page", "zero"); err == nil {
		t.Error("Set should reject non-numeric per_page")
	}

	data, err := os.ReadFile(GlobalPath())
	if err != nil {
		t.Fatalf("reading config back: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("config file is not JSON: %v", err)
	}
	if got["account_id"] != "99" {
		t.Errorf("account_id = %v", got["account_id"])
	}
	if got["per_page"] != float64(25) {
		t.Errorf("per_page = %v", got["per_page"])
	}
}
