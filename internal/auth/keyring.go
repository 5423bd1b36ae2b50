// Package auth handles API token storage and lookup.
package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/zalando/go-keyring"
)

const serviceName = "agencydesk"

// Credentials holds the API token for one backend origin.
type Credentials struct {
	Token     string `json:"token"`
	AccountID string `json:"account_id,omitempty"`
}

// Store handles credential storage, preferring the system keychain.
type Store struct {
	useKeyring  bool
	fallbackDir string
}

// NewStore creates a credential store. fallbackDir receives a plaintext
// credentials file when the system keyring is unavailable.
func NewStore(fallbackDir string) *Store {
	if os.Getenv("AGENCYDESK_NO_KEYRING") != "" {
		return &Store{useKeyring: false, fallbackDir: fallbackDir}
	}

	testKey := "agencydesk::test"
	if err := keyring.Set(serviceName, testKey, "test"); err == nil {
		_ = keyring.Delete(serviceName, testKey) // Best-effort cleanup
		return &Store{useKeyring: true, fallbackDir: fallbackDir}
	}
	fmt.Fprintf(os.Stderr, "warning: system keyring unavailable, token stored in plaintext at %s\n",
		filepath.Join(fallbackDir, "credentials.json"))
	return &Store{useKeyring: false, fallbackDir: fallbackDir}
}

func key(origin string) string {
	return fmt.Sprintf("agencydesk::%s", origin)
}

// Load retrieves credentials for the given origin.
func (s *Store) Load(origin string) (*Credentials, error) {
	if s.useKeyring {
		data, err := keyring.Get(serviceName, key(origin))
		if err != nil {
			return nil, fmt.Errorf("credentials not found: %w", err)
		}
		var creds Credentials
		if err := json.Unmarshal([]byte(data), &creds); err != nil {
			return nil, fmt.Errorf("invalid credentials: %w", err)
		}
		return &creds, nil
	}
	return s.loadFromFile(origin)
}

// Save stores credentials for the given origin.
func (s *Store) Save(origin string, creds *Credentials) error {
	if s.useKeyring {
		data, err := json.Marshal(creds)
		if err != nil {
			return err
		}
		return keyring.Set(serviceName, key(origin), string(data))
	}
	return s.saveToFile(origin, creds)
}

// Delete removes credentials for the given origin.
func (s *Store) Delete(origin string) error {
	if s.useKeyring {
		return keyring.Delete(serviceName, key(origin))
	}
	all, err := s.loadAllFromFile()
	if err != nil {
		return err
	}
	delete(all, origin)
	return s.saveAllToFile(all)
}

// File fallback methods

func (s *Store) credentialsPath() string {
	return filepath.Join(s.fallbackDir, "credentials.json")
}

func (s *Store) loadAllFromFile() (map[string]*Credentials, error) {
	data, err := os.ReadFile(s.credentialsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]*Credentials), nil
		}
		return nil, err
	}

	var all map[string]*Credentials
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	return all, nil
}

func (s *Store) loadFromFile(origin string) (*Credentials, error) {
	all, err := s.loadAllFromFile()
	if err != nil {
		return nil, err
	}
	creds, ok := all[origin]
	if !ok {
		return nil, fmt.Errorf("credentials not found for %s", origin)
	}
	return creds, nil
}

func (s *Store) saveToFile(origin string, creds *Credentials) error {
	all, err := s.loadAllFromFile()
	if err != nil {
		return err
	}
	all[origin] = creds
	return s.saveAllToFile(all)
}

func (s *Store) saveAllToFile(all map[string]*Credentials) error {
	if err := os.MkdirAll(s.fallbackDir, 0o700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return err
	}

	// Atomic write with randomized temp file name
	tmpFile, err := os.CreateTemp(s.fallbackDir, "credentials-*.json.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmpFile.Chmod(0o600); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	// Unix: rename atomically replaces the destination.
	// Windows: rename fails when destination exists.
	destPath := s.credentialsPath()
	if err := os.Rename(tmpPath, destPath); err != nil {
		if runtime.GOOS == "windows" {
			_ = os.Remove(destPath)
			return os.Rename(tmpPath, destPath)
		}
		os.Remove(tmpPath)
		return err
	}
	return nil
}
