// Package completion provides tab completion support for the agencydesk
// CLI. It keeps a file-based cache of the employee directory and the
// client roster so shell completions stay fast and work offline.
package completion

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// CachedEmployee holds employee data for tab completion.
type CachedEmployee struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Department string `json:"department,omitempty"`
	Status     string `json:"status,omitempty"`
}

// CachedClient holds client data for tab completion.
type CachedClient struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Company string `json:"company,omitempty"`
}

// Cache stores completion data with per-section timestamps for
// staleness detection.
type Cache struct {
	Employees          []CachedEmployee `json:"employees,omitempty"`
	Clients            []CachedClient   `json:"clients,omitempty"`
	EmployeesUpdatedAt time.Time        `json:"employees_updated_at,omitempty"`
	ClientsUpdatedAt   time.Time        `json:"clients_updated_at,omitempty"`
	Version            int              `json:"version"`
}

const (
	// CacheVersion is the current cache schema version.
	CacheVersion = 1

	// DefaultMaxAge is the default cache staleness threshold.
	DefaultMaxAge = time.Hour

	// CacheFileName is the default cache file name.
	CacheFileName = "completion.json"
)

// Store handles reading and writing the completion cache.
type Store struct {
	dir string
	mu  sync.RWMutex
}

// NewStore creates a new cache store. If dir is empty, it uses the
// default location (~/.cache/agencydesk/).
func NewStore(dir string) *Store {
	if dir == "" {
		dir = defaultCacheDir()
	}
	return &Store{dir: dir}
}

// defaultCacheDir matches the default from internal/config.
func defaultCacheDir() string {
	cacheDir := os.Getenv("XDG_CACHE_HOME")
	if cacheDir == "" {
		home, _ := os.UserHomeDir()
		cacheDir = filepath.Join(home, ".cache")
	}
	return filepath.Join(cacheDir, "agencydesk")
}

// Dir returns the cache directory path.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the full path to the cache file.
func (s *Store) Path() string {
	return filepath.Join(s.dir, CacheFileName)
}

// Load reads the cache from disk. Returns an empty cache if the file
// doesn't exist or is invalid.
func (s *Store) Load() (*Cache, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loadUnsafe()
}

// loadUnsafe reads the cache without locking (caller must hold lock).
func (s *Store) loadUnsafe() (*Cache, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return &Cache{Version: CacheVersion}, nil
		}
		return nil, err
	}

	var cache Cache
	if err := json.Unmarshal(data, &cache); err != nil {
		// Corrupted file: start over rather than error
		return &Cache{Version: CacheVersion}, nil //nolint:nilerr
	}

	return &cache, nil
}

// saveUnsafe writes the cache without locking (caller must hold lock).
// Does not modify timestamps.
func (s *Store) saveUnsafe(cache *Cache) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return err
	}

	cache.Version = CacheVersion

	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := s.Path() + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return err
	}

	return os.Rename(tmpPath, s.Path())
}

// UpdateEmployees replaces the cached employee directory, preserving
// the cached clients and their timestamp.
func (s *Store) UpdateEmployees(employees []CachedEmployee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cache, err := s.loadUnsafe()
	if err != nil {
		cache = &Cache{Version: CacheVersion}
	}

	cache.Employees = employees
	cache.EmployeesUpdatedAt = time.Now()
	return s.saveUnsafe(cache)
}

// UpdateClients replaces the cached client roster, preserving the
// cached employees and their timestamp.
func (s *Store) UpdateClients(clients []CachedClient) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cache, err := s.loadUnsafe()
	if err != nil {
		cache = &Cache{Version: CacheVersion}
	}

	cache.Clients = clients
	cache.ClientsUpdatedAt = time.Now()
	return s.saveUnsafe(cache)
}

// oldestTime returns the oldest time, treating zero as infinitely old.
// A section that was never populated makes the whole cache stale.
func oldestTime(a, b time.Time) time.Time {
	if a.IsZero() || b.IsZero() {
		return time.Time{}
	}
	if a.Before(b) {
		return a
	}
	return b
}

// IsStale returns true if the cache is older than maxAge or incomplete.
func (s *Store) IsStale(maxAge time.Duration) bool {
	cache, err := s.Load()
	if err != nil {
		return true
	}
	if cache.EmployeesUpdatedAt.IsZero() || cache.ClientsUpdatedAt.IsZero() {
		return true
	}
	oldest := oldestTime(cache.EmployeesUpdatedAt, cache.ClientsUpdatedAt)
	return time.Since(oldest) > maxAge
}

// Clear removes the cache file.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.Path())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Employees returns cached employees, or nil if the cache is empty or
// missing.
func (s *Store) Employees() []CachedEmployee {
	cache, err := s.Load()
	if err != nil {
		return nil
	}
	return cache.Employees
}

// Clients returns cached clients, or nil if the cache is empty or
// missing.
func (s *Store) Clients() []CachedClient {
	cache, err := s.Load()
	if err != nil {
		return nil
	}
	return cache.Clients
}
