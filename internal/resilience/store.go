// Package resilience guards the HQ API against misbehaving clients. It
// persists circuit breaker and rate limiter state to disk so that
// concurrent agencydesk processes share a single view of API health.
package resilience

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/gofrs/flock"
)

const (
	// StateFileName is the name of the persisted state file.
	StateFileName = "state.json"

	// LockTimeout bounds how long any operation waits for the file lock.
	// Past the timeout we proceed unlocked rather than hang the CLI.
	LockTimeout = 100 * time.Millisecond
)

// Store reads and writes shared resilience state with cross-process
// file locking. All operations are fail-open: a lock that cannot be
// acquired in time is skipped, and a corrupt state file is treated as
// fresh state. Brief races are acceptable for these primitives.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. An empty dir selects the
// default location under the user cache directory.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = defaultStateDir()
	}
	return &Store{dir: dir}
}

func defaultStateDir() string {
	if cache := os.Getenv("XDG_CACHE_HOME"); cache != "" {
		return filepath.Join(cache, "agencydesk", "resilience")
	}
	if cache, err := os.UserCacheDir(); err == nil && cache != "" {
		return filepath.Join(cache, "agencydesk", "resilience")
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".cache", "agencydesk", "resilience")
	}
	return filepath.Join(os.TempDir(), "agencydesk", "resilience")
}

// Path returns the full path of the state file.
func (s *Store) Path() string {
	return filepath.Join(s.dir, StateFileName)
}

func (s *Store) lockPath() string {
	return filepath.Join(s.dir, ".lock")
}

// acquireLock takes the exclusive lock, or returns (nil, nil) when the
// lock could not be acquired within LockTimeout.
func (s *Store) acquireLock() (*flock.Flock, error) {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return nil, err
	}

	fl := flock.New(s.lockPath())

	ctx, cancel := context.WithTimeout(context.Background(), LockTimeout)
	defer cancel()

	locked, err := fl.TryLockContext(ctx, 10*time.Millisecond)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, nil
		}
		return nil, err
	}
	if !locked {
		return nil, nil
	}
	return fl, nil
}

func releaseLock(fl *flock.Flock) {
	if fl != nil {
		_ = fl.Unlock()
	}
}

// Load returns the current state, or fresh state when no file exists.
func (s *Store) Load() (*State, error) {
	fl, err := s.acquireLock()
	if err != nil {
		return nil, err
	}
	defer releaseLock(fl)

	return s.loadLocked()
}

func (s *Store) loadLocked() (*State, error) {
	raw, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return NewState(), nil
		}
		return nil, err
	}

	var state State
	if err := json.Unmarshal(raw, &state); err != nil {
		// Corrupt file: start over rather than wedge every command.
		return NewState(), nil
	}
	return &state, nil
}

// Update runs fn inside the read-modify-write cycle while holding the
// lock, then persists the result atomically.
func (s *Store) Update(fn func(*State) error) error {
	fl, err := s.acquireLock()
	if err != nil {
		return err
	}
	defer releaseLock(fl)

	state, err := s.loadLocked()
	if err != nil {
		return err
	}
	if err := fn(state); err != nil {
		return err
	}
	return s.saveLocked(state)
}

func (s *Store) saveLocked(state *State) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}

	state.Version = StateVersion

	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	// Unique temp name so unlocked writers cannot clobber each other
	// mid-write.
	tmp := fmt.Sprintf("%s.%d.%d.tmp", s.Path(), os.Getpid(), time.Now().UnixNano())
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return err
	}

	// os.Rename cannot replace an existing file on Windows.
	if runtime.GOOS == "windows" {
		_ = os.Remove(s.Path())
	}
	if err := os.Rename(tmp, s.Path()); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Clear removes the state file.
func (s *Store) Clear() error {
	fl, err := s.acquireLock()
	if err != nil {
		return err
	}
	defer releaseLock(fl)

	err = os.Remove(s.Path())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
