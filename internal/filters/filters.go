// Package filters provides a store for named, reusable list filters.
// A saved filter bundles the filter map and search text for one
// resource, so "agencydesk leads list --saved hot" can replay it.
package filters

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// Saved is one named filter definition.
type Saved struct {
	Name     string            `yaml:"name"`
	Resource string            `yaml:"resource"`
	Filter   map[string]string `yaml:"filter,omitempty"`
	Search   string            `yaml:"search,omitempty"`
}

// fileFormat is the on-disk document.
type fileFormat struct {
	Filters []Saved `yaml:"filters"`
}

// Store manages saved filters backed by a YAML file.
type Store struct {
	mu   sync.RWMutex
	path string
	byKey map[string]Saved // "resource/name"
}

// NewStore creates a store backed by <configDir>/filters.yml.
func NewStore(configDir string) *Store {
	s := &Store{
		path:  filepath.Join(configDir, "filters.yml"),
		byKey: make(map[string]Saved),
	}
	s.load()
	return s
}

func key(resource, name string) string {
	return resource + "/" + name
}

// Get returns the saved filter for a resource by name.
func (s *Store) Get(resource, name string) (Saved, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.byKey[key(resource, name)]
	return f, ok
}

// List returns all saved filters, optionally limited to one resource,
// sorted by resource then name.
func (s *Store) List(resource string) []Saved {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Saved
	for _, f := range s.byKey {
		if resource != "" && f.Resource != resource {
			continue
		}
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Resource != out[j].Resource {
			return out[i].Resource < out[j].Resource
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Put adds or replaces a saved filter and persists the file.
func (s *Store) Put(f Saved) error {
	if f.Name == "" || f.Resource == "" {
		return fmt.Errorf("saved filter needs a name and a resource")
	}
	s.mu.Lock()
	s.byKey[key(f.Resource, f.Name)] = f
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	return s.save(snapshot)
}

// Remove deletes a saved filter. Removing an unknown name is a noop.
func (s *Store) Remove(resource, name string) error {
	s.mu.Lock()
	delete(s.byKey, key(resource, name))
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	return s.save(snapshot)
}

func (s *Store) snapshotLocked() []Saved {
	out := make([]Saved, 0, len(s.byKey))
	for _, f := range s.byKey {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Resource != out[j].Resource {
			return out[i].Resource < out[j].Resource
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path) //nolint:gosec // G304: Path is from trusted config
	if err != nil {
		return
	}
	var doc fileFormat
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return
	}
	for _, f := range doc.Filters {
		if f.Name == "" || f.Resource == "" {
			continue
		}
		s.byKey[key(f.Resource, f.Name)] = f
	}
}

func (s *Store) save(snapshot []Saved) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0750); err != nil {
		return err
	}
	data, err := yaml.Marshal(fileFormat{Filters: snapshot})
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}
