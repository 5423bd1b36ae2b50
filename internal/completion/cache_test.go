package completion

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStoreUpdateAndLoad(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	employees := []CachedEmployee{
		{ID: 1, Name: "Dana Reyes", Email: "dana@agency.test", Department: "Creative"},
		{ID: 2, Name: "Tom Barnes", Department: "Sales"},
	}
	if err := store.UpdateEmployees(employees); err != nil {
		t.Fatalf("UpdateEmployees: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.Employees) != 2 {
		t.Fatalf("employees = %d, want 2", len(loaded.Employees))
	}
	if loaded.Employees[0].Email != "dana@agency.test" {
		t.Errorf("email = %q", loaded.Employees[0].Email)
	}
	if loaded.Version != CacheVersion {
		t.Errorf("version = %d, want %d", loaded.Version, CacheVersion)
	}
}

func TestStoreLoadMissing(t *testing.T) {
	store := NewStore(t.TempDir())

	cache, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cache.Employees) != 0 || len(cache.Clients) != 0 {
		t.Error("expected empty cache for missing file")
	}
}

func TestStoreLoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	if err := os.WriteFile(store.Path(), []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	cache, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cache.Employees) != 0 {
		t.Error("corrupt file should load as empty cache")
	}
}

func TestStoreUpdatePreservesOtherSection(t *testing.T) {
	store := NewStore(t.TempDir())

	if err := store.UpdateEmployees([]CachedEmployee{{ID: 1, Name: "Dana Reyes"}}); err != nil {
		t.Fatal(err)
	}
	if err := store.UpdateClients([]CachedClient{{ID: 5, Name: "Acme", Company: "Acme Corp"}}); err != nil {
		t.Fatal(err)
	}

	cache, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(cache.Employees) != 1 || len(cache.Clients) != 1 {
		t.Fatalf("employees = %d, clients = %d, want 1 each", len(cache.Employees), len(cache.Clients))
	}
}

func TestStoreIsStale(t *testing.T) {
	store := NewStore(t.TempDir())

	// No file at all
	if !store.IsStale(time.Hour) {
		t.Error("missing cache should be stale")
	}

	// Only one section populated
	if err := store.UpdateEmployees([]CachedEmployee{{ID: 1, Name: "Dana Reyes"}}); err != nil {
		t.Fatal(err)
	}
	if !store.IsStale(time.Hour) {
		t.Error("cache without clients should be stale")
	}

	// Both sections fresh
	if err := store.UpdateClients([]CachedClient{{ID: 5, Name: "Acme"}}); err != nil {
		t.Fatal(err)
	}
	if store.IsStale(time.Hour) {
		t.Error("fresh cache should not be stale")
	}
	if !store.IsStale(0) {
		t.Error("zero max age should always be stale")
	}
}

func TestStoreIsStaleOldTimestamps(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	old := time.Now().Add(-2 * time.Hour)
	cache := &Cache{
		Employees:          []CachedEmployee{{ID: 1, Name: "Dana Reyes"}},
		Clients:            []CachedClient{{ID: 5, Name: "Acme"}},
		EmployeesUpdatedAt: old,
		ClientsUpdatedAt:   old,
		Version:            CacheVersion,
	}
	data, err := json.Marshal(cache)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(store.Path(), data, 0600); err != nil {
		t.Fatal(err)
	}

	if !store.IsStale(time.Hour) {
		t.Error("two hour old cache should be stale at one hour max age")
	}
}

func TestStoreClear(t *testing.T) {
	store := NewStore(t.TempDir())

	if err := store.UpdateEmployees([]CachedEmployee{{ID: 1, Name: "Dana Reyes"}}); err != nil {
		t.Fatal(err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := os.Stat(store.Path()); !os.IsNotExist(err) {
		t.Error("cache file should be gone")
	}
	// Clearing again is fine
	if err := store.Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
}

func TestStoreAccessorsEmptyOnMissing(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nonexistent"))

	if got := store.Employees(); got != nil {
		t.Errorf("Employees() = %v, want nil", got)
	}
	if got := store.Clients(); got != nil {
		t.Errorf("Clients() = %v, want nil", got)
	}
}
