package auth

import (
	"context"
	"net/url"
	"os"
	"sync"

	"github.com/agencydesk/agencydesk/internal/output"
)

// Manager resolves the API token for requests. Tokens come from the
// AGENCYDESK_TOKEN env var first, then the credential store.
type Manager struct {
	store   *Store
	baseURL string

	mu     sync.Mutex
	cached string
}

// NewManager creates a token manager for the given backend base URL.
func NewManager(baseURL, fallbackDir string) *Manager {
	return &Manager{
		store:   NewStore(fallbackDir),
		baseURL: baseURL,
	}
}

// Token returns the API token, loading it on first use.
func (m *Manager) Token(_ context.Context) (string, error) {
	if v := os.Getenv("AGENCYDESK_TOKEN"); v != "" {
		return v, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cached != "" {
		return m.cached, nil
	}

	creds, err := m.store.Load(m.origin())
	if err != nil {
		return "", output.ErrAuth("No API token configured")
	}
	m.cached = creds.Token
	return m.cached, nil
}

// SetToken stores a token for the configured origin and primes the cache.
func (m *Manager) SetToken(token, accountID string) error {
	if err := m.store.Save(m.origin(), &Credentials{Token: token, AccountID: accountID}); err != nil {
		return err
	}
	m.mu.Lock()
	m.cached = token
	m.mu.Unlock()
	return nil
}

// ClearToken removes the stored token.
func (m *Manager) ClearToken() error {
	m.mu.Lock()
	m.cached = ""
	m.mu.Unlock()
	return m.store.Delete(m.origin())
}

func (m *Manager) origin() string {
	u, err := url.Parse(m.baseURL)
	if err != nil || u.Host == "" {
		return m.baseURL
	}
	return u.Host
}
