package workspace

import (
	"context"
	"sync"

	"github.com/agencydesk/agencydesk/internal/api"
	"github.com/agencydesk/agencydesk/internal/data"
	"github.com/agencydesk/agencydesk/internal/tui"
)

// Session holds the active workspace state: the API gateway, the data
// hub with its pools, and the shared styles.
type Session struct {
	client *api.Client
	hub    *data.Hub
	styles *tui.Styles

	accountID string

	mu     sync.RWMutex
	ctx    context.Context
	cancel context.CancelFunc
}

// NewSession creates a session over an authenticated API client.
func NewSession(client *api.Client, accountID string) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		client:    client,
		hub:       data.NewHub(client),
		styles:    tui.NewStylesWithTheme(tui.ResolveTheme()),
		accountID: accountID,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// NewTestSession returns a minimal Session for use in external package
// tests. Its Hub has a nil API client, so pool fetches would fail, but
// tests inject data with Set and never hit the network.
func NewTestSession() *Session {
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		hub:       data.NewHub(nil),
		styles:    tui.NewStyles(),
		accountID: "acct-test",
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Client returns the API gateway.
func (s *Session) Client() *api.Client { return s.client }

// Hub returns the data hub for typed pool access.
func (s *Session) Hub() *data.Hub { return s.hub }

// Styles returns the shared TUI styles.
func (s *Session) Styles() *tui.Styles { return s.styles }

// AccountID returns the active account.
func (s *Session) AccountID() string { return s.accountID }

// Scope returns a navigation scope rooted at the active account.
func (s *Session) Scope() Scope {
	return Scope{AccountID: s.accountID}
}

// Context returns the session's cancellable context. Views pass it to
// pool fetches so Shutdown aborts in-flight requests.
// Thread-safe: may be called from Cmd goroutines.
func (s *Session) Context() context.Context {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ctx
}

// Shutdown cancels the session context and tears down the hub's pools.
// Called on program exit.
func (s *Session) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancel()
	s.hub.Shutdown()
}
