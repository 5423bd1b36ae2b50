package completion

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/agencydesk/agencydesk/internal/api"
	"github.com/agencydesk/agencydesk/internal/models"
)

// RefreshResult contains the outcome of a refresh operation.
type RefreshResult struct {
	EmployeesCount int
	ClientsCount   int
	EmployeesErr   error
	ClientsErr     error
}

// HasError returns true if any refresh operation failed.
func (r RefreshResult) HasError() bool {
	return r.EmployeesErr != nil || r.ClientsErr != nil
}

// Error returns a combined error if any operation failed.
func (r RefreshResult) Error() error {
	if r.EmployeesErr != nil && r.ClientsErr != nil {
		return errors.Join(
			fmt.Errorf("employees: %w", r.EmployeesErr),
			fmt.Errorf("clients: %w", r.ClientsErr),
		)
	}
	if r.EmployeesErr != nil {
		return fmt.Errorf("employees: %w", r.EmployeesErr)
	}
	if r.ClientsErr != nil {
		return fmt.Errorf("clients: %w", r.ClientsErr)
	}
	return nil
}

// Refresher handles background cache refresh operations.
type Refresher struct {
	store  *Store
	client *api.Client

	mu         sync.Mutex
	refreshing bool
}

// NewRefresher creates a new cache refresher.
func NewRefresher(store *Store, client *api.Client) *Refresher {
	return &Refresher{
		store:  store,
		client: client,
	}
}

// RefreshIfStale triggers a background refresh if the cache is stale.
// Returns immediately. If a refresh is already in progress this is a
// no-op.
func (r *Refresher) RefreshIfStale(maxAge time.Duration) {
	if !r.store.IsStale(maxAge) {
		return
	}

	r.mu.Lock()
	if r.refreshing {
		r.mu.Unlock()
		return
	}
	r.refreshing = true
	r.mu.Unlock()

	go func() {
		defer func() {
			r.mu.Lock()
			r.refreshing = false
			r.mu.Unlock()
		}()

		// Detached context: the refresh outlives the command invocation
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Best-effort, errors are dropped
		r.RefreshAll(ctx)
	}()
}

// RefreshAll fetches fresh data and updates the cache synchronously.
// On partial failure the existing cached data for the failed section
// is preserved.
func (r *Refresher) RefreshAll(ctx context.Context) RefreshResult {
	var result RefreshResult

	var employees []models.Employee
	var clients []models.Client

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		employees, result.EmployeesErr = r.client.Employees().List(ctx)
	}()

	go func() {
		defer wg.Done()
		clients, result.ClientsErr = r.client.Clients().List(ctx)
	}()

	wg.Wait()

	if result.EmployeesErr == nil && employees != nil {
		converted := convertEmployees(employees)
		if err := r.store.UpdateEmployees(converted); err != nil {
			result.EmployeesErr = err
		} else {
			result.EmployeesCount = len(converted)
		}
	}

	if result.ClientsErr == nil && clients != nil {
		converted := convertClients(clients)
		if err := r.store.UpdateClients(converted); err != nil {
			result.ClientsErr = err
		} else {
			result.ClientsCount = len(converted)
		}
	}

	return result
}

// RefreshEmployees fetches fresh directory data and updates the cache.
func (r *Refresher) RefreshEmployees(ctx context.Context) error {
	employees, err := r.client.Employees().List(ctx)
	if err != nil {
		return err
	}

	return r.store.UpdateEmployees(convertEmployees(employees))
}

// RefreshClients fetches fresh roster data and updates the cache.
func (r *Refresher) RefreshClients(ctx context.Context) error {
	clients, err := r.client.Clients().List(ctx)
	if err != nil {
		return err
	}

	return r.store.UpdateClients(convertClients(clients))
}

func convertEmployees(employees []models.Employee) []CachedEmployee {
	result := make([]CachedEmployee, len(employees))
	for i, e := range employees {
		result[i] = CachedEmployee{
			ID:         e.ID,
			Name:       e.Name,
			Email:      e.Email,
			Department: e.Department,
			Status:     e.Status,
		}
	}
	return result
}

func convertClients(clients []models.Client) []CachedClient {
	result := make([]CachedClient, len(clients))
	for i, c := range clients {
		result[i] = CachedClient{
			ID:      c.ID,
			Name:    c.Name,
			Company: c.Company,
		}
	}
	return result
}

// IsRefreshing returns true if a background refresh is in progress.
func (r *Refresher) IsRefreshing() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.refreshing
}
