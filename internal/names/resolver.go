// Package names resolves employee and client names to ids, so commands
// accept "--assignee dana" as well as "--assignee 12". Matching runs in
// priority order:
//  1. Numeric id passthrough
//  2. Exact match (case-sensitive)
//  3. Case-insensitive match
//  4. Partial match (contains)
package names

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/agencydesk/agencydesk/internal/api"
	"github.com/agencydesk/agencydesk/internal/models"
	"github.com/agencydesk/agencydesk/internal/output"
)

// Resolver resolves employee and client names to ids.
type Resolver struct {
	client *api.Client

	// Session-scoped cache, fetched once per process.
	mu        sync.RWMutex
	employees []models.Employee
	clients   []models.Client
}

// NewResolver creates a resolver over the API client.
func NewResolver(client *api.Client) *Resolver {
	return &Resolver{client: client}
}

// ResolveEmployee resolves a name, email, or id to an employee id.
// Returns the id and the employee's name for display.
func (r *Resolver) ResolveEmployee(ctx context.Context, input string) (int64, string, error) {
	if id, err := strconv.ParseInt(input, 10, 64); err == nil {
		employees, err := r.getEmployees(ctx)
		if err != nil {
			return 0, "", err
		}
		for _, e := range employees {
			if e.ID == id {
				return id, e.Name, nil
			}
		}
		// Unknown id passes through; the API validates it.
		return id, "", nil
	}

	employees, err := r.getEmployees(ctx)
	if err != nil {
		return 0, "", err
	}

	// Email exact match wins over name matching.
	for _, e := range employees {
		if e.Email != "" && strings.EqualFold(e.Email, input) {
			return e.ID, e.Name, nil
		}
	}

	match, matches := resolve(input, employees, func(e models.Employee) string { return e.Name })
	if match != nil {
		return match.ID, match.Name, nil
	}
	if len(matches) > 1 {
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.Name
		}
		return 0, "", output.ErrAmbiguous("employee", names)
	}

	if suggestions := suggest(input, employees, func(e models.Employee) string { return e.Name }); len(suggestions) > 0 {
		return 0, "", output.ErrNotFoundHint("Employee", input, "Did you mean: "+strings.Join(suggestions, ", "))
	}
	return 0, "", output.ErrNotFound("Employee", input)
}

// ResolveClient resolves a client or company name or id to a client id.
func (r *Resolver) ResolveClient(ctx context.Context, input string) (int64, string, error) {
	if id, err := strconv.ParseInt(input, 10, 64); err == nil {
		clients, err := r.getClients(ctx)
		if err != nil {
			return 0, "", err
		}
		for _, c := range clients {
			if c.ID == id {
				return id, c.Name, nil
			}
		}
		return id, "", nil
	}

	clients, err := r.getClients(ctx)
	if err != nil {
		return 0, "", err
	}

	// Company name is as good an identifier as the contact name.
	for _, c := range clients {
		if c.Company != "" && strings.EqualFold(c.Company, input) {
			return c.ID, c.Name, nil
		}
	}

	match, matches := resolve(input, clients, func(c models.Client) string { return c.Name })
	if match != nil {
		return match.ID, match.Name, nil
	}
	if len(matches) > 1 {
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.Name
		}
		return 0, "", output.ErrAmbiguous("client", names)
	}

	if suggestions := suggest(input, clients, func(c models.Client) string { return c.Name }); len(suggestions) > 0 {
		return 0, "", output.ErrNotFoundHint("Client", input, "Did you mean: "+strings.Join(suggestions, ", "))
	}
	return 0, "", output.ErrNotFound("Client", input)
}

// ClearCache drops the session cache.
func (r *Resolver) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.employees = nil
	r.clients = nil
}

// Employees returns the cached employee directory, fetching on first use.
func (r *Resolver) Employees(ctx context.Context) ([]models.Employee, error) {
	return r.getEmployees(ctx)
}

func (r *Resolver) getEmployees(ctx context.Context) ([]models.Employee, error) {
	r.mu.RLock()
	if r.employees != nil {
		defer r.mu.RUnlock()
		return r.employees, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.employees != nil {
		return r.employees, nil
	}

	employees, err := r.client.Employees().List(ctx)
	if err != nil {
		return nil, err
	}
	r.employees = employees
	return employees, nil
}

func (r *Resolver) getClients(ctx context.Context) ([]models.Client, error) {
	r.mu.RLock()
	if r.clients != nil {
		defer r.mu.RUnlock()
		return r.clients, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.clients != nil {
		return r.clients, nil
	}

	clients, err := r.client.Clients().List(ctx)
	if err != nil {
		return nil, err
	}
	r.clients = clients
	return clients, nil
}

// resolve performs name resolution in priority order. Returns the
// single match if unambiguous, or all partial matches if ambiguous.
func resolve[T any](input string, items []T, name func(T) string) (*T, []T) {
	inputLower := strings.ToLower(input)

	for i := range items {
		if name(items[i]) == input {
			return &items[i], nil
		}
	}

	var caseMatches []T
	for i := range items {
		if strings.ToLower(name(items[i])) == inputLower {
			caseMatches = append(caseMatches, items[i])
		}
	}
	if len(caseMatches) == 1 {
		return &caseMatches[0], nil
	}
	if len(caseMatches) > 1 {
		return nil, caseMatches
	}

	var partialMatches []T
	for i := range items {
		if strings.Contains(strings.ToLower(name(items[i])), inputLower) {
			partialMatches = append(partialMatches, items[i])
		}
	}
	if len(partialMatches) == 1 {
		return &partialMatches[0], nil
	}
	return nil, partialMatches
}

// suggest returns up to 3 similar names for a not-found message.
func suggest[T any](input string, items []T, name func(T) string) []string {
	inputLower := strings.ToLower(input)
	var suggestions []string

	for _, item := range items {
		n := name(item)
		nLower := strings.ToLower(n)

		commonLen := 0
		for i := 0; i < len(inputLower) && i < len(nLower); i++ {
			if inputLower[i] != nLower[i] {
				break
			}
			commonLen++
		}

		if commonLen >= 2 || containsWord(nLower, inputLower) {
			suggestions = append(suggestions, n)
			if len(suggestions) >= 3 {
				break
			}
		}
	}
	return suggestions
}

func containsWord(haystack, needle string) bool {
	for _, word := range strings.Fields(needle) {
		if len(word) >= 2 && strings.Contains(haystack, word) {
			return true
		}
	}
	return false
}
