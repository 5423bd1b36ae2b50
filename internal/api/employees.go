package api

import (
	"context"
	"fmt"

	"github.com/agencydesk/agencydesk/internal/models"
)

// EmployeeService provides access to employee endpoints.
type EmployeeService struct {
	client *Client
}

// Employees returns the employee service.
func (c *Client) Employees() *EmployeeService {
	return &EmployeeService{client: c}
}

// List fetches employees. Filtering and pagination for employees are
// client-side; the backend returns the full set on one page.
func (s *EmployeeService) List(ctx context.Context) ([]models.Employee, error) {
	resp, err := s.client.Get(ctx, "/employees")
	if err != nil {
		return nil, err
	}
	page, err := decodePage[models.Employee](resp)
	if err != nil {
		return nil, err
	}
	return page.Results, nil
}

// Get fetches one employee. Employee detail arrives flat under data.
func (s *EmployeeService) Get(ctx context.Context, id int64) (models.Employee, error) {
	resp, err := s.client.Get(ctx, fmt.Sprintf("/employees/%d", id))
	if err != nil {
		return models.Employee{}, err
	}
	var emp models.Employee
	if err := decodeEnvelope(resp, &emp); err != nil {
		return models.Employee{}, err
	}
	return emp, nil
}

// Create adds a new employee.
func (s *EmployeeService) Create(ctx context.Context, emp models.Employee) error {
	resp, err := s.client.Post(ctx, "/employees", emp)
	if err != nil {
		return err
	}
	return decodeStatus(resp)
}

// Update replaces an employee record.
func (s *EmployeeService) Update(ctx context.Context, id int64, emp models.Employee) error {
	resp, err := s.client.Put(ctx, fmt.Sprintf("/employees/%d", id), emp)
	if err != nil {
		return err
	}
	return decodeStatus(resp)
}

// Delete removes an employee.
func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	resp, err := s.client.Delete(ctx, fmt.Sprintf("/employees/%d", id))
	if err != nil {
		return err
	}
	return decodeStatus(resp)
}
