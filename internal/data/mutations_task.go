package data

import (
	"context"

	"github.com/agencydesk/agencydesk/internal/api"
	"github.com/agencydesk/agencydesk/internal/models"
)

// TaskStatusMutation moves a task to a new workflow status.
// Implements Mutation[api.Page[models.Task]] for use with MutatingPool.
type TaskStatusMutation struct {
	TaskID int64
	Status string // target status
	Client *api.Client
}

// ApplyLocally rewrites the task's status in the local page.
func (m TaskStatusMutation) ApplyLocally(page api.Page[models.Task]) api.Page[models.Task] {
	result := page
	result.Results = make([]models.Task, len(page.Results))
	copy(result.Results, page.Results)
	for i := range result.Results {
		if result.Results[i].ID == m.TaskID {
			result.Results[i].Status = m.Status
			break
		}
	}
	return result
}

// ApplyRemotely patches the task's status.
func (m TaskStatusMutation) ApplyRemotely(ctx context.Context) error {
	return m.Client.Tasks().UpdateStatus(ctx, m.TaskID, m.Status)
}

// IsReflectedIn returns true when the remote page shows the task in the
// target status, or no longer contains it (it may have left the current
// status filter).
func (m TaskStatusMutation) IsReflectedIn(page api.Page[models.Task]) bool {
	for _, t := range page.Results {
		if t.ID == m.TaskID {
			return t.Status == m.Status
		}
	}
	return true
}

// TaskDeleteMutation removes a task.
type TaskDeleteMutation struct {
	TaskID int64
	Client *api.Client
}

func (m TaskDeleteMutation) ApplyLocally(page api.Page[models.Task]) api.Page[models.Task] {
	result := page
	result.Results = make([]models.Task, 0, len(page.Results))
	for _, t := range page.Results {
		if t.ID != m.TaskID {
			result.Results = append(result.Results, t)
		}
	}
	if len(result.Results) < len(page.Results) && result.Meta.Count > 0 {
		result.Meta.Count--
	}
	return result
}

func (m TaskDeleteMutation) ApplyRemotely(ctx context.Context) error {
	return m.Client.Tasks().Delete(ctx, m.TaskID)
}

func (m TaskDeleteMutation) IsReflectedIn(page api.Page[models.Task]) bool {
	for _, t := range page.Results {
		if t.ID == m.TaskID {
			return false
		}
	}
	return true
}

// EmployeeDeleteMutation removes an employee from the roster.
// The roster pool holds the full slice, not a page.
type EmployeeDeleteMutation struct {
	EmployeeID int64
	Client     *api.Client
}

func (m EmployeeDeleteMutation) ApplyLocally(employees []models.Employee) []models.Employee {
	result := make([]models.Employee, 0, len(employees))
	for _, e := range employees {
		if e.ID != m.EmployeeID {
			result = append(result, e)
		}
	}
	return result
}

func (m EmployeeDeleteMutation) ApplyRemotely(ctx context.Context) error {
	return m.Client.Employees().Delete(ctx, m.EmployeeID)
}

func (m EmployeeDeleteMutation) IsReflectedIn(employees []models.Employee) bool {
	for _, e := range employees {
		if e.ID == m.EmployeeID {
			return false
		}
	}
	return true
}
