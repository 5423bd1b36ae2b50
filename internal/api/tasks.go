package api

import (
	"context"
	"fmt"

	"github.com/agencydesk/agencydesk/internal/models"
)

// TaskService provides access to employee task endpoints.
type TaskService struct {
	client *Client
}

// Tasks returns the task service.
func (c *Client) Tasks() *TaskService {
	return &TaskService{client: c}
}

// List fetches a page of tasks. Task filtering (status set, assignee ids,
// date range) is backend-driven.
func (s *TaskService) List(ctx context.Context, opts ListOptions) (Page[models.Task], error) {
	resp, err := s.client.Get(ctx, "/tasks"+opts.encode())
	if err != nil {
		return Page[models.Task]{}, err
	}
	return decodePage[models.Task](resp)
}

// Get fetches one task.
func (s *TaskService) Get(ctx context.Context, id int64) (models.Task, error) {
	resp, err := s.client.Get(ctx, fmt.Sprintf("/tasks/%d", id))
	if err != nil {
		return models.Task{}, err
	}
	var task models.Task
	if err := decodeEnvelope(resp, &task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// Create adds a new task.
func (s *TaskService) Create(ctx context.Context, task models.Task) error {
	resp, err := s.client.Post(ctx, "/tasks", task)
	if err != nil {
		return err
	}
	return decodeStatus(resp)
}

// Update replaces a task record.
func (s *TaskService) Update(ctx context.Context, id int64, task models.Task) error {
	resp, err := s.client.Put(ctx, fmt.Sprintf("/tasks/%d", id), task)
	if err != nil {
		return err
	}
	return decodeStatus(resp)
}

// UpdateStatus transitions a task's status without touching other fields.
func (s *TaskService) UpdateStatus(ctx context.Context, id int64, status string) error {
	resp, err := s.client.Patch(ctx, fmt.Sprintf("/tasks/%d", id), map[string]string{"status": status})
	if err != nil {
		return err
	}
	return decodeStatus(resp)
}

// Delete removes a task.
func (s *TaskService) Delete(ctx context.Context, id int64) error {
	resp, err := s.client.Delete(ctx, fmt.Sprintf("/tasks/%d", id))
	if err != nil {
		return err
	}
	return decodeStatus(resp)
}
