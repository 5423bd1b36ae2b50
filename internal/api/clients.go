package api

import (
	"context"
	"fmt"

	"github.com/agencydesk/agencydesk/internal/models"
)

// ClientService provides access to agency client endpoints.
type ClientService struct {
	client *Client
}

// Clients returns the agency client service.
func (c *Client) Clients() *ClientService {
	return &ClientService{client: c}
}

// List fetches all agency clients.
func (s *ClientService) List(ctx context.Context) ([]models.Client, error) {
	resp, err := s.client.Get(ctx, "/clients")
	if err != nil {
		return nil, err
	}
	page, err := decodePage[models.Client](resp)
	if err != nil {
		return nil, err
	}
	return page.Results, nil
}

// Get fetches one agency client.
func (s *ClientService) Get(ctx context.Context, id int64) (models.Client, error) {
	resp, err := s.client.Get(ctx, fmt.Sprintf("/clients/%d", id))
	if err != nil {
		return models.Client{}, err
	}
	var record models.Client
	if err := decodeEnvelope(resp, &record); err != nil {
		return models.Client{}, err
	}
	return record, nil
}

// Create adds a new agency client.
func (s *ClientService) Create(ctx context.Context, record models.Client) error {
	resp, err := s.client.Post(ctx, "/clients", record)
	if err != nil {
		return err
	}
	return decodeStatus(resp)
}

// Update replaces an agency client record.
func (s *ClientService) Update(ctx context.Context, id int64, record models.Client) error {
	resp, err := s.client.Put(ctx, fmt.Sprintf("/clients/%d", id), record)
	if err != nil {
		return err
	}
	return decodeStatus(resp)
}

// Delete removes an agency client.
func (s *ClientService) Delete(ctx context.Context, id int64) error {
	resp, err := s.client.Delete(ctx, fmt.Sprintf("/clients/%d", id))
	if err != nil {
		return err
	}
	return decodeStatus(resp)
}
