package api

import (
	"context"
	"fmt"

	"github.com/agencydesk/agencydesk/internal/models"
)

// LeadService provides access to lead endpoints.
type LeadService struct {
	client *Client
}

// Leads returns the lead service.
func (c *Client) Leads() *LeadService {
	return &LeadService{client: c}
}

// List fetches a page of leads. Lead filtering (source ids, status set,
// date range) is backend-driven.
func (s *LeadService) List(ctx context.Context, opts ListOptions) (Page[models.Lead], error) {
	resp, err := s.client.Get(ctx, "/leads"+opts.encode())
	if err != nil {
		return Page[models.Lead]{}, err
	}
	return decodePage[models.Lead](resp)
}

// Get fetches one lead. Lead detail arrives flat under data.
func (s *LeadService) Get(ctx context.Context, id int64) (models.Lead, error) {
	resp, err := s.client.Get(ctx, fmt.Sprintf("/leads/%d", id))
	if err != nil {
		return models.Lead{}, err
	}
	var lead models.Lead
	if err := decodeEnvelope(resp, &lead); err != nil {
		return models.Lead{}, err
	}
	return lead, nil
}

// Create adds a new lead.
func (s *LeadService) Create(ctx context.Context, lead models.Lead) error {
	resp, err := s.client.Post(ctx, "/leads", lead)
	if err != nil {
		return err
	}
	return decodeStatus(resp)
}

// Update replaces a lead record.
func (s *LeadService) Update(ctx context.Context, id int64, lead models.Lead) error {
	resp, err := s.client.Put(ctx, fmt.Sprintf("/leads/%d", id), lead)
	if err != nil {
		return err
	}
	return decodeStatus(resp)
}

// Delete removes a lead.
func (s *LeadService) Delete(ctx context.Context, id int64) error {
	resp, err := s.client.Delete(ctx, fmt.Sprintf("/leads/%d", id))
	if err != nil {
		return err
	}
	return decodeStatus(resp)
}
