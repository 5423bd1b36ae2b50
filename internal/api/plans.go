package api

import (
	"context"
	"fmt"

	"github.com/agencydesk/agencydesk/internal/models"
)

// PlanService provides access to marketing plan endpoints.
type PlanService struct {
	client *Client
}

// Plans returns the marketing plan service.
func (c *Client) Plans() *PlanService {
	return &PlanService{client: c}
}

// List fetches a page of marketing plans.
func (s *PlanService) List(ctx context.Context, opts ListOptions) (Page[models.MarketingPlan], error) {
	resp, err := s.client.Get(ctx, "/marketing-plans"+opts.encode())
	if err != nil {
		return Page[models.MarketingPlan]{}, err
	}
	return decodePage[models.MarketingPlan](resp)
}

// Get fetches one marketing plan. Like blog posts, the detail endpoint
// nests the record under details.message.marketing_plan.
func (s *PlanService) Get(ctx context.Context, id int64) (models.MarketingPlan, error) {
	resp, err := s.client.Get(ctx, fmt.Sprintf("/marketing-plans/%d", id))
	if err != nil {
		return models.MarketingPlan{}, err
	}
	return decodeNestedDetail[models.MarketingPlan](resp, "marketing_plan")
}

// CreateMarketingPlanRequest is the payload for generating a plan.
type CreateMarketingPlanRequest struct {
	Title     string   `json:"title"`
	Objective string   `json:"objective,omitempty"`
	Channels  []string `json:"channels,omitempty"`
}

// Create requests generation of a new marketing plan.
func (s *PlanService) Create(ctx context.Context, req *CreateMarketingPlanRequest) error {
	resp, err := s.client.Post(ctx, "/marketing-plans", req)
	if err != nil {
		return err
	}
	return decodeStatus(resp)
}

// Update replaces a marketing plan with the given record.
func (s *PlanService) Update(ctx context.Context, id int64, plan models.MarketingPlan) error {
	resp, err := s.client.Put(ctx, fmt.Sprintf("/marketing-plans/%d", id), plan)
	if err != nil {
		return err
	}
	return decodeStatus(resp)
}

// Delete removes a marketing plan.
func (s *PlanService) Delete(ctx context.Context, id int64) error {
	resp, err := s.client.Delete(ctx, fmt.Sprintf("/marketing-plans/%d", id))
	if err != nil {
		return err
	}
	return decodeStatus(resp)
}

// Publish marks a marketing plan as completed and visible to the client.
func (s *PlanService) Publish(ctx context.Context, id int64) error {
	resp, err := s.client.Post(ctx, fmt.Sprintf("/marketing-plans/%d/publish", id), nil)
	if err != nil {
		return err
	}
	return decodeStatus(resp)
}
