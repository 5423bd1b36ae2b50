package data

import (
	"context"

	"github.com/agencydesk/agencydesk/internal/api"
	"github.com/agencydesk/agencydesk/internal/models"
)

// BlogPublishMutation publishes a draft blog post.
// Implements Mutation[api.Page[models.BlogPost]] for use with MutatingPool.
type BlogPublishMutation struct {
	PostID int64
	Client *api.Client
}

// ApplyLocally flips the post's status to published in the local page.
func (m BlogPublishMutation) ApplyLocally(page api.Page[models.BlogPost]) api.Page[models.BlogPost] {
	result := page
	result.Results = make([]models.BlogPost, len(page.Results))
	copy(result.Results, page.Results)
	for i := range result.Results {
		if result.Results[i].ID == m.PostID {
			result.Results[i].Status = models.BlogPublished
			break
		}
	}
	return result
}

// ApplyRemotely calls the publish endpoint.
func (m BlogPublishMutation) ApplyRemotely(ctx context.Context) error {
	return m.Client.Blogs().Publish(ctx, m.PostID)
}

// IsReflectedIn returns true when the remote page shows the post as
// published, or no longer contains it (it may have moved to another
// page under a status filter).
func (m BlogPublishMutation) IsReflectedIn(page api.Page[models.BlogPost]) bool {
	for _, p := range page.Results {
		if p.ID == m.PostID {
			return p.Status == models.BlogPublished
		}
	}
	return true
}

// BlogDeleteMutation removes a blog post.
type BlogDeleteMutation struct {
	PostID int64
	Client *api.Client
}

// ApplyLocally drops the post from the local page and decrements the count.
func (m BlogDeleteMutation) ApplyLocally(page api.Page[models.BlogPost]) api.Page[models.BlogPost] {
	result := page
	result.Results = make([]models.BlogPost, 0, len(page.Results))
	for _, p := range page.Results {
		if p.ID != m.PostID {
			result.Results = append(result.Results, p)
		}
	}
	if len(result.Results) < len(page.Results) && result.Meta.Count > 0 {
		result.Meta.Count--
	}
	return result
}

// ApplyRemotely calls the delete endpoint.
func (m BlogDeleteMutation) ApplyRemotely(ctx context.Context) error {
	return m.Client.Blogs().Delete(ctx, m.PostID)
}

// IsReflectedIn returns true when the remote page no longer contains the post.
func (m BlogDeleteMutation) IsReflectedIn(page api.Page[models.BlogPost]) bool {
	for _, p := range page.Results {
		if p.ID == m.PostID {
			return false
		}
	}
	return true
}

// PlanPublishMutation publishes a marketing plan.
type PlanPublishMutation struct {
	PlanID int64
	Client *api.Client
}

func (m PlanPublishMutation) ApplyLocally(page api.Page[models.MarketingPlan]) api.Page[models.MarketingPlan] {
	result := page
	result.Results = make([]models.MarketingPlan, len(page.Results))
	copy(result.Results, page.Results)
	for i := range result.Results {
		if result.Results[i].ID == m.PlanID {
			result.Results[i].Status = models.PlanPublished
			break
		}
	}
	return result
}

func (m PlanPublishMutation) ApplyRemotely(ctx context.Context) error {
	return m.Client.Plans().Publish(ctx, m.PlanID)
}

func (m PlanPublishMutation) IsReflectedIn(page api.Page[models.MarketingPlan]) bool {
	for _, p := range page.Results {
		if p.ID == m.PlanID {
			return p.Status == models.PlanPublished
		}
	}
	return true
}

// PlanDeleteMutation removes a marketing plan.
type PlanDeleteMutation struct {
	PlanID int64
	Client *api.Client
}

func (m PlanDeleteMutation) ApplyLocally(page api.Page[models.MarketingPlan]) api.Page[models.MarketingPlan] {
	result := page
	result.Results = make([]models.MarketingPlan, 0, len(page.Results))
	for _, p := range page.Results {
		if p.ID != m.PlanID {
			result.Results = append(result.Results, p)
		}
	}
	if len(result.Results) < len(page.Results) && result.Meta.Count > 0 {
		result.Meta.Count--
	}
	return result
}

func (m PlanDeleteMutation) ApplyRemotely(ctx context.Context) error {
	return m.Client.Plans().Delete(ctx, m.PlanID)
}

func (m PlanDeleteMutation) IsReflectedIn(page api.Page[models.MarketingPlan]) bool {
	for _, p := range page.Results {
		if p.ID == m.PlanID {
			return false
		}
	}
	return true
}
