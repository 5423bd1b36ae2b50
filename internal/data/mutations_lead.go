package data

import (
	"context"

	"github.com/agencydesk/agencydesk/internal/api"
	"github.com/agencydesk/agencydesk/internal/models"
)

// LeadDeleteMutation removes a lead from the pipeline.
type LeadDeleteMutation struct {
	LeadID int64
	Client *api.Client
}

func (m LeadDeleteMutation) ApplyLocally(page api.Page[models.Lead]) api.Page[models.Lead] {
	result := page
	result.Results = make([]models.Lead, 0, len(page.Results))
	for _, l := range page.Results {
		if l.ID != m.LeadID {
			result.Results = append(result.Results, l)
		}
	}
	if len(result.Results) < len(page.Results) && result.Meta.Count > 0 {
		result.Meta.Count--
	}
	return result
}

func (m LeadDeleteMutation) ApplyRemotely(ctx context.Context) error {
	return m.Client.Leads().Delete(ctx, m.LeadID)
}

func (m LeadDeleteMutation) IsReflectedIn(page api.Page[models.Lead]) bool {
	for _, l := range page.Results {
		if l.ID == m.LeadID {
			return false
		}
	}
	return true
}
