package api

import (
	"context"

	"github.com/agencydesk/agencydesk/internal/models"
)

// CalendarService provides access to the social-media content calendar.
// The backend does not expose per-post endpoints: the whole calendar is
// one array-valued document read and replaced as a unit. Entry identity
// on the wire is positional; stable entry ids are assigned and stripped
// at this boundary (see internal/calendar for the keyed transforms).
type CalendarService struct {
	client *Client
}

// Calendar returns the content calendar service.
func (c *Client) Calendar() *CalendarService {
	return &CalendarService{client: c}
}

// wireEntry is the positional wire format. It carries no entry_id.
type wireEntry struct {
	Platform    string `json:"platform"`
	Caption     string `json:"caption,omitempty"`
	ScheduledAt string `json:"scheduled_at,omitempty"`
	Status      string `json:"status,omitempty"`
}

// Get fetches the whole calendar document.
func (s *CalendarService) Get(ctx context.Context) ([]models.CalendarEntry, error) {
	resp, err := s.client.Get(ctx, "/social-calendar")
	if err != nil {
		return nil, err
	}
	var payload struct {
		Posts []wireEntry `json:"posts"`
	}
	if err := decodeEnvelope(resp, &payload); err != nil {
		return nil, err
	}
	entries := make([]models.CalendarEntry, 0, len(payload.Posts))
	for _, w := range payload.Posts {
		entries = append(entries, models.CalendarEntry{
			Platform:    w.Platform,
			Caption:     w.Caption,
			ScheduledAt: w.ScheduledAt,
			Status:      w.Status,
		})
	}
	return entries, nil
}

// Put replaces the whole calendar document. The write is last-write-wins
// at the backend; callers build the replacement document with the
// internal/calendar edit functions before writing it back.
func (s *CalendarService) Put(ctx context.Context, entries []models.CalendarEntry) error {
	posts := make([]wireEntry, 0, len(entries))
	for _, e := range entries {
		posts = append(posts, wireEntry{
			Platform:    e.Platform,
			Caption:     e.Caption,
			ScheduledAt: e.ScheduledAt,
			Status:      e.Status,
		})
	}
	resp, err := s.client.Put(ctx, "/social-calendar", map[string]any{"posts": posts})
	if err != nil {
		return err
	}
	return decodeStatus(resp)
}
