// Package models provides canonical type definitions for back-office API
// entities. These types are used throughout the gateway, list controllers,
// and CLI for API responses.
package models

// Blog post statuses.
const (
	BlogDraft     = "draft"
	BlogCompleted = "completed"
	BlogFailed    = "failed"
	BlogPublished = "published"
	BlogScheduled = "scheduled"
)

// Marketing plan statuses. Plans share the blog post lifecycle on the
// wire but are a distinct resource, so they carry their own constants.
const (
	PlanDraft     = "draft"
	PlanPublished = "published"
)

// Task statuses.
const (
	TaskNotStarted       = "not_started"
	TaskInProgress       = "in_progress"
	TaskAwaitingFeedback = "awaiting_feedback"
	TaskCompleted        = "completed"
)

// BlogPost represents a generated blog article.
type BlogPost struct {
	ID        int64    `json:"id"`
	Title     string   `json:"title"`
	Keywords  []string `json:"keywords,omitempty"`
	Content   string   `json:"content,omitempty"`
	Status    string   `json:"status"`
	CreatedAt string   `json:"created_at,omitempty"`
	UpdatedAt string   `json:"updated_at,omitempty"`
}

// MarketingPlan represents a generated marketing plan.
type MarketingPlan struct {
	ID        int64    `json:"id"`
	Title     string   `json:"title"`
	Objective string   `json:"objective,omitempty"`
	Channels  []string `json:"channels,omitempty"`
	Content   string   `json:"content,omitempty"`
	Status    string   `json:"status"`
	CreatedAt string   `json:"created_at,omitempty"`
	UpdatedAt string   `json:"updated_at,omitempty"`
}

// Employee represents an agency employee.
type Employee struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Role       string `json:"role,omitempty"`
	Department string `json:"department,omitempty"`
	Status     string `json:"status,omitempty"` // "active" or "inactive"
	CreatedAt  string `json:"created_at,omitempty"`
}

// Task represents an employee task.
type Task struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Details    string `json:"details,omitempty"`
	AssigneeID int64  `json:"assignee_id,omitempty"`
	Assignee   string `json:"assignee,omitempty"`
	DueOn      string `json:"due_on,omitempty"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at,omitempty"`
	UpdatedAt  string `json:"updated_at,omitempty"`
}

// Lead represents a sales lead.
type Lead struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	SourceID  int64  `json:"source_id,omitempty"`
	Source    string `json:"source,omitempty"`
	Status    string `json:"status,omitempty"`
	Score     int    `json:"score,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Client represents an agency client.
type Client struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Company   string `json:"company,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// CalendarEntry represents one scheduled social-media post. The backend
// stores the whole calendar as a single array-valued document without
// per-entry ids; EntryID is assigned client-side and survives round-trips
// through the wire format (see internal/calendar).
type CalendarEntry struct {
	EntryID     string `json:"entry_id,omitempty"`
	Platform    string `json:"platform"`
	Caption     string `json:"caption,omitempty"`
	ScheduledAt string `json:"scheduled_at,omitempty"`
	Status      string `json:"status,omitempty"`
}
