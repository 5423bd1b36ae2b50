// Package empty provides empty state messages for TUI components.
package empty

// Message represents an empty state message with optional hints.
type Message struct {
	Title string
	Body  string
	Hints []string
}

// NoBlogPosts returns the empty state for an empty blog post list.
func NoBlogPosts(status string) Message {
	msg := Message{
		Title: "No blog posts found",
	}
	switch status {
	case "draft":
		msg.Body = "No drafts. Everything has shipped."
	case "published":
		msg.Body = "Nothing published yet."
	default:
		msg.Body = "No blog posts on this account."
		msg.Hints = []string{
			"Press n to start a new post",
			"Create one from the CLI with: agencydesk blogs create --title <title>",
		}
	}
	return msg
}

// NoTasks returns the empty state for an empty task list.
func NoTasks(status string) Message {
	msg := Message{
		Title: "No tasks found",
	}
	switch status {
	case "completed":
		msg.Body = "No completed tasks."
	case "in_progress":
		msg.Body = "Nothing in progress."
	case "not_started":
		msg.Body = "No queued tasks. The backlog is clear."
	default:
		msg.Body = "No tasks on this account."
		msg.Hints = []string{
			"Press n to add a task",
		}
	}
	return msg
}

// NoLeads returns the empty state for an empty lead list.
func NoLeads() Message {
	return Message{
		Title: "No leads found",
		Body:  "The pipeline is empty.",
		Hints: []string{
			"Add a lead with: agencydesk leads create --name <name>",
		},
	}
}

// NoCalendarEntries returns the empty state for an empty social calendar.
func NoCalendarEntries() Message {
	return Message{
		Title: "No scheduled posts",
		Body:  "The social calendar is empty.",
		Hints: []string{
			"Press n to schedule a post",
		},
	}
}
