// Package workspace provides the persistent TUI application for
// agencydesk: a screen stack over the shared data pools, with the
// blogs, tasks, leads, and calendar screens as roots and record detail
// views pushed on top.
package workspace

import (
	tea "github.com/charmbracelet/bubbletea"
)

// ViewTarget identifies which view to navigate to.
type ViewTarget int

const (
	ViewBlogs ViewTarget = iota
	ViewTasks
	ViewLeads
	ViewCalendar
	ViewBlogDetail
)

// Scope carries navigation parameters: the active account and, for
// detail views, the record being opened.
type Scope struct {
	AccountID string
	RecordID  int64
}

// NavigateMsg requests navigation to a new view.
type NavigateMsg struct {
	Target ViewTarget
	Scope  Scope
}

// NavigateBackMsg requests navigation to the previous view.
type NavigateBackMsg struct{}

// ErrorMsg wraps an error for display.
type ErrorMsg struct {
	Err     error
	Context string // what was being attempted
}

// StatusMsg flashes a transient status message in the status bar.
type StatusMsg struct {
	Text    string
	IsError bool
}

// RefreshMsg requests a data refresh for the current view.
type RefreshMsg struct{}

// ToggleHelpMsg toggles the help overlay.
type ToggleHelpMsg struct{}

// FocusMsg indicates a view gained focus (came back to the top of the
// stack). Views typically revalidate stale pools on focus.
type FocusMsg struct{}

// BlurMsg indicates a view lost focus.
type BlurMsg struct{}

// Command factories

// Navigate returns a command that sends a NavigateMsg.
func Navigate(target ViewTarget, scope Scope) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Target: target, Scope: scope}
	}
}

// NavigateBack returns a command that sends a NavigateBackMsg.
func NavigateBack() tea.Cmd {
	return func() tea.Msg {
		return NavigateBackMsg{}
	}
}

// ReportError returns a command that sends an ErrorMsg.
func ReportError(err error, context string) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Err: err, Context: context}
	}
}

// SetStatus returns a command that flashes a status message.
func SetStatus(text string, isError bool) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Text: text, IsError: isError}
	}
}

// Refresh returns a command that asks the current view to refetch.
func Refresh() tea.Cmd {
	return func() tea.Msg {
		return RefreshMsg{}
	}
}
