// Package action coordinates row-level actions on list screens: the
// modal lifecycle for create and edit forms, and the confirm-then-apply
// flow for deletes. The coordinator owns the state machine; the actual
// data movement stays in the api gateway and the data pools.
package action

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Phase is the modal lifecycle state.
type Phase int

const (
	PhaseClosed        Phase = iota
	PhaseLoading             // fetching the full record for an edit form
	PhaseOpen                // form visible, editable
	PhaseSubmitting          // save in flight, form frozen
	PhaseConfirmDelete       // delete confirmation visible
)

func (p Phase) String() string {
	switch p {
	case PhaseClosed:
		return "closed"
	case PhaseLoading:
		return "loading"
	case PhaseOpen:
		return "open"
	case PhaseSubmitting:
		return "submitting"
	case PhaseConfirmDelete:
		return "confirm-delete"
	default:
		return "unknown"
	}
}

// DetailLoadedMsg is sent when an edit form's record finished loading.
type DetailLoadedMsg struct{ Key string }

// DetailErrorMsg is sent when the edit form's record failed to load.
// The modal closes; there is nothing to edit.
type DetailErrorMsg struct {
	Key string
	Err error
}

// SubmitDoneMsg is sent when a save succeeded and the modal closed.
type SubmitDoneMsg struct{ Key string }

// SubmitErrorMsg is sent when a save failed. The modal stays open with
// the user's values intact so they can correct and retry.
type SubmitErrorMsg struct {
	Key string
	Err error
}

// Coordinator drives the modal state machine for one resource screen.
// T is the full record type round-tripped through edit forms; K is the
// row identity type.
type Coordinator[T any, K comparable] struct {
	key   string
	phase Phase

	record   T
	isEdit   bool
	targetID K // edit or delete target
	err      error

	seq uint64 // guards against stale async results after Close
}

// NewCoordinator creates a coordinator identified by key. The key is
// echoed in every message so views can route.
func NewCoordinator[T any, K comparable](key string) *Coordinator[T, K] {
	return &Coordinator[T, K]{key: key}
}

// Key returns the coordinator's identifier.
func (c *Coordinator[T, K]) Key() string { return c.key }

// Phase returns the current modal phase.
func (c *Coordinator[T, K]) Phase() Phase { return c.phase }

// Record returns the record behind the form.
func (c *Coordinator[T, K]) Record() T { return c.record }

// IsEdit reports whether the open form edits an existing record.
func (c *Coordinator[T, K]) IsEdit() bool { return c.isEdit }

// TargetID returns the id of the record being edited or deleted.
func (c *Coordinator[T, K]) TargetID() K { return c.targetID }

// Err returns the error shown in the modal, if any.
func (c *Coordinator[T, K]) Err() error { return c.err }

// OpenCreate opens a blank create form.
func (c *Coordinator[T, K]) OpenCreate(blank T) {
	c.phase = PhaseOpen
	c.record = blank
	c.isEdit = false
	var zero K
	c.targetID = zero
	c.err = nil
	c.seq++
}

// OpenEdit opens an edit form for the record with the given id. The
// full record is loaded first so the later save can write every field
// back, not just the columns the list view happens to display.
func (c *Coordinator[T, K]) OpenEdit(ctx context.Context, id K, load func(context.Context) (T, error)) tea.Cmd {
	c.phase = PhaseLoading
	c.isEdit = true
	c.targetID = id
	c.err = nil
	c.seq++
	seq := c.seq

	return func() tea.Msg {
		record, err := load(ctx)
		if err != nil {
			return detailResult[T]{key: c.key, seq: seq, err: err}
		}
		return detailResult[T]{key: c.key, seq: seq, record: record}
	}
}

// detailResult is the internal carrier for OpenEdit's async load.
// Views pass it to HandleDetail, which converts it into the public
// DetailLoadedMsg or DetailErrorMsg.
type detailResult[T any] struct {
	key    string
	seq    uint64
	record T
	err    error
}

// HandleDetail folds an async detail-load result into the state
// machine. Returns the public message to surface, or nil if the result
// is stale or belongs to another coordinator.
func (c *Coordinator[T, K]) HandleDetail(msg tea.Msg) tea.Msg {
	res, ok := msg.(detailResult[T])
	if !ok || res.key != c.key || res.seq != c.seq {
		return nil
	}
	if c.phase != PhaseLoading {
		return nil
	}
	if res.err != nil {
		c.phase = PhaseClosed
		c.err = res.err
		return DetailErrorMsg{Key: c.key, Err: res.err}
	}
	c.phase = PhaseOpen
	c.record = res.record
	return DetailLoadedMsg{Key: c.key}
}

// SetRecord replaces the form's record (bound form fields write here).
func (c *Coordinator[T, K]) SetRecord(record T) {
	if c.phase == PhaseOpen {
		c.record = record
	}
}

// Submit saves the form's record. While the save is in flight the form
// freezes; on failure it reopens with the user's values and the error.
func (c *Coordinator[T, K]) Submit(ctx context.Context, save func(context.Context, T) error) tea.Cmd {
	if c.phase != PhaseOpen {
		return nil
	}
	c.phase = PhaseSubmitting
	c.err = nil
	c.seq++
	seq := c.seq
	record := c.record

	return func() tea.Msg {
		err := save(ctx, record)
		return submitResult{key: c.key, seq: seq, err: err}
	}
}

type submitResult struct {
	key string
	seq uint64
	err error
}

// HandleSubmit folds an async save result into the state machine.
// Returns the public message to surface, or nil for stale results.
func (c *Coordinator[T, K]) HandleSubmit(msg tea.Msg) tea.Msg {
	res, ok := msg.(submitResult)
	if !ok || res.key != c.key || res.seq != c.seq {
		return nil
	}
	if c.phase != PhaseSubmitting {
		return nil
	}
	if res.err != nil {
		// Back to the form, values untouched.
		c.phase = PhaseOpen
		c.err = res.err
		return SubmitErrorMsg{Key: c.key, Err: res.err}
	}
	c.Close()
	return SubmitDoneMsg{Key: c.key}
}

// RequestDelete opens the delete confirmation for the given row. The
// row is not touched until ConfirmDelete; dismissing leaves it intact.
func (c *Coordinator[T, K]) RequestDelete(id K) {
	c.phase = PhaseConfirmDelete
	c.targetID = id
	c.isEdit = false
	c.err = nil
	c.seq++
}

// ConfirmDelete closes the confirmation and returns the confirmed id.
// The caller applies the optimistic delete mutation; the data pool
// rolls the row back if the remote delete fails.
func (c *Coordinator[T, K]) ConfirmDelete() (K, bool) {
	if c.phase != PhaseConfirmDelete {
		var zero K
		return zero, false
	}
	id := c.targetID
	c.Close()
	return id, true
}

// Close dismisses the modal, discarding form state and invalidating
// any in-flight async results.
func (c *Coordinator[T, K]) Close() {
	c.phase = PhaseClosed
	var zeroT T
	var zeroK K
	c.record = zeroT
	c.targetID = zeroK
	c.isEdit = false
	c.err = nil
	c.seq++
}
