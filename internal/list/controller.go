// Package list implements the shared list-view controller: pagination
// math, filter state, and row selection, decoupled from both rendering
// and fetching. Server-driven resources feed it one page at a time with
// backend metadata; roster-style resources hand it the full slice and
// let it paginate client-side. Either way views read the same surface:
// Rows, Page, TotalPages, SelectedIDs.
package list

import (
	"net/url"

	"github.com/agencydesk/agencydesk/internal/api"
)

// Mode selects where pagination happens.
type Mode int

const (
	// ModeServer: the backend paginates. Rows hold only the current
	// page and the total count comes from response metadata.
	ModeServer Mode = iota
	// ModeClient: the backend returns everything. The controller
	// filters and slices pages locally.
	ModeClient
)

// MatchFunc reports whether a row matches the current search text and
// filter values. Only used in ModeClient; server mode pushes filters to
// the backend.
type MatchFunc[T any] func(row T, search string, filters url.Values) bool

// Controller holds the list-view state for one resource screen.
// K is the row identity type (int64 for records, string for calendar
// entries).
type Controller[T any, K comparable] struct {
	mode    Mode
	idFn    func(T) K
	matchFn MatchFunc[T]

	page    int
	perPage int
	search  string
	filters url.Values

	rows  []T // server: current page; client: all rows
	count int // server: backend total; client: len(filtered)

	selected   map[K]bool
	loadedOnce bool
}

// NewServer creates a controller for a backend-paginated resource.
func NewServer[T any, K comparable](idFn func(T) K, perPage int) *Controller[T, K] {
	return newController(ModeServer, idFn, nil, perPage)
}

// NewClient creates a controller that paginates and filters locally.
func NewClient[T any, K comparable](idFn func(T) K, matchFn MatchFunc[T], perPage int) *Controller[T, K] {
	return newController(ModeClient, idFn, matchFn, perPage)
}

func newController[T any, K comparable](mode Mode, idFn func(T) K, matchFn MatchFunc[T], perPage int) *Controller[T, K] {
	if perPage < 1 {
		perPage = 1
	}
	return &Controller[T, K]{
		mode:     mode,
		idFn:     idFn,
		matchFn:  matchFn,
		page:     1,
		perPage:  perPage,
		filters:  url.Values{},
		selected: make(map[K]bool),
	}
}

// Mode returns the controller's pagination mode.
func (c *Controller[T, K]) Mode() Mode { return c.mode }

// Loaded reports whether data has arrived at least once. Views use this
// to distinguish the first load (full-screen spinner) from a background
// refresh (keep rows on screen).
func (c *Controller[T, K]) Loaded() bool { return c.loadedOnce }

// -- Data intake

// SetRemotePage installs one page of server-paginated rows. If the
// backend reports fewer pages than the current page number (the last
// row of the last page was just deleted), the page is clamped and the
// caller should re-fetch with Options().
func (c *Controller[T, K]) SetRemotePage(rows []T, meta api.PageMeta) {
	c.rows = rows
	c.count = meta.Count
	c.loadedOnce = true
	c.clampPage()
	c.pruneSelection()
}

// SetAll installs the full row set for client-side pagination.
func (c *Controller[T, K]) SetAll(rows []T) {
	c.rows = rows
	c.loadedOnce = true
	c.count = len(c.filteredRows())
	c.clampPage()
	c.pruneSelection()
}

// -- Pagination

// Page returns the current 1-based page number.
func (c *Controller[T, K]) Page() int { return c.page }

// PerPage returns the page size.
func (c *Controller[T, K]) PerPage() int { return c.perPage }

// Count returns the total number of rows in the filtered set.
func (c *Controller[T, K]) Count() int { return c.count }

// TotalPages returns the number of pages. An empty result set still
// has one page so the pager always renders "1 of 1".
func (c *Controller[T, K]) TotalPages() int {
	pages := (c.count + c.perPage - 1) / c.perPage
	if pages < 1 {
		return 1
	}
	return pages
}

// HasNext reports whether a later page exists.
func (c *Controller[T, K]) HasNext() bool { return c.page < c.TotalPages() }

// HasPrevious reports whether an earlier page exists.
func (c *Controller[T, K]) HasPrevious() bool { return c.page > 1 }

// SetPage moves to the given page, clamped to [1, TotalPages].
// Returns true if the page actually changed.
func (c *Controller[T, K]) SetPage(page int) bool {
	if page < 1 {
		page = 1
	}
	if max := c.TotalPages(); page > max {
		page = max
	}
	if page == c.page {
		return false
	}
	c.page = page
	return true
}

// NextPage advances one page if possible.
func (c *Controller[T, K]) NextPage() bool { return c.SetPage(c.page + 1) }

// PrevPage steps back one page if possible.
func (c *Controller[T, K]) PrevPage() bool { return c.SetPage(c.page - 1) }

func (c *Controller[T, K]) clampPage() {
	if max := c.TotalPages(); c.page > max {
		c.page = max
	}
	if c.page < 1 {
		c.page = 1
	}
}

// -- Filters

// Search returns the current search text.
func (c *Controller[T, K]) Search() string { return c.search }

// Filters returns the current filter values.
func (c *Controller[T, K]) Filters() url.Values { return c.filters }

// SetSearch updates the search text. Any change resets to page 1 and
// drops the selection: the previous selection belonged to a result set
// that no longer exists.
func (c *Controller[T, K]) SetSearch(search string) {
	if search == c.search {
		return
	}
	c.search = search
	c.resetForNewQuery()
}

// SetFilter updates one filter key. An empty value removes the key
// entirely: absent means "no constraint", never "match nothing".
// Any change resets to page 1 and drops the selection.
func (c *Controller[T, K]) SetFilter(key, value string) {
	current := c.filters.Get(key)
	if value == current {
		return
	}
	if value == "" {
		c.filters.Del(key)
	} else {
		c.filters.Set(key, value)
	}
	c.resetForNewQuery()
}

// ClearFilters removes every filter and the search text.
func (c *Controller[T, K]) ClearFilters() {
	if len(c.filters) == 0 && c.search == "" {
		return
	}
	c.filters = url.Values{}
	c.search = ""
	c.resetForNewQuery()
}

func (c *Controller[T, K]) resetForNewQuery() {
	c.page = 1
	c.selected = make(map[K]bool)
	if c.mode == ModeClient {
		c.count = len(c.filteredRows())
		c.clampPage()
	}
}

// Options renders the controller's query state as gateway list options.
// Only meaningful in ModeServer.
func (c *Controller[T, K]) Options() api.ListOptions {
	filters := url.Values{}
	for k, vs := range c.filters {
		for _, v := range vs {
			filters.Add(k, v)
		}
	}
	return api.ListOptions{
		Page:    c.page,
		PerPage: c.perPage,
		Search:  c.search,
		Filters: filters,
	}
}

// -- Rows

// Rows returns the rows visible on the current page.
func (c *Controller[T, K]) Rows() []T {
	if c.mode == ModeServer {
		return c.rows
	}
	filtered := c.filteredRows()
	start := (c.page - 1) * c.perPage
	if start >= len(filtered) {
		return nil
	}
	end := start + c.perPage
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}

func (c *Controller[T, K]) filteredRows() []T {
	if c.mode == ModeServer {
		return c.rows
	}
	if c.search == "" && len(c.filters) == 0 {
		return c.rows
	}
	var out []T
	for _, row := range c.rows {
		if c.matchFn == nil || c.matchFn(row, c.search, c.filters) {
			out = append(out, row)
		}
	}
	return out
}

// -- Selection

// ToggleSelect flips one row's selection state.
func (c *Controller[T, K]) ToggleSelect(id K) {
	if c.selected[id] {
		delete(c.selected, id)
	} else {
		c.selected[id] = true
	}
}

// IsSelected reports whether a row is selected.
func (c *Controller[T, K]) IsSelected(id K) bool { return c.selected[id] }

// SelectAll selects every row in the filtered set. In server mode that
// is the current page (the only filtered rows the client holds); in
// client mode it spans all pages of the filtered set but never rows the
// filter excludes.
func (c *Controller[T, K]) SelectAll() {
	for _, row := range c.filteredRows() {
		c.selected[c.idFn(row)] = true
	}
}

// ClearSelection drops all selected rows.
func (c *Controller[T, K]) ClearSelection() {
	c.selected = make(map[K]bool)
}

// SelectedIDs returns the selected row ids in row order, skipping ids
// no longer present in the filtered set.
func (c *Controller[T, K]) SelectedIDs() []K {
	var out []K
	for _, row := range c.filteredRows() {
		if id := c.idFn(row); c.selected[id] {
			out = append(out, id)
		}
	}
	return out
}

// SelectedCount returns the number of selected rows.
func (c *Controller[T, K]) SelectedCount() int { return len(c.selected) }

// pruneSelection drops selected ids that vanished from the data, so a
// deleted or filtered-out row can never linger in a bulk action.
func (c *Controller[T, K]) pruneSelection() {
	if len(c.selected) == 0 {
		return
	}
	present := make(map[K]bool, len(c.rows))
	for _, row := range c.rows {
		present[c.idFn(row)] = true
	}
	for id := range c.selected {
		if !present[id] {
			delete(c.selected, id)
		}
	}
}
