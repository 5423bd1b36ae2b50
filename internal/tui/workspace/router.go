package workspace

// routerEntry holds a view and the scope it was opened with.
type routerEntry struct {
	view  View
	scope Scope
}

// Router manages the navigation stack. The bottom entry is always one
// of the root screens (blogs, tasks, leads, calendar); detail views are
// pushed on top. Switching root screens replaces the whole stack.
type Router struct {
	stack []routerEntry
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{}
}

// ReplaceRoot clears the stack and installs a new root screen.
func (r *Router) ReplaceRoot(view View, scope Scope) {
	r.stack = r.stack[:0]
	r.stack = append(r.stack, routerEntry{view: view, scope: scope})
}

// Push adds a view on top of the stack.
func (r *Router) Push(view View, scope Scope) {
	r.stack = append(r.stack, routerEntry{view: view, scope: scope})
}

// Pop removes the top view and returns the one underneath.
// Returns nil if the stack has one or fewer entries (never pops the root).
func (r *Router) Pop() View {
	if len(r.stack) <= 1 {
		return nil
	}
	r.stack = r.stack[:len(r.stack)-1]
	return r.Current()
}

// Current returns the current (top) view, or nil if empty.
func (r *Router) Current() View {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1].view
}

// CurrentScope returns the scope of the current view.
func (r *Router) CurrentScope() Scope {
	if len(r.stack) == 0 {
		return Scope{}
	}
	return r.stack[len(r.stack)-1].scope
}

// Depth returns the current stack depth.
func (r *Router) Depth() int {
	return len(r.stack)
}

// CanGoBack returns true if there is a previous view to return to.
func (r *Router) CanGoBack() bool {
	return len(r.stack) > 1
}

// Breadcrumbs returns the title chain for all views in the stack.
func (r *Router) Breadcrumbs() []string {
	crumbs := make([]string, len(r.stack))
	for i, entry := range r.stack {
		crumbs[i] = entry.view.Title()
	}
	return crumbs
}
