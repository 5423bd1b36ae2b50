package data

import (
	"context"
	"fmt"
	"time"

	"github.com/agencydesk/agencydesk/internal/api"
	"github.com/agencydesk/agencydesk/internal/calendar"
	"github.com/agencydesk/agencydesk/internal/models"
)

// Resource prefixes for pool keys and invalidation. A pool key is
// "<resource>:<kind>:<params>", so InvalidateResource(ResourceBlogs)
// reaches every cached page, filter variant, and detail record of the
// blog-posts resource.
const (
	ResourceBlogs     = "blog-posts"
	ResourcePlans     = "marketing-plans"
	ResourceEmployees = "employees"
	ResourceTasks     = "tasks"
	ResourceLeads     = "leads"
	ResourceClients   = "clients"
	ResourceCalendar  = "social-calendar"
)

// Default pool timing: lists revalidate after 30s and serve stale for
// five minutes while a refresh is in flight.
var listConfig = PoolConfig{
	FreshTTL: 30 * time.Second,
	StaleTTL: 5 * time.Minute,
}

var detailConfig = PoolConfig{
	FreshTTL: 60 * time.Second,
	StaleTTL: 5 * time.Minute,
}

// Hub is the central data coordinator providing typed, realm-scoped
// pool access over the API gateway.
//
// Hub manages two realm tiers:
//   - Global: app lifetime
//   - Session: active account session (every resource pool)
//
// Session pools are torn down on SwitchAccount and global pools on
// Shutdown. Mutating pools invalidate their whole resource prefix after
// a successful remote apply, so sibling pages and detail records
// revalidate on their next read instead of being eagerly re-fetched.
type Hub struct {
	client *api.Client

	global    *Realm
	session   *Realm
	accountID string
}

// NewHub creates a Hub with a global realm over the given API client.
func NewHub(client *api.Client) *Hub {
	return &Hub{
		client: client,
		global: NewRealm("global", context.Background()),
	}
}

// Global returns the app-lifetime realm.
func (h *Hub) Global() *Realm { return h.global }

// Session returns the active session realm, creating one if needed.
func (h *Hub) Session() *Realm {
	if h.session == nil {
		h.session = NewRealm("session", h.global.Context())
	}
	return h.session
}

// SwitchAccount tears down the session realm and creates a fresh one.
// In-flight fetches for the old account are canceled and their results
// discarded.
func (h *Hub) SwitchAccount(accountID string) {
	if h.session != nil {
		h.session.Teardown()
	}
	h.accountID = accountID
	h.session = NewRealm("session:"+accountID, h.global.Context())
}

// Shutdown tears down all realms. Call on program exit.
func (h *Hub) Shutdown() {
	if h.session != nil {
		h.session.Teardown()
		h.session = nil
	}
	h.global.Teardown()
}

// SessionContext returns the session realm's context. Views pass this
// to pool Fetch calls so SwitchAccount cancels in-flight fetches.
func (h *Hub) SessionContext() context.Context {
	return h.Session().Context()
}

// InvalidateResource marks every session pool of the resource as stale.
func (h *Hub) InvalidateResource(resource string) {
	h.Session().InvalidatePrefix(resource + ":")
}

// -- Typed pool accessors

func listKey(resource string, opts api.ListOptions) string {
	return resource + ":list:" + opts.CacheKey()
}

func detailKey(resource string, id int64) string {
	return fmt.Sprintf("%s:detail:%d", resource, id)
}

// BlogPages returns a session-scoped mutating pool for one page of blog
// posts under the given query.
func (h *Hub) BlogPages(opts api.ListOptions) *MutatingPool[api.Page[models.BlogPost]] {
	realm := h.Session()
	key := listKey(ResourceBlogs, opts)
	mp := RealmPool(realm, key, func() *MutatingPool[api.Page[models.BlogPost]] {
		return NewMutatingPool(key, listConfig, func(ctx context.Context) (api.Page[models.BlogPost], error) {
			return h.client.Blogs().List(ctx, opts)
		})
	})
	mp.OnApplied(func() { h.InvalidateResource(ResourceBlogs) })
	return mp
}

// BlogDetail returns a session-scoped pool for one blog post with its
// full generated content. Detail records of a resource share one keyed
// pool registered under the resource's detail prefix, so realm teardown
// and prefix invalidation reach every cached record through it.
func (h *Hub) BlogDetail(id int64) *Pool[models.BlogPost] {
	realm := h.Session()
	kp := RealmPool(realm, ResourceBlogs+":detail", func() *KeyedPool[int64, models.BlogPost] {
		return NewKeyedPool(func(id int64) *Pool[models.BlogPost] {
			return NewPool(detailKey(ResourceBlogs, id), detailConfig, func(ctx context.Context) (models.BlogPost, error) {
				return h.client.Blogs().Get(ctx, id)
			})
		})
	})
	return kp.Get(id)
}

// PlanPages returns a session-scoped mutating pool for one page of
// marketing plans under the given query.
func (h *Hub) PlanPages(opts api.ListOptions) *MutatingPool[api.Page[models.MarketingPlan]] {
	realm := h.Session()
	key := listKey(ResourcePlans, opts)
	mp := RealmPool(realm, key, func() *MutatingPool[api.Page[models.MarketingPlan]] {
		return NewMutatingPool(key, listConfig, func(ctx context.Context) (api.Page[models.MarketingPlan], error) {
			return h.client.Plans().List(ctx, opts)
		})
	})
	mp.OnApplied(func() { h.InvalidateResource(ResourcePlans) })
	return mp
}

// PlanDetail returns a session-scoped pool for one marketing plan,
// keyed the same way as BlogDetail.
func (h *Hub) PlanDetail(id int64) *Pool[models.MarketingPlan] {
	realm := h.Session()
	kp := RealmPool(realm, ResourcePlans+":detail", func() *KeyedPool[int64, models.MarketingPlan] {
		return NewKeyedPool(func(id int64) *Pool[models.MarketingPlan] {
			return NewPool(detailKey(ResourcePlans, id), detailConfig, func(ctx context.Context) (models.MarketingPlan, error) {
				return h.client.Plans().Get(ctx, id)
			})
		})
	})
	return kp.Get(id)
}

// Employees returns a session-scoped mutating pool of all employees.
// The backend returns the full roster; pagination is sliced client-side
// by the list controller.
func (h *Hub) Employees() *MutatingPool[[]models.Employee] {
	realm := h.Session()
	key := ResourceEmployees + ":list:"
	mp := RealmPool(realm, key, func() *MutatingPool[[]models.Employee] {
		return NewMutatingPool(key, listConfig, func(ctx context.Context) ([]models.Employee, error) {
			return h.client.Employees().List(ctx)
		})
	})
	mp.OnApplied(func() { h.InvalidateResource(ResourceEmployees) })
	return mp
}

// TaskPages returns a session-scoped mutating pool for one page of
// tasks under the given query.
func (h *Hub) TaskPages(opts api.ListOptions) *MutatingPool[api.Page[models.Task]] {
	realm := h.Session()
	key := listKey(ResourceTasks, opts)
	mp := RealmPool(realm, key, func() *MutatingPool[api.Page[models.Task]] {
		return NewMutatingPool(key, listConfig, func(ctx context.Context) (api.Page[models.Task], error) {
			return h.client.Tasks().List(ctx, opts)
		})
	})
	mp.OnApplied(func() { h.InvalidateResource(ResourceTasks) })
	return mp
}

// LeadPages returns a session-scoped mutating pool for one page of
// leads under the given query.
func (h *Hub) LeadPages(opts api.ListOptions) *MutatingPool[api.Page[models.Lead]] {
	realm := h.Session()
	key := listKey(ResourceLeads, opts)
	mp := RealmPool(realm, key, func() *MutatingPool[api.Page[models.Lead]] {
		return NewMutatingPool(key, listConfig, func(ctx context.Context) (api.Page[models.Lead], error) {
			return h.client.Leads().List(ctx, opts)
		})
	})
	mp.OnApplied(func() { h.InvalidateResource(ResourceLeads) })
	return mp
}

// Clients returns a session-scoped pool of all agency clients.
func (h *Hub) Clients() *Pool[[]models.Client] {
	realm := h.Session()
	key := ResourceClients + ":list:"
	return RealmPool(realm, key, func() *Pool[[]models.Client] {
		return NewPool(key, listConfig, func(ctx context.Context) ([]models.Client, error) {
			return h.client.Clients().List(ctx)
		})
	})
}

// Calendar returns the session-scoped mutating pool holding the whole
// content calendar. The wire format has no entry ids, so each fetch
// re-keys the document against the previous snapshot: unchanged rows
// keep their ids and an open edit form stays on target across
// revalidation.
func (h *Hub) Calendar() *MutatingPool[[]models.CalendarEntry] {
	realm := h.Session()
	key := ResourceCalendar + ":doc:"
	mp := RealmPool(realm, key, func() *MutatingPool[[]models.CalendarEntry] {
		var p *MutatingPool[[]models.CalendarEntry]
		p = NewMutatingPool(key, listConfig, func(ctx context.Context) ([]models.CalendarEntry, error) {
			entries, err := h.client.Calendar().Get(ctx)
			if err != nil {
				return nil, err
			}
			return calendar.CarryIDs(p.Get().Data, entries), nil
		})
		return p
	})
	mp.OnApplied(func() { h.InvalidateResource(ResourceCalendar) })
	return mp
}

// Client exposes the underlying API gateway for operations that bypass
// pooling (create forms, detail round-trip edits).
func (h *Hub) Client() *api.Client { return h.client }
