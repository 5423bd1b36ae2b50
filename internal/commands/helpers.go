// Package commands implements the CLI commands.
package commands

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agencydesk/agencydesk/internal/api"
	"github.com/agencydesk/agencydesk/internal/appctx"
	"github.com/agencydesk/agencydesk/internal/completion"
	"github.com/agencydesk/agencydesk/internal/models"
	"github.com/agencydesk/agencydesk/internal/output"
	"github.com/agencydesk/agencydesk/internal/presenter"
	"github.com/agencydesk/agencydesk/internal/tui"
)

// completer backs shell completion for employee and client arguments.
// It reads the file cache only and never touches the network.
var completer = completion.NewCompleter(nil)

// warmEmployeeCompletions writes fetched directory data through to the
// completion cache. Best-effort, failures are dropped.
func warmEmployeeCompletions(app *appctx.App, employees []models.Employee) {
	cached := make([]completion.CachedEmployee, len(employees))
	for i, e := range employees {
		cached[i] = completion.CachedEmployee{
			ID:         e.ID,
			Name:       e.Name,
			Email:      e.Email,
			Department: e.Department,
			Status:     e.Status,
		}
	}
	_ = completion.NewStore(app.Config.CacheDir).UpdateEmployees(cached)
}

// warmClientCompletions writes fetched roster data through to the
// completion cache.
func warmClientCompletions(app *appctx.App, clients []models.Client) {
	cached := make([]completion.CachedClient, len(clients))
	for i, c := range clients {
		cached[i] = completion.CachedClient{
			ID:      c.ID,
			Name:    c.Name,
			Company: c.Company,
		}
	}
	_ = completion.NewStore(app.Config.CacheDir).UpdateClients(cached)
}

// appFrom pulls the app container out of the command context.
func appFrom(cmd *cobra.Command) (*appctx.App, error) {
	app := appctx.FromContext(cmd.Context())
	if app == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return app, nil
}

// parseID parses a positional record id argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, output.ErrUsage(fmt.Sprintf("Invalid ID: %q", arg))
	}
	return id, nil
}

// asMap converts a typed record into the generic map the presenter
// consumes, going through its JSON tags.
func asMap(v any) map[string]any {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m
}

// asMaps converts a slice of typed records for the presenter.
func asMaps[T any](items []T) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m := asMap(item); m != nil {
			out = append(out, m)
		}
	}
	return out
}

// present renders data for a human terminal when possible, falling back
// to the envelope writer for machine modes and pipes.
func present(app *appctx.App, data any, entity string, markdown bool, opts ...output.ResponseOption) error {
	if markdown {
		if presenter.Present(os.Stdout, data, entity, presenter.ModeMarkdown) {
			return nil
		}
	} else if app.IsInteractive() && !app.Flags.Stats {
		if presenter.Present(os.Stdout, data, entity, presenter.ModeStyled) {
			return nil
		}
	}
	return app.OK(data, opts...)
}

// listOptions assembles gateway list options from the shared list flags.
type listFlags struct {
	Page    int
	PerPage int
	Search  string
	Status  string
	Saved   string
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.Page, "page", 0, "Page number")
	cmd.Flags().IntVar(&f.PerPage, "per-page", 0, "Items per page")
	cmd.Flags().StringVar(&f.Search, "search", "", "Free-text search")
	cmd.Flags().StringVar(&f.Status, "status", "", "Filter by status")
	cmd.Flags().StringVar(&f.Saved, "saved", "", "Apply a saved filter by name")
}

// options resolves the flags into gateway options, loading the saved
// filter first so explicit flags win over it.
func (f *listFlags) options(app *appctx.App, resource string) (api.ListOptions, error) {
	opts := api.ListOptions{
		Page:    f.Page,
		PerPage: f.PerPage,
		Search:  f.Search,
		Filters: url.Values{},
	}
	if opts.PerPage == 0 && app.Config.PerPage > 0 {
		opts.PerPage = app.Config.PerPage
	}

	if f.Saved != "" {
		saved, ok := app.FilterStore().Get(resource, f.Saved)
		if !ok {
			return opts, output.ErrNotFoundHint("Saved filter", f.Saved,
				fmt.Sprintf("List saved filters with: agencydesk filters list --resource %s", resource))
		}
		for k, v := range saved.Filter {
			opts.Filters.Set(k, v)
		}
		if opts.Search == "" {
			opts.Search = saved.Search
		}
	}

	if f.Status != "" {
		opts.Filters.Set("status", f.Status)
	}
	return opts, nil
}

// confirmDelete prompts before a destructive action. Non-interactive
// invocations must pass --force instead.
func confirmDelete(app *appctx.App, prompt string) (bool, error) {
	if !app.IsInteractive() {
		return false, output.ErrUsageHint("Confirmation required", "Pass --force to skip the prompt")
	}
	return tui.ConfirmDangerous(prompt)
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
