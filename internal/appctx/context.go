// Package appctx holds the shared application container every command
// runs against.
package appctx

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/agencydesk/agencydesk/internal/api"
	"github.com/agencydesk/agencydesk/internal/auth"
	"github.com/agencydesk/agencydesk/internal/config"
	"github.com/agencydesk/agencydesk/internal/filters"
	"github.com/agencydesk/agencydesk/internal/names"
	"github.com/agencydesk/agencydesk/internal/observability"
	"github.com/agencydesk/agencydesk/internal/output"
	"github.com/agencydesk/agencydesk/internal/resilience"
)

type contextKey string

const appKey contextKey = "app"

// App wires config, auth, the API client and output together for the
// lifetime of one invocation.
type App struct {
	Config *config.Config
	Auth   *auth.Manager
	API    *api.Client
	Names  *names.Resolver
	Output *output.Writer

	Collector *observability.Collector
	Hooks     *observability.CLIHooks

	Flags GlobalFlags
}

// GlobalFlags holds values for the persistent CLI flags.
type GlobalFlags struct {
	JSON    bool
	Quiet   bool
	IDsOnly bool
	Count   bool

	Account  string
	BaseURL  string
	CacheDir string

	Verbose int // 0=off, 1=requests, 2=requests+outcomes (-v stacks)
	Stats   bool
}

// NewApp builds the container from loaded configuration. The gate and
// hooks are installed on the API client here so every command shares
// the same breaker state and metrics.
func NewApp(cfg *config.Config) *App {
	authMgr := auth.NewManager(cfg.BaseURL, cfg.CacheDir)

	collector := observability.NewCollector()
	hooks := observability.NewCLIHooks(0, collector, observability.NewTraceWriter(os.Stderr))

	client := api.NewClient(cfg, authMgr)
	client.SetHooks(hooks)
	client.SetGate(resilience.NewGate("", resilience.Config{}))

	format := output.FormatAuto
	switch cfg.Format {
	case "json":
		format = output.FormatJSON
	case "quiet":
		format = output.FormatQuiet
	case "table":
		format = output.FormatTable
	}

	return &App{
		Config:    cfg,
		Auth:      authMgr,
		API:       client,
		Names:     names.NewResolver(client),
		Collector: collector,
		Hooks:     hooks,
		Output: output.New(output.Options{
			Format: format,
			Writer: os.Stdout,
		}),
	}
}

// FilterStore opens the saved-filter store next to the global config.
func (a *App) FilterStore() *filters.Store {
	return filters.NewStore(filepath.Dir(config.GlobalPath()))
}

// ApplyFlags applies parsed global flag values. Specific output modes
// win over general ones.
func (a *App) ApplyFlags() {
	switch {
	case a.Flags.IDsOnly:
		a.Output = output.New(output.Options{Format: output.FormatIDs, Writer: os.Stdout})
	case a.Flags.Count:
		a.Output = output.New(output.Options{Format: output.FormatCount, Writer: os.Stdout})
	case a.Flags.Quiet:
		a.Output = output.New(output.Options{Format: output.FormatQuiet, Writer: os.Stdout})
	case a.Flags.JSON:
		a.Output = output.New(output.Options{Format: output.FormatJSON, Writer: os.Stdout})
	}

	level := a.Flags.Verbose
	if debug := os.Getenv("AGENCYDESK_DEBUG"); debug != "" {
		if n, err := strconv.Atoi(debug); err == nil {
			if n > level {
				level = n
			}
		} else if debug == "true" {
			level = 2
		}
	}
	if a.Hooks != nil {
		a.Hooks.SetLevel(level)
	}
}

// OK writes a success response, attaching session stats when --stats
// is set.
func (a *App) OK(data any, opts ...output.ResponseOption) error {
	if a.Flags.Stats && a.Collector != nil {
		opts = append(opts, output.WithMeta("stats", a.Collector.Snapshot()))
	}
	return a.Output.OK(data, opts...)
}

// Err writes an error response, printing stats to stderr when --stats
// is set and the output mode is meant for humans.
func (a *App) Err(err error) error {
	if outputErr := a.Output.Err(err); outputErr != nil {
		return outputErr
	}
	if a.Flags.Stats && a.Collector != nil && !a.isMachineOutput() {
		a.printStatsToStderr(a.Collector.Snapshot())
	}
	return nil
}

func (a *App) isMachineOutput() bool {
	if a.Flags.Quiet || a.Flags.IDsOnly || a.Flags.Count {
		return true
	}
	return a.Config != nil && a.Config.Format == "quiet"
}

func (a *App) printStatsToStderr(m observability.SessionMetrics) {
	var parts []string

	elapsed := time.Since(m.StartTime)
	if elapsed < time.Second {
		parts = append(parts, fmt.Sprintf("%dms", elapsed.Milliseconds()))
	} else {
		parts = append(parts, fmt.Sprintf("%.1fs", elapsed.Seconds()))
	}

	if m.TotalRequests == 1 {
		parts = append(parts, "1 request")
	} else if m.TotalRequests > 1 {
		parts = append(parts, fmt.Sprintf("%d requests", m.TotalRequests))
	}
	if m.CacheHits > 0 {
		rate := float64(m.CacheHits) / float64(m.TotalRequests) * 100
		parts = append(parts, fmt.Sprintf("%d cached (%.0f%%)", m.CacheHits, rate))
	}
	if m.Retries == 1 {
		parts = append(parts, "1 retry")
	} else if m.Retries > 1 {
		parts = append(parts, fmt.Sprintf("%d retries", m.Retries))
	}
	if m.Failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", m.Failed))
	}

	fmt.Fprintf(os.Stderr, "\nStats: %s\n", strings.Join(parts, " | "))
}

// IsInteractive reports whether the workspace TUI can run.
func (a *App) IsInteractive() bool {
	if a.Flags.JSON || a.Flags.Quiet || a.Flags.IDsOnly || a.Flags.Count {
		return false
	}
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// WithApp stores the app in the context.
func WithApp(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, appKey, app)
}

// FromContext retrieves the app from the context, or nil.
func FromContext(ctx context.Context) *App {
	app, _ := ctx.Value(appKey).(*App)
	return app
}
