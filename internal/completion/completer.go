package completion

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agencydesk/agencydesk/internal/appctx"
)

// CacheDirFunc returns the cache directory to use for completion.
// Takes the command so both context and flags can be checked at
// completion time.
type CacheDirFunc func(cmd *cobra.Command) string

// DefaultCacheDirFunc returns the cache directory by checking, in
// order: the --cache-dir flag on the root command, the app config from
// context, the AGENCYDESK_CACHE_DIR environment variable, and finally
// the default location.
//
// During __complete the PersistentPreRunE does not run, so config
// files are not loaded and cache_dir set there is not honored. Loading
// config files would add latency that defeats fast completions; users
// who set cache_dir in config should also set AGENCYDESK_CACHE_DIR.
func DefaultCacheDirFunc(cmd *cobra.Command) string {
	if root := cmd.Root(); root != nil {
		if flag := root.PersistentFlags().Lookup("cache-dir"); flag != nil && flag.Changed {
			return flag.Value.String()
		}
	}
	if app := appctx.FromContext(cmd.Context()); app != nil {
		return app.Config.CacheDir
	}
	if v := os.Getenv("AGENCYDESK_CACHE_DIR"); v != "" {
		return v
	}
	return ""
}

// Completer provides tab completion functions backed by the file cache.
// It never initializes the full app or touches the network.
type Completer struct {
	getCacheDir CacheDirFunc
}

// NewCompleter creates a new Completer. If getCacheDir is nil,
// DefaultCacheDirFunc is used.
func NewCompleter(getCacheDir CacheDirFunc) *Completer {
	if getCacheDir == nil {
		getCacheDir = DefaultCacheDirFunc
	}
	return &Completer{getCacheDir: getCacheDir}
}

// store resolves the cache dir at call time.
func (c *Completer) store(cmd *cobra.Command) *Store {
	return NewStore(c.getCacheDir(cmd))
}

// EmployeeCompletion completes employee arguments and flags with names.
// Active employees rank before inactive ones.
func (c *Completer) EmployeeCompletion() cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
		employees := c.store(cmd).Employees()
		if len(employees) == 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		ranked := rankEmployees(employees)
		toCompleteLower := strings.ToLower(toComplete)
		var completions []cobra.Completion
		for _, e := range ranked {
			nameLower := strings.ToLower(e.Name)
			emailLower := strings.ToLower(e.Email)
			if strings.Contains(nameLower, toCompleteLower) ||
				strings.HasPrefix(emailLower, toCompleteLower) {
				desc := e.Department
				if e.Email != "" {
					desc = fmt.Sprintf("%s <%s>", e.Department, e.Email)
				}
				completions = append(completions, cobra.CompletionWithDesc(e.Name, desc))
			}
		}

		return completions, cobra.ShellCompDirectiveNoFileComp
	}
}

// ClientCompletion completes client arguments and flags with names.
func (c *Completer) ClientCompletion() cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
		clients := c.store(cmd).Clients()
		if len(clients) == 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		sorted := make([]CachedClient, len(clients))
		copy(sorted, clients)
		sort.Slice(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
		})

		toCompleteLower := strings.ToLower(toComplete)
		var completions []cobra.Completion
		for _, cl := range sorted {
			nameLower := strings.ToLower(cl.Name)
			companyLower := strings.ToLower(cl.Company)
			if strings.Contains(nameLower, toCompleteLower) ||
				strings.Contains(companyLower, toCompleteLower) {
				completions = append(completions, cobra.CompletionWithDesc(cl.Name, cl.Company))
			}
		}

		return completions, cobra.ShellCompDirectiveNoFileComp
	}
}

// rankEmployees sorts the directory for display: active employees
// first, then alphabetical within each group.
func rankEmployees(employees []CachedEmployee) []CachedEmployee {
	ranked := make([]CachedEmployee, len(employees))
	copy(ranked, employees)

	sort.Slice(ranked, func(i, j int) bool {
		iActive := ranked[i].Status != "inactive"
		jActive := ranked[j].Status != "inactive"
		if iActive != jActive {
			return iActive
		}
		return strings.ToLower(ranked[i].Name) < strings.ToLower(ranked[j].Name)
	})

	return ranked
}
