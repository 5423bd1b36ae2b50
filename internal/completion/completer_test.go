package completion

import (
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestCompleter creates a Completer pinned to a fixed cache dir.
func newTestCompleter(cacheDir string) *Completer {
	return NewCompleter(func(cmd *cobra.Command) string { return cacheDir })
}

func newTestCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.SetContext(context.Background())
	return cmd
}

func seedCache(t *testing.T, dir string) {
	t.Helper()
	store := NewStore(dir)
	require.NoError(t, store.UpdateEmployees([]CachedEmployee{
		{ID: 1, Name: "Dana Reyes", Email: "dana@agency.test", Department: "Creative", Status: "active"},
		{ID: 2, Name: "Ada Okafor", Department: "Creative", Status: "inactive"},
		{ID: 3, Name: "Tom Barnes", Email: "tom@agency.test", Department: "Sales", Status: "active"},
	}))
	require.NoError(t, store.UpdateClients([]CachedClient{
		{ID: 10, Name: "Northwind", Company: "Northwind Traders"},
		{ID: 11, Name: "Acme", Company: "Acme Corp"},
	}))
}

func TestEmployeeCompletionEmptyCache(t *testing.T) {
	c := newTestCompleter(t.TempDir())

	completions, directive := c.EmployeeCompletion()(newTestCmd(), nil, "")
	assert.Empty(t, completions)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
}

func TestEmployeeCompletionRanksActiveFirst(t *testing.T) {
	dir := t.TempDir()
	seedCache(t, dir)
	c := newTestCompleter(dir)

	completions, _ := c.EmployeeCompletion()(newTestCmd(), nil, "")
	require.Len(t, completions, 3)
	// Active alphabetical, then inactive
	assert.Contains(t, string(completions[0]), "Dana Reyes")
	assert.Contains(t, string(completions[1]), "Tom Barnes")
	assert.Contains(t, string(completions[2]), "Ada Okafor")
}

func TestEmployeeCompletionFiltersBySubstring(t *testing.T) {
	dir := t.TempDir()
	seedCache(t, dir)
	c := newTestCompleter(dir)

	completions, _ := c.EmployeeCompletion()(newTestCmd(), nil, "barn")
	require.Len(t, completions, 1)
	assert.Contains(t, string(completions[0]), "Tom Barnes")
}

func TestEmployeeCompletionMatchesEmailPrefix(t *testing.T) {
	dir := t.TempDir()
	seedCache(t, dir)
	c := newTestCompleter(dir)

	completions, _ := c.EmployeeCompletion()(newTestCmd(), nil, "dana@")
	require.Len(t, completions, 1)
	assert.Contains(t, string(completions[0]), "Dana Reyes")
}

func TestClientCompletionSortsAndFilters(t *testing.T) {
	dir := t.TempDir()
	seedCache(t, dir)
	c := newTestCompleter(dir)

	completions, _ := c.ClientCompletion()(newTestCmd(), nil, "")
	require.Len(t, completions, 2)
	assert.Contains(t, string(completions[0]), "Acme")
	assert.Contains(t, string(completions[1]), "Northwind")

	completions, _ = c.ClientCompletion()(newTestCmd(), nil, "traders")
	require.Len(t, completions, 1)
	assert.Contains(t, string(completions[0]), "Northwind")
}

func TestDefaultCacheDirFuncPrefersFlag(t *testing.T) {
	root := &cobra.Command{Use: "agencydesk"}
	root.PersistentFlags().String("cache-dir", "", "")
	child := &cobra.Command{Use: "child"}
	root.AddCommand(child)
	child.SetContext(context.Background())

	require.NoError(t, root.PersistentFlags().Set("cache-dir", "/tmp/custom"))
	assert.Equal(t, "/tmp/custom", DefaultCacheDirFunc(child))
}

func TestDefaultCacheDirFuncEnvFallback(t *testing.T) {
	t.Setenv("AGENCYDESK_CACHE_DIR", "/tmp/from-env")
	cmd := newTestCmd()
	assert.Equal(t, "/tmp/from-env", DefaultCacheDirFunc(cmd))
}
