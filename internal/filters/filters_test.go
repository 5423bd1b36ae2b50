package filters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutAndGet(t *testing.T) {
	s := NewStore(t.TempDir())

	require.NoError(t, s.Put(Saved{
		Name:     "hot",
		Resource: "leads",
		Filter:   map[string]string{"status": "qualified"},
	}))

	f, ok := s.Get("leads", "hot")
	require.True(t, ok)
	assert.Equal(t, "qualified", f.Filter["status"])

	_, ok = s.Get("tasks", "hot")
	assert.False(t, ok, "filters are scoped per resource")
}

func TestPutRequiresNameAndResource(t *testing.T) {
	s := NewStore(t.TempDir())
	assert.Error(t, s.Put(Saved{Name: "hot"}))
	assert.Error(t, s.Put(Saved{Resource: "leads"}))
}

func TestPersistsAcrossStores(t *testing.T) {
	dir := t.TempDir()

	s := NewStore(dir)
	require.NoError(t, s.Put(Saved{Name: "overdue", Resource: "tasks", Filter: map[string]string{"status": "in_progress"}, Search: "report"}))

	reopened := NewStore(dir)
	f, ok := reopened.Get("tasks", "overdue")
	require.True(t, ok)
	assert.Equal(t, "in_progress", f.Filter["status"])
	assert.Equal(t, "report", f.Search)
}

func TestListSortedAndScoped(t *testing.T) {
	s := NewStore(t.TempDir())
	require.NoError(t, s.Put(Saved{Name: "b", Resource: "leads"}))
	require.NoError(t, s.Put(Saved{Name: "a", Resource: "leads"}))
	require.NoError(t, s.Put(Saved{Name: "z", Resource: "tasks"}))

	all := s.List("")
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].Name)
	assert.Equal(t, "b", all[1].Name)
	assert.Equal(t, "tasks", all[2].Resource)

	leads := s.List("leads")
	require.Len(t, leads, 2)
}

func TestRemove(t *testing.T) {
	s := NewStore(t.TempDir())
	require.NoError(t, s.Put(Saved{Name: "hot", Resource: "leads"}))
	require.NoError(t, s.Remove("leads", "hot"))

	_, ok := s.Get("leads", "hot")
	assert.False(t, ok)

	assert.NoError(t, s.Remove("leads", "never-existed"))
}

func TestCorruptFileTreatedAsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "filters.yml"), []byte(":{not yaml"), 0o600))

	s := NewStore(dir)
	assert.Empty(t, s.List(""))
}
