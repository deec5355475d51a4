package datastore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *DataStore {
	t.Helper()
	ds, err := NewWithConfig(&Config{
		FilePath:         filepath.Join(t.TempDir(), "datastore.json"),
		AutoSaveInterval: 0, // no background goroutine in tests
		BackupCount:      0,
	})
	require.NoError(t, err)
	t.Cleanup(func() { ds.Close() })
	return ds
}

func TestSetGetDelete(t *testing.T) {
	ds := newTestStore(t)

	ds.Set("guild1", map[string]any{"hello": "world"})
	v, ok := ds.Get("guild1")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"hello": "world"}, v)

	ds.Delete("guild1")
	_, ok = ds.Get("guild1")
	assert.False(t, ok)
}

func TestKeysSorted(t *testing.T) {
	ds := newTestStore(t)
	ds.Set("b", 1)
	ds.Set("a", 2)
	ds.Set("c", 3)
	assert.Equal(t, []string{"a", "b", "c"}, ds.Keys())
}

func TestPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "datastore.json")

	ds, err := NewWithConfig(&Config{FilePath: path})
	require.NoError(t, err)
	ds.Set("key", "value")
	require.NoError(t, ds.Close())

	reloaded, err := NewWithConfig(&Config{FilePath: path})
	require.NoError(t, err)
	defer reloaded.Close()

	v, ok := reloaded.Get("key")
	require.True(t, ok)
	assert.Equal(t, "value", v)
}

func TestCorruptFileResets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "datastore.json")
	require.NoError(t, os.WriteFile(path, []byte("not json at all"), 0o644))

	ds, err := NewWithConfig(&Config{FilePath: path})
	require.NoError(t, err, "a corrupt file must not block startup")
	defer ds.Close()

	assert.Empty(t, ds.Keys())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "{}", string(data))
}

func TestSaveSkipsUnchangedData(t *testing.T) {
	ds := newTestStore(t)
	ds.Set("k", "v")
	require.NoError(t, ds.Save())

	info1, err := os.Stat(ds.FilePath())
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, ds.Save())

	info2, err := os.Stat(ds.FilePath())
	require.NoError(t, err)
	assert.Equal(t, info1.ModTime(), info2.ModTime(), "identical data must not rewrite the file")
}

func TestBackupRotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "datastore.json")
	ds, err := NewWithConfig(&Config{FilePath: path, BackupCount: 2})
	require.NoError(t, err)
	defer ds.Close()

	for i := 0; i < 4; i++ {
		ds.Set("i", i)
		require.NoError(t, ds.Save())
		time.Sleep(1100 * time.Millisecond) // backup names have second granularity
	}

	matches, err := filepath.Glob(path + ".backup.*")
	require.NoError(t, err)
	assert.LessOrEqual(t, len(matches), 2)
}

func TestCloseIsIdempotent(t *testing.T) {
	ds := newTestStore(t)
	require.NoError(t, ds.Close())
	require.NoError(t, ds.Close())
}
