package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/termnamer/internal/domain"
)

func TestFileCacheRoundTrip(t *testing.T) {
	c := NewFileCache(t.TempDir(), time.Hour, 10)

	_, ok := c.Get("abc")
	assert.False(t, ok)

	entry := domain.CacheEntry{
		Key:       "abc",
		Name:      "支付Pod",
		Model:     "gpt-4o-mini",
		Provider:  "openai",
		Language:  domain.LanguageChinese,
		Commands:  []string{"kubectl get pods -n payment"},
		CreatedAt: time.Now(),
	}
	require.NoError(t, c.Set(entry))

	got, ok := c.Get("abc")
	require.True(t, ok)
	assert.Equal(t, "支付Pod", got.Name)
	assert.Equal(t, []string{"kubectl get pods -n payment"}, got.Commands)

	entries, err := c.Entries()
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	require.NoError(t, c.Clear())
	_, ok = c.Get("abc")
	assert.False(t, ok)
}

func TestFileCacheExpiry(t *testing.T) {
	c := NewFileCache(t.TempDir(), time.Minute, 10)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(domain.CacheEntry{Key: "old", Name: "x", CreatedAt: now.Add(-2 * time.Minute)}))
	require.NoError(t, c.Set(domain.CacheEntry{Key: "new", Name: "y", CreatedAt: now}))

	_, ok := c.Get("old")
	assert.False(t, ok)
	_, err := os.Stat(filepath.Join(c.Dir(), "old.json"))
	assert.True(t, os.IsNotExist(err), "expired entry removed on read")

	entries, err := c.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "new", entries[0].Key)
}

func TestFileCacheEvictsOldestByCreation(t *testing.T) {
	dir := t.TempDir()
	c := NewFileCache(dir, 0, 2)

	base := time.Now().Add(-time.Hour)
	for i, key := range []string{"b", "a", "c"} {
		require.NoError(t, c.Set(domain.CacheEntry{Key: key, Name: key, CreatedAt: base.Add(time.Duration(i) * time.Minute)}))
	}

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, files, 2)
	_, ok := c.Get("b")
	assert.False(t, ok, "oldest entry evicted")

	entries, err := c.Entries()
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, []string{entries[0].Key, entries[1].Key})
}

func TestFileCacheSetPrunesExpired(t *testing.T) {
	dir := t.TempDir()
	c := NewFileCache(dir, time.Minute, 10)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(domain.CacheEntry{Key: "stale", Name: "x", CreatedAt: now.Add(-time.Hour)}))
	require.NoError(t, c.Set(domain.CacheEntry{Key: "fresh", Name: "y", CreatedAt: now}))

	_, err := os.Stat(filepath.Join(dir, "stale.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestFileCacheIgnoresEmptyKey(t *testing.T) {
	c := NewFileCache(t.TempDir(), 0, 0)
	require.NoError(t, c.Set(domain.CacheEntry{Name: "x"}))
	entries, err := c.Entries()
	require.NoError(t, err)
	assert.Empty(t, entries)
}
