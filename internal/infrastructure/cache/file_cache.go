// Package cache stores generated session names on disk so identical command
// windows do not hit a backend twice.
package cache

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/doeshing/termnamer/internal/domain"
	"github.com/doeshing/termnamer/internal/pkg/filesystem"
	"github.com/doeshing/termnamer/internal/ports"
)

// FileCache keeps one JSON file per entry, named by the entry key.
type FileCache struct {
	mu         sync.Mutex
	dir        string
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// NewFileCache returns a cache rooted at dir. An empty dir means
// ~/.termnamer/cache/names; ttl 0 keeps entries until evicted.
func NewFileCache(dir string, ttl time.Duration, maxEntries int) *FileCache {
	if dir == "" {
		dir = filesystem.AppPath("cache", "names")
	}
	if maxEntries == 0 {
		maxEntries = domain.DefaultMaxCacheEntries
	}
	return &FileCache{
		dir:        filesystem.ExpandHome(dir),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

type stored struct {
	path  string
	entry domain.CacheEntry
}

// Get returns the live entry for key. Expired entries are deleted and
// unreadable ones count as misses.
func (c *FileCache) Get(key string) (domain.CacheEntry, bool) {
	if key == "" {
		return domain.CacheEntry{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := readEntry(c.pathFor(key))
	if !ok {
		return domain.CacheEntry{}, false
	}
	if c.expired(s.entry) {
		_ = os.Remove(s.path)
		return domain.CacheEntry{}, false
	}
	return s.entry, true
}

// Set writes entry and trims the cache back to its size limit. Entries
// without a key are ignored.
func (c *FileCache) Set(entry domain.CacheEntry) error {
	if entry.Key == "" {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(c.dir, domain.DirectoryPermissions); err != nil {
		return err
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.pathFor(entry.Key), data, domain.SecureFilePermissions); err != nil {
		return err
	}
	return c.prune()
}

// Dir is the directory holding the entries.
func (c *FileCache) Dir() string {
	return c.dir
}

// TTL reports how long entries stay valid. Zero means forever.
func (c *FileCache) TTL() time.Duration {
	return c.ttl
}

// Clear removes the cache directory.
func (c *FileCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(c.dir)
}

// Entries lists live entries, newest first.
func (c *FileCache) Entries() ([]domain.CacheEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	all, err := c.scan()
	if err != nil {
		return nil, err
	}
	live := lo.Filter(all, func(s stored, _ int) bool { return !c.expired(s.entry) })
	slices.SortFunc(live, func(a, b stored) int { return b.entry.CreatedAt.Compare(a.entry.CreatedAt) })
	return lo.Map(live, func(s stored, _ int) domain.CacheEntry { return s.entry }), nil
}

// prune drops expired entries, then the oldest ones until at most
// maxEntries remain. Callers hold c.mu.
func (c *FileCache) prune() error {
	all, err := c.scan()
	if err != nil {
		return err
	}
	expired, live := lo.FilterReject(all, func(s stored, _ int) bool { return c.expired(s.entry) })
	for _, s := range expired {
		_ = os.Remove(s.path)
	}
	if c.maxEntries <= 0 || len(live) <= c.maxEntries {
		return nil
	}
	slices.SortFunc(live, func(a, b stored) int { return a.entry.CreatedAt.Compare(b.entry.CreatedAt) })
	for _, s := range live[:len(live)-c.maxEntries] {
		_ = os.Remove(s.path)
	}
	return nil
}

// scan reads every entry file. A missing directory is an empty cache.
func (c *FileCache) scan() ([]stored, error) {
	files, err := os.ReadDir(c.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var out []stored
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != ".json" {
			continue
		}
		if s, ok := readEntry(filepath.Join(c.dir, f.Name())); ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func readEntry(path string) (stored, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return stored{}, false
	}
	var entry domain.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return stored{}, false
	}
	return stored{path: path, entry: entry}, true
}

func (c *FileCache) expired(entry domain.CacheEntry) bool {
	return c.ttl > 0 && c.now().Sub(entry.CreatedAt) > c.ttl
}

func (c *FileCache) pathFor(key string) string {
	return filepath.Join(c.dir, key+".json")
}

var _ ports.NameCache = (*FileCache)(nil)
