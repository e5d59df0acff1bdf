// Package cache memoizes query results as JSON blobs on disk so repeated
// identical queries skip the provider round trip.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/mtakeda/plansh/internal/domain"
	"github.com/mtakeda/plansh/internal/ports"
)

// FileCache stores cache entries as JSON files addressed by hash key.
type FileCache struct {
	dir        string
	mu         sync.Mutex
	maxEntries int
	ttl        time.Duration
}

// NewFileCache returns a cache rooted under ~/.plansh/cache/plans.
func NewFileCache(ttl time.Duration, maxEntries int) *FileCache {
	return NewFileCacheAt(filepath.Join(userHome(), ".plansh", "cache", "plans"), ttl, maxEntries)
}

// NewFileCacheAt returns a cache rooted at an explicit directory.
func NewFileCacheAt(dir string, ttl time.Duration, maxEntries int) *FileCache {
	if ttl <= 0 {
		ttl = domain.DefaultCacheTTL
	}
	if maxEntries <= 0 {
		maxEntries = domain.DefaultMaxCacheEntries
	}
	return &FileCache{dir: dir, ttl: ttl, maxEntries: maxEntries}
}

// Get retrieves a cache entry; expired entries are removed on read.
func (c *FileCache) Get(key string) (domain.CacheEntry, bool, error) {
	if key == "" {
		return domain.CacheEntry{}, false, nil
	}
	path := c.pathFor(key)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.CacheEntry{}, false, nil
		}
		return domain.CacheEntry{}, false, err
	}
	var entry domain.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return domain.CacheEntry{}, false, err
	}
	if time.Since(entry.CreatedAt) > c.ttl {
		_ = os.Remove(path)
		return domain.CacheEntry{}, false, nil
	}
	return entry, true, nil
}

// Set stores a cache entry.
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
	if err := os.WriteFile(c.pathFor(entry.Key), data, 0o644); err != nil {
		return err
	}
	return c.evictIfNeeded()
}

// Clear removes all cached entries.
func (c *FileCache) Clear() error {
	return os.RemoveAll(c.dir)
}

// Dir exposes the cache directory path.
func (c *FileCache) Dir() string {
	return c.dir
}

func (c *FileCache) pathFor(key string) string {
	return filepath.Join(c.dir, key+".json")
}

func (c *FileCache) evictIfNeeded() error {
	files, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if len(files) <= c.maxEntries {
		return nil
	}
	type fileInfo struct {
		name string
		mod  time.Time
	}
	var infos []fileInfo
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		infos = append(infos, fileInfo{name: f.Name(), mod: info.ModTime()})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].mod.Before(infos[j].mod) })
	for len(infos) > c.maxEntries {
		old := infos[0]
		_ = os.Remove(filepath.Join(c.dir, old.name))
		infos = infos[1:]
	}
	return nil
}

func userHome() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

var _ ports.PlanCache = (*FileCache)(nil)
