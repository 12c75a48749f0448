package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/oasextract/oaserrors"
	"github.com/erraggy/oasextract/value"
)

// specInput represents the three ways a document can be provided to a tool.
// Exactly one of File, URL, or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OpenAPI 3.x file on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch the document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline document content (JSON or YAML)"`
}

// loadedSpec is a decoded document. Tools never mutate it, so cached entries
// are shared between calls.
type loadedSpec struct {
	doc    value.Value
	format value.Format
	size   int
}

// cacheEntry holds a decoded document with LRU ordering and TTL expiry.
type cacheEntry struct {
	spec      *loadedSpec
	insertAt  time.Time
	expiresAt time.Time
}

// specCacheStore is a session-scoped cache of decoded documents.
// File inputs are keyed by (absolutePath, modTime), content inputs by a
// SHA-256 hash and URL inputs by the URL string.
type specCacheStore struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

var specCache = &specCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns a cached document or nil. Expired entries are lazily removed.
func (c *specCacheStore) get(key string) *loadedSpec {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil
	}
	e.insertAt = time.Now()
	return e.spec
}

// putWithTTL stores a document, evicting the least recently used entry when
// the cache is full.
func (c *specCacheStore) putWithTTL(key string, spec *loadedSpec, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{spec: spec, insertAt: now, expiresAt: now.Add(ttl)}

	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.maxSize {
		c.evictOldestLocked()
	}
	c.entries[key] = entry
}

func (c *specCacheStore) evictOldestLocked() {
	var oldestKey string
	var oldestTime time.Time
	for k, e := range c.entries {
		if oldestKey == "" || e.insertAt.Before(oldestTime) {
			oldestKey = k
			oldestTime = e.insertAt
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

// sweep removes all expired entries.
func (c *specCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper removes expired entries every interval until ctx is
// cancelled. Only the first call spawns a goroutine.
func (c *specCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	if !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *specCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

func (c *specCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// makeCacheKey returns the cache key for s, or "" when s cannot be cached.
func makeCacheKey(s specInput) string {
	switch {
	case s.File != "":
		absPath, err := filepath.Abs(s.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano())
	case s.Content != "":
		h := sha256.Sum256([]byte(s.Content))
		return "content:" + hex.EncodeToString(h[:])
	case s.URL != "":
		return "url:" + s.URL
	default:
		return ""
	}
}

func (s specInput) count() int {
	n := 0
	for _, field := range []string{s.File, s.URL, s.Content} {
		if field != "" {
			n++
		}
	}
	return n
}

// resolve decodes the document from whichever input was provided, using the
// cache when it is enabled.
func (s specInput) resolve(ctx context.Context) (*loadedSpec, error) {
	if n := s.count(); n != 1 {
		return nil, fmt.Errorf("exactly one of file, url, or content must be provided (got %d)", n)
	}
	if s.Content != "" && int64(len(s.Content)) > cfg.MaxInlineSize {
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "inline_size",
			Limit:        cfg.MaxInlineSize,
			Actual:       int64(len(s.Content)),
			Message:      "content exceeds maximum; use file input instead, or set OASEXTRACT_MCP_MAX_INLINE_SIZE to increase",
		}
	}

	var key string
	var ttl time.Duration
	if cfg.CacheEnabled {
		key = makeCacheKey(s)
		switch {
		case s.File != "":
			ttl = cfg.CacheFileTTL
		case s.URL != "":
			ttl = cfg.CacheURLTTL
		default:
			ttl = cfg.CacheContentTTL
		}
	}
	if key != "" {
		if cached := specCache.get(key); cached != nil {
			return cached, nil
		}
	}

	spec, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if key != "" {
		specCache.putWithTTL(key, spec, ttl)
	}
	return spec, nil
}

func (s specInput) load(ctx context.Context) (*loadedSpec, error) {
	var data []byte
	var path string
	var err error
	switch {
	case s.File != "":
		path = s.File
		data, err = os.ReadFile(s.File)
	case s.URL != "":
		path = s.URL
		data, err = fetchSpec(ctx, newFetchClient(), s.URL, cfg.MaxFetchSize)
	default:
		data = []byte(s.Content)
	}
	if err != nil {
		return nil, err
	}

	doc, err := value.Decode(data)
	if err != nil {
		return nil, err
	}
	return &loadedSpec{doc: doc, format: value.DetectFormat(path, data), size: len(data)}, nil
}
