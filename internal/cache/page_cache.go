package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// PageCache stores fully rendered response bodies for a fixed time window,
// keyed by request identity (path plus query string). Entries are either
// present and fresh or absent; a stale read inside the window is accepted.
type PageCache struct {
	ttl   time.Duration
	store *gocache.Cache
}

// NewPageCache creates a PageCache whose entries expire after ttl.
func NewPageCache(ttl time.Duration) *PageCache {
	return &PageCache{
		ttl:   ttl,
		store: gocache.New(ttl, 2*ttl),
	}
}

// Get returns the cached body for key, if present and not expired.
func (p *PageCache) Get(key string) ([]byte, bool) {
	v, ok := p.store.Get(key)
	if !ok {
		return nil, false
	}
	body, ok := v.([]byte)
	return body, ok
}

// Set stores body under key for the cache's TTL.
func (p *PageCache) Set(key string, body []byte) {
	p.store.Set(key, body, p.ttl)
}

// Clear drops every entry.
func (p *PageCache) Clear() {
	p.store.Flush()
}
