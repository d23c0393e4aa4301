package fetch

// ResponseCache stores raw response bodies keyed by request URL for the
// lifetime of the process. Entries are immutable once inserted; there is no
// eviction and no TTL. The whole program runs its API calls sequentially, so
// the cache is not guarded by a lock.
type ResponseCache struct {
	entries map[string][]byte
}

// NewResponseCache creates an empty response cache.
func NewResponseCache() *ResponseCache {
	return &ResponseCache{
		entries: make(map[string][]byte),
	}
}

// Get returns the cached body for url. ok is false if the URL has not been
// fetched successfully before.
func (c *ResponseCache) Get(url string) ([]byte, bool) {
	body, ok := c.entries[url]
	return body, ok
}

// Put stores the body for url. Only successful responses belong in the cache.
func (c *ResponseCache) Put(url string, body []byte) {
	c.entries[url] = body
}

// Len returns the number of cached URLs.
func (c *ResponseCache) Len() int {
	return len(c.entries)
}
