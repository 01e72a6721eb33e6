package locator

import (
	gocache "github.com/patrickmn/go-cache"
)

// resultCache memoizes resolution results per query. Entries never expire;
// the locator flushes the whole cache whenever the registry changes.
type resultCache struct {
	c *gocache.Cache
}

func newResultCache() *resultCache {
	return &resultCache{c: gocache.New(gocache.NoExpiration, 0)}
}

// cacheKey encodes the full query tuple: uri, all-matches, absolute output
// and include-missing.
func cacheKey(uri string, all bool, opts LookupOptions) string {
	return uri + "@" + flag(all) + flag(!opts.Relative) + flag(opts.IncludeMissing)
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func (c *resultCache) get(key string) ([]string, bool) {
	v, found := c.c.Get(key)
	if !found {
		return nil, false
	}
	paths, ok := v.([]string)
	if !ok {
		return nil, false
	}
	return append([]string(nil), paths...), true
}

func (c *resultCache) set(key string, paths []string) {
	c.c.Set(key, append([]string(nil), paths...), gocache.NoExpiration)
}

func (c *resultCache) flush() {
	c.c.Flush()
}

func (c *resultCache) len() int {
	return c.c.ItemCount()
}
