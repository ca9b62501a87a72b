package widget

import (
	"fmt"
	"slices"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	domain "github.com/donaldgifford/searchselect/pkg/types"
)

// cacheEntry is one page of results as returned by the server.
type cacheEntry struct {
	items     []domain.SearchItem
	total     int
	fetchedAt time.Time
}

type lookupResult string

const (
	lookupHit   lookupResult = "hit"
	lookupMiss  lookupResult = "miss"
	lookupStale lookupResult = "stale"
)

// resultCache is a size-bounded page cache with a freshness window. Stale
// entries are reported as misses and left in place until overwritten or
// evicted.
type resultCache struct {
	entries *lru.Cache[string, cacheEntry]
	ttl     time.Duration
}

func newResultCache(size int, ttl time.Duration) (*resultCache, error) {
	entries, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, fmt.Errorf("creating result cache: %w", err)
	}
	return &resultCache{entries: entries, ttl: ttl}, nil
}

func (c *resultCache) get(key string, now time.Time) (cacheEntry, lookupResult) {
	e, ok := c.entries.Get(key)
	if !ok {
		return cacheEntry{}, lookupMiss
	}
	if now.Sub(e.fetchedAt) >= c.ttl {
		return cacheEntry{}, lookupStale
	}
	return e, lookupHit
}

func (c *resultCache) put(key string, e cacheEntry) {
	c.entries.Add(key, e)
}

func (c *resultCache) len() int {
	return c.entries.Len()
}

func (c *resultCache) purge() {
	c.entries.Purge()
}

// cacheKey identifies a page of results. Queries that differ only in case or
// surrounding/inner whitespace share an entry; active filters are part of the
// key because they change the result set.
func cacheKey(t domain.SearchType, query string, page int, filters []string) string {
	sorted := slices.Clone(filters)
	slices.Sort(sorted)
	return fmt.Sprintf("%s|%s|%d|%s", t, normalizeQuery(query), page, strings.Join(sorted, ","))
}

func normalizeQuery(q string) string {
	return strings.ToLower(strings.Join(strings.Fields(q), " "))
}

// pageCount is ceil(total / pageSize).
func pageCount(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
