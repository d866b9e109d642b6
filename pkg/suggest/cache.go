package suggest

import (
	"math"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// ResultCache keeps ranked results for recently queried prefixes.
// Cached prefixes are indexed in a patricia trie so an insert can drop every
// entry it affects by walking the prefixes of the inserted word.
type ResultCache struct {
	entries     *patricia.Trie
	size        int
	accessTime  map[string]int64
	accessCount int64
	hits        int
	misses      int
	maxEntries  int
	mu          sync.Mutex
}

type cacheEntry struct {
	limit   int
	results []Suggestion
}

// NewResultCache creates a cache holding at most maxEntries prefixes.
func NewResultCache(maxEntries int) *ResultCache {
	return &ResultCache{
		entries:    patricia.NewTrie(),
		accessTime: make(map[string]int64, maxEntries),
		maxEntries: maxEntries,
	}
}

// Get returns the cached results for prefix if they cover limit.
// An entry covers any limit up to its own, and every limit when it holds the full match list.
func (rc *ResultCache) Get(prefix string, limit int) ([]Suggestion, bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	item := rc.entries.Get(patricia.Prefix(prefix))
	if item == nil {
		rc.misses++
		return nil, false
	}

	entry := item.(*cacheEntry)
	complete := len(entry.results) < entry.limit
	if limit > entry.limit && !complete {
		rc.misses++
		return nil, false
	}

	rc.hits++
	rc.markAccessed(prefix)

	n := max(min(limit, len(entry.results)), 0)
	out := make([]Suggestion, n)
	copy(out, entry.results[:n])
	return out, true
}

// Put stores the results of a query. The empty prefix is not cached since every insert invalidates it.
func (rc *ResultCache) Put(prefix string, limit int, results []Suggestion) {
	if prefix == "" || rc.maxEntries <= 0 {
		return
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	p := patricia.Prefix(prefix)

	item := rc.entries.Get(p)
	if item != nil {
		if item.(*cacheEntry).limit >= limit {
			rc.markAccessed(prefix)
			return
		}
	} else if rc.size >= rc.maxEntries {
		rc.evictLRU()
	}

	stored := make([]Suggestion, len(results))
	copy(stored, results)

	rc.entries.Set(p, &cacheEntry{limit: limit, results: stored})
	if item == nil {
		rc.size++
	}
	rc.markAccessed(prefix)
}

// Invalidate drops every cached prefix of word.
func (rc *ResultCache) Invalidate(word string) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if rc.size == 0 {
		return
	}

	var stale []string
	err := rc.entries.VisitPrefixes(patricia.Prefix(word), func(p patricia.Prefix, item patricia.Item) error {
		stale = append(stale, string(p))
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting cached prefixes of %q: %v", word, err)
	}

	for _, key := range stale {
		rc.remove(key)
	}
}

// Len returns the number of cached prefixes.
func (rc *ResultCache) Len() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.size
}

// Stats returns cache counters.
func (rc *ResultCache) Stats() map[string]int {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	return map[string]int{
		"cacheEntries":    rc.size,
		"maxCacheEntries": rc.maxEntries,
		"cacheHits":       rc.hits,
		"cacheMisses":     rc.misses,
	}
}

func (rc *ResultCache) remove(key string) {
	if rc.entries.Delete(patricia.Prefix(key)) {
		rc.size--
	}
	delete(rc.accessTime, key)
}

func (rc *ResultCache) markAccessed(key string) {
	rc.accessCount++
	rc.accessTime[key] = rc.accessCount
}

func (rc *ResultCache) evictLRU() {
	var oldestKey string
	var oldestTime int64 = math.MaxInt64
	found := false

	for key, t := range rc.accessTime {
		if t < oldestTime {
			oldestTime = t
			oldestKey = key
			found = true
		}
	}

	if found {
		rc.remove(oldestKey)
		log.Debugf("Evicted prefix '%s' from result cache", oldestKey)
	}
}

