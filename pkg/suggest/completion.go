package suggest

import (
	"sync"

	"github.com/bastiangx/wordstore/pkg/store"
	"github.com/charmbracelet/log"
)

// Suggestion is a completion candidate and the number of times it was inserted.
type Suggestion struct {
	Word      string
	Frequency int
}

// Completer guards a store.PrefixStore with a RWMutex and caches ranked results per prefix.
type Completer struct {
	store   *store.PrefixStore
	cache   *ResultCache
	inserts int
	mu      sync.RWMutex
}

// NewCompleter creates an empty completer. A cacheSize of 0 disables the result cache.
func NewCompleter(cacheSize int) *Completer {
	c := &Completer{
		store: store.New(),
	}
	if cacheSize > 0 {
		c.cache = NewResultCache(cacheSize)
	}
	return c
}

// AddWord records one occurrence of word.
func (c *Completer) AddWord(word string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.insertLocked(word)
}

// AddWords records one occurrence of each word under a single lock.
func (c *Completer) AddWords(words ...string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, w := range words {
		c.insertLocked(w)
	}
	return len(words)
}

func (c *Completer) insertLocked(word string) {
	c.store.Insert(word)
	c.inserts++
	if c.cache != nil {
		c.cache.Invalidate(word)
	}
}

// Complete returns at most limit suggestions for prefix.
// Negative limits behave like 0 and yield no suggestions.
func (c *Completer) Complete(prefix string, limit int) []Suggestion {
	if limit <= 0 {
		return []Suggestion{}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.cache != nil {
		if cached, ok := c.cache.Get(prefix, limit); ok {
			return cached
		}
	}

	entries := c.store.Suggest(prefix, limit)
	suggestions := make([]Suggestion, len(entries))
	for i, e := range entries {
		suggestions[i] = Suggestion{Word: e.Word, Frequency: e.Count}
	}

	if c.cache != nil {
		c.cache.Put(prefix, limit, suggestions)
	}

	log.Debugf("Complete %q: %d suggestions (limit %d)", prefix, len(suggestions), limit)
	return suggestions
}

// Count returns how many times word was added.
func (c *Completer) Count(word string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.store.Count(word)
}

// Stats returns store and cache counters.
func (c *Completer) Stats() map[string]int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := map[string]int{
		"words":   c.store.Len(),
		"nodes":   c.store.Nodes(),
		"inserts": c.inserts,
	}

	if c.cache != nil {
		for k, v := range c.cache.Stats() {
			stats[k] = v
		}
	}
	return stats
}
