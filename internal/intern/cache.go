// Package intern deduplicates identifier text across many parses.
package intern

import "sync"

// Interner returns a canonical copy of s. Equal inputs yield strings that share
// storage.
type Interner interface {
	Intern(s string) string
}

// Cache is an Interner safe for concurrent use by independent parses. The zero
// value is an empty cache.
type Cache struct {
	mu      sync.RWMutex
	strings map[string]string
}

func NewCache() *Cache {
	return &Cache{strings: make(map[string]string)}
}

func (c *Cache) Intern(s string) string {
	c.mu.RLock()
	interned, ok := c.strings[s]
	c.mu.RUnlock()
	if ok {
		return interned
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if interned, ok := c.strings[s]; ok {
		return interned
	}
	if c.strings == nil {
		c.strings = make(map[string]string)
	}
	// detach from the parsed input so the cache does not pin whole documents
	owned := string([]byte(s))
	c.strings[owned] = owned
	return owned
}

// Len reports how many distinct strings the cache holds.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.strings)
}
