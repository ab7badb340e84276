package uidcache

import (
	"sync"
	"time"
)

// MemoryCache keeps entries for the lifetime of the process.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]Entry)}
}

func (c *MemoryCache) TryGet(userName string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[userName]
	return e, ok
}

func (c *MemoryCache) Add(userName, uniqueID string, region, maxExpansion int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[userName] = Entry{
		UserName:     userName,
		UniqueID:     uniqueID,
		Region:       region,
		MaxExpansion: maxExpansion,
		CreatedAt:    time.Now(),
	}
}

func (c *MemoryCache) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]Entry)
	return nil
}
