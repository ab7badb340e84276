package uidcache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// FileCache persists entries as a JSON array, typically uidCache.json.
type FileCache struct {
	path string
	ttl  time.Duration
	now  func() time.Time

	mu      sync.Mutex
	entries []Entry
}

// NewFileCache loads path if it exists. A corrupt file is treated as empty.
func NewFileCache(path string, ttl time.Duration) (*FileCache, error) {
	c := &FileCache{path: path, ttl: ttl, now: time.Now}

	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read uid cache: %w", err)
	}
	if err := json.Unmarshal(b, &c.entries); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("discarding unreadable uid cache")
		c.entries = nil
	}
	return c, nil
}

func (c *FileCache) TryGet(userName string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.dropExpired() {
		c.saveLocked()
	}
	for _, e := range c.entries {
		if e.UserName == userName {
			return e, true
		}
	}
	return Entry{}, false
}

func (c *FileCache) Add(userName, uniqueID string, region, maxExpansion int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.entries[:0]
	for _, e := range c.entries {
		if e.UserName != userName {
			kept = append(kept, e)
		}
	}
	c.entries = append(kept, Entry{
		UserName:     userName,
		UniqueID:     uniqueID,
		Region:       region,
		MaxExpansion: maxExpansion,
		CreatedAt:    c.now(),
	})
	c.saveLocked()
}

// Reset forgets every cached login.
func (c *FileCache) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = nil
	return c.save()
}

func (c *FileCache) dropExpired() bool {
	now := c.now()
	kept := c.entries[:0]
	for _, e := range c.entries {
		if !e.expired(now, c.ttl) {
			kept = append(kept, e)
		}
	}
	changed := len(kept) != len(c.entries)
	c.entries = kept
	return changed
}

func (c *FileCache) saveLocked() {
	if err := c.save(); err != nil {
		log.Error().Err(err).Str("path", c.path).Msg("could not save uid cache")
	}
}

func (c *FileCache) save() error {
	entries := c.entries
	if entries == nil {
		entries = []Entry{}
	}
	b, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(c.path, b, 0o600)
}
