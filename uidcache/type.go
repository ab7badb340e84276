// Package uidcache remembers the unique id issued by a previous network login
// so the next login can skip authentication and version checks.
package uidcache

import "time"

// DefaultTTL is how long file and redis caches keep an entry.
const DefaultTTL = 24 * time.Hour

type Entry struct {
	UserName     string    `json:"userName"`
	UniqueID     string    `json:"uniqueId"`
	Region       int       `json:"region"`
	MaxExpansion int       `json:"maxExpansion"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (e Entry) expired(now time.Time, ttl time.Duration) bool {
	return ttl > 0 && now.Sub(e.CreatedAt) >= ttl
}
