package config

import (
	"fmt"

	"github.com/vuquang23/go-ffxiv/launcher"
	"github.com/vuquang23/go-ffxiv/uidcache"
)

// NewCache builds the configured unique id cache. It returns nil when caching
// is off.
func (c Config) NewCache() (launcher.UniqueIDCache, error) {
	if !c.UseCache {
		return nil, nil
	}

	switch c.CacheBackend {
	case CacheBackendMemory:
		return uidcache.NewMemoryCache(), nil
	case CacheBackendFile:
		cache, err := uidcache.NewFileCache(c.CachePath, uidcache.DefaultTTL)
		if err != nil {
			return nil, err
		}
		return cache, nil
	case CacheBackendRedis:
		return uidcache.NewRedisCache(uidcache.NewRedisPool("tcp", c.RedisAddr), uidcache.DefaultTTL), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", c.CacheBackend)
	}
}
