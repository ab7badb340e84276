package uidcache

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/rs/zerolog/log"
)

const redisKeyPrefix = "xl:uid:"

func NewRedisPool(network string, address string) *redis.Pool {
	return &redis.Pool{
		MaxIdle:     4,
		IdleTimeout: 5 * time.Minute,
		Dial: func() (redis.Conn, error) {
			return redis.Dial(network, address)
		},
	}
}

// RedisCache shares cached logins between machines. Expiry is left to redis.
type RedisCache struct {
	pool *redis.Pool
	ttl  time.Duration
}

func NewRedisCache(pool *redis.Pool, ttl time.Duration) *RedisCache {
	return &RedisCache{pool: pool, ttl: ttl}
}

func (c *RedisCache) TryGet(userName string) (Entry, bool) {
	conn := c.pool.Get()
	defer conn.Close()

	b, err := redis.Bytes(conn.Do("GET", redisKeyPrefix+userName))
	if errors.Is(err, redis.ErrNil) {
		return Entry{}, false
	}
	if err != nil {
		log.Error().Err(err).Msg("uid cache lookup failed")
		return Entry{}, false
	}

	var e Entry
	if err := json.Unmarshal(b, &e); err != nil {
		log.Warn().Err(err).Msg("discarding unreadable uid cache entry")
		return Entry{}, false
	}
	return e, true
}

func (c *RedisCache) Add(userName, uniqueID string, region, maxExpansion int) {
	b, err := json.Marshal(Entry{
		UserName:     userName,
		UniqueID:     uniqueID,
		Region:       region,
		MaxExpansion: maxExpansion,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		log.Error().Err(err).Msg("could not encode uid cache entry")
		return
	}

	conn := c.pool.Get()
	defer conn.Close()

	args := redis.Args{}.Add(redisKeyPrefix+userName, b)
	if c.ttl > 0 {
		args = args.Add("EX", int64(c.ttl/time.Second))
	}
	if _, err := conn.Do("SET", args...); err != nil {
		log.Error().Err(err).Msg("could not store uid cache entry")
	}
}

// Reset deletes every cached login under the key prefix.
func (c *RedisCache) Reset() error {
	conn := c.pool.Get()
	defer conn.Close()

	cursor := 0
	for {
		reply, err := redis.Values(conn.Do("SCAN", cursor, "MATCH", redisKeyPrefix+"*", "COUNT", 100))
		if err != nil {
			return err
		}
		var keys []string
		if _, err := redis.Scan(reply, &cursor, &keys); err != nil {
			return err
		}
		if len(keys) > 0 {
			if _, err := conn.Do("DEL", redis.Args{}.AddFlat(keys)...); err != nil {
				return err
			}
		}
		if cursor == 0 {
			return nil
		}
	}
}
