/*
 * Copyright (C) 2026 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package storage

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	gocachestore "github.com/eko/gocache/store/go_cache/v4"
	memcachestore "github.com/eko/gocache/store/memcache/v4"
	redisstore "github.com/eko/gocache/store/redis/v4"
	gocacheclient "github.com/patrickmn/go-cache"
)

var _ CacheDatabase = (*cacheDatabase[[]byte])(nil)
var _ CacheStore = (*cacheStore[string])(nil)

const defaultCacheTTL = 5 * time.Minute

var cachePruneInterval = 10 * time.Minute

// cacheValue is the type a store backend hands back values in:
// the Redis store returns strings, the in-memory and memcached stores return bytes.
type cacheValue interface {
	~[]byte | ~string
}

type cacheDatabase[T cacheValue] struct {
	backend    string
	underlying *cache.Cache[T]
	prefixes   []string
	closer     func()
}

// NewInMemoryCacheDatabase creates a new CacheDatabase that keeps its entries in memory.
func NewInMemoryCacheDatabase() CacheDatabase {
	client := gocacheclient.New(defaultCacheTTL, cachePruneInterval)
	return &cacheDatabase[[]byte]{
		backend:    "in-memory",
		underlying: cache.New[[]byte](gocachestore.NewGoCache(client)),
	}
}

// NewRedisCacheDatabase creates a new CacheDatabase on the given Redis database.
// The Redis client is owned by the caller and not closed by the CacheDatabase.
func NewRedisCacheDatabase(db *RedisDatabase) CacheDatabase {
	result := &cacheDatabase[string]{
		backend:    "redis",
		underlying: cache.New[string](redisstore.NewRedis(db.Client)),
	}
	if len(db.Prefix) > 0 {
		result.prefixes = []string{db.Prefix}
	}
	return result
}

// NewMemcachedCacheDatabase creates a new CacheDatabase using an initialized memcache.Client, which is closed along with the database.
func NewMemcachedCacheDatabase(client *memcache.Client) CacheDatabase {
	return &cacheDatabase[[]byte]{
		backend:    "memcached",
		underlying: cache.New[[]byte](memcachestore.NewMemcache(client, store.WithExpiration(defaultCacheTTL))),
		closer: func() {
			_ = client.Close()
		},
	}
}

func (d *cacheDatabase[T]) GetStore(ttl time.Duration, keys ...string) CacheStore {
	prefixes := append(append([]string{}, d.prefixes...), keys...)
	return cacheStore[T]{
		underlying: d.underlying,
		ttl:        ttl,
		prefixes:   prefixes,
	}
}

func (d *cacheDatabase[T]) backendName() string {
	return d.backend
}

func (d *cacheDatabase[T]) close() {
	if d.closer != nil {
		d.closer()
	}
}

type cacheStore[T cacheValue] struct {
	underlying *cache.Cache[T]
	ttl        time.Duration
	prefixes   []string
}

func (s cacheStore[T]) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.underlying.Get(ctx, s.getFullKey(key))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return []byte(value), nil
}

func (s cacheStore[T]) Put(ctx context.Context, key string, value []byte) error {
	return s.underlying.Set(ctx, s.getFullKey(key), T(value), store.WithExpiration(s.ttl))
}

// isNotFound reports whether the error is a store.NotFound, which backends return both by value and by reference.
// isNotFound reports whether err means the key doesn't exist. The memcache store passes the client's cache miss error
// through instead of wrapping it in store.NotFound.
func isNotFound(err error) bool {
	if errors.Is(err, memcache.ErrCacheMiss) {
		return true
	}
	var notFoundRef *store.NotFound
	if errors.As(err, &notFoundRef) {
		return true
	}
	var notFound store.NotFound
	return errors.As(err, &notFound)
}

func (s cacheStore[T]) getFullKey(key string) string {
	return strings.Join(append(append([]string{}, s.prefixes...), key), "/")
}
