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
	"time"

	"github.com/nuts-foundation/ion-crawler/core"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a key does not exist in a CacheStore.
var ErrNotFound = errors.New("not found")

// Engine defines the interface for the storage engine.
type Engine interface {
	core.Engine
	core.Configurable
	core.Runnable

	// GetSQLDatabase returns the SQL database.
	GetSQLDatabase() *gorm.DB
	// GetRedisDatabase returns the Redis database, or nil if Redis is not configured.
	GetRedisDatabase() *RedisDatabase
	// GetCacheDatabase returns the database for expiring cache entries.
	GetCacheDatabase() CacheDatabase
}

// RedisDatabase is a connected Redis client together with the key prefix of this instance.
type RedisDatabase struct {
	Client redis.UniversalClient
	// Prefix is prepended to every key, so multiple instances can share a Redis server. It may be empty.
	Prefix string
}

// CacheDatabase holds expiring key/value entries. It is not meant for data that must survive a restart.
type CacheDatabase interface {
	// GetStore returns a CacheStore whose entries expire after the given TTL.
	// Keys are namespaced by the given key parts.
	GetStore(ttl time.Duration, keys ...string) CacheStore
	backendName() string
	close()
}

// CacheStore is a namespaced view on a CacheDatabase.
type CacheStore interface {
	// Get returns the value stored under the given key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put stores the value under the given key.
	Put(ctx context.Context, key string, value []byte) error
}
