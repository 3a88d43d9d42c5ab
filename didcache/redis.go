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

package didcache

import (
	"context"
	"fmt"
	"sync"

	"github.com/nuts-foundation/ion-crawler/core"
	"github.com/nuts-foundation/ion-crawler/storage"
	"github.com/redis/go-redis/v9"
)

// addScript claims the identifier key and adds the identifier to the set of its type, atomically.
// KEYS[1] is the identifier key, KEYS[2] the type set; ARGV[1] is the type, ARGV[2] the identifier.
var addScript = redis.NewScript(`
if redis.call('SETNX', KEYS[1], ARGV[1]) == 1 then
  redis.call('SADD', KEYS[2], ARGV[2])
  return 1
end
return 0
`)

var _ Cache = (*redisCache)(nil)

// NewRedisCache creates a Cache on the given Redis database.
// Every identifier is a key <prefix>:did:<identifier> holding its type; every type is a set <prefix>:type:<type>.
func NewRedisCache(db *storage.RedisDatabase) Cache {
	return &redisCache{db: db}
}

type redisCache struct {
	db          *storage.RedisDatabase
	mux         sync.Mutex
	initialized bool
}

func (r *redisCache) Initialize(ctx context.Context) error {
	r.mux.Lock()
	defer r.mux.Unlock()
	if r.initialized {
		return nil
	}
	if err := r.db.Client.Ping(ctx).Err(); err != nil {
		return core.WrapError(ErrStoreInitialization, err)
	}
	if err := addScript.Load(ctx, r.db.Client).Err(); err != nil {
		return core.WrapError(ErrStoreInitialization, err)
	}
	r.initialized = true
	return nil
}

func (r *redisCache) EntriesForType(ctx context.Context, didType string) ([]Entry, error) {
	identifiers, err := r.db.Client.SMembers(ctx, r.typeKey(didType)).Result()
	if err != nil {
		return nil, fmt.Errorf("unable to read DID cache: %w", err)
	}
	result := make([]Entry, 0, len(identifiers))
	for _, identifier := range identifiers {
		result = append(result, Entry{Identifier: identifier, Type: didType})
	}
	return result, nil
}

func (r *redisCache) Add(ctx context.Context, identifier string, didType string) error {
	keys := []string{r.db.Key("did", identifier), r.typeKey(didType)}
	if err := addScript.Run(ctx, r.db.Client, keys, didType, identifier).Err(); err != nil {
		return core.WrapError(ErrCacheWrite, err)
	}
	return nil
}

func (r *redisCache) typeKey(didType string) string {
	return r.db.Key("type", didType)
}
