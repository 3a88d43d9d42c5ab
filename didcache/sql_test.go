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
	"sync"
	"testing"

	"github.com/nuts-foundation/ion-crawler/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestSQLCache(t *testing.T) (Cache, *gorm.DB) {
	db := storage.NewTestStorageEngine(t).GetSQLDatabase()
	return NewSQLCache(db), db
}

func TestSQLCache_Initialize(t *testing.T) {
	ctx := context.Background()
	t.Run("creates table and unique index", func(t *testing.T) {
		cache, db := newTestSQLCache(t)

		require.NoError(t, cache.Initialize(ctx))

		assert.True(t, db.Migrator().HasTable("did_cache"))
		assert.True(t, db.Migrator().HasIndex(&cacheEntry{}, uniqueIndexName))
	})
	t.Run("idempotent", func(t *testing.T) {
		cache, _ := newTestSQLCache(t)

		require.NoError(t, cache.Initialize(ctx))
		require.NoError(t, cache.Initialize(ctx))
		require.NoError(t, NewSQLCache(cache.(*sqlCache).db).Initialize(ctx))
	})
	t.Run("adds missing unique index to existing table", func(t *testing.T) {
		cache, db := newTestSQLCache(t)
		require.NoError(t, db.Exec("CREATE TABLE did_cache (did_suffix varchar(255) not null, did_type varchar(100) not null)").Error)

		require.NoError(t, cache.Initialize(ctx))

		assert.True(t, db.Migrator().HasIndex(&cacheEntry{}, uniqueIndexName))
		require.NoError(t, cache.Add(ctx, "did:ion:a", "type1"))
		require.NoError(t, cache.Add(ctx, "did:ion:a", "type1"))
		var count int64
		require.NoError(t, db.Model(&cacheEntry{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
	t.Run("database unavailable", func(t *testing.T) {
		cache, db := newTestSQLCache(t)
		underlying, _ := db.DB()
		require.NoError(t, underlying.Close())

		err := cache.Initialize(ctx)

		assert.ErrorIs(t, err, ErrStoreInitialization)
	})
}

func TestSQLCache_EntriesForType(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestSQLCache(t)
	require.NoError(t, cache.Initialize(ctx))

	t.Run("empty", func(t *testing.T) {
		entries, err := cache.EntriesForType(ctx, "unknown")

		require.NoError(t, err)
		assert.NotNil(t, entries)
		assert.Empty(t, entries)
	})
	t.Run("filters on type", func(t *testing.T) {
		require.NoError(t, cache.Add(ctx, "did:ion:a", "type1"))
		require.NoError(t, cache.Add(ctx, "did:ion:b", "type1"))
		require.NoError(t, cache.Add(ctx, "did:ion:c", "type2"))

		entries, err := cache.EntriesForType(ctx, "type1")

		require.NoError(t, err)
		assert.ElementsMatch(t, []Entry{{Identifier: "did:ion:a", Type: "type1"}, {Identifier: "did:ion:b", Type: "type1"}}, entries)
	})
}

func TestSQLCache_Add(t *testing.T) {
	ctx := context.Background()
	t.Run("duplicate is a no-op", func(t *testing.T) {
		cache, db := newTestSQLCache(t)
		require.NoError(t, cache.Initialize(ctx))

		require.NoError(t, cache.Add(ctx, "did:ion:a", "type1"))
		require.NoError(t, cache.Add(ctx, "did:ion:a", "type1"))
		require.NoError(t, cache.Add(ctx, "did:ion:a", "type2"))

		var rows []cacheEntry
		require.NoError(t, db.Find(&rows).Error)
		require.Len(t, rows, 1)
		assert.Equal(t, "type1", rows[0].DIDType)
	})
	t.Run("concurrent adds of the same identifier", func(t *testing.T) {
		cache, db := newTestSQLCache(t)
		require.NoError(t, cache.Initialize(ctx))

		wg := sync.WaitGroup{}
		errs := make(chan error, 10)
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- cache.Add(ctx, "did:ion:a", "type1")
			}()
		}
		wg.Wait()
		close(errs)

		for err := range errs {
			assert.NoError(t, err)
		}
		var count int64
		require.NoError(t, db.Model(&cacheEntry{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
	t.Run("persistence failure", func(t *testing.T) {
		cache, db := newTestSQLCache(t)
		require.NoError(t, cache.Initialize(ctx))
		underlying, _ := db.DB()
		require.NoError(t, underlying.Close())

		err := cache.Add(ctx, "did:ion:a", "type1")

		assert.ErrorIs(t, err, ErrCacheWrite)
	})
}
