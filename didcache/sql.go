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
	"errors"
	"fmt"
	"sync"

	"github.com/nuts-foundation/ion-crawler/core"
	"github.com/nuts-foundation/ion-crawler/didcache/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

const uniqueIndexName = "did_cache_did_suffix_idx"

var _ schema.Tabler = (*cacheEntry)(nil)

// cacheEntry is a row in the did_cache table. The did_suffix column holds the complete identifier.
type cacheEntry struct {
	DIDSuffix string `gorm:"column:did_suffix;primaryKey;size:255;uniqueIndex:did_cache_did_suffix_idx"`
	DIDType   string `gorm:"column:did_type;size:100;not null;index:did_cache_did_type_idx"`
}

func (c cacheEntry) TableName() string {
	return "did_cache"
}

var _ Cache = (*sqlCache)(nil)

// NewSQLCache creates a Cache backed by the did_cache table of the given database.
func NewSQLCache(db *gorm.DB) Cache {
	return &sqlCache{db: db}
}

type sqlCache struct {
	db          *gorm.DB
	mux         sync.Mutex
	initialized bool
}

func (s *sqlCache) Initialize(ctx context.Context) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.initialized {
		return nil
	}
	migrator := s.db.WithContext(ctx).Migrator()
	if !migrator.HasTable(&cacheEntry{}) {
		log.Logger().Info("Creating DID cache table")
		if err := migrator.CreateTable(&cacheEntry{}); err != nil {
			return core.WrapError(ErrStoreInitialization, err)
		}
	}
	if !migrator.HasIndex(&cacheEntry{}, uniqueIndexName) {
		if err := migrator.CreateIndex(&cacheEntry{}, uniqueIndexName); err != nil {
			return core.WrapError(ErrStoreInitialization, err)
		}
	}
	if !migrator.HasIndex(&cacheEntry{}, uniqueIndexName) {
		return fmt.Errorf("%w: unique index %s on did_suffix is missing", ErrStoreInitialization, uniqueIndexName)
	}
	s.initialized = true
	return nil
}

func (s *sqlCache) EntriesForType(ctx context.Context, didType string) ([]Entry, error) {
	var rows []cacheEntry
	if err := s.db.WithContext(ctx).Where("did_type = ?", didType).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("unable to read DID cache: %w", err)
	}
	result := make([]Entry, 0, len(rows))
	for _, row := range rows {
		result = append(result, Entry{Identifier: row.DIDSuffix, Type: row.DIDType})
	}
	return result, nil
}

func (s *sqlCache) Add(ctx context.Context, identifier string, didType string) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&cacheEntry{DIDSuffix: identifier, DIDType: didType}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	if err != nil {
		return core.WrapError(ErrCacheWrite, err)
	}
	return nil
}
