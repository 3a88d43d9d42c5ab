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

package submitted

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nuts-foundation/ion-crawler/core"
	"github.com/nuts-foundation/ion-crawler/submitted/log"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

var _ schema.Tabler = (*submittedDIDRecord)(nil)

type submittedDIDRecord struct {
	ID          string                   `gorm:"column:id;primaryKey"`
	DIDSuffix   string                   `gorm:"column:did_suffix"`
	Document    string                   `gorm:"column:document"`
	SubmittedAt int64                    `gorm:"column:submitted_at"`
	Types       []submittedDIDTypeRecord `gorm:"foreignKey:SubmittedDIDID;references:ID"`
}

func (s submittedDIDRecord) TableName() string {
	return "submitted_did"
}

var _ schema.Tabler = (*submittedDIDTypeRecord)(nil)

type submittedDIDTypeRecord struct {
	SubmittedDIDID string `gorm:"column:submitted_did_id;primaryKey"`
	DIDType        string `gorm:"column:did_type;primaryKey"`
}

func (s submittedDIDTypeRecord) TableName() string {
	return "submitted_did_type"
}

var _ Store = (*sqlStore)(nil)

// NewSQLStore creates a Store on the submitted_did tables of the given database.
func NewSQLStore(db *gorm.DB) Store {
	return &sqlStore{
		db:  db,
		now: time.Now,
	}
}

type sqlStore struct {
	db        *gorm.DB
	now       func() time.Time
	writeLock sync.Mutex
}

func (s *sqlStore) Enqueue(ctx context.Context, didSuffix string, types []string, document []byte) error {
	record := submittedDIDRecord{
		ID:          uuid.NewString(),
		DIDSuffix:   didSuffix,
		Document:    string(document),
		SubmittedAt: s.now().UnixMilli(),
	}
	for _, didType := range uniqueTypes(types) {
		record.Types = append(record.Types, submittedDIDTypeRecord{SubmittedDIDID: record.ID, DIDType: didType})
	}
	// SQLite allows a single writer, other databases would make concurrent enqueues wait anyway
	s.writeLock.Lock()
	defer s.writeLock.Unlock()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&submittedDIDRecord{}).Where("did_suffix = ?", didSuffix).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadySubmitted
		}
		return tx.Create(&record).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = ErrAlreadySubmitted
	}
	if errors.Is(err, ErrAlreadySubmitted) {
		log.Logger().WithField(core.LogFieldDID, didSuffix).Debug("DID was already submitted")
		return err
	}
	if err != nil {
		return fmt.Errorf("unable to store submitted DID: %w", err)
	}
	return nil
}

func (s *sqlStore) FindByType(ctx context.Context, since string, types ...string) ([]SubmittedDID, error) {
	types = uniqueTypes(types)
	result := make([]SubmittedDID, 0)
	if len(types) == 0 {
		return result, nil
	}
	query := s.db.WithContext(ctx).Model(&submittedDIDRecord{})
	if since != "" {
		var partition submittedDIDRecord
		err := s.db.WithContext(ctx).Where("did_suffix = ?", since).First(&partition).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result, nil
		}
		if err != nil {
			return nil, fmt.Errorf("unable to find submitted DID %s: %w", since, err)
		}
		query = query.Where("submitted_at >= ?", partition.SubmittedAt)
	}
	matchingIDs := s.db.Model(&submittedDIDTypeRecord{}).
		Select("submitted_did_id").
		Where("did_type IN ?", types).
		Group("submitted_did_id").
		Having("COUNT(did_type) = ?", len(types))
	var records []submittedDIDRecord
	err := query.
		Where("id IN (?)", matchingIDs).
		Preload("Types").
		Order("submitted_at ASC").
		Order("did_suffix ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("unable to query submitted DIDs: %w", err)
	}
	for _, record := range records {
		result = append(result, record.toSubmittedDID())
	}
	return result, nil
}

func (s submittedDIDRecord) toSubmittedDID() SubmittedDID {
	result := SubmittedDID{
		DIDSuffix:   s.DIDSuffix,
		Types:       make([]string, 0, len(s.Types)),
		Document:    []byte(s.Document),
		SubmittedAt: time.UnixMilli(s.SubmittedAt),
	}
	for _, t := range s.Types {
		result.Types = append(result.Types, t.DIDType)
	}
	slices.Sort(result.Types)
	return result
}

func uniqueTypes(types []string) []string {
	result := slices.Clone(types)
	slices.Sort(result)
	return slices.Compact(result)
}
