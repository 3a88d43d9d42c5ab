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

package cas

import (
	"context"
	"errors"
	"fmt"

	"github.com/nuts-foundation/ion-crawler/cas/log"
	"github.com/nuts-foundation/ion-crawler/core"
	"github.com/nuts-foundation/ion-crawler/storage"
)

var _ Reader = (*cachingReader)(nil)

// NewCachingReader creates a Reader that keeps successfully read content in the given store.
// Content is immutable, so a cached entry never needs to be invalidated.
func NewCachingReader(underlying Reader, store storage.CacheStore) Reader {
	return &cachingReader{
		underlying: underlying,
		store:      store,
	}
}

type cachingReader struct {
	underlying Reader
	store      storage.CacheStore
}

func (c cachingReader) Read(ctx context.Context, contentHash string, maxSizeInBytes int) FetchResult {
	logger := log.Logger().WithField(core.LogFieldContentHash, contentHash)
	content, err := c.store.Get(ctx, contentHash)
	if err == nil {
		if maxSizeInBytes > 0 && len(content) > maxSizeInBytes {
			return FetchResult{Code: MaxSizeExceeded, Err: fmt.Errorf("content %s exceeds maximum size of %d bytes", contentHash, maxSizeInBytes)}
		}
		return FetchResult{Code: Success, Content: content}
	}
	if !errors.Is(err, storage.ErrNotFound) {
		logger.WithError(err).Warn("Unable to read CAS content from cache")
	}
	result := c.underlying.Read(ctx, contentHash, maxSizeInBytes)
	if result.Code == Success {
		if err := c.store.Put(ctx, contentHash, result.Content); err != nil {
			logger.WithError(err).Warn("Unable to write CAS content to cache")
		}
	}
	return result
}
