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

// Package didcache holds the identifiers discovered by earlier crawls, per DID type.
package didcache

import (
	"context"
	"errors"
)

// MaxTypeLength is the maximum length of a DID type, the size of the type column in SQL databases.
const MaxTypeLength = 100

// ErrStoreInitialization is returned when the backing store can't be reached or set up.
var ErrStoreInitialization = errors.New("unable to initialize DID cache")

// ErrCacheWrite is returned when an entry couldn't be persisted for any other reason than it already existing.
var ErrCacheWrite = errors.New("unable to write DID cache entry")

// Entry is a cached identifier with the type it was discovered for.
type Entry struct {
	Identifier string
	Type       string
}

// Cache stores identifiers by type. An identifier is stored at most once: adding it again is a no-op.
// Implementations are safe for concurrent use.
type Cache interface {
	// Initialize makes sure the backing store exists and enforces identifier uniqueness.
	// It is idempotent; calls after the first successful one return immediately.
	Initialize(ctx context.Context) error
	// EntriesForType returns all cached entries of the given type, or an empty slice.
	EntriesForType(ctx context.Context, didType string) ([]Entry, error)
	// Add stores the identifier for the given type, unless it already exists.
	// Persistence failures are returned wrapped in ErrCacheWrite.
	Add(ctx context.Context, identifier string, didType string) error
}
