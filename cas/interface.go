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

// Package cas reads immutable content from a content-addressable store by its hash.
package cas

import (
	"context"
)

// FetchResultCode tells whether a read succeeded and, if not, why.
type FetchResultCode string

const (
	// Success means the content was read.
	Success FetchResultCode = "success"
	// NotFound means the store doesn't have the content, or didn't produce it in time.
	NotFound FetchResultCode = "content_not_found"
	// MaxSizeExceeded means the content is larger than the requested maximum size.
	MaxSizeExceeded FetchResultCode = "content_exceeds_maximum_allowed_size"
	// InvalidHash means the content hash is not a valid multihash.
	InvalidHash FetchResultCode = "content_hash_invalid"
	// NotAFile means the hash refers to something other than a file, e.g. a directory.
	NotAFile FetchResultCode = "content_not_a_file"
	// Transient means the read failed for a reason that might go away when retried.
	Transient FetchResultCode = "transient"
)

// FetchResult is the outcome of a read.
type FetchResult struct {
	Code FetchResultCode
	// Content is only set when Code is Success.
	Content []byte
	// Err holds the underlying error, if any.
	Err error
}

// Reader reads content by its hash.
type Reader interface {
	// Read returns the content identified by the given hash. Content larger than maxSizeInBytes yields MaxSizeExceeded.
	Read(ctx context.Context, contentHash string, maxSizeInBytes int) FetchResult
}
