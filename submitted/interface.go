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

// Package submitted keeps track of the DID documents that were submitted to this node for anchoring.
package submitted

import (
	"context"
	"errors"
	"time"
)

// ErrAlreadySubmitted is returned when a DID with the same unique suffix was submitted before.
var ErrAlreadySubmitted = errors.New("DID was already submitted")

// SubmittedDID is a DID document submitted to this node.
type SubmittedDID struct {
	DIDSuffix   string
	Types       []string
	Document    []byte
	SubmittedAt time.Time
}

// Store is the queue of submitted DIDs.
type Store interface {
	// Enqueue adds a submitted DID document with the types it declares.
	// It returns ErrAlreadySubmitted if the suffix is already known.
	Enqueue(ctx context.Context, didSuffix string, types []string, document []byte) error
	// FindByType returns the submitted DIDs declaring all the given types, oldest first.
	// If since is not empty, only DIDs submitted at or after the DID with that suffix are returned;
	// an unknown since yields no results.
	FindByType(ctx context.Context, since string, types ...string) ([]SubmittedDID, error)
}
