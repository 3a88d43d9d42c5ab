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

// Package transactions reads the Sidetree transaction log the crawler replays.
package transactions

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrStoreInitialization is returned when the transaction log can't be reached.
var ErrStoreInitialization = errors.New("unable to initialize transaction store")

// ErrInvalidAnchorString is returned when an anchor string is not of the form <operationCount>.<contentHash>.
var ErrInvalidAnchorString = errors.New("invalid anchor string")

// Store gives read access to the transaction log.
type Store interface {
	// Initialize connects to the transaction log. It must be called before any other operation.
	Initialize(ctx context.Context) error
	// Count returns the number of transactions in the log.
	Count(ctx context.Context) (int64, error)
	// All returns every transaction in the log, oldest first.
	All(ctx context.Context) ([]Transaction, error)
}

// Transaction is an anchored Sidetree transaction.
type Transaction struct {
	TransactionNumber        int64  `bson:"transactionNumber"`
	TransactionTime          int64  `bson:"transactionTime"`
	TransactionTimeHash      string `bson:"transactionTimeHash"`
	AnchorString             string `bson:"anchorString"`
	TransactionFeePaid       int64  `bson:"transactionFeePaid"`
	NormalizedTransactionFee int64  `bson:"normalizedTransactionFee"`
	Writer                   string `bson:"writer"`
}

// ContentHash returns the CAS hash of the core index file the transaction anchors: everything after the first '.'.
func (t Transaction) ContentHash() (string, error) {
	_, hash, err := t.splitAnchorString()
	return hash, err
}

// OperationCount returns the number of operations the anchored core index file claims to contain.
func (t Transaction) OperationCount() (int, error) {
	count, _, err := t.splitAnchorString()
	if err != nil {
		return 0, err
	}
	result, err := strconv.Atoi(count)
	if err != nil || result < 0 {
		return 0, fmt.Errorf("%w: operation count %q", ErrInvalidAnchorString, count)
	}
	return result, nil
}

func (t Transaction) splitAnchorString() (string, string, error) {
	count, hash, ok := strings.Cut(t.AnchorString, ".")
	if !ok || hash == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidAnchorString, t.AnchorString)
	}
	return count, hash, nil
}
