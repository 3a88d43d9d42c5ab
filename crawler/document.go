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

package crawler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/nuts-foundation/ion-crawler/cas"
	"github.com/nuts-foundation/ion-crawler/core"
	"github.com/nuts-foundation/ion-crawler/crawler/log"
	"github.com/nuts-foundation/ion-crawler/transactions"
	"github.com/tidwall/gjson"
)

// decompressionFactor bounds the decompressed size of a core index file relative to its maximum compressed size.
const decompressionFactor = 3

// readDocument reads the core index file anchored by the transaction and returns the DIDs of its create operations
// of the given type, in document order and each once.
func (c *Crawler) readDocument(ctx context.Context, transaction transactions.Transaction, didType string) ([]string, error) {
	contentHash, err := transaction.ContentHash()
	if err != nil {
		return nil, core.WrapError(ErrCASRead, err)
	}
	result := c.cas.Read(ctx, contentHash, c.maxFileSize)
	if result.Code != cas.Success {
		cause := result.Err
		if cause == nil {
			cause = errors.New(string(result.Code))
		}
		return nil, fmt.Errorf("%w (%s): %w", ErrCASRead, result.Code, cause)
	}
	document, err := decompress(result.Content, c.maxFileSize*decompressionFactor)
	if err != nil {
		return nil, core.WrapError(ErrDecompression, err)
	}
	return c.deriveFromDocument(document, didType)
}

// deriveFromDocument returns the DIDs of the create operations of the given type.
// Documents without create operations yield no DIDs; records that can't be canonicalized are skipped.
func (c *Crawler) deriveFromDocument(document []byte, didType string) ([]string, error) {
	if !gjson.ValidBytes(document) {
		return nil, ErrParse
	}
	creates := gjson.GetBytes(document, "operations.create")
	if !creates.IsArray() {
		return nil, nil
	}
	var result []string
	seen := map[string]struct{}{}
	creates.ForEach(func(_, operation gjson.Result) bool {
		recordType := operation.Get("suffixData.type")
		if recordType.Type != gjson.String || recordType.Str != didType {
			return true
		}
		identifier, err := c.deriver.DeriveRaw([]byte(operation.Get("suffixData").Raw))
		if err != nil {
			log.Logger().
				WithError(err).
				WithField(core.LogFieldDIDType, didType).
				Warn("Skipping create operation with non-canonicalizable suffix data")
			return true
		}
		if _, ok := seen[identifier]; !ok {
			seen[identifier] = struct{}{}
			result = append(result, identifier)
		}
		return true
	})
	return result, nil
}

// decompress gunzips the data. Output larger than limit bytes is an error; a limit <= 0 means no limit.
func decompress(data []byte, limit int) ([]byte, error) {
	reader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	var source io.Reader = reader
	if limit > 0 {
		source = io.LimitReader(reader, int64(limit)+1)
	}
	result, err := io.ReadAll(source)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(result) > limit {
		return nil, fmt.Errorf("decompressed size exceeds %d bytes", limit)
	}
	return result, nil
}
