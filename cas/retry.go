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
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/nuts-foundation/ion-crawler/cas/log"
	"github.com/nuts-foundation/ion-crawler/core"
)

var errTransient = errors.New("transient CAS failure")

var _ Reader = (*retryingReader)(nil)

// NewRetryingReader creates a Reader that retries Transient results of the given reader, with exponential backoff.
// attempts includes the first read; values below 1 are treated as 1.
func NewRetryingReader(underlying Reader, attempts uint, delay time.Duration) Reader {
	if attempts < 1 {
		attempts = 1
	}
	return &retryingReader{
		underlying: underlying,
		attempts:   attempts,
		delay:      delay,
	}
}

type retryingReader struct {
	underlying Reader
	attempts   uint
	delay      time.Duration
}

func (r retryingReader) Read(ctx context.Context, contentHash string, maxSizeInBytes int) FetchResult {
	var result FetchResult
	_ = retry.Do(func() error {
		result = r.underlying.Read(ctx, contentHash, maxSizeInBytes)
		if result.Code != Transient {
			return nil
		}
		if result.Err != nil {
			return result.Err
		}
		return errTransient
	},
		retry.Attempts(r.attempts),
		retry.Delay(r.delay),
		retry.DelayType(retry.BackOffDelay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Logger().
				WithError(err).
				WithField(core.LogFieldContentHash, contentHash).
				Debugf("Retrying CAS read (attempt %d)", n+2)
		}),
	)
	return result
}
