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

package storage

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

func Test_queryLogger_Trace(t *testing.T) {
	underlying, hook := test.NewNullLogger()
	underlying.SetLevel(logrus.TraceLevel)
	logger := newQueryLogger(underlying.WithField("module", "test"), 10*time.Second)
	now := time.Now()
	nowFunc = func() time.Time {
		return now
	}
	t.Cleanup(func() {
		nowFunc = time.Now
	})
	query := func() (string, int64) {
		return "SELECT 1", 1
	}
	ctx := context.Background()

	testCases := []struct {
		name    string
		elapsed time.Duration
		err     error
		message string
		level   logrus.Level
	}{
		{"query", time.Second, nil, "SQL query", logrus.TraceLevel},
		{"failed query", time.Second, assert.AnError, "SQL query failed", logrus.WarnLevel},
		{"record not found is not a failure", time.Second, gorm.ErrRecordNotFound, "SQL query", logrus.TraceLevel},
		{"duplicate key is not a failure", time.Second, gorm.ErrDuplicatedKey, "SQL query", logrus.TraceLevel},
		{"slow query", 20 * time.Second, nil, "Slow SQL query", logrus.WarnLevel},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			hook.Reset()

			logger.Trace(ctx, now.Add(-tc.elapsed), query, tc.err)

			require.Len(t, hook.Entries, 1)
			entry := hook.LastEntry()
			assert.Equal(t, tc.message, entry.Message)
			assert.Equal(t, tc.level, entry.Level)
			assert.Equal(t, "SELECT 1", entry.Data["sql"])
			assert.Equal(t, int64(1), entry.Data["rows"])
			assert.Equal(t, tc.elapsed.String(), entry.Data["duration"])
			assert.Equal(t, "test", entry.Data["module"])
		})
	}
	t.Run("no slow threshold", func(t *testing.T) {
		hook.Reset()

		newQueryLogger(underlying.WithFields(nil), 0).Trace(ctx, now.Add(-time.Hour), query, nil)

		require.Len(t, hook.Entries, 1)
		assert.Equal(t, logrus.TraceLevel, hook.LastEntry().Level)
	})
	t.Run("trace ID of active span", func(t *testing.T) {
		hook.Reset()
		traceID := trace.TraceID{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
		spanCtx := trace.ContextWithSpanContext(ctx, trace.NewSpanContext(trace.SpanContextConfig{
			TraceID: traceID,
			SpanID:  trace.SpanID{1, 2, 3, 4, 5, 6, 7, 8},
		}))

		logger.Trace(spanCtx, now, query, nil)

		require.Len(t, hook.Entries, 1)
		assert.Equal(t, traceID.String(), hook.LastEntry().Data["trace_id"])
	})
}

func Test_queryLogger_levels(t *testing.T) {
	underlying, hook := test.NewNullLogger()
	logger := newQueryLogger(underlying.WithFields(nil), time.Second)
	ctx := context.Background()

	logger.LogMode(0).Info(ctx, "info %d", 1)
	logger.Warn(ctx, "warn %d", 2)
	logger.Error(ctx, "error %d", 3)

	require.Len(t, hook.Entries, 3)
	assert.Equal(t, "info 1", hook.Entries[0].Message)
	assert.Equal(t, logrus.WarnLevel, hook.Entries[1].Level)
	assert.Equal(t, "error 3", hook.Entries[2].Message)
	assert.NotContains(t, hook.Entries[0].Data, "trace_id")
}
