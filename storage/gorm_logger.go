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
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var _ gormLogger.Interface = (*queryLogger)(nil)

var nowFunc = time.Now

// queryLogger routes gorm's log output to logrus. Queries are logged on trace level, slow queries and failed queries
// on warn level. Not found and duplicate key errors are expected by the caches and aren't treated as failures.
type queryLogger struct {
	logger        *logrus.Entry
	slowThreshold time.Duration
}

func newQueryLogger(logger *logrus.Entry, slowThreshold time.Duration) queryLogger {
	return queryLogger{logger: logger, slowThreshold: slowThreshold}
}

// LogMode is a no-op: the level of the logrus logger applies.
func (q queryLogger) LogMode(_ gormLogger.LogLevel) gormLogger.Interface {
	return q
}

func (q queryLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	q.entry(ctx).Info(fmt.Sprintf(msg, args...))
}

func (q queryLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	q.entry(ctx).Warn(fmt.Sprintf(msg, args...))
}

func (q queryLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	q.entry(ctx).Error(fmt.Sprintf(msg, args...))
}

func (q queryLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	elapsed := nowFunc().Sub(begin)
	statement, rows := fc()
	entry := q.entry(ctx).WithFields(logrus.Fields{
		"sql":      statement,
		"rows":     rows,
		"duration": elapsed.String(),
	})
	switch {
	case err != nil && !expectedQueryError(err):
		entry.WithError(err).Warn("SQL query failed")
	case q.slowThreshold > 0 && elapsed >= q.slowThreshold:
		entry.Warn("Slow SQL query")
	default:
		entry.Trace("SQL query")
	}
}

// entry adds the trace ID of the active span, if any, so queries can be correlated with crawl and resolve traces.
func (q queryLogger) entry(ctx context.Context) *logrus.Entry {
	if ctx == nil {
		return q.logger
	}
	spanContext := trace.SpanContextFromContext(ctx)
	if !spanContext.HasTraceID() {
		return q.logger
	}
	return q.logger.WithField("trace_id", spanContext.TraceID().String())
}

func expectedQueryError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, gorm.ErrDuplicatedKey)
}
