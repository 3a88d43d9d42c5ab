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

package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNATSConnectionPool_Acquire(t *testing.T) {
	t.Run("fails when context was cancelled", func(t *testing.T) {
		pool := NewNATSConnectionPool("nats://localhost:1", time.Second)
		pool.connectFunc = func(url string, options ...nats.Option) (Conn, error) {
			return nil, errors.New("random error")
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		conn, err := pool.Acquire(ctx)

		assert.Equal(t, context.Canceled, err)
		assert.Nil(t, conn)
	})

	t.Run("connection should be retried", func(t *testing.T) {
		calls := 0
		stub := newStubConn()
		pool := NewNATSConnectionPool("nats://localhost:1", time.Second)
		pool.connectFunc = func(url string, options ...nats.Option) (Conn, error) {
			calls++
			if calls > 1 {
				return stub, nil
			}
			return nil, errors.New("random error")
		}

		conn, err := pool.Acquire(context.Background())

		require.NoError(t, err)
		assert.Same(t, stub, conn)
		assert.Equal(t, 2, calls)
	})

	t.Run("connection is shared", func(t *testing.T) {
		calls := 0
		pool := NewNATSConnectionPool("nats://localhost:1", time.Second)
		pool.connectFunc = func(url string, options ...nats.Option) (Conn, error) {
			calls++
			return newStubConn(), nil
		}

		first, _ := pool.Acquire(context.Background())
		second, _ := pool.Acquire(context.Background())

		assert.Same(t, first, second)
		assert.Equal(t, 1, calls)
		pool.Shutdown()
		third, _ := pool.Acquire(context.Background())
		assert.NotSame(t, first, third)
	})
}
