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
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nuts-foundation/ion-crawler/events/log"
)

const connectRetryInterval = 100 * time.Millisecond

// Conn defines the methods required in the NATS connection structure
type Conn interface {
	JetStream(opts ...nats.JSOpt) (nats.JetStreamContext, error)
	Close()
}

// ConnectionPool hands out a shared connection to the NATS server.
type ConnectionPool interface {
	// Acquire returns the connection, connecting first if needed. It blocks until connected or the context is done.
	Acquire(ctx context.Context) (Conn, error)
	// Shutdown closes the connection.
	Shutdown()
}

// NATSConnectionPool is a ConnectionPool for a single NATS server.
type NATSConnectionPool struct {
	url         string
	timeout     time.Duration
	mux         sync.Mutex
	conn        Conn
	connectFunc func(url string, options ...nats.Option) (Conn, error)
}

// NewNATSConnectionPool creates a ConnectionPool for the NATS server at the given URL.
func NewNATSConnectionPool(url string, timeout time.Duration) *NATSConnectionPool {
	return &NATSConnectionPool{
		url:     url,
		timeout: timeout,
		connectFunc: func(url string, options ...nats.Option) (Conn, error) {
			return nats.Connect(url, options...)
		},
	}
}

// Acquire returns the connection, connecting first if needed.
func (pool *NATSConnectionPool) Acquire(ctx context.Context) (Conn, error) {
	pool.mux.Lock()
	defer pool.mux.Unlock()
	for pool.conn == nil {
		conn, err := pool.connectFunc(pool.url, nats.RetryOnFailedConnect(true), nats.Timeout(pool.timeout))
		if err == nil {
			pool.conn = conn
			break
		}
		log.Logger().WithError(err).Debugf("Unable to connect to NATS server at %s, retrying", pool.url)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(connectRetryInterval):
		}
	}
	return pool.conn, nil
}

// Shutdown closes the connection, if any.
func (pool *NATSConnectionPool) Shutdown() {
	pool.mux.Lock()
	defer pool.mux.Unlock()
	if pool.conn != nil {
		pool.conn.Close()
		pool.conn = nil
	}
}
