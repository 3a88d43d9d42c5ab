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

	"github.com/nats-io/nats.go"
)

var _ Conn = (*stubConn)(nil)

// stubConn is a NATS connection that records published messages and creates streams in memory.
type stubConn struct {
	nats.JetStreamContext
	mux        sync.Mutex
	streams    map[string]*nats.StreamConfig
	published  []*nats.Msg
	publishErr error
}

func newStubConn() *stubConn {
	return &stubConn{streams: map[string]*nats.StreamConfig{}}
}

// JetStream returns the JetStream context
func (conn *stubConn) JetStream(_ ...nats.JSOpt) (nats.JetStreamContext, error) {
	return conn, nil
}

func (conn *stubConn) Close() {}

// StreamInfo returns the stream information
func (conn *stubConn) StreamInfo(name string, _ ...nats.JSOpt) (*nats.StreamInfo, error) {
	conn.mux.Lock()
	defer conn.mux.Unlock()
	cfg, ok := conn.streams[name]
	if !ok {
		return nil, nats.ErrStreamNotFound
	}
	return &nats.StreamInfo{Config: *cfg}, nil
}

// AddStream adds a stream to the server
func (conn *stubConn) AddStream(cfg *nats.StreamConfig, _ ...nats.JSOpt) (*nats.StreamInfo, error) {
	conn.mux.Lock()
	defer conn.mux.Unlock()
	conn.streams[cfg.Name] = cfg
	return &nats.StreamInfo{Config: *cfg}, nil
}

// UpdateStream replaces the stream config
func (conn *stubConn) UpdateStream(cfg *nats.StreamConfig, _ ...nats.JSOpt) (*nats.StreamInfo, error) {
	conn.mux.Lock()
	defer conn.mux.Unlock()
	if _, ok := conn.streams[cfg.Name]; !ok {
		return nil, nats.ErrStreamNotFound
	}
	conn.streams[cfg.Name] = cfg
	return &nats.StreamInfo{Config: *cfg}, nil
}

// PublishMsg records the message
func (conn *stubConn) PublishMsg(msg *nats.Msg, _ ...nats.PubOpt) (*nats.PubAck, error) {
	conn.mux.Lock()
	defer conn.mux.Unlock()
	if conn.publishErr != nil {
		return nil, conn.publishErr
	}
	conn.published = append(conn.published, msg)
	return &nats.PubAck{}, nil
}

type stubConnectionPool struct {
	conn *stubConn
}

// Acquire returns the stub connection
func (pool *stubConnectionPool) Acquire(_ context.Context) (Conn, error) {
	return pool.conn, nil
}

// Shutdown does nothing
func (pool *stubConnectionPool) Shutdown() {
}

// NewStubPublisher returns a Publisher that publishes to an in-memory connection, for testing.
func NewStubPublisher() Publisher {
	return &manager{
		config: DefaultConfig(),
		stream: NewDiscoveredStream(DefaultConfig().Stream.MaxMessages, 0),
		pool:   &stubConnectionPool{conn: newStubConn()},
	}
}
