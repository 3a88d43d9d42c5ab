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
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	natsServer "github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nuts-foundation/ion-crawler/core"
	"github.com/nuts-foundation/ion-crawler/events/log"
)

const moduleName = "Events"

// Event is the events engine: it runs an embedded NATS server and publishes crawl results on it.
type Event interface {
	core.Engine
	core.Configurable
	core.Runnable
	Publisher
	// Pool returns the connection pool, or nil when the NATS server is disabled or not started.
	Pool() ConnectionPool
}

// Publisher publishes discovered DIDs.
type Publisher interface {
	// PublishDiscovered publishes a batch of DIDs discovered for the given type.
	// It does nothing when the NATS server is disabled.
	PublishDiscovered(ctx context.Context, didType string, identifiers []string) error
}

// DiscoveredMessage is the payload of messages on the discovered stream.
type DiscoveredMessage struct {
	Type string   `json:"type"`
	DIDs []string `json:"dids"`
}

type manager struct {
	config Config
	pool   ConnectionPool
	server *natsServer.Server
	stream Stream
}

// NewManager returns a new event manager
func NewManager() Event {
	return &manager{
		config: DefaultConfig(),
	}
}

func (m *manager) Name() string {
	return moduleName
}

func (m *manager) Config() interface{} {
	return &m.config
}

func (m *manager) Pool() ConnectionPool {
	return m.pool
}

func (m *manager) Configure(config core.ServerConfig) error {
	if m.config.Nats.StorageDir == "" {
		m.config.Nats.StorageDir = path.Join(config.Datadir, "events")
	}
	if m.config.Nats.Timeout <= 0 {
		return errors.New("events.nats.timeout must be positive")
	}
	if m.config.Stream.MaxMessages == 0 || m.config.Stream.MaxMessages < -1 {
		return fmt.Errorf("events.stream.maxmessages must be positive or -1 (was: %d)", m.config.Stream.MaxMessages)
	}
	if m.config.Stream.MaxAge < 0 {
		return errors.New("events.stream.maxage can't be negative")
	}
	m.stream = NewDiscoveredStream(m.config.Stream.MaxMessages, m.config.Stream.MaxAge)
	return nil
}

func (m *manager) Start() error {
	if !m.config.Nats.enabled() {
		log.Logger().Info("NATS server disabled, discovered DIDs won't be published")
		return nil
	}
	server, err := natsServer.NewServer(&natsServer.Options{
		JetStream: true,
		Port:      m.config.Nats.Port,
		Host:      m.config.Nats.Hostname,
		StoreDir:  m.config.Nats.StorageDir,
		NoSigs:    true, // the process handles signals and shuts the server down through Shutdown
	})
	if err != nil {
		return err
	}
	server.Start()
	timeout := time.Duration(m.config.Nats.Timeout) * time.Second
	if !server.ReadyForConnections(timeout) {
		server.Shutdown()
		return fmt.Errorf("NATS server not ready within %s", timeout)
	}
	m.server = server
	m.pool = NewNATSConnectionPool(server.ClientURL(), timeout)
	log.Logger().Infof("NATS server listening on %s", server.ClientURL())
	return nil
}

func (m *manager) Shutdown() error {
	if m.server == nil {
		return nil
	}
	m.pool.Shutdown()
	m.server.Shutdown()
	m.server.WaitForShutdown()
	m.server = nil
	m.pool = nil
	return nil
}

func (m *manager) PublishDiscovered(ctx context.Context, didType string, identifiers []string) error {
	if m.pool == nil || len(identifiers) == 0 {
		return nil
	}
	data, err := json.Marshal(DiscoveredMessage{Type: didType, DIDs: identifiers})
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, time.Duration(m.config.Nats.Timeout)*time.Second)
	defer cancel()
	conn, err := m.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("unable to connect to NATS server: %w", err)
	}
	msg := nats.NewMsg(DiscoveredSubject(didType))
	msg.Data = data
	if err = m.stream.Publish(conn, msg, nats.Context(ctx)); err != nil {
		return fmt.Errorf("unable to publish discovered DIDs: %w", err)
	}
	return nil
}

// DiscoveredSubject returns the subject DIDs of the given type are published on.
// Characters that aren't allowed in a subject token are replaced with '_'.
func DiscoveredSubject(didType string) string {
	token := strings.Map(func(r rune) rune {
		switch r {
		case '.', '*', '>', ' ', '\t', '\r', '\n':
			return '_'
		}
		return r
	}, didType)
	if token == "" {
		token = "_"
	}
	return DiscoveredSubjectPrefix + token
}
