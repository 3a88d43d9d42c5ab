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
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nuts-foundation/ion-crawler/events/log"
	"go.uber.org/atomic"
)

// DiscoveredStreamName is the name of the stream discovered DIDs are published on.
const DiscoveredStreamName = "ion-crawler-discovered"

// DiscoveredSubjectPrefix is the subject prefix of the discovered stream; the DID type is appended to it.
const DiscoveredSubjectPrefix = "ion.crawler.dids."

// Stream is a JetStream stream that is created (or brought up to date) on first publication.
type Stream interface {
	Config() *nats.StreamConfig
	Publish(conn Conn, msg *nats.Msg, opts ...nats.PubOpt) error
}

// NewDiscoveredStream returns the stream discovered DIDs are published on.
// The oldest batches are discarded when maxMsgs is reached or when they are older than maxAge (if set).
func NewDiscoveredStream(maxMsgs int64, maxAge time.Duration) Stream {
	return &stream{
		config: &nats.StreamConfig{
			Name:      DiscoveredStreamName,
			Subjects:  []string{DiscoveredSubjectPrefix + "*"},
			MaxMsgs:   maxMsgs,
			MaxAge:    maxAge,
			Retention: nats.LimitsPolicy,
			Storage:   nats.FileStorage,
			Discard:   nats.DiscardOld,
		},
	}
}

type stream struct {
	config *nats.StreamConfig
	ready  atomic.Bool
}

func (s *stream) Config() *nats.StreamConfig {
	return s.config
}

func (s *stream) Publish(conn Conn, msg *nats.Msg, opts ...nats.PubOpt) error {
	js, err := conn.JetStream()
	if err != nil {
		return err
	}
	if !s.ready.Load() {
		if err = s.ensure(js); err != nil {
			return fmt.Errorf("stream %s: %w", s.config.Name, err)
		}
		s.ready.Store(true)
	}
	_, err = js.PublishMsg(msg, opts...)
	return err
}

// ensure creates the stream, or updates its limits when it exists with other limits (e.g. after a config change).
func (s *stream) ensure(js nats.JetStreamContext) error {
	info, err := js.StreamInfo(s.config.Name)
	if errors.Is(err, nats.ErrStreamNotFound) {
		_, err = js.AddStream(s.config)
		return err
	}
	if err != nil {
		return err
	}
	if info.Config.MaxMsgs == s.config.MaxMsgs && info.Config.MaxAge == s.config.MaxAge {
		return nil
	}
	log.Logger().
		WithField("maxMessages", s.config.MaxMsgs).
		WithField("maxAge", s.config.MaxAge).
		Infof("Updating limits of stream %s", s.config.Name)
	updated := info.Config
	updated.MaxMsgs = s.config.MaxMsgs
	updated.MaxAge = s.config.MaxAge
	_, err = js.UpdateStream(&updated)
	return err
}
