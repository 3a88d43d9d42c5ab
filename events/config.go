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

import "time"

// Config holds the configuration of the events engine.
type Config struct {
	Nats   NatsConfig   `koanf:"nats"`
	Stream StreamConfig `koanf:"stream"`
}

// StreamConfig holds the retention limits of the discovered stream.
type StreamConfig struct {
	// MaxMessages is the number of batches kept on the stream. -1 keeps all of them.
	MaxMessages int64         `koanf:"maxmessages"`
	// MaxAge is how long a batch is kept. 0 keeps batches until MaxMessages is reached.
	MaxAge      time.Duration `koanf:"maxage"`
}

// NatsConfig holds the configuration of the embedded NATS server.
type NatsConfig struct {
	// Port the NATS server listens on. 0 disables the server; -1 picks a random port.
	Port       int    `koanf:"port"`
	Hostname   string `koanf:"hostname"`
	StorageDir string `koanf:"storagedir"`
	// Timeout in seconds for connecting to the NATS server.
	Timeout    int    `koanf:"timeout"`
}

// DefaultConfig returns an instance of Config with the default values.
func DefaultConfig() Config {
	return Config{
		Nats: NatsConfig{
			Port:     4022,
			Hostname: "localhost",
			Timeout:  30,
		},
		Stream: StreamConfig{
			MaxMessages: 10000,
		},
	}
}

func (n NatsConfig) enabled() bool {
	return n.Port != 0
}
