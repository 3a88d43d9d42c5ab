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
	"fmt"

	"github.com/bradfitz/gomemcache/memcache"
)

// MemcachedConfig specifies config for the memcached servers used as cache database.
type MemcachedConfig struct {
	Address []string `koanf:"address"`
}

// isConfigured returns true if config the indicates memcached support should be enabled.
func (m MemcachedConfig) isConfigured() bool {
	return len(m.Address) > 0
}

// newMemcachedClient creates a memcache.Client and checks the servers can be reached.
func newMemcachedClient(config MemcachedConfig) (*memcache.Client, error) {
	client := memcache.New(config.Address...)
	if err := client.Ping(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("unable to connect to memcached: %w", err)
	}
	return client, nil
}
