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

import "time"

// DefaultConfig returns the default configuration for the storage engine.
func DefaultConfig() Config {
	return Config{
		SQL: SQLConfig{
			SlowQueryThreshold: 200 * time.Millisecond,
		},
	}
}

// Config specifies config for the storage engine.
type Config struct {
	SQL       SQLConfig       `koanf:"sql"`
	Redis     RedisConfig     `koanf:"redis"`
	Memcached MemcachedConfig `koanf:"memcached"`
}

// SQLConfig specifies config for the SQL database.
type SQLConfig struct {
	// ConnectionString is the connection string for the SQL database.
	// If empty, a SQLite database is created in the data directory.
	ConnectionString   string        `koanf:"connection"`
	// SlowQueryThreshold is the duration after which queries are logged as slow. 0 disables slow query logging.
	SlowQueryThreshold time.Duration `koanf:"slowquery"`
	// MaxOpenConnections limits the connection pool of server databases. 0 means unlimited. SQLite always uses a single connection.
	MaxOpenConnections int           `koanf:"maxopenconnections"`
}
