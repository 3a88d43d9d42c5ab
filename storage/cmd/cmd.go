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

package cmd

import (
	"github.com/nuts-foundation/ion-crawler/storage"
	"github.com/spf13/pflag"
)

// FlagSet returns the flags of the storage engine.
func FlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("storage", pflag.ContinueOnError)
	defs := storage.DefaultConfig()

	// SQL
	flags.String("storage.sql.connection", defs.SQL.ConnectionString, "Connection string of the SQL database holding resolved DIDs and submitted DIDs. "+
		"The scheme selects the database: sqlite (file:), postgres://, mysql:// or sqlserver://. "+
		"Defaults to a SQLite database in the data directory.")
	flags.Duration("storage.sql.slowquery", defs.SQL.SlowQueryThreshold, "Queries taking longer than this are logged on warn level. 0 disables it.")
	flags.Int("storage.sql.maxopenconnections", defs.SQL.MaxOpenConnections, "Maximum number of open connections to a server database. 0 means unlimited.")

	// Redis
	flags.String("storage.redis.address", defs.Redis.Address, "Address of the Redis server, as host:port or redis:// URL. "+
		"Setting it enables Redis, which is then used for the DID cache (crawler.cache=redis) and for cached CAS content.")
	flags.String("storage.redis.username", defs.Redis.Username, "Redis username. Overrides the username in the address URL.")
	flags.String("storage.redis.password", defs.Redis.Password, "Redis password. Overrides the password in the address URL.")
	flags.String("storage.redis.database", defs.Redis.Database, "Prefix of all Redis keys, so multiple crawlers can share a Redis server.")
	flags.String("storage.redis.sentinel.master", defs.Redis.Sentinel.Master, "Name of the Redis Sentinel master. Setting it enables Redis Sentinel.")
	flags.StringSlice("storage.redis.sentinel.nodes", defs.Redis.Sentinel.Nodes, "Addresses of the Redis Sentinels.")
	flags.String("storage.redis.sentinel.username", defs.Redis.Sentinel.Username, "Username for the Redis Sentinels.")
	flags.String("storage.redis.sentinel.password", defs.Redis.Sentinel.Password, "Password for the Redis Sentinels.")

	// Memcached
	flags.StringSlice("storage.memcached.address", defs.Memcached.Address, "Addresses of memcached servers. "+
		"Setting it makes memcached the store for cached CAS content, instead of Redis or memory.")
	return flags
}
