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

package crawler

import (
	"time"

	"github.com/nuts-foundation/ion-crawler/cas"
	"github.com/nuts-foundation/ion-crawler/vdr/didion"
)

const (
	// CacheSQL stores discovered DIDs in the SQL database of the storage engine.
	CacheSQL = "sql"
	// CacheRedis stores discovered DIDs in the Redis database of the storage engine.
	CacheRedis = "redis"
)

// Config holds the configuration of the crawler engine.
type Config struct {
	// DIDMethod is the method of derived DIDs.
	DIDMethod string `koanf:"didmethod"`
	// MaxFiles is the number of core index files a crawl inspects, unless specified otherwise.
	MaxFiles int `koanf:"maxfiles"`
	// Cache selects the store for discovered DIDs, CacheSQL or CacheRedis.
	Cache string `koanf:"cache"`
	// Types are the DID types crawled in the background.
	Types []string `koanf:"types"`
	// Interval at which Types are crawled in the background. 0 disables background crawls.
	Interval     time.Duration      `koanf:"interval"`
	CAS          CASConfig          `koanf:"cas"`
	Transactions TransactionsConfig `koanf:"transactions"`
}

// CASConfig holds the configuration of the IPFS node core index files are read from.
type CASConfig struct {
	Endpoint string        `koanf:"endpoint"`
	Timeout  time.Duration `koanf:"timeout"`
	// MaxFileSize is the maximum size in bytes of a (compressed) core index file.
	MaxFileSize int `koanf:"maxfilesize"`
	// Retries is the number of times a transient read failure is retried.
	Retries uint `koanf:"retries"`
	// CacheExpiry is how long read files are kept in the cache database. 0 disables caching.
	CacheExpiry time.Duration `koanf:"cacheexpiry"`
}

// TransactionsConfig holds the configuration of the MongoDB database holding the Sidetree transaction log.
type TransactionsConfig struct {
	Connection string `koanf:"connection"`
	Database   string `koanf:"database"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		DIDMethod: didion.DefaultMethod,
		MaxFiles:  100,
		Cache:     CacheSQL,
		CAS: CASConfig{
			Endpoint:    "http://localhost:5001",
			Timeout:     cas.DefaultTimeout,
			MaxFileSize: 100000,
			Retries:     3,
			CacheExpiry: time.Hour,
		},
		Transactions: TransactionsConfig{
			Connection: "mongodb://localhost:27017",
			Database:   "ion-mainnet-core",
		},
	}
}
