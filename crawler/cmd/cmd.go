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
	"github.com/nuts-foundation/ion-crawler/crawler"
	"github.com/spf13/pflag"
)

// FlagSet contains flags relevant for the crawler engine.
func FlagSet() *pflag.FlagSet {
	defs := crawler.DefaultConfig()
	flagSet := pflag.NewFlagSet("crawler", pflag.ContinueOnError)
	flagSet.String("crawler.didmethod", defs.DIDMethod, "Method of the derived DIDs, e.g. ion or ion:test.")
	flagSet.Int("crawler.maxfiles", defs.MaxFiles, "Number of core index files a crawl inspects, newest first, unless a request specifies otherwise.")
	flagSet.String("crawler.cache", defs.Cache, "Where discovered DIDs are cached: sql or redis (requires storage.redis.address).")
	flagSet.StringSlice("crawler.types", defs.Types, "DID types crawled in the background.")
	flagSet.Duration("crawler.interval", defs.Interval,
		"Interval at which crawler.types are crawled in the background, in Golang time.Duration string format (e.g. 10m). "+
			"0 disables background crawls.")
	flagSet.String("crawler.cas.endpoint", defs.CAS.Endpoint, "Endpoint of the IPFS HTTP API core index files are read from.")
	flagSet.Duration("crawler.cas.timeout", defs.CAS.Timeout, "Maximum duration of a single IPFS read. A read that takes longer is treated as not found.")
	flagSet.Int("crawler.cas.maxfilesize", defs.CAS.MaxFileSize, "Maximum size in bytes of a compressed core index file.")
	flagSet.Uint("crawler.cas.retries", defs.CAS.Retries, "Number of times a transient IPFS read failure is retried.")
	flagSet.Duration("crawler.cas.cacheexpiry", defs.CAS.CacheExpiry, "How long core index files are kept in the cache database. 0 disables caching.")
	flagSet.String("crawler.transactions.connection", defs.Transactions.Connection, "MongoDB connection string of the Sidetree transaction log.")
	flagSet.String("crawler.transactions.database", defs.Transactions.Database, "MongoDB database holding the Sidetree transaction log.")
	return flagSet
}
