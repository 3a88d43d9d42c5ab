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
	"github.com/nuts-foundation/ion-crawler/events"
	"github.com/spf13/pflag"
)

// Config keys of the events engine.
const (
	ConfEventsPort              = "events.nats.port"
	ConfEventsHostname          = "events.nats.hostname"
	ConfEventsStorageDir        = "events.nats.storagedir"
	ConfEventsTimeout           = "events.nats.timeout"
	ConfEventsStreamMaxMessages = "events.stream.maxmessages"
	ConfEventsStreamMaxAge      = "events.stream.maxage"
)

// FlagSet returns the flags of the events engine.
func FlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("events", pflag.ContinueOnError)
	defs := events.DefaultConfig()

	flags.Int(ConfEventsPort, defs.Nats.Port, "Port of the embedded NATS server discovered DIDs are published on. 0 disables it.")
	flags.String(ConfEventsHostname, defs.Nats.Hostname, "Hostname the embedded NATS server binds to.")
	flags.String(ConfEventsStorageDir, defs.Nats.StorageDir, "Directory of the NATS stream files. Defaults to <datadir>/events.")
	flags.Int(ConfEventsTimeout, defs.Nats.Timeout, "Timeout (in seconds) for starting and publishing to the NATS server.")
	flags.Int64(ConfEventsStreamMaxMessages, defs.Stream.MaxMessages, "Number of discovered DID batches kept on the stream. -1 keeps all of them.")
	flags.Duration(ConfEventsStreamMaxAge, defs.Stream.MaxAge, "How long discovered DID batches are kept on the stream. 0 keeps them until the message limit is reached.")
	return flags
}
