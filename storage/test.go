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
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/nuts-foundation/ion-crawler/core"
	"github.com/nuts-foundation/ion-crawler/test/io"
	"github.com/stretchr/testify/require"
)

// NewTestStorageEngine creates a started storage engine backed by an in-memory SQLite database.
// It is shut down when the test completes.
func NewTestStorageEngine(t *testing.T) Engine {
	result := New().(*engine)
	result.config.SQL = SQLConfig{ConnectionString: SQLiteInMemoryConnectionString}
	startTestEngine(t, result)
	return result
}

// NewTestStorageEngineRedis creates a started storage engine like NewTestStorageEngine, with Redis backed by miniredis.
func NewTestStorageEngineRedis(t *testing.T) (Engine, *miniredis.Miniredis) {
	redis := miniredis.RunT(t)
	result := New().(*engine)
	result.config.SQL = SQLConfig{ConnectionString: SQLiteInMemoryConnectionString}
	result.config.Redis = RedisConfig{Address: redis.Addr(), Database: "db"}
	startTestEngine(t, result)
	return result, redis
}

func startTestEngine(t *testing.T, e *engine) {
	require.NoError(t, e.Configure(core.TestServerConfig(core.ServerConfig{Datadir: io.TestDirectory(t)})))
	require.NoError(t, e.Start())
	t.Cleanup(func() {
		_ = e.Shutdown()
	})
}
