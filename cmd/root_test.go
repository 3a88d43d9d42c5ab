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
	"bytes"
	"context"
	"testing"

	"github.com/nuts-foundation/ion-crawler/core"
	"github.com/nuts-foundation/ion-crawler/crawler"
	"github.com/nuts-foundation/ion-crawler/didcache"
	"github.com/nuts-foundation/ion-crawler/test/io"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestEnv(t *testing.T) {
	t.Setenv("CRAWLER_DATADIR", io.TestDirectory(t))
	t.Setenv("CRAWLER_HTTP_ADDRESS", "127.0.0.1:0")
	t.Setenv("CRAWLER_EVENTS_NATS_PORT", "0")
}

func execute(t *testing.T, ctx context.Context, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	command := CreateCommand(CreateSystem())
	command.SetOut(buf)
	command.SetErr(buf)
	command.SetArgs(args)
	err := command.ExecuteContext(ctx)
	return buf.String(), err
}

func Test_rootCmd(t *testing.T) {
	t.Run("no args prints help", func(t *testing.T) {
		output, err := execute(t, context.Background())

		require.NoError(t, err)
		assert.Contains(t, output, "Available Commands")
		assert.Contains(t, output, "crawl")
		assert.Contains(t, output, "server")
	})
	t.Run("config prints the current config", func(t *testing.T) {
		setTestEnv(t)

		output, err := execute(t, context.Background(), "config", "--crawler.maxfiles", "7")

		require.NoError(t, err)
		assert.Contains(t, output, "Current system config")
		assert.Contains(t, output, "crawler.maxfiles -> 7")
	})
}

func Test_serverCmd(t *testing.T) {
	t.Run("starts and stops when the context is cancelled", func(t *testing.T) {
		setTestEnv(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := execute(t, ctx, "server")

		assert.NoError(t, err)
	})
	t.Run("invalid engine config", func(t *testing.T) {
		setTestEnv(t)

		_, err := execute(t, context.Background(), "server", "--crawler.cache", "disk")

		assert.EqualError(t, err, "unable to configure "+crawler.ModuleName+": crawler.cache must be sql or redis (was: disk)")
	})
	t.Run("invalid log format", func(t *testing.T) {
		setTestEnv(t)

		_, err := execute(t, context.Background(), "server", "--loggerformat", "xml")

		assert.EqualError(t, err, "invalid formatter: 'xml'")
	})
}

func Test_crawlCmd(t *testing.T) {
	t.Run("type is required", func(t *testing.T) {
		setTestEnv(t)

		_, err := execute(t, context.Background(), "crawl")

		assert.EqualError(t, err, "--type is required")
	})
	t.Run("transaction log unavailable", func(t *testing.T) {
		setTestEnv(t)
		t.Setenv("CRAWLER_CRAWLER_TRANSACTIONS_CONNECTION", "not-a-mongodb-uri")

		_, err := execute(t, context.Background(), "crawl", "--type", "X")

		assert.ErrorIs(t, err, crawler.ErrStoreInitialization)
	})
}

func TestCreateSystem(t *testing.T) {
	system := CreateSystem()

	var names []string
	system.VisitEngines(func(engine core.Engine) {
		if named, ok := engine.(core.Named); ok {
			names = append(names, named.Name())
		}
	})
	assert.Equal(t, []string{"Status", "Metrics", "Storage", "Events", "Crawler"}, names)
	assert.Len(t, system.Routers, 3)
}

func Test_printCrawl(t *testing.T) {
	t.Run("cached DIDs are printed after the ones found, each once", func(t *testing.T) {
		out := new(bytes.Buffer)
		resolve := func(_ context.Context, didType string, maxFiles int, onBatch func([]string)) ([]string, error) {
			assert.Equal(t, "X", didType)
			assert.Equal(t, 2, maxFiles)
			onBatch([]string{"did:ion:b", "did:ion:c"})
			onBatch([]string{"did:ion:c"})
			return []string{"did:ion:a", "did:ion:b", "did:ion:c"}, nil
		}

		err := printCrawl(context.Background(), resolve, "X", 2, out)

		require.NoError(t, err)
		assert.Equal(t, "did:ion:b\ndid:ion:c\ndid:ion:a\n", out.String())
	})
	t.Run("nothing scanned prints the cache", func(t *testing.T) {
		out := new(bytes.Buffer)
		resolve := func(_ context.Context, _ string, _ int, _ func([]string)) ([]string, error) {
			return []string{"did:ion:a"}, nil
		}

		require.NoError(t, printCrawl(context.Background(), resolve, "X", 0, out))

		assert.Equal(t, "did:ion:a\n", out.String())
	})
	t.Run("partial result is printed", func(t *testing.T) {
		out := new(bytes.Buffer)
		resolve := func(_ context.Context, _ string, _ int, _ func([]string)) ([]string, error) {
			return []string{"did:ion:a"}, didcache.ErrCacheWrite
		}

		require.NoError(t, printCrawl(context.Background(), resolve, "X", 1, out))

		assert.Equal(t, "did:ion:a\n", out.String())
	})
	t.Run("error without result", func(t *testing.T) {
		resolve := func(_ context.Context, _ string, _ int, _ func([]string)) ([]string, error) {
			return nil, crawler.ErrStoreInitialization
		}

		err := printCrawl(context.Background(), resolve, "X", 1, new(bytes.Buffer))

		assert.ErrorIs(t, err, crawler.ErrStoreInitialization)
	})
}
