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

package core

import (
	"os"
	"path"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerConfig_Load(t *testing.T) {
	t.Run("sets defaults", func(t *testing.T) {
		cfg := NewServerConfig()

		err := cfg.Load(FlagSet())
		require.NoError(t, err)

		assert.Equal(t, "info", cfg.Verbosity)
		assert.Equal(t, "text", cfg.LoggerFormat)
		assert.Equal(t, ":8080", cfg.HTTP.Address)
		assert.Equal(t, "./data", cfg.Datadir)
		assert.False(t, cfg.Strictmode)
	})
	t.Run("sets global env prefix", func(t *testing.T) {
		cfg := NewServerConfig()
		t.Setenv("CRAWLER_KEY", "value")

		err := cfg.Load(FlagSet())
		require.NoError(t, err)

		assert.Equal(t, "value", cfg.configMap.Get("key"))
	})
	t.Run("sets correct key replacer", func(t *testing.T) {
		cfg := NewServerConfig()
		t.Setenv("CRAWLER_HTTP_ADDRESS", "localhost:1234")

		err := cfg.Load(FlagSet())
		require.NoError(t, err)

		assert.Equal(t, "localhost:1234", cfg.HTTP.Address)
	})
	t.Run("env list values are split on comma", func(t *testing.T) {
		cfg := NewServerConfig()
		t.Setenv("CRAWLER_LIST", "a, b,c")

		err := cfg.Load(FlagSet())
		require.NoError(t, err)

		assert.Equal(t, []string{"a", "b", "c"}, cfg.configMap.Strings("list"))
	})
	t.Run("env overrides default flag", func(t *testing.T) {
		cfg := NewServerConfig()
		t.Setenv("CRAWLER_VERBOSITY", "warn")
		defer logrus.SetLevel(logrus.InfoLevel)

		err := cfg.Load(FlagSet())
		require.NoError(t, err)

		assert.Equal(t, "warn", cfg.Verbosity)
		assert.Equal(t, logrus.WarnLevel, logrus.GetLevel())
	})
	t.Run("flag overrides env", func(t *testing.T) {
		cfg := NewServerConfig()
		t.Setenv("CRAWLER_DATADIR", "from-env")
		flags := FlagSet()
		require.NoError(t, flags.Parse([]string{"--datadir", "from-flag"}))

		err := cfg.Load(flags)
		require.NoError(t, err)

		assert.Equal(t, "from-flag", cfg.Datadir)
	})
	t.Run("strict mode can be turned on", func(t *testing.T) {
		cfg := NewServerConfig()
		flags := FlagSet()
		require.NoError(t, flags.Parse([]string{"--strictmode"}))

		err := cfg.Load(flags)

		require.NoError(t, err)
		assert.True(t, cfg.Strictmode)
	})
	t.Run("reads config file", func(t *testing.T) {
		configFile := path.Join(t.TempDir(), "crawler.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("datadir: from-file\nhttp:\n  address: localhost:9999\n"), 0644))
		flags := FlagSet()
		require.NoError(t, flags.Parse([]string{"--configfile", configFile}))
		cfg := NewServerConfig()

		err := cfg.Load(flags)

		require.NoError(t, err)
		assert.Equal(t, "from-file", cfg.Datadir)
		assert.Equal(t, "localhost:9999", cfg.HTTP.Address)
	})
	t.Run("config file location from env", func(t *testing.T) {
		configFile := path.Join(t.TempDir(), "other.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("datadir: from-file"), 0644))
		t.Setenv("CRAWLER_CONFIGFILE", configFile)
		cfg := NewServerConfig()

		err := cfg.Load(FlagSet())

		require.NoError(t, err)
		assert.Equal(t, "from-file", cfg.Datadir)
	})
	t.Run("missing default config file is ignored", func(t *testing.T) {
		cfg := NewServerConfig()

		err := cfg.Load(FlagSet())

		assert.NoError(t, err)
	})
	t.Run("error - missing config file", func(t *testing.T) {
		flags := FlagSet()
		require.NoError(t, flags.Parse([]string{"--configfile", "non-existing.yaml"}))
		cfg := NewServerConfig()

		err := cfg.Load(flags)

		assert.EqualError(t, err, "config file non-existing.yaml not found")
	})
	t.Run("error - incorrect yaml", func(t *testing.T) {
		configFile := path.Join(t.TempDir(), "corrupt.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("datadir: [unclosed"), 0644))
		flags := FlagSet()
		require.NoError(t, flags.Parse([]string{"--configfile", configFile}))
		cfg := NewServerConfig()

		err := cfg.Load(flags)

		assert.Error(t, err)
	})
	t.Run("error - incorrect verbosity", func(t *testing.T) {
		flags := FlagSet()
		require.NoError(t, flags.Parse([]string{"--verbosity", "hell"}))
		cfg := NewServerConfig()

		err := cfg.Load(flags)

		assert.Error(t, err)
	})
	t.Run("error - incorrect logger format", func(t *testing.T) {
		flags := FlagSet()
		require.NoError(t, flags.Parse([]string{"--loggerformat", "fluffy"}))
		cfg := NewServerConfig()

		err := cfg.Load(flags)

		assert.EqualError(t, err, "invalid formatter: 'fluffy'")
	})
	t.Run("json logger format", func(t *testing.T) {
		flags := FlagSet()
		require.NoError(t, flags.Parse([]string{"--loggerformat", "json"}))
		cfg := NewServerConfig()
		defer logrus.SetFormatter(&logrus.TextFormatter{})

		err := cfg.Load(flags)

		require.NoError(t, err)
		assert.IsType(t, &logrus.JSONFormatter{}, logrus.StandardLogger().Formatter)
	})
}

func TestServerConfig_PrintConfig(t *testing.T) {
	cfg := NewServerConfig()
	flags := FlagSet()
	flags.String("camelCaseKey", "value", "description")
	require.NoError(t, cfg.Load(flags))

	bs := cfg.PrintConfig()

	assert.Contains(t, bs, "camelCaseKey")
	assert.Contains(t, bs, "http.address")
}

func TestServerConfig_InjectIntoEngine(t *testing.T) {
	t.Run("param is injected", func(t *testing.T) {
		cfg := NewServerConfig()
		flags := testFlagSet()
		flags.AddFlagSet(FlagSet())
		require.NoError(t, flags.Parse([]string{"--testengine.endpoint", "http://ipfs:5001", "--testengine.retry.attempts", "5", "--testengine.limits.maxfiles", "10"}))
		require.NoError(t, cfg.Load(flags))
		engine := &TestEngine{TestConfig: testDefaultConfig()}

		err := cfg.InjectIntoEngine(engine)

		require.NoError(t, err)
		assert.Equal(t, "http://ipfs:5001", engine.TestConfig.Endpoint)
		assert.Equal(t, 5, engine.TestConfig.Retry.Attempts)
		require.NotNil(t, engine.TestConfig.Limits)
		assert.Equal(t, 10, engine.TestConfig.Limits.MaxFiles)
		assert.Equal(t, []string{"X"}, engine.TestConfig.Types)
	})
	t.Run("env list is injected", func(t *testing.T) {
		t.Setenv("CRAWLER_TESTENGINE_TYPES", "Y,Z")
		cfg := NewServerConfig()
		flags := testFlagSet()
		flags.AddFlagSet(FlagSet())
		require.NoError(t, cfg.Load(flags))
		engine := &TestEngine{TestConfig: testDefaultConfig()}

		err := cfg.InjectIntoEngine(engine)

		require.NoError(t, err)
		assert.Equal(t, []string{"Y", "Z"}, engine.TestConfig.Types)
	})
}

func TestTestServerConfig(t *testing.T) {
	cfg := TestServerConfig(ServerConfig{Datadir: "dir", Strictmode: true})

	assert.Equal(t, "dir", cfg.Datadir)
	assert.True(t, cfg.Strictmode)
}
