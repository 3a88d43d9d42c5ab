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
	"errors"
	"time"

	"github.com/spf13/pflag"
)

const testEngineName = "testengine"

// TestServerConfig returns an empty ServerConfig, only taking the datadir and strict mode from the template.
func TestServerConfig(template ServerConfig) ServerConfig {
	config := NewServerConfig()
	config.Datadir = template.Datadir
	config.Strictmode = template.Strictmode
	return *config
}

// TestEngineConfig mimics the shape of an engine configuration: plain values, nested structs, lists and durations.
type TestEngineConfig struct {
	Endpoint string                 `koanf:"endpoint"`
	Types    []string               `koanf:"types"`
	Interval time.Duration          `koanf:"interval"`
	Retry    TestEngineRetryConfig  `koanf:"retry"`
	Limits   *TestEngineLimitConfig `koanf:"limits"`
}

// TestEngineRetryConfig is a nested TestEngineConfig.
type TestEngineRetryConfig struct {
	Attempts int `koanf:"attempts"`
}

// TestEngineLimitConfig is a nested TestEngineConfig, held by pointer.
type TestEngineLimitConfig struct {
	MaxFiles int `koanf:"maxfiles"`
}

// TestEngine is a configurable, runnable engine without behaviour.
type TestEngine struct {
	TestConfig    TestEngineConfig
	ShutdownError bool
	Started       bool
}

func testDefaultConfig() TestEngineConfig {
	return TestEngineConfig{
		Types:  []string{"X"},
		Retry:  TestEngineRetryConfig{Attempts: 3},
		Limits: &TestEngineLimitConfig{MaxFiles: 100},
	}
}

func (i *TestEngine) Start() error {
	i.Started = true
	return nil
}

func (i *TestEngine) Shutdown() error {
	i.Started = false
	if i.ShutdownError {
		return errors.New("failure")
	}
	return nil
}

func (i *TestEngine) Config() interface{} {
	return &i.TestConfig
}

func (i *TestEngine) Name() string {
	return testEngineName
}

func testFlagSet() *pflag.FlagSet {
	defs := testDefaultConfig()
	flags := pflag.NewFlagSet(testEngineName, pflag.ContinueOnError)
	flags.String(testEngineName+".endpoint", defs.Endpoint, "Endpoint of the test engine.")
	flags.StringSlice(testEngineName+".types", defs.Types, "Types of the test engine.")
	flags.Duration(testEngineName+".interval", defs.Interval, "Interval of the test engine.")
	flags.Int(testEngineName+".retry.attempts", defs.Retry.Attempts, "Retry attempts of the test engine.")
	flags.Int(testEngineName+".limits.maxfiles", defs.Limits.MaxFiles, "File limit of the test engine.")
	return flags
}
