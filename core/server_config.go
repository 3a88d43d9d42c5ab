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
	"reflect"
	"strings"
	"time"

	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const defaultConfigFile = "crawler.yaml"
const configFileFlag = "configfile"

const defaultPrefix = "CRAWLER_"
const defaultDelimiter = "."
const configValueListSeparator = ","

// ServerConfig has global server settings.
type ServerConfig struct {
	Verbosity    string        `koanf:"verbosity"`
	LoggerFormat string        `koanf:"loggerformat"`
	Strictmode   bool          `koanf:"strictmode"`
	Datadir      string        `koanf:"datadir"`
	HTTP         HTTPConfig    `koanf:"http"`
	Tracing      TracingConfig `koanf:"tracing"`
	configMap    *koanf.Koanf
}

// HTTPConfig contains configuration for the HTTP interface.
type HTTPConfig struct {
	// Address holds the interface address the HTTP service must be bound to, in the format of `interface:port` (e.g. localhost:5555).
	Address string `koanf:"address"`
	// RateLimit limits the number of API requests.
	RateLimit RateLimitConfig `koanf:"ratelimit"`
}

// NewServerConfig creates an empty ServerConfig, see Load.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		configMap: koanf.New(defaultDelimiter),
	}
}

// Load loads the configuration from flags, config file and environment, then configures logging.
func (c *ServerConfig) Load(flags *pflag.FlagSet) error {
	if err := loadConfig(c.configMap, flags); err != nil {
		return err
	}
	if err := c.configMap.UnmarshalWithConf("", c, koanf.UnmarshalConf{}); err != nil {
		return err
	}
	return configureLogging(c.Verbosity, c.LoggerFormat)
}

// FlagSet returns the default server flags
func FlagSet() *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("server", pflag.ContinueOnError)
	flagSet.String(configFileFlag, defaultConfigFile, "Crawler config file")
	flagSet.String("verbosity", "info", "Log level (trace, debug, info, warn, error)")
	flagSet.String("loggerformat", "text", "Log format (text, json)")
	flagSet.String("http.address", ":8080", "Address and port the server will be listening to")
	flagSet.Int("http.ratelimit.requests", 60, "Number of API requests (crawls and submissions) allowed per http.ratelimit.interval. 0 disables rate limiting.")
	flagSet.Duration("http.ratelimit.interval", time.Minute, "Interval http.ratelimit.requests applies to, in Golang time.Duration string format (e.g. 1m).")
	flagSet.Int("http.ratelimit.burst", 10, "Number of API requests allowed at once.")
	flagSet.Bool("strictmode", false, "When set, insecure settings are forbidden.")
	flagSet.String("datadir", "./data", "Directory where the crawler stores its files.")
	flagSet.String("tracing.endpoint", "", "OTLP HTTP collector endpoint (host:port) traces are exported to. Tracing is disabled when not set.")
	flagSet.Bool("tracing.insecure", false, "Disables TLS towards the OTLP collector.")
	flagSet.Float64("tracing.sampleratio", 1, "Fraction of traces that is exported, between 0 and 1.")
	return flagSet
}

// PrintConfig returns the loaded configuration, one key per line.
func (c *ServerConfig) PrintConfig() string {
	return c.configMap.Sprint()
}

// InjectIntoEngine unmarshals the configuration under the engine's (lower case) name into its config struct.
func (c *ServerConfig) InjectIntoEngine(e Injectable) error {
	return unmarshalRecursive(c.configMap, []string{strings.ToLower(e.Name())}, e.Config())
}

// unmarshalRecursive unmarshals the configuration at path into target, then does the same for every
// struct (or map) field with a koanf tag, so nested structs held by pointer are populated too.
func unmarshalRecursive(configMap *koanf.Koanf, path []string, target interface{}) error {
	if err := configMap.UnmarshalWithConf(strings.Join(path, defaultDelimiter), target, koanf.UnmarshalConf{}); err != nil {
		return err
	}
	value := reflect.Indirect(reflect.ValueOf(target))
	if value.Kind() != reflect.Struct {
		return nil
	}
	for i := 0; i < value.NumField(); i++ {
		field := value.Type().Field(i)
		tag := field.Tag.Get("koanf")
		fieldType := field.Type
		if fieldType.Kind() == reflect.Ptr {
			fieldType = fieldType.Elem()
		}
		if tag == "" || (fieldType.Kind() != reflect.Struct && fieldType.Kind() != reflect.Map) {
			continue
		}
		if err := unmarshalRecursive(configMap, append(path, tag), value.Field(i).Addr().Interface()); err != nil {
			return err
		}
	}
	return nil
}
