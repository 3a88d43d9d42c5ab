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
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// loadConfig loads the configuration into the map, in increasing priority:
// flag defaults, the config file, environment variables and command line flags.
func loadConfig(configMap *koanf.Koanf, flags *pflag.FlagSet) error {
	if err := configMap.Load(posflag.Provider(flags, defaultDelimiter, configMap), nil); err != nil {
		return err
	}
	if err := loadFromFile(configMap, flags); err != nil {
		return err
	}
	if err := configMap.Load(env.ProviderWithValue(defaultPrefix, defaultDelimiter, envKeyValue), nil); err != nil {
		return err
	}
	// flags that weren't set don't override values loaded before
	return configMap.Load(posflag.Provider(flags, defaultDelimiter, configMap), nil)
}

// loadFromFile loads the YAML config file. The default config file may be absent,
// one given explicitly through the command line or environment must exist.
func loadFromFile(configMap *koanf.Koanf, flags *pflag.FlagSet) error {
	path, explicit := resolveConfigFilePath(flags)
	if path == "" {
		return nil
	}
	err := configMap.Load(file.Provider(path), yaml.Parser())
	if errors.Is(err, os.ErrNotExist) {
		if explicit {
			return fmt.Errorf("config file %s not found", path)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("unable to load config file %s: %w", path, err)
	}
	return nil
}

// resolveConfigFilePath returns the config file given on the command line, else through the environment,
// else the default one. explicit is false for the default.
func resolveConfigFilePath(flags *pflag.FlagSet) (path string, explicit bool) {
	flag := flags.Lookup(configFileFlag)
	if flag != nil && flag.Changed {
		return flag.Value.String(), true
	}
	if value := os.Getenv(envVariable(configFileFlag)); value != "" {
		return value, true
	}
	if flag != nil {
		return flag.DefValue, false
	}
	return "", false
}

// envVariable returns the environment variable for a config key, e.g. CRAWLER_HTTP_ADDRESS for http.address.
func envVariable(key string) string {
	return defaultPrefix + strings.ToUpper(strings.ReplaceAll(key, defaultDelimiter, "_"))
}

// envKeyValue maps an environment variable to a config key (CRAWLER_HTTP_ADDRESS to http.address).
// Comma separated values become lists.
func envKeyValue(variable string, value string) (string, interface{}) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(variable, defaultPrefix)), "_", defaultDelimiter)
	if !strings.Contains(value, configValueListSeparator) {
		return key, value
	}
	values := strings.Split(value, configValueListSeparator)
	for i := range values {
		values[i] = strings.TrimSpace(values[i])
	}
	return key, values
}
