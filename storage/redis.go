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
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nuts-foundation/ion-crawler/storage/log"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisConfig specifies config for Redis databases.
type RedisConfig struct {
	// Address is either host:port or a redis://, rediss:// or unix:// URL.
	Address  string              `koanf:"address"`
	Username string              `koanf:"username"`
	Password string              `koanf:"password"`
	Database string              `koanf:"database"`
	Sentinel RedisSentinelConfig `koanf:"sentinel"`
}

// RedisSentinelConfig specifies properties for connecting to a Redis Sentinel cluster.
type RedisSentinelConfig struct {
	Master   string   `koanf:"master"`
	Nodes    []string `koanf:"nodes"`
	Username string   `koanf:"username"`
	Password string   `koanf:"password"`
}

func (r RedisConfig) isConfigured() bool {
	return len(r.Address) > 0
}

func (r RedisSentinelConfig) enabled() bool {
	return r.Master != "" || len(r.Nodes) > 0
}

func (r RedisConfig) validate() error {
	if !r.Sentinel.enabled() {
		return nil
	}
	switch {
	case !r.isConfigured():
		return errors.New("redis sentinel configured without redis address")
	case r.Sentinel.Master == "":
		return errors.New("storage.redis.sentinel.master is not configured")
	case len(r.Sentinel.Nodes) == 0:
		return errors.New("storage.redis.sentinel.nodes is not configured")
	}
	return nil
}

// clientOptions converts the config into options for redis.NewUniversalClient.
// The address URL supplies the connection settings; with Sentinel enabled the client connects through the
// Sentinel nodes to the named master instead of to the address itself.
func (r RedisConfig) clientOptions() (*redis.UniversalOptions, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}
	address := r.Address
	if !isRedisURL(address) {
		address = "redis://" + address
	}
	parsed, err := redis.ParseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid redis address: %w", err)
	}
	result := &redis.UniversalOptions{
		Addrs:           []string{parsed.Addr},
		Username:        parsed.Username,
		Password:        parsed.Password,
		DB:              parsed.DB,
		Protocol:        parsed.Protocol,
		ClientName:      parsed.ClientName,
		MaxRetries:      parsed.MaxRetries,
		MinRetryBackoff: parsed.MinRetryBackoff,
		MaxRetryBackoff: parsed.MaxRetryBackoff,
		DialTimeout:     parsed.DialTimeout,
		ReadTimeout:     parsed.ReadTimeout,
		WriteTimeout:    parsed.WriteTimeout,
		PoolFIFO:        parsed.PoolFIFO,
		PoolSize:        parsed.PoolSize,
		PoolTimeout:     parsed.PoolTimeout,
		MinIdleConns:    parsed.MinIdleConns,
		MaxIdleConns:    parsed.MaxIdleConns,
		ConnMaxIdleTime: parsed.ConnMaxIdleTime,
		ConnMaxLifetime: parsed.ConnMaxLifetime,
		TLSConfig:       parsed.TLSConfig,
	}
	if r.Username != "" {
		result.Username = r.Username
	}
	if r.Password != "" {
		result.Password = r.Password
	}
	if r.Sentinel.enabled() {
		result.MasterName = r.Sentinel.Master
		result.Addrs = r.Sentinel.Nodes
		result.SentinelUsername = r.Sentinel.Username
		result.SentinelPassword = r.Sentinel.Password
		if result.TLSConfig != nil {
			// the master is discovered through the Sentinels, so its name isn't known upfront
			result.TLSConfig = result.TLSConfig.Clone()
			result.TLSConfig.ServerName = ""
		}
	}
	return result, nil
}

func isRedisURL(address string) bool {
	for _, scheme := range []string{"redis://", "rediss://", "unix://"} {
		if strings.HasPrefix(address, scheme) {
			return true
		}
	}
	return false
}

// createRedisDatabase creates the client for the configured Redis server and checks it can be reached.
func createRedisDatabase(ctx context.Context, config RedisConfig) (*RedisDatabase, error) {
	opts, err := config.clientOptions()
	if err != nil {
		return nil, err
	}
	client := redis.NewUniversalClient(opts)
	if err = client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("unable to connect to Redis database: %w", err)
	}
	log.Logger().
		WithField("addresses", opts.Addrs).
		WithField("sentinel", opts.MasterName != "").
		Info("Connected to Redis database")
	return &RedisDatabase{
		Client: client,
		Prefix: config.Database,
	}, nil
}

// Key joins the prefix (if any) and given parts into a Redis key.
func (r RedisDatabase) Key(parts ...string) string {
	if len(r.Prefix) > 0 {
		parts = append([]string{r.Prefix}, parts...)
	}
	return strings.Join(parts, ":")
}

// redisLogger routes go-redis internal logging to logrus.
type redisLogger struct {
	underlying *logrus.Entry
}

func (r redisLogger) Printf(_ context.Context, format string, v ...interface{}) {
	r.underlying.Infof(format, v...)
}
