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
	"time"

	"github.com/nuts-foundation/ion-crawler/core"
	"github.com/nuts-foundation/ion-crawler/storage/log"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const engineName = "Storage"

var redisConnectTimeout = 10 * time.Second

// New creates a new instance of the storage engine.
func New() Engine {
	return &engine{
		config: DefaultConfig(),
	}
}

type engine struct {
	config        Config
	datadir       string
	sqlDB         *gorm.DB
	sqlDialect    string
	redisDatabase *RedisDatabase
	cacheDatabase CacheDatabase
}

func (e *engine) Name() string {
	return engineName
}

func (e *engine) Config() interface{} {
	return &e.config
}

// Configure loads the given configurations in the engine.
func (e *engine) Configure(config core.ServerConfig) error {
	e.datadir = config.Datadir
	if err := e.config.Redis.validate(); err != nil {
		return err
	}
	if e.config.SQL.SlowQueryThreshold < 0 || e.config.SQL.MaxOpenConnections < 0 {
		return errors.New("storage.sql.slowquery and storage.sql.maxopenconnections can't be negative")
	}
	if len(e.config.SQL.ConnectionString) > 0 {
		if _, err := sqlDialect(e.config.SQL.ConnectionString); err != nil {
			return err
		}
	}
	redis.SetLogger(redisLogger{underlying: log.Logger()})
	return nil
}

// Start opens the configured databases. The SQL database is migrated to the latest schema.
func (e *engine) Start() error {
	if err := e.initSQLDatabase(); err != nil {
		return fmt.Errorf("failed to initialize SQL database: %w", err)
	}
	if e.config.Redis.isConfigured() {
		ctx, cancel := context.WithTimeout(context.Background(), redisConnectTimeout)
		defer cancel()
		redisDatabase, err := createRedisDatabase(ctx, e.config.Redis)
		if err != nil {
			return err
		}
		e.redisDatabase = redisDatabase
	}
	return e.initCacheDatabase()
}

func (e *engine) initSQLDatabase() error {
	connectionString := e.config.SQL.ConnectionString
	if len(connectionString) == 0 {
		connectionString = sqliteConnectionString(e.datadir)
	}
	db, dialect, err := openSQLDatabase(connectionString, e.config.SQL)
	if err != nil {
		return err
	}
	if err = migrateSQLDatabase(db, dialect); err != nil {
		_ = closeSQLDatabase(db)
		return err
	}
	e.sqlDB = db
	e.sqlDialect = dialect
	log.Logger().Debugf("SQL database opened (dialect: %s)", dialect)
	return nil
}

func (e *engine) initCacheDatabase() error {
	switch {
	case e.config.Memcached.isConfigured():
		client, err := newMemcachedClient(e.config.Memcached)
		if err != nil {
			return err
		}
		e.cacheDatabase = NewMemcachedCacheDatabase(client)
	case e.redisDatabase != nil:
		e.cacheDatabase = NewRedisCacheDatabase(e.redisDatabase)
	default:
		e.cacheDatabase = NewInMemoryCacheDatabase()
	}
	return nil
}

// Shutdown closes all databases, continuing on failure and returning all errors combined.
func (e *engine) Shutdown() error {
	var errs []error
	if e.cacheDatabase != nil {
		e.cacheDatabase.close()
	}
	if e.redisDatabase != nil {
		if err := e.redisDatabase.Client.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis client: %w", err))
		}
	}
	if e.sqlDB != nil {
		if err := closeSQLDatabase(e.sqlDB); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (e *engine) GetSQLDatabase() *gorm.DB {
	return e.sqlDB
}

func (e *engine) GetRedisDatabase() *RedisDatabase {
	return e.redisDatabase
}

func (e *engine) GetCacheDatabase() CacheDatabase {
	return e.cacheDatabase
}

func (e *engine) Diagnostics() []core.DiagnosticResult {
	var cacheBackend string
	if e.cacheDatabase != nil {
		cacheBackend = e.cacheDatabase.backendName()
	}
	return []core.DiagnosticResult{
		&core.GenericDiagnosticResult{Title: "sql_dialect", Value: e.sqlDialect},
		&core.GenericDiagnosticResult{Title: "redis_enabled", Value: e.redisDatabase != nil},
		&core.GenericDiagnosticResult{Title: "cache_backend", Value: cacheBackend},
	}
}
