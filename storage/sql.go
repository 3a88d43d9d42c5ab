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
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/nuts-foundation/ion-crawler/storage/log"
	"github.com/nuts-foundation/sqlite"
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
)

//go:embed sql_migrations/*.sql
var sqlMigrationsFS embed.FS

const sqlMigrationsDir = "sql_migrations"
const sqlMigrationsTable = "schema_migrations"

// SQLiteInMemoryConnectionString is the connection string for a private, in-memory SQLite database.
const SQLiteInMemoryConnectionString = "file::memory:?_pragma=foreign_keys(1)"

func sqliteConnectionString(datadir string) string {
	return "file:" + path.Join(datadir, "sqlite.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
}

// sqlDialect returns the goose dialect for the given connection string, derived from its scheme.
func sqlDialect(connectionString string) (string, error) {
	scheme := strings.Split(connectionString, ":")[0]
	switch scheme {
	case "file", "sqlite":
		return "sqlite3", nil
	case "postgres", "postgresql":
		return "postgres", nil
	case "mysql":
		return "mysql", nil
	case "sqlserver", "azuresql":
		return "mssql", nil
	default:
		return "", fmt.Errorf("unsupported SQL database: %s", scheme)
	}
}

func openSQLDatabase(connectionString string, config SQLConfig) (*gorm.DB, string, error) {
	dialect, err := sqlDialect(connectionString)
	if err != nil {
		return nil, "", err
	}
	gormConfig := &gorm.Config{
		TranslateError: true,
		Logger:         newQueryLogger(log.Logger(), config.SlowQueryThreshold),
	}
	var db *gorm.DB
	switch dialect {
	case "sqlite3":
		var underlying *sql.DB
		underlying, err = sql.Open(sqlite.DriverName, strings.TrimPrefix(connectionString, "sqlite:"))
		if err != nil {
			return nil, "", err
		}
		// SQLite only supports a single writer; in-memory databases only exist within a single connection.
		underlying.SetMaxOpenConns(1)
		db, err = gorm.Open(&sqlite.Dialector{Conn: underlying}, gormConfig)
	case "postgres":
		db, err = gorm.Open(postgres.Open(connectionString), gormConfig)
	case "mysql":
		db, err = gorm.Open(mysql.Open(strings.TrimPrefix(connectionString, "mysql://")), gormConfig)
	case "mssql":
		db, err = gorm.Open(sqlserver.Open(strings.Replace(connectionString, "azuresql://", "sqlserver://", 1)), gormConfig)
	}
	if err != nil {
		return nil, "", err
	}
	if dialect != "sqlite3" && config.MaxOpenConnections > 0 {
		underlying, err := db.DB()
		if err != nil {
			return nil, "", err
		}
		underlying.SetMaxOpenConns(config.MaxOpenConnections)
	}
	return db, dialect, nil
}

func migrateSQLDatabase(db *gorm.DB, dialect string) error {
	underlying, err := db.DB()
	if err != nil {
		return err
	}
	log.Logger().Debug("Running database migrations...")
	goose.SetLogger(gooseLogger{logger: log.Logger()})
	goose.SetVerbose(log.Logger().Logger.IsLevelEnabled(logrus.DebugLevel))
	goose.SetBaseFS(sqlMigrationsFS)
	goose.SetTableName(sqlMigrationsTable)
	if err = goose.SetDialect(dialect); err != nil {
		return err
	}
	return goose.Up(underlying, sqlMigrationsDir)
}

func closeSQLDatabase(db *gorm.DB) error {
	underlying, err := db.DB()
	if err != nil {
		return err
	}
	if err = underlying.Close(); err != nil {
		return errors.Join(errors.New("failed to close SQL database"), err)
	}
	return nil
}

type gooseLogger struct {
	logger *logrus.Entry
}

func (m gooseLogger) Printf(format string, v ...interface{}) {
	m.logger.Debugf(strings.TrimSuffix(format, "\n"), v...)
}

func (m gooseLogger) Fatalf(format string, v ...interface{}) {
	m.logger.Errorf(strings.TrimSuffix(format, "\n"), v...)
}
