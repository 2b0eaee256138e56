// Package sqldb implements the repositories on top of sqlx. The same queries
// run against PostgreSQL (pgx) and SQLite (modernc); placeholders are written
// as ? and rebound per driver.
package sqldb

import (
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"rfpflow/internal/config"
)

func init() {
	sqlx.BindDriver(config.DriverSQLite, sqlx.QUESTION)
}

// NewDB opens a connection pool for the configured driver.
func NewDB(cfg *config.DBConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect(cfg.Driver, dataSourceName(cfg))
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", cfg.Driver, err)
	}
	if cfg.Driver == config.DriverSQLite {
		// SQLite allows a single writer.
		db.SetMaxOpenConns(1)
		return db, nil
	}
	db.SetMaxOpenConns(cfg.MaxOpen)
	db.SetMaxIdleConns(cfg.MaxIdle)
	return db, nil
}

// dataSourceName adds WAL and busy-timeout pragmas to SQLite paths.
func dataSourceName(cfg *config.DBConfig) string {
	dsn := cfg.DSN()
	if cfg.Driver != config.DriverSQLite {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)"
}
