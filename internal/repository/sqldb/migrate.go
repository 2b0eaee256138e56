package sqldb

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"rfpflow/internal/config"
)

//go:embed migrations
var migrationsFS embed.FS

// NewMigrator returns a migrator over the embedded migrations for the
// configured driver. It owns its own connection; Close releases it.
func NewMigrator(cfg *config.DBConfig) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, "migrations/"+migrationDir(cfg.Driver))
	if err != nil {
		return nil, fmt.Errorf("sqldb.NewMigrator: source: %w", err)
	}

	db, err := sql.Open(cfg.Driver, dataSourceName(cfg))
	if err != nil {
		return nil, fmt.Errorf("sqldb.NewMigrator: open: %w", err)
	}

	var driver database.Driver
	switch cfg.Driver {
	case config.DriverSQLite:
		driver, err = sqlite.WithInstance(db, &sqlite.Config{})
	default:
		driver, err = postgres.WithInstance(db, &postgres.Config{})
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqldb.NewMigrator: driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, cfg.Driver, driver)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqldb.NewMigrator: %w", err)
	}
	return m, nil
}

// MigrateUp applies all pending migrations.
func MigrateUp(cfg *config.DBConfig) error {
	m, err := NewMigrator(cfg)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("sqldb.MigrateUp: %w", err)
	}
	version, _, _ := m.Version()
	log.Printf("sqldb: schema at version %d (%s)", version, cfg.Driver)
	return nil
}

func migrationDir(driver string) string {
	if driver == config.DriverSQLite {
		return "sqlite"
	}
	return "postgres"
}
