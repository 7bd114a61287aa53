package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var migrations embed.FS

// Migrate applies all up migrations for driver. The target is the sqlite file
// path or the postgres connection URL; migrate opens and closes its own handle.
func Migrate(driver, target string) error {
	var url string
	switch driver {
	case DriverSQLite:
		url = fmt.Sprintf("sqlite3://%s?_foreign_keys=on", target)
	case DriverPostgres:
		url = target
	default:
		return fmt.Errorf("unsupported driver %q", driver)
	}

	src, err := iofs.New(migrations, "migrations/"+driver)
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}
	defer m.Close()

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}
