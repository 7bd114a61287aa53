package commands

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/jask/rushcargo/internal/config"
	"github.com/jask/rushcargo/internal/database"
	"github.com/jask/rushcargo/internal/logging"
	"github.com/jask/rushcargo/internal/secrets"
)

// storeTarget is the path or URL the configured driver opens. A postgres
// URL without a password picks up the stored database secret.
func storeTarget(c config.DatabaseConfig) (string, error) {
	switch c.Driver {
	case database.DriverSQLite:
		if err := os.MkdirAll(filepath.Dir(c.Path), 0o755); err != nil {
			return "", fmt.Errorf("mkdir db dir: %w", err)
		}
		return c.Path, nil
	case database.DriverPostgres:
		pw, err := secrets.Password()
		if errors.Is(err, secrets.ErrNotFound) {
			return c.DSN, nil
		}
		if err != nil {
			return "", fmt.Errorf("read database secret: %w", err)
		}
		return withPassword(c.DSN, pw)
	}
	return "", fmt.Errorf("unsupported database.driver %q", c.Driver)
}

// withPassword sets pw on a postgres URL unless it already carries one.
func withPassword(dsn, pw string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("parse database.dsn: %w", err)
	}
	if u.User == nil {
		return dsn, nil
	}
	if _, set := u.User.Password(); set {
		return dsn, nil
	}
	u.User = url.UserPassword(u.User.Username(), pw)
	return u.String(), nil
}

// openStore migrates and seeds as configured, then opens the store.
func openStore(ctx context.Context, c config.DatabaseConfig) (*sql.DB, error) {
	target, err := storeTarget(c)
	if err != nil {
		return nil, err
	}
	if c.Migrate {
		if err := database.Migrate(c.Driver, target); err != nil {
			return nil, err
		}
	}
	db, err := database.Open(c.Driver, target)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	if c.Seed {
		if err := database.SeedDemo(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("seed demo data: %w", err)
		}
		logging.L().Info("demo data loaded", "driver", c.Driver)
	}
	return db, nil
}
