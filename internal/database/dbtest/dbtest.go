// Package dbtest builds throwaway SQLite stores for tests.
package dbtest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/rushcargo/internal/database"
	"github.com/jask/rushcargo/internal/database/repository"
)

// Open migrates a fresh database file under t.TempDir and seeds the demo data.
func Open(t testing.TB) *sql.DB {
	t.Helper()
	db := OpenEmpty(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, database.SeedDemo(ctx, db))
	return db
}

// OpenEmpty is Open without the demo data.
func OpenEmpty(t testing.TB) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.Migrate(database.DriverSQLite, path))

	db, err := database.Open(database.DriverSQLite, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// Store is Open wrapped in the repositories.
func Store(t testing.TB) *repository.Store {
	t.Helper()
	return repository.NewStore(Open(t))
}
