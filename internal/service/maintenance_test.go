package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/rushcargo/internal/database"
	"github.com/jask/rushcargo/internal/database/dbtest"
)

func TestResetEmptiesEveryTable(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	m := &MaintenanceService{DB: db}
	require.NoError(t, m.Reset(ctx))

	for _, table := range resetOrder {
		var n int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n))
		require.Zero(t, n, table)
	}

	require.NoError(t, database.SeedDemo(ctx, db))
	var clients int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM client").Scan(&clients))
	require.Equal(t, 3, clients)
}

func TestResetNeedsDB(t *testing.T) {
	require.Error(t, (&MaintenanceService{}).Reset(context.Background()))
}
