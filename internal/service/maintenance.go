package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/rushcargo/internal/database"
	"github.com/jask/rushcargo/internal/logging"
)

// MaintenanceService houses destructive operator actions run from the CLI.
type MaintenanceService struct {
	DB *sql.DB
}

// resetOrder lists tables children first so foreign keys never block a delete.
var resetOrder = []string{
	"package",
	"payment",
	"shipping_guide",
	"locker",
	"pkgadmin",
	"client",
	"branch",
	"warehouse",
	"country",
}

// Reset wipes all cargo data. It keeps the schema intact so the demo data
// can be seeded again.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("maintenance: db not configured")
	}
	if err := database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		for _, t := range resetOrder {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+t); err != nil {
				return fmt.Errorf("reset table %s: %w", t, err)
			}
		}
		return nil
	}); err != nil {
		return err
	}
	_, _ = s.DB.ExecContext(ctx, "VACUUM")
	logging.L().Warn("store reset", "tables", len(resetOrder))
	return nil
}
