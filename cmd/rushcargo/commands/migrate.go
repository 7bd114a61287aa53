package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jask/rushcargo/internal/database"
	"github.com/jask/rushcargo/internal/service"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := storeTarget(cfg.Database)
			if err != nil {
				return err
			}
			if err := database.Migrate(cfg.Database.Driver, target); err != nil {
				return err
			}
			cmd.Println("schema is up to date")
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demo clients, lockers, branches and packages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cfg.Database
			c.Migrate, c.Seed = true, true
			db, err := openStore(cmd.Context(), c)
			if err != nil {
				return err
			}
			defer db.Close()
			cmd.Println("demo data loaded; log in as alice, bob, carla or admin with password cargo123")
			return nil
		},
	}
}

func resetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every client, locker, guide and package but keep the schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("reset deletes all data; pass --yes to confirm")
			}
			c := cfg.Database
			c.Seed = false
			db, err := openStore(cmd.Context(), c)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := (&service.MaintenanceService{DB: db}).Reset(cmd.Context()); err != nil {
				return err
			}
			cmd.Println("store reset")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}
