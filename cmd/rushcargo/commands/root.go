package commands

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jask/rushcargo/internal/config"
	"github.com/jask/rushcargo/internal/logging"
)

var (
	v         *viper.Viper
	cfg       config.Config
	cfgFile   string
	logCloser io.Closer
)

// Execute builds the command tree and runs it until it returns or the
// process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	v = config.New()
	root := &cobra.Command{
		Use:           "rushcargo",
		Short:         "Terminal client for RushCargo lockers, branches and deliveries",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgFile != "" {
				v.SetConfigFile(cfgFile)
			}
			c, err := config.LoadWith(v)
			if err != nil {
				return err
			}
			cfg = c
			_, closer, err := logging.Setup(cfg.Log.File, cfg.Log.Level)
			if err != nil {
				return err
			}
			logCloser = closer
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if logCloser != nil {
				return logCloser.Close()
			}
			return nil
		},
		RunE: runUI,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default ~/.config/rushcargo/config.toml)")
	flags.String("db-driver", "", "store driver: sqlite3 or postgres")
	flags.String("db-path", "", "sqlite database file")
	flags.String("db-dsn", "", "postgres connection URL")
	flags.String("route-url", "", "route service endpoint")
	flags.String("log-file", "", "log file")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.Bool("seed", false, "load the demo data set on start")
	for key, name := range map[string]string{
		"database.driver": "db-driver",
		"database.path":   "db-path",
		"database.dsn":    "db-dsn",
		"route.base_url":  "route-url",
		"log.file":        "log-file",
		"log.level":       "log-level",
		"database.seed":   "seed",
	} {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return err
		}
	}

	root.AddCommand(migrateCmd(), seedCmd(), resetCmd(), secretCmd())
	if err := root.ExecuteContext(ctx); err != nil {
		root.PrintErrln("error:", err)
		return err
	}
	return nil
}
