package commands

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jask/rushcargo/internal/config"
	"github.com/jask/rushcargo/internal/database/repository"
	"github.com/jask/rushcargo/internal/logging"
	"github.com/jask/rushcargo/internal/route"
	"github.com/jask/rushcargo/internal/session"
	"github.com/jask/rushcargo/internal/tui"
)

func runUI(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("rushcargo needs an interactive terminal")
	}
	ctx := cmd.Context()

	db, err := openStore(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	keys := tui.NewKeyRegistry()
	if err := keys.ApplyOverrides(cfg.Keys); err != nil {
		return err
	}

	endpoint := route.NewEndpoint(cfg.Route.BaseURL)
	config.Watch(v, func(url string) {
		if url == "" || url == endpoint.URL() {
			return
		}
		endpoint.Set(url)
		logging.L().Info("route endpoint reloaded", "url", url)
	})

	s := session.New(session.Deps{
		Store:    repository.NewStore(db),
		Planner:  route.NewClient(endpoint, cfg.Route.Timeout),
		Endpoint: endpoint,
		SaveRoute: func(url string) error {
			cfg.Route.BaseURL = url
			return config.SaveRoute(v, url)
		},
	}, session.Options{
		LoginTicks:    cfg.Timers.LoginTicks,
		DeliveryTicks: cfg.Timers.DeliveryTicks,
	})

	logging.L().Info("session started", "driver", cfg.Database.Driver, "route", cfg.Route.BaseURL)
	return tui.Run(ctx, s, keys, map[session.TimeoutType]time.Duration{
		session.TimeoutResize:          cfg.Timers.Resize,
		session.TimeoutCubeTick:        cfg.Timers.Cube,
		session.TimeoutLogin:           cfg.Timers.Login,
		session.TimeoutGetUserDelivery: cfg.Timers.Delivery,
	})
}
