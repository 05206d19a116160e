package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fleetdesk/vanassign/cmd/cli/commands"
	"github.com/fleetdesk/vanassign/internal/config"
	"github.com/fleetdesk/vanassign/pkg/clients/fleetclient"
	"github.com/fleetdesk/vanassign/pkg/core/roster"
	"github.com/fleetdesk/vanassign/pkg/postgres"
	"github.com/fleetdesk/vanassign/pkg/utils/logging"
)

var (
	env string
	app *commands.AppContext
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vanassign",
		Short: "Daily van assignment for last-mile delivery fleets",
		Long:  `A CLI tool for pairing confirmed drivers with drivable vans, with a greedy auto-assignment that prefers each driver's previous-day van.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.BoardCmd(appRef()))
	rootCmd.AddCommand(commands.PlanCmd(appRef()))
	rootCmd.AddCommand(commands.AutoCmd(appRef()))
	rootCmd.AddCommand(commands.AssignCmd(appRef()))
	rootCmd.AddCommand(commands.UnassignCmd(appRef()))
	rootCmd.AddCommand(commands.ScheduleCmd(appRef()))
	rootCmd.AddCommand(commands.InteractiveCmd(appRef()))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// appRef returns the shared AppContext, created up front so command
// constructors can capture it before initApp fills it in
func appRef() *commands.AppContext {
	if app == nil {
		app = &commands.AppContext{Ctx: context.Background()}
	}
	return app
}

// initApp sets up logger, config, backend client, store and resolvers
func initApp() error {
	var err error
	a := appRef()

	a.Logger, err = logging.InitLogger(env, "")
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	a.Logger.Info("Starting vanassign", zap.String("environment", env))

	a.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.Logger.Debug("Configuration loaded",
		zap.String("api_base_url", a.Cfg.APIBaseURL),
		zap.String("dsp_code", a.Cfg.DSPCode))

	client, err := fleetclient.NewClient(fleetclient.Options{
		BaseURL:    a.Cfg.APIBaseURL,
		DSPCode:    a.Cfg.DSPCode,
		Timeout:    time.Duration(a.Cfg.RequestTimeoutSeconds) * time.Second,
		MaxRetries: a.Cfg.MaxRetries,
	}, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to create fleet client: %w", err)
	}

	a.Roster = roster.NewResolver(client, client, a.Logger)

	// Assignments persist through the REST backend unless a local Postgres
	// is configured
	if a.Cfg.PostgresURL != "" {
		a.Logger.Info("Using PostgreSQL assignment store")
		pg, err := postgres.NewDB(a.Ctx, a.Cfg.PostgresURL)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
		if err := pg.RunMigrations(a.Ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		a.Store = pg
	} else {
		a.Store = client
	}

	a.Logger.Info("vanassign initialized")
	return nil
}
