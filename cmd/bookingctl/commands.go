package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-AppointmentService/internal/config"
	adminRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/admin"
	customerRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/customer"
	scheduleRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/schedule"
	serviceRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/service"
	"github.com/m04kA/SMC-AppointmentService/internal/seed"
	"github.com/m04kA/SMC-AppointmentService/migrations"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/password"
)

const defaultTimeout = time.Minute

var ErrPostgresOnly = errors.New("bookingctl: command requires storage.driver = \"postgres\"")

type options struct {
	configPath string
	timeout    time.Duration
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "bookingctl",
		Short:         "Operate the appointment service database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = "config.toml"
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", defaultConfig, "Config file path")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", defaultTimeout, "Database operation timeout")

	root.AddCommand(
		newMigrateCmd(opts),
		newSeedCmd(opts),
		newHashPasswordCmd(),
	)
	return root
}

func newMigrateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			db, _, err := connect(ctx, opts)
			if err != nil {
				return err
			}
			defer db.Close()

			applied, err := migrations.Apply(ctx, db)
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
				return nil
			}
			for _, v := range applied {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", v)
			}
			return nil
		},
	}
}

func newSeedCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the demo admin, customer, services and weekly schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			db, cfg, err := connect(ctx, opts)
			if err != nil {
				return err
			}
			defer db.Close()

			log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
			if err != nil {
				return err
			}
			defer log.Close()

			seeder := seed.NewSeeder(
				adminRepo.NewRepository(db),
				customerRepo.NewRepository(db),
				serviceRepo.NewRepository(db),
				scheduleRepo.NewRepository(db),
				password.Bcrypt{},
				log,
			)
			if err := seeder.Run(ctx); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "seeded: admin %s, customer %s\n", seed.AdminEmail, seed.CustomerEmail)
			return nil
		},
	}
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print the bcrypt hash of a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := password.Hash(args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func connect(ctx context.Context, opts *options) (*sql.DB, *config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Storage.Driver != config.StorageDriverPostgres {
		return nil, nil, ErrPostgresOnly
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}
	return db, cfg, nil
}
