package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"taskmaster/configs"
	"taskmaster/internal/api"
	"taskmaster/internal/config"
	"taskmaster/internal/repository"
	"taskmaster/internal/service"
	"taskmaster/pkg/database"
	"taskmaster/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var errMemorySeed = errors.New("seed needs a persistent store; with STORE=memory use `serve --seed` instead")

func newRootCmd() *cobra.Command {
	var seed bool

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), configs.LoadConfig(), seed)
		},
	}
	serve.Flags().BoolVar(&seed, "seed", false, "create the demo account on startup")

	root := &cobra.Command{
		Use:           "taskmaster",
		Short:         "Personal task manager API",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          serve.RunE,
	}
	root.Flags().AddFlagSet(serve.Flags())
	root.AddCommand(serve, newMigrateCmd(), newSeedCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	var reset bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configs.LoadConfig()
			if err := logger.InitLoggers(cfg.LogDir); err != nil {
				return err
			}
			defer logger.SyncLoggers()

			db, err := database.ConnectDB(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if reset {
				if err := repository.DeleteAllTable(cmd.Context(), db); err != nil {
					return err
				}
				logger.SystemLogger.Info("All tables dropped")
			}
			if err := repository.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
			return nil
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "drop every table before migrating")
	return cmd
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the demo account with sample tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configs.LoadConfig()
			if err := logger.InitLoggers(cfg.LogDir); err != nil {
				return err
			}
			defer logger.SyncLoggers()

			// store memory hilang begitu proses selesai
			if cfg.Store == configs.StoreMemory {
				return errMemorySeed
			}

			db, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if db != nil {
				defer db.Close()
			}

			svc := config.NewDependencies(cfg, db, nil).Services()
			if err := seedDemo(cmd.Context(), svc); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Demo credentials: %s / %s\n", service.DemoEmail, service.DemoPassword)
			return nil
		},
	}
}

// openStore returns nil for STORE=memory; otherwise the migrated Postgres pool.
func openStore(ctx context.Context, cfg configs.Config) (*sql.DB, error) {
	if cfg.Store == configs.StoreMemory {
		logger.SystemLogger.Info("Using in-memory store")
		return nil, nil
	}

	db, err := database.ConnectDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.SystemLogger.Info("Database Connected")

	if err := repository.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// openCache returns nil when Redis is not configured or unreachable; the
// API then reads tasks straight from the store.
func openCache(ctx context.Context, cfg configs.Config) *redis.Client {
	if !cfg.RedisEnabled() {
		return nil
	}
	rdb, err := database.ConnectRedis(ctx, cfg)
	if err != nil {
		logger.ErrorLogger.Error("Redis connection error, task cache disabled", zap.Error(err))
		return nil
	}
	logger.SystemLogger.Info("Redis Connected")
	return rdb
}

func seedDemo(ctx context.Context, svc config.Services) error {
	_, err := service.SeedDemo(ctx, svc.Auth, svc.Tasks)
	if errors.Is(err, service.ErrAlreadySeeded) {
		logger.SystemLogger.Info("Demo user already exists, skipping seed")
		return nil
	}
	return err
}

func runServe(ctx context.Context, cfg configs.Config, seed bool) error {
	if err := logger.InitLoggers(cfg.LogDir); err != nil {
		return err
	}
	defer logger.SyncLoggers()
	logger.SystemLogger.Info("Starting application", zap.String("env", cfg.Env), zap.String("store", cfg.Store))

	db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}
	rdb := openCache(ctx, cfg)
	if rdb != nil {
		defer rdb.Close()
	}

	svc := config.NewDependencies(cfg, db, rdb).Services()
	if seed {
		if err := seedDemo(ctx, svc); err != nil {
			return err
		}
	}

	app := api.NewApp(cfg, svc.Auth, svc.Tasks)

	listenErr := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.SystemLogger.Info("Application ready", zap.String("addr", addr))
		listenErr <- app.Listen(addr)
	}()

	select {
	case err := <-listenErr:
		logger.ErrorLogger.Error("Application failed to start", zap.Error(err))
		return err
	case <-ctx.Done():
	}

	logger.SystemLogger.Info("Shutting down")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.ErrorLogger.Error("Graceful shutdown failed", zap.Error(err))
		return err
	}
	return nil
}
