package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/target/mmk-auth-api/config"
	"github.com/target/mmk-auth-api/internal/bootstrap"
	"github.com/urfave/cli/v2"
)

func serveCmd(st *appState) *cli.Command {
	var (
		addr       string
		withWorker bool
	)
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the API server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "Address to bind to (overrides HTTP_ADDR)",
				Destination: &addr,
			},
			&cli.BoolFlag{
				Name:        "with-worker",
				Usage:       "Also run the task worker in this process",
				Destination: &withWorker,
			},
		},
		Action: func(c *cli.Context) error {
			cfg := st.cfg
			if addr != "" {
				cfg.HTTP.Addr = addr
			}
			cfg.Services = string(config.ServiceModeHTTP)
			if withWorker {
				cfg.Services += "," + string(config.ServiceModeWorker)
			}
			return runServices(c.Context, st, &cfg)
		},
	}
}

func workerCmd(st *appState) *cli.Command {
	return &cli.Command{
		Name:  "worker",
		Usage: "Run the background task worker",
		Action: func(c *cli.Context) error {
			cfg := st.cfg
			cfg.Services = string(config.ServiceModeWorker)
			return runServices(c.Context, st, &cfg)
		},
	}
}

func runServices(ctx context.Context, st *appState, cfg *config.AppConfig) error {
	logger := st.logger
	if err := bootstrap.ValidateServiceConfig(cfg); err != nil {
		return err
	}
	logger.InfoContext(ctx, "starting "+cfg.AppName,
		"description", cfg.Description,
		"db_host", cfg.Postgres.Host,
		"db_port", cfg.Postgres.Port,
		"db_name", cfg.Postgres.Name,
		"enabled_services", strings.Join(bootstrap.GetEnabledServices(cfg), ","))

	db, redisClient, err := initInfrastructure(ctx, st, cfg.IsWorkerEnabled())
	if err != nil {
		return err
	}
	defer closeInfrastructure(ctx, st, db, redisClient)

	if cfg.Postgres.RunMigrationsOnStart {
		if err = bootstrap.RunMigrations(ctx, db, logger); err != nil {
			return err
		}
	} else {
		logger.InfoContext(ctx, "skipping database migrations on startup", "reason", "disabled via config")
	}

	services, err := bootstrap.NewServices(&bootstrap.ServiceDeps{
		Config:      cfg,
		DB:          db,
		RedisClient: redisClient,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	return bootstrap.RunServicesWithShutdown(ctx, &bootstrap.ServiceOrchestrationConfig{
		Config:   cfg,
		Services: services,
		Logger:   logger,
	})
}

// initInfrastructure connects Postgres and, when withRedis is set, Redis.
func initInfrastructure(ctx context.Context, st *appState, withRedis bool) (*sql.DB, *redis.Client, error) {
	db, err := bootstrap.ConnectDB(bootstrap.DatabaseConfig{
		DBConfig: st.cfg.Postgres,
		Logger:   st.logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect db: %w", err)
	}
	if !withRedis {
		return db, nil, nil
	}

	redisClient, err := bootstrap.ConnectRedis(bootstrap.DatabaseConfig{
		RedisConfig: st.cfg.Redis,
		Logger:      st.logger,
	})
	if err != nil {
		if cerr := db.Close(); cerr != nil {
			st.logger.ErrorContext(ctx, "close database after redis connect failure", "error", cerr)
			return nil, nil, fmt.Errorf("connect redis: %w", errors.Join(err, fmt.Errorf("close database: %w", cerr)))
		}
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	return db, redisClient, nil
}

func closeInfrastructure(ctx context.Context, st *appState, db *sql.DB, redisClient *redis.Client) {
	if db != nil {
		if err := db.Close(); err != nil {
			st.logger.ErrorContext(ctx, "close database failed", "error", err)
		}
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			st.logger.ErrorContext(ctx, "close redis failed", "error", err)
		}
	}
}
