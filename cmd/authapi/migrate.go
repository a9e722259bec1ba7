package main

import (
	"context"
	"database/sql"
	"time"

	"github.com/target/mmk-auth-api/internal/migrate"
	"github.com/urfave/cli/v2"
)

const defaultMigrationTimeout = 5 * time.Minute

func migrateCmd(st *appState) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Manage the database schema",
		Subcommands: []*cli.Command{
			migrationAction(st, "up", "Apply all pending migrations", migrate.Run),
			migrationAction(st, "down", "Roll back the most recent migration", migrate.Down),
			migrationAction(st, "status", "Print the status of every migration", migrate.Status),
		},
	}
}

func migrationAction(st *appState, name, usage string, fn func(context.Context, *sql.DB) error) *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: usage,
		Action: func(c *cli.Context) error {
			ctx, cancel := context.WithTimeout(c.Context, defaultMigrationTimeout)
			defer cancel()

			db, _, err := initInfrastructure(ctx, st, false)
			if err != nil {
				return err
			}
			defer closeInfrastructure(ctx, st, db, nil)

			if err := fn(ctx, db); err != nil {
				return err
			}
			st.logger.InfoContext(ctx, "migrate "+name+" completed")
			return nil
		},
	}
}
