// migrate creates the inventory table used by the postgres source and,
// with --seed, loads the sample rows.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/pflag"

	"inventory-dashboard/internal/config"
	"inventory-dashboard/internal/logging"
	"inventory-dashboard/internal/migrate"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	var migrationsDir, seedsDir string
	var seed bool

	flagSet := pflag.NewFlagSet("migrate", pflag.ContinueOnError)
	flagSet.StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "Postgres connection string")
	flagSet.StringVar(&migrationsDir, "migrations", migrate.MigrationsDir, "directory of migration files")
	flagSet.StringVar(&seedsDir, "seeds", migrate.SeedsDir, "directory of seed files")
	flagSet.BoolVar(&seed, "seed", false, "apply seed files after migrating")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL or --database-url is required")
	}

	logger := logging.New(logging.Config{Env: cfg.Env, Level: cfg.LogLevel})

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	applied, err := migrate.Apply(ctx, db, migrationsDir, logger)
	if err != nil {
		return err
	}
	logger.Info().Int("applied", len(applied)).Msg("migrations complete")

	if seed {
		if err := migrate.Seed(ctx, db, seedsDir, logger); err != nil {
			return err
		}
	}
	return nil
}
