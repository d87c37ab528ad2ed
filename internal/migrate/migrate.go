// Package migrate applies the SQL files under db/ to the inventory database.
package migrate

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// Migrations and seeds live in these directories relative to the repository root.
const (
	MigrationsDir = "db/migrations"
	SeedsDir      = "db/seeds"
)

const createMigrationsTable = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		id BIGSERIAL PRIMARY KEY,
		filename TEXT NOT NULL UNIQUE,
		checksum TEXT NOT NULL,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`

// Apply runs every .sql file in dir that schema_migrations does not list
// yet, in lexical order, and returns the names it applied.
func Apply(ctx context.Context, db *sql.DB, dir string, logger zerolog.Logger) ([]string, error) {
	if _, err := db.ExecContext(ctx, createMigrationsTable); err != nil {
		return nil, fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	files, err := SQLFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var applied []string
	for _, filename := range files {
		var count int
		err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations WHERE filename = $1", filename).Scan(&count)
		if err != nil {
			return applied, fmt.Errorf("failed to check migration status: %w", err)
		}
		if count > 0 {
			logger.Debug().Str("file", filename).Msg("migration already applied")
			continue
		}

		content, err := os.ReadFile(filepath.Join(dir, filename))
		if err != nil {
			return applied, fmt.Errorf("failed to read migration file %s: %w", filename, err)
		}
		if _, err := db.ExecContext(ctx, string(content)); err != nil {
			return applied, fmt.Errorf("failed to apply migration %s: %w", filename, err)
		}
		if _, err := db.ExecContext(ctx,
			"INSERT INTO schema_migrations (filename, checksum) VALUES ($1, $2)",
			filename, Checksum(content)); err != nil {
			return applied, fmt.Errorf("failed to record migration %s: %w", filename, err)
		}

		logger.Info().Str("file", filename).Msg("migration applied")
		applied = append(applied, filename)
	}
	return applied, nil
}

// Seed runs every .sql file in dir. A missing directory is not an error.
// Seeds are not tracked and must be idempotent.
func Seed(ctx context.Context, db *sql.DB, dir string, logger zerolog.Logger) error {
	files, err := SQLFiles(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read seeds directory: %w", err)
	}
	for _, filename := range files {
		content, err := os.ReadFile(filepath.Join(dir, filename))
		if err != nil {
			return fmt.Errorf("failed to read seed file %s: %w", filename, err)
		}
		if _, err := db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("failed to apply seed %s: %w", filename, err)
		}
		logger.Info().Str("file", filename).Msg("seed applied")
	}
	return nil
}

// SQLFiles lists the .sql files directly inside dir, sorted.
func SQLFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// Checksum is the value recorded for a migration's content.
func Checksum(content []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(content))
}
