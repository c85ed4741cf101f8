// Package migrations holds the schema and applies it at startup.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"go.uber.org/zap"

	"github.com/skaterent/rentbot/internal/db"
)

//go:embed *.sql
var files embed.FS

const (
	createVersionTable = `
        CREATE TABLE IF NOT EXISTS schema_migrations (
            version    VARCHAR(255) PRIMARY KEY,
            applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )
    `
	checkVersion  = `SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`
	recordVersion = `INSERT INTO schema_migrations (version) VALUES ($1)`
)

// Apply runs every embedded migration not yet recorded in schema_migrations,
// each in its own transaction, in file name order.
func Apply(ctx context.Context, database db.DB, logger *zap.Logger) error {
	return apply(ctx, database, files, logger)
}

func apply(ctx context.Context, database db.DB, fsys fs.FS, logger *zap.Logger) error {
	names, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return err
	}
	sort.Strings(names)

	if _, err := database.Exec(ctx, createVersionTable); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	for _, name := range names {
		var applied bool
		if err := database.Scalar(ctx, &applied, checkVersion, name); err != nil {
			return fmt.Errorf("failed to check migration %s: %w", name, err)
		}
		if applied {
			continue
		}

		body, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}

		err = database.InTx(ctx, func(ctx context.Context, tx db.Tx) error {
			if _, err := tx.Exec(ctx, string(body)); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, recordVersion, name)
			return err
		})
		if err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", name, err)
		}
		logger.Info("Applied migration", zap.String("version", name))
	}
	return nil
}
