package database

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log"
)

//go:embed schema.sql
var schemaSQL string

//go:embed seed.sql
var seedSQL string

// schemaVersion is bumped whenever schema.sql changes.
const schemaVersion = 1

// Migrate creates the tables and indexes and seeds the default categories.
// It is idempotent and runs in a single transaction.
func Migrate(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	var applied bool
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, schemaVersion,
	).Scan(&applied); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if applied {
		log.Printf("[DATABASE] schema version %d already applied", schemaVersion)
		return tx.Commit()
	}

	if _, err := tx.ExecContext(ctx, seedSQL); err != nil {
		return fmt.Errorf("seed default categories: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version) VALUES ($1)`, schemaVersion,
	); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}
	log.Printf("[DATABASE] schema version %d applied", schemaVersion)
	return nil
}
