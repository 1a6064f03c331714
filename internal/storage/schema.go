// Package storage owns the PostgreSQL schema shared by the catalog repositories.
package storage

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// Migrate creates the catalog tables if they are missing
func Migrate(ctx context.Context, pg *pgxpool.Pool) error {
	if _, err := pg.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("exec schema: %w", err)
	}

	return nil
}
