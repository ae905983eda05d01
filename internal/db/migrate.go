package database

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schema string

// Migrate creates the tables the application needs. It is safe to run on every start.
func (s *DBService) Migrate(ctx context.Context) error {
	return ApplySchema(ctx, s.DB)
}

// ApplySchema executes the embedded schema on db.
func ApplySchema(ctx context.Context, db DBTX) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
