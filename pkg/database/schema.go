package database

import (
	"context"
	"fmt"
)

func (db *PostgresDB) InitSchema(ctx context.Context) error {
	// Research items table. The external id is a TEXT column of its own,
	// deliberately separate from the internal primary key, so lookups by
	// arbitrary client-supplied ids are valid queries that simply match
	// zero rows.
	itemsQuery := `
		CREATE TABLE IF NOT EXISTS research_items (
			pk BIGSERIAL PRIMARY KEY,
			id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			category TEXT NOT NULL,
			description TEXT NOT NULL,
			findings TEXT NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		);
	`
	if _, err := db.Pool.Exec(ctx, itemsQuery); err != nil {
		return fmt.Errorf("failed to create research_items table: %w", err)
	}

	// Index for the per-category count queries
	if _, err := db.Pool.Exec(ctx, "CREATE INDEX IF NOT EXISTS idx_research_items_category ON research_items(category)"); err != nil {
		return fmt.Errorf("failed to create index on research_items: %w", err)
	}

	return nil
}
