package research

import (
	"context"
	"fmt"
	"time"

	"github.com/quantumspace/research-platform/pkg/database"
)

// Store is the CRUD facade over the research_items collection.
type Store struct {
	DB *database.PostgresDB
}

func NewStore(db *database.PostgresDB) *Store {
	return &Store{DB: db}
}

// List returns all records in database-native order.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	query := `
		SELECT id, title, category, description, findings, created_at
		FROM research_items
	`
	rows, err := s.DB.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list research items: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Title, &r.Category, &r.Description, &r.Findings, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan research item: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read research items: %w", err)
	}
	return records, nil
}

// Add persists a new record with a generated id and current timestamp
// and returns it in full.
func (s *Store) Add(ctx context.Context, req CreateRecordRequest) (*Record, error) {
	rec := newRecord(req)

	query := `
		INSERT INTO research_items (id, title, category, description, findings, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	tag, err := s.DB.Pool.Exec(ctx, query,
		rec.ID, rec.Title, rec.Category, rec.Description, rec.Findings, rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert research item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("insert of research item %s was not confirmed", rec.ID)
	}

	return &rec, nil
}

// Delete removes the record matching id. Returns ErrNotFound when no
// record matched.
func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.DB.Pool.Exec(ctx, `DELETE FROM research_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete research item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats returns the total record count and per-category counts for the
// four known categories. The counts are independent queries, not a single
// aggregate, so the result is only consistent in the absence of
// concurrent writes.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	var total int64
	if err := s.DB.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM research_items`).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count research items: %w", err)
	}

	stats := &Stats{
		TotalResearch: total,
		LastUpdated:   time.Now().UTC(),
	}

	counts := map[string]*int64{
		"space":    &stats.Categories.Space,
		"quantum":  &stats.Categories.Quantum,
		"ai":       &stats.Categories.AI,
		"database": &stats.Categories.Database,
	}
	for _, cat := range categories {
		dst := counts[cat.ID]
		if err := s.DB.Pool.QueryRow(ctx,
			`SELECT COUNT(*) FROM research_items WHERE category = $1`, cat.ID).Scan(dst); err != nil {
			return nil, fmt.Errorf("failed to count %s research items: %w", cat.ID, err)
		}
	}

	return stats, nil
}
