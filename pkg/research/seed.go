package research

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// SampleRecords returns the four fixed sample records, one per category,
// with fresh ids and timestamps.
func SampleRecords() []Record {
	samples := []CreateRecordRequest{
		{
			Title:       "Mars Rover Autonomous Navigation System",
			Category:    "space",
			Description: "Development of advanced AI-driven navigation systems for Mars exploration rovers, enabling autonomous decision-making in challenging terrain.",
			Findings:    "Successfully implemented machine learning algorithms that improved navigation accuracy by 85% and reduced mission planning time by 60%.",
		},
		{
			Title:       "Quantum Entanglement Communication Protocol",
			Category:    "quantum",
			Description: "Research into quantum entanglement-based communication systems for secure space-to-Earth data transmission.",
			Findings:    "Achieved quantum entanglement stability over 1000km distance with 99.9% fidelity, opening possibilities for unhackable space communications.",
		},
		{
			Title:       "AI-Powered Astronomical Data Analysis",
			Category:    "ai",
			Description: "Machine learning models for automated detection and classification of celestial objects from telescope data.",
			Findings:    "Developed neural networks that can identify exoplanets with 95% accuracy, processing 1000x faster than traditional methods.",
		},
		{
			Title:       "Distributed Space Mission Database Architecture",
			Category:    "database",
			Description: "Scalable database systems for managing vast amounts of space mission data across multiple research institutions.",
			Findings:    "Implemented blockchain-based data integrity system handling 10TB+ daily space mission data with real-time global synchronization.",
		},
	}

	records := make([]Record, 0, len(samples))
	for _, req := range samples {
		records = append(records, newRecord(req))
	}
	return records
}

// Seed inserts the sample records when the store is empty. It reports
// whether seeding happened. The emptiness check is the only idempotency
// guard: any pre-existing record, of whatever content, skips seeding.
func (s *Store) Seed(ctx context.Context) (bool, error) {
	var count int64
	if err := s.DB.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM research_items`).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to count research items: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	batch := &pgx.Batch{}
	for _, rec := range SampleRecords() {
		batch.Queue(`
			INSERT INTO research_items (id, title, category, description, findings, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, rec.ID, rec.Title, rec.Category, rec.Description, rec.Findings, rec.CreatedAt)
	}

	results := s.DB.Pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return false, fmt.Errorf("failed to insert sample record: %w", err)
		}
	}

	return true, nil
}
