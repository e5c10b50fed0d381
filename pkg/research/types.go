package research

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when an operation targets a record id that
// does not exist in the store.
var ErrNotFound = errors.New("research item not found")

// Record is a single stored research note. The id is generated server-side
// at creation and is the only external lookup key.
type Record struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Findings    string    `json:"findings"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateRecordRequest is the JSON body for POST /api/research.
type CreateRecordRequest struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Findings    string `json:"findings"`
}

// Category describes one of the four fixed research categories.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CategoryCounts holds per-category record counts for the four known
// categories. Categories outside this set are counted only in the total.
type CategoryCounts struct {
	Space    int64 `json:"space"`
	Quantum  int64 `json:"quantum"`
	AI       int64 `json:"ai"`
	Database int64 `json:"database"`
}

// Stats is the response shape for GET /api/research/stats.
type Stats struct {
	TotalResearch int64          `json:"total_research"`
	Categories    CategoryCounts `json:"categories"`
	LastUpdated   time.Time      `json:"last_updated"`
}

var categories = []Category{
	{ID: "space", Name: "Space Research", Description: "Space exploration and satellite technology"},
	{ID: "quantum", Name: "Quantum Theory", Description: "Quantum computing and quantum mechanics"},
	{ID: "ai", Name: "AI Programming", Description: "Artificial intelligence and machine learning"},
	{ID: "database", Name: "Database Technology", Description: "Data management and analytics"},
}

// Categories returns the static category descriptors. The list is not
// derived from stored data; stored records may carry any category string.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// newRecord builds a Record from a create request, assigning the id and
// creation timestamp.
func newRecord(req CreateRecordRequest) Record {
	return Record{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		Findings:    req.Findings,
		CreatedAt:   time.Now().UTC(),
	}
}
