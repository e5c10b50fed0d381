package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quantumspace/research-platform/pkg/research"
)

type stubStore struct {
	records []research.Record
	stats   *research.Stats
	err     error
	deleted []string
}

func (s *stubStore) List(ctx context.Context) ([]research.Record, error) {
	return s.records, s.err
}

func (s *stubStore) Add(ctx context.Context, req research.CreateRecordRequest) (*research.Record, error) {
	if s.err != nil {
		return nil, s.err
	}
	rec := research.Record{
		ID:          "11111111-2222-3333-4444-555555555555",
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		Findings:    req.Findings,
		CreatedAt:   time.Now().UTC(),
	}
	s.records = append(s.records, rec)
	return &rec, nil
}

func (s *stubStore) Delete(ctx context.Context, id string) error {
	if s.err != nil {
		return s.err
	}
	for _, rec := range s.records {
		if rec.ID == id {
			s.deleted = append(s.deleted, id)
			return nil
		}
	}
	return research.ErrNotFound
}

func (s *stubStore) Stats(ctx context.Context) (*research.Stats, error) {
	return s.stats, s.err
}

type stubRelay struct {
	reply string
	err   error
	asked []string
}

func (r *stubRelay) Ask(ctx context.Context, message string) (string, error) {
	r.asked = append(r.asked, message)
	return r.reply, r.err
}

func newTestRouter(store ResearchStore, relay ChatRelay) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(store, relay).RegisterRoutes(r)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
			// Array bodies are decoded by the caller
			decoded = nil
		}
	}
	return w, decoded
}

func TestRoot(t *testing.T) {
	r := newTestRouter(&stubStore{}, &stubRelay{})

	w, body := doJSON(t, r, http.MethodGet, "/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET / status = %d, want 200", w.Code)
	}
	if body["message"] != "QuantumSpace Research Platform API" {
		t.Errorf("message = %v", body["message"])
	}
	if body["status"] != "operational" {
		t.Errorf("status = %v, want operational", body["status"])
	}
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&stubStore{}, &stubRelay{})

	w, body := doJSON(t, r, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health status = %d, want 200", w.Code)
	}
	if body["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", body["status"])
	}
	ts, ok := body["timestamp"].(string)
	if !ok {
		t.Fatalf("timestamp missing or not a string: %v", body["timestamp"])
	}
	if _, err := time.Parse(time.RFC3339, ts); err != nil {
		t.Errorf("timestamp %q is not RFC3339: %v", ts, err)
	}
}

func TestChat(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		relay      *stubRelay
		wantStatus int
		wantReply  string
	}{
		{
			name:       "success",
			body:       `{"message": "hello"}`,
			relay:      &stubRelay{reply: "Hi! Ask me about space."},
			wantStatus: http.StatusOK,
			wantReply:  "Hi! Ask me about space.",
		},
		{
			name:       "relay failure",
			body:       `{"message": "hello"}`,
			relay:      &stubRelay{err: errors.New("llm generation failed: provider unreachable")},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "malformed body",
			body:       `{"message": `,
			relay:      &stubRelay{reply: "unused"},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&stubStore{}, tt.relay)

			w, body := doJSON(t, r, http.MethodPost, "/api/chat", tt.body)
			if w.Code != tt.wantStatus {
				t.Fatalf("POST /api/chat status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK {
				if body["response"] != tt.wantReply {
					t.Errorf("response = %v, want %q", body["response"], tt.wantReply)
				}
			} else if tt.wantStatus == http.StatusInternalServerError {
				if msg, _ := body["error"].(string); msg == "" {
					t.Error("error body missing error text")
				}
			}
		})
	}
}

func TestListResearchEmptyIsArray(t *testing.T) {
	r := newTestRouter(&stubStore{}, &stubRelay{})

	w, _ := doJSON(t, r, http.MethodGet, "/api/research", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/research status = %d, want 200", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != "[]" {
		t.Errorf("empty list body = %q, want []", got)
	}
}

func TestListResearch(t *testing.T) {
	store := &stubStore{records: []research.Record{
		{ID: "a", Title: "one", Category: "space", CreatedAt: time.Now().UTC()},
		{ID: "b", Title: "two", Category: "ai", CreatedAt: time.Now().UTC()},
	}}
	r := newTestRouter(store, &stubRelay{})

	w, _ := doJSON(t, r, http.MethodGet, "/api/research", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var records []research.Record
	if err := json.Unmarshal(w.Body.Bytes(), &records); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].ID != "a" || records[1].ID != "b" {
		t.Errorf("unexpected record order: %+v", records)
	}
}

func TestListResearchStoreFailure(t *testing.T) {
	r := newTestRouter(&stubStore{err: errors.New("connection refused")}, &stubRelay{})

	w, body := doJSON(t, r, http.MethodGet, "/api/research", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if msg, _ := body["error"].(string); !strings.Contains(msg, "connection refused") {
		t.Errorf("error body = %q, want the underlying error text", msg)
	}
}

func TestAddResearch(t *testing.T) {
	store := &stubStore{}
	r := newTestRouter(store, &stubRelay{})

	w, body := doJSON(t, r, http.MethodPost, "/api/research",
		`{"title":"T","category":"ai","description":"D","findings":"F"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /api/research status = %d, want 201", w.Code)
	}
	if id, _ := body["id"].(string); id == "" {
		t.Error("created record has no id")
	}
	if body["title"] != "T" || body["category"] != "ai" ||
		body["description"] != "D" || body["findings"] != "F" {
		t.Errorf("created record did not echo request: %v", body)
	}
	ts, _ := body["created_at"].(string)
	if _, err := time.Parse(time.RFC3339, ts); err != nil {
		t.Errorf("created_at %q is not a parseable timestamp: %v", ts, err)
	}
}

func TestAddResearchMalformedBody(t *testing.T) {
	r := newTestRouter(&stubStore{}, &stubRelay{})

	w, _ := doJSON(t, r, http.MethodPost, "/api/research", `not json`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestAddResearchInsertFailure(t *testing.T) {
	r := newTestRouter(&stubStore{err: errors.New("insert was not confirmed")}, &stubRelay{})

	w, _ := doJSON(t, r, http.MethodPost, "/api/research",
		`{"title":"T","category":"ai","description":"D","findings":"F"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
}

func TestDeleteResearch(t *testing.T) {
	store := &stubStore{records: []research.Record{{ID: "known-id"}}}
	r := newTestRouter(store, &stubRelay{})

	w, body := doJSON(t, r, http.MethodDelete, "/api/research/known-id", "")
	if w.Code != http.StatusOK {
		t.Fatalf("DELETE status = %d, want 200", w.Code)
	}
	if body["id"] != "known-id" {
		t.Errorf("id = %v, want known-id", body["id"])
	}
	if msg, _ := body["message"].(string); msg == "" {
		t.Error("delete confirmation has no message")
	}
}

func TestDeleteResearchNotFound(t *testing.T) {
	r := newTestRouter(&stubStore{}, &stubRelay{})

	w, _ := doJSON(t, r, http.MethodDelete, "/api/research/nonexistent-id", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("DELETE of unknown id status = %d, want 404", w.Code)
	}
}

func TestDeleteResearchStoreFailure(t *testing.T) {
	r := newTestRouter(&stubStore{err: errors.New("connection reset")}, &stubRelay{})

	w, _ := doJSON(t, r, http.MethodDelete, "/api/research/some-id", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
}

func TestCategoriesEndpoint(t *testing.T) {
	r := newTestRouter(&stubStore{}, &stubRelay{})

	w, body := doJSON(t, r, http.MethodGet, "/api/research/categories", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	cats, ok := body["categories"].([]interface{})
	if !ok {
		t.Fatalf("categories missing: %v", body)
	}
	if len(cats) != 4 {
		t.Fatalf("got %d categories, want 4", len(cats))
	}

	wantIDs := []string{"space", "quantum", "ai", "database"}
	for i, raw := range cats {
		cat := raw.(map[string]interface{})
		if cat["id"] != wantIDs[i] {
			t.Errorf("categories[%d].id = %v, want %s", i, cat["id"], wantIDs[i])
		}
	}
}

func TestStatsEndpoint(t *testing.T) {
	store := &stubStore{stats: &research.Stats{
		TotalResearch: 4,
		Categories:    research.CategoryCounts{Space: 1, Quantum: 1, AI: 1, Database: 1},
		LastUpdated:   time.Now().UTC(),
	}}
	r := newTestRouter(store, &stubRelay{})

	w, body := doJSON(t, r, http.MethodGet, "/api/research/stats", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body["total_research"] != float64(4) {
		t.Errorf("total_research = %v, want 4", body["total_research"])
	}
	counts, ok := body["categories"].(map[string]interface{})
	if !ok {
		t.Fatalf("categories missing: %v", body)
	}
	for _, cat := range []string{"space", "quantum", "ai", "database"} {
		if counts[cat] != float64(1) {
			t.Errorf("categories.%s = %v, want 1", cat, counts[cat])
		}
	}
}

func TestStatsEndpointFailure(t *testing.T) {
	r := newTestRouter(&stubStore{err: errors.New("timeout")}, &stubRelay{})

	w, _ := doJSON(t, r, http.MethodGet, "/api/research/stats", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
}
