// Package history keeps an in-memory record of recent extraction runs.
// Records are bounded by a configurable limit and ordered newest first.
package history

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultLimit caps stored records when no limit is configured.
const DefaultLimit = 100

// Extraction outcome states.
const (
	StatusCompleted = "completed"
	StatusRefused   = "refused"
	StatusFailed    = "failed"
)

// Record represents one extraction run.
type Record struct {
	// Unique identifier
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// Upload info
	Filename  string `json:"filename"`
	SizeBytes int64  `json:"size_bytes"`
	PageCount int    `json:"page_count,omitempty"`

	// Model info
	Model        string `json:"model,omitempty"`
	InputTokens  int64  `json:"input_tokens"`
	OutputTokens int64  `json:"output_tokens"`

	// Pipeline results
	TablesExtracted  int `json:"tables_extracted"`
	TablesReconciled int `json:"tables_reconciled"`
	TablesSkipped    int `json:"tables_skipped"`

	// Outcome
	Status         string `json:"status"`
	Error          string `json:"error,omitempty"`
	SpreadsheetURL string `json:"spreadsheet_url,omitempty"`
	DurationMs     int64  `json:"duration_ms"`
}

// Summary aggregates record counts by outcome.
type Summary struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Refused   int `json:"refused"`
	Failed    int `json:"failed"`
}

// Store is a thread-safe bounded record store.
type Store struct {
	mu      sync.RWMutex
	limit   int
	records []Record
}

// NewStore creates a store holding at most limit records.
// Non-positive limits fall back to DefaultLimit.
func NewStore(limit int) *Store {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Store{limit: limit}
}

// Add stores a record, assigning an ID and timestamp when absent,
// and evicts the oldest record once the limit is reached.
// It returns the record as stored.
func (s *Store) Add(rec Record) Record {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append([]Record{rec}, s.records...)
	if len(s.records) > s.limit {
		s.records = s.records[:s.limit]
	}
	return rec
}

// List returns all stored records, newest first.
func (s *Store) List() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Get returns the record with the given ID.
func (s *Store) Get(id string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.records {
		if rec.ID == id {
			return rec, true
		}
	}
	return Record{}, false
}

// Summary returns aggregate counts by outcome.
func (s *Store) Summary() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum := Summary{Total: len(s.records)}
	for _, rec := range s.records {
		switch rec.Status {
		case StatusCompleted:
			sum.Completed++
		case StatusRefused:
			sum.Refused++
		case StatusFailed:
			sum.Failed++
		}
	}
	return sum
}
