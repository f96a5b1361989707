// Package history records a summary row for each successful generate run.
//
// The store is optional: when disabled a no-op implementation is used and
// nothing is written. Two real backends exist: a local SQLite database for
// single-machine use, and MongoDB for runs executed across ephemeral CI
// workers that share a database.
package history

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Run is one recorded generate run.
type Run struct {
	ID            string    `json:"id" bson:"_id"`
	GeneratedAt   time.Time `json:"generated_at" bson:"generated_at"`
	TotalText     string    `json:"total_text" bson:"total_text"`
	TopLanguage   string    `json:"top_language" bson:"top_language"`
	LanguageCount int       `json:"language_count" bson:"language_count"`
	ProjectCount  int       `json:"project_count" bson:"project_count"`
}

// NewRun creates a Run with a fresh ID and the current timestamp.
func NewRun(totalText, topLanguage string, languages, projects int) Run {
	return Run{
		ID:            uuid.NewString(),
		GeneratedAt:   time.Now().UTC(),
		TotalText:     totalText,
		TopLanguage:   topLanguage,
		LanguageCount: languages,
		ProjectCount:  projects,
	}
}

// Store persists and lists runs.
type Store interface {
	// Record persists a run.
	Record(ctx context.Context, run Run) error

	// Recent returns up to limit runs, newest first.
	Recent(ctx context.Context, limit int) ([]Run, error)

	// Close releases resources held by the backend.
	Close() error
}

// NullStore discards all runs. Used when history recording is disabled.
type NullStore struct{}

// NewNullStore creates a no-op store.
func NewNullStore() Store { return &NullStore{} }

// Record does nothing.
func (s *NullStore) Record(ctx context.Context, run Run) error { return nil }

// Recent returns no runs.
func (s *NullStore) Recent(ctx context.Context, limit int) ([]Run, error) { return nil, nil }

// Close does nothing.
func (s *NullStore) Close() error { return nil }

// DefaultPath returns the default SQLite database path
// (~/.local/share/wakacards/history.db).
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "history.db"
	}
	return filepath.Join(home, ".local", "share", "wakacards", "history.db")
}

// Ensure NullStore implements Store.
var _ Store = (*NullStore)(nil)
