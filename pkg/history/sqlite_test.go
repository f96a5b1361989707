package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestSQLiteStoreRoundtrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "data", "history.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore error: %v", err)
	}
	defer store.Close()

	runs := []Run{
		NewRun("4 hours", "Go", 5, 3),
		NewRun("2 hours", "Python", 2, 1),
	}
	// Force distinct timestamps for a deterministic order.
	runs[0].GeneratedAt = time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	runs[1].GeneratedAt = time.Date(2026, 8, 21, 12, 0, 0, 0, time.UTC)

	for _, run := range runs {
		if err := store.Record(ctx, run); err != nil {
			t.Fatalf("Record error: %v", err)
		}
	}

	got, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d runs, want 2", len(got))
	}

	// Newest first.
	if got[0].TopLanguage != "Python" || got[1].TopLanguage != "Go" {
		t.Errorf("unexpected order: %v, %v", got[0].TopLanguage, got[1].TopLanguage)
	}
	if got[1].TotalText != "4 hours" || got[1].LanguageCount != 5 || got[1].ProjectCount != 3 {
		t.Errorf("run fields not preserved: %+v", got[1])
	}
	if !got[0].GeneratedAt.Equal(runs[1].GeneratedAt) {
		t.Errorf("GeneratedAt = %v, want %v", got[0].GeneratedAt, runs[1].GeneratedAt)
	}
}

func TestSQLiteStoreLimit(t *testing.T) {
	ctx := context.Background()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore error: %v", err)
	}
	defer store.Close()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		run := NewRun("1 hour", "Go", 1, 1)
		run.GeneratedAt = base.Add(time.Duration(i) * time.Hour)
		if err := store.Record(ctx, run); err != nil {
			t.Fatalf("Record error: %v", err)
		}
	}

	got, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d runs, want 2", len(got))
	}
}

func TestNewRun(t *testing.T) {
	run := NewRun("3 hours", "Go", 4, 2)

	if run.ID == "" {
		t.Error("ID should be populated")
	}
	if run.GeneratedAt.IsZero() {
		t.Error("GeneratedAt should be populated")
	}
	if NewRun("", "", 0, 0).ID == run.ID {
		t.Error("IDs should be unique per run")
	}
}

func TestNullStore(t *testing.T) {
	ctx := context.Background()
	store := NewNullStore()
	defer store.Close()

	if err := store.Record(ctx, NewRun("1 hour", "Go", 1, 1)); err != nil {
		t.Errorf("Record error: %v", err)
	}
	runs, err := store.Recent(ctx, 10)
	if err != nil {
		t.Errorf("Recent error: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("NullStore should record nothing, got %d runs", len(runs))
	}
}
