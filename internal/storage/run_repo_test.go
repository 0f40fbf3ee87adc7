package storage

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestRepo(t *testing.T) *RunRepo {
	t.Helper()

	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	return NewRunRepo(db)
}

func TestRunRepo_SaveRun(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	run := &Run{
		BookDir:    "/books/bayes",
		OutputPath: "macros_used.txt",
		FileCount:  3,
		MacroCount: 2,
		Usage: []MacroUsage{
			{Macro: "alpha", Files: 1},
			{Macro: "frac", Files: 3},
		},
	}

	if err := repo.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}

	if _, err := uuid.Parse(run.ID); err != nil {
		t.Errorf("SaveRun() assigned ID %q, want a UUID", run.ID)
	}
	if run.CreatedAt.IsZero() {
		t.Error("SaveRun() should set CreatedAt")
	}

	usage, err := repo.Usage(ctx, run.ID)
	if err != nil {
		t.Fatalf("Usage() error = %v", err)
	}

	want := []MacroUsage{{Macro: "frac", Files: 3}, {Macro: "alpha", Files: 1}}
	if !reflect.DeepEqual(usage, want) {
		t.Errorf("Usage() = %v, want %v", usage, want)
	}
}

func TestRunRepo_SaveRun_DuplicateIDRollsBack(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := &Run{ID: "run-1", BookDir: "/b", OutputPath: "out.txt"}
	if err := repo.SaveRun(ctx, first); err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}

	dup := &Run{ID: "run-1", BookDir: "/b", OutputPath: "out.txt", Usage: []MacroUsage{{Macro: "x", Files: 1}}}
	if err := repo.SaveRun(ctx, dup); err == nil {
		t.Fatal("SaveRun() with duplicate ID expected error, got nil")
	}

	usage, err := repo.Usage(ctx, "run-1")
	if err != nil {
		t.Fatalf("Usage() error = %v", err)
	}
	if len(usage) != 0 {
		t.Errorf("Usage() = %v, want no rows from the failed save", usage)
	}
}

func TestRunRepo_ListRecent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "middle", "new"} {
		run := &Run{
			ID:         id,
			BookDir:    "/b",
			OutputPath: "out.txt",
			FileCount:  i,
			CreatedAt:  base.Add(time.Duration(i) * time.Hour),
		}
		if err := repo.SaveRun(ctx, run); err != nil {
			t.Fatalf("SaveRun(%s) error = %v", id, err)
		}
	}

	runs, err := repo.ListRecent(ctx, 2)
	if err != nil {
		t.Fatalf("ListRecent() error = %v", err)
	}

	if len(runs) != 2 {
		t.Fatalf("ListRecent() returned %d runs, want 2", len(runs))
	}
	if runs[0].ID != "new" || runs[1].ID != "middle" {
		t.Errorf("ListRecent() order = [%s %s], want [new middle]", runs[0].ID, runs[1].ID)
	}
	if !runs[0].CreatedAt.Equal(base.Add(2 * time.Hour)) {
		t.Errorf("ListRecent() CreatedAt = %v, want %v", runs[0].CreatedAt, base.Add(2*time.Hour))
	}
	if runs[0].FileCount != 2 {
		t.Errorf("ListRecent() FileCount = %d, want 2", runs[0].FileCount)
	}
}

func TestRunRepo_Usage_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Usage(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Usage() error = %v, want ErrNotFound", err)
	}
}
