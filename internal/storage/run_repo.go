package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_run_store.go -package=mocks latexref/internal/storage RunStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// RunStore defines the interface for extraction run history.
type RunStore interface {
	// SaveRun stores a run and its macro usage in one transaction.
	// It assigns ID and CreatedAt when they are empty.
	SaveRun(ctx context.Context, run *Run) error
	// ListRecent returns up to limit runs, newest first, without usage.
	ListRecent(ctx context.Context, limit int) ([]Run, error)
	// Usage returns the macro usage of a run, most used first.
	// Returns ErrNotFound if the run does not exist.
	Usage(ctx context.Context, runID string) ([]MacroUsage, error)
}

// RunRepo provides methods for run operations.
// It implements the RunStore interface.
type RunRepo struct {
	db *sql.DB
}

// NewRunRepo creates a new RunRepo.
func NewRunRepo(db *sql.DB) *RunRepo {
	return &RunRepo{db: db}
}

// SaveRun stores a run and its macro usage.
func (r *RunRepo) SaveRun(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO runs (id, book_dir, output_path, file_count, macro_count, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		run.ID, run.BookDir, run.OutputPath, run.FileCount, run.MacroCount, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO macro_usage (run_id, macro, files) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare usage insert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for _, u := range run.Usage {
		if _, err := stmt.ExecContext(ctx, run.ID, u.Macro, u.Files); err != nil {
			return fmt.Errorf("failed to insert usage for %q: %w", u.Macro, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}

	return nil
}

// ListRecent returns up to limit runs ordered by creation time, newest first.
func (r *RunRepo) ListRecent(ctx context.Context, limit int) ([]Run, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, book_dir, output_path, file_count, macro_count, created_at FROM runs ORDER BY created_at DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.BookDir, &run.OutputPath, &run.FileCount, &run.MacroCount, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}

	return runs, nil
}

// Usage returns the macro usage of a run ordered by file count, then name.
func (r *RunRepo) Usage(ctx context.Context, runID string) ([]MacroUsage, error) {
	var exists int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM runs WHERE id = ?", runID).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT macro, files FROM macro_usage WHERE run_id = ? ORDER BY files DESC, macro",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query usage: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var usage []MacroUsage
	for rows.Next() {
		var u MacroUsage
		if err := rows.Scan(&u.Macro, &u.Files); err != nil {
			return nil, fmt.Errorf("failed to scan usage: %w", err)
		}
		usage = append(usage, u)
	}

	return usage, rows.Err()
}
