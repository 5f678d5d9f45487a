// Package store exports analysis runs into a SQLite file.
//
// The database is an output artifact like the CSV tables: each run gets a
// UUID, its grids are stored cell by cell as exact hex text (NULL for
// missing cells) and its summary statistics are stored per label. Schema
// changes are applied with embedded golang-migrate migrations on Open.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/banshee-data/xor-pyramid/internal/grid"
	"github.com/banshee-data/xor-pyramid/internal/stats"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrGridNotFound is returned by LoadGrid for an unknown run or grid name.
var ErrGridNotFound = errors.New("grid not found")

// Store wraps the SQLite handle.
type Store struct {
	db *sql.DB
}

// Run describes one analysis invocation.
type Run struct {
	ID         string
	Label      string
	InputLen   int
	WindowSize int
	Mode       string
	LogScale   bool
	CreatedAt  time.Time
}

// Open opens (creating if needed) the database at path and migrates it.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// a single connection keeps ":memory:" databases coherent
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}

	s := &Store{db: db}
	if err := s.MigrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun inserts r, assigning a new UUID when r.ID is empty, and returns
// the stored run.
func (s *Store) SaveRun(ctx context.Context, r Run) (Run, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, label, input_len, window_size, mode, log_scale, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Label, r.InputLen, r.WindowSize, r.Mode, r.LogScale, r.CreatedAt.UTC(),
	)
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}
	return r, nil
}

// SaveGrid stores every cell of g under the given name within one
// transaction.
func (s *Store) SaveGrid(ctx context.Context, runID, name string, g *grid.Grid) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO grid_shapes (run_id, grid, rows, cols) VALUES (?, ?, ?, ?)`,
		runID, name, g.Rows(), g.Cols(),
	); err != nil {
		return fmt.Errorf("insert grid shape: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO grid_cells (run_id, grid, row_idx, col_idx, hex) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare cell insert: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < g.Rows(); i++ {
		for j := 0; j < g.Cols(); j++ {
			var hex sql.NullString
			if v, ok := g.At(i, j).Value(); ok {
				hex = sql.NullString{String: v.Text(16), Valid: true}
			}
			if _, err = stmt.ExecContext(ctx, runID, name, i, j, hex); err != nil {
				return fmt.Errorf("insert cell (%d,%d): %w", i, j, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// LoadGrid reads back a grid stored by SaveGrid.
func (s *Store) LoadGrid(ctx context.Context, runID, name string) (*grid.Grid, error) {
	var rows, cols int
	err := s.db.QueryRowContext(ctx,
		`SELECT rows, cols FROM grid_shapes WHERE run_id = ? AND grid = ?`, runID, name,
	).Scan(&rows, &cols)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: run %s grid %s", ErrGridNotFound, runID, name)
	}
	if err != nil {
		return nil, fmt.Errorf("query grid shape: %w", err)
	}

	g := grid.New(rows, cols)
	rs, err := s.db.QueryContext(ctx,
		`SELECT row_idx, col_idx, hex FROM grid_cells WHERE run_id = ? AND grid = ? AND hex IS NOT NULL`,
		runID, name)
	if err != nil {
		return nil, fmt.Errorf("query grid cells: %w", err)
	}
	defer rs.Close()

	for rs.Next() {
		var i, j int
		var hex string
		if err := rs.Scan(&i, &j, &hex); err != nil {
			return nil, fmt.Errorf("scan cell: %w", err)
		}
		v, ok := new(big.Int).SetString(hex, 16)
		if !ok {
			return nil, fmt.Errorf("corrupt cell (%d,%d): %q", i, j, hex)
		}
		g.Set(i, j, grid.Defined(v))
	}
	return g, rs.Err()
}

// SaveSummary stores the statistics printed for label.
func (s *Store) SaveSummary(ctx context.Context, runID, label string, sum stats.Summary) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO summaries (run_id, label, count, mean, variance, max_value, min_value)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, label, sum.Count, sum.Mean, sum.Variance, sum.Max, sum.Min,
	)
	if err != nil {
		return fmt.Errorf("insert summary: %w", err)
	}
	return nil
}

// LoadSummary reads a summary stored by SaveSummary.
func (s *Store) LoadSummary(ctx context.Context, runID, label string) (stats.Summary, error) {
	var sum stats.Summary
	err := s.db.QueryRowContext(ctx,
		`SELECT count, mean, variance, max_value, min_value FROM summaries WHERE run_id = ? AND label = ?`,
		runID, label,
	).Scan(&sum.Count, &sum.Mean, &sum.Variance, &sum.Max, &sum.Min)
	if err != nil {
		return stats.Summary{}, fmt.Errorf("query summary: %w", err)
	}
	return sum, nil
}

// ListRuns returns stored runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rs, err := s.db.QueryContext(ctx,
		`SELECT run_id, label, input_len, window_size, mode, log_scale, created_at
		 FROM runs ORDER BY created_at DESC, run_id`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rs.Close()

	var out []Run
	for rs.Next() {
		var r Run
		if err := rs.Scan(&r.ID, &r.Label, &r.InputLen, &r.WindowSize, &r.Mode, &r.LogScale, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, r)
	}
	return out, rs.Err()
}
