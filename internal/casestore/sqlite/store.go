// Package sqlite provides a SQLite-backed case store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/econloss/loss-calculator/internal/casestore"
	"github.com/econloss/loss-calculator/internal/casestore/sqlite/migrations"
	json "github.com/goccy/go-json"
	_ "modernc.org/sqlite"
)

// Store persists cases in SQLite. The case itself is stored as a JSON blob.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

var _ casestore.Store = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite case store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(context.Background(), sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// Save inserts or replaces one case.
func (s *Store) Save(ctx context.Context, rec casestore.Record) (casestore.Record, error) {
	if err := s.ready(ctx); err != nil {
		return casestore.Record{}, err
	}
	rec, err := casestore.Prepare(rec, s.now())
	if err != nil {
		return casestore.Record{}, err
	}
	blob, err := json.Marshal(rec.Case)
	if err != nil {
		return casestore.Record{}, fmt.Errorf("encode case %s: %w", rec.ID, err)
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO cases (id, name, plaintiff, date_of_trial, case_json, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   plaintiff = excluded.plaintiff,
		   date_of_trial = excluded.date_of_trial,
		   case_json = excluded.case_json,
		   updated_at = excluded.updated_at`,
		rec.ID,
		rec.Name,
		rec.Case.Info.Plaintiff,
		rec.Case.Info.DateOfTrial,
		blob,
		toMillis(rec.UpdatedAt),
	)
	if err != nil {
		return casestore.Record{}, fmt.Errorf("save case %s: %w", rec.ID, err)
	}
	return rec, nil
}

// Get returns one case by ID.
func (s *Store) Get(ctx context.Context, id string) (casestore.Record, error) {
	if err := s.ready(ctx); err != nil {
		return casestore.Record{}, err
	}
	id = strings.TrimSpace(id)
	if err := casestore.ValidateID(id); err != nil {
		return casestore.Record{}, err
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, name, case_json, updated_at
		   FROM cases
		  WHERE id = ?`,
		id,
	)
	var rec casestore.Record
	var blob []byte
	var updatedAt int64
	if err := row.Scan(&rec.ID, &rec.Name, &blob, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return casestore.Record{}, casestore.ErrNotFound
		}
		return casestore.Record{}, fmt.Errorf("get case %s: %w", id, err)
	}
	raw := map[string]any{}
	if err := json.Unmarshal(blob, &raw); err != nil {
		return casestore.Record{}, fmt.Errorf("decode case %s: %w", id, err)
	}
	rec.Case = casestore.DecodeCase(raw)
	rec.UpdatedAt = fromMillis(updatedAt)
	return rec, nil
}

// List returns summaries sorted by name, then ID.
func (s *Store) List(ctx context.Context) ([]casestore.Summary, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, name, plaintiff, date_of_trial, updated_at
		   FROM cases
		  ORDER BY name, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list cases: %w", err)
	}
	defer rows.Close()

	out := []casestore.Summary{}
	for rows.Next() {
		var sum casestore.Summary
		var updatedAt int64
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.Plaintiff, &sum.DateOfTrial, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan case: %w", err)
		}
		sum.UpdatedAt = fromMillis(updatedAt)
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cases: %w", err)
	}
	return out, nil
}

// Delete removes one case.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if err := casestore.ValidateID(id); err != nil {
		return err
	}
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM cases WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete case %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete case %s: %w", id, err)
	}
	if n == 0 {
		return casestore.ErrNotFound
	}
	return nil
}
