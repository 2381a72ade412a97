// Package filestore keeps each case as a YAML file in a directory.
package filestore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/econloss/loss-calculator/internal/casestore"
	"github.com/econloss/loss-calculator/internal/domain"
	"gopkg.in/yaml.v3"
)

const ext = ".yaml"

// Store persists cases as <id>.yaml files.
type Store struct {
	dir string
	mu  sync.RWMutex
	now func() time.Time
}

var _ casestore.Store = (*Store)(nil)

type fileRecord struct {
	ID        string      `yaml:"id"`
	Name      string      `yaml:"name"`
	UpdatedAt time.Time   `yaml:"updated_at"`
	Case      domain.Case `yaml:"case"`
}

// the case is decoded loosely so stale files are merged against defaults
type fileRecordIn struct {
	ID        string    `yaml:"id"`
	Name      string    `yaml:"name"`
	UpdatedAt time.Time `yaml:"updated_at"`
	Case      yaml.Node `yaml:"case"`
}

// Open opens (creating if needed) a directory-backed store.
func Open(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("storage directory is required")
	}
	clean := filepath.Clean(dir)
	if err := os.MkdirAll(clean, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &Store{dir: clean, now: time.Now}, nil
}

// Close is a no-op; files are written synchronously.
func (s *Store) Close() error { return nil }

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, id+ext)
}

// Save writes the record, replacing any existing file with the same ID.
func (s *Store) Save(ctx context.Context, rec casestore.Record) (casestore.Record, error) {
	if err := ctx.Err(); err != nil {
		return casestore.Record{}, err
	}
	rec, err := casestore.Prepare(rec, s.now())
	if err != nil {
		return casestore.Record{}, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fileRecord{ID: rec.ID, Name: rec.Name, UpdatedAt: rec.UpdatedAt, Case: rec.Case}); err != nil {
		return casestore.Record{}, fmt.Errorf("encode case %s: %w", rec.ID, err)
	}
	if err := enc.Close(); err != nil {
		return casestore.Record{}, fmt.Errorf("encode case %s: %w", rec.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	tmp, err := os.CreateTemp(s.dir, ".tmp-"+rec.ID+"-*")
	if err != nil {
		return casestore.Record{}, fmt.Errorf("write case %s: %w", rec.ID, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return casestore.Record{}, fmt.Errorf("write case %s: %w", rec.ID, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return casestore.Record{}, fmt.Errorf("write case %s: %w", rec.ID, err)
	}
	if err := os.Rename(tmpName, s.path(rec.ID)); err != nil {
		_ = os.Remove(tmpName)
		return casestore.Record{}, fmt.Errorf("write case %s: %w", rec.ID, err)
	}
	return rec, nil
}

// Get reads one record.
func (s *Store) Get(ctx context.Context, id string) (casestore.Record, error) {
	if err := ctx.Err(); err != nil {
		return casestore.Record{}, err
	}
	id = strings.TrimSpace(id)
	if err := casestore.ValidateID(id); err != nil {
		return casestore.Record{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read(s.path(id))
}

func (s *Store) read(path string) (casestore.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return casestore.Record{}, casestore.ErrNotFound
		}
		return casestore.Record{}, fmt.Errorf("read case: %w", err)
	}
	var in fileRecordIn
	if err := yaml.Unmarshal(data, &in); err != nil {
		return casestore.Record{}, fmt.Errorf("decode case %s: %w", filepath.Base(path), err)
	}
	raw := map[string]any{}
	if !in.Case.IsZero() {
		if err := in.Case.Decode(&raw); err != nil {
			return casestore.Record{}, fmt.Errorf("decode case %s: %w", filepath.Base(path), err)
		}
	}
	if in.ID == "" {
		in.ID = strings.TrimSuffix(filepath.Base(path), ext)
	}
	return casestore.Record{
		ID:        in.ID,
		Name:      in.Name,
		Case:      casestore.DecodeCase(raw),
		UpdatedAt: in.UpdatedAt.UTC(),
	}, nil
}

// List returns summaries of every readable case file.
func (s *Store) List(ctx context.Context) ([]casestore.Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list cases: %w", err)
	}
	out := make([]casestore.Summary, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ext) || strings.HasPrefix(name, ".") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := s.read(filepath.Join(s.dir, name))
		if err != nil {
			return nil, err
		}
		out = append(out, casestore.Summarize(rec))
	}
	casestore.SortSummaries(out)
	return out, nil
}

// Delete removes one record.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if err := casestore.ValidateID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path(id)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return casestore.ErrNotFound
		}
		return fmt.Errorf("delete case %s: %w", id, err)
	}
	return nil
}
