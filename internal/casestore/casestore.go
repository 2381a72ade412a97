// Package casestore defines persistence contracts for saved cases.
package casestore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/econloss/loss-calculator/internal/config"
	"github.com/econloss/loss-calculator/internal/domain"
	"github.com/google/uuid"
)

var (
	// ErrNotFound indicates a requested case record is missing.
	ErrNotFound = errors.New("case not found")
	// ErrInvalidID indicates a case ID that cannot be used as a storage key.
	ErrInvalidID = errors.New("invalid case id")
)

var idPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,127}$`)

// Record is one saved case.
type Record struct {
	ID        string
	Name      string
	Case      domain.Case
	UpdatedAt time.Time
}

// Summary is the listing view of a record.
type Summary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Plaintiff   string    `json:"plaintiff"`
	DateOfTrial string    `json:"date_of_trial"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Store persists case records.
type Store interface {
	// Save inserts or replaces a record. A blank ID is assigned a UUID. The
	// stored case is sanitized and the saved record is returned.
	Save(ctx context.Context, rec Record) (Record, error)
	Get(ctx context.Context, id string) (Record, error)
	// List returns summaries sorted by name, then ID.
	List(ctx context.Context) ([]Summary, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// ValidateID checks that id is usable as a storage key.
func ValidateID(id string) error {
	if !idPattern.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

// Prepare normalizes a record before it is written: it assigns an ID when
// blank, validates it, sanitizes the case, defaults the name to the
// plaintiff (or the ID) and stamps UpdatedAt with now at millisecond precision.
func Prepare(rec Record, now time.Time) (Record, error) {
	rec.ID = strings.TrimSpace(rec.ID)
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if err := ValidateID(rec.ID); err != nil {
		return Record{}, err
	}
	rec.Case, _ = config.Sanitize(rec.Case)
	rec.Name = strings.TrimSpace(rec.Name)
	if rec.Name == "" {
		rec.Name = rec.Case.Info.Plaintiff
	}
	if rec.Name == "" {
		rec.Name = rec.ID
	}
	rec.UpdatedAt = now.UTC().Truncate(time.Millisecond)
	return rec, nil
}

// Summarize builds the listing view of rec.
func Summarize(rec Record) Summary {
	return Summary{
		ID:          rec.ID,
		Name:        rec.Name,
		Plaintiff:   rec.Case.Info.Plaintiff,
		DateOfTrial: rec.Case.Info.DateOfTrial,
		UpdatedAt:   rec.UpdatedAt,
	}
}

// SortSummaries orders summaries by name, then ID.
func SortSummaries(list []Summary) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
}

// DecodeCase merges a stored structured record against defaults, the same way
// an imported file is read, so a partial or stale record still yields a
// complete case.
func DecodeCase(raw map[string]any) domain.Case {
	c, _ := config.FromRecord(raw)
	c, _ = config.Sanitize(c)
	return c
}
