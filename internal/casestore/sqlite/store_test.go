package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/econloss/loss-calculator/internal/calculation"
	"github.com/econloss/loss-calculator/internal/casestore"
	"github.com/econloss/loss-calculator/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAsOf = time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cases.sqlite")
	store, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}

func TestOpenTwiceAppliesMigrationsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cases.sqlite")
	first, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	defer second.Close()

	var n int
	require.NoError(t, second.sqlDB.QueryRow("SELECT COUNT(*) FROM "+migrationTable).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestSaveGetRoundTrip(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()
	orig := config.CreateExampleCase()

	saved, err := store.Save(ctx, casestore.Record{Case: orig})
	require.NoError(t, err)
	assert.Len(t, saved.ID, 36)

	got, err := store.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alex Rivera", got.Name)
	assert.True(t, saved.UpdatedAt.Equal(got.UpdatedAt))
	assert.Equal(t, orig, got.Case)
	assert.Equal(t, calculation.Compute(orig, testAsOf), calculation.Compute(got.Case, testAsOf))
}

func TestSaveUpsertListDelete(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()
	c := config.CreateExampleCase()

	_, err := store.Save(ctx, casestore.Record{ID: "b", Name: "Zed", Case: c})
	require.NoError(t, err)
	_, err = store.Save(ctx, casestore.Record{ID: "a", Name: "Amy", Case: c})
	require.NoError(t, err)
	c.Info.DateOfTrial = "2025-02-01"
	_, err = store.Save(ctx, casestore.Record{ID: "b", Name: "Bea", Case: c})
	require.NoError(t, err)

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, "Bea", list[1].Name)
	assert.Equal(t, "2025-02-01", list[1].DateOfTrial)
	assert.Equal(t, "Alex Rivera", list[1].Plaintiff)

	require.NoError(t, store.Delete(ctx, "a"))
	assert.ErrorIs(t, store.Delete(ctx, "a"), casestore.ErrNotFound)
	_, err = store.Get(ctx, "a")
	assert.ErrorIs(t, err, casestore.ErrNotFound)
}

func TestGetMergesPartialBlob(t *testing.T) {
	store := openTempStore(t)
	_, err := store.sqlDB.Exec(
		`INSERT INTO cases (id, name, case_json, updated_at) VALUES (?, ?, ?, ?)`,
		"legacy", "Legacy", []byte(`{"caseInfo":{"plaintiff":"Lee"},"earnings":{"baseEarnings":"n/a"}}`), 0,
	)
	require.NoError(t, err)

	got, err := store.Get(context.Background(), "legacy")
	require.NoError(t, err)
	assert.Equal(t, "Lee", got.Case.Info.Plaintiff)
	assert.Equal(t, 0.0, got.Case.Earnings.BaseEarnings)
	assert.Equal(t, config.DefaultCase().Scenarios, got.Case.Scenarios)
}

func TestInvalidIDAndCanceledContext(t *testing.T) {
	store := openTempStore(t)
	_, err := store.Save(context.Background(), casestore.Record{ID: "a/b"})
	assert.ErrorIs(t, err, casestore.ErrInvalidID)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = store.Get(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
}
