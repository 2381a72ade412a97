package calculation

import (
	"testing"
	"time"

	"github.com/econloss/loss-calculator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey_StableAndSensitive(t *testing.T) {
	c := sampleCase()
	k1, err := Key(c, testAsOf, ScenarioOptions{})
	require.NoError(t, err)
	k2, err := Key(c.Clone(), testAsOf, ScenarioOptions{Parallel: true})
	require.NoError(t, err)
	assert.Equal(t, k1, k2, "parallelism does not change results")

	c.Earnings.DiscountRate = 4.5
	k3, err := Key(c, testAsOf, ScenarioOptions{})
	require.NoError(t, err)
	assert.NotEqual(t, k1, k3)

	k4, err := Key(sampleCase(), testAsOf.AddDate(0, 0, 1), ScenarioOptions{})
	require.NoError(t, err)
	assert.NotEqual(t, k1, k4)
}

func TestMemo_Eviction(t *testing.T) {
	m := NewMemo(2)
	m.Put(1, domain.Results{GrandTotal: 1})
	m.Put(2, domain.Results{GrandTotal: 2})
	m.Put(3, domain.Results{GrandTotal: 3})

	assert.Equal(t, 2, m.Len())
	_, ok := m.Get(1)
	assert.False(t, ok)
	res, ok := m.Get(3)
	assert.True(t, ok)
	assert.Equal(t, 3.0, res.GrandTotal)

	hits, misses := m.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
}

func TestMemo_PutSameKeyReplaces(t *testing.T) {
	m := NewMemo(0)
	m.Put(7, domain.Results{GrandTotal: 1})
	m.Put(7, domain.Results{GrandTotal: 2})
	res, ok := m.Get(7)
	require.True(t, ok)
	assert.Equal(t, 2.0, res.GrandTotal)
	assert.Equal(t, 1, m.Len())
}

func TestCalculateCached(t *testing.T) {
	ce := NewCalculationEngine()
	m := NewMemo(4)
	c := sampleCase()

	first := ce.CalculateCached(m, c, testAsOf)
	second := ce.CalculateCached(m, c, testAsOf.Add(5*time.Hour))

	assert.Equal(t, first, second)
	assert.Equal(t, Compute(c, testAsOf), first)
	hits, misses := m.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
}
