package calculation

import (
	"fmt"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/econloss/loss-calculator/internal/domain"
	json "github.com/goccy/go-json"
)

// Memo caches Results keyed by a hash of the case and valuation date.
// Recomputation is idempotent, so a miss only costs time. Cached results are
// shared between callers and must be treated as read-only.
type Memo struct {
	mu       sync.Mutex
	capacity int
	entries  map[uint64]domain.Results
	order    []uint64
	hits     uint64
	misses   uint64
}

// NewMemo creates a memo holding at most capacity results (minimum 1).
func NewMemo(capacity int) *Memo {
	if capacity < 1 {
		capacity = 1
	}
	return &Memo{capacity: capacity, entries: make(map[uint64]domain.Results, capacity)}
}

type memoKey struct {
	Case domain.Case `json:"case"`
	AsOf string      `json:"as_of"`
	Opts struct {
		RerunAncillary bool `json:"rerun_ancillary"`
	} `json:"opts"`
}

// Key hashes the inputs that determine a Results value.
func Key(c domain.Case, asOf time.Time, opts ScenarioOptions) (uint64, error) {
	k := memoKey{Case: c, AsOf: asOf.Format("2006-01-02")}
	k.Opts.RerunAncillary = opts.RerunAncillary
	b, err := json.Marshal(k)
	if err != nil {
		return 0, fmt.Errorf("encode memo key: %w", err)
	}
	return xxhash.Sum64(b), nil
}

// Get returns a cached result.
func (m *Memo) Get(key uint64) (domain.Results, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res, ok := m.entries[key]
	if ok {
		m.hits++
	} else {
		m.misses++
	}
	return res, ok
}

// Put stores a result, evicting the oldest entry when full.
func (m *Memo) Put(key uint64, res domain.Results) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[key]; ok {
		m.entries[key] = res
		return
	}
	if len(m.order) >= m.capacity {
		oldest := m.order[0]
		m.order = m.order[1:]
		delete(m.entries, oldest)
	}
	m.entries[key] = res
	m.order = append(m.order, key)
}

// Len returns the number of cached results.
func (m *Memo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Stats returns hit and miss counts.
func (m *Memo) Stats() (hits, misses uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits, m.misses
}

// CalculateCached computes through the memo. When the key cannot be derived
// the result is computed directly and not cached.
func (ce *CalculationEngine) CalculateCached(m *Memo, c domain.Case, asOf time.Time) domain.Results {
	key, err := Key(c, asOf, ce.Options)
	if err != nil {
		ce.Logger.Warnf("memo key: %v", err)
		return ce.CalculateAt(c, asOf)
	}
	if res, ok := m.Get(key); ok {
		return res
	}
	res := ce.CalculateAt(c, asOf)
	m.Put(key, res)
	return res
}
