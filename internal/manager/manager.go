package manager

import (
	"sync"
	"time"

	"lorad/pkg/types"
)

type Manager struct {
	mu      sync.RWMutex
	catalog []types.Adapter
	// entries is the adapter cache, keyed by numeric adapter id.
	entries map[int64]*entry
	// byName maps identity hashes to ids for cross-engine reconciliation.
	// This index never drives cache lookup or replacement; ids do.
	byName map[uint64]int64

	budgetMB  int
	marginMB  int
	usedEstMB int
	lastErr   string

	// Load admission
	loadCh  chan struct{} // size 1: single in-flight load
	queueCh chan struct{} // buffered: queued load slots
	maxWait time.Duration

	drainTimeout time.Duration
	lruPath      string
	lruMeta      map[int64]lruRecord

	backend   WeightBackend
	publisher EventPublisher

	startTime time.Time
	evictions uint64
	loads     uint64
	reloads   uint64
	closed    bool
}

// New constructs a Manager with default queueing and backend settings.
func New(catalog []types.Adapter, budgetMB, marginMB int) *Manager {
	// Delegate to NewWithConfig to centralize defaults and option parsing
	return NewWithConfig(ManagerConfig{
		Catalog:  catalog,
		BudgetMB: budgetMB,
		MarginMB: marginMB,
	})
}

// Ready reports whether the manager accepts load requests.
func (m *Manager) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return !m.closed
}

// Catalog returns the scanned adapter catalog.
func (m *Manager) Catalog() []types.Adapter {
	m.mu.RLock()
	defer m.mu.RUnlock()
	// return a shallow copy to avoid external mutation
	out := make([]types.Adapter, len(m.catalog))
	copy(out, m.catalog)
	return out
}

// Close persists LRU metadata and releases every cached adapter.
func (m *Manager) Close() error {
	m.saveLRUMetadata()
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	for id, e := range m.entries {
		if e.handle != nil {
			_ = e.handle.Close()
		}
		delete(m.entries, id)
	}
	m.usedEstMB = 0
	return nil
}
