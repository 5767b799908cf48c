package manager

import (
	"time"

	"lorad/pkg/types"
)

// Defaults applied when corresponding ManagerConfig fields are unset.
const (
	defaultMaxQueuedLoads = 32
	defaultMaxWait        = 30 * time.Second
	defaultDrainTimeout   = 500 * time.Millisecond
)

// ManagerConfig encapsulates all tunables for Manager construction.
type ManagerConfig struct {
	Catalog        []types.Adapter
	BudgetMB       int
	MarginMB       int
	MaxQueuedLoads int
	MaxWait        time.Duration
	DrainTimeout   time.Duration
	// LRUPath optionally persists last-used metadata across restarts.
	LRUPath string
	// BaseModelPath selects the llama backend when set (requires -tags=llama).
	BaseModelPath string
	CtxSize       int
	// Backend overrides backend selection entirely (used by tests and embedders).
	Backend WeightBackend
	// Publisher receives lifecycle events; defaults to a no-op publisher.
	Publisher EventPublisher
}

// NewWithConfig constructs a Manager from ManagerConfig.
func NewWithConfig(cfg ManagerConfig) *Manager {
	m := &Manager{
		catalog:  cfg.Catalog,
		entries:  make(map[int64]*entry),
		byName:   make(map[uint64]int64),
		budgetMB: cfg.BudgetMB,
		marginMB: cfg.MarginMB,
		lruPath:  cfg.LRUPath,
	}
	if cfg.MaxQueuedLoads <= 0 {
		m.queueCh = make(chan struct{}, defaultMaxQueuedLoads)
	} else {
		m.queueCh = make(chan struct{}, cfg.MaxQueuedLoads)
	}
	m.loadCh = make(chan struct{}, 1)
	if cfg.MaxWait <= 0 {
		m.maxWait = defaultMaxWait
	} else {
		m.maxWait = cfg.MaxWait
	}
	if cfg.DrainTimeout <= 0 {
		m.drainTimeout = defaultDrainTimeout
	} else {
		m.drainTimeout = cfg.DrainTimeout
	}
	if cfg.Publisher != nil {
		m.publisher = cfg.Publisher
	} else {
		m.publisher = noopPublisher{}
	}
	switch {
	case cfg.Backend != nil:
		m.backend = cfg.Backend
	case cfg.BaseModelPath != "":
		m.backend = NewLlamaBackend(cfg.BaseModelPath, cfg.CtxSize)
	default:
		m.backend = newResidentBackend()
	}
	m.startTime = time.Now()
	m.loadLRUMetadata()
	return m
}
