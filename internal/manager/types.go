package manager

import (
	"time"

	"lorad/pkg/lora"
)

// State represents lifecycle state of a cached adapter entry.
type State string

const (
	StateLoading  State = "loading"
	StateReady    State = "ready"
	StateDraining State = "draining"
)

// Source kinds reported in status payloads.
const (
	SourcePath   = "path"
	SourceMemory = "memory"
)

// Handle represents adapter weights resident in the serving runtime.
// Close releases whatever the backend allocated for them.
type Handle interface {
	Close() error
}

// entry is one cached adapter, keyed by its numeric id in Manager.entries.
type entry struct {
	Request   *lora.Request
	State     State
	LastUsed  time.Time
	EstSizeMB int
	Loads     uint64
	handle    Handle
}

func (e *entry) source() string {
	if e.Request.HasInMemorySource() {
		return SourceMemory
	}
	return SourcePath
}
