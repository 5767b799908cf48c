package manager

import (
	"context"
	"time"

	"github.com/google/uuid"

	"lorad/pkg/lora"
)

// Outcome classifies what a Load call actually did.
type Outcome string

const (
	OutcomeLoaded   Outcome = "loaded"   // fresh load
	OutcomeReused   Outcome = "reused"   // entry with the same id already cached
	OutcomeReplaced Outcome = "replaced" // force_reload replaced the cached entry
)

// LoadResult reports the op id and outcome of a Load.
type LoadResult struct {
	OpID    string
	Outcome Outcome
}

// Load makes the requested adapter available. The request record arrives
// already validated, so exactly one source route is populated; Load branches
// on it and delegates materialization to the backend.
//
// Cache policy, keyed by the numeric id: an existing ready entry is reused
// unless the request carries force_reload, in which case it is replaced in
// place. Reuse only refreshes the last-used stamp.
func (m *Manager) Load(ctx context.Context, req *lora.Request) (LoadResult, error) {
	opID := uuid.NewString()
	id := req.AdapterID()

	// Fast path: cached and not forced.
	if !req.ForceReload() {
		m.mu.Lock()
		if e, ok := m.entries[id]; ok && e.State == StateReady {
			e.LastUsed = time.Now()
			m.mu.Unlock()
			m.publisher.Publish(Event{Name: "load_reused", AdapterID: id, OpID: opID})
			return LoadResult{OpID: opID, Outcome: OutcomeReused}, nil
		}
		m.mu.Unlock()
	}

	release, err := m.beginLoad(ctx, req.Name())
	if err != nil {
		return LoadResult{}, err
	}
	defer release()

	// Re-check under the load slot: another queued load may have won.
	replacing := false
	m.mu.Lock()
	if e, ok := m.entries[id]; ok && e.State == StateReady {
		if !req.ForceReload() {
			e.LastUsed = time.Now()
			m.mu.Unlock()
			m.publisher.Publish(Event{Name: "load_reused", AdapterID: id, OpID: opID})
			return LoadResult{OpID: opID, Outcome: OutcomeReused}, nil
		}
		replacing = true
	}
	m.mu.Unlock()

	reqMB := m.estimateSizeMB(req)
	if m.budgetMB > 0 {
		if err := m.evictUntilFits(reqMB, id); err != nil {
			return LoadResult{}, err
		}
	}

	// Expose a loading entry while the backend works so /status readers see
	// the transition. The placeholder carries no accounting until commit.
	m.mu.Lock()
	prev := m.entries[id]
	addedNow := false
	if prev == nil {
		m.entries[id] = &entry{Request: req, State: StateLoading, LastUsed: time.Now(), EstSizeMB: reqMB}
		addedNow = true
	} else {
		prev.State = StateLoading
	}
	m.mu.Unlock()

	m.publisher.Publish(Event{Name: "load_start", AdapterID: id, OpID: opID,
		Fields: map[string]any{"name": req.Name(), "source": sourceOf(req)}})

	handle, err := m.backend.Load(ctx, req)
	if err != nil {
		m.mu.Lock()
		m.lastErr = err.Error()
		if addedNow {
			delete(m.entries, id)
		} else if prev != nil {
			// The old weights are still resident; keep serving them.
			prev.State = StateReady
		}
		m.mu.Unlock()
		m.publisher.Publish(Event{Name: "load_failed", AdapterID: id, OpID: opID,
			Fields: map[string]any{"error": err.Error()}})
		return LoadResult{}, err
	}

	m.mu.Lock()
	if addedNow {
		prev = nil
	} else {
		prev = m.entries[id]
	}
	e := &entry{
		Request:   req,
		State:     StateReady,
		LastUsed:  time.Now(),
		EstSizeMB: reqMB,
		handle:    handle,
	}
	if prev != nil {
		e.Loads = prev.Loads
		m.usedEstMB -= prev.EstSizeMB
		if prev.handle != nil {
			// Replace in place: the old weights go away with the old handle.
			_ = prev.handle.Close()
		}
	}
	e.Loads++
	m.entries[id] = e
	m.byName[req.Hash()] = id
	m.usedEstMB += reqMB
	m.loads++
	if replacing {
		m.reloads++
	}
	if meta, ok := m.lruMeta[id]; ok && !replacing {
		// Restore last-used ordering from a previous run.
		e.LastUsed = time.Unix(meta.LastUsedUnix, 0)
	}
	m.lastErr = ""
	m.mu.Unlock()

	outcome := OutcomeLoaded
	if replacing {
		outcome = OutcomeReplaced
	}
	m.publisher.Publish(Event{Name: "load_done", AdapterID: id, OpID: opID,
		Fields: map[string]any{"outcome": string(outcome)}})
	return LoadResult{OpID: opID, Outcome: outcome}, nil
}

func sourceOf(req *lora.Request) string {
	if req.HasInMemorySource() {
		return SourceMemory
	}
	return SourcePath
}
