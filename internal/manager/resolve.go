package manager

import (
	"time"

	"lorad/pkg/lora"
)

// Lookup returns the cached request for a numeric adapter id. This is the
// registry keying scheme: ids for lookup and replacement.
func (m *Manager) Lookup(id int64) (*lora.Request, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[id]
	if !ok || e.State != StateReady {
		return nil, false
	}
	return e.Request, true
}

// ResolveByName reconciles an adapter by its identity key: the request's
// name-based hash/equality, independent of which numeric id it was cached
// under. Engines that built the "same" request with different ids agree here.
func (m *Manager) ResolveByName(name string) (*lora.Request, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byName[lora.IdentityHash(name)]
	if !ok {
		return nil, false
	}
	e, ok := m.entries[id]
	if !ok {
		return nil, false
	}
	// Hash collisions are possible in principle; equality decides.
	if e.Request.Key() != name {
		return nil, false
	}
	return e.Request, true
}

// Touch refreshes the last-used stamp for an adapter, if cached.
func (m *Manager) Touch(id int64) {
	m.mu.Lock()
	if e, ok := m.entries[id]; ok {
		e.LastUsed = time.Now()
	}
	m.mu.Unlock()
}
