package manager

import "time"

// Unload removes a cached adapter and releases its weights.
// - Sets the entry to draining so concurrent status readers see it going away.
// - Waits up to drainTimeout for an in-flight load to finish.
// - Closes the backend handle and removes the entry.
func (m *Manager) Unload(id int64) error {
	m.mu.Lock()
	e := m.entries[id]
	if e == nil {
		m.mu.Unlock()
		return ErrAdapterNotFound(id)
	}
	e.State = StateDraining
	m.mu.Unlock()
	m.publisher.Publish(Event{Name: "unload_start", AdapterID: id})

	deadline := time.Now().Add(m.drainTimeout)
	for {
		if len(m.loadCh) == 0 {
			break
		}
		if time.Now().After(deadline) {
			m.publisher.Publish(Event{Name: "unload_timeout", AdapterID: id})
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	m.mu.Lock()
	e2 := m.entries[id]
	if e2 != nil {
		m.usedEstMB -= e2.EstSizeMB
		if m.usedEstMB < 0 {
			m.usedEstMB = 0
		}
		if m.byName[e2.Request.Hash()] == id {
			delete(m.byName, e2.Request.Hash())
		}
	}
	delete(m.entries, id)
	m.mu.Unlock()

	if e2 != nil && e2.handle != nil {
		_ = e2.handle.Close()
	}
	m.publisher.Publish(Event{Name: "unload_done", AdapterID: id})
	return nil
}
