package manager

// evictUntilFits removes LRU ready entries until requiredMB fits within
// budget + margin. keepID is the id being loaded and is never evicted.
func (m *Manager) evictUntilFits(requiredMB int, keepID int64) error {
	for {
		m.mu.Lock()
		fits := (m.usedEstMB + requiredMB + m.marginMB) <= m.budgetMB
		if fits {
			m.mu.Unlock()
			return nil
		}
		// Pick the LRU ready entry; loading/draining entries are in motion.
		var lruID int64
		var lru *entry
		for id, e := range m.entries {
			if id == keepID || e.State != StateReady {
				continue
			}
			if lru == nil || e.LastUsed.Before(lru.LastUsed) {
				lruID = id
				lru = e
			}
		}
		if lru == nil {
			// nothing to evict; the load proceeds over budget rather than fail
			m.mu.Unlock()
			return nil
		}
		delete(m.entries, lruID)
		if m.byName[lru.Request.Hash()] == lruID {
			delete(m.byName, lru.Request.Hash())
		}
		m.usedEstMB -= lru.EstSizeMB
		if m.usedEstMB < 0 {
			m.usedEstMB = 0
		}
		m.evictions++
		m.mu.Unlock()

		if lru.handle != nil {
			_ = lru.handle.Close()
		}
		m.publisher.Publish(Event{Name: "evicted", AdapterID: lruID,
			Fields: map[string]any{"est_size_mb": lru.EstSizeMB}})
		// loop to re-check
	}
}
