package manager

import (
	"encoding/json"
	"os"
	"strconv"
)

type lruRecord struct {
	LastUsedUnix int64 `json:"last_used_unix"`
	EstSizeMB    int   `json:"est_size_mb"`
}

func (m *Manager) loadLRUMetadata() {
	if m.lruPath == "" {
		return
	}
	f, err := os.Open(m.lruPath)
	if err != nil {
		return
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	var data map[string]lruRecord
	if err := dec.Decode(&data); err != nil {
		return
	}
	m.lruMeta = make(map[int64]lruRecord, len(data))
	for k, v := range data {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			continue
		}
		m.lruMeta[id] = v
	}
}

func (m *Manager) saveLRUMetadata() {
	if m.lruPath == "" {
		return
	}
	// Snapshot under lock
	m.mu.RLock()
	snap := make(map[string]lruRecord, len(m.entries))
	for id, e := range m.entries {
		snap[strconv.FormatInt(id, 10)] = lruRecord{LastUsedUnix: e.LastUsed.Unix(), EstSizeMB: e.EstSizeMB}
	}
	m.mu.RUnlock()
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(m.lruPath, b, 0o644)
}
