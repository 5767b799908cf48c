package manager

import (
	"sort"
	"time"

	"lorad/pkg/types"
)

// Status builds a detailed status response for /status.
func (m *Manager) Status() types.StatusResponse {
	m.mu.RLock()
	defer m.mu.RUnlock()
	resp := types.StatusResponse{
		BudgetMB:       m.budgetMB,
		UsedMB:         m.usedEstMB,
		MarginMB:       m.marginMB,
		LastError:      m.lastErr,
		UptimeSeconds:  int64(time.Since(m.startTime).Seconds()),
		ServerTimeUnix: time.Now().Unix(),
		EvictionsTotal: m.evictions,
		LoadsTotal:     m.loads,
		ReloadsTotal:   m.reloads,
	}
	resp.Adapters = make([]types.AdapterStatus, 0, len(m.entries))
	for id, e := range m.entries {
		resp.Adapters = append(resp.Adapters, types.AdapterStatus{
			ID:        id,
			Name:      e.Request.DisplayName(),
			Source:    e.source(),
			Path:      e.Request.SourcePath(),
			State:     string(e.State),
			LastUsed:  e.LastUsed.Unix(),
			EstSizeMB: e.EstSizeMB,
			Loads:     e.Loads,
		})
	}
	sort.Slice(resp.Adapters, func(i, j int) bool { return resp.Adapters[i].ID < resp.Adapters[j].ID })
	return resp
}

// ListAdapters merges the scanned catalog with runtime state for GET /adapters.
// Catalog entries that were never loaded show as "cataloged".
func (m *Manager) ListAdapters() []types.AdapterStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]types.AdapterStatus, 0, len(m.catalog)+len(m.entries))
	seen := make(map[int64]bool, len(m.entries))
	for id, e := range m.entries {
		seen[id] = true
		out = append(out, types.AdapterStatus{
			ID:        id,
			Name:      e.Request.DisplayName(),
			Source:    e.source(),
			Path:      e.Request.SourcePath(),
			State:     string(e.State),
			LastUsed:  e.LastUsed.Unix(),
			EstSizeMB: e.EstSizeMB,
			Loads:     e.Loads,
		})
	}
	for _, a := range m.catalog {
		if seen[a.ID] {
			continue
		}
		out = append(out, types.AdapterStatus{
			ID:    a.ID,
			Name:  a.Name,
			Path:  a.Path,
			State: "cataloged",
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
