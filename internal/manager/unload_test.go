package manager

import (
	"context"
	"testing"
)

func TestUnload_RemovesEntryAndUpdatesAccounting(t *testing.T) {
	m, fb := newTestManager(t, ManagerConfig{})
	ctx := context.Background()
	if _, err := m.Load(ctx, memRequest(t, "a", 1, false)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := m.Unload(1); err != nil {
		t.Fatalf("Unload: %v", err)
	}
	if _, ok := m.Lookup(1); ok {
		t.Fatalf("entry still present after unload")
	}
	if fb.closes.Load() != 1 {
		t.Fatalf("handle not closed on unload")
	}
	m.mu.RLock()
	used := m.usedEstMB
	m.mu.RUnlock()
	if used != 0 {
		t.Fatalf("usedEstMB = %d after unloading everything", used)
	}
	// Name index cleaned up too.
	if _, ok := m.ResolveByName("a"); ok {
		t.Fatalf("name index still resolves after unload")
	}
}

func TestUnload_UnknownID(t *testing.T) {
	m, _ := newTestManager(t, ManagerConfig{})
	err := m.Unload(42)
	if !IsAdapterNotFound(err) {
		t.Fatalf("expected adapter-not-found, got %v", err)
	}
}

func TestUnload_Events(t *testing.T) {
	pub := NewMemoryPublisher()
	m, _ := newTestManager(t, ManagerConfig{Publisher: pub})
	if _, err := m.Load(context.Background(), memRequest(t, "a", 1, false)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := m.Unload(1); err != nil {
		t.Fatalf("Unload: %v", err)
	}
	events := pub.Events()
	last := events[len(events)-1]
	if last.Name != "unload_done" || last.AdapterID != 1 {
		t.Fatalf("unexpected final event: %+v", last)
	}
}
