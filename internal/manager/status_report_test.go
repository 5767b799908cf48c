package manager

import (
	"context"
	"testing"

	"lorad/pkg/types"
)

func TestStatus_Fields(t *testing.T) {
	m, _ := newTestManager(t, ManagerConfig{BudgetMB: 100, MarginMB: 10})
	ctx := context.Background()
	if _, err := m.Load(ctx, memRequest(t, "a", 1, false)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := m.Load(ctx, pathRequest(t, "b", 2, "/adapters/b")); err != nil {
		t.Fatalf("Load: %v", err)
	}
	st := m.Status()
	if st.BudgetMB != 100 || st.MarginMB != 10 {
		t.Fatalf("budget fields: %+v", st)
	}
	if st.LoadsTotal != 2 || st.UsedMB <= 0 {
		t.Fatalf("counters: %+v", st)
	}
	if len(st.Adapters) != 2 {
		t.Fatalf("adapters: %+v", st.Adapters)
	}
	// Sorted by id; source kinds reported.
	if st.Adapters[0].ID != 1 || st.Adapters[0].Source != SourceMemory {
		t.Fatalf("adapter 1: %+v", st.Adapters[0])
	}
	if st.Adapters[1].ID != 2 || st.Adapters[1].Source != SourcePath || st.Adapters[1].Path != "/adapters/b" {
		t.Fatalf("adapter 2: %+v", st.Adapters[1])
	}
	if st.ServerTimeUnix == 0 {
		t.Fatalf("server time missing")
	}
}

func TestListAdapters_MergesCatalog(t *testing.T) {
	catalog := []types.Adapter{
		{ID: 1, Name: "sql-lora", Path: "/adapters/sql-lora"},
		{ID: 2, Name: "chat-lora", Path: "/adapters/chat-lora"},
	}
	m, _ := newTestManager(t, ManagerConfig{Catalog: catalog})
	if _, err := m.Load(context.Background(), pathRequest(t, "sql-lora", 1, "/adapters/sql-lora")); err != nil {
		t.Fatalf("Load: %v", err)
	}
	list := m.ListAdapters()
	if len(list) != 2 {
		t.Fatalf("list: %+v", list)
	}
	if list[0].ID != 1 || list[0].State != string(StateReady) {
		t.Fatalf("loaded entry: %+v", list[0])
	}
	if list[1].ID != 2 || list[1].State != "cataloged" {
		t.Fatalf("catalog entry: %+v", list[1])
	}
}

func TestCatalog_ReturnsCopy(t *testing.T) {
	catalog := []types.Adapter{{ID: 1, Name: "a"}}
	m, _ := newTestManager(t, ManagerConfig{Catalog: catalog})
	got := m.Catalog()
	got[0].Name = "mutated"
	if m.Catalog()[0].Name != "a" {
		t.Fatalf("Catalog leaked internal slice")
	}
}
