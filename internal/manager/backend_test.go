package manager

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"lorad/pkg/lora"
)

func TestResidentBackend_PathRoute(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "adapter_model.bin")
	if err := os.WriteFile(p, make([]byte, 2048), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	b := newResidentBackend()
	h, err := b.Load(context.Background(), pathRequest(t, "a", 1, p))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := h.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestResidentBackend_MissingPath(t *testing.T) {
	b := newResidentBackend()
	_, err := b.Load(context.Background(), pathRequest(t, "a", 1, filepath.Join(t.TempDir(), "nope")))
	if err == nil {
		t.Fatalf("expected error for missing weights path")
	}
}

func TestResidentBackend_InMemoryNeedsNoFiles(t *testing.T) {
	b := newResidentBackend()
	if _, err := b.Load(context.Background(), memRequest(t, "a", 1, false)); err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func TestLlamaBackendStub_RefusesWithoutTag(t *testing.T) {
	if llamaBuilt {
		t.Skip("built with llama tag")
	}
	b := NewLlamaBackend("/models/base.gguf", 0)
	_, err := b.Load(context.Background(), pathRequest(t, "a", 1, "/adapters/a"))
	if !IsDependencyUnavailable(err) {
		t.Fatalf("expected dependency-unavailable, got %v", err)
	}
}

func TestEstimateSizeMB(t *testing.T) {
	m, _ := newTestManager(t, ManagerConfig{})

	// Unknown path: conservative 1MB floor.
	if got := m.estimateSizeMB(pathRequest(t, "a", 1, "/does/not/exist")); got != 1 {
		t.Fatalf("missing path estimate = %d, want 1", got)
	}

	// Directory: sum of immediate files.
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "adapter_model.bin"), make([]byte, 3*1024*1024), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := m.estimateSizeMB(pathRequest(t, "a", 1, dir)); got != 3 {
		t.Fatalf("dir estimate = %d, want 3", got)
	}

	// In-memory: per-tensor floor.
	req, err := lora.New(lora.Spec{
		Name: "m", ID: 2,
		SourceConfig:  map[string]any{"r": 8},
		SourceTensors: map[string]any{"q_proj": nil, "v_proj": nil},
	})
	if err != nil {
		t.Fatalf("lora.New: %v", err)
	}
	if got := m.estimateSizeMB(req); got != 2 {
		t.Fatalf("tensor estimate = %d, want 2", got)
	}
}
