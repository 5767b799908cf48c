package manager

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"lorad/pkg/lora"
)

// fakeBackend counts loads and handle closes, optionally failing or blocking.
type fakeBackend struct {
	loads  atomic.Int64
	closes atomic.Int64
	err    error
	block  chan struct{} // when non-nil, Load waits for it (or ctx)
}

type fakeHandle struct{ b *fakeBackend }

func (h fakeHandle) Close() error {
	h.b.closes.Add(1)
	return nil
}

func (b *fakeBackend) Load(ctx context.Context, req *lora.Request) (Handle, error) {
	if b.block != nil {
		select {
		case <-b.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if b.err != nil {
		return nil, b.err
	}
	b.loads.Add(1)
	return fakeHandle{b: b}, nil
}

func newTestManager(t *testing.T, cfg ManagerConfig) (*Manager, *fakeBackend) {
	t.Helper()
	fb := &fakeBackend{}
	if cfg.Backend == nil {
		cfg.Backend = fb
	}
	if cfg.MaxWait == 0 {
		cfg.MaxWait = 200 * time.Millisecond
	}
	if cfg.DrainTimeout == 0 {
		cfg.DrainTimeout = 100 * time.Millisecond
	}
	m := NewWithConfig(cfg)
	t.Cleanup(func() { _ = m.Close() })
	return m, fb
}

func pathRequest(t *testing.T, name string, id int64, path string) *lora.Request {
	t.Helper()
	r, err := lora.New(lora.Spec{Name: name, ID: id, Path: path})
	if err != nil {
		t.Fatalf("lora.New: %v", err)
	}
	return r
}

func memRequest(t *testing.T, name string, id int64, force bool) *lora.Request {
	t.Helper()
	r, err := lora.New(lora.Spec{
		Name:          name,
		ID:            id,
		ForceReload:   force,
		SourceConfig:  map[string]any{"r": 8},
		SourceTensors: map[string]any{},
	})
	if err != nil {
		t.Fatalf("lora.New: %v", err)
	}
	return r
}
