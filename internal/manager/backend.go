package manager

import (
	"context"
	"fmt"
	"os"

	"lorad/pkg/lora"
)

// WeightBackend materializes adapter weights from a validated request.
// Implementations must branch on the request's source route: path-based
// weights are read from storage, in-memory weights come straight from the
// request's config+tensors pair.
type WeightBackend interface {
	Load(ctx context.Context, req *lora.Request) (Handle, error)
}

// residentBackend is the default no-CGO backend: it verifies the source and
// accounts for the weights without binding them to a model runtime. Useful
// for serving registries and for builds without the llama tag.
type residentBackend struct{}

func newResidentBackend() WeightBackend { return residentBackend{} }

type residentHandle struct{}

func (residentHandle) Close() error { return nil }

func (residentBackend) Load(ctx context.Context, req *lora.Request) (Handle, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	if req.HasInMemorySource() {
		// Config and tensors were validated as a pair at construction;
		// nothing to fetch.
		return residentHandle{}, nil
	}
	// The record never checked the path; the loader does.
	if _, err := os.Stat(req.SourcePath()); err != nil {
		return nil, fmt.Errorf("adapter %q: weights path: %w", req.Name(), err)
	}
	return residentHandle{}, nil
}
