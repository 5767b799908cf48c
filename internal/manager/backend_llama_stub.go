//go:build !llama

package manager

// This file provides a no-CGO stub for the llama backend. It is compiled when
// the 'llama' build tag is NOT set, keeping default builds and CI CGO-free.
// The real backend lives in backend_llama.go (tagged 'llama').

import (
	"context"

	"lorad/pkg/lora"
)

// llamaBuilt indicates this binary was compiled without real llama support.
var llamaBuilt = false

// llamaBackend is a stub that satisfies WeightBackend but refuses to attach
// adapters without the 'llama' build tag. This avoids any mocked behavior in
// binaries built without CGO support.
type llamaBackend struct {
	basePath string
	ctxSize  int
}

func NewLlamaBackend(basePath string, ctxSize int) WeightBackend {
	return &llamaBackend{basePath: basePath, ctxSize: ctxSize}
}

func (b *llamaBackend) Load(ctx context.Context, req *lora.Request) (Handle, error) {
	// Fail fast: llama runtime not available in this build.
	return nil, ErrDependencyUnavailable("llama support not built (missing 'llama' build tag)")
}
