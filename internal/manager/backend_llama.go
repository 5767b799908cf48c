//go:build llama

package manager

import (
	"context"
	"errors"
	"strings"

	llama "github.com/go-skynet/go-llama.cpp"

	"lorad/pkg/lora"
)

// llamaBuilt indicates this binary was compiled with real llama support.
var llamaBuilt = true

// llamaBackend attaches path-based adapters to a base model in-process via
// go-llama.cpp. In-memory adapters are refused: the binding only takes a
// filesystem path.
type llamaBackend struct {
	basePath string
	ctxSize  int
}

func NewLlamaBackend(basePath string, ctxSize int) WeightBackend {
	return &llamaBackend{basePath: basePath, ctxSize: ctxSize}
}

// llamaHandle owns the model instance carrying the attached adapter.
type llamaHandle struct {
	model *llama.LLama
}

func (h *llamaHandle) Close() error {
	if h.model != nil {
		h.model.Free()
		h.model = nil
	}
	return nil
}

func (b *llamaBackend) Load(ctx context.Context, req *lora.Request) (Handle, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	if strings.TrimSpace(b.basePath) == "" {
		return nil, errors.New("base model path is empty")
	}
	if req.HasInMemorySource() {
		return nil, ErrDependencyUnavailable("in-memory adapters are not supported by the llama backend; supply a path")
	}
	mo := []llama.ModelOption{
		llama.SetContext(b.ctxSize),
		llama.SetLoraBase(b.basePath),
		llama.SetLoraAdapter(req.SourcePath()),
	}
	m, err := llama.New(b.basePath, mo...)
	if err != nil {
		return nil, err
	}
	return &llamaHandle{model: m}, nil
}
