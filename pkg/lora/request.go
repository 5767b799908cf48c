// Package lora defines the validated request record used to ask the daemon to
// make a LoRA adapter available. The record is immutable after construction:
// every instance is produced by New (or the wire decoder, which funnels into
// New), so a Request in hand is always a coherent description of exactly one
// weight source.
package lora

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Spec carries the raw construction inputs for a Request.
// Zero values mean "unset": empty Path, nil maps, empty BaseModelName.
// A non-nil empty map counts as present; presence of SourceConfig and
// SourceTensors is what the validation keys on, not their contents.
type Spec struct {
	// Human-readable adapter label. Identity key: two requests with the same
	// Name denote the same adapter across engines regardless of other fields.
	Name string
	// Numeric adapter id, >= 1. Intended to be globally unique per adapter;
	// uniqueness is the registry's job, not enforced here.
	ID int64
	// Filesystem/storage location of the adapter weights. Empty or
	// whitespace-only means the path route is not used.
	Path string
	// Optional base model this adapter was trained against. Informational.
	BaseModelName string
	// Opaque passthrough configuration (e.g., tensorizer settings). Not
	// validated here.
	ExternalConfig map[string]any
	// If true, a cached entry with the same ID is replaced rather than reused.
	ForceReload bool
	// In-memory route: adapter configuration. Must be paired with
	// SourceTensors.
	SourceConfig map[string]any
	// In-memory route: adapter weight tensors. Must be paired with
	// SourceConfig.
	SourceTensors map[string]any
}

// Request is a request for a LoRA adapter. Construct with New; the zero value
// is not valid and fields are not settable from outside the package.
//
// The record is a plain immutable value: safe to share across goroutines
// without synchronization. Map fields are carried by reference and must not
// be mutated by callers after construction.
type Request struct {
	name           string
	id             int64
	path           string
	baseModelName  string
	externalConfig map[string]any
	forceReload    bool
	sourceConfig   map[string]any
	sourceTensors  map[string]any
}

// New validates spec and returns the immutable Request. Validation is pure:
// it reads only the supplied fields, never the filesystem — whether Path
// points at a real adapter is the loader's problem, later.
//
// Checks run in a fixed order, so when several inputs are bad the first
// violated rule decides the error: identifier, then pairing of the in-memory
// fields, then route ambiguity, then route absence.
func New(spec Spec) (*Request, error) {
	if spec.ID < 1 {
		return nil, invalidIdentifierError{id: spec.ID}
	}

	hasPath := strings.TrimSpace(spec.Path) != ""
	hasConfig := spec.SourceConfig != nil
	hasTensors := spec.SourceTensors != nil

	if hasConfig != hasTensors {
		return nil, incompleteInMemorySourceError{hasConfig: hasConfig}
	}
	hasInMemory := hasConfig && hasTensors

	if hasPath && hasInMemory {
		return nil, ambiguousSourceError{}
	}
	if !hasPath && !hasInMemory {
		return nil, missingSourceError{}
	}

	return &Request{
		name:           spec.Name,
		id:             spec.ID,
		path:           spec.Path,
		baseModelName:  spec.BaseModelName,
		externalConfig: spec.ExternalConfig,
		forceReload:    spec.ForceReload,
		sourceConfig:   spec.SourceConfig,
		sourceTensors:  spec.SourceTensors,
	}, nil
}

// Name returns the human-readable adapter label.
func (r *Request) Name() string { return r.name }

// ID returns the numeric adapter identifier.
func (r *Request) ID() int64 { return r.id }

// Path returns the weight location, or "" when the in-memory route is used.
func (r *Request) Path() string { return r.path }

// BaseModelName returns the optional base model label ("" when unset).
func (r *Request) BaseModelName() string { return r.baseModelName }

// ExternalConfig returns the opaque passthrough config (nil when unset).
func (r *Request) ExternalConfig() map[string]any { return r.externalConfig }

// ForceReload reports whether an existing cached entry with the same ID must
// be replaced rather than reused.
func (r *Request) ForceReload() bool { return r.forceReload }

// SourceConfig returns the in-memory adapter config (nil when the path route
// is used).
func (r *Request) SourceConfig() map[string]any { return r.sourceConfig }

// SourceTensors returns the in-memory weight tensors (nil when the path route
// is used).
func (r *Request) SourceTensors() map[string]any { return r.sourceTensors }

// AdapterID is the cache/registry index key. Deliberately distinct from the
// identity key (Name): registries key entries by AdapterID for lookup and
// replacement, while Equal/Hash reconcile "the same adapter" by Name. Callers
// must not conflate the two.
func (r *Request) AdapterID() int64 { return r.id }

// DisplayName returns the adapter label, alias of Name.
func (r *Request) DisplayName() string { return r.name }

// SourcePath returns the weight location, alias of Path.
func (r *Request) SourcePath() string { return r.path }

// HasPathSource reports whether the weights come from a path.
// Exactly one of HasPathSource and HasInMemorySource holds for every Request.
func (r *Request) HasPathSource() bool { return strings.TrimSpace(r.path) != "" }

// HasInMemorySource reports whether the weights come from in-memory
// config+tensors.
func (r *Request) HasInMemorySource() bool {
	return r.sourceConfig != nil && r.sourceTensors != nil
}

// Key returns the identity key used for name-based deduplication.
func (r *Request) Key() string { return r.name }

// Equal reports whether other denotes the same adapter. Identity is the Name
// field only: two requests built independently with different ids, paths, or
// configs still compare equal when their names match, which lets separate
// engines recognize the same adapter.
func (r *Request) Equal(other *Request) bool {
	if other == nil {
		return false
	}
	return r.name == other.name
}

// Hash returns a stable hash of the identity key, consistent with Equal:
// Equal requests always hash the same.
func (r *Request) Hash() uint64 { return IdentityHash(r.name) }

// IdentityHash hashes an identity key (an adapter name) without building a
// Request. IdentityHash(r.Name()) == r.Hash() for every request r, so
// registries can probe name indexes with a bare string.
func IdentityHash(name string) uint64 { return xxhash.Sum64String(name) }

func (r *Request) String() string {
	return "lora.Request(name=" + r.name + ")"
}
