// Package manager owns the adapter cache/registry and the loading pipeline.
// It is structured into small files by concern:
//
//   - manager.go: core Manager type, constructor, simple getters.
//   - config.go: ManagerConfig and package defaults; NewWithConfig applies defaults.
//   - types.go: internal state types (State, entry).
//   - errors.go: error types and helpers (IsAdapterNotFound, IsTooBusy, ...).
//   - admission.go: load-slot queueing and backpressure.
//   - load.go: Load entry point; source-route branching and reuse/replace policy.
//   - evict.go: LRU eviction to fit within the memory budget.
//   - unload.go: graceful unload and removal.
//   - resolve.go: id lookup and name-based identity reconciliation.
//   - status_report.go: Status/ListAdapters reporting.
//   - lru_persist.go: last-used metadata persistence across restarts.
//   - backend.go: WeightBackend interface and the default in-process backend.
//
// Entries are keyed by the numeric adapter id; that is the cache key used for
// lookup and replacement. Name-based identity (the request's Equal/Hash) is a
// separate index used only to reconcile "the same adapter" across engines.
// The two keying schemes are deliberately different and must not be conflated.
//
// Build tags and backends:
//
//   - The default backend is a pure in-process materializer with no CGO.
//   - With `-tags=llama`, NewLlamaBackend attaches path-based adapters to a
//     base model via go-llama.cpp (backend_llama.go, llama_cgo.go). Without
//     the tag a stub refuses with a dependency-unavailable error
//     (backend_llama_stub.go).
//
// External packages should treat this package as the orchestration layer and
// use public methods only (New/NewWithConfig, Load, Unload, Lookup,
// ResolveByName, ListAdapters, Status, Ready, Close). Internal types are
// subject to change.
package manager
