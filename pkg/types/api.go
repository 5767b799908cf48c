package types

// LoadAdapterRequest is the JSON-object payload for POST /adapters. It maps
// 1:1 onto the construction inputs of the adapter request record; validation
// happens when the record is built, not here.
type LoadAdapterRequest struct {
	// Human-friendly adapter name; identity key across engines.
	// example: sql-lora
	Name string `json:"name" example:"sql-lora"`
	// Numeric adapter id, must be >= 1.
	// example: 1
	ID int64 `json:"id" example:"1"`
	// Path to the adapter weights. Omit when supplying source_config+source_tensors.
	// example: /home/user/adapters/sql-lora
	Path string `json:"path,omitempty" example:"/home/user/adapters/sql-lora"`
	// Optional base model label, informational only.
	// example: meta-llama/Llama-2-7b-hf
	BaseModelName string `json:"base_model_name,omitempty" example:"meta-llama/Llama-2-7b-hf"`
	// Opaque passthrough configuration for the loader backend.
	ExternalConfig map[string]any `json:"external_config,omitempty"`
	// If true, replace an already-loaded adapter with the same id.
	// example: false
	ForceReload bool `json:"force_reload,omitempty" example:"false"`
	// In-memory route: adapter configuration. Pair with source_tensors.
	SourceConfig map[string]any `json:"source_config,omitempty"`
	// In-memory route: adapter weight tensors. Pair with source_config.
	SourceTensors map[string]any `json:"source_tensors,omitempty"`
}

// AdaptersResponse wraps the adapter list returned by GET /adapters.
type AdaptersResponse struct {
	// Known adapters (catalog plus anything loaded at runtime).
	Adapters []AdapterStatus `json:"adapters"`
}

// LoadAdapterResponse is returned by POST /adapters on success.
type LoadAdapterResponse struct {
	// Numeric id of the adapter that is now available.
	// example: 1
	ID int64 `json:"id" example:"1"`
	// Adapter name.
	// example: sql-lora
	Name string `json:"name" example:"sql-lora"`
	// Operation id assigned to this load for log correlation.
	// example: 9f4e2c61-0a3b-4c1e-8f5a-2d7b8e9c0a1b
	OpID string `json:"op_id" example:"9f4e2c61-0a3b-4c1e-8f5a-2d7b8e9c0a1b"`
	// Whether an existing entry was replaced (force_reload) or reused.
	// example: loaded
	Outcome string `json:"outcome" example:"loaded"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// AdapterStatus summarizes one adapter entry for /adapters and /status.
type AdapterStatus struct {
	// Numeric adapter id.
	// example: 1
	ID int64 `json:"id" example:"1"`
	// Adapter name.
	// example: sql-lora
	Name string `json:"name" example:"sql-lora"`
	// Weight source kind: "path" or "memory". Empty for catalog-only entries.
	// example: path
	Source string `json:"source,omitempty" example:"path"`
	// Path to the weights when the source is path-based.
	// example: /home/user/adapters/sql-lora
	Path string `json:"path,omitempty" example:"/home/user/adapters/sql-lora"`
	// Lifecycle state (cataloged, loading, ready, draining).
	// example: ready
	State string `json:"state" example:"ready"`
	// Last time this adapter was requested (unix seconds). Zero if never loaded.
	// example: 1700000000
	LastUsed int64 `json:"last_used_unix,omitempty" example:"1700000000"`
	// Estimated resident size in MB.
	// example: 160
	EstSizeMB int `json:"est_size_mb,omitempty" example:"160"`
	// Number of times the adapter was loaded or reloaded.
	// example: 2
	Loads uint64 `json:"loads,omitempty" example:"2"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Loaded adapter entries.
	Adapters []AdapterStatus `json:"adapters"`
	// Memory budget in MB across all loaded adapters (0 = unlimited).
	// example: 8192
	BudgetMB int `json:"budget_mb" example:"8192"`
	// Estimated used memory in MB.
	// example: 2048
	UsedMB int `json:"used_est_mb" example:"2048"`
	// Reserved margin in MB kept free under the budget.
	// example: 512
	MarginMB int `json:"margin_mb" example:"512"`
	// Last error observed by the manager (if any).
	LastError string `json:"last_error,omitempty"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
	// Total number of evictions performed to stay under budget.
	// example: 5
	EvictionsTotal uint64 `json:"evictions_total" example:"5"`
	// Total number of adapter loads (including forced reloads).
	// example: 12
	LoadsTotal uint64 `json:"loads_total" example:"12"`
	// Total number of forced in-place reloads.
	// example: 2
	ReloadsTotal uint64 `json:"reloads_total" example:"2"`
}
