package types

// Adapter represents a discoverable or loadable LoRA adapter.
type Adapter struct {
	// Numeric adapter id used for registry lookup and replacement.
	// example: 1
	ID int64 `json:"id" example:"1"`
	// Human-friendly adapter name; identity key across engines.
	// example: sql-lora
	Name string `json:"name" example:"sql-lora"`
	// Absolute path to the adapter directory on disk. Empty for in-memory adapters.
	// example: /home/user/adapters/sql-lora
	Path string `json:"path,omitempty" example:"/home/user/adapters/sql-lora"`
	// Optional base model the adapter was trained against.
	// example: meta-llama/Llama-2-7b-hf
	BaseModel string `json:"base_model,omitempty" example:"meta-llama/Llama-2-7b-hf"`
}
