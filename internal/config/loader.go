package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the daemon.
// Zero values mean "unspecified" and will be replaced by defaults in main.
type Config struct {
	Addr           string `json:"addr" yaml:"addr" toml:"addr"`
	AdaptersDir    string `json:"adapters_dir" yaml:"adapters_dir" toml:"adapters_dir"`
	BudgetMB       int    `json:"budget_mb" yaml:"budget_mb" toml:"budget_mb"`
	MarginMB       int    `json:"margin_mb" yaml:"margin_mb" toml:"margin_mb"`
	MaxQueuedLoads int    `json:"max_queued_loads" yaml:"max_queued_loads" toml:"max_queued_loads"`
	DrainTimeoutMS int    `json:"drain_timeout_ms" yaml:"drain_timeout_ms" toml:"drain_timeout_ms"`
	// Base model path handed to the llama backend when built with -tags=llama.
	BaseModelPath string `json:"base_model_path" yaml:"base_model_path" toml:"base_model_path"`
	// CORS is opt-in; empty origins leaves CORS disabled.
	CORSOrigins []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
