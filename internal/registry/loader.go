package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"lorad/pkg/types"
)

// adapterConfigFile marks a directory as a LoRA adapter (PEFT layout).
const adapterConfigFile = "adapter_config.json"

// adapterConfig is the subset of adapter_config.json we read for catalog
// metadata. Everything else is the loader's business.
type adapterConfig struct {
	BaseModelNameOrPath string `json:"base_model_name_or_path"`
}

// LoadDir scans a directory for adapter subdirectories (those containing
// adapter_config.json) and builds a catalog from directory names. IDs are
// assigned sequentially from 1 in name order so a rescan of an unchanged
// directory yields the same ids.
func LoadDir(dir string) ([]types.Adapter, error) {
	base, err := expandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		cfgPath := filepath.Join(abs, e.Name(), adapterConfigFile)
		if fi, err := os.Stat(cfgPath); err != nil || fi.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	adapters := make([]types.Adapter, 0, len(names))
	for i, name := range names {
		p := filepath.Join(abs, name)
		adapters = append(adapters, types.Adapter{
			ID:        int64(i + 1),
			Name:      name,
			Path:      p,
			BaseModel: readBaseModel(filepath.Join(p, adapterConfigFile)),
		})
	}
	return adapters, nil
}

// readBaseModel pulls the base model label out of adapter_config.json.
// Best-effort: a malformed config just yields an empty label.
func readBaseModel(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var cfg adapterConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return ""
	}
	return cfg.BaseModelNameOrPath
}

// expandHome expands a leading '~' to the user's home directory.
func expandHome(path string) (string, error) {
	if path == "" {
		return path, nil
	}
	if path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	// handle cases like ~/adapters/lora
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}
