package manager

import (
	"os"
	"path/filepath"

	"lorad/pkg/lora"
)

// estimateSizeMB estimates the resident size of an adapter in MB.
// Path route: on-disk size of the file or the directory's immediate files.
// In-memory route: a rough per-tensor floor, since the tensors are opaque.
// Returns a conservative minimum of 1MB so budget checks are never bypassed
// by an unknown size.
func (m *Manager) estimateSizeMB(req *lora.Request) int {
	if req.HasInMemorySource() {
		mb := len(req.SourceTensors())
		if mb <= 0 {
			mb = 1
		}
		return mb
	}
	fi, err := os.Stat(req.SourcePath())
	if err != nil {
		return 1
	}
	size := fi.Size()
	if fi.IsDir() {
		size = 0
		entries, err := os.ReadDir(req.SourcePath())
		if err == nil {
			for _, e := range entries {
				if e.IsDir() {
					continue
				}
				if info, err := os.Stat(filepath.Join(req.SourcePath(), e.Name())); err == nil {
					size += info.Size()
				}
			}
		}
	}
	mb := int(size / (1024 * 1024))
	if mb <= 0 {
		mb = 1
	}
	return mb
}
