//go:build darwin

package performance

import (
	"runtime"
	"time"
)

// GetSystemMemory approximates memory on macOS from Go runtime stats; only
// process memory is known.
func GetSystemMemory() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	sysMB := m.Sys / (1024 * 1024)
	return MemorySnapshot{
		Timestamp: time.Now(),
		UsedMB:    sysMB,
	}
}
