//go:build linux

package performance

import (
	"syscall"
	"time"

	"read-frame/pkg/logging"

	"go.uber.org/zap"
)

// GetSystemMemory retrieves system-wide memory information on Linux
func GetSystemMemory() MemorySnapshot {
	var info syscall.Sysinfo_t
	if err := syscall.Sysinfo(&info); err != nil {
		logging.Logger().Debug("sysinfo failed", zap.Error(err))
		return MemorySnapshot{Timestamp: time.Now()}
	}

	unit := uint64(info.Unit)
	totalMB := (info.Totalram * unit) / (1024 * 1024)
	// Buffers are reclaimable
	availableMB := ((info.Freeram + info.Bufferram) * unit) / (1024 * 1024)

	return MemorySnapshot{
		Timestamp:   time.Now(),
		TotalMB:     totalMB,
		AvailableMB: availableMB,
		UsedMB:      totalMB - availableMB,
	}
}
