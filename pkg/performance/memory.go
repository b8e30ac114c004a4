package performance

import (
	"runtime"
	"time"

	"go.uber.org/zap"
)

// MemorySnapshot represents memory state at a point in time
type MemorySnapshot struct {
	Timestamp   time.Time
	TotalMB     uint64
	AvailableMB uint64
	UsedMB      uint64
}

// GoMemoryStats holds Go runtime memory statistics
type GoMemoryStats struct {
	AllocMB uint64
	SysMB   uint64
	NumGC   uint32
}

// GetGoMemory retrieves Go runtime memory statistics
func GetGoMemory() GoMemoryStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return GoMemoryStats{
		AllocMB: m.Alloc / (1024 * 1024),
		SysMB:   m.Sys / (1024 * 1024),
		NumGC:   m.NumGC,
	}
}

func memoryFields() []zap.Field {
	sys := GetSystemMemory()
	goMem := GetGoMemory()
	return []zap.Field{
		zap.Uint64("sys_avail_mb", sys.AvailableMB),
		zap.Uint64("sys_total_mb", sys.TotalMB),
		zap.Uint64("go_alloc_mb", goMem.AllocMB),
		zap.Uint64("go_sys_mb", goMem.SysMB),
		zap.Uint32("num_gc", goMem.NumGC),
	}
}
