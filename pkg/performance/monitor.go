package performance

import (
	"sync"
	"time"

	"read-frame/pkg/logging"

	"go.uber.org/zap"
)

// RollingAverage maintains a rolling average of durations over a fixed window
type RollingAverage struct {
	samples []time.Duration
	sum     time.Duration
	index   int
	filled  bool
}

// NewRollingAverage creates a rolling average tracker with specified window size
func NewRollingAverage(windowSize int) *RollingAverage {
	return &RollingAverage{samples: make([]time.Duration, max(windowSize, 1))}
}

// Add records a new sample
func (r *RollingAverage) Add(d time.Duration) {
	if r.filled {
		r.sum -= r.samples[r.index]
	}
	r.samples[r.index] = d
	r.sum += d

	r.index++
	if r.index == len(r.samples) {
		r.index = 0
		r.filled = true
	}
}

// Count returns the number of samples currently tracked
func (r *RollingAverage) Count() int {
	if r.filled {
		return len(r.samples)
	}
	return r.index
}

// Average returns the current rolling average, or zero without samples
func (r *RollingAverage) Average() time.Duration {
	n := r.Count()
	if n == 0 {
		return 0
	}
	return r.sum / time.Duration(n)
}

// FrameMonitor tracks UI loop timings against the frame budget
type FrameMonitor struct {
	mu         sync.Mutex
	budget     time.Duration
	update     *RollingAverage
	draw       *RollingAverage
	frames     int
	overBudget int
	startTime  time.Time
}

// FrameReport contains aggregated loop metrics
type FrameReport struct {
	AvgUpdateMs   float64
	AvgDrawMs     float64
	Frames        int
	OverBudget    int
	IsHealthy     bool
	UptimeSeconds int64
}

// NewFrameMonitor creates a monitor averaging over windowSize frames.
// budget is the time available per frame (1s/60 at 60fps).
func NewFrameMonitor(windowSize int, budget time.Duration) *FrameMonitor {
	return &FrameMonitor{
		budget:    budget,
		update:    NewRollingAverage(windowSize),
		draw:      NewRollingAverage(windowSize),
		startTime: time.Now(),
	}
}

// RecordFrame records the update and draw time of one frame
func (m *FrameMonitor) RecordFrame(update, draw time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.update.Add(update)
	m.draw.Add(draw)
	m.frames++
	if update+draw > m.budget {
		m.overBudget++
	}
}

// Report returns the current metrics. The loop is healthy while fewer than
// 5% of frames overran and the average frame fits the budget.
func (m *FrameMonitor) Report() FrameReport {
	m.mu.Lock()
	defer m.mu.Unlock()

	avgUpdate, avgDraw := m.update.Average(), m.draw.Average()
	overRate := 0.0
	if m.frames > 0 {
		overRate = float64(m.overBudget) / float64(m.frames)
	}

	return FrameReport{
		AvgUpdateMs:   float64(avgUpdate.Microseconds()) / 1000.0,
		AvgDrawMs:     float64(avgDraw.Microseconds()) / 1000.0,
		Frames:        m.frames,
		OverBudget:    m.overBudget,
		IsHealthy:     overRate < 0.05 && avgUpdate+avgDraw <= m.budget,
		UptimeSeconds: int64(time.Since(m.startTime).Seconds()),
	}
}

// Log writes the current report and a memory snapshot
func (m *FrameMonitor) Log() {
	r := m.Report()
	fields := append([]zap.Field{
		zap.Float64("avg_update_ms", r.AvgUpdateMs),
		zap.Float64("avg_draw_ms", r.AvgDrawMs),
		zap.Int("frames", r.Frames),
		zap.Int("over_budget", r.OverBudget),
		zap.Int64("uptime_s", r.UptimeSeconds),
	}, memoryFields()...)

	if r.IsHealthy {
		logging.Logger().Debug("frame timing", fields...)
	} else {
		logging.Logger().Warn("frame timing degraded", fields...)
	}
}
