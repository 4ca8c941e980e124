package build

import (
	"sync"
	"time"
)

// Metrics counts generation passes.
type Metrics struct {
	TotalRuns       int64
	Written         int64
	Unchanged       int64
	DryRuns         int64
	FailedRuns      int64
	TotalDuration   time.Duration
	AverageDuration time.Duration
	mutex           sync.RWMutex
}

// NewMetrics creates a new metrics tracker
func NewMetrics() *Metrics {
	return &Metrics{}
}

// Record adds one pass. res is nil when err is set.
func (m *Metrics) Record(res *Result, duration time.Duration, err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.TotalRuns++
	m.TotalDuration += duration
	m.AverageDuration = m.TotalDuration / time.Duration(m.TotalRuns)

	switch {
	case err != nil:
		m.FailedRuns++
	case res != nil && res.DryRun:
		m.DryRuns++
	case res != nil && res.Written:
		m.Written++
	default:
		m.Unchanged++
	}
}

// Snapshot returns a copy of the counters.
func (m *Metrics) Snapshot() Metrics {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return Metrics{
		TotalRuns:       m.TotalRuns,
		Written:         m.Written,
		Unchanged:       m.Unchanged,
		DryRuns:         m.DryRuns,
		FailedRuns:      m.FailedRuns,
		TotalDuration:   m.TotalDuration,
		AverageDuration: m.AverageDuration,
	}
}
