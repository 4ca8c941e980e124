package build

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsRecord(t *testing.T) {
	m := NewMetrics()

	m.Record(&Result{Written: true}, 30*time.Millisecond, nil)
	m.Record(&Result{}, 10*time.Millisecond, nil)
	m.Record(nil, 20*time.Millisecond, errors.New("boom"))
	m.Record(&Result{DryRun: true}, 20*time.Millisecond, nil)

	snap := m.Snapshot()
	assert.Equal(t, int64(4), snap.TotalRuns)
	assert.Equal(t, int64(1), snap.Written)
	assert.Equal(t, int64(1), snap.Unchanged)
	assert.Equal(t, int64(1), snap.DryRuns)
	assert.Equal(t, int64(1), snap.FailedRuns)
	assert.Equal(t, 80*time.Millisecond, snap.TotalDuration)
	assert.Equal(t, 20*time.Millisecond, snap.AverageDuration)
}

func TestMetricsConcurrentRecord(t *testing.T) {
	m := NewMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Record(&Result{Written: true}, time.Millisecond, nil)
			_ = m.Snapshot()
		}()
	}
	wg.Wait()

	snap := m.Snapshot()
	assert.Equal(t, int64(50), snap.TotalRuns)
	assert.Equal(t, int64(50), snap.Written)
}
