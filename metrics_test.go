package hugearray

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBasicMetricsCollector(t *testing.T) {
	m := &BasicMetricsCollector{}

	m.RecordFill(4, 10*time.Millisecond, nil)
	m.RecordFill(2, 30*time.Millisecond, errors.New("canceled"))
	m.RecordGrowth(1, 2, true)
	m.RecordGrowth(1, 2, false)
	m.RecordGrowth(2, 3, false)
	m.RecordBuild(100, time.Millisecond)
	m.RecordAllocation(4096, nil)
	m.RecordAllocation(4096, errors.New("limit"))

	stats := m.GetStats()
	assert.Equal(t, int64(2), stats.FillCount)
	assert.Equal(t, int64(1), stats.FillErrors)
	assert.Equal(t, int64(4), stats.FillPages)
	assert.Equal(t, (20 * time.Millisecond).Nanoseconds(), stats.FillAvgNanos)
	assert.Equal(t, int64(1), stats.GrowthWon)
	assert.Equal(t, int64(2), stats.GrowthLost)
	assert.Equal(t, int64(1), stats.BuildCount)
	assert.Equal(t, time.Millisecond.Nanoseconds(), stats.BuildAvgNanos)
	assert.Equal(t, int64(2), stats.AllocationCount)
	assert.Equal(t, int64(1), stats.AllocationErrors)
	assert.Equal(t, int64(4096), stats.AllocatedBytes)
}

func TestBasicMetricsCollector_Empty(t *testing.T) {
	stats := (&BasicMetricsCollector{}).GetStats()
	assert.Zero(t, stats.FillAvgNanos)
	assert.Zero(t, stats.BuildAvgNanos)
}

func TestBasicMetricsCollector_Concurrent(t *testing.T) {
	m := &BasicMetricsCollector{}
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 1000 {
				m.RecordGrowth(0, 1, true)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(8000), m.GetStats().GrowthWon)
}
