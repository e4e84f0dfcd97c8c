package paged

import (
	"sync/atomic"
	"testing"

	"github.com/hupe1980/hugearray"
	"github.com/hupe1980/hugearray/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfig(t *testing.T, opts ...hugearray.Option) hugearray.Config {
	t.Helper()
	cfg, err := hugearray.NewConfig(opts...)
	require.NoError(t, err)
	return cfg
}

func TestAllocator_Pages(t *testing.T) {
	a, err := NewAllocator[int64]("test", newConfig(t, hugearray.WithPageSize(1024)))
	require.NoError(t, err)

	t.Run("zero size", func(t *testing.T) {
		pages, err := a.Pages(0)
		require.NoError(t, err)
		assert.Empty(t, pages)
	})

	t.Run("undersized page", func(t *testing.T) {
		pages, err := a.Pages(10)
		require.NoError(t, err)
		require.Len(t, pages, 1)
		assert.Len(t, pages[0], 10)
	})

	t.Run("partial last page", func(t *testing.T) {
		pages, err := a.Pages(2500)
		require.NoError(t, err)
		require.Len(t, pages, 3)
		assert.Len(t, pages[0], 1024)
		assert.Len(t, pages[1], 1024)
		assert.Len(t, pages[2], 452)
	})

	t.Run("exact pages", func(t *testing.T) {
		pages, err := a.Pages(2048)
		require.NoError(t, err)
		require.Len(t, pages, 2)
		assert.Len(t, pages[1], 1024)
	})

	t.Run("too large", func(t *testing.T) {
		_, err := a.Pages(hugearray.MaxCapacity + 1)
		assert.ErrorIs(t, err, hugearray.ErrInvalidCapacity)
	})
}

func TestAllocator_InvalidPageSize(t *testing.T) {
	_, err := NewAllocator[int32]("test", newConfig(t, hugearray.WithPageSize(1000)))
	assert.ErrorIs(t, err, hugearray.ErrInvalidPageSize)

	_, err = NewAllocatorOf[atomic.Uint64]("test", newConfig(t, hugearray.WithPageSize(-1)))
	assert.ErrorIs(t, err, hugearray.ErrInvalidPageSize)
}

func TestAllocator_DefaultPageSize(t *testing.T) {
	a, err := NewAllocator[byte]("test", newConfig(t))
	require.NoError(t, err)
	assert.Equal(t, DefaultPageSize(1), a.Layout().PageSize())

	w, err := NewAllocatorOf[atomic.Uint64]("test", newConfig(t))
	require.NoError(t, err)
	assert.Equal(t, 4096, w.Layout().PageSize())
}

func TestAllocator_ResourceAccounting(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 3 * 1024 * 8})
	metrics := &hugearray.BasicMetricsCollector{}
	a, err := NewAllocator[float64]("test", newConfig(t,
		hugearray.WithPageSize(1024),
		hugearray.WithResourceController(rc),
		hugearray.WithMetricsCollector(metrics),
	))
	require.NoError(t, err)

	p1, err := a.Page()
	require.NoError(t, err)
	assert.Len(t, p1, 1024)

	pages, err := a.Pages(2048)
	require.NoError(t, err)
	assert.Equal(t, int64(3*1024*8), rc.MemoryUsage())
	assert.Equal(t, rc.MemoryUsage(), a.Reserved())

	// Budget exhausted: fatal resource error, nothing reserved.
	_, err = a.Page()
	require.ErrorIs(t, err, hugearray.ErrMemoryLimitExceeded)
	var re *hugearray.ResourceError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "test", re.Op)
	assert.Equal(t, int64(3*1024*8), rc.MemoryUsage())

	a.Discard(p1)
	assert.Equal(t, int64(2*1024*8), rc.MemoryUsage())

	a.DiscardPages(pages)
	assert.Equal(t, int64(0), rc.MemoryUsage())
	assert.Equal(t, int64(0), a.Reserved())

	_, err = a.Page()
	require.NoError(t, err)

	a.Release()
	assert.Equal(t, int64(0), rc.MemoryUsage())
	assert.Equal(t, int64(0), a.Reserved())

	stats := metrics.GetStats()
	assert.Equal(t, int64(4), stats.AllocationCount)
	assert.Equal(t, int64(1), stats.AllocationErrors)
}

type handle struct{ name string }

func TestAllocatorOf_Objects(t *testing.T) {
	a, err := NewAllocatorOf[*handle]("test", newConfig(t, hugearray.WithPageSize(4)))
	require.NoError(t, err)

	pages, err := a.Pages(6)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Len(t, pages[1], 2)
	assert.Nil(t, pages[0][0])
}
