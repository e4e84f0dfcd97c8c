package hugearray

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newBufferLogger(level slog.Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})), &buf
}

func TestLogger_Fill(t *testing.T) {
	l, buf := newBufferLogger(slog.LevelDebug)
	ctx := context.Background()

	l.LogFill(ctx, 1000, 4, 2, time.Millisecond, nil)
	assert.Contains(t, buf.String(), "page fill completed")
	assert.Contains(t, buf.String(), "workers=2")

	buf.Reset()
	l.LogFill(ctx, 1000, 4, 2, time.Millisecond, context.Canceled)
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "context canceled")
}

func TestLogger_GrowthIsRateLimited(t *testing.T) {
	l, buf := newBufferLogger(slog.LevelDebug)
	l = l.WithGrowthLogRate(1)

	for i := range 100 {
		l.LogGrowth(context.Background(), i, i+1, true)
	}
	assert.Equal(t, 1, strings.Count(buf.String(), "page table grown"))

	off := l.WithGrowthLogRate(0)
	buf.Reset()
	off.LogGrowth(context.Background(), 1, 2, false)
	assert.Empty(t, buf.String())
}

func TestLogger_GrowthBelowLevel(t *testing.T) {
	l, buf := newBufferLogger(slog.LevelInfo)
	l.LogGrowth(context.Background(), 1, 2, true)
	assert.Empty(t, buf.String())
}

func TestLogger_BuildAndAllocation(t *testing.T) {
	l, buf := newBufferLogger(slog.LevelInfo)
	l = l.WithComponent("builder").WithCapacity(64)
	ctx := context.Background()

	l.LogBuild(ctx, 64, 1, nil)
	assert.Contains(t, buf.String(), "build completed")
	assert.Contains(t, buf.String(), "component=builder")
	assert.Contains(t, buf.String(), "capacity=64")

	buf.Reset()
	l.LogAllocation(ctx, "bitset.Growing", 512, nil)
	assert.Empty(t, buf.String())

	l.LogAllocation(ctx, "bitset.Growing", 512, errors.New("boom"))
	assert.Contains(t, buf.String(), "allocation rejected")
	assert.Contains(t, buf.String(), "op=bitset.Growing")
}

func TestNoopLogger(t *testing.T) {
	l := NoopLogger()
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
	l.LogBuild(context.Background(), 1, 1, errors.New("ignored"))
}
