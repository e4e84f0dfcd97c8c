package hugearray

import (
	"context"
	"log/slog"
	"os"
	"time"

	"golang.org/x/time/rate"
)

// DefaultGrowthLogRate bounds how many growth events per second reach the log.
const DefaultGrowthLogRate = 10

// Logger wraps slog.Logger with hugearray-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger

	// growth events may fire from every writer at once during a resize storm
	growth *rate.Limiter
}

func newLogger(l *slog.Logger) *Logger {
	return &Logger{
		Logger: l,
		growth: rate.NewLimiter(rate.Limit(DefaultGrowthLogRate), DefaultGrowthLogRate),
	}
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return newLogger(slog.New(handler))
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return newLogger(slog.New(handler))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return newLogger(slog.New(handler))
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return newLogger(slog.New(slog.DiscardHandler))
}

// WithGrowthLogRate returns a copy of the logger that emits at most perSecond
// growth events per second. A non-positive rate disables growth logging.
func (l *Logger) WithGrowthLogRate(perSecond float64) *Logger {
	burst := max(int(perSecond), 1)
	lim := rate.NewLimiter(rate.Limit(perSecond), burst)
	if perSecond <= 0 {
		lim = rate.NewLimiter(0, 0)
	}
	return &Logger{Logger: l.Logger, growth: lim}
}

// WithComponent adds a component field to the logger.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("component", name),
		growth: l.growth,
	}
}

// WithCapacity adds a capacity field to the logger.
func (l *Logger) WithCapacity(capacity uint64) *Logger {
	return &Logger{
		Logger: l.Logger.With("capacity", capacity),
		growth: l.growth,
	}
}

// LogFill logs a parallel page fill.
func (l *Logger) LogFill(ctx context.Context, size uint64, pages, workers int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "page fill failed",
			"size", size,
			"pages", pages,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "page fill completed",
		"size", size,
		"pages", pages,
		"workers", workers,
		"elapsed", elapsed,
	)
}

// LogGrowth logs a page table growth attempt. Calls beyond the configured
// rate are dropped.
func (l *Logger) LogGrowth(ctx context.Context, fromPages, toPages int, won bool) {
	if !l.Enabled(ctx, slog.LevelDebug) || (l.growth != nil && !l.growth.Allow()) {
		return
	}
	l.DebugContext(ctx, "page table grown",
		"from_pages", fromPages,
		"to_pages", toPages,
		"won", won,
	)
}

// LogBuild logs the finalization of a concurrent builder.
func (l *Logger) LogBuild(ctx context.Context, size uint64, pages int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "build failed",
			"size", size,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "build completed",
		"size", size,
		"pages", pages,
	)
}

// LogAllocation logs a failed page allocation. Successful allocations are
// not logged; they are counted by the MetricsCollector.
func (l *Logger) LogAllocation(ctx context.Context, op string, bytes int64, err error) {
	if err == nil {
		return
	}
	l.WarnContext(ctx, "allocation rejected",
		"op", op,
		"bytes", bytes,
		"error", err,
	)
}
