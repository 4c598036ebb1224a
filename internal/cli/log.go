package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/archscope/archscope/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
// The returned progress should call done when the operation completes.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// The duration is rounded to the nearest millisecond.
// Example output: "Analyzed 42 services (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey is the type for context keys used in this package.
// Using a distinct type prevents collisions with other packages.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
// The logger can be retrieved later with loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
// This ensures commands always have a valid logger even if context setup fails.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks forwards analysis-stage and cache events to the context logger
// at debug level. Registered once per process by the root command.
type logHooks struct{}

var (
	_ observability.AnalysisHooks = logHooks{}
	_ observability.CacheHooks    = logHooks{}
)

func (logHooks) OnAnalyzeStart(ctx context.Context, services, layers int) {
	loggerFromContext(ctx).Debug("analysis started", "services", services, "layers", layers)
}

func (logHooks) OnStageComplete(ctx context.Context, stage string, d time.Duration) {
	loggerFromContext(ctx).Debug("stage complete", "stage", stage, "duration", d.Round(time.Millisecond))
}

func (logHooks) OnAnalyzeComplete(ctx context.Context, nodes, edges int, d time.Duration, err error) {
	l := loggerFromContext(ctx)
	if err != nil {
		l.Error("analysis failed", "err", err)
		return
	}
	l.Debug("analysis complete", "nodes", nodes, "edges", edges, "duration", d.Round(time.Millisecond))
}

func (logHooks) OnCacheHit(ctx context.Context, backend string) {
	loggerFromContext(ctx).Debug("cache hit", "backend", backend)
}

func (logHooks) OnCacheMiss(ctx context.Context, backend string) {
	loggerFromContext(ctx).Debug("cache miss", "backend", backend)
}

func (logHooks) OnCacheSet(ctx context.Context, backend string, size int) {
	loggerFromContext(ctx).Debug("cache set", "backend", backend, "bytes", size)
}
