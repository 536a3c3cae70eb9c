package renskin

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for renskin and its service packages.
// By default, renskin produces no log output.
//
// Pass nil to restore the default silent behavior.
//
// Log levels used by renskin:
//   - [slog.LevelDebug]: per-request cache decisions
//   - [slog.LevelInfo]: lifecycle events, default-texture fallbacks
//   - [slog.LevelWarn]: failed cache writes, upstream failures
//   - [slog.LevelError]: failures returned to the client as 500
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by renskin.
// Sub-packages (pipeline, server) call this so they share one configuration
// without import cycles.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
