package glpoint

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip building attributes entirely,
// which keeps logging out of the per-frame cost when it is off.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the package logger. Hosts may swap it from any goroutine
// while the rendering thread logs.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger used by glpoint and its drivers.
// By default nothing is logged. Pass nil to restore the silent default.
//
// Log levels used by glpoint:
//   - [slog.LevelDebug]: shader compile and link steps, frame ticks
//   - [slog.LevelInfo]: surface lifecycle (created, resized, lost)
//   - [slog.LevelWarn]: callbacks ignored because of bad input or state
//
// Example:
//
//	glpoint.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current package logger. Driver packages call it so
// they share the configuration without an extra option.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
