// Package logging holds the logger shared by the svgcut packages.
// By default nothing is logged; call SetLogger to enable output.
package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so that callers skip formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// NewNopLogger creates a logger that silently discards all output.
func NewNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(NewNopLogger())
}

// SetLogger configures the default logger, used when no logger
// is given explicitly to a conversion. Pass nil to disable logging.
//
// Levels used:
//   - [slog.LevelDebug]: ignored values which are expected in plotting files
//     (plain colors on fill or stroke)
//   - [slog.LevelWarn]: unsupported values or references, skipped elements
//
// SetLogger is safe for concurrent use.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = NewNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current default logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// OrDefault returns l, or the default logger if l is nil.
func OrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Logger()
	}
	return l
}
