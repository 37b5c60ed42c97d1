// Package logger holds the *slog.Logger shared by every subhit package.
// Nothing is logged until Set is called.
package logger

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler drops every record; Enabled reports false so callers skip
// formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(slog.New(nopHandler{}))
}

// Set replaces the shared logger. A nil logger restores the silent default.
//
// Levels in use:
//   - debug: per render pass details (time, active events, record count)
//   - warn: skipped inputs (unreadable archive members, unknown formats)
func Set(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	current.Store(l)
}

// L returns the shared logger.
func L() *slog.Logger {
	return current.Load()
}
