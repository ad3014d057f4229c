package sdfbake

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record. Enabled reports false so disabled calls
// cost no attribute building.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var (
	silent = slog.New(nopHandler{})
	logger atomic.Pointer[slog.Logger]
)

// SetLogger sets the logger Bake reports progress to: the worker count and
// field size at Info, the kernel at Debug and a thread detection fallback at
// Warn. Nil restores the default, which logs nothing.
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}

// Logger returns the logger set by SetLogger.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return silent
}
