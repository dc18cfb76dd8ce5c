// SPDX-License-Identifier: MIT

package lvcone

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record. Enabled returns false so callers skip
// attribute formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger shared by all lvcone packages. By default
// nothing is logged; pass nil to restore that.
//
// Levels:
//   - [slog.LevelDebug]: per-hyperplane progress, refinement rounds, list sizes
//   - [slog.LevelInfo]: algorithm selection and integer escalation
//   - [slog.LevelWarn]: fallbacks (e.g. no implicit grading found)
//
// SetLogger is safe for concurrent use.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current shared logger. Engines call it when no
// per-engine logger was configured.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger { return newNopLogger() }
