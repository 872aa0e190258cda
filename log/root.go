// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"log/slog"
	"os"
	"sync/atomic"
)

var root atomic.Value

func init() {
	root.Store(&logger{slog.New(DiscardHandler())})
}

// SetDefault sets the default global logger.
func SetDefault(l Logger) {
	root.Store(l.(*logger))
}

// Root returns the root logger.
func Root() Logger {
	return root.Load().(*logger)
}

// WithContext returns the root logger with the given attributes attached.
func WithContext(ctx ...any) Logger {
	return Root().With(ctx...)
}

// Trace is a convenient alias for Root().Trace.
func Trace(msg string, ctx ...any) {
	Root().(*logger).write(LevelTrace, msg, ctx)
}

// Debug is a convenient alias for Root().Debug.
func Debug(msg string, ctx ...any) {
	Root().(*logger).write(LevelDebug, msg, ctx)
}

// Info is a convenient alias for Root().Info.
func Info(msg string, ctx ...any) {
	Root().(*logger).write(LevelInfo, msg, ctx)
}

// Warn is a convenient alias for Root().Warn.
func Warn(msg string, ctx ...any) {
	Root().(*logger).write(LevelWarn, msg, ctx)
}

// Error is a convenient alias for Root().Error.
func Error(msg string, ctx ...any) {
	Root().(*logger).write(LevelError, msg, ctx)
}

// Crit is a convenient alias for Root().Crit, it exits the process.
func Crit(msg string, ctx ...any) {
	Root().(*logger).write(LevelCrit, msg, ctx)
	os.Exit(1)
}
