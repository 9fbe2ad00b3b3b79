// Copyright (c) 2025 The Stakewell developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/mattn/go-isatty"
)

// Logger is the structured logger handed out to packages.
type Logger interface {
	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)

	With(ctx ...any) Logger
}

// Verbosity levels, mapped onto slog levels.
const (
	LevelTrace = slog.Level(-8)
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var (
	level atomic.Int64
	root  atomic.Pointer[slog.Logger]
)

func init() {
	level.Store(int64(LevelInfo))
	root.Store(slog.New(newTerminalHandler(os.Stderr, isatty.IsTerminal(os.Stderr.Fd()))))
}

// Init configures the process-wide logger.
// When json is true records are emitted as JSON lines, otherwise in a
// human-readable terminal format with color when stderr is a tty.
func Init(lvl slog.Level, json bool) {
	level.Store(int64(lvl))
	if json {
		root.Store(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: levelVar{}})))
	} else {
		root.Store(slog.New(newTerminalHandler(os.Stderr, isatty.IsTerminal(os.Stderr.Fd()))))
	}
}

// FromLegacyLevel maps a 0..5 verbosity flag to a slog level.
func FromLegacyLevel(lvl int) slog.Level {
	switch lvl {
	case 0:
		return LevelError
	case 1:
		return LevelWarn
	case 2:
		return LevelInfo
	case 3:
		return LevelDebug
	default:
		return LevelTrace
	}
}

// WithContext returns a logger carrying the given context pairs.
func WithContext(ctx ...any) Logger {
	return &logger{attrs: ctx}
}

type levelVar struct{}

func (levelVar) Level() slog.Level { return slog.Level(level.Load()) }

type logger struct {
	attrs []any
}

func (l *logger) write(lvl slog.Level, msg string, ctx []any) {
	if lvl < slog.Level(level.Load()) {
		return
	}
	args := make([]any, 0, len(l.attrs)+len(ctx))
	args = append(args, l.attrs...)
	args = append(args, ctx...)
	root.Load().Log(context.Background(), lvl, msg, args...)
}

func (l *logger) Trace(msg string, ctx ...any) { l.write(LevelTrace, msg, ctx) }
func (l *logger) Debug(msg string, ctx ...any) { l.write(LevelDebug, msg, ctx) }
func (l *logger) Info(msg string, ctx ...any)  { l.write(LevelInfo, msg, ctx) }
func (l *logger) Warn(msg string, ctx ...any)  { l.write(LevelWarn, msg, ctx) }
func (l *logger) Error(msg string, ctx ...any) { l.write(LevelError, msg, ctx) }

func (l *logger) With(ctx ...any) Logger {
	attrs := make([]any, 0, len(l.attrs)+len(ctx))
	attrs = append(attrs, l.attrs...)
	attrs = append(attrs, ctx...)
	return &logger{attrs: attrs}
}
