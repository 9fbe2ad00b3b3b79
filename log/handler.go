// Copyright (c) 2025 The Stakewell developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// terminalHandler formats records for human readability:
//
//	[LEVEL] [TIME] MESSAGE key=value key=value ...
type terminalHandler struct {
	mu       sync.Mutex
	wr       io.Writer
	useColor bool
	attrs    []slog.Attr
}

func newTerminalHandler(wr io.Writer, useColor bool) *terminalHandler {
	return &terminalHandler{wr: wr, useColor: useColor}
}

func (h *terminalHandler) Enabled(_ context.Context, lvl slog.Level) bool {
	return lvl >= slog.Level(level.Load())
}

func (h *terminalHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(h.levelTag(r.Level))
	b.WriteString(" [")
	b.WriteString(r.Time.Format("Jan 02 15:04:05"))
	b.WriteString("] ")
	b.WriteString(r.Message)
	for _, attr := range h.attrs {
		fmt.Fprintf(&b, " %s=%v", attr.Key, attr.Value)
	}
	r.Attrs(func(attr slog.Attr) bool {
		fmt.Fprintf(&b, " %s=%v", attr.Key, attr.Value)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.wr, b.String())
	return err
}

func (h *terminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &terminalHandler{wr: h.wr, useColor: h.useColor, attrs: merged}
}

func (h *terminalHandler) WithGroup(_ string) slog.Handler {
	panic("not implemented")
}

const (
	colorReset  = "\x1b[0m"
	colorRed    = "\x1b[31m"
	colorYellow = "\x1b[33m"
	colorGreen  = "\x1b[32m"
	colorCyan   = "\x1b[36m"
)

func (h *terminalHandler) levelTag(lvl slog.Level) string {
	var tag, color string
	switch {
	case lvl >= LevelError:
		tag, color = "EROR", colorRed
	case lvl >= LevelWarn:
		tag, color = "WARN", colorYellow
	case lvl >= LevelInfo:
		tag, color = "INFO", colorGreen
	case lvl >= LevelDebug:
		tag, color = "DBUG", colorCyan
	default:
		tag, color = "TRCE", colorCyan
	}
	if h.useColor {
		return "[" + color + tag + colorReset + "]"
	}
	return "[" + tag + "]"
}
