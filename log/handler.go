// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"strconv"
	"sync"
	"time"

	"github.com/holiman/uint256"
)

type discardHandler struct{}

// DiscardHandler returns a no-op handler.
func DiscardHandler() slog.Handler {
	return &discardHandler{}
}

func (h *discardHandler) Handle(_ context.Context, _ slog.Record) error { return nil }

func (h *discardHandler) Enabled(_ context.Context, _ slog.Level) bool { return false }

func (h *discardHandler) WithGroup(_ string) slog.Handler { return &discardHandler{} }

func (h *discardHandler) WithAttrs(_ []slog.Attr) slog.Handler { return &discardHandler{} }

const (
	termTimeFormat = "01-02|15:04:05.000"

	escapeReset  = "\x1b[0m"
	escapeRed    = "\x1b[31m"
	escapeGreen  = "\x1b[32m"
	escapeYellow = "\x1b[33m"
	escapeBlue   = "\x1b[34m"
	escapeViolet = "\x1b[35m"
)

// TerminalHandler formats log records for human readability on a terminal:
//
//	LEVEL[TIME] MESSAGE key=value key=value ...
type TerminalHandler struct {
	mu       sync.Mutex
	wr       io.Writer
	lvl      slog.Leveler
	useColor bool
	attrs    []slog.Attr
	buf      []byte
}

// NewTerminalHandler returns a handler which writes human readable records
// at or above lvl, with color-coded level output when useColor is set.
func NewTerminalHandler(wr io.Writer, lvl slog.Leveler, useColor bool) *TerminalHandler {
	return &TerminalHandler{
		wr:       wr,
		lvl:      lvl,
		useColor: useColor,
	}
}

func (h *TerminalHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	buf := h.buf[:0]
	buf = append(buf, h.levelTag(r.Level)...)
	buf = append(buf, '[')
	buf = r.Time.AppendFormat(buf, termTimeFormat)
	buf = append(buf, "] "...)
	buf = append(buf, r.Message...)

	for _, attr := range h.attrs {
		buf = appendAttr(buf, attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		buf = appendAttr(buf, attr)
		return true
	})
	buf = append(buf, '\n')

	h.buf = buf[:0]
	_, err := h.wr.Write(buf)
	return err
}

func (h *TerminalHandler) levelTag(level slog.Level) string {
	var tag, color string
	switch {
	case level >= LevelCrit:
		tag, color = "CRIT ", escapeViolet
	case level >= LevelError:
		tag, color = "ERROR", escapeRed
	case level >= LevelWarn:
		tag, color = "WARN ", escapeYellow
	case level >= LevelInfo:
		tag, color = "INFO ", escapeGreen
	case level >= LevelDebug:
		tag, color = "DEBUG", escapeBlue
	default:
		tag, color = "TRACE", escapeViolet
	}
	if h.useColor {
		return color + tag + escapeReset
	}
	return tag
}

func (h *TerminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.lvl.Level()
}

func (h *TerminalHandler) WithGroup(_ string) slog.Handler {
	panic("not implemented")
}

func (h *TerminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TerminalHandler{
		wr:       h.wr,
		lvl:      h.lvl,
		useColor: h.useColor,
		attrs:    append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...),
	}
}

func appendAttr(buf []byte, attr slog.Attr) []byte {
	buf = append(buf, ' ')
	buf = append(buf, attr.Key...)
	buf = append(buf, '=')
	return append(buf, formatValue(attr.Value)...)
}

// formatValue renders attribute values, with grouping separators for the
// big integer amounts the pool deals in.
func formatValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case slog.KindUint64:
		return strconv.FormatUint(v.Uint64(), 10)
	case slog.KindString:
		return v.String()
	case slog.KindAny:
		switch n := v.Any().(type) {
		case *big.Int:
			if n == nil {
				return "<nil>"
			}
			return groupDigits(n.Text(10))
		case *uint256.Int:
			if n == nil {
				return "<nil>"
			}
			return groupDigits(n.Dec())
		case fmt.Stringer:
			return n.String()
		case error:
			return n.Error()
		case time.Duration:
			return n.String()
		}
	}
	return fmt.Sprintf("%v", v.Any())
}

func groupDigits(s string) string {
	if len(s) <= 5 {
		return s
	}
	grouped := make([]byte, 0, len(s)+len(s)/3)
	for i, c := range s {
		grouped = append(grouped, byte(c))
		if rest := len(s) - 1 - i; rest > 0 && rest%3 == 0 {
			grouped = append(grouped, ',')
		}
	}
	return string(grouped)
}
