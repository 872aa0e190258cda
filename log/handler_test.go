// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"math/big"
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
)

func TestTerminalHandlerOutput(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(NewTerminalHandler(&buf, LevelDebug, false))

	l.Info("staked", "addr", "0x01", "amount", big.NewInt(1000000))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "INFO "), out)
	assert.Contains(t, out, "staked")
	assert.Contains(t, out, "addr=0x01")
	assert.Contains(t, out, "amount=1,000,000")
}

func TestTerminalHandlerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(NewTerminalHandler(&buf, LevelWarn, false))

	l.Debug("hidden")
	l.Info("hidden too")
	l.Warn("visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"short", "1234", "1234"},
		{"grouped", "123456789", "123,456,789"},
		{"exact groups", "123456", "123,456"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, groupDigits(tt.in))
		})
	}

	n := uint256.NewInt(2000000)
	var buf bytes.Buffer
	l := NewLogger(NewTerminalHandler(&buf, LevelDebug, false))
	l.Info("rate", "value", n)
	assert.Contains(t, buf.String(), "value=2,000,000")
}

func TestLevelFromString(t *testing.T) {
	lvl, ok := LevelFromString("debug")
	assert.True(t, ok)
	assert.Equal(t, LevelDebug, lvl)

	_, ok = LevelFromString("loud")
	assert.False(t, ok)
}
