// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
genesis: /etc/stakepool/genesis.json
apiAddr: 0.0.0.0:8669
verbosity: debug
enableMetrics: true
`), 0o600))

	c, err := loadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/etc/stakepool/genesis.json", c.Genesis)
	assert.Equal(t, "0.0.0.0:8669", c.APIAddr)
	assert.Equal(t, "debug", c.Verbosity)
	assert.True(t, c.EnableMetrics)
	assert.False(t, c.Mem)
}

func TestLoadConfigFileMissing(t *testing.T) {
	_, err := loadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestMerge(t *testing.T) {
	dst := &config{
		DataDir:   defaultDataDir(),
		APIAddr:   "localhost:8669",
		Verbosity: "info",
	}
	merge(dst, &config{
		APIAddr:       "0.0.0.0:9000",
		EnableAPILogs: true,
	})

	assert.Equal(t, "0.0.0.0:9000", dst.APIAddr)
	assert.True(t, dst.EnableAPILogs)
	// untouched fields keep their defaults
	assert.Equal(t, "info", dst.Verbosity)
	assert.Equal(t, defaultDataDir(), dst.DataDir)
}
