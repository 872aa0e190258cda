// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepool/lvldb"
	"github.com/vechain/stakepool/node"
	corepool "github.com/vechain/stakepool/pool"
	"github.com/vechain/stakepool/stakepool"
	"github.com/vechain/stakepool/state"
	"github.com/vechain/stakepool/token"
)

var (
	authority = stakepool.BytesToAddress([]byte("authority"))
	alice     = stakepool.BytesToAddress([]byte("alice"))
)

type testServer struct {
	*httptest.Server
	clock uint64
}

func newTestServer(t *testing.T) *testServer {
	store, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	st := state.New(store)
	reserve := stakepool.BytesToAddress([]byte("pool-reserve"))
	wag := token.New(stakepool.BytesToAddress([]byte("wag")), st)
	require.NoError(t, wag.Mint(alice, tokens(100)))
	require.NoError(t, wag.Mint(reserve, tokens(1000)))

	p := corepool.New(st, corepool.Config{
		Address:      reserve,
		StakingToken: wag,
		RewardsToken: wag,
	})
	p.Init(100, 100)
	require.NoError(t, st.Commit())

	ts := &testServer{clock: 1_000_000}
	n := node.New(p, st, node.Options{
		Authority: authority,
		Clock:     func() uint64 { return ts.clock },
	})

	router := mux.NewRouter()
	New(n).Mount(router, "/pool")
	ts.Server = httptest.NewServer(router)
	t.Cleanup(ts.Server.Close)
	return ts
}

func tokens(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), stakepool.TokenUnit)
}

func (ts *testServer) post(t *testing.T, path string, body any) (int, []byte) {
	data, err := json.Marshal(body)
	require.NoError(t, err)

	res, err := http.Post(ts.URL+path, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	defer res.Body.Close()

	payload, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, payload
}

func (ts *testServer) get(t *testing.T, path string) (int, []byte) {
	res, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	defer res.Body.Close()

	payload, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, payload
}

func TestStakeLifecycle(t *testing.T) {
	ts := newTestServer(t)

	code, payload := ts.post(t, "/pool/stake", map[string]any{
		"staker": alice.String(),
		"amount": "20000000000000000000",
	})
	require.Equal(t, http.StatusOK, code, string(payload))

	var staker Staker
	require.NoError(t, json.Unmarshal(payload, &staker))
	assert.Equal(t, tokens(20), (*big.Int)(staker.Balance))
	assert.Nil(t, staker.PendingWithdrawal)

	code, payload = ts.post(t, "/pool/admin/cycles", map[string]any{
		"caller":   authority.String(),
		"amount":   "200000000000000000000",
		"duration": 100,
	})
	require.Equal(t, http.StatusOK, code, string(payload))

	ts.clock += 100

	code, payload = ts.get(t, fmt.Sprintf("/pool/stakers/%v", alice))
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(payload, &staker))
	assert.Equal(t, tokens(200), (*big.Int)(staker.Earned))

	code, payload = ts.post(t, "/pool/rewards/claim", map[string]any{"staker": alice.String()})
	require.Equal(t, http.StatusOK, code, string(payload))

	var claim struct {
		Reward *math.HexOrDecimal256 `json:"reward"`
	}
	require.NoError(t, json.Unmarshal(payload, &claim))
	assert.Equal(t, tokens(200), (*big.Int)(claim.Reward))

	code, payload = ts.post(t, "/pool/unstake", map[string]any{
		"staker": alice.String(),
		"amount": "20000000000000000000",
	})
	require.Equal(t, http.StatusOK, code, string(payload))
	require.NoError(t, json.Unmarshal(payload, &staker))
	require.NotNil(t, staker.PendingWithdrawal)
	assert.Equal(t, tokens(20), (*big.Int)(staker.PendingWithdrawal.Amount))

	// too early
	code, payload = ts.post(t, "/pool/withdraw", map[string]any{"staker": alice.String()})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(payload), "not yet claimable")

	ts.clock += 100

	code, payload = ts.post(t, "/pool/withdraw", map[string]any{"staker": alice.String()})
	require.Equal(t, http.StatusOK, code, string(payload))

	var withdrawal struct {
		Withdrawn *math.HexOrDecimal256 `json:"withdrawn"`
	}
	require.NoError(t, json.Unmarshal(payload, &withdrawal))
	assert.Equal(t, tokens(20), (*big.Int)(withdrawal.Withdrawn))
}

func TestStatus(t *testing.T) {
	ts := newTestServer(t)

	code, payload := ts.get(t, "/pool/status")
	require.Equal(t, http.StatusOK, code)

	var status Status
	require.NoError(t, json.Unmarshal(payload, &status))
	assert.Equal(t, "idle", status.CycleState)
	assert.False(t, status.Paused)
	assert.Equal(t, uint64(100), status.RewardsDuration)
}

func TestGuardsMapToBadRequest(t *testing.T) {
	ts := newTestServer(t)

	code, payload := ts.post(t, "/pool/stake", map[string]any{
		"staker": alice.String(),
		"amount": "0",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(payload), "amount must be positive")

	code, payload = ts.post(t, "/pool/stake", map[string]any{
		"staker": alice.String(),
		"amount": "500000000000000000000",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(payload), "insufficient token balance")

	// unknown fields are rejected
	code, _ = ts.post(t, "/pool/stake", map[string]any{
		"staker": alice.String(),
		"amonut": "1",
	})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestAdminRequiresAuthority(t *testing.T) {
	ts := newTestServer(t)

	code, payload := ts.post(t, "/pool/admin/pause", map[string]any{"caller": alice.String()})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Contains(t, string(payload), "not the authority")

	code, _ = ts.post(t, "/pool/admin/pause", map[string]any{"caller": authority.String()})
	require.Equal(t, http.StatusOK, code)

	code, payload = ts.post(t, "/pool/stake", map[string]any{
		"staker": alice.String(),
		"amount": "1000000000000000000",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(payload), "paused")
}
