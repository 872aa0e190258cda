// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package client

import (
	"math/big"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepool/api"
	"github.com/vechain/stakepool/api/accounts"
	"github.com/vechain/stakepool/lvldb"
	"github.com/vechain/stakepool/node"
	"github.com/vechain/stakepool/pool"
	"github.com/vechain/stakepool/stakepool"
	"github.com/vechain/stakepool/state"
	"github.com/vechain/stakepool/token"
)

var (
	authority = stakepool.BytesToAddress([]byte("authority"))
	alice     = stakepool.BytesToAddress([]byte("alice"))
)

func tokens(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), stakepool.TokenUnit)
}

func newClient(t *testing.T, clock *uint64) *Client {
	store, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	st := state.New(store)
	reserve := stakepool.BytesToAddress([]byte("pool-reserve"))
	wagAddr := stakepool.BytesToAddress([]byte("wag"))
	wag := token.New(wagAddr, st)
	require.NoError(t, wag.Mint(alice, tokens(100)))
	require.NoError(t, wag.Mint(reserve, tokens(1000)))

	p := pool.New(st, pool.Config{Address: reserve, StakingToken: wag, RewardsToken: wag})
	p.Init(100, 100)
	require.NoError(t, st.Commit())

	n := node.New(p, st, node.Options{
		Authority: authority,
		Clock:     func() uint64 { return *clock },
	})

	handler := api.New(n, []accounts.Ledger{{Name: "staking", Address: wagAddr, Token: wag}}, api.Options{})
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL)
}

func TestClientRoundTrip(t *testing.T) {
	clock := uint64(1_000_000)
	c := newClient(t, &clock)

	status, err := c.Status()
	require.NoError(t, err)
	assert.Equal(t, "idle", status.CycleState)

	position, err := c.Stake(alice, tokens(20))
	require.NoError(t, err)
	assert.Equal(t, tokens(20), (*big.Int)(position.Balance))

	status, err = c.AddRewardCycle(authority, tokens(200), 100)
	require.NoError(t, err)
	assert.Equal(t, "active", status.CycleState)

	clock += 100

	staker, err := c.Staker(alice)
	require.NoError(t, err)
	assert.Equal(t, tokens(200), (*big.Int)(staker.Earned))

	reward, err := c.ClaimReward(alice)
	require.NoError(t, err)
	assert.Equal(t, tokens(200), reward)

	position, err = c.Unstake(alice, tokens(20))
	require.NoError(t, err)
	require.NotNil(t, position.PendingWithdrawal)

	clock += 100

	withdrawn, err := c.Withdraw(alice)
	require.NoError(t, err)
	assert.Equal(t, tokens(20), withdrawn)

	balances, err := c.Balances(alice)
	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.Equal(t, tokens(300), (*big.Int)(balances[0].Balance))
}

func TestClientErrors(t *testing.T) {
	clock := uint64(1_000_000)
	c := newClient(t, &clock)

	_, err := c.Pause(alice)
	require.ErrorIs(t, err, ErrNot200Status)
	assert.Contains(t, err.Error(), "not the authority")

	_, err = c.Withdraw(alice)
	require.ErrorIs(t, err, ErrNot200Status)
	assert.Contains(t, err.Error(), "nothing to claim")
}
