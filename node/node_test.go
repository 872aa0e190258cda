// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepool/lvldb"
	"github.com/vechain/stakepool/pool"
	"github.com/vechain/stakepool/stakepool"
	"github.com/vechain/stakepool/state"
	"github.com/vechain/stakepool/token"
)

var (
	authority = stakepool.BytesToAddress([]byte("authority"))
	alice     = stakepool.BytesToAddress([]byte("alice"))
	reserve   = stakepool.BytesToAddress([]byte("pool-reserve"))
	wagAddr   = stakepool.BytesToAddress([]byte("wag"))
)

func tokens(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), stakepool.TokenUnit)
}

func newNode(t *testing.T, store *lvldb.LevelDB, clock *uint64) *Node {
	st := state.New(store)
	wag := token.New(wagAddr, st)
	p := pool.New(st, pool.Config{
		Address:      reserve,
		StakingToken: wag,
		RewardsToken: wag,
	})
	return New(p, st, Options{
		Authority: authority,
		Clock:     func() uint64 { return *clock },
	})
}

func TestPersistsAcrossRestart(t *testing.T) {
	store, err := lvldb.NewMem()
	require.NoError(t, err)
	defer store.Close()

	now := uint64(1000)

	{
		st := state.New(store)
		wag := token.New(wagAddr, st)
		require.NoError(t, wag.Mint(alice, tokens(100)))
		require.NoError(t, wag.Mint(reserve, tokens(500)))
		p := pool.New(st, pool.Config{Address: reserve, StakingToken: wag, RewardsToken: wag})
		p.Init(100, 100)
		require.NoError(t, st.Commit())
	}

	n := newNode(t, store, &now)
	require.NoError(t, n.Stake(alice, tokens(20)))
	require.NoError(t, n.AddRewardCycle(tokens(200), 100))

	// a fresh node over the same store sees the committed position
	now = 1100
	reopened := newNode(t, store, &now)

	balance, err := reopened.BalanceOf(alice)
	require.NoError(t, err)
	assert.Equal(t, tokens(20), balance)

	earned, err := reopened.Earned(alice)
	require.NoError(t, err)
	assert.Equal(t, tokens(200), earned)
}

func TestRevertedOpNotCommitted(t *testing.T) {
	store, err := lvldb.NewMem()
	require.NoError(t, err)
	defer store.Close()

	now := uint64(1000)
	n := newNode(t, store, &now)

	// alice holds nothing, the stake reverts
	err = n.Stake(alice, tokens(20))
	assert.ErrorIs(t, err, token.ErrInsufficientBalance)

	balance, err := n.BalanceOf(alice)
	require.NoError(t, err)
	assert.Zero(t, balance.Sign())
}

func TestClockNeverRunsBackwards(t *testing.T) {
	store, err := lvldb.NewMem()
	require.NoError(t, err)
	defer store.Close()

	now := uint64(1000)
	n := newNode(t, store, &now)

	require.Equal(t, uint64(1000), n.now())

	now = 900
	assert.Equal(t, uint64(1000), n.now())

	now = 1100
	assert.Equal(t, uint64(1100), n.now())
}

func TestAuthority(t *testing.T) {
	store, err := lvldb.NewMem()
	require.NoError(t, err)
	defer store.Close()

	now := uint64(1000)
	n := newNode(t, store, &now)
	assert.Equal(t, authority, n.Authority())
}
