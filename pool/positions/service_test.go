// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package positions

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepool/lvldb"
	"github.com/vechain/stakepool/pool/reverts"
	"github.com/vechain/stakepool/slot"
	"github.com/vechain/stakepool/stakepool"
	"github.com/vechain/stakepool/state"
)

var (
	alice = stakepool.BytesToAddress([]byte("alice"))
	bob   = stakepool.BytesToAddress([]byte("bob"))
)

func newService(t *testing.T) *Service {
	store, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	addr := stakepool.BytesToAddress([]byte("pool"))
	return New(slot.NewContext(addr, state.New(store)))
}

func tokens(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), stakepool.TokenUnit)
}

func TestEmptyAccount(t *testing.T) {
	s := newService(t)

	acc, err := s.GetAccount(alice)
	require.NoError(t, err)
	assert.Zero(t, acc.Balance.Sign())
	assert.Zero(t, acc.Reward.Sign())

	total, err := s.TotalStaked()
	require.NoError(t, err)
	assert.Zero(t, total.Sign())
}

func TestAddSubStake(t *testing.T) {
	s := newService(t)

	require.NoError(t, s.AddStake(alice, tokens(10)))
	require.NoError(t, s.AddStake(bob, tokens(5)))

	bal, err := s.BalanceOf(alice)
	require.NoError(t, err)
	assert.Equal(t, tokens(10), bal)

	total, err := s.TotalStaked()
	require.NoError(t, err)
	assert.Equal(t, tokens(15), total)

	require.NoError(t, s.SubStake(alice, tokens(4)))

	bal, err = s.BalanceOf(alice)
	require.NoError(t, err)
	assert.Equal(t, tokens(6), bal)

	total, err = s.TotalStaked()
	require.NoError(t, err)
	assert.Equal(t, tokens(11), total)

	err = s.SubStake(alice, tokens(7))
	assert.ErrorIs(t, err, reverts.ErrInsufficientStake)
}

func TestSettleAndEarned(t *testing.T) {
	s := newService(t)

	require.NoError(t, s.AddStake(alice, tokens(10)))

	// 10 staked over an accumulator move of 3 per unit: 30 earned
	earned, err := s.Earned(alice, tokens(3))
	require.NoError(t, err)
	assert.Equal(t, tokens(30), earned)

	acc, err := s.Settle(alice, tokens(3))
	require.NoError(t, err)
	assert.Equal(t, tokens(30), acc.Reward)
	assert.Equal(t, tokens(3), acc.RewardPerTokenPaid)

	// settling again at the same mark accrues nothing further
	acc, err = s.Settle(alice, tokens(3))
	require.NoError(t, err)
	assert.Equal(t, tokens(30), acc.Reward)

	// a later mark only pays the delta
	earned, err = s.Earned(alice, tokens(5))
	require.NoError(t, err)
	assert.Equal(t, tokens(50), earned)
}

func TestMove(t *testing.T) {
	s := newService(t)

	require.NoError(t, s.AddStake(alice, tokens(10)))
	require.NoError(t, s.Move(alice, bob, tokens(4)))

	aliceBal, err := s.BalanceOf(alice)
	require.NoError(t, err)
	assert.Equal(t, tokens(6), aliceBal)

	bobBal, err := s.BalanceOf(bob)
	require.NoError(t, err)
	assert.Equal(t, tokens(4), bobBal)

	// total supply is untouched by a move
	total, err := s.TotalStaked()
	require.NoError(t, err)
	assert.Equal(t, tokens(10), total)

	err = s.Move(bob, alice, tokens(5))
	assert.ErrorIs(t, err, reverts.ErrInsufficientStake)
}

func TestTakeReward(t *testing.T) {
	s := newService(t)

	require.NoError(t, s.AddStake(alice, tokens(10)))
	_, err := s.Settle(alice, tokens(2))
	require.NoError(t, err)

	taken, err := s.TakeReward(alice)
	require.NoError(t, err)
	assert.Equal(t, tokens(20), taken)

	taken, err = s.TakeReward(alice)
	require.NoError(t, err)
	assert.Zero(t, taken.Sign())
}

func TestEmptyAccountDropped(t *testing.T) {
	s := newService(t)

	require.NoError(t, s.AddStake(alice, tokens(10)))
	_, err := s.Settle(alice, tokens(1))
	require.NoError(t, err)
	require.NoError(t, s.SubStake(alice, tokens(10)))

	// reward still pending keeps the record alive
	acc, err := s.GetAccount(alice)
	require.NoError(t, err)
	assert.Equal(t, tokens(10), acc.Reward)

	_, err = s.TakeReward(alice)
	require.NoError(t, err)

	acc, err = s.GetAccount(alice)
	require.NoError(t, err)
	assert.Zero(t, acc.Balance.Sign())
	assert.Zero(t, acc.Reward.Sign())
	assert.Zero(t, acc.RewardPerTokenPaid.Sign())
}
