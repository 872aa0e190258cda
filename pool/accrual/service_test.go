// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accrual

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

func TestCycleState(t *testing.T) {
	s := newService(t)

	st, err := s.CycleState(1000)
	require.NoError(t, err)
	assert.Equal(t, CycleIdle, st)

	_, err = s.StartCycle(tokens(200), 100, 1000)
	require.NoError(t, err)

	st, err = s.CycleState(1050)
	require.NoError(t, err)
	assert.Equal(t, CycleActive, st)

	st, err = s.CycleState(1100)
	require.NoError(t, err)
	assert.Equal(t, CycleExpired, st)
}

func TestStartCycle(t *testing.T) {
	s := newService(t)

	rate, err := s.StartCycle(tokens(200), 100, 1000)
	require.NoError(t, err)
	assert.Equal(t, tokens(2), rate)

	finish, err := s.PeriodFinish()
	require.NoError(t, err)
	assert.Equal(t, uint64(1100), finish)

	duration, err := s.RewardsDuration()
	require.NoError(t, err)
	assert.Equal(t, uint64(100), duration)
}

func TestStartCycleFoldsLeftover(t *testing.T) {
	s := newService(t)

	_, err := s.StartCycle(tokens(200), 100, 1000)
	require.NoError(t, err)

	// 50s in, 100 tokens undistributed; they fold into the new cycle.
	rate, err := s.StartCycle(tokens(100), 100, 1050)
	require.NoError(t, err)
	assert.Equal(t, tokens(2), rate)

	finish, err := s.PeriodFinish()
	require.NoError(t, err)
	assert.Equal(t, uint64(1150), finish)
}

func TestRewardPerToken(t *testing.T) {
	s := newService(t)

	_, err := s.StartCycle(tokens(100), 100, 1000)
	require.NoError(t, err)

	// rate 1 token/s, 10 tokens staked, 10s elapsed
	rpt, err := s.RewardPerToken(1010, tokens(10))
	require.NoError(t, err)
	assert.Equal(t, tokens(1), rpt)

	// capped at the cycle end
	rpt, err = s.RewardPerToken(1500, tokens(10))
	require.NoError(t, err)
	assert.Equal(t, tokens(10), rpt)
}

func TestRewardPerTokenZeroSupply(t *testing.T) {
	s := newService(t)

	_, err := s.StartCycle(tokens(100), 100, 1000)
	require.NoError(t, err)

	rpt, err := s.RewardPerToken(1050, new(big.Int))
	require.NoError(t, err)
	assert.Zero(t, rpt.Sign())

	// settling over a zero-supply interval skips it entirely
	_, err = s.Settle(1050, new(big.Int))
	require.NoError(t, err)

	last, err := s.LastUpdateTime()
	require.NoError(t, err)
	assert.Equal(t, uint64(1050), last)

	// reward emitted while nobody staked is not banked for later
	rpt, err = s.RewardPerToken(1100, tokens(10))
	require.NoError(t, err)
	assert.Equal(t, tokens(5), rpt)
}

func TestSettleIdempotent(t *testing.T) {
	s := newService(t)

	_, err := s.StartCycle(tokens(100), 100, 1000)
	require.NoError(t, err)

	first, err := s.Settle(1030, tokens(10))
	require.NoError(t, err)

	again, err := s.Settle(1030, tokens(10))
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestTopUp(t *testing.T) {
	t.Run("idle", func(t *testing.T) {
		s := newService(t)
		_, err := s.TopUp(tokens(100), 1000)
		assert.ErrorIs(t, err, reverts.ErrNoActiveCycle)
	})

	t.Run("active keeps end time", func(t *testing.T) {
		s := newService(t)
		_, err := s.StartCycle(tokens(100), 100, 1000)
		require.NoError(t, err)

		// 50 tokens left over 50s remaining, plus 100 fresh
		rate, err := s.TopUp(tokens(100), 1050)
		require.NoError(t, err)
		assert.Equal(t, tokens(3), rate)

		finish, err := s.PeriodFinish()
		require.NoError(t, err)
		assert.Equal(t, uint64(1100), finish)
	})

	t.Run("expired restarts nominal window", func(t *testing.T) {
		s := newService(t)
		_, err := s.StartCycle(tokens(100), 100, 1000)
		require.NoError(t, err)

		rate, err := s.TopUp(tokens(200), 1150)
		require.NoError(t, err)
		assert.Equal(t, tokens(2), rate)

		finish, err := s.PeriodFinish()
		require.NoError(t, err)
		assert.Equal(t, uint64(1250), finish)
	})
}

func TestSetDuration(t *testing.T) {
	s := newService(t)

	_, err := s.StartCycle(tokens(100), 100, 1000)
	require.NoError(t, err)

	// only future recomputations pick the new duration up
	s.SetDuration(200)

	finish, err := s.PeriodFinish()
	require.NoError(t, err)
	assert.Equal(t, uint64(1100), finish)

	_, err = s.TopUp(tokens(100), 1150)
	require.NoError(t, err)

	finish, err = s.PeriodFinish()
	require.NoError(t, err)
	assert.Equal(t, uint64(1350), finish)
}
