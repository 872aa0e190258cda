// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package accrual maintains the global reward accounting of the pool: the
// cumulative reward-per-staked-unit accumulator and the funding cycle that
// feeds it. All values are settled lazily against a caller-supplied "now".
package accrual

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/stakepool/pool/reverts"
	"github.com/vechain/stakepool/slot"
	"github.com/vechain/stakepool/stakepool"
)

// CycleState is the lifecycle state of the reward funding cycle.
type CycleState int

const (
	// CycleIdle no cycle was ever started.
	CycleIdle CycleState = iota
	// CycleActive the current cycle is still emitting reward.
	CycleActive
	// CycleExpired the last cycle ran out, the rate contributes nothing further.
	CycleExpired
)

func (s CycleState) String() string {
	switch s {
	case CycleIdle:
		return "idle"
	case CycleActive:
		return "active"
	case CycleExpired:
		return "expired"
	default:
		return "unknown"
	}
}

var (
	slotRewardPerToken  = stakepool.BytesToBytes32([]byte("reward-per-token"))
	slotRewardRate      = stakepool.BytesToBytes32([]byte("reward-rate"))
	slotLastUpdateTime  = stakepool.BytesToBytes32([]byte("last-update-time"))
	slotPeriodFinish    = stakepool.BytesToBytes32([]byte("period-finish"))
	slotRewardsDuration = stakepool.BytesToBytes32([]byte("rewards-duration"))
)

// Service manages the reward-per-unit accumulator and the funding cycle.
type Service struct {
	rewardPerToken  *slot.Uint256
	rewardRate      *slot.Uint256
	lastUpdateTime  *slot.Uint64
	periodFinish    *slot.Uint64
	rewardsDuration *slot.Uint64
}

func New(context *slot.Context) *Service {
	return &Service{
		rewardPerToken:  slot.NewUint256(context, slotRewardPerToken),
		rewardRate:      slot.NewUint256(context, slotRewardRate),
		lastUpdateTime:  slot.NewUint64(context, slotLastUpdateTime),
		periodFinish:    slot.NewUint64(context, slotPeriodFinish),
		rewardsDuration: slot.NewUint64(context, slotRewardsDuration),
	}
}

// CycleState derives the cycle lifecycle state at the given time.
// This is the single place timestamps are compared, call sites must not
// infer the state on their own.
func (s *Service) CycleState(now uint64) (CycleState, error) {
	finish, err := s.periodFinish.Get()
	if err != nil {
		return CycleIdle, err
	}
	if finish == 0 {
		return CycleIdle, nil
	}
	if now < finish {
		return CycleActive, nil
	}
	return CycleExpired, nil
}

// lastTimeRewardApplicable caps now at the end of the current cycle.
func (s *Service) lastTimeRewardApplicable(now uint64) (uint64, error) {
	finish, err := s.periodFinish.Get()
	if err != nil {
		return 0, err
	}
	if now < finish {
		return now, nil
	}
	return finish, nil
}

// RewardPerToken returns the cumulative reward per staked unit at the given
// time, scaled by stakepool.RewardScale. Pure read, mutates nothing.
//
// While totalStaked is zero the accumulator does not advance: reward
// emitted over such an interval is skipped, not banked.
func (s *Service) RewardPerToken(now uint64, totalStaked *big.Int) (*big.Int, error) {
	stored, err := s.rewardPerToken.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get reward per token")
	}
	if totalStaked.Sign() == 0 {
		return stored, nil
	}
	applicable, err := s.lastTimeRewardApplicable(now)
	if err != nil {
		return nil, err
	}
	last, err := s.lastUpdateTime.Get()
	if err != nil {
		return nil, err
	}
	if applicable <= last {
		return stored, nil
	}
	rate, err := s.rewardRate.Get()
	if err != nil {
		return nil, err
	}

	delta := new(big.Int).SetUint64(applicable - last)
	delta.Mul(delta, rate)
	delta.Mul(delta, stakepool.RewardScale)
	delta.Div(delta, totalStaked)
	return stored.Add(stored, delta), nil
}

// Settle folds reward emitted up to now into the stored accumulator and
// advances the settlement timestamp. Idempotent with no elapsed time.
// It returns the settled reward-per-token value.
func (s *Service) Settle(now uint64, totalStaked *big.Int) (*big.Int, error) {
	rpt, err := s.RewardPerToken(now, totalStaked)
	if err != nil {
		return nil, err
	}
	if err := s.rewardPerToken.Set(rpt); err != nil {
		return nil, err
	}

	applicable, err := s.lastTimeRewardApplicable(now)
	if err != nil {
		return nil, err
	}
	s.lastUpdateTime.Set(applicable)
	return rpt, nil
}

// StartCycle begins a fresh funding cycle of the given amount and duration.
// Reward left undistributed by a still-active cycle is folded into the new
// rate, so no reward mass is created or destroyed. The caller must settle
// the accumulator first.
func (s *Service) StartCycle(amount *big.Int, duration, now uint64) (*big.Int, error) {
	reward := new(big.Int).Set(amount)

	finish, err := s.periodFinish.Get()
	if err != nil {
		return nil, err
	}
	if now < finish {
		rate, err := s.rewardRate.Get()
		if err != nil {
			return nil, err
		}
		leftover := new(big.Int).SetUint64(finish - now)
		reward.Add(reward, leftover.Mul(leftover, rate))
	}

	rate := reward.Div(reward, new(big.Int).SetUint64(duration))
	if err := s.rewardRate.Set(rate); err != nil {
		return nil, err
	}
	s.periodFinish.Set(now + duration)
	s.rewardsDuration.Set(duration)
	s.lastUpdateTime.Set(now)
	return rate, nil
}

// TopUp adds reward to the configured cycle without moving its end time.
// On an active cycle the remaining emission window is kept and the rate
// rescaled; on an expired one a fresh window of the nominal duration is
// opened with no leftover to fold in. Idle pools cannot be topped up.
// The caller must settle the accumulator first.
func (s *Service) TopUp(amount *big.Int, now uint64) (*big.Int, error) {
	state, err := s.CycleState(now)
	if err != nil {
		return nil, err
	}

	switch state {
	case CycleIdle:
		return nil, reverts.ErrNoActiveCycle

	case CycleActive:
		finish, err := s.periodFinish.Get()
		if err != nil {
			return nil, err
		}
		rate, err := s.rewardRate.Get()
		if err != nil {
			return nil, err
		}
		remaining := finish - now
		leftover := new(big.Int).SetUint64(remaining)
		leftover.Mul(leftover, rate)

		newRate := new(big.Int).Add(amount, leftover)
		newRate.Div(newRate, new(big.Int).SetUint64(remaining))
		if err := s.rewardRate.Set(newRate); err != nil {
			return nil, err
		}
		s.lastUpdateTime.Set(now)
		return newRate, nil

	default: // CycleExpired
		duration, err := s.rewardsDuration.Get()
		if err != nil {
			return nil, err
		}
		newRate := new(big.Int).Div(amount, new(big.Int).SetUint64(duration))
		if err := s.rewardRate.Set(newRate); err != nil {
			return nil, err
		}
		s.periodFinish.Set(now + duration)
		s.lastUpdateTime.Set(now)
		return newRate, nil
	}
}

// SetDuration updates the nominal cycle duration. It only takes effect at
// the next rate recomputation, an active cycle keeps its current schedule.
func (s *Service) SetDuration(duration uint64) {
	s.rewardsDuration.Set(duration)
}

// RewardRate returns the current emission rate in minimal units per second.
func (s *Service) RewardRate() (*big.Int, error) {
	return s.rewardRate.Get()
}

// PeriodFinish returns the timestamp the current cycle's rate stops applying.
func (s *Service) PeriodFinish() (uint64, error) {
	return s.periodFinish.Get()
}

// RewardsDuration returns the nominal cycle duration.
func (s *Service) RewardsDuration() (uint64, error) {
	return s.rewardsDuration.Get()
}

// LastUpdateTime returns the timestamp of the last accumulator settlement.
func (s *Service) LastUpdateTime() (uint64, error) {
	return s.lastUpdateTime.Get()
}
