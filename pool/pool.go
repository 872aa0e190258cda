// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package pool implements the staking reward distribution ledger. Stakers
// deposit the staking token, a funded reward cycle emits the rewards token
// at a fixed rate, and each staker's share accrues in O(1) through a
// cumulative reward-per-staked-unit accumulator. Unstaked principal passes
// through a withdrawal time lock before it can be claimed back.
//
// Every mutating operation settles the global accumulator and the touched
// accounts before changing any balance, and runs under a state checkpoint
// so a guard failure leaves no partial writes behind.
package pool

import (
	"math/big"

	"github.com/vechain/stakepool/log"
	"github.com/vechain/stakepool/pool/accrual"
	"github.com/vechain/stakepool/pool/locks"
	"github.com/vechain/stakepool/pool/positions"
	"github.com/vechain/stakepool/pool/reverts"
	"github.com/vechain/stakepool/slot"
	"github.com/vechain/stakepool/stakepool"
	"github.com/vechain/stakepool/state"
	"github.com/vechain/stakepool/token"
)

var (
	logger = log.WithContext("pkg", "pool")

	slotPaused = stakepool.BytesToBytes32([]byte("paused"))
)

// Config collects the pool's wiring.
type Config struct {
	// Address is the pool's reserve account. Staked principal and funded
	// reward sit on this address, and all pool storage hangs off it.
	Address stakepool.Address

	// StakingToken is the ledger principal is staked in.
	StakingToken token.Ledger

	// RewardsToken is the ledger rewards are paid out in. May be the same
	// ledger as StakingToken.
	RewardsToken token.Ledger

	// PauseBlocksClaims extends the pause gate to reward claims,
	// withdrawals and stake transfers. By default pausing only blocks
	// stake and unstake.
	PauseBlocksClaims bool
}

// Status is a read-only snapshot of the pool.
type Status struct {
	TotalStaked       *big.Int
	RewardPerToken    *big.Int
	RewardRate        *big.Int
	PeriodFinish      uint64
	RewardsDuration   uint64
	ClaimLockDuration uint64
	CycleState        accrual.CycleState
	Paused            bool
}

// Pool is the staking reward distribution ledger.
type Pool struct {
	cfg       Config
	state     *state.State
	accrual   *accrual.Service
	positions *positions.Service
	locks     *locks.Service
	paused    *slot.Bool
}

// New creates a pool over the given state.
func New(st *state.State, cfg Config) *Pool {
	context := slot.NewContext(cfg.Address, st)
	return &Pool{
		cfg:       cfg,
		state:     st,
		accrual:   accrual.New(context),
		positions: positions.New(context),
		locks:     locks.New(context),
		paused:    slot.NewBool(context, slotPaused),
	}
}

// Init writes the pool's initial parameters. Meant to run once against an
// empty state.
func (p *Pool) Init(rewardsDuration, claimLockDuration uint64) {
	p.accrual.SetDuration(rewardsDuration)
	p.locks.SetLockDuration(claimLockDuration)
}

// mutate runs fn under a state checkpoint, reverting every write on error.
func (p *Pool) mutate(fn func() error) error {
	checkpoint := p.state.NewCheckpoint()
	if err := fn(); err != nil {
		p.state.RevertTo(checkpoint)
		return err
	}
	return nil
}

// settle folds pending reward into the global accumulator and then into the
// given account, returning the settled account. Must precede any balance
// mutation of addr.
func (p *Pool) settle(addr stakepool.Address, now uint64) (*positions.Account, error) {
	rpt, err := p.settleGlobal(now)
	if err != nil {
		return nil, err
	}
	return p.positions.Settle(addr, rpt)
}

func (p *Pool) settleGlobal(now uint64) (*big.Int, error) {
	total, err := p.positions.TotalStaked()
	if err != nil {
		return nil, err
	}
	return p.accrual.Settle(now, total)
}

func (p *Pool) checkNotPaused() error {
	paused, err := p.paused.Get()
	if err != nil {
		return err
	}
	if paused {
		return reverts.ErrPaused
	}
	return nil
}

// checkClaimGate is the pause gate for claim-side operations and stake
// transfers, which only bites when configured to.
func (p *Pool) checkClaimGate() error {
	if !p.cfg.PauseBlocksClaims {
		return nil
	}
	return p.checkNotPaused()
}

func checkAmount(amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return reverts.ErrZeroAmount
	}
	return nil
}

// Stake moves amount of the staking token from staker into the pool's
// reserve and credits the staked balance.
func (p *Pool) Stake(staker stakepool.Address, amount *big.Int, now uint64) (err error) {
	defer func() { countOp("stake", err) }()

	if err = p.checkNotPaused(); err != nil {
		return err
	}
	if err = checkAmount(amount); err != nil {
		return err
	}
	err = p.mutate(func() error {
		if _, err := p.settle(staker, now); err != nil {
			return err
		}
		if err := p.cfg.StakingToken.Transfer(staker, p.cfg.Address, amount); err != nil {
			return err
		}
		return p.positions.AddStake(staker, amount)
	})
	if err != nil {
		return err
	}

	p.gaugeTotalStaked()
	logger.Debug("staked", "staker", staker, "amount", amount)
	return nil
}

// Transfer moves staked balance from one staker to another. Both positions
// are settled first so accrued reward stays with its earner.
func (p *Pool) Transfer(from, to stakepool.Address, amount *big.Int, now uint64) (err error) {
	defer func() { countOp("transfer", err) }()

	if err = p.checkClaimGate(); err != nil {
		return err
	}
	if err = checkAmount(amount); err != nil {
		return err
	}
	err = p.mutate(func() error {
		rpt, err := p.settleGlobal(now)
		if err != nil {
			return err
		}
		if _, err := p.positions.Settle(from, rpt); err != nil {
			return err
		}
		if _, err := p.positions.Settle(to, rpt); err != nil {
			return err
		}
		return p.positions.Move(from, to, amount)
	})
	if err != nil {
		return err
	}

	logger.Debug("stake transferred", "from", from, "to", to, "amount", amount)
	return nil
}

// Unstake removes amount from the staked balance and locks it as a pending
// withdrawal. Principal stays in the reserve until withdrawn; unstaking on
// top of a pending withdrawal merges the amounts and restarts the lock.
func (p *Pool) Unstake(staker stakepool.Address, amount *big.Int, now uint64) (err error) {
	defer func() { countOp("unstake", err) }()

	if err = p.checkNotPaused(); err != nil {
		return err
	}
	if err = checkAmount(amount); err != nil {
		return err
	}

	var unlockTime uint64
	err = p.mutate(func() error {
		if _, err := p.settle(staker, now); err != nil {
			return err
		}
		if err := p.positions.SubStake(staker, amount); err != nil {
			return err
		}
		w, err := p.locks.Lock(staker, amount, now)
		if err != nil {
			return err
		}
		unlockTime = w.UnlockTime
		return nil
	})
	if err != nil {
		return err
	}

	p.gaugeTotalStaked()
	logger.Debug("unstaked", "staker", staker, "amount", amount, "unlockTime", unlockTime)
	return nil
}

// Withdraw claims the staker's pending withdrawal after its time lock and
// transfers the principal back. Returns the withdrawn amount.
func (p *Pool) Withdraw(staker stakepool.Address, now uint64) (amount *big.Int, err error) {
	defer func() { countOp("withdraw", err) }()

	if err = p.checkClaimGate(); err != nil {
		return nil, err
	}
	err = p.mutate(func() error {
		released, err := p.locks.Release(staker, now)
		if err != nil {
			return err
		}
		if err := p.cfg.StakingToken.Transfer(p.cfg.Address, staker, released); err != nil {
			return err
		}
		amount = released
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("withdrawn", "staker", staker, "amount", amount)
	return amount, nil
}

// GetReward settles and pays out the staker's accrued reward, returning the
// paid amount. With nothing accrued it is a no-op returning zero.
func (p *Pool) GetReward(staker stakepool.Address, now uint64) (reward *big.Int, err error) {
	defer func() { countOp("getReward", err) }()

	if err = p.checkClaimGate(); err != nil {
		return nil, err
	}
	err = p.mutate(func() error {
		if _, err := p.settle(staker, now); err != nil {
			return err
		}
		taken, err := p.positions.TakeReward(staker)
		if err != nil {
			return err
		}
		if taken.Sign() > 0 {
			if err := p.cfg.RewardsToken.Transfer(p.cfg.Address, staker, taken); err != nil {
				return err
			}
		}
		reward = taken
		return nil
	})
	if err != nil {
		return nil, err
	}

	if reward.Sign() > 0 {
		logger.Debug("reward paid", "staker", staker, "amount", reward)
	}
	return reward, nil
}

// Earned returns the staker's claimable reward at the given time without
// settling anything.
func (p *Pool) Earned(staker stakepool.Address, now uint64) (*big.Int, error) {
	total, err := p.positions.TotalStaked()
	if err != nil {
		return nil, err
	}
	rpt, err := p.accrual.RewardPerToken(now, total)
	if err != nil {
		return nil, err
	}
	return p.positions.Earned(staker, rpt)
}

// BalanceOf returns the staked balance of staker.
func (p *Pool) BalanceOf(staker stakepool.Address) (*big.Int, error) {
	return p.positions.BalanceOf(staker)
}

// TotalStaked returns the sum of all staked balances.
func (p *Pool) TotalStaked() (*big.Int, error) {
	return p.positions.TotalStaked()
}

// PendingWithdrawal returns the staker's pending withdrawal, a zero record
// if none.
func (p *Pool) PendingWithdrawal(staker stakepool.Address) (*locks.Withdrawal, error) {
	return p.locks.Pending(staker)
}

// AddRewardCycle starts a new reward cycle emitting amount over duration.
// Reward left over from a still-active cycle folds into the new rate. The
// resulting rate must be covered by the reserve's rewards balance.
func (p *Pool) AddRewardCycle(amount *big.Int, duration, now uint64) (err error) {
	defer func() { countOp("addRewardCycle", err) }()

	if err = checkAmount(amount); err != nil {
		return err
	}
	if duration == 0 {
		return reverts.ErrZeroDuration
	}

	var rate *big.Int
	err = p.mutate(func() error {
		if _, err := p.settleGlobal(now); err != nil {
			return err
		}
		newRate, err := p.accrual.StartCycle(amount, duration, now)
		if err != nil {
			return err
		}
		if err := p.checkRateFunded(newRate, duration); err != nil {
			return err
		}
		rate = newRate
		return nil
	})
	if err != nil {
		return err
	}

	p.gaugeRewardRate(rate)
	logger.Info("reward cycle started", "amount", amount, "duration", duration, "rate", rate)
	return nil
}

// AddRewardAmount adds reward to the current cycle. An active cycle keeps
// its end time and rescales the rate over the remaining window; an expired
// one restarts with the nominal duration. Fails before the first cycle.
func (p *Pool) AddRewardAmount(amount *big.Int, now uint64) (err error) {
	defer func() { countOp("addRewardAmount", err) }()

	if err = checkAmount(amount); err != nil {
		return err
	}

	var rate *big.Int
	err = p.mutate(func() error {
		if _, err := p.settleGlobal(now); err != nil {
			return err
		}
		newRate, err := p.accrual.TopUp(amount, now)
		if err != nil {
			return err
		}
		finish, err := p.accrual.PeriodFinish()
		if err != nil {
			return err
		}
		if err := p.checkRateFunded(newRate, finish-now); err != nil {
			return err
		}
		rate = newRate
		return nil
	})
	if err != nil {
		return err
	}

	p.gaugeRewardRate(rate)
	logger.Info("reward cycle topped up", "amount", amount, "rate", rate)
	return nil
}

// checkRateFunded guards against committing to an emission the reserve
// cannot pay for.
func (p *Pool) checkRateFunded(rate *big.Int, window uint64) error {
	balance, err := p.cfg.RewardsToken.BalanceOf(p.cfg.Address)
	if err != nil {
		return err
	}
	need := new(big.Int).SetUint64(window)
	need.Mul(need, rate)
	if need.Cmp(balance) > 0 {
		return reverts.ErrRewardTooHigh
	}
	return nil
}

// SetRewardsDuration updates the nominal cycle duration used by future rate
// recomputations. The current cycle keeps its schedule.
func (p *Pool) SetRewardsDuration(duration uint64) (err error) {
	defer func() { countOp("setRewardsDuration", err) }()

	if duration == 0 {
		return reverts.ErrZeroDuration
	}
	p.accrual.SetDuration(duration)
	logger.Info("rewards duration updated", "duration", duration)
	return nil
}

// SetClaimDuration updates the withdrawal time lock. Zero disables the
// lock for future unstakes; pending withdrawals keep their unlock time.
func (p *Pool) SetClaimDuration(duration uint64) (err error) {
	defer func() { countOp("setClaimDuration", err) }()

	p.locks.SetLockDuration(duration)
	logger.Info("claim lock duration updated", "duration", duration)
	return nil
}

// Pause stops stake and unstake (and claims, when so configured).
func (p *Pool) Pause() (err error) {
	defer func() { countOp("pause", err) }()

	paused, err := p.paused.Get()
	if err != nil {
		return err
	}
	if paused {
		return reverts.ErrPaused
	}
	p.paused.Set(true)
	logger.Info("pool paused")
	return nil
}

// Unpause resumes a paused pool.
func (p *Pool) Unpause() (err error) {
	defer func() { countOp("unpause", err) }()

	paused, err := p.paused.Get()
	if err != nil {
		return err
	}
	if !paused {
		return reverts.ErrNotPaused
	}
	p.paused.Set(false)
	logger.Info("pool unpaused")
	return nil
}

// Paused reports the pause flag.
func (p *Pool) Paused() (bool, error) {
	return p.paused.Get()
}

// ClaimDuration returns the configured withdrawal time lock.
func (p *Pool) ClaimDuration() (uint64, error) {
	return p.locks.LockDuration()
}

// Status snapshots the pool at the given time.
func (p *Pool) Status(now uint64) (*Status, error) {
	total, err := p.positions.TotalStaked()
	if err != nil {
		return nil, err
	}
	rpt, err := p.accrual.RewardPerToken(now, total)
	if err != nil {
		return nil, err
	}
	rate, err := p.accrual.RewardRate()
	if err != nil {
		return nil, err
	}
	finish, err := p.accrual.PeriodFinish()
	if err != nil {
		return nil, err
	}
	duration, err := p.accrual.RewardsDuration()
	if err != nil {
		return nil, err
	}
	lock, err := p.locks.LockDuration()
	if err != nil {
		return nil, err
	}
	cycle, err := p.accrual.CycleState(now)
	if err != nil {
		return nil, err
	}
	paused, err := p.paused.Get()
	if err != nil {
		return nil, err
	}
	return &Status{
		TotalStaked:       total,
		RewardPerToken:    rpt,
		RewardRate:        rate,
		PeriodFinish:      finish,
		RewardsDuration:   duration,
		ClaimLockDuration: lock,
		CycleState:        cycle,
		Paused:            paused,
	}, nil
}

func (p *Pool) gaugeTotalStaked() {
	if total, err := p.positions.TotalStaked(); err == nil {
		metricTotalStaked().Set(new(big.Int).Div(total, stakepool.TokenUnit).Int64())
	}
}

func (p *Pool) gaugeRewardRate(rate *big.Int) {
	if rate.IsInt64() {
		metricRewardRate().Set(rate.Int64())
	}
}
