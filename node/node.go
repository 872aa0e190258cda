// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package node hosts a pool over a persistent state. It serializes all
// operations behind one mutex, stamps each with a monotonic clock reading
// and commits the state after every successful mutation, so a crash never
// loses an acknowledged operation.
package node

import (
	"math/big"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/vechain/stakepool/log"
	"github.com/vechain/stakepool/pool"
	"github.com/vechain/stakepool/pool/locks"
	"github.com/vechain/stakepool/stakepool"
	"github.com/vechain/stakepool/state"
)

var logger = log.WithContext("pkg", "node")

// Clock reports the current time in unix seconds.
type Clock func() uint64

// Node serializes pool operations and persists each successful one.
type Node struct {
	mu        sync.Mutex
	pool      *pool.Pool
	state     *state.State
	clock     Clock
	authority stakepool.Address
	lastNow   uint64
}

// Options collects the node's wiring.
type Options struct {
	// Authority is the only account accepted for admin operations.
	Authority stakepool.Address
	// Clock overrides the wall clock, mainly for tests.
	Clock Clock
}

func New(p *pool.Pool, st *state.State, opts Options) *Node {
	clock := opts.Clock
	if clock == nil {
		clock = func() uint64 { return uint64(time.Now().Unix()) }
	}
	return &Node{
		pool:      p,
		state:     st,
		clock:     clock,
		authority: opts.Authority,
	}
}

// Authority returns the admin account.
func (n *Node) Authority() stakepool.Address {
	return n.authority
}

// now reads the clock, clamped to never run backwards. Reward accounting
// assumes a non-decreasing timeline.
func (n *Node) now() uint64 {
	t := n.clock()
	if t < n.lastNow {
		t = n.lastNow
	}
	n.lastNow = t
	return t
}

// run executes a mutation and commits the state on success.
func (n *Node) run(fn func(now uint64) error) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if err := fn(n.now()); err != nil {
		return err
	}
	if err := n.state.Commit(); err != nil {
		logger.Error("state commit failed", "err", err)
		return errors.Wrap(err, "failed to commit state")
	}
	return nil
}

func (n *Node) Stake(staker stakepool.Address, amount *big.Int) error {
	return n.run(func(now uint64) error {
		return n.pool.Stake(staker, amount, now)
	})
}

func (n *Node) Transfer(from, to stakepool.Address, amount *big.Int) error {
	return n.run(func(now uint64) error {
		return n.pool.Transfer(from, to, amount, now)
	})
}

func (n *Node) Unstake(staker stakepool.Address, amount *big.Int) error {
	return n.run(func(now uint64) error {
		return n.pool.Unstake(staker, amount, now)
	})
}

func (n *Node) Withdraw(staker stakepool.Address) (amount *big.Int, err error) {
	err = n.run(func(now uint64) error {
		amount, err = n.pool.Withdraw(staker, now)
		return err
	})
	return
}

func (n *Node) GetReward(staker stakepool.Address) (reward *big.Int, err error) {
	err = n.run(func(now uint64) error {
		reward, err = n.pool.GetReward(staker, now)
		return err
	})
	return
}

func (n *Node) AddRewardCycle(amount *big.Int, duration uint64) error {
	return n.run(func(now uint64) error {
		return n.pool.AddRewardCycle(amount, duration, now)
	})
}

func (n *Node) AddRewardAmount(amount *big.Int) error {
	return n.run(func(now uint64) error {
		return n.pool.AddRewardAmount(amount, now)
	})
}

func (n *Node) SetRewardsDuration(duration uint64) error {
	return n.run(func(uint64) error {
		return n.pool.SetRewardsDuration(duration)
	})
}

func (n *Node) SetClaimDuration(duration uint64) error {
	return n.run(func(uint64) error {
		return n.pool.SetClaimDuration(duration)
	})
}

func (n *Node) Pause() error {
	return n.run(func(uint64) error {
		return n.pool.Pause()
	})
}

func (n *Node) Unpause() error {
	return n.run(func(uint64) error {
		return n.pool.Unpause()
	})
}

func (n *Node) Earned(staker stakepool.Address) (*big.Int, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.pool.Earned(staker, n.now())
}

func (n *Node) BalanceOf(staker stakepool.Address) (*big.Int, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.pool.BalanceOf(staker)
}

func (n *Node) PendingWithdrawal(staker stakepool.Address) (*locks.Withdrawal, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.pool.PendingWithdrawal(staker)
}

func (n *Node) Status() (*pool.Status, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.pool.Status(n.now())
}
