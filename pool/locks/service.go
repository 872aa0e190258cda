// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package locks manages pending withdrawals: stake released from the pool
// sits here under a time lock before it can be claimed back.
package locks

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/stakepool/pool/reverts"
	"github.com/vechain/stakepool/slot"
	"github.com/vechain/stakepool/stakepool"
)

var (
	slotWithdrawals       = stakepool.BytesToBytes32([]byte("withdrawals"))
	slotClaimLockDuration = stakepool.BytesToBytes32([]byte("claim-lock-duration"))
)

// Withdrawal is a stored pending withdrawal.
type Withdrawal struct {
	// Amount is the locked stake in minimal units.
	Amount *big.Int
	// UnlockTime is the timestamp the amount becomes claimable at.
	UnlockTime uint64
}

func (w *Withdrawal) norm() *Withdrawal {
	if w.Amount == nil {
		w.Amount = new(big.Int)
	}
	return w
}

// Service manages the withdrawal time locks.
type Service struct {
	withdrawals  *slot.Mapping[stakepool.Address, *Withdrawal]
	lockDuration *slot.Uint64
}

func New(context *slot.Context) *Service {
	return &Service{
		withdrawals:  slot.NewMapping[stakepool.Address, *Withdrawal](context, slotWithdrawals),
		lockDuration: slot.NewUint64(context, slotClaimLockDuration),
	}
}

// Pending returns the pending withdrawal of addr, a zero record if none.
func (s *Service) Pending(addr stakepool.Address) (*Withdrawal, error) {
	w, err := s.withdrawals.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get withdrawal")
	}
	return w.norm(), nil
}

// Lock adds amount to the pending withdrawal of addr. A lock on top of an
// existing one merges the amounts and restarts the timer for the whole sum.
func (s *Service) Lock(addr stakepool.Address, amount *big.Int, now uint64) (*Withdrawal, error) {
	w, err := s.Pending(addr)
	if err != nil {
		return nil, err
	}
	duration, err := s.lockDuration.Get()
	if err != nil {
		return nil, err
	}
	w.Amount = new(big.Int).Add(w.Amount, amount)
	w.UnlockTime = now + duration
	if err := s.withdrawals.Set(addr, w); err != nil {
		return nil, err
	}
	return w, nil
}

// Release claims the pending withdrawal of addr, clearing the record and
// returning the unlocked amount.
func (s *Service) Release(addr stakepool.Address, now uint64) (*big.Int, error) {
	w, err := s.Pending(addr)
	if err != nil {
		return nil, err
	}
	if w.Amount.Sign() == 0 {
		return nil, reverts.ErrNothingToClaim
	}
	if now < w.UnlockTime {
		return nil, reverts.ErrNotYetClaimable
	}
	if err := s.withdrawals.Delete(addr); err != nil {
		return nil, err
	}
	return w.Amount, nil
}

// LockDuration returns the configured time lock duration.
func (s *Service) LockDuration() (uint64, error) {
	return s.lockDuration.Get()
}

// SetLockDuration updates the time lock duration. Already pending
// withdrawals keep the unlock time they were locked with.
func (s *Service) SetLockDuration(duration uint64) {
	s.lockDuration.Set(duration)
}
