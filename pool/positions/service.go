// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package positions tracks per-staker accounts: staked balance, the
// accumulator mark the account was last settled at, and settled reward.
package positions

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/stakepool/pool/reverts"
	"github.com/vechain/stakepool/slot"
	"github.com/vechain/stakepool/stakepool"
)

var (
	slotAccounts    = stakepool.BytesToBytes32([]byte("accounts"))
	slotTotalStaked = stakepool.BytesToBytes32([]byte("total-staked"))
)

// Service manages staker accounts and the total staked supply.
type Service struct {
	accounts    *slot.Mapping[stakepool.Address, *Account]
	totalStaked *slot.Uint256
}

func New(context *slot.Context) *Service {
	return &Service{
		accounts:    slot.NewMapping[stakepool.Address, *Account](context, slotAccounts),
		totalStaked: slot.NewUint256(context, slotTotalStaked),
	}
}

// GetAccount loads the account of addr, a zero record if absent.
func (s *Service) GetAccount(addr stakepool.Address) (*Account, error) {
	acc, err := s.accounts.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get account")
	}
	return acc.norm(), nil
}

func (s *Service) saveAccount(addr stakepool.Address, acc *Account) error {
	if acc.isEmpty() {
		return s.accounts.Delete(addr)
	}
	return s.accounts.Set(addr, acc)
}

// TotalStaked returns the sum of all staked balances.
func (s *Service) TotalStaked() (*big.Int, error) {
	return s.totalStaked.Get()
}

// BalanceOf returns the staked balance of addr.
func (s *Service) BalanceOf(addr stakepool.Address) (*big.Int, error) {
	acc, err := s.GetAccount(addr)
	if err != nil {
		return nil, err
	}
	return acc.Balance, nil
}

// Earned returns the claimable reward of addr against the given accumulator
// value. Pure read, the account is not settled.
func (s *Service) Earned(addr stakepool.Address, rewardPerToken *big.Int) (*big.Int, error) {
	acc, err := s.GetAccount(addr)
	if err != nil {
		return nil, err
	}
	return acc.earnedAt(rewardPerToken), nil
}

// Settle folds reward accrued since the last settlement into the account's
// stored reward and marks it settled at the given accumulator value.
// Must run before any balance mutation of addr.
func (s *Service) Settle(addr stakepool.Address, rewardPerToken *big.Int) (*Account, error) {
	acc, err := s.GetAccount(addr)
	if err != nil {
		return nil, err
	}
	acc.Reward = acc.earnedAt(rewardPerToken)
	acc.RewardPerTokenPaid = new(big.Int).Set(rewardPerToken)
	if err := s.saveAccount(addr, acc); err != nil {
		return nil, err
	}
	return acc, nil
}

// AddStake increases the staked balance of addr and the total supply.
// The account must already be settled.
func (s *Service) AddStake(addr stakepool.Address, amount *big.Int) error {
	acc, err := s.GetAccount(addr)
	if err != nil {
		return err
	}
	acc.Balance = new(big.Int).Add(acc.Balance, amount)
	if err := s.saveAccount(addr, acc); err != nil {
		return err
	}
	return s.totalStaked.Add(amount)
}

// SubStake decreases the staked balance of addr and the total supply.
// The account must already be settled.
func (s *Service) SubStake(addr stakepool.Address, amount *big.Int) error {
	acc, err := s.GetAccount(addr)
	if err != nil {
		return err
	}
	if acc.Balance.Cmp(amount) < 0 {
		return reverts.ErrInsufficientStake
	}
	acc.Balance = new(big.Int).Sub(acc.Balance, amount)
	if err := s.saveAccount(addr, acc); err != nil {
		return err
	}
	return s.totalStaked.Sub(amount)
}

// Move transfers staked balance between two accounts without touching the
// total supply. Both accounts must already be settled.
func (s *Service) Move(from, to stakepool.Address, amount *big.Int) error {
	fromAcc, err := s.GetAccount(from)
	if err != nil {
		return err
	}
	if fromAcc.Balance.Cmp(amount) < 0 {
		return reverts.ErrInsufficientStake
	}
	fromAcc.Balance = new(big.Int).Sub(fromAcc.Balance, amount)
	if err := s.saveAccount(from, fromAcc); err != nil {
		return err
	}

	toAcc, err := s.GetAccount(to)
	if err != nil {
		return err
	}
	toAcc.Balance = new(big.Int).Add(toAcc.Balance, amount)
	return s.saveAccount(to, toAcc)
}

// TakeReward zeroes the settled reward of addr and returns the taken amount.
// The account must already be settled.
func (s *Service) TakeReward(addr stakepool.Address) (*big.Int, error) {
	acc, err := s.GetAccount(addr)
	if err != nil {
		return nil, err
	}
	taken := acc.Reward
	acc.Reward = new(big.Int)
	if err := s.saveAccount(addr, acc); err != nil {
		return nil, err
	}
	return taken, nil
}
