// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package positions

import (
	"math/big"

	"github.com/vechain/stakepool/stakepool"
)

// Account is the stored per-staker position.
type Account struct {
	// Balance is the staked amount in minimal units.
	Balance *big.Int
	// RewardPerTokenPaid is the accumulator value the account was last settled at.
	RewardPerTokenPaid *big.Int
	// Reward is the settled, claimable reward.
	Reward *big.Int
}

// norm replaces nil fields with zero so arithmetic never trips on them.
func (a *Account) norm() *Account {
	if a.Balance == nil {
		a.Balance = new(big.Int)
	}
	if a.RewardPerTokenPaid == nil {
		a.RewardPerTokenPaid = new(big.Int)
	}
	if a.Reward == nil {
		a.Reward = new(big.Int)
	}
	return a
}

// isEmpty reports whether the record carries no information and can be
// dropped from storage.
func (a *Account) isEmpty() bool {
	return a.Balance.Sign() == 0 && a.Reward.Sign() == 0
}

// earnedAt computes the account's total claimable reward against the given
// accumulator value: the settled part plus what the balance accrued since
// the last settlement.
func (a *Account) earnedAt(rewardPerToken *big.Int) *big.Int {
	pending := new(big.Int).Sub(rewardPerToken, a.RewardPerTokenPaid)
	pending.Mul(pending, a.Balance)
	pending.Div(pending, stakepool.RewardScale)
	return pending.Add(pending, a.Reward)
}
