// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/stakepool/slot"
	"github.com/vechain/stakepool/stakepool"
	"github.com/vechain/stakepool/state"
)

// ErrInsufficientBalance is returned when a transfer exceeds the sender balance.
var ErrInsufficientBalance = errors.New("insufficient token balance")

// Ledger is the fungible base-asset ledger the pool moves principal and
// rewards on. Implementations must apply a transfer atomically, or fail it
// without effect.
type Ledger interface {
	Transfer(from, to stakepool.Address, amount *big.Int) error
	BalanceOf(addr stakepool.Address) (*big.Int, error)
}

var (
	slotBalances    = stakepool.BytesToBytes32([]byte("balances"))
	slotTotalSupply = stakepool.BytesToBytes32([]byte("total-supply"))
)

// Token implements Ledger on the world state.
type Token struct {
	balances    *slot.Mapping[stakepool.Address, *big.Int]
	totalSupply *slot.Uint256
}

var _ Ledger = (*Token)(nil)

// New create a token ledger instance bound to the given component address.
func New(addr stakepool.Address, state *state.State) *Token {
	context := slot.NewContext(addr, state)
	return &Token{
		balances:    slot.NewMapping[stakepool.Address, *big.Int](context, slotBalances),
		totalSupply: slot.NewUint256(context, slotTotalSupply),
	}
}

// BalanceOf returns the token balance of addr.
func (t *Token) BalanceOf(addr stakepool.Address) (*big.Int, error) {
	balance, err := t.balances.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get balance")
	}
	if balance == nil {
		balance = new(big.Int)
	}
	return balance, nil
}

// TotalSupply returns the total amount of tokens ever minted.
func (t *Token) TotalSupply() (*big.Int, error) {
	return t.totalSupply.Get()
}

// Mint credits amount to addr, growing the total supply.
func (t *Token) Mint(addr stakepool.Address, amount *big.Int) error {
	balance, err := t.BalanceOf(addr)
	if err != nil {
		return err
	}
	if err := t.balances.Set(addr, balance.Add(balance, amount)); err != nil {
		return errors.Wrap(err, "failed to set balance")
	}
	return t.totalSupply.Add(amount)
}

// Transfer moves amount from one account to another.
func (t *Token) Transfer(from, to stakepool.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	fromBalance, err := t.BalanceOf(from)
	if err != nil {
		return err
	}
	if fromBalance.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	if from == to {
		return nil
	}
	toBalance, err := t.BalanceOf(to)
	if err != nil {
		return err
	}
	if err := t.balances.Set(from, fromBalance.Sub(fromBalance, amount)); err != nil {
		return errors.Wrap(err, "failed to set balance")
	}
	if err := t.balances.Set(to, toBalance.Add(toBalance, amount)); err != nil {
		return errors.Wrap(err, "failed to set balance")
	}
	return nil
}
