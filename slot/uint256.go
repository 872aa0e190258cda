// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slot

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/stakepool/stakepool"
)

// Uint256 is a wrapper for storage and retrieval of an unsigned big integer,
// similar to storing an uint256 in a smart contract.
type Uint256 struct {
	context *Context
	pos     stakepool.Bytes32
}

func NewUint256(context *Context, pos stakepool.Bytes32) *Uint256 {
	return &Uint256{context: context, pos: pos}
}

func (u *Uint256) Get() (*big.Int, error) {
	storage, err := u.context.state.GetStorage(u.context.address, u.pos)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(storage.Bytes()), nil
}

// Set stores value into the slot.
// Values exceeding 256 bits are treated as fatal, truncating to fit
// stakepool.Bytes32 would corrupt the slot.
func (u *Uint256) Set(value *big.Int) error {
	if value.BitLen() > 256 {
		return errors.New("uint256 slot overflow")
	}
	u.context.state.SetStorage(u.context.address, u.pos, stakepool.BytesToBytes32(value.Bytes()))
	return nil
}

func (u *Uint256) Add(value *big.Int) error {
	stored, err := u.Get()
	if err != nil {
		return err
	}
	return u.Set(stored.Add(stored, value))
}

// Sub subtracts value from the stored one.
// Underflow below zero is treated as fatal, it would corrupt the slot.
func (u *Uint256) Sub(value *big.Int) error {
	stored, err := u.Get()
	if err != nil {
		return err
	}
	stored.Sub(stored, value)
	if stored.Sign() < 0 {
		return errors.New("uint256 slot underflow")
	}
	return u.Set(stored)
}
