// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slot

import (
	"math/big"

	"github.com/vechain/stakepool/stakepool"
)

// Uint64 is a wrapper for storage and retrieval of an uint64 value,
// typically timestamps and durations.
type Uint64 struct {
	context *Context
	pos     stakepool.Bytes32
}

func NewUint64(context *Context, pos stakepool.Bytes32) *Uint64 {
	return &Uint64{context: context, pos: pos}
}

func (u *Uint64) Get() (uint64, error) {
	storage, err := u.context.state.GetStorage(u.context.address, u.pos)
	if err != nil {
		return 0, err
	}
	return new(big.Int).SetBytes(storage.Bytes()).Uint64(), nil
}

func (u *Uint64) Set(value uint64) {
	u.context.state.SetStorage(
		u.context.address,
		u.pos,
		stakepool.BytesToBytes32(new(big.Int).SetUint64(value).Bytes()),
	)
}
