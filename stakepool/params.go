// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakepool

import "math/big"

// Constants of the pool.
const (
	// TokenDecimals decimal places of the base asset.
	TokenDecimals = 18

	// InitialRewardsDuration nominal funding cycle length applied when none configured (seconds).
	InitialRewardsDuration uint64 = 60 * 60 * 24 * 7

	// InitialClaimLockDuration waiting period between unstaking and principal release (seconds).
	InitialClaimLockDuration uint64 = 60 * 60 * 24 * 30
)

var (
	// RewardScale fixed-point scale factor for per-unit reward values.
	RewardScale = big.NewInt(1e18)

	// TokenUnit amount of minimal units that make one token.
	TokenUnit = big.NewInt(1e18)
)
