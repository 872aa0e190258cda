// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/stakepool/pool"
	"github.com/vechain/stakepool/pool/locks"
	"github.com/vechain/stakepool/stakepool"
)

// StakeRequest moves tokens from the staker into the pool.
type StakeRequest struct {
	Staker *stakepool.Address    `json:"staker"`
	Amount *math.HexOrDecimal256 `json:"amount"`
}

// TransferRequest moves staked balance between stakers.
type TransferRequest struct {
	From   *stakepool.Address    `json:"from"`
	To     *stakepool.Address    `json:"to"`
	Amount *math.HexOrDecimal256 `json:"amount"`
}

// StakerRequest names the staker an operation acts for.
type StakerRequest struct {
	Staker *stakepool.Address `json:"staker"`
}

// CycleRequest starts a new reward cycle.
type CycleRequest struct {
	Caller   *stakepool.Address    `json:"caller"`
	Amount   *math.HexOrDecimal256 `json:"amount"`
	Duration uint64                `json:"duration"`
}

// TopUpRequest adds reward to the current cycle.
type TopUpRequest struct {
	Caller *stakepool.Address    `json:"caller"`
	Amount *math.HexOrDecimal256 `json:"amount"`
}

// DurationRequest updates one of the pool durations.
type DurationRequest struct {
	Caller   *stakepool.Address `json:"caller"`
	Duration uint64             `json:"duration"`
}

// CallerRequest names the admin account an operation is run by.
type CallerRequest struct {
	Caller *stakepool.Address `json:"caller"`
}

// Staker is the view of one staker's position.
type Staker struct {
	Address           stakepool.Address     `json:"address"`
	Balance           *math.HexOrDecimal256 `json:"balance"`
	Earned            *math.HexOrDecimal256 `json:"earned"`
	PendingWithdrawal *Withdrawal           `json:"pendingWithdrawal,omitempty"`
}

// Withdrawal is the view of a pending withdrawal.
type Withdrawal struct {
	Amount     *math.HexOrDecimal256 `json:"amount"`
	UnlockTime uint64                `json:"unlockTime"`
}

// Status is the view of the pool's global state.
type Status struct {
	TotalStaked       *math.HexOrDecimal256 `json:"totalStaked"`
	RewardPerToken    *math.HexOrDecimal256 `json:"rewardPerToken"`
	RewardRate        *math.HexOrDecimal256 `json:"rewardRate"`
	PeriodFinish      uint64                `json:"periodFinish"`
	RewardsDuration   uint64                `json:"rewardsDuration"`
	ClaimLockDuration uint64                `json:"claimLockDuration"`
	CycleState        string                `json:"cycleState"`
	Paused            bool                  `json:"paused"`
}

func convertStatus(status *pool.Status) *Status {
	return &Status{
		TotalStaked:       (*math.HexOrDecimal256)(status.TotalStaked),
		RewardPerToken:    (*math.HexOrDecimal256)(status.RewardPerToken),
		RewardRate:        (*math.HexOrDecimal256)(status.RewardRate),
		PeriodFinish:      status.PeriodFinish,
		RewardsDuration:   status.RewardsDuration,
		ClaimLockDuration: status.ClaimLockDuration,
		CycleState:        status.CycleState.String(),
		Paused:            status.Paused,
	}
}

func convertWithdrawal(w *locks.Withdrawal) *Withdrawal {
	if w.Amount.Sign() == 0 {
		return nil
	}
	return &Withdrawal{
		Amount:     (*math.HexOrDecimal256)(w.Amount),
		UnlockTime: w.UnlockTime,
	}
}

func amountOf(amount *math.HexOrDecimal256) *big.Int {
	if amount == nil {
		return nil
	}
	return (*big.Int)(amount)
}
