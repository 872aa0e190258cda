// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reverts defines the guard conditions that reject a pool operation
// without any state change. Each condition is a distinct value so callers
// can discriminate, e.g. "not yet claimable" from "nothing to claim".
package reverts

import "errors"

// GuardError marks an operation rejected by a precondition check.
type GuardError struct {
	message string
}

func (e *GuardError) Error() string {
	return e.message
}

// New creates a guard error with the given message.
func New(message string) *GuardError {
	return &GuardError{message: message}
}

var (
	// ErrPaused mutation attempted while the pool is paused.
	ErrPaused = New("paused")

	// ErrZeroAmount zero or missing amount argument.
	ErrZeroAmount = New("amount must be positive")

	// ErrZeroDuration zero or missing duration argument.
	ErrZeroDuration = New("duration must be positive")

	// ErrInsufficientStake staked balance too low for transfer or unstake.
	ErrInsufficientStake = New("insufficient staked balance")

	// ErrNothingToClaim withdrawal requested with no pending principal.
	ErrNothingToClaim = New("nothing to claim")

	// ErrNotYetClaimable withdrawal requested before the unlock time.
	ErrNotYetClaimable = New("not yet claimable")

	// ErrNoActiveCycle top-up requested before any reward cycle was started.
	ErrNoActiveCycle = New("no reward cycle started")

	// ErrNotPaused unpause requested while the pool is running.
	ErrNotPaused = New("not paused")

	// ErrRewardTooHigh the requested emission rate exceeds the funded reward balance.
	ErrRewardTooHigh = New("provided reward too high")
)

// IsGuard reports whether err is a guard condition, as opposed to a state
// access failure.
func IsGuard(err error) bool {
	var guard *GuardError
	return errors.As(err, &guard)
}
