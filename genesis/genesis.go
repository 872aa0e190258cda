// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis builds the initial pool state from a JSON spec: token
// ledgers with their opening balances, the pool parameters, and the
// authority allowed to run admin operations.
package genesis

import (
	"encoding/json"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/stakepool"
	"github.com/vechain/stakepool/state"
	"github.com/vechain/stakepool/token"
)

// Config is the genesis spec of a pool instance.
type Config struct {
	// PoolAddress is the reserve account all pool storage and custody hangs off.
	PoolAddress *stakepool.Address `json:"poolAddress"`

	// Authority is the only account accepted for admin operations.
	Authority *stakepool.Address `json:"authority"`

	// StakingToken is the ledger principal is staked in.
	StakingToken TokenSpec `json:"stakingToken"`

	// RewardsToken is the ledger rewards are paid in. Omitted means rewards
	// are paid in the staking token.
	RewardsToken *TokenSpec `json:"rewardsToken,omitempty"`

	// RewardsDuration is the nominal funding cycle length in seconds.
	// Defaults to a week.
	RewardsDuration uint64 `json:"rewardsDuration,omitempty"`

	// ClaimLockDuration is the withdrawal time lock in seconds. Defaults to
	// thirty days.
	ClaimLockDuration uint64 `json:"claimLockDuration,omitempty"`

	// PauseBlocksClaims extends the pause gate to claims and withdrawals.
	PauseBlocksClaims bool `json:"pauseBlocksClaims,omitempty"`
}

// TokenSpec is a token ledger with its opening balances.
type TokenSpec struct {
	Address     *stakepool.Address `json:"address"`
	Allocations []Allocation       `json:"allocations,omitempty"`
}

// Allocation is an opening balance of one account.
type Allocation struct {
	Address stakepool.Address     `json:"address"`
	Balance *math.HexOrDecimal256 `json:"balance"`
}

// Parse reads and validates a genesis spec.
func Parse(r io.Reader) (*Config, error) {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	var config Config
	if err := decoder.Decode(&config); err != nil {
		return nil, errors.Wrap(err, "failed to decode genesis spec")
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	config.applyDefaults()
	return &config, nil
}

func (c *Config) validate() error {
	if c.PoolAddress == nil || c.PoolAddress.IsZero() {
		return errors.New("genesis: poolAddress is required")
	}
	if c.Authority == nil || c.Authority.IsZero() {
		return errors.New("genesis: authority is required")
	}
	if err := c.StakingToken.validate("stakingToken"); err != nil {
		return err
	}
	if c.RewardsToken != nil {
		if err := c.RewardsToken.validate("rewardsToken"); err != nil {
			return err
		}
	}
	return nil
}

func (s *TokenSpec) validate(name string) error {
	if s.Address == nil || s.Address.IsZero() {
		return errors.Errorf("genesis: %s.address is required", name)
	}
	for _, alloc := range s.Allocations {
		if alloc.Balance == nil || (*big.Int)(alloc.Balance).Sign() < 0 {
			return errors.Errorf("genesis: %s allocation of %v needs a non-negative balance", name, alloc.Address)
		}
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.RewardsDuration == 0 {
		c.RewardsDuration = stakepool.InitialRewardsDuration
	}
	if c.ClaimLockDuration == 0 {
		c.ClaimLockDuration = stakepool.InitialClaimLockDuration
	}
}

// RewardsTokenAddress returns the rewards ledger address, which falls back
// to the staking ledger when no separate one is configured.
func (c *Config) RewardsTokenAddress() stakepool.Address {
	if c.RewardsToken != nil {
		return *c.RewardsToken.Address
	}
	return *c.StakingToken.Address
}

// Build mints the opening balances into the given state. The caller commits.
func (c *Config) Build(st *state.State) error {
	if err := mint(token.New(*c.StakingToken.Address, st), c.StakingToken.Allocations); err != nil {
		return errors.Wrap(err, "failed to build staking token")
	}
	if c.RewardsToken != nil {
		if err := mint(token.New(*c.RewardsToken.Address, st), c.RewardsToken.Allocations); err != nil {
			return errors.Wrap(err, "failed to build rewards token")
		}
	}
	return nil
}

func mint(ledger *token.Token, allocations []Allocation) error {
	for _, alloc := range allocations {
		if err := ledger.Mint(alloc.Address, (*big.Int)(alloc.Balance)); err != nil {
			return err
		}
	}
	return nil
}
