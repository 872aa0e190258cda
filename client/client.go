// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package client provides an HTTP client for the pool node API. It offers
// methods to inspect the pool, move stake, and run admin operations over
// HTTP requests.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/api/accounts"
	poolapi "github.com/vechain/stakepool/api/pool"
	"github.com/vechain/stakepool/stakepool"
)

var ErrNot200Status = errors.New("not 200 status code")

// Client is the HTTP client of a pool node.
type Client struct {
	url string
	c   *http.Client
}

// New creates a new Client with the provided URL.
func New(url string) *Client {
	return NewWithHTTP(url, http.DefaultClient)
}

func NewWithHTTP(url string, c *http.Client) *Client {
	return &Client{
		url: strings.TrimSuffix(url, "/"),
		c:   c,
	}
}

// Status retrieves the pool's global state.
func (c *Client) Status() (*poolapi.Status, error) {
	var status poolapi.Status
	if err := c.httpGET("/pool/status", &status); err != nil {
		return nil, errors.WithMessage(err, "unable to retrieve status")
	}
	return &status, nil
}

// Staker retrieves the position of the given staker.
func (c *Client) Staker(addr stakepool.Address) (*poolapi.Staker, error) {
	var staker poolapi.Staker
	if err := c.httpGET("/pool/stakers/"+addr.String(), &staker); err != nil {
		return nil, errors.WithMessage(err, "unable to retrieve staker")
	}
	return &staker, nil
}

// Balances retrieves the token balances of the given account.
func (c *Client) Balances(addr stakepool.Address) ([]accounts.Balance, error) {
	var balances []accounts.Balance
	if err := c.httpGET("/accounts/"+addr.String(), &balances); err != nil {
		return nil, errors.WithMessage(err, "unable to retrieve balances")
	}
	return balances, nil
}

// Stake deposits amount for the given staker.
func (c *Client) Stake(staker stakepool.Address, amount *big.Int) (*poolapi.Staker, error) {
	var position poolapi.Staker
	err := c.httpPOST("/pool/stake", &poolapi.StakeRequest{
		Staker: &staker,
		Amount: (*math.HexOrDecimal256)(amount),
	}, &position)
	if err != nil {
		return nil, errors.WithMessage(err, "unable to stake")
	}
	return &position, nil
}

// Unstake starts a withdrawal of amount for the given staker.
func (c *Client) Unstake(staker stakepool.Address, amount *big.Int) (*poolapi.Staker, error) {
	var position poolapi.Staker
	err := c.httpPOST("/pool/unstake", &poolapi.StakeRequest{
		Staker: &staker,
		Amount: (*math.HexOrDecimal256)(amount),
	}, &position)
	if err != nil {
		return nil, errors.WithMessage(err, "unable to unstake")
	}
	return &position, nil
}

// Transfer moves staked balance between stakers.
func (c *Client) Transfer(from, to stakepool.Address, amount *big.Int) (*poolapi.Staker, error) {
	var position poolapi.Staker
	err := c.httpPOST("/pool/transfer", &poolapi.TransferRequest{
		From:   &from,
		To:     &to,
		Amount: (*math.HexOrDecimal256)(amount),
	}, &position)
	if err != nil {
		return nil, errors.WithMessage(err, "unable to transfer")
	}
	return &position, nil
}

// Withdraw claims the staker's unlocked withdrawal, returning the amount.
func (c *Client) Withdraw(staker stakepool.Address) (*big.Int, error) {
	var result struct {
		Withdrawn *math.HexOrDecimal256 `json:"withdrawn"`
	}
	if err := c.httpPOST("/pool/withdraw", &poolapi.StakerRequest{Staker: &staker}, &result); err != nil {
		return nil, errors.WithMessage(err, "unable to withdraw")
	}
	return (*big.Int)(result.Withdrawn), nil
}

// ClaimReward pays out the staker's accrued reward, returning the amount.
func (c *Client) ClaimReward(staker stakepool.Address) (*big.Int, error) {
	var result struct {
		Reward *math.HexOrDecimal256 `json:"reward"`
	}
	if err := c.httpPOST("/pool/rewards/claim", &poolapi.StakerRequest{Staker: &staker}, &result); err != nil {
		return nil, errors.WithMessage(err, "unable to claim reward")
	}
	return (*big.Int)(result.Reward), nil
}

// AddRewardCycle starts a new reward cycle. Accepted from the authority only.
func (c *Client) AddRewardCycle(caller stakepool.Address, amount *big.Int, duration uint64) (*poolapi.Status, error) {
	var status poolapi.Status
	err := c.httpPOST("/pool/admin/cycles", &poolapi.CycleRequest{
		Caller:   &caller,
		Amount:   (*math.HexOrDecimal256)(amount),
		Duration: duration,
	}, &status)
	if err != nil {
		return nil, errors.WithMessage(err, "unable to add reward cycle")
	}
	return &status, nil
}

// AddRewardAmount adds reward to the current cycle. Accepted from the authority only.
func (c *Client) AddRewardAmount(caller stakepool.Address, amount *big.Int) (*poolapi.Status, error) {
	var status poolapi.Status
	err := c.httpPOST("/pool/admin/topup", &poolapi.TopUpRequest{
		Caller: &caller,
		Amount: (*math.HexOrDecimal256)(amount),
	}, &status)
	if err != nil {
		return nil, errors.WithMessage(err, "unable to add reward amount")
	}
	return &status, nil
}

// SetRewardsDuration updates the nominal cycle duration. Accepted from the authority only.
func (c *Client) SetRewardsDuration(caller stakepool.Address, duration uint64) (*poolapi.Status, error) {
	var status poolapi.Status
	err := c.httpPOST("/pool/admin/rewards-duration", &poolapi.DurationRequest{
		Caller:   &caller,
		Duration: duration,
	}, &status)
	if err != nil {
		return nil, errors.WithMessage(err, "unable to set rewards duration")
	}
	return &status, nil
}

// SetClaimDuration updates the withdrawal time lock. Accepted from the authority only.
func (c *Client) SetClaimDuration(caller stakepool.Address, duration uint64) (*poolapi.Status, error) {
	var status poolapi.Status
	err := c.httpPOST("/pool/admin/claim-duration", &poolapi.DurationRequest{
		Caller:   &caller,
		Duration: duration,
	}, &status)
	if err != nil {
		return nil, errors.WithMessage(err, "unable to set claim duration")
	}
	return &status, nil
}

// Pause stops stake and unstake. Accepted from the authority only.
func (c *Client) Pause(caller stakepool.Address) (*poolapi.Status, error) {
	var status poolapi.Status
	if err := c.httpPOST("/pool/admin/pause", &poolapi.CallerRequest{Caller: &caller}, &status); err != nil {
		return nil, errors.WithMessage(err, "unable to pause")
	}
	return &status, nil
}

// Unpause resumes a paused pool. Accepted from the authority only.
func (c *Client) Unpause(caller stakepool.Address) (*poolapi.Status, error) {
	var status poolapi.Status
	if err := c.httpPOST("/pool/admin/unpause", &poolapi.CallerRequest{Caller: &caller}, &status); err != nil {
		return nil, errors.WithMessage(err, "unable to unpause")
	}
	return &status, nil
}

func (c *Client) httpGET(path string, result any) error {
	res, err := c.c.Get(c.url + path)
	if err != nil {
		return errors.Wrap(err, "http get")
	}
	return decodeResponse(res, result)
}

func (c *Client) httpPOST(path string, body, result any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "encode request")
	}
	res, err := c.c.Post(c.url+path, "application/json", bytes.NewReader(data))
	if err != nil {
		return errors.Wrap(err, "http post")
	}
	return decodeResponse(res, result)
}

func decodeResponse(res *http.Response, result any) error {
	defer res.Body.Close()

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrap(err, "read response")
	}
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d %s", ErrNot200Status, res.StatusCode, strings.TrimSpace(string(payload)))
	}
	return json.Unmarshal(payload, result)
}
