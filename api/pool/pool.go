// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package pool exposes the staking pool operations over HTTP. Guard
// conditions map to 400, admin operations are accepted from the genesis
// authority only.
package pool

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/api/restutil"
	"github.com/vechain/stakepool/node"
	"github.com/vechain/stakepool/pool/reverts"
	"github.com/vechain/stakepool/stakepool"
	"github.com/vechain/stakepool/token"
)

type Pool struct {
	node *node.Node
}

func New(node *node.Node) *Pool {
	return &Pool{node: node}
}

// convertError maps pool errors onto http statuses. Guard conditions are
// client errors, anything else is a server fault.
func convertError(err error) error {
	if err == nil {
		return nil
	}
	if reverts.IsGuard(err) || errors.Is(err, token.ErrInsufficientBalance) {
		return restutil.BadRequest(err)
	}
	return err
}

func (p *Pool) checkAuthority(caller *stakepool.Address) error {
	if caller == nil {
		return restutil.BadRequest(errors.New("caller: missing"))
	}
	if *caller != p.node.Authority() {
		return restutil.Forbidden(errors.New("caller: not the authority"))
	}
	return nil
}

func (p *Pool) handleGetStatus(w http.ResponseWriter, _ *http.Request) error {
	status, err := p.node.Status()
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, convertStatus(status))
}

func (p *Pool) handleGetStaker(w http.ResponseWriter, req *http.Request) error {
	addr, err := stakepool.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "address"))
	}
	return p.writeStaker(w, *addr)
}

func (p *Pool) handleStake(w http.ResponseWriter, req *http.Request) error {
	var body StakeRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Staker == nil {
		return restutil.BadRequest(errors.New("staker: missing"))
	}
	if err := convertError(p.node.Stake(*body.Staker, amountOf(body.Amount))); err != nil {
		return err
	}
	return p.writeStaker(w, *body.Staker)
}

func (p *Pool) handleTransfer(w http.ResponseWriter, req *http.Request) error {
	var body TransferRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.From == nil || body.To == nil {
		return restutil.BadRequest(errors.New("from/to: missing"))
	}
	if err := convertError(p.node.Transfer(*body.From, *body.To, amountOf(body.Amount))); err != nil {
		return err
	}
	return p.writeStaker(w, *body.From)
}

func (p *Pool) handleUnstake(w http.ResponseWriter, req *http.Request) error {
	var body StakeRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Staker == nil {
		return restutil.BadRequest(errors.New("staker: missing"))
	}
	if err := convertError(p.node.Unstake(*body.Staker, amountOf(body.Amount))); err != nil {
		return err
	}
	return p.writeStaker(w, *body.Staker)
}

func (p *Pool) handleWithdraw(w http.ResponseWriter, req *http.Request) error {
	var body StakerRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Staker == nil {
		return restutil.BadRequest(errors.New("staker: missing"))
	}
	amount, err := p.node.Withdraw(*body.Staker)
	if err != nil {
		return convertError(err)
	}
	return restutil.WriteJSON(w, restutil.M{"withdrawn": (*math.HexOrDecimal256)(amount)})
}

func (p *Pool) handleClaimReward(w http.ResponseWriter, req *http.Request) error {
	var body StakerRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Staker == nil {
		return restutil.BadRequest(errors.New("staker: missing"))
	}
	reward, err := p.node.GetReward(*body.Staker)
	if err != nil {
		return convertError(err)
	}
	return restutil.WriteJSON(w, restutil.M{"reward": (*math.HexOrDecimal256)(reward)})
}

func (p *Pool) handleAddCycle(w http.ResponseWriter, req *http.Request) error {
	var body CycleRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := p.checkAuthority(body.Caller); err != nil {
		return err
	}
	if err := convertError(p.node.AddRewardCycle(amountOf(body.Amount), body.Duration)); err != nil {
		return err
	}
	return p.handleGetStatus(w, req)
}

func (p *Pool) handleTopUp(w http.ResponseWriter, req *http.Request) error {
	var body TopUpRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := p.checkAuthority(body.Caller); err != nil {
		return err
	}
	if err := convertError(p.node.AddRewardAmount(amountOf(body.Amount))); err != nil {
		return err
	}
	return p.handleGetStatus(w, req)
}

func (p *Pool) handleSetRewardsDuration(w http.ResponseWriter, req *http.Request) error {
	var body DurationRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := p.checkAuthority(body.Caller); err != nil {
		return err
	}
	if err := convertError(p.node.SetRewardsDuration(body.Duration)); err != nil {
		return err
	}
	return p.handleGetStatus(w, req)
}

func (p *Pool) handleSetClaimDuration(w http.ResponseWriter, req *http.Request) error {
	var body DurationRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := p.checkAuthority(body.Caller); err != nil {
		return err
	}
	if err := convertError(p.node.SetClaimDuration(body.Duration)); err != nil {
		return err
	}
	return p.handleGetStatus(w, req)
}

func (p *Pool) handlePause(w http.ResponseWriter, req *http.Request) error {
	var body CallerRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := p.checkAuthority(body.Caller); err != nil {
		return err
	}
	if err := convertError(p.node.Pause()); err != nil {
		return err
	}
	return p.handleGetStatus(w, req)
}

func (p *Pool) handleUnpause(w http.ResponseWriter, req *http.Request) error {
	var body CallerRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := p.checkAuthority(body.Caller); err != nil {
		return err
	}
	if err := convertError(p.node.Unpause()); err != nil {
		return err
	}
	return p.handleGetStatus(w, req)
}

func (p *Pool) writeStaker(w http.ResponseWriter, addr stakepool.Address) error {
	balance, err := p.node.BalanceOf(addr)
	if err != nil {
		return err
	}
	earned, err := p.node.Earned(addr)
	if err != nil {
		return err
	}
	pending, err := p.node.PendingWithdrawal(addr)
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, &Staker{
		Address:           addr,
		Balance:           (*math.HexOrDecimal256)(balance),
		Earned:            (*math.HexOrDecimal256)(earned),
		PendingWithdrawal: convertWithdrawal(pending),
	})
}

func (p *Pool) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/status").Methods(http.MethodGet).HandlerFunc(restutil.WrapHandlerFunc(p.handleGetStatus))
	sub.Path("/stakers/{address}").Methods(http.MethodGet).HandlerFunc(restutil.WrapHandlerFunc(p.handleGetStaker))
	sub.Path("/stake").Methods(http.MethodPost).HandlerFunc(restutil.WrapHandlerFunc(p.handleStake))
	sub.Path("/transfer").Methods(http.MethodPost).HandlerFunc(restutil.WrapHandlerFunc(p.handleTransfer))
	sub.Path("/unstake").Methods(http.MethodPost).HandlerFunc(restutil.WrapHandlerFunc(p.handleUnstake))
	sub.Path("/withdraw").Methods(http.MethodPost).HandlerFunc(restutil.WrapHandlerFunc(p.handleWithdraw))
	sub.Path("/rewards/claim").Methods(http.MethodPost).HandlerFunc(restutil.WrapHandlerFunc(p.handleClaimReward))

	sub.Path("/admin/cycles").Methods(http.MethodPost).HandlerFunc(restutil.WrapHandlerFunc(p.handleAddCycle))
	sub.Path("/admin/topup").Methods(http.MethodPost).HandlerFunc(restutil.WrapHandlerFunc(p.handleTopUp))
	sub.Path("/admin/rewards-duration").Methods(http.MethodPost).HandlerFunc(restutil.WrapHandlerFunc(p.handleSetRewardsDuration))
	sub.Path("/admin/claim-duration").Methods(http.MethodPost).HandlerFunc(restutil.WrapHandlerFunc(p.handleSetClaimDuration))
	sub.Path("/admin/pause").Methods(http.MethodPost).HandlerFunc(restutil.WrapHandlerFunc(p.handlePause))
	sub.Path("/admin/unpause").Methods(http.MethodPost).HandlerFunc(restutil.WrapHandlerFunc(p.handleUnpause))
}
