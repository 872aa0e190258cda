// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package accounts exposes the token ledgers over HTTP.
package accounts

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/api/restutil"
	"github.com/vechain/stakepool/stakepool"
	"github.com/vechain/stakepool/token"
)

// Ledger is a named token ledger served by the API.
type Ledger struct {
	Name    string
	Address stakepool.Address
	Token   *token.Token
}

type Accounts struct {
	ledgers []Ledger
}

func New(ledgers []Ledger) *Accounts {
	return &Accounts{ledgers: ledgers}
}

// Balance is the view of one ledger's holdings of an account.
type Balance struct {
	Token   string                `json:"token"`
	Address stakepool.Address     `json:"address"`
	Balance *math.HexOrDecimal256 `json:"balance"`
}

func (a *Accounts) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := stakepool.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "address"))
	}

	balances := make([]Balance, 0, len(a.ledgers))
	for _, ledger := range a.ledgers {
		balance, err := ledger.Token.BalanceOf(*addr)
		if err != nil {
			return err
		}
		balances = append(balances, Balance{
			Token:   ledger.Name,
			Address: ledger.Address,
			Balance: (*math.HexOrDecimal256)(balance),
		})
	}
	return restutil.WriteJSON(w, balances)
}

func (a *Accounts) handleGetSupply(w http.ResponseWriter, _ *http.Request) error {
	supplies := make([]restutil.M, 0, len(a.ledgers))
	for _, ledger := range a.ledgers {
		supply, err := ledger.Token.TotalSupply()
		if err != nil {
			return err
		}
		supplies = append(supplies, restutil.M{
			"token":       ledger.Name,
			"address":     ledger.Address,
			"totalSupply": (*math.HexOrDecimal256)(supply),
		})
	}
	return restutil.WriteJSON(w, supplies)
}

func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{address}").Methods(http.MethodGet).HandlerFunc(restutil.WrapHandlerFunc(a.handleGetAccount))
	sub.Path("").Methods(http.MethodGet).HandlerFunc(restutil.WrapHandlerFunc(a.handleGetSupply))
}
