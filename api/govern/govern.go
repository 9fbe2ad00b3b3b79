// Copyright (c) 2025 The Stakewell developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package govern

import (
	"math/big"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/stakewell/stakewell/api/restutil"
	"github.com/stakewell/stakewell/ledger"
	"github.com/stakewell/stakewell/stakewell"
)

type AmountRequest struct {
	Amount *big.Int `json:"amount"`
}

type DurationRequest struct {
	Seconds uint64 `json:"seconds"`
}

type AddressRequest struct {
	Address stakewell.Address `json:"address"`
}

type SetManagerRequest struct {
	Address stakewell.Address `json:"address"`
	Enabled bool              `json:"enabled"`
}

type JSONConfig struct {
	Owner            stakewell.Address `json:"owner"`
	Treasury         stakewell.Address `json:"treasury"`
	MinStakeAmount   *big.Int          `json:"minStakeAmount"`
	MinStakeDuration uint64            `json:"minStakeDuration"`
}

type Govern struct {
	ledger *ledger.Ledger
}

func New(l *ledger.Ledger) *Govern {
	return &Govern{l}
}

func (g *Govern) handleGetConfig(w http.ResponseWriter, _ *http.Request) error {
	owner, err := g.ledger.Owner()
	if err != nil {
		return restutil.RevertError(err)
	}
	treasury, err := g.ledger.Treasury()
	if err != nil {
		return restutil.RevertError(err)
	}
	minAmount, err := g.ledger.MinStakeAmount()
	if err != nil {
		return restutil.RevertError(err)
	}
	minDuration, err := g.ledger.MinStakeDuration()
	if err != nil {
		return restutil.RevertError(err)
	}
	return restutil.WriteJSON(w, &JSONConfig{
		Owner:            owner,
		Treasury:         treasury,
		MinStakeAmount:   minAmount,
		MinStakeDuration: minDuration,
	})
}

func (g *Govern) handleSetMinStakeAmount(w http.ResponseWriter, req *http.Request) error {
	caller, err := restutil.ParseCaller(req)
	if err != nil {
		return err
	}
	var body AmountRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Amount == nil {
		return restutil.BadRequest(errors.New("amount: missing"))
	}
	if err := g.ledger.SetMinStakeAmount(caller, body.Amount); err != nil {
		return restutil.RevertError(err)
	}
	return restutil.WriteJSON(w, restutil.M{"amount": body.Amount})
}

func (g *Govern) handleSetMinStakeDuration(w http.ResponseWriter, req *http.Request) error {
	caller, err := restutil.ParseCaller(req)
	if err != nil {
		return err
	}
	var body DurationRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := g.ledger.SetMinStakeDuration(caller, body.Seconds); err != nil {
		return restutil.RevertError(err)
	}
	return restutil.WriteJSON(w, restutil.M{"seconds": body.Seconds})
}

func (g *Govern) handleSetTreasury(w http.ResponseWriter, req *http.Request) error {
	caller, err := restutil.ParseCaller(req)
	if err != nil {
		return err
	}
	var body AddressRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := g.ledger.SetTreasury(caller, body.Address); err != nil {
		return restutil.RevertError(err)
	}
	return restutil.WriteJSON(w, restutil.M{"treasury": body.Address})
}

func (g *Govern) handleListManagers(w http.ResponseWriter, _ *http.Request) error {
	managers, err := g.ledger.Managers()
	if err != nil {
		return restutil.RevertError(err)
	}
	return restutil.WriteJSON(w, managers)
}

func (g *Govern) handleSetManager(w http.ResponseWriter, req *http.Request) error {
	caller, err := restutil.ParseCaller(req)
	if err != nil {
		return err
	}
	var body SetManagerRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := g.ledger.SetManager(caller, body.Address, body.Enabled); err != nil {
		return restutil.RevertError(err)
	}
	return restutil.WriteJSON(w, restutil.M{"address": body.Address, "enabled": body.Enabled})
}

func (g *Govern) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/config").
		Methods(http.MethodGet).
		Name("govern_get_config").
		HandlerFunc(restutil.WrapHandlerFunc(g.handleGetConfig))
	sub.Path("/config/min-stake-amount").
		Methods(http.MethodPost).
		Name("govern_set_min_stake_amount").
		HandlerFunc(restutil.WrapHandlerFunc(g.handleSetMinStakeAmount))
	sub.Path("/config/min-stake-duration").
		Methods(http.MethodPost).
		Name("govern_set_min_stake_duration").
		HandlerFunc(restutil.WrapHandlerFunc(g.handleSetMinStakeDuration))
	sub.Path("/config/treasury").
		Methods(http.MethodPost).
		Name("govern_set_treasury").
		HandlerFunc(restutil.WrapHandlerFunc(g.handleSetTreasury))
	sub.Path("/managers").
		Methods(http.MethodGet).
		Name("govern_list_managers").
		HandlerFunc(restutil.WrapHandlerFunc(g.handleListManagers))
	sub.Path("/managers").
		Methods(http.MethodPost).
		Name("govern_set_manager").
		HandlerFunc(restutil.WrapHandlerFunc(g.handleSetManager))
}
