// Copyright (c) 2025 The Stakewell developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakes

import (
	"math/big"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/stakewell/stakewell/api/restutil"
	"github.com/stakewell/stakewell/ledger"
)

type StakeRequest struct {
	PoolID   uint64   `json:"poolID"`
	Amount   *big.Int `json:"amount"`
	Attached *big.Int `json:"attached,omitempty"`
}

type StakeResponse struct {
	Index uint64 `json:"index"`
}

type RewardResponse struct {
	Reward *big.Int `json:"reward"`
}

type Stakes struct {
	ledger *ledger.Ledger
}

func New(l *ledger.Ledger) *Stakes {
	return &Stakes{l}
}

func (s *Stakes) handleStake(w http.ResponseWriter, req *http.Request) error {
	caller, err := restutil.ParseCaller(req)
	if err != nil {
		return err
	}
	var body StakeRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Amount == nil {
		return restutil.BadRequest(errors.New("amount: missing"))
	}
	index, err := s.ledger.Stake(caller, body.PoolID, body.Amount, body.Attached)
	if err != nil {
		return restutil.RevertError(err)
	}
	return restutil.WriteJSON(w, &StakeResponse{Index: index})
}

func (s *Stakes) handleListStakes(w http.ResponseWriter, req *http.Request) error {
	owner, err := restutil.ParseAddressVar("owner", mux.Vars(req)["owner"])
	if err != nil {
		return err
	}
	page, err := restutil.ParsePage(req)
	if err != nil {
		return err
	}
	views, err := s.ledger.UserStakes(owner, page.Offset, page.Limit)
	if err != nil {
		return restutil.RevertError(err)
	}
	return restutil.WriteJSON(w, views)
}

func (s *Stakes) handleGetStake(w http.ResponseWriter, req *http.Request) error {
	owner, err := restutil.ParseAddressVar("owner", mux.Vars(req)["owner"])
	if err != nil {
		return err
	}
	index, err := restutil.ParseUintVar("index", mux.Vars(req)["index"])
	if err != nil {
		return err
	}
	view, err := s.ledger.GetStake(owner, index)
	if err != nil {
		return restutil.RevertError(err)
	}
	return restutil.WriteJSON(w, view)
}

func (s *Stakes) handleGetReward(w http.ResponseWriter, req *http.Request) error {
	owner, err := restutil.ParseAddressVar("owner", mux.Vars(req)["owner"])
	if err != nil {
		return err
	}
	index, err := restutil.ParseUintVar("index", mux.Vars(req)["index"])
	if err != nil {
		return err
	}
	reward, err := s.ledger.RewardOf(owner, index)
	if err != nil {
		return restutil.RevertError(err)
	}
	return restutil.WriteJSON(w, &RewardResponse{Reward: reward})
}

func (s *Stakes) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodPost).
		Name("stakes_create").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleStake))
	sub.Path("/{owner}").
		Methods(http.MethodGet).
		Name("stakes_list").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleListStakes))
	sub.Path("/{owner}/{index}").
		Methods(http.MethodGet).
		Name("stakes_get").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleGetStake))
	sub.Path("/{owner}/{index}/reward").
		Methods(http.MethodGet).
		Name("stakes_get_reward").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleGetReward))
}
