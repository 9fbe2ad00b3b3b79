// Copyright (c) 2025 The Stakewell developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package requests

import (
	"math/big"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/stakewell/stakewell/api/restutil"
	"github.com/stakewell/stakewell/ledger"
)

type UnstakeRequest struct {
	StakeIndex uint64 `json:"stakeIndex"`
}

type UnstakeResponse struct {
	PoolID    uint64   `json:"poolID"`
	RequestID uint64   `json:"requestID"`
	Reward    *big.Int `json:"reward"`
}

type CompleteRequest struct {
	Attached *big.Int `json:"attached,omitempty"`
}

type CompleteResponse struct {
	Total *big.Int `json:"total"`
}

type BatchCompleteRequest struct {
	RequestIDs []uint64 `json:"requestIDs"`
	Attached   *big.Int `json:"attached,omitempty"`
}

type BatchCompleteResponse struct {
	Processed uint64 `json:"processed"`
}

type Requests struct {
	ledger *ledger.Ledger
}

func New(l *ledger.Ledger) *Requests {
	return &Requests{l}
}

func (q *Requests) handleRequestUnstake(w http.ResponseWriter, req *http.Request) error {
	caller, err := restutil.ParseCaller(req)
	if err != nil {
		return err
	}
	var body UnstakeRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	poolID, requestID, reward, err := q.ledger.RequestUnstake(caller, body.StakeIndex)
	if err != nil {
		return restutil.RevertError(err)
	}
	return restutil.WriteJSON(w, &UnstakeResponse{
		PoolID:    poolID,
		RequestID: requestID,
		Reward:    reward,
	})
}

func (q *Requests) handleComplete(w http.ResponseWriter, req *http.Request) error {
	caller, err := restutil.ParseCaller(req)
	if err != nil {
		return err
	}
	poolID, err := restutil.ParseUintVar("poolID", mux.Vars(req)["poolID"])
	if err != nil {
		return err
	}
	requestID, err := restutil.ParseUintVar("requestID", mux.Vars(req)["requestID"])
	if err != nil {
		return err
	}
	var body CompleteRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	total, err := q.ledger.CompleteUnstake(caller, poolID, requestID, body.Attached)
	if err != nil {
		return restutil.RevertError(err)
	}
	return restutil.WriteJSON(w, &CompleteResponse{Total: total})
}

func (q *Requests) handleCompleteBatch(w http.ResponseWriter, req *http.Request) error {
	caller, err := restutil.ParseCaller(req)
	if err != nil {
		return err
	}
	poolID, err := restutil.ParseUintVar("poolID", mux.Vars(req)["poolID"])
	if err != nil {
		return err
	}
	var body BatchCompleteRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	processed, err := q.ledger.BatchCompleteUnstake(caller, poolID, body.RequestIDs, body.Attached)
	if err != nil {
		return restutil.RevertError(err)
	}
	return restutil.WriteJSON(w, &BatchCompleteResponse{Processed: processed})
}

func (q *Requests) handleList(w http.ResponseWriter, req *http.Request) error {
	poolID, err := restutil.ParseUintVar("poolID", mux.Vars(req)["poolID"])
	if err != nil {
		return err
	}
	page, err := restutil.ParsePage(req)
	if err != nil {
		return err
	}
	views, err := q.ledger.UnstakeRequests(poolID, page.Offset, page.Limit)
	if err != nil {
		return restutil.RevertError(err)
	}
	return restutil.WriteJSON(w, views)
}

func (q *Requests) handleGet(w http.ResponseWriter, req *http.Request) error {
	poolID, err := restutil.ParseUintVar("poolID", mux.Vars(req)["poolID"])
	if err != nil {
		return err
	}
	requestID, err := restutil.ParseUintVar("requestID", mux.Vars(req)["requestID"])
	if err != nil {
		return err
	}
	view, err := q.ledger.GetRequest(poolID, requestID)
	if err != nil {
		return restutil.RevertError(err)
	}
	return restutil.WriteJSON(w, view)
}

func (q *Requests) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodPost).
		Name("requests_create").
		HandlerFunc(restutil.WrapHandlerFunc(q.handleRequestUnstake))
	sub.Path("/{poolID}").
		Methods(http.MethodGet).
		Name("requests_list").
		HandlerFunc(restutil.WrapHandlerFunc(q.handleList))
	sub.Path("/{poolID}/complete-batch").
		Methods(http.MethodPost).
		Name("requests_complete_batch").
		HandlerFunc(restutil.WrapHandlerFunc(q.handleCompleteBatch))
	sub.Path("/{poolID}/{requestID}").
		Methods(http.MethodGet).
		Name("requests_get").
		HandlerFunc(restutil.WrapHandlerFunc(q.handleGet))
	sub.Path("/{poolID}/{requestID}/complete").
		Methods(http.MethodPost).
		Name("requests_complete").
		HandlerFunc(restutil.WrapHandlerFunc(q.handleComplete))
}
