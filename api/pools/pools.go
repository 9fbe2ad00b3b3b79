// Copyright (c) 2025 The Stakewell developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pools

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/stakewell/stakewell/api/restutil"
	"github.com/stakewell/stakewell/ledger"
)

type Pools struct {
	ledger *ledger.Ledger
}

func New(l *ledger.Ledger) *Pools {
	return &Pools{l}
}

func (p *Pools) handleCreatePool(w http.ResponseWriter, req *http.Request) error {
	caller, err := restutil.ParseCaller(req)
	if err != nil {
		return err
	}
	var body CreatePoolRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	created, err := p.ledger.CreatePool(caller, body.Native, body.Asset, body.APR, body.LockDuration)
	if err != nil {
		return restutil.RevertError(err)
	}
	return restutil.WriteJSON(w, convertPool(created))
}

func (p *Pools) handleSetActive(w http.ResponseWriter, req *http.Request) error {
	caller, err := restutil.ParseCaller(req)
	if err != nil {
		return err
	}
	id, err := restutil.ParseUintVar("id", mux.Vars(req)["id"])
	if err != nil {
		return err
	}
	var body SetActiveRequest
	if err := restutil.ParseJSON(req.Body, &body); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	updated, err := p.ledger.SetPoolActive(caller, id, body.Active)
	if err != nil {
		return restutil.RevertError(err)
	}
	return restutil.WriteJSON(w, convertPool(updated))
}

func (p *Pools) handleGetPools(w http.ResponseWriter, req *http.Request) error {
	page, err := restutil.ParsePage(req)
	if err != nil {
		return err
	}
	mode := req.URL.Query().Get("mode")
	switch mode {
	case "", "all":
		list, err := p.ledger.AllPools(page.Offset, page.Limit)
		if err != nil {
			return restutil.RevertError(err)
		}
		return restutil.WriteJSON(w, convertPools(list))
	case "active":
		list, err := p.ledger.ActivePools(page.Offset, page.Limit)
		if err != nil {
			return restutil.RevertError(err)
		}
		return restutil.WriteJSON(w, convertPools(list))
	default:
		return restutil.BadRequest(errors.New("mode: expected 'all' or 'active'"))
	}
}

func (p *Pools) handleGetPool(w http.ResponseWriter, req *http.Request) error {
	id, err := restutil.ParseUintVar("id", mux.Vars(req)["id"])
	if err != nil {
		return err
	}
	got, err := p.ledger.GetPool(id)
	if err != nil {
		return restutil.RevertError(err)
	}
	return restutil.WriteJSON(w, convertPool(got))
}

func (p *Pools) handleGetTotal(w http.ResponseWriter, req *http.Request) error {
	id, err := restutil.ParseUintVar("id", mux.Vars(req)["id"])
	if err != nil {
		return err
	}
	total, err := p.ledger.TotalStaked(id)
	if err != nil {
		return restutil.RevertError(err)
	}
	return restutil.WriteJSON(w, &JSONPoolTotal{ID: id, TotalStaked: total})
}

func (p *Pools) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodPost).
		Name("pools_create").
		HandlerFunc(restutil.WrapHandlerFunc(p.handleCreatePool))
	sub.Path("").
		Methods(http.MethodGet).
		Name("pools_list").
		HandlerFunc(restutil.WrapHandlerFunc(p.handleGetPools))
	sub.Path("/{id}").
		Methods(http.MethodGet).
		Name("pools_get").
		HandlerFunc(restutil.WrapHandlerFunc(p.handleGetPool))
	sub.Path("/{id}/active").
		Methods(http.MethodPost).
		Name("pools_set_active").
		HandlerFunc(restutil.WrapHandlerFunc(p.handleSetActive))
	sub.Path("/{id}/total").
		Methods(http.MethodGet).
		Name("pools_get_total").
		HandlerFunc(restutil.WrapHandlerFunc(p.handleGetTotal))
}
