// Copyright (c) 2025 The Stakewell developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/stakewell/stakewell/api/restutil"
	"github.com/stakewell/stakewell/eventdb"
)

type Events struct {
	db *eventdb.EventDB
}

func New(db *eventdb.EventDB) *Events {
	return &Events{db}
}

// parseFilter builds an event filter from query parameters:
// kinds (comma separated), pool, principal, from, to, offset, limit.
func parseFilter(req *http.Request) (*eventdb.Filter, error) {
	page, err := restutil.ParsePage(req)
	if err != nil {
		return nil, err
	}
	filter := &eventdb.Filter{Offset: page.Offset, Limit: page.Limit}

	query := req.URL.Query()
	if v := query.Get("kinds"); v != "" {
		for _, k := range strings.Split(v, ",") {
			filter.Kinds = append(filter.Kinds, eventdb.Kind(strings.TrimSpace(k)))
		}
	}
	if v := query.Get("pool"); v != "" {
		id, err := restutil.ParseUintVar("pool", v)
		if err != nil {
			return nil, err
		}
		filter.PoolID = &id
	}
	if v := query.Get("principal"); v != "" {
		addr, err := restutil.ParseAddressVar("principal", v)
		if err != nil {
			return nil, err
		}
		filter.Principal = &addr
	}
	if v := query.Get("from"); v != "" {
		from, err := restutil.ParseUintVar("from", v)
		if err != nil {
			return nil, err
		}
		filter.From = &from
	}
	if v := query.Get("to"); v != "" {
		to, err := restutil.ParseUintVar("to", v)
		if err != nil {
			return nil, err
		}
		filter.To = &to
	}
	return filter, nil
}

func (e *Events) handleFilter(w http.ResponseWriter, req *http.Request) error {
	filter, err := parseFilter(req)
	if err != nil {
		return err
	}
	list, err := e.db.Filter(req.Context(), filter)
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, list)
}

func (e *Events) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("events_filter").
		HandlerFunc(restutil.WrapHandlerFunc(e.handleFilter))
}
