// Copyright (c) 2025 The Stakewell developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"net/http/pprof"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/stakewell/stakewell/api/events"
	"github.com/stakewell/stakewell/api/govern"
	"github.com/stakewell/stakewell/api/pools"
	"github.com/stakewell/stakewell/api/requests"
	"github.com/stakewell/stakewell/api/restutil"
	"github.com/stakewell/stakewell/api/stakes"
	"github.com/stakewell/stakewell/api/subscriptions"
	"github.com/stakewell/stakewell/eventdb"
	"github.com/stakewell/stakewell/ledger"
	"github.com/stakewell/stakewell/log"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins  string
	PprofOn         bool
	EnableReqLogger bool
	EnableMetrics   bool
}

// New returns the api handler and a close function releasing hijacked
// subscription connections.
func New(l *ledger.Ledger, db *eventdb.EventDB, opts Options) (http.HandlerFunc, func()) {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	pools.New(l).
		Mount(router, "/pools")
	stakes.New(l).
		Mount(router, "/stakes")
	requests.New(l).
		Mount(router, "/requests")
	govern.New(l).
		Mount(router, "")
	events.New(db).
		Mount(router, "/events")
	subs := subscriptions.New(db, origins)
	subs.Mount(router, "/subscriptions")

	if opts.PprofOn {
		router.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		router.HandleFunc("/debug/pprof/profile", pprof.Profile)
		router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		router.HandleFunc("/debug/pprof/trace", pprof.Trace)
		router.PathPrefix("/debug/pprof/").HandlerFunc(pprof.Index)
	}

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type", restutil.CallerHeader}),
	)(handler)

	if opts.EnableReqLogger {
		handler = RequestLoggerHandler(handler, logger)
	}

	return handler.ServeHTTP, subs.Close // subscriptions handles hijacked conns, which need to be closed
}
