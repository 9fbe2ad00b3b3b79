// Copyright (c) 2025 The Stakewell developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package subscriptions streams ledger events over websocket as they are
// recorded.
package subscriptions

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/stakewell/stakewell/api/restutil"
	"github.com/stakewell/stakewell/eventdb"
	"github.com/stakewell/stakewell/log"
)

var logger = log.WithContext("pkg", "subscriptions")

const (
	pingPeriod   = 10 * time.Second
	pongWait     = 15 * time.Second
	writeTimeout = 10 * time.Second
)

type Subscriptions struct {
	db       *eventdb.EventDB
	upgrader *websocket.Upgrader
	done     chan struct{}
	wg       sync.WaitGroup

	mu      sync.Mutex
	conns   map[*websocket.Conn]struct{}
	closing bool
}

func New(db *eventdb.EventDB, allowedOrigins []string) *Subscriptions {
	return &Subscriptions{
		db: db,
		upgrader: &websocket.Upgrader{
			EnableCompression: true,
			CheckOrigin:       checkOrigin(allowedOrigins),
		},
		done:  make(chan struct{}),
		conns: make(map[*websocket.Conn]struct{}),
	}
}

func checkOrigin(allowedOrigins []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, allowed := range allowedOrigins {
			if allowed == "*" || allowed == origin {
				return true
			}
		}
		return false
	}
}

func (s *Subscriptions) track(conn *websocket.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing {
		return false
	}
	s.conns[conn] = struct{}{}
	return true
}

func (s *Subscriptions) untrack(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, conn)
}

func (s *Subscriptions) handleSubscribeEvents(w http.ResponseWriter, req *http.Request) error {
	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		// the upgrader has already replied with an error
		logger.Debug("upgrade failed", "err", err)
		return nil
	}
	defer conn.Close()

	if !s.track(conn) {
		return nil
	}
	defer s.untrack(conn)

	events, cancel := s.db.Subscribe()
	defer cancel()

	// the read pump surfaces client-side close and feeds pong handling
	closed := make(chan struct{})
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer close(closed)
		conn.SetReadLimit(512)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	pingTicker := time.NewTicker(pingPeriod)
	defer pingTicker.Stop()

	for {
		select {
		case <-s.done:
			return nil
		case <-closed:
			return nil
		case <-req.Context().Done():
			return nil
		case ev := <-events:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(ev); err != nil {
				logger.Debug("write event failed", "err", err)
				return nil
			}
		case <-pingTicker.C:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return nil
			}
		}
	}
}

// Close terminates all live subscription connections and waits for their
// pumps to drain. The subscriptions handler accepts no new connections
// afterwards.
func (s *Subscriptions) Close() {
	s.mu.Lock()
	s.closing = true
	for conn := range s.conns {
		conn.Close()
	}
	s.mu.Unlock()

	close(s.done)
	s.wg.Wait()
}

func (s *Subscriptions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/events").
		Methods(http.MethodGet).
		Name("subscriptions_events").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleSubscribeEvents))
}
