// Copyright (c) 2025 The Stakewell developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package eventdb persists the ledger's notifications in sqlite.
package eventdb

import (
	"context"
	"database/sql"
	"math/big"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/stakewell/stakewell/stakewell"
)

const eventTableSchema = `CREATE TABLE IF NOT EXISTS event (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	kind TEXT NOT NULL,
	ts INTEGER NOT NULL,
	principal BLOB,
	poolID INTEGER,
	stakeIdx INTEGER,
	requestID INTEGER,
	amount TEXT,
	reward TEXT,
	detail TEXT
);
CREATE INDEX IF NOT EXISTS event_kind ON event(kind);
CREATE INDEX IF NOT EXISTS event_pool ON event(poolID);`

// EventDB is the sqlite-backed audit trail.
type EventDB struct {
	path string
	db   *sql.DB

	mu   sync.Mutex
	subs map[chan *Event]struct{}
}

// New creates or opens the event db at the given path.
func New(path string) (eventDB *EventDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if eventDB == nil {
			db.Close()
		}
	}()
	if _, err := db.Exec(eventTableSchema); err != nil {
		return nil, err
	}
	return &EventDB{
		path: path,
		db:   db,
		subs: make(map[chan *Event]struct{}),
	}, nil
}

// NewMem creates an event db in ram.
func NewMem() (*EventDB, error) {
	return New("file::memory:?cache=shared")
}

// Close closes the event db.
func (db *EventDB) Close() {
	db.db.Close()
}

// Path returns the db file path.
func (db *EventDB) Path() string {
	return db.path
}

// Record appends one event, assigns its sequence number and notifies
// subscribers.
func (db *EventDB) Record(ev *Event) error {
	res, err := db.db.Exec(
		"INSERT INTO event(kind, ts, principal, poolID, stakeIdx, requestID, amount, reward, detail) VALUES(?,?,?,?,?,?,?,?,?)",
		string(ev.Kind),
		ev.Timestamp,
		addrBlob(ev.Principal),
		ev.PoolID,
		ev.StakeIdx,
		ev.RequestID,
		bigText(ev.Amount),
		bigText(ev.Reward),
		nullStr(ev.Detail),
	)
	if err != nil {
		return errors.Wrap(err, "failed to record event")
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return errors.Wrap(err, "failed to read event sequence")
	}
	ev.Sequence = uint64(seq)

	db.mu.Lock()
	for ch := range db.subs {
		select {
		case ch <- ev:
		default: // slow subscriber, drop rather than block the ledger
		}
	}
	db.mu.Unlock()
	return nil
}

// Subscribe registers a listener for newly recorded events.
// The returned cancel func must be called to release the subscription.
func (db *EventDB) Subscribe() (<-chan *Event, func()) {
	ch := make(chan *Event, 64)
	db.mu.Lock()
	db.subs[ch] = struct{}{}
	db.mu.Unlock()
	return ch, func() {
		db.mu.Lock()
		delete(db.subs, ch)
		db.mu.Unlock()
	}
}

// Filter queries recorded events in sequence order.
func (db *EventDB) Filter(ctx context.Context, filter *Filter) ([]*Event, error) {
	stmt := "SELECT seq, kind, ts, principal, poolID, stakeIdx, requestID, amount, reward, detail FROM event WHERE 1"
	var args []any
	if filter != nil {
		if len(filter.Kinds) > 0 {
			stmt += " AND kind IN (?" + strings.Repeat(",?", len(filter.Kinds)-1) + ")"
			for _, k := range filter.Kinds {
				args = append(args, string(k))
			}
		}
		if filter.PoolID != nil {
			stmt += " AND poolID = ?"
			args = append(args, *filter.PoolID)
		}
		if filter.Principal != nil {
			stmt += " AND principal = ?"
			args = append(args, filter.Principal.Bytes())
		}
		if filter.From != nil {
			stmt += " AND ts >= ?"
			args = append(args, *filter.From)
		}
		if filter.To != nil {
			stmt += " AND ts <= ?"
			args = append(args, *filter.To)
		}
	}
	stmt += " ORDER BY seq"
	if filter != nil && filter.Limit > 0 {
		stmt += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query events")
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		var (
			ev        Event
			kind      string
			principal []byte
			poolID    sql.NullInt64
			stakeIdx  sql.NullInt64
			requestID sql.NullInt64
			amount    sql.NullString
			reward    sql.NullString
			detail    sql.NullString
		)
		if err := rows.Scan(
			&ev.Sequence, &kind, &ev.Timestamp, &principal,
			&poolID, &stakeIdx, &requestID,
			&amount, &reward, &detail,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan event")
		}
		ev.Kind = Kind(kind)
		ev.PoolID = nullUint(poolID)
		ev.StakeIdx = nullUint(stakeIdx)
		ev.RequestID = nullUint(requestID)
		if len(principal) == stakewell.AddressLength {
			addr := stakewell.BytesToAddress(principal)
			ev.Principal = &addr
		}
		ev.Amount = textBig(amount)
		ev.Reward = textBig(reward)
		if detail.Valid {
			ev.Detail = detail.String
		}
		events = append(events, &ev)
	}
	return events, rows.Err()
}

func addrBlob(addr *stakewell.Address) []byte {
	if addr == nil {
		return nil
	}
	return addr.Bytes()
}

func bigText(v *big.Int) any {
	if v == nil {
		return nil
	}
	return v.String()
}

func textBig(v sql.NullString) *big.Int {
	if !v.Valid {
		return nil
	}
	parsed, ok := new(big.Int).SetString(v.String, 10)
	if !ok {
		return nil
	}
	return parsed
}

func nullUint(v sql.NullInt64) *uint64 {
	if !v.Valid {
		return nil
	}
	u := uint64(v.Int64)
	return &u
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}
