// Copyright (c) 2025 The Stakewell developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package ledger composes the staking ledger: pool registry, stake ledger,
// unstake pipeline, access control and global config, coordinated under a
// single-writer discipline.
package ledger

import (
	"math/big"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/stakewell/stakewell/eventdb"
	"github.com/stakewell/stakewell/kv"
	"github.com/stakewell/stakewell/ledger/authority"
	"github.com/stakewell/stakewell/ledger/gparams"
	"github.com/stakewell/stakewell/ledger/pool"
	"github.com/stakewell/stakewell/ledger/reverts"
	"github.com/stakewell/stakewell/ledger/stake"
	"github.com/stakewell/stakewell/ledger/unstake"
	"github.com/stakewell/stakewell/log"
	"github.com/stakewell/stakewell/metrics"
	"github.com/stakewell/stakewell/stakewell"
	"github.com/stakewell/stakewell/transfer"
)

var logger = log.WithContext("pkg", "ledger")

var (
	metricPools       = metrics.Gauge("pools_total")
	metricStakes      = metrics.Counter("stakes_created_total")
	metricRequests    = metrics.Counter("unstake_requests_total")
	metricSettlements = metrics.Counter("unstake_settlements_total")
)

// Clock supplies the current time in unix seconds.
type Clock func() uint64

// Ledger is the staking ledger facade. Every mutating operation runs to
// completion under a global exclusive lock with no interleaving; independent
// callers serialize on that lock, while a transfer hook that re-enters a
// mutating operation from inside one is rejected outright.
type Ledger struct {
	mu     sync.RWMutex
	holder atomic.Uint64 // goroutine id of the op in flight, 0 when idle

	clock  Clock
	engine transfer.Engine
	events *eventdb.EventDB

	auth     *authority.Authority
	params   *gparams.Params
	pools    *pool.Service
	stakes   *stake.Service
	requests *unstake.Service
}

// Options configures ledger initialisation.
type Options struct {
	Owner            stakewell.Address
	Treasury         stakewell.Address
	MinStakeAmount   *big.Int
	MinStakeDuration uint64 // seconds
}

// New creates a ledger over the given store.
func New(store kv.GetPutter, engine transfer.Engine, events *eventdb.EventDB, clock Clock) *Ledger {
	return &Ledger{
		clock:    clock,
		engine:   engine,
		events:   events,
		auth:     authority.New(kv.Bucket("a").NewStore(store)),
		params:   gparams.New(kv.Bucket("c").NewStore(store)),
		pools:    pool.New(store),
		stakes:   stake.New(store),
		requests: unstake.New(store),
	}
}

// Init installs the owner and initial config. The deploying principal is
// granted manager status once, separately from ownership. Running against an
// already initialised store changes nothing and returns false.
func (l *Ledger) Init(opts Options) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if opts.Treasury.IsZero() {
		return false, reverts.Policy("treasury address is zero")
	}
	fresh, err := l.auth.Init(opts.Owner)
	if err != nil {
		return false, err
	}
	if !fresh {
		return false, nil
	}
	if _, err := l.auth.SetManager(opts.Owner, true, l.clock()); err != nil {
		return false, err
	}
	minAmount := opts.MinStakeAmount
	if minAmount == nil {
		minAmount = new(big.Int)
	}
	if err := l.params.SetMinStakeAmount(minAmount); err != nil {
		return false, err
	}
	if err := l.params.SetMinStakeDuration(opts.MinStakeDuration); err != nil {
		return false, err
	}
	if err := l.params.SetTreasury(opts.Treasury); err != nil {
		return false, err
	}
	logger.Info("ledger initialised", "owner", opts.Owner, "treasury", opts.Treasury)
	return true, nil
}

// begin acquires the global write lock and arms the reentrancy guard.
// It returns the operation timestamp.
func (l *Ledger) begin() (uint64, error) {
	id := goid()
	if l.holder.Load() == id {
		// a transfer hook called back into the in-flight operation;
		// an independent goroutine instead blocks on the lock below
		return 0, reverts.Reentrancy()
	}
	l.mu.Lock()
	l.holder.Store(id)
	return l.clock(), nil
}

func (l *Ledger) end() {
	l.holder.Store(0)
	l.mu.Unlock()
}

// goid parses the current goroutine's id from the stack header
// ("goroutine 123 [running]:"). Goroutine ids start at 1, so 0 is a safe
// idle sentinel for the reentrancy guard.
func goid() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	var id uint64
	for _, c := range buf[len("goroutine "):n] {
		if c < '0' || c > '9' {
			break
		}
		id = id*10 + uint64(c-'0')
	}
	return id
}

func (l *Ledger) requireManager(caller stakewell.Address) error {
	ok, err := l.auth.IsManager(caller)
	if err != nil {
		return err
	}
	if !ok {
		return reverts.Unauthorized("%s is not a manager", caller)
	}
	return nil
}

func (l *Ledger) requireOwner(caller stakewell.Address) error {
	ok, err := l.auth.IsOwner(caller)
	if err != nil {
		return err
	}
	if !ok {
		return reverts.Unauthorized("%s is not the owner", caller)
	}
	return nil
}

// record appends to the audit trail. The trail is best-effort relative to
// already committed state, a failure is logged rather than unwinding the
// operation.
func (l *Ledger) record(ev *eventdb.Event) {
	if err := l.events.Record(ev); err != nil {
		logger.Warn("failed to record event", "kind", ev.Kind, "error", err)
	}
}

func attachedOrZero(attached *big.Int) *big.Int {
	if attached == nil {
		return new(big.Int)
	}
	return attached
}

func u64ptr(v uint64) *uint64 { return &v }
