// Copyright (c) 2025 The Stakewell developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakewell/stakewell/eventdb"
	"github.com/stakewell/stakewell/ledger/stake"
	"github.com/stakewell/stakewell/lvldb"
	"github.com/stakewell/stakewell/stakewell"
	"github.com/stakewell/stakewell/transfer"
)

func M(a ...any) []any {
	return a
}

var (
	ownerAddr    = stakewell.BytesToAddress([]byte("owner"))
	treasuryAddr = stakewell.BytesToAddress([]byte("treasury"))
	managerAddr  = stakewell.BytesToAddress([]byte("manager"))
	aliceAddr    = stakewell.BytesToAddress([]byte("alice"))
	bobAddr      = stakewell.BytesToAddress([]byte("bob"))
	assetAddr    = stakewell.BytesToAddress([]byte("asset"))
)

// testClock is a settable time source.
type testClock struct {
	mu  sync.Mutex
	now uint64
}

func (c *testClock) Now() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(seconds uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += seconds
}

func newMemStore(t *testing.T) *lvldb.LevelDB {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

type testEnv struct {
	ledger *Ledger
	engine *transfer.MemEngine
	events *eventdb.EventDB
	clock  *testClock
}

func newTestEnv(t *testing.T, opts *Options) *testEnv {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	events, err := eventdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(events.Close)

	engine := transfer.NewMemEngine()
	clock := &testClock{now: 1_000_000}

	l := New(db, engine, events, clock.Now)
	if opts == nil {
		opts = &Options{
			Owner:            ownerAddr,
			Treasury:         treasuryAddr,
			MinStakeAmount:   big.NewInt(0),
			MinStakeDuration: 0,
		}
	}
	bootstrapped, err := l.Init(*opts)
	require.NoError(t, err)
	require.True(t, bootstrapped)

	// owner is a manager after init; grant the dedicated manager account too
	require.NoError(t, l.SetManager(ownerAddr, managerAddr, true))

	for _, addr := range []stakewell.Address{managerAddr, aliceAddr, bobAddr} {
		engine.MintNative(addr, stakewell.Tokens(1_000_000))
		engine.MintToken(assetAddr, addr, stakewell.Tokens(1_000_000))
	}

	return &testEnv{ledger: l, engine: engine, events: events, clock: clock}
}

type TestFunc func(t *testing.T)

// TestSequence runs ledger operations in order, failing fast on the first
// unexpected error.
type TestSequence struct {
	env   *testEnv
	funcs []TestFunc
}

func NewSequence(env *testEnv) *TestSequence {
	return &TestSequence{env: env}
}

func (ts *TestSequence) AddFunc(f TestFunc) *TestSequence {
	ts.funcs = append(ts.funcs, f)
	return ts
}

func (ts *TestSequence) CreatePool(native bool, asset *stakewell.Address, apr uint32, lock uint64) *TestSequence {
	return ts.AddFunc(func(t *testing.T) {
		p, err := ts.env.ledger.CreatePool(managerAddr, native, asset, apr, lock)
		if err != nil {
			t.Fatalf("failed to create pool: %v", err)
		}
		t.Logf("created pool %d", p.ID)
	})
}

func (ts *TestSequence) Stake(owner stakewell.Address, poolID uint64, amount *big.Int) *TestSequence {
	return ts.AddFunc(func(t *testing.T) {
		attached := amount
		p, err := ts.env.ledger.GetPool(poolID)
		if err != nil {
			t.Fatalf("failed to fetch pool %d: %v", poolID, err)
		}
		if !p.Native {
			attached = nil
		}
		index, err := ts.env.ledger.Stake(owner, poolID, amount, attached)
		if err != nil {
			t.Fatalf("failed to stake for %s: %v", owner, err)
		}
		t.Logf("staked %s into pool %d as stake %d", amount, poolID, index)
	})
}

func (ts *TestSequence) RequestUnstake(owner stakewell.Address, stakeIndex uint64) *TestSequence {
	return ts.AddFunc(func(t *testing.T) {
		poolID, requestID, reward, err := ts.env.ledger.RequestUnstake(owner, stakeIndex)
		if err != nil {
			t.Fatalf("failed to request unstake of stake %d: %v", stakeIndex, err)
		}
		t.Logf("requested unstake: pool %d request %d reward %s", poolID, requestID, reward)
	})
}

func (ts *TestSequence) CompleteUnstake(poolID, requestID uint64) *TestSequence {
	return ts.AddFunc(func(t *testing.T) {
		view, err := ts.env.ledger.GetRequest(poolID, requestID)
		if err != nil {
			t.Fatalf("failed to fetch request %d: %v", requestID, err)
		}
		total, err := ts.env.ledger.CompleteUnstake(managerAddr, poolID, requestID, view.Total())
		if err != nil {
			t.Fatalf("failed to complete request %d: %v", requestID, err)
		}
		t.Logf("completed request %d, paid %s", requestID, total)
	})
}

func (ts *TestSequence) Advance(seconds uint64) *TestSequence {
	return ts.AddFunc(func(t *testing.T) {
		ts.env.clock.Advance(seconds)
	})
}

func (ts *TestSequence) Run(t *testing.T) {
	for _, f := range ts.funcs {
		f(t)
	}
}

// StakeAssertions collects expectations over one stake record.
type StakeAssertions struct {
	env   *testEnv
	owner stakewell.Address
	index uint64

	status *stake.Status
	amount *big.Int
	reward *big.Int
}

func AssertStake(env *testEnv, owner stakewell.Address, index uint64) *StakeAssertions {
	return &StakeAssertions{env: env, owner: owner, index: index}
}

func (sa *StakeAssertions) Status(expected stake.Status) *StakeAssertions {
	sa.status = &expected
	return sa
}

func (sa *StakeAssertions) Amount(expected *big.Int) *StakeAssertions {
	sa.amount = expected
	return sa
}

func (sa *StakeAssertions) Reward(expected *big.Int) *StakeAssertions {
	sa.reward = expected
	return sa
}

func (sa *StakeAssertions) Assert(t *testing.T) {
	view, err := sa.env.ledger.GetStake(sa.owner, sa.index)
	require.NoError(t, err)
	if sa.status != nil {
		assert.Equal(t, *sa.status, view.Status, "stake status mismatch")
	}
	if sa.amount != nil {
		assert.Equal(t, sa.amount, view.Amount, "stake amount mismatch")
	}
	if sa.reward != nil {
		assert.Equal(t, sa.reward, view.Reward, "stake reward mismatch")
	}
}
