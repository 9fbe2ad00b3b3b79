// Copyright (c) 2025 The Stakewell developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"context"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakewell/stakewell/eventdb"
	"github.com/stakewell/stakewell/ledger/reverts"
	"github.com/stakewell/stakewell/ledger/stake"
	"github.com/stakewell/stakewell/stakewell"
	"github.com/stakewell/stakewell/transfer"
)

const day = 86400

func TestInitIdempotent(t *testing.T) {
	env := newTestEnv(t, nil)

	again, err := env.ledger.Init(Options{
		Owner:          aliceAddr,
		Treasury:       bobAddr,
		MinStakeAmount: big.NewInt(0),
	})
	require.NoError(t, err)
	assert.False(t, again, "second init must be a no-op")

	owner, err := env.ledger.Owner()
	require.NoError(t, err)
	assert.Equal(t, ownerAddr, owner, "owner must not change on re-init")
}

func TestInitRejectsZeroTreasury(t *testing.T) {
	env := newTestEnv(t, nil)

	l := New(newMemStore(t), env.engine, env.events, env.clock.Now)
	_, err := l.Init(Options{
		Owner:          ownerAddr,
		Treasury:       stakewell.Address{},
		MinStakeAmount: big.NewInt(0),
	})
	assert.True(t, reverts.IsKind(err, reverts.KindPolicy))
}

func TestCreatePoolAuthorization(t *testing.T) {
	env := newTestEnv(t, nil)

	_, err := env.ledger.CreatePool(aliceAddr, true, nil, 5, 30*day)
	assert.True(t, reverts.IsKind(err, reverts.KindUnauthorized))

	p, err := env.ledger.CreatePool(managerAddr, true, nil, 5, 30*day)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), p.ID)
	assert.True(t, p.Active)

	// the owner holds the manager role too
	p, err = env.ledger.CreatePool(ownerAddr, false, &assetAddr, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), p.ID)
}

func TestCreatePoolValidation(t *testing.T) {
	env := newTestEnv(t, nil)

	_, err := env.ledger.CreatePool(managerAddr, true, &assetAddr, 5, 0)
	assert.True(t, reverts.IsKind(err, reverts.KindPolicy), "native pool must carry no asset")

	_, err = env.ledger.CreatePool(managerAddr, false, nil, 5, 0)
	assert.True(t, reverts.IsKind(err, reverts.KindPolicy), "asset pool requires an asset")

	zero := stakewell.Address{}
	_, err = env.ledger.CreatePool(managerAddr, false, &zero, 5, 0)
	assert.True(t, reverts.IsKind(err, reverts.KindPolicy), "asset must not be the zero address")

	_, err = env.ledger.CreatePool(managerAddr, true, nil, 0, 0)
	assert.True(t, reverts.IsKind(err, reverts.KindPolicy), "apr must be positive")
}

func TestStakeFlow(t *testing.T) {
	env := newTestEnv(t, nil)

	NewSequence(env).
		CreatePool(true, nil, 5, 30*day).
		Stake(aliceAddr, 0, stakewell.Tokens(1000)).
		Run(t)

	AssertStake(env, aliceAddr, 0).
		Status(stake.StatusStaked).
		Amount(stakewell.Tokens(1000)).
		Assert(t)

	total, err := env.ledger.TotalStaked(0)
	require.NoError(t, err)
	assert.Equal(t, stakewell.Tokens(1000), total)

	// deposits land at the treasury
	assert.Equal(t, stakewell.Tokens(1000), env.engine.NativeBalance(treasuryAddr))
}

func TestStakeRejections(t *testing.T) {
	env := newTestEnv(t, &Options{
		Owner:            ownerAddr,
		Treasury:         treasuryAddr,
		MinStakeAmount:   stakewell.Tokens(10),
		MinStakeDuration: 0,
	})

	NewSequence(env).
		CreatePool(true, nil, 5, 0).
		Run(t)

	_, err := env.ledger.Stake(aliceAddr, 9, stakewell.Tokens(100), stakewell.Tokens(100))
	assert.True(t, reverts.IsKind(err, reverts.KindNotFound), "unknown pool")

	_, err = env.ledger.Stake(aliceAddr, 0, stakewell.Tokens(5), stakewell.Tokens(5))
	assert.True(t, reverts.IsKind(err, reverts.KindPolicy), "below minimum amount")

	_, err = env.ledger.Stake(aliceAddr, 0, stakewell.Tokens(100), stakewell.Tokens(99))
	assert.True(t, reverts.IsKind(err, reverts.KindPolicy), "attached value mismatch")

	_, err = env.ledger.Stake(aliceAddr, 0, big.NewInt(0), big.NewInt(0))
	assert.True(t, reverts.IsKind(err, reverts.KindPolicy), "zero amount")

	_, err = env.ledger.SetPoolActive(managerAddr, 0, false)
	require.NoError(t, err)
	_, err = env.ledger.Stake(aliceAddr, 0, stakewell.Tokens(100), stakewell.Tokens(100))
	assert.True(t, reverts.IsKind(err, reverts.KindInvalidState), "inactive pool")
}

func TestStakeAssetPool(t *testing.T) {
	env := newTestEnv(t, nil)

	NewSequence(env).
		CreatePool(false, &assetAddr, 8, 0).
		Run(t)

	_, err := env.ledger.Stake(aliceAddr, 0, stakewell.Tokens(100), stakewell.Tokens(100))
	assert.True(t, reverts.IsKind(err, reverts.KindPolicy), "asset pools accept no attached value")

	index, err := env.ledger.Stake(aliceAddr, 0, stakewell.Tokens(100), nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), index)
	assert.Equal(t, stakewell.Tokens(100), env.engine.TokenBalance(assetAddr, treasuryAddr))
}

func TestRewardAccrual(t *testing.T) {
	env := newTestEnv(t, nil)

	NewSequence(env).
		CreatePool(true, nil, 5, 30*day).
		Stake(aliceAddr, 0, stakewell.Tokens(1000)).
		Advance(30 * day).
		Run(t)

	// 1000 tokens at 5% over 30/365 of a year, truncated
	expected, _ := new(big.Int).SetString("4109589041095890410", 10)
	AssertStake(env, aliceAddr, 0).Reward(expected).Assert(t)

	// the lock caps accrual: more elapsed time adds nothing
	env.clock.Advance(300 * day)
	AssertStake(env, aliceAddr, 0).Reward(expected).Assert(t)
}

func TestRewardFullYearExact(t *testing.T) {
	env := newTestEnv(t, nil)

	NewSequence(env).
		CreatePool(true, nil, 5, 365*day).
		Stake(aliceAddr, 0, stakewell.Tokens(1000)).
		Advance(365 * day).
		Run(t)

	AssertStake(env, aliceAddr, 0).Reward(stakewell.Tokens(50)).Assert(t)
}

func TestRewardUncappedWithoutLock(t *testing.T) {
	env := newTestEnv(t, nil)

	NewSequence(env).
		CreatePool(true, nil, 10, 0).
		Stake(aliceAddr, 0, stakewell.Tokens(100)).
		Advance(2 * 365 * day).
		Run(t)

	// lock-free pools accrue indefinitely
	AssertStake(env, aliceAddr, 0).Reward(stakewell.Tokens(20)).Assert(t)
}

func TestRequestUnstake(t *testing.T) {
	env := newTestEnv(t, nil)

	NewSequence(env).
		CreatePool(true, nil, 5, 30*day).
		Stake(aliceAddr, 0, stakewell.Tokens(1000)).
		Run(t)

	// still locked
	_, _, _, err := env.ledger.RequestUnstake(aliceAddr, 0)
	assert.True(t, reverts.IsKind(err, reverts.KindPolicy))

	env.clock.Advance(30 * day)

	poolID, requestID, reward, err := env.ledger.RequestUnstake(aliceAddr, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), poolID)
	assert.Equal(t, uint64(0), requestID)
	expected, _ := new(big.Int).SetString("4109589041095890410", 10)
	assert.Equal(t, expected, reward)

	AssertStake(env, aliceAddr, 0).Status(stake.StatusPending).Reward(expected).Assert(t)

	// principal leaves the pool total at request time
	total, err := env.ledger.TotalStaked(0)
	require.NoError(t, err)
	assert.Zero(t, total.Sign())

	// the frozen reward no longer tracks the clock
	env.clock.Advance(100 * day)
	AssertStake(env, aliceAddr, 0).Reward(expected).Assert(t)

	// no double request
	_, _, _, err = env.ledger.RequestUnstake(aliceAddr, 0)
	assert.True(t, reverts.IsKind(err, reverts.KindInvalidState))
}

func TestMinStakeDurationExtendsLock(t *testing.T) {
	env := newTestEnv(t, &Options{
		Owner:            ownerAddr,
		Treasury:         treasuryAddr,
		MinStakeAmount:   big.NewInt(0),
		MinStakeDuration: 7 * day,
	})

	NewSequence(env).
		CreatePool(true, nil, 5, 30*day).
		Stake(aliceAddr, 0, stakewell.Tokens(100)).
		Advance(30 * day).
		Run(t)

	// the global waiting period adds on top of the pool lock
	_, _, _, err := env.ledger.RequestUnstake(aliceAddr, 0)
	assert.True(t, reverts.IsKind(err, reverts.KindPolicy))

	env.clock.Advance(7 * day)
	_, _, _, err = env.ledger.RequestUnstake(aliceAddr, 0)
	require.NoError(t, err)
}

func TestCompleteUnstake(t *testing.T) {
	env := newTestEnv(t, nil)

	NewSequence(env).
		CreatePool(true, nil, 5, 30*day).
		Stake(aliceAddr, 0, stakewell.Tokens(1000)).
		Advance(30*day).
		RequestUnstake(aliceAddr, 0).
		Run(t)

	reward, _ := new(big.Int).SetString("4109589041095890410", 10)
	total := new(big.Int).Add(stakewell.Tokens(1000), reward)

	// non-manager cannot settle
	_, err := env.ledger.CompleteUnstake(aliceAddr, 0, 0, total)
	assert.True(t, reverts.IsKind(err, reverts.KindUnauthorized))

	// attached below principal+reward
	_, err = env.ledger.CompleteUnstake(managerAddr, 0, 0, stakewell.Tokens(1000))
	assert.True(t, reverts.IsKind(err, reverts.KindPolicy))

	before := env.engine.NativeBalance(aliceAddr)
	paid, err := env.ledger.CompleteUnstake(managerAddr, 0, 0, total)
	require.NoError(t, err)
	assert.Equal(t, total, paid)
	assert.Equal(t, new(big.Int).Add(before, total), env.engine.NativeBalance(aliceAddr))

	AssertStake(env, aliceAddr, 0).Status(stake.StatusCompleted).Assert(t)

	// settling twice is rejected
	_, err = env.ledger.CompleteUnstake(managerAddr, 0, 0, total)
	assert.True(t, reverts.IsKind(err, reverts.KindInvalidState))
}

func TestBatchCompleteUnstake(t *testing.T) {
	env := newTestEnv(t, nil)

	NewSequence(env).
		CreatePool(true, nil, 5, 0).
		Stake(aliceAddr, 0, stakewell.Tokens(10)).
		Stake(bobAddr, 0, stakewell.Tokens(20)).
		Stake(aliceAddr, 0, stakewell.Tokens(30)).
		RequestUnstake(aliceAddr, 0).
		RequestUnstake(bobAddr, 0).
		RequestUnstake(aliceAddr, 1).
		CompleteUnstake(0, 1). // settle bob's up front
		Run(t)

	// requests 0 and 2 remain pending; 1 is skipped, not fatal
	required := new(big.Int).Add(stakewell.Tokens(10), stakewell.Tokens(30))

	_, err := env.ledger.BatchCompleteUnstake(managerAddr, 0, []uint64{0, 1, 2}, stakewell.Tokens(10))
	assert.True(t, reverts.IsKind(err, reverts.KindPolicy), "attached below aggregate")

	processed, err := env.ledger.BatchCompleteUnstake(managerAddr, 0, []uint64{0, 1, 2}, required)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), processed)

	AssertStake(env, aliceAddr, 0).Status(stake.StatusCompleted).Assert(t)
	AssertStake(env, aliceAddr, 1).Status(stake.StatusCompleted).Assert(t)
	AssertStake(env, bobAddr, 0).Status(stake.StatusCompleted).Assert(t)

	// unknown ids are skipped as well
	processed, err = env.ledger.BatchCompleteUnstake(managerAddr, 0, []uint64{0, 99}, stakewell.Tokens(100))
	require.NoError(t, err)
	assert.Zero(t, processed)

	_, err = env.ledger.BatchCompleteUnstake(managerAddr, 0, nil, nil)
	assert.True(t, reverts.IsKind(err, reverts.KindPolicy), "empty batch")
}

func TestRequestStatusDerived(t *testing.T) {
	env := newTestEnv(t, nil)

	NewSequence(env).
		CreatePool(true, nil, 5, 0).
		Stake(aliceAddr, 0, stakewell.Tokens(10)).
		RequestUnstake(aliceAddr, 0).
		Run(t)

	view, err := env.ledger.GetRequest(0, 0)
	require.NoError(t, err)
	assert.Equal(t, stake.StatusPending, view.Status)

	NewSequence(env).CompleteUnstake(0, 0).Run(t)

	view, err = env.ledger.GetRequest(0, 0)
	require.NoError(t, err)
	assert.Equal(t, stake.StatusCompleted, view.Status)
}

func TestPoolPagination(t *testing.T) {
	env := newTestEnv(t, nil)

	seq := NewSequence(env)
	for i := 0; i < 5; i++ {
		seq.CreatePool(true, nil, uint32(i+1), 0)
	}
	seq.Run(t)

	// deactivate pools 1 and 3
	_, err := env.ledger.SetPoolActive(managerAddr, 1, false)
	require.NoError(t, err)
	_, err = env.ledger.SetPoolActive(managerAddr, 3, false)
	require.NoError(t, err)

	all, err := env.ledger.AllPools(0, 3)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, uint64(0), all[0].ID)

	all, err = env.ledger.AllPools(3, 10)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// offset equal to count yields an empty page
	all, err = env.ledger.AllPools(5, 10)
	require.NoError(t, err)
	assert.Empty(t, all)

	// offset beyond count is a miss
	_, err = env.ledger.AllPools(6, 10)
	assert.True(t, reverts.IsKind(err, reverts.KindNotFound))

	active, err := env.ledger.ActivePools(0, 10)
	require.NoError(t, err)
	require.Len(t, active, 3)
	assert.Equal(t, uint64(0), active[0].ID)
	assert.Equal(t, uint64(2), active[1].ID)
	assert.Equal(t, uint64(4), active[2].ID)

	// beyond the end of the active subset the page is empty
	active, err = env.ledger.ActivePools(7, 10)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestStakePagination(t *testing.T) {
	env := newTestEnv(t, nil)

	seq := NewSequence(env).CreatePool(true, nil, 5, 0)
	for i := 0; i < 4; i++ {
		seq.Stake(aliceAddr, 0, stakewell.Tokens(int64(i+1)))
	}
	seq.Run(t)

	// reconstruct the full list page by page
	var collected []*StakeView
	for offset := uint64(0); ; offset += 2 {
		page, err := env.ledger.UserStakes(aliceAddr, offset, 2)
		require.NoError(t, err)
		collected = append(collected, page...)
		if len(page) < 2 {
			break
		}
	}
	require.Len(t, collected, 4)
	for i, view := range collected {
		assert.Equal(t, uint64(i), view.Index)
		assert.Equal(t, stakewell.Tokens(int64(i+1)), view.Amount)
	}

	_, err := env.ledger.UserStakes(aliceAddr, 5, 2)
	assert.True(t, reverts.IsKind(err, reverts.KindNotFound))

	_, err = env.ledger.GetStake(aliceAddr, 9)
	assert.True(t, reverts.IsKind(err, reverts.KindNotFound))
}

func TestTotalStakedAcrossUsers(t *testing.T) {
	env := newTestEnv(t, nil)

	NewSequence(env).
		CreatePool(true, nil, 5, 0).
		CreatePool(true, nil, 7, 0).
		Stake(aliceAddr, 0, stakewell.Tokens(10)).
		Stake(bobAddr, 0, stakewell.Tokens(20)).
		Stake(aliceAddr, 1, stakewell.Tokens(40)).
		Run(t)

	total0, err := env.ledger.TotalStaked(0)
	require.NoError(t, err)
	assert.Equal(t, stakewell.Tokens(30), total0)

	total1, err := env.ledger.TotalStaked(1)
	require.NoError(t, err)
	assert.Equal(t, stakewell.Tokens(40), total1)

	NewSequence(env).RequestUnstake(bobAddr, 0).Run(t)

	total0, err = env.ledger.TotalStaked(0)
	require.NoError(t, err)
	assert.Equal(t, stakewell.Tokens(10), total0)
}

func TestManagerLifecycle(t *testing.T) {
	env := newTestEnv(t, nil)

	// only the owner can grant
	err := env.ledger.SetManager(managerAddr, aliceAddr, true)
	assert.True(t, reverts.IsKind(err, reverts.KindUnauthorized))

	require.NoError(t, env.ledger.SetManager(ownerAddr, aliceAddr, true))
	assert.Equal(t, M(true, nil), M(env.ledger.IsManager(aliceAddr)))

	managers, err := env.ledger.Managers()
	require.NoError(t, err)
	assert.Len(t, managers, 3) // owner, manager, alice

	require.NoError(t, env.ledger.SetManager(ownerAddr, aliceAddr, false))
	_, err = env.ledger.CreatePool(aliceAddr, true, nil, 5, 0)
	assert.True(t, reverts.IsKind(err, reverts.KindUnauthorized))
}

func TestConfigSetters(t *testing.T) {
	env := newTestEnv(t, nil)

	require.NoError(t, env.ledger.SetMinStakeAmount(managerAddr, stakewell.Tokens(5)))
	minAmount, err := env.ledger.MinStakeAmount()
	require.NoError(t, err)
	assert.Equal(t, stakewell.Tokens(5), minAmount)

	require.NoError(t, env.ledger.SetMinStakeDuration(managerAddr, 3*day))
	minDuration, err := env.ledger.MinStakeDuration()
	require.NoError(t, err)
	assert.Equal(t, uint64(3*day), minDuration)

	require.NoError(t, env.ledger.SetTreasury(managerAddr, bobAddr))
	treasury, err := env.ledger.Treasury()
	require.NoError(t, err)
	assert.Equal(t, bobAddr, treasury)

	err = env.ledger.SetTreasury(managerAddr, stakewell.Address{})
	assert.True(t, reverts.IsKind(err, reverts.KindPolicy))

	err = env.ledger.SetMinStakeAmount(aliceAddr, stakewell.Tokens(1))
	assert.True(t, reverts.IsKind(err, reverts.KindUnauthorized))
}

func TestEventsRecorded(t *testing.T) {
	env := newTestEnv(t, nil)

	NewSequence(env).
		CreatePool(true, nil, 5, 0).
		Stake(aliceAddr, 0, stakewell.Tokens(10)).
		RequestUnstake(aliceAddr, 0).
		CompleteUnstake(0, 0).
		Run(t)

	list, err := env.events.Filter(context.Background(), &eventdb.Filter{
		Kinds: []eventdb.Kind{
			eventdb.KindPoolCreated,
			eventdb.KindStaked,
			eventdb.KindUnstakeRequested,
			eventdb.KindUnstakeCompleted,
		},
		Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, eventdb.KindPoolCreated, list[0].Kind)
	assert.Equal(t, eventdb.KindStaked, list[1].Kind)
	assert.Equal(t, eventdb.KindUnstakeRequested, list[2].Kind)
	assert.Equal(t, eventdb.KindUnstakeCompleted, list[3].Kind)
}

// reentrantEngine calls back into the ledger from inside a transfer.
type reentrantEngine struct {
	inner  *reentrancyTarget
	caught error
}

type reentrancyTarget struct {
	ledger *Ledger
}

func (e *reentrantEngine) TransferNative(from, to stakewell.Address, amount *big.Int) error {
	_, e.caught = e.inner.ledger.Stake(from, 0, amount, amount)
	return nil
}

func (e *reentrantEngine) TransferToken(asset, from, to stakewell.Address, amount *big.Int) error {
	return nil
}

func TestReentrancyRejected(t *testing.T) {
	env := newTestEnv(t, nil)

	target := &reentrancyTarget{}
	engine := &reentrantEngine{inner: target}
	l := New(newMemStore(t), engine, env.events, env.clock.Now)
	target.ledger = l

	_, err := l.Init(Options{
		Owner:          ownerAddr,
		Treasury:       treasuryAddr,
		MinStakeAmount: big.NewInt(0),
	})
	require.NoError(t, err)

	_, err = l.CreatePool(ownerAddr, true, nil, 5, 0)
	require.NoError(t, err)

	_, err = l.Stake(aliceAddr, 0, stakewell.Tokens(1), stakewell.Tokens(1))
	require.NoError(t, err, "outer call proceeds once the nested call is rejected")
	assert.True(t, reverts.IsKind(engine.caught, reverts.KindReentrancy))
}

// slowEngine widens the transfer window so an independent caller lands
// while another operation is in flight.
type slowEngine struct {
	inner *transfer.MemEngine
}

func (e *slowEngine) TransferNative(from, to stakewell.Address, amount *big.Int) error {
	time.Sleep(200 * time.Millisecond)
	return e.inner.TransferNative(from, to, amount)
}

func (e *slowEngine) TransferToken(asset, from, to stakewell.Address, amount *big.Int) error {
	return e.inner.TransferToken(asset, from, to, amount)
}

func TestIndependentCallersSerialize(t *testing.T) {
	env := newTestEnv(t, nil)

	engine := &slowEngine{inner: env.engine}
	l := New(newMemStore(t), engine, env.events, env.clock.Now)

	_, err := l.Init(Options{
		Owner:          ownerAddr,
		Treasury:       treasuryAddr,
		MinStakeAmount: big.NewInt(0),
	})
	require.NoError(t, err)

	_, err = l.CreatePool(ownerAddr, true, nil, 5, 0)
	require.NoError(t, err)

	// both must serialize on the lock, neither may be rejected
	stakers := []stakewell.Address{aliceAddr, bobAddr}
	errs := make([]error, len(stakers))
	var wg sync.WaitGroup
	for i, owner := range stakers {
		wg.Add(1)
		go func(i int, owner stakewell.Address) {
			defer wg.Done()
			_, errs[i] = l.Stake(owner, 0, stakewell.Tokens(1), stakewell.Tokens(1))
		}(i, owner)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "independent caller %d", i)
	}
	total, err := l.TotalStaked(0)
	require.NoError(t, err)
	assert.Equal(t, stakewell.Tokens(2), total)
}

func TestBatchSummaryRecordedOnEarlyStop(t *testing.T) {
	env := newTestEnv(t, nil)

	NewSequence(env).
		CreatePool(false, &assetAddr, 5, 0).
		Stake(aliceAddr, 0, stakewell.Tokens(600_000)).
		Stake(bobAddr, 0, stakewell.Tokens(600_000)).
		RequestUnstake(aliceAddr, 0).
		RequestUnstake(bobAddr, 0).
		Run(t)

	// the manager's token balance covers only the first payout
	processed, err := env.ledger.BatchCompleteUnstake(managerAddr, 0, []uint64{0, 1}, nil)
	assert.True(t, reverts.IsKind(err, reverts.KindTransferFailed))
	assert.Equal(t, uint64(1), processed)

	AssertStake(env, aliceAddr, 0).Status(stake.StatusCompleted).Assert(t)
	AssertStake(env, bobAddr, 0).Status(stake.StatusPending).Assert(t)

	list, err := env.events.Filter(context.Background(), &eventdb.Filter{
		Kinds: []eventdb.Kind{eventdb.KindBatchCompleted},
		Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "requestsProcessed=1", list[0].Detail)
}
