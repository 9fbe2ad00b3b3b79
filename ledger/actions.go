// Copyright (c) 2025 The Stakewell developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"fmt"
	"math/big"

	"github.com/stakewell/stakewell/eventdb"
	"github.com/stakewell/stakewell/ledger/pool"
	"github.com/stakewell/stakewell/ledger/reverts"
	"github.com/stakewell/stakewell/ledger/stake"
	"github.com/stakewell/stakewell/ledger/unstake"
	"github.com/stakewell/stakewell/stakewell"
)

// CreatePool registers a new active pool and returns it. Manager only.
func (l *Ledger) CreatePool(caller stakewell.Address, native bool, asset *stakewell.Address, apr uint32, lockDuration uint64) (*pool.Pool, error) {
	now, err := l.begin()
	if err != nil {
		return nil, err
	}
	defer l.end()

	logger.Debug("creating pool", "caller", caller, "native", native, "apr", apr, "lockDuration", lockDuration)

	if err := l.requireManager(caller); err != nil {
		return nil, err
	}
	p, err := l.pools.Create(native, asset, apr, lockDuration, now)
	if err != nil {
		logger.Info("create pool failed", "caller", caller, "error", err)
		return nil, err
	}

	count, err := l.pools.Count()
	if err != nil {
		return nil, err
	}
	metricPools.Set(int64(count))

	l.record(&eventdb.Event{
		Kind:      eventdb.KindPoolCreated,
		Timestamp: now,
		Principal: &caller,
		PoolID:    u64ptr(p.ID),
		Detail:    fmt.Sprintf("native=%t apr=%d lockDuration=%d", native, apr, lockDuration),
	})
	logger.Info("created pool", "poolID", p.ID, "apr", apr)
	return p, nil
}

// SetPoolActive toggles a pool's activation flag. Deactivation blocks new
// stakes only. Manager only.
func (l *Ledger) SetPoolActive(caller stakewell.Address, poolID uint64, active bool) (*pool.Pool, error) {
	now, err := l.begin()
	if err != nil {
		return nil, err
	}
	defer l.end()

	logger.Debug("setting pool active", "caller", caller, "poolID", poolID, "active", active)

	if err := l.requireManager(caller); err != nil {
		return nil, err
	}
	p, changed, err := l.pools.SetActive(poolID, active)
	if err != nil {
		logger.Info("set pool active failed", "poolID", poolID, "error", err)
		return nil, err
	}
	if changed {
		l.record(&eventdb.Event{
			Kind:      eventdb.KindPoolStatus,
			Timestamp: now,
			Principal: &caller,
			PoolID:    u64ptr(poolID),
			Detail:    fmt.Sprintf("active=%t", active),
		})
		logger.Info("pool status changed", "poolID", poolID, "active", active)
	}
	return p, nil
}

// Stake deposits amount into the pool for the caller. For a native pool the
// attached value must equal amount and is forwarded to the treasury; for an
// asset pool the attached value must be zero and amount units of the asset
// are pulled from the caller to the treasury. Returns the new stake index.
func (l *Ledger) Stake(caller stakewell.Address, poolID uint64, amount, attached *big.Int) (uint64, error) {
	now, err := l.begin()
	if err != nil {
		return 0, err
	}
	defer l.end()

	logger.Debug("staking", "caller", caller, "poolID", poolID, "amount", amount)

	p, err := l.pools.Get(poolID)
	if err != nil {
		return 0, err
	}
	if !p.Active {
		return 0, reverts.InvalidState("pool %d is not active", poolID)
	}
	if amount == nil || amount.Sign() <= 0 {
		return 0, reverts.Policy("stake amount must be positive")
	}
	minAmount, err := l.params.MinStakeAmount()
	if err != nil {
		return 0, err
	}
	if amount.Cmp(minAmount) < 0 {
		return 0, reverts.Policy("stake amount below minimum %s", minAmount)
	}

	treasury, err := l.params.Treasury()
	if err != nil {
		return 0, err
	}
	attachedValue := attachedOrZero(attached)
	if p.Native {
		if attachedValue.Cmp(amount) != 0 {
			return 0, reverts.Policy("attached value must equal stake amount")
		}
		if err := l.engine.TransferNative(caller, treasury, amount); err != nil {
			return 0, reverts.TransferFailed("native deposit: %v", err)
		}
	} else {
		if attachedValue.Sign() != 0 {
			return 0, reverts.Policy("attached value must be zero for asset pools")
		}
		if err := l.engine.TransferToken(*p.Asset, caller, treasury, amount); err != nil {
			return 0, reverts.TransferFailed("asset deposit: %v", err)
		}
	}

	index, err := l.stakes.Create(caller, poolID, amount, p.LockDuration, now)
	if err != nil {
		return 0, err
	}
	metricStakes.Add(1)

	l.record(&eventdb.Event{
		Kind:      eventdb.KindStaked,
		Timestamp: now,
		Principal: &caller,
		PoolID:    u64ptr(poolID),
		StakeIdx:  u64ptr(index),
		Amount:    amount,
	})
	logger.Info("staked", "caller", caller, "poolID", poolID, "stakeIndex", index)
	return index, nil
}

// RequestUnstake freezes the stake's reward, flips it to Pending and
// enqueues a withdrawal request for its pool. The caller must own the stake,
// which must be Staked with its lock plus the global minimum duration
// elapsed. Returns the pool ID, the request ID and the frozen reward.
func (l *Ledger) RequestUnstake(caller stakewell.Address, stakeIndex uint64) (uint64, uint64, *big.Int, error) {
	now, err := l.begin()
	if err != nil {
		return 0, 0, nil, err
	}
	defer l.end()

	logger.Debug("requesting unstake", "caller", caller, "stakeIndex", stakeIndex)

	rec, err := l.stakes.Get(caller, stakeIndex)
	if err != nil {
		return 0, 0, nil, err
	}
	if rec.Status != stake.StatusStaked {
		return 0, 0, nil, reverts.InvalidState("stake %d of %s is %s, expected staked", stakeIndex, caller, rec.Status)
	}
	minDuration, err := l.params.MinStakeDuration()
	if err != nil {
		return 0, 0, nil, err
	}
	if !rec.Unlocked(now, minDuration) {
		return 0, 0, nil, reverts.Policy("stake %d of %s is locked until %d", stakeIndex, caller, rec.StartTime+rec.LockDuration+minDuration)
	}
	p, err := l.pools.Get(rec.PoolID)
	if err != nil {
		return 0, 0, nil, err
	}

	reward := rec.RewardAt(now, p.APR)
	if _, err := l.stakes.MarkPending(caller, stakeIndex, reward); err != nil {
		return 0, 0, nil, err
	}
	requestID, err := l.requests.Append(rec.PoolID, &unstake.Request{
		Owner:      caller,
		StakeIndex: stakeIndex,
		Amount:     new(big.Int).Set(rec.Amount),
		Reward:     reward,
		Timestamp:  now,
	})
	if err != nil {
		return 0, 0, nil, err
	}
	metricRequests.Add(1)

	l.record(&eventdb.Event{
		Kind:      eventdb.KindUnstakeRequested,
		Timestamp: now,
		Principal: &caller,
		PoolID:    u64ptr(rec.PoolID),
		StakeIdx:  u64ptr(stakeIndex),
		RequestID: u64ptr(requestID),
		Amount:    rec.Amount,
		Reward:    reward,
	})
	logger.Info("unstake requested", "caller", caller, "poolID", rec.PoolID, "requestID", requestID)
	return rec.PoolID, requestID, reward, nil
}

// CompleteUnstake settles one request: principal plus frozen reward move
// from the settling manager to the original requester and both the request
// and its stake become Completed. For a native pool the attached value must
// cover the total; exactly the total is pulled, so any surplus never leaves
// the manager. Manager only.
func (l *Ledger) CompleteUnstake(caller stakewell.Address, poolID, requestID uint64, attached *big.Int) (*big.Int, error) {
	now, err := l.begin()
	if err != nil {
		return nil, err
	}
	defer l.end()

	logger.Debug("completing unstake", "caller", caller, "poolID", poolID, "requestID", requestID)

	if err := l.requireManager(caller); err != nil {
		return nil, err
	}
	p, err := l.pools.Get(poolID)
	if err != nil {
		return nil, err
	}
	total, err := l.settle(caller, p, requestID, attachedOrZero(attached), now)
	if err != nil {
		logger.Info("complete unstake failed", "poolID", poolID, "requestID", requestID, "error", err)
		return nil, err
	}
	metricSettlements.Add(1)
	logger.Info("unstake completed", "poolID", poolID, "requestID", requestID, "total", total)
	return total, nil
}

// settle validates and pays out one pending request, emitting its event.
// The request and its referenced stake must both be Pending; the two move in
// lockstep, so any mismatch indicates data corruption and fails loudly.
func (l *Ledger) settle(caller stakewell.Address, p *pool.Pool, requestID uint64, attached *big.Int, now uint64) (*big.Int, error) {
	req, err := l.requests.Get(p.ID, requestID)
	if err != nil {
		return nil, err
	}
	rec, err := l.stakes.Get(req.Owner, req.StakeIndex)
	if err != nil {
		return nil, err
	}
	if rec.Status != stake.StatusPending {
		return nil, reverts.InvalidState("request %d of pool %d is %s, expected pending", requestID, p.ID, rec.Status)
	}
	if rec.PoolID != p.ID {
		return nil, reverts.InvalidState("request %d of pool %d references a stake of pool %d", requestID, p.ID, rec.PoolID)
	}

	total := req.Total()
	if p.Native {
		if attached.Cmp(total) < 0 {
			return nil, reverts.Policy("attached value %s below required total %s", attached, total)
		}
		if err := l.engine.TransferNative(caller, req.Owner, total); err != nil {
			return nil, reverts.TransferFailed("native payout: %v", err)
		}
	} else {
		if err := l.engine.TransferToken(*p.Asset, caller, req.Owner, total); err != nil {
			return nil, reverts.TransferFailed("asset payout: %v", err)
		}
	}
	if _, err := l.stakes.MarkCompleted(req.Owner, req.StakeIndex); err != nil {
		return nil, err
	}

	l.record(&eventdb.Event{
		Kind:      eventdb.KindUnstakeCompleted,
		Timestamp: now,
		Principal: &req.Owner,
		PoolID:    u64ptr(p.ID),
		StakeIdx:  u64ptr(req.StakeIndex),
		RequestID: u64ptr(requestID),
		Amount:    req.Amount,
		Reward:    req.Reward,
	})
	return total, nil
}

// BatchCompleteUnstake settles an explicit list of requests, skipping (not
// failing) entries that are no longer Pending. Pass one sums the required
// native value across the still-valid entries so the caller can attach
// exactly that sum; pass two performs the transfers and status flips,
// re-validating each entry. Returns the number of requests processed.
func (l *Ledger) BatchCompleteUnstake(caller stakewell.Address, poolID uint64, requestIDs []uint64, attached *big.Int) (uint64, error) {
	now, err := l.begin()
	if err != nil {
		return 0, err
	}
	defer l.end()

	logger.Debug("batch completing unstakes", "caller", caller, "poolID", poolID, "count", len(requestIDs))

	if err := l.requireManager(caller); err != nil {
		return 0, err
	}
	if len(requestIDs) == 0 {
		return 0, reverts.Policy("empty request list")
	}
	p, err := l.pools.Get(poolID)
	if err != nil {
		return 0, err
	}

	// pass one: aggregate native requirement over still-pending entries
	if p.Native {
		required := new(big.Int)
		for _, id := range requestIDs {
			req, err := l.pendingRequest(p.ID, id)
			if err != nil {
				return 0, err
			}
			if req == nil {
				continue
			}
			required.Add(required, req.Total())
		}
		if attachedOrZero(attached).Cmp(required) < 0 {
			return 0, reverts.Policy("attached value below required aggregate %s", required)
		}
	}

	// pass two: settle, re-validating pending-ness per entry
	var (
		processed uint64
		settleErr error
	)
	for _, id := range requestIDs {
		req, err := l.pendingRequest(p.ID, id)
		if err != nil {
			settleErr = err
			break
		}
		if req == nil {
			continue
		}
		if _, err := l.settle(caller, p, id, req.Total(), now); err != nil {
			settleErr = err
			break
		}
		processed++
	}
	metricSettlements.Add(int64(processed))

	// the summary is recorded even when settlement stops early, entries
	// settled before the failure are committed and must stay auditable
	l.record(&eventdb.Event{
		Kind:      eventdb.KindBatchCompleted,
		Timestamp: now,
		Principal: &caller,
		PoolID:    u64ptr(poolID),
		Detail:    fmt.Sprintf("requestsProcessed=%d", processed),
	})
	if settleErr != nil {
		logger.Info("batch stopped early", "poolID", poolID, "processed", processed, "err", settleErr)
		return processed, settleErr
	}
	logger.Info("batch completed", "poolID", poolID, "processed", processed)
	return processed, nil
}

// pendingRequest returns the request when it exists and its stake is still
// Pending, nil when the entry should be skipped.
func (l *Ledger) pendingRequest(poolID, requestID uint64) (*unstake.Request, error) {
	req, err := l.requests.Get(poolID, requestID)
	if err != nil {
		if reverts.IsKind(err, reverts.KindNotFound) {
			return nil, nil
		}
		return nil, err
	}
	rec, err := l.stakes.Get(req.Owner, req.StakeIndex)
	if err != nil {
		if reverts.IsKind(err, reverts.KindNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if rec.Status != stake.StatusPending || rec.PoolID != poolID {
		return nil, nil
	}
	return req, nil
}

// SetMinStakeAmount updates the floor on new stakes. Manager only.
func (l *Ledger) SetMinStakeAmount(caller stakewell.Address, amount *big.Int) error {
	now, err := l.begin()
	if err != nil {
		return err
	}
	defer l.end()

	if err := l.requireManager(caller); err != nil {
		return err
	}
	if amount == nil || amount.Sign() < 0 {
		return reverts.Policy("minimum stake amount must not be negative")
	}
	if err := l.params.SetMinStakeAmount(amount); err != nil {
		return err
	}
	l.record(&eventdb.Event{
		Kind:      eventdb.KindConfigChanged,
		Timestamp: now,
		Principal: &caller,
		Amount:    amount,
		Detail:    "minStakeAmount",
	})
	logger.Info("minimum stake amount updated", "amount", amount)
	return nil
}

// SetMinStakeDuration updates the global waiting period. Manager only.
func (l *Ledger) SetMinStakeDuration(caller stakewell.Address, seconds uint64) error {
	now, err := l.begin()
	if err != nil {
		return err
	}
	defer l.end()

	if err := l.requireManager(caller); err != nil {
		return err
	}
	if err := l.params.SetMinStakeDuration(seconds); err != nil {
		return err
	}
	l.record(&eventdb.Event{
		Kind:      eventdb.KindConfigChanged,
		Timestamp: now,
		Principal: &caller,
		Detail:    fmt.Sprintf("minStakeDuration=%d", seconds),
	})
	logger.Info("minimum stake duration updated", "seconds", seconds)
	return nil
}

// SetTreasury updates the deposit destination. Manager only.
func (l *Ledger) SetTreasury(caller, treasury stakewell.Address) error {
	now, err := l.begin()
	if err != nil {
		return err
	}
	defer l.end()

	if err := l.requireManager(caller); err != nil {
		return err
	}
	if treasury.IsZero() {
		return reverts.Policy("treasury address is zero")
	}
	if err := l.params.SetTreasury(treasury); err != nil {
		return err
	}
	l.record(&eventdb.Event{
		Kind:      eventdb.KindConfigChanged,
		Timestamp: now,
		Principal: &caller,
		Detail:    "treasury=" + treasury.String(),
	})
	logger.Info("treasury updated", "treasury", treasury)
	return nil
}

// SetManager grants or revokes manager status. Owner only.
func (l *Ledger) SetManager(caller, principal stakewell.Address, enabled bool) error {
	now, err := l.begin()
	if err != nil {
		return err
	}
	defer l.end()

	if err := l.requireOwner(caller); err != nil {
		return err
	}
	changed, err := l.auth.SetManager(principal, enabled, now)
	if err != nil {
		return err
	}
	if changed {
		l.record(&eventdb.Event{
			Kind:      eventdb.KindManagerChanged,
			Timestamp: now,
			Principal: &principal,
			Detail:    fmt.Sprintf("enabled=%t", enabled),
		})
		logger.Info("manager set", "principal", principal, "enabled", enabled)
	}
	return nil
}
