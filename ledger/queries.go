// Copyright (c) 2025 The Stakewell developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/big"

	"github.com/stakewell/stakewell/ledger/pool"
	"github.com/stakewell/stakewell/ledger/stake"
	"github.com/stakewell/stakewell/ledger/unstake"
	"github.com/stakewell/stakewell/stakewell"
)

// StakeView is a stake record resolved at query time: for stakes still
// accruing, Reward reflects the reward as of the current clock reading.
type StakeView struct {
	Owner        stakewell.Address `json:"owner"`
	Index        uint64            `json:"index"`
	PoolID       uint64            `json:"poolID"`
	Amount       *big.Int          `json:"amount"`
	StartTime    uint64            `json:"startTime"`
	LockDuration uint64            `json:"lockDuration"`
	Reward       *big.Int          `json:"reward"`
	Status       stake.Status      `json:"status"`
}

// GetPool returns the pool by ID.
func (l *Ledger) GetPool(id uint64) (*pool.Pool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.pools.Get(id)
}

// PoolCount returns the number of pools ever created.
func (l *Ledger) PoolCount() (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.pools.Count()
}

// AllPools returns a page over all pools in creation order.
func (l *Ledger) AllPools(offset, limit uint64) ([]*pool.Pool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.pools.All(offset, limit)
}

// ActivePools returns a page over the pools currently accepting stakes.
func (l *Ledger) ActivePools(offset, limit uint64) ([]*pool.Pool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.pools.Active(offset, limit)
}

// TotalStaked returns the pool's outstanding principal: deposits whose
// withdrawal has not yet been requested.
func (l *Ledger) TotalStaked(poolID uint64) (*big.Int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if _, err := l.pools.Get(poolID); err != nil {
		return nil, err
	}
	return l.stakes.TotalStaked(poolID)
}

// StakeCount returns how many stakes the owner holds.
func (l *Ledger) StakeCount(owner stakewell.Address) (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.stakes.Count(owner)
}

// GetStake returns one stake of the owner with its reward resolved.
func (l *Ledger) GetStake(owner stakewell.Address, index uint64) (*StakeView, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	rec, err := l.stakes.Get(owner, index)
	if err != nil {
		return nil, err
	}
	return l.stakeView(owner, index, rec)
}

// UserStakes returns a page over the owner's stakes with rewards resolved.
func (l *Ledger) UserStakes(owner stakewell.Address, offset, limit uint64) ([]*StakeView, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	recs, err := l.stakes.List(owner, offset, limit)
	if err != nil {
		return nil, err
	}
	views := make([]*StakeView, 0, len(recs))
	for i, rec := range recs {
		v, err := l.stakeView(owner, offset+uint64(i), rec)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// RewardOf returns the reward of one stake as of now: accruing while
// Staked, frozen once a withdrawal has been requested.
func (l *Ledger) RewardOf(owner stakewell.Address, index uint64) (*big.Int, error) {
	v, err := l.GetStake(owner, index)
	if err != nil {
		return nil, err
	}
	return v.Reward, nil
}

func (l *Ledger) stakeView(owner stakewell.Address, index uint64, rec *stake.Record) (*StakeView, error) {
	reward := rec.Reward
	if rec.Status == stake.StatusStaked {
		p, err := l.pools.Get(rec.PoolID)
		if err != nil {
			return nil, err
		}
		reward = rec.RewardAt(l.clock(), p.APR)
	}
	return &StakeView{
		Owner:        owner,
		Index:        index,
		PoolID:       rec.PoolID,
		Amount:       rec.Amount,
		StartTime:    rec.StartTime,
		LockDuration: rec.LockDuration,
		Reward:       reward,
		Status:       rec.Status,
	}, nil
}

// RequestCount returns how many withdrawal requests the pool has received.
func (l *Ledger) RequestCount(poolID uint64) (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if _, err := l.pools.Get(poolID); err != nil {
		return 0, err
	}
	return l.requests.Count(poolID)
}

// GetRequest returns one withdrawal request with its settlement status,
// which is read off the referenced stake record.
func (l *Ledger) GetRequest(poolID, requestID uint64) (*unstake.View, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	req, err := l.requests.Get(poolID, requestID)
	if err != nil {
		return nil, err
	}
	return l.requestView(poolID, requestID, req)
}

// UnstakeRequests returns a page over the pool's withdrawal requests in
// submission order.
func (l *Ledger) UnstakeRequests(poolID, offset, limit uint64) ([]*unstake.View, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if _, err := l.pools.Get(poolID); err != nil {
		return nil, err
	}
	reqs, ids, err := l.requests.List(poolID, offset, limit)
	if err != nil {
		return nil, err
	}
	views := make([]*unstake.View, 0, len(reqs))
	for i, req := range reqs {
		v, err := l.requestView(poolID, ids[i], req)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

func (l *Ledger) requestView(poolID, requestID uint64, req *unstake.Request) (*unstake.View, error) {
	rec, err := l.stakes.Get(req.Owner, req.StakeIndex)
	if err != nil {
		return nil, err
	}
	return &unstake.View{
		PoolID:     poolID,
		ID:         requestID,
		Owner:      req.Owner,
		StakeIndex: req.StakeIndex,
		Amount:     req.Amount,
		Reward:     req.Reward,
		Timestamp:  req.Timestamp,
		Status:     rec.Status,
	}, nil
}

// Owner returns the ledger owner.
func (l *Ledger) Owner() (stakewell.Address, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.auth.Owner()
}

// IsManager reports whether addr currently holds manager status.
func (l *Ledger) IsManager(addr stakewell.Address) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.auth.IsManager(addr)
}

// Managers returns all addresses currently holding manager status.
func (l *Ledger) Managers() ([]stakewell.Address, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.auth.Managers()
}

// MinStakeAmount returns the current floor on new stakes.
func (l *Ledger) MinStakeAmount() (*big.Int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.params.MinStakeAmount()
}

// MinStakeDuration returns the global waiting period added to every lock.
func (l *Ledger) MinStakeDuration() (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.params.MinStakeDuration()
}

// Treasury returns the deposit destination.
func (l *Ledger) Treasury() (stakewell.Address, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.params.Treasury()
}
