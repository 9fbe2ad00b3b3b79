// Copyright (c) 2025 The Stakewell developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package stake owns the per-user stake arenas, the reward-accrual math and
// the stake status machine. The aggregate staked total per pool tracks the
// sum of amounts over stakes currently in Staked status.
package stake

import (
	"math/big"

	"github.com/stakewell/stakewell/kv"
	"github.com/stakewell/stakewell/ledger/reverts"
	"github.com/stakewell/stakewell/stakewell"
)

// Service is the stake ledger.
type Service struct {
	repo *storage
}

// New creates the stake ledger over the given store.
func New(store kv.GetPutter) *Service {
	return &Service{repo: newStorage(store)}
}

// Count returns the number of stakes ever created by owner.
func (s *Service) Count(owner stakewell.Address) (uint64, error) {
	return s.repo.getCount(owner)
}

// Get returns the stake record, or a not-found revert.
func (s *Service) Get(owner stakewell.Address, index uint64) (*Record, error) {
	r, err := s.repo.getRecord(owner, index)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, reverts.NotFound("stake %d of %s does not exist", index, owner)
	}
	return r, nil
}

// List returns at most limit records starting at offset. An offset beyond
// the owner's stake count is rejected.
func (s *Service) List(owner stakewell.Address, offset, limit uint64) ([]*Record, error) {
	count, err := s.repo.getCount(owner)
	if err != nil {
		return nil, err
	}
	if offset > count {
		return nil, reverts.NotFound("offset %d beyond stake count %d", offset, count)
	}
	end := offset + limit
	if end > count {
		end = count
	}
	records := make([]*Record, 0, end-offset)
	for index := offset; index < end; index++ {
		r, err := s.Get(owner, index)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

// Create appends a new Staked record for owner, increments the owner's
// stake counter and the pool's staked total, and returns the stake index.
func (s *Service) Create(owner stakewell.Address, poolID uint64, amount *big.Int, lockDuration, now uint64) (uint64, error) {
	index, err := s.repo.getCount(owner)
	if err != nil {
		return 0, err
	}
	r := &Record{
		PoolID:       poolID,
		Amount:       new(big.Int).Set(amount),
		StartTime:    now,
		LockDuration: lockDuration,
		Reward:       new(big.Int),
		Status:       StatusStaked,
	}
	// record, counter and total commit atomically
	batch := s.repo.src.NewBatch()
	if err := s.repo.setRecord(recordsBucket.NewPutter(batch), owner, index, r); err != nil {
		return 0, err
	}
	if err := s.repo.setCount(countsBucket.NewPutter(batch), owner, index+1); err != nil {
		return 0, err
	}
	total, err := s.repo.getTotal(poolID)
	if err != nil {
		return 0, err
	}
	if err := s.repo.setTotal(totalsBucket.NewPutter(batch), poolID, total.Add(total, amount)); err != nil {
		return 0, err
	}
	if err := batch.Write(); err != nil {
		return 0, err
	}
	return index, nil
}

// MarkPending transitions a Staked record to Pending, freezing the given
// reward and removing the principal from the pool's staked total.
func (s *Service) MarkPending(owner stakewell.Address, index uint64, reward *big.Int) (*Record, error) {
	r, err := s.Get(owner, index)
	if err != nil {
		return nil, err
	}
	if r.Status != StatusStaked {
		return nil, reverts.InvalidState("stake %d of %s is %s, expected staked", index, owner, r.Status)
	}
	r.Status = StatusPending
	r.Reward = new(big.Int).Set(reward)

	// status flip and total removal commit atomically
	batch := s.repo.src.NewBatch()
	if err := s.repo.setRecord(recordsBucket.NewPutter(batch), owner, index, r); err != nil {
		return nil, err
	}
	total, err := s.repo.getTotal(r.PoolID)
	if err != nil {
		return nil, err
	}
	total.Sub(total, r.Amount)
	if total.Sign() < 0 {
		total.SetUint64(0)
	}
	if err := s.repo.setTotal(totalsBucket.NewPutter(batch), r.PoolID, total); err != nil {
		return nil, err
	}
	if err := batch.Write(); err != nil {
		return nil, err
	}
	return r, nil
}

// MarkCompleted transitions a Pending record to Completed.
func (s *Service) MarkCompleted(owner stakewell.Address, index uint64) (*Record, error) {
	r, err := s.Get(owner, index)
	if err != nil {
		return nil, err
	}
	if r.Status != StatusPending {
		return nil, reverts.InvalidState("stake %d of %s is %s, expected pending", index, owner, r.Status)
	}
	r.Status = StatusCompleted
	if err := s.repo.setRecord(s.repo.records, owner, index, r); err != nil {
		return nil, err
	}
	return r, nil
}

// TotalStaked returns the sum of amounts over stakes currently in Staked
// status in the pool.
func (s *Service) TotalStaked(poolID uint64) (*big.Int, error) {
	return s.repo.getTotal(poolID)
}
