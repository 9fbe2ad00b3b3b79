// Copyright (c) 2025 The Stakewell developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package pool implements the pool registry: creation, activation toggling
// and paginated views. Pool identifiers are dense, assigned at creation and
// never reused.
package pool

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/stakewell/stakewell/kv"
	"github.com/stakewell/stakewell/ledger/reverts"
	"github.com/stakewell/stakewell/stakewell"
)

const cacheSize = 256

// Service is the pool registry.
type Service struct {
	repo  *storage
	cache *lru.Cache // poolID -> *Pool, every operation validates its pool
}

// New creates the registry over the given store.
func New(store kv.GetPutter) *Service {
	cache, _ := lru.New(cacheSize)
	return &Service{
		repo:  newStorage(store),
		cache: cache,
	}
}

// Create validates the configuration and appends a new active pool,
// assigning the next sequential identifier.
func (s *Service) Create(native bool, asset *stakewell.Address, apr uint32, lockDuration uint64, now uint64) (*Pool, error) {
	if native != (asset == nil) {
		return nil, reverts.Policy("native flag and asset reference are inconsistent")
	}
	if !native && asset.IsZero() {
		return nil, reverts.Policy("asset reference is zero")
	}
	if apr == 0 {
		return nil, reverts.Policy("apr must be positive")
	}

	id, err := s.repo.count()
	if err != nil {
		return nil, err
	}
	p := &Pool{
		ID:           id,
		Native:       native,
		Asset:        asset,
		APR:          apr,
		LockDuration: lockDuration,
		Active:       true,
		CreatedAt:    now,
	}
	// record and counter commit atomically
	batch := s.repo.src.NewBatch()
	if err := s.repo.setPool(poolsBucket.NewPutter(batch), p); err != nil {
		return nil, err
	}
	if err := s.repo.setCount(metaBucket.NewPutter(batch), id+1); err != nil {
		return nil, err
	}
	if err := batch.Write(); err != nil {
		return nil, err
	}
	s.cache.Add(id, p)
	return p, nil
}

// Get returns the pool, or a not-found revert for unknown identifiers.
func (s *Service) Get(id uint64) (*Pool, error) {
	if cached, ok := s.cache.Get(id); ok {
		return cached.(*Pool), nil
	}
	p, err := s.repo.getPool(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, reverts.NotFound("pool %d does not exist", id)
	}
	s.cache.Add(id, p)
	return p, nil
}

// SetActive flips the activation flag. Deactivation only blocks new stakes,
// existing stakes are unaffected. Returns the pool and whether the flag changed.
func (s *Service) SetActive(id uint64, active bool) (*Pool, bool, error) {
	p, err := s.Get(id)
	if err != nil {
		return nil, false, err
	}
	if p.Active == active {
		return p, false, nil
	}
	updated := *p
	updated.Active = active
	if err := s.repo.setPool(s.repo.pools, &updated); err != nil {
		return nil, false, err
	}
	s.cache.Add(id, &updated)
	return &updated, true, nil
}

// Count returns the total number of pools ever created.
func (s *Service) Count() (uint64, error) {
	return s.repo.count()
}

// All returns pools ordered by ascending identifier, at most limit entries
// starting at offset. An offset beyond the known pool count is rejected.
func (s *Service) All(offset, limit uint64) ([]*Pool, error) {
	count, err := s.repo.count()
	if err != nil {
		return nil, err
	}
	if offset > count {
		return nil, reverts.NotFound("offset %d beyond pool count %d", offset, count)
	}
	end := offset + limit
	if end > count {
		end = count
	}
	pools := make([]*Pool, 0, end-offset)
	for id := offset; id < end; id++ {
		p, err := s.Get(id)
		if err != nil {
			return nil, err
		}
		pools = append(pools, p)
	}
	return pools, nil
}

// Active returns active pools ordered by ascending identifier. The offset
// counts over the active subset, not raw identifiers; an offset beyond the
// active subset yields an empty result since that bound is not knowable
// without a scan.
func (s *Service) Active(offset, limit uint64) ([]*Pool, error) {
	count, err := s.repo.count()
	if err != nil {
		return nil, err
	}
	var (
		skipped uint64
		pools   = make([]*Pool, 0, limit)
	)
	for id := uint64(0); id < count && uint64(len(pools)) < limit; id++ {
		p, err := s.Get(id)
		if err != nil {
			return nil, err
		}
		if !p.Active {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		pools = append(pools, p)
	}
	return pools, nil
}
