// Copyright (c) 2025 The Stakewell developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package unstake keeps the per-pool withdrawal request arenas.
// The settlement state machine itself lives in the ledger facade, which
// coordinates requests with their referenced stake records.
package unstake

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/stakewell/stakewell/kv"
	"github.com/stakewell/stakewell/ledger/reverts"
)

const (
	requestsBucket kv.Bucket = "r"  // poolID || requestID (big-endian) -> rlp(Request)
	countsBucket   kv.Bucket = "rn" // poolID -> count
)

// Service is the withdrawal request ledger.
type Service struct {
	src      kv.GetPutter
	requests kv.GetPutter
	counts   kv.GetPutter
}

// New creates the request ledger over the given store.
func New(store kv.GetPutter) *Service {
	return &Service{
		src:      store,
		requests: requestsBucket.NewStore(store),
		counts:   countsBucket.NewStore(store),
	}
}

func requestKey(poolID, id uint64) []byte {
	var key [16]byte
	binary.BigEndian.PutUint64(key[:8], poolID)
	binary.BigEndian.PutUint64(key[8:], id)
	return key[:]
}

func countKey(poolID uint64) []byte {
	var key [8]byte
	binary.BigEndian.PutUint64(key[:], poolID)
	return key[:]
}

// Count returns the number of requests ever created for the pool.
func (s *Service) Count(poolID uint64) (uint64, error) {
	raw, err := s.counts.Get(countKey(poolID))
	if err != nil {
		if s.counts.IsNotFound(err) {
			return 0, nil
		}
		return 0, errors.Wrap(err, "failed to get request count")
	}
	return binary.BigEndian.Uint64(raw), nil
}

// Get returns the request, or a not-found revert.
func (s *Service) Get(poolID, id uint64) (*Request, error) {
	raw, err := s.requests.Get(requestKey(poolID, id))
	if err != nil {
		if s.requests.IsNotFound(err) {
			return nil, reverts.NotFound("request %d of pool %d does not exist", id, poolID)
		}
		return nil, errors.Wrap(err, "failed to get request")
	}
	var r Request
	if err := rlp.DecodeBytes(raw, &r); err != nil {
		return nil, errors.Wrap(err, "failed to decode request")
	}
	return &r, nil
}

// Append enqueues a request under the next sequential identifier for the
// pool and returns that identifier.
func (s *Service) Append(poolID uint64, r *Request) (uint64, error) {
	id, err := s.Count(poolID)
	if err != nil {
		return 0, err
	}
	raw, err := rlp.EncodeToBytes(r)
	if err != nil {
		return 0, errors.Wrap(err, "failed to encode request")
	}

	// record and counter commit atomically
	batch := s.src.NewBatch()
	if err := requestsBucket.NewPutter(batch).Put(requestKey(poolID, id), raw); err != nil {
		return 0, errors.Wrap(err, "failed to set request")
	}
	var count [8]byte
	binary.BigEndian.PutUint64(count[:], id+1)
	if err := countsBucket.NewPutter(batch).Put(countKey(poolID), count[:]); err != nil {
		return 0, errors.Wrap(err, "failed to set request count")
	}
	if err := batch.Write(); err != nil {
		return 0, errors.Wrap(err, "failed to write request batch")
	}
	return id, nil
}

// List returns at most limit requests starting at offset, in creation
// order. An offset beyond the pool's request count is rejected.
func (s *Service) List(poolID, offset, limit uint64) ([]*Request, []uint64, error) {
	count, err := s.Count(poolID)
	if err != nil {
		return nil, nil, err
	}
	if offset > count {
		return nil, nil, reverts.NotFound("offset %d beyond request count %d", offset, count)
	}
	end := offset + limit
	if end > count {
		end = count
	}
	requests := make([]*Request, 0, end-offset)
	ids := make([]uint64, 0, end-offset)
	for id := offset; id < end; id++ {
		r, err := s.Get(poolID, id)
		if err != nil {
			return nil, nil, err
		}
		requests = append(requests, r)
		ids = append(ids, id)
	}
	return requests, ids, nil
}
