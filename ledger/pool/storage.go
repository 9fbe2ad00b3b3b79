// Copyright (c) 2025 The Stakewell developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/stakewell/stakewell/kv"
)

var countKey = []byte("count")

const (
	poolsBucket kv.Bucket = "p" // poolID (big-endian) -> rlp(Pool)
	metaBucket  kv.Bucket = "pm"
)

type storage struct {
	src   kv.GetPutter
	pools kv.GetPutter
	meta  kv.GetPutter
}

func newStorage(src kv.GetPutter) *storage {
	return &storage{
		src:   src,
		pools: poolsBucket.NewStore(src),
		meta:  metaBucket.NewStore(src),
	}
}

func poolKey(id uint64) []byte {
	var key [8]byte
	binary.BigEndian.PutUint64(key[:], id)
	return key[:]
}

func (s *storage) getPool(id uint64) (*Pool, error) {
	raw, err := s.pools.Get(poolKey(id))
	if err != nil {
		if s.pools.IsNotFound(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get pool")
	}
	var p Pool
	if err := rlp.DecodeBytes(raw, &p); err != nil {
		return nil, errors.Wrap(err, "failed to decode pool")
	}
	return &p, nil
}

func (s *storage) setPool(w kv.Putter, p *Pool) error {
	raw, err := rlp.EncodeToBytes(p)
	if err != nil {
		return errors.Wrap(err, "failed to encode pool")
	}
	return errors.Wrap(w.Put(poolKey(p.ID), raw), "failed to set pool")
}

func (s *storage) count() (uint64, error) {
	raw, err := s.meta.Get(countKey)
	if err != nil {
		if s.meta.IsNotFound(err) {
			return 0, nil
		}
		return 0, errors.Wrap(err, "failed to get pool count")
	}
	return binary.BigEndian.Uint64(raw), nil
}

func (s *storage) setCount(w kv.Putter, n uint64) error {
	return errors.Wrap(w.Put(countKey, poolKey(n)), "failed to set pool count")
}
