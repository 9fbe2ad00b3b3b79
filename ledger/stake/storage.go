// Copyright (c) 2025 The Stakewell developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stake

import (
	"encoding/binary"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/stakewell/stakewell/kv"
	"github.com/stakewell/stakewell/stakewell"
)

const (
	recordsBucket kv.Bucket = "s"  // owner || index (big-endian) -> rlp(Record)
	countsBucket  kv.Bucket = "sn" // owner -> count
	totalsBucket  kv.Bucket = "st" // poolID (big-endian) -> rlp(big.Int)
)

type storage struct {
	src     kv.GetPutter
	records kv.GetPutter
	counts  kv.GetPutter
	totals  kv.GetPutter
}

func newStorage(src kv.GetPutter) *storage {
	return &storage{
		src:     src,
		records: recordsBucket.NewStore(src),
		counts:  countsBucket.NewStore(src),
		totals:  totalsBucket.NewStore(src),
	}
}

func recordKey(owner stakewell.Address, index uint64) []byte {
	key := make([]byte, stakewell.AddressLength+8)
	copy(key, owner.Bytes())
	binary.BigEndian.PutUint64(key[stakewell.AddressLength:], index)
	return key
}

func totalKey(poolID uint64) []byte {
	var key [8]byte
	binary.BigEndian.PutUint64(key[:], poolID)
	return key[:]
}

func (s *storage) getRecord(owner stakewell.Address, index uint64) (*Record, error) {
	raw, err := s.records.Get(recordKey(owner, index))
	if err != nil {
		if s.records.IsNotFound(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get stake record")
	}
	var r Record
	if err := rlp.DecodeBytes(raw, &r); err != nil {
		return nil, errors.Wrap(err, "failed to decode stake record")
	}
	return &r, nil
}

func (s *storage) setRecord(w kv.Putter, owner stakewell.Address, index uint64, r *Record) error {
	raw, err := rlp.EncodeToBytes(r)
	if err != nil {
		return errors.Wrap(err, "failed to encode stake record")
	}
	return errors.Wrap(w.Put(recordKey(owner, index), raw), "failed to set stake record")
}

func (s *storage) getCount(owner stakewell.Address) (uint64, error) {
	raw, err := s.counts.Get(owner.Bytes())
	if err != nil {
		if s.counts.IsNotFound(err) {
			return 0, nil
		}
		return 0, errors.Wrap(err, "failed to get stake count")
	}
	return binary.BigEndian.Uint64(raw), nil
}

func (s *storage) setCount(w kv.Putter, owner stakewell.Address, n uint64) error {
	var raw [8]byte
	binary.BigEndian.PutUint64(raw[:], n)
	return errors.Wrap(w.Put(owner.Bytes(), raw[:]), "failed to set stake count")
}

func (s *storage) getTotal(poolID uint64) (*big.Int, error) {
	raw, err := s.totals.Get(totalKey(poolID))
	if err != nil {
		if s.totals.IsNotFound(err) {
			return new(big.Int), nil
		}
		return nil, errors.Wrap(err, "failed to get pool total")
	}
	var v big.Int
	if err := rlp.DecodeBytes(raw, &v); err != nil {
		return nil, errors.Wrap(err, "failed to decode pool total")
	}
	return &v, nil
}

func (s *storage) setTotal(w kv.Putter, poolID uint64, v *big.Int) error {
	raw, err := rlp.EncodeToBytes(v)
	if err != nil {
		return errors.Wrap(err, "failed to encode pool total")
	}
	return errors.Wrap(w.Put(totalKey(poolID), raw), "failed to set pool total")
}
