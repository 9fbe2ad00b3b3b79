// Copyright (c) 2025 The Stakewell developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package authority keeps the owner/manager role table.
// The owner is a distinguished singleton principal with the exclusive right
// to grant and revoke manager status. Managers administer pools and settle
// withdrawal requests.
package authority

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/stakewell/stakewell/kv"
	"github.com/stakewell/stakewell/stakewell"
)

var ownerKey = []byte("owner")

func managerKey(addr stakewell.Address) []byte {
	return append([]byte("m"), addr.Bytes()...)
}

type entry struct {
	Since uint64 // time the manager role was granted
}

// Authority implements the role table over a kv store.
type Authority struct {
	store kv.GetPutter
}

// New creates an authority instance over the given store.
func New(store kv.GetPutter) *Authority {
	return &Authority{store}
}

// Init sets the owner once. Subsequent calls are no-ops returning false.
func (a *Authority) Init(owner stakewell.Address) (bool, error) {
	has, err := a.store.Has(ownerKey)
	if err != nil {
		return false, errors.Wrap(err, "check owner")
	}
	if has {
		return false, nil
	}
	if err := a.store.Put(ownerKey, owner.Bytes()); err != nil {
		return false, errors.Wrap(err, "set owner")
	}
	return true, nil
}

// Owner returns the distinguished owner principal.
func (a *Authority) Owner() (stakewell.Address, error) {
	raw, err := a.store.Get(ownerKey)
	if err != nil {
		if a.store.IsNotFound(err) {
			return stakewell.Address{}, errors.New("authority not initialised")
		}
		return stakewell.Address{}, errors.Wrap(err, "get owner")
	}
	return stakewell.BytesToAddress(raw), nil
}

// IsOwner reports whether addr is the owner.
func (a *Authority) IsOwner(addr stakewell.Address) (bool, error) {
	owner, err := a.Owner()
	if err != nil {
		return false, err
	}
	return owner == addr, nil
}

// IsManager reports whether addr holds the manager role.
func (a *Authority) IsManager(addr stakewell.Address) (bool, error) {
	has, err := a.store.Has(managerKey(addr))
	if err != nil {
		return false, errors.Wrap(err, "check manager")
	}
	return has, nil
}

// SetManager grants or revokes the manager role.
// Returns whether the table changed.
func (a *Authority) SetManager(addr stakewell.Address, enabled bool, now uint64) (bool, error) {
	key := managerKey(addr)
	has, err := a.store.Has(key)
	if err != nil {
		return false, errors.Wrap(err, "check manager")
	}
	if enabled == has {
		return false, nil
	}
	if !enabled {
		if err := a.store.Delete(key); err != nil {
			return false, errors.Wrap(err, "revoke manager")
		}
		return true, nil
	}
	raw, err := rlp.EncodeToBytes(&entry{Since: now})
	if err != nil {
		return false, errors.Wrap(err, "encode manager entry")
	}
	if err := a.store.Put(key, raw); err != nil {
		return false, errors.Wrap(err, "grant manager")
	}
	return true, nil
}

// Managers lists all principals currently holding the manager role.
func (a *Authority) Managers() ([]stakewell.Address, error) {
	iter := a.store.NewIterator(kv.Range{Start: []byte("m"), Limit: []byte("n")})
	defer iter.Release()

	var managers []stakewell.Address
	for iter.Next() {
		key := iter.Key()
		if len(key) != 1+stakewell.AddressLength {
			continue
		}
		managers = append(managers, stakewell.BytesToAddress(key[1:]))
	}
	if err := iter.Error(); err != nil {
		return nil, errors.Wrap(err, "iterate managers")
	}
	return managers, nil
}
