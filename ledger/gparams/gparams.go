// Copyright (c) 2025 The Stakewell developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package gparams keeps the ledger-wide tunable configuration:
// the minimum stake amount, the minimum stake duration layered on top of
// every pool's lock duration, and the treasury address credited with all
// deposited principal.
package gparams

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/stakewell/stakewell/kv"
	"github.com/stakewell/stakewell/stakewell"
)

// Parameter keys.
var (
	KeyMinStakeAmount   = []byte("min-stake-amount")
	KeyMinStakeDuration = []byte("min-stake-duration")
	KeyTreasury         = []byte("treasury")
)

// Params provides access to the global configuration.
type Params struct {
	store kv.GetPutter
}

// New creates a params instance over the given store.
func New(store kv.GetPutter) *Params {
	return &Params{store}
}

// Get retrieves the numeric value for the given key, zero when unset.
func (p *Params) Get(key []byte) (*big.Int, error) {
	raw, err := p.store.Get(key)
	if err != nil {
		if p.store.IsNotFound(err) {
			return new(big.Int), nil
		}
		return nil, errors.Wrap(err, "get param")
	}
	var v big.Int
	if err := rlp.DecodeBytes(raw, &v); err != nil {
		return nil, errors.Wrap(err, "decode param")
	}
	return &v, nil
}

// Set saves the numeric value for the given key.
func (p *Params) Set(key []byte, value *big.Int) error {
	raw, err := rlp.EncodeToBytes(value)
	if err != nil {
		return errors.Wrap(err, "encode param")
	}
	return errors.Wrap(p.store.Put(key, raw), "set param")
}

// MinStakeAmount returns the floor on any new stake.
func (p *Params) MinStakeAmount() (*big.Int, error) {
	return p.Get(KeyMinStakeAmount)
}

// SetMinStakeAmount updates the floor on any new stake.
func (p *Params) SetMinStakeAmount(v *big.Int) error {
	return p.Set(KeyMinStakeAmount, v)
}

// MinStakeDuration returns the global waiting period in seconds, additive
// on top of each pool's lock duration.
func (p *Params) MinStakeDuration() (uint64, error) {
	v, err := p.Get(KeyMinStakeDuration)
	if err != nil {
		return 0, err
	}
	return v.Uint64(), nil
}

// SetMinStakeDuration updates the global waiting period.
func (p *Params) SetMinStakeDuration(seconds uint64) error {
	return p.Set(KeyMinStakeDuration, new(big.Int).SetUint64(seconds))
}

// Treasury returns the custodial destination credited with deposits.
func (p *Params) Treasury() (stakewell.Address, error) {
	raw, err := p.store.Get(KeyTreasury)
	if err != nil {
		if p.store.IsNotFound(err) {
			return stakewell.Address{}, nil
		}
		return stakewell.Address{}, errors.Wrap(err, "get treasury")
	}
	return stakewell.BytesToAddress(raw), nil
}

// SetTreasury updates the treasury address.
func (p *Params) SetTreasury(addr stakewell.Address) error {
	return errors.Wrap(p.store.Put(KeyTreasury, addr.Bytes()), "set treasury")
}
