// Copyright (c) 2025 The Stakewell developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transfer

import (
	"errors"
	"math/big"
	"sync"

	"github.com/stakewell/stakewell/stakewell"
)

// ErrInsufficientBalance is returned when the sender cannot cover a transfer.
var ErrInsufficientBalance = errors.New("insufficient balance")

// MemEngine keeps native and token balances in memory. It backs solo mode
// and tests; production deployments plug in a chain- or bank-backed engine.
type MemEngine struct {
	mu     sync.Mutex
	native map[stakewell.Address]*big.Int
	tokens map[stakewell.Address]map[stakewell.Address]*big.Int
}

var _ Engine = (*MemEngine)(nil)

// NewMemEngine creates an engine with all balances zero.
func NewMemEngine() *MemEngine {
	return &MemEngine{
		native: make(map[stakewell.Address]*big.Int),
		tokens: make(map[stakewell.Address]map[stakewell.Address]*big.Int),
	}
}

// MintNative credits amount of native currency to addr.
func (e *MemEngine) MintNative(addr stakewell.Address, amount *big.Int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.credit(e.native, addr, amount)
}

// MintToken credits amount units of asset to addr.
func (e *MemEngine) MintToken(asset, addr stakewell.Address, amount *big.Int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	book, ok := e.tokens[asset]
	if !ok {
		book = make(map[stakewell.Address]*big.Int)
		e.tokens[asset] = book
	}
	e.credit(book, addr, amount)
}

// NativeBalance returns the native balance of addr.
func (e *MemEngine) NativeBalance(addr stakewell.Address) *big.Int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if b, ok := e.native[addr]; ok {
		return new(big.Int).Set(b)
	}
	return new(big.Int)
}

// TokenBalance returns the balance of addr in asset.
func (e *MemEngine) TokenBalance(asset, addr stakewell.Address) *big.Int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if book, ok := e.tokens[asset]; ok {
		if b, ok := book[addr]; ok {
			return new(big.Int).Set(b)
		}
	}
	return new(big.Int)
}

// TransferNative implements Engine.
func (e *MemEngine) TransferNative(from, to stakewell.Address, amount *big.Int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.move(e.native, from, to, amount)
}

// TransferToken implements Engine.
func (e *MemEngine) TransferToken(asset, from, to stakewell.Address, amount *big.Int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	book, ok := e.tokens[asset]
	if !ok {
		return ErrInsufficientBalance
	}
	return e.move(book, from, to, amount)
}

func (e *MemEngine) move(book map[stakewell.Address]*big.Int, from, to stakewell.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return errors.New("negative amount")
	}
	balance, ok := book[from]
	if !ok || balance.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	balance.Sub(balance, amount)
	e.credit(book, to, amount)
	return nil
}

func (e *MemEngine) credit(book map[stakewell.Address]*big.Int, addr stakewell.Address, amount *big.Int) {
	if b, ok := book[addr]; ok {
		b.Add(b, amount)
		return
	}
	book[addr] = new(big.Int).Set(amount)
}
