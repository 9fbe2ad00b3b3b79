// Copyright (c) 2025 The Stakewell developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package transfer defines the value-transfer collaborator of the ledger.
// The ledger calls an Engine to move native or fungible-token value between
// parties but never holds custody itself. A failed transfer aborts the
// enclosing ledger operation.
package transfer

import (
	"math/big"

	"github.com/stakewell/stakewell/stakewell"
)

// Engine moves value between two parties. Implementations must either fully
// apply a transfer or leave both balances untouched.
type Engine interface {
	// TransferNative moves amount of native currency from one party to another.
	TransferNative(from, to stakewell.Address, amount *big.Int) error

	// TransferToken moves amount units of the given fungible asset.
	TransferToken(asset, from, to stakewell.Address, amount *big.Int) error
}
