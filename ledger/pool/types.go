// Copyright (c) 2025 The Stakewell developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import "github.com/stakewell/stakewell/stakewell"

// Pool is an administrator-defined staking pool configuration.
// Pools are created once, toggled active/inactive, and never deleted, so
// identifiers stay valid for historical stake lookups.
type Pool struct {
	ID           uint64
	Native       bool               // true when the pool stakes native currency
	Asset        *stakewell.Address `rlp:"nil"` // fungible-token contract, nil when native
	APR          uint32             // integer percent, > 0
	LockDuration uint64             // seconds, 0 = unlocked
	Active       bool
	CreatedAt    uint64
}

// IsEmpty returns whether the entry can be treated as empty.
// A stored pool always carries APR > 0.
func (p *Pool) IsEmpty() bool {
	return p.APR == 0
}
