// Copyright (c) 2025 The Stakewell developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"math/big"

	"github.com/stakewell/stakewell/stakewell"
)

// Kind names an observable ledger transition.
type Kind string

const (
	KindPoolCreated      Kind = "pool_created"
	KindPoolStatus       Kind = "pool_status"
	KindStaked           Kind = "staked"
	KindUnstakeRequested Kind = "unstake_requested"
	KindUnstakeCompleted Kind = "unstake_completed"
	KindBatchCompleted   Kind = "batch_completed"
	KindConfigChanged    Kind = "config_changed"
	KindManagerChanged   Kind = "manager_changed"
)

// Event is one entry of the audit trail. It is the only durable history of
// state transitions; the query layer reflects only current state.
type Event struct {
	Sequence  uint64             `json:"sequence"`
	Kind      Kind               `json:"kind"`
	Timestamp uint64             `json:"timestamp"`
	Principal *stakewell.Address `json:"principal,omitempty"`
	PoolID    *uint64            `json:"poolId,omitempty"`
	StakeIdx  *uint64            `json:"stakeIndex,omitempty"`
	RequestID *uint64            `json:"requestId,omitempty"`
	Amount    *big.Int           `json:"amount,omitempty"`
	Reward    *big.Int           `json:"reward,omitempty"`
	Detail    string             `json:"detail,omitempty"`
}

// Filter narrows an event query. Zero fields match everything.
type Filter struct {
	Kinds     []Kind
	PoolID    *uint64
	Principal *stakewell.Address
	From      *uint64 // inclusive timestamp bound
	To        *uint64 // inclusive timestamp bound
	Offset    uint64
	Limit     uint64
}
