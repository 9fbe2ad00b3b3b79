// Copyright (c) 2025 The Stakewell developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package unstake

import (
	"math/big"

	"github.com/stakewell/stakewell/ledger/stake"
	"github.com/stakewell/stakewell/stakewell"
)

// Request is a withdrawal request, identified by (poolID, requestID) where
// requestID is a per-pool monotonically increasing counter.
//
// A request exists if and only if the referenced stake has left Staked
// status, and it carries no status of its own: its settlement state is the
// referenced stake record's status, so the two can never diverge.
type Request struct {
	Owner      stakewell.Address
	StakeIndex uint64
	Amount     *big.Int // snapshot of principal
	Reward     *big.Int // snapshot of the frozen reward
	Timestamp  uint64
}

// Total returns principal plus frozen reward, the settlement payout.
func (r *Request) Total() *big.Int {
	return new(big.Int).Add(r.Amount, r.Reward)
}

// View is the externally visible form of a request, with the settlement
// status derived from the referenced stake record on read.
type View struct {
	PoolID     uint64            `json:"poolId"`
	ID         uint64            `json:"requestId"`
	Owner      stakewell.Address `json:"user"`
	StakeIndex uint64            `json:"stakeIndex"`
	Amount     *big.Int          `json:"amount"`
	Reward     *big.Int          `json:"reward"`
	Timestamp  uint64            `json:"timestamp"`
	Status     stake.Status      `json:"status"`
}

// Total is the full payout of the request.
func (v *View) Total() *big.Int {
	return new(big.Int).Add(v.Amount, v.Reward)
}
