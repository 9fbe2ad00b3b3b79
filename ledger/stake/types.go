// Copyright (c) 2025 The Stakewell developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stake

import (
	"encoding/json"
	"math/big"

	"github.com/stakewell/stakewell/stakewell"
)

// Status is the lifecycle state of a stake. Transitions are forward-only:
// Staked -> Pending -> Completed.
type Status uint8

const (
	StatusUnknown   = Status(iota) // 0 -> default value
	StatusStaked                   // principal deposited, reward accruing
	StatusPending                  // withdrawal requested, reward frozen
	StatusCompleted                // principal and reward paid out
)

func (s Status) String() string {
	switch s {
	case StatusStaked:
		return "staked"
	case StatusPending:
		return "pending"
	case StatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// MarshalJSON renders the status in its string form.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON parses the string form of the status.
func (s *Status) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "staked":
		*s = StatusStaked
	case "pending":
		*s = StatusPending
	case "completed":
		*s = StatusCompleted
	default:
		*s = StatusUnknown
	}
	return nil
}

// Record is one stake, identified by (owner, index) where index is a
// per-owner monotonically increasing counter starting at 0.
type Record struct {
	PoolID       uint64
	Amount       *big.Int // fixed at creation
	StartTime    uint64
	LockDuration uint64   // copied from the pool at creation time
	Reward       *big.Int // zero until frozen at request time
	Status       Status
}

// IsEmpty returns whether the entry can be treated as empty.
func (r *Record) IsEmpty() bool {
	return r.Status == StatusUnknown
}

// EffectiveDuration returns the reward-accruing seconds elapsed at now.
// Locked stakes cap at the lock duration, unlocked stakes keep accruing.
func (r *Record) EffectiveDuration(now uint64) uint64 {
	if now <= r.StartTime {
		return 0
	}
	elapsed := now - r.StartTime
	if r.LockDuration > 0 && elapsed > r.LockDuration {
		return r.LockDuration
	}
	return elapsed
}

// RewardAt returns the frozen reward once the stake has left the Staked
// status, otherwise a live estimate at now using the pool's APR.
func (r *Record) RewardAt(now uint64, apr uint32) *big.Int {
	if r.Status != StatusStaked {
		return new(big.Int).Set(r.Reward)
	}
	return stakewell.CalcReward(r.Amount, apr, r.EffectiveDuration(now))
}

// Unlocked reports whether the lock plus the global minimum stake duration
// has elapsed at now, gating withdrawal requests.
func (r *Record) Unlocked(now, minStakeDuration uint64) bool {
	return now >= r.StartTime+r.LockDuration+minStakeDuration
}
