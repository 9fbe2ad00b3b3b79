// Copyright (c) 2025 The Stakewell developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakewell

import "math/big"

// Protocol constants of the ledger.
const (
	// SecondsPerYear is the reward accrual year, with no leap-year adjustment.
	SecondsPerYear = 365 * 86400

	// APRDenominator converts an integer-percent APR into a fraction.
	APRDenominator = 100
)

// RewardPrecision is the fixed-point scale applied while computing rewards.
// It multiplies into the numerator and divides back out after the final
// truncating division, so it cancels exactly and introduces no extra bias.
var RewardPrecision = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// TokenScale is the number of base units per whole token.
var TokenScale = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// Tokens returns n whole tokens in base units.
func Tokens(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), TokenScale)
}

// CalcReward computes the linear reward for a stake of the given amount at
// the given integer-percent APR over the effective duration in seconds.
// The result truncates toward zero.
func CalcReward(amount *big.Int, apr uint32, duration uint64) *big.Int {
	if amount == nil || amount.Sign() <= 0 || apr == 0 || duration == 0 {
		return new(big.Int)
	}
	reward := new(big.Int).Mul(amount, RewardPrecision)
	reward.Mul(reward, new(big.Int).SetUint64(uint64(apr)))
	reward.Mul(reward, new(big.Int).SetUint64(duration))
	reward.Div(reward, big.NewInt(APRDenominator*SecondsPerYear))
	reward.Div(reward, RewardPrecision)
	return reward
}
