// Copyright (c) 2025 The Stakewell developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pools

import (
	"math/big"

	"github.com/stakewell/stakewell/ledger/pool"
	"github.com/stakewell/stakewell/stakewell"
)

type CreatePoolRequest struct {
	Native       bool               `json:"native"`
	Asset        *stakewell.Address `json:"asset,omitempty"`
	APR          uint32             `json:"apr"`
	LockDuration uint64             `json:"lockDuration"`
}

type SetActiveRequest struct {
	Active bool `json:"active"`
}

type JSONPool struct {
	ID           uint64             `json:"id"`
	Native       bool               `json:"native"`
	Asset        *stakewell.Address `json:"asset,omitempty"`
	APR          uint32             `json:"apr"`
	LockDuration uint64             `json:"lockDuration"`
	Active       bool               `json:"active"`
	CreatedAt    uint64             `json:"createdAt"`
}

type JSONPoolTotal struct {
	ID          uint64   `json:"id"`
	TotalStaked *big.Int `json:"totalStaked"`
}

func convertPool(p *pool.Pool) *JSONPool {
	return &JSONPool{
		ID:           p.ID,
		Native:       p.Native,
		Asset:        p.Asset,
		APR:          p.APR,
		LockDuration: p.LockDuration,
		Active:       p.Active,
		CreatedAt:    p.CreatedAt,
	}
}

func convertPools(list []*pool.Pool) []*JSONPool {
	out := make([]*JSONPool, len(list))
	for i, p := range list {
		out[i] = convertPool(p)
	}
	return out
}
