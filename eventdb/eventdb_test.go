// Copyright (c) 2025 The Stakewell developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakewell/stakewell/stakewell"
)

func newDB(t *testing.T) *EventDB {
	db, err := NewMem()
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

func u64(v uint64) *uint64 { return &v }

func TestRecordAndFilter(t *testing.T) {
	db := newDB(t)
	alice := stakewell.BytesToAddress([]byte("alice"))

	events := []*Event{
		{Kind: KindPoolCreated, Timestamp: 100, PoolID: u64(0)},
		{Kind: KindStaked, Timestamp: 110, Principal: &alice, PoolID: u64(0), StakeIdx: u64(0), Amount: big.NewInt(1000)},
		{Kind: KindUnstakeRequested, Timestamp: 200, Principal: &alice, PoolID: u64(0), StakeIdx: u64(0), RequestID: u64(0), Amount: big.NewInt(1000), Reward: big.NewInt(5)},
	}
	for _, ev := range events {
		require.NoError(t, db.Record(ev))
	}
	assert.Equal(t, uint64(1), events[0].Sequence)
	assert.Equal(t, uint64(3), events[2].Sequence)

	all, err := db.Filter(context.Background(), &Filter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, KindPoolCreated, all[0].Kind)
	assert.Equal(t, big.NewInt(1000), all[1].Amount)
	assert.Equal(t, alice, *all[1].Principal)

	byKind, err := db.Filter(context.Background(), &Filter{Kinds: []Kind{KindStaked}, Limit: 10})
	require.NoError(t, err)
	require.Len(t, byKind, 1)
	assert.Equal(t, KindStaked, byKind[0].Kind)

	from := uint64(150)
	byTime, err := db.Filter(context.Background(), &Filter{From: &from, Limit: 10})
	require.NoError(t, err)
	require.Len(t, byTime, 1)
	assert.Equal(t, KindUnstakeRequested, byTime[0].Kind)

	byPrincipal, err := db.Filter(context.Background(), &Filter{Principal: &alice, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, byPrincipal, 2)

	paged, err := db.Filter(context.Background(), &Filter{Offset: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, uint64(2), paged[0].Sequence)
}

func TestSubscribe(t *testing.T) {
	db := newDB(t)

	ch, cancel := db.Subscribe()
	defer cancel()

	require.NoError(t, db.Record(&Event{Kind: KindStaked, Timestamp: 1}))

	select {
	case ev := <-ch:
		assert.Equal(t, KindStaked, ev.Kind)
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}

	cancel()
	// recording after cancel must not block
	require.NoError(t, db.Record(&Event{Kind: KindStaked, Timestamp: 2}))
}
