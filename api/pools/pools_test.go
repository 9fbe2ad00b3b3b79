// Copyright (c) 2025 The Stakewell developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>
package pools_test

import (
	"bytes"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakewell/stakewell/api/pools"
	"github.com/stakewell/stakewell/api/restutil"
	"github.com/stakewell/stakewell/eventdb"
	"github.com/stakewell/stakewell/ledger"
	"github.com/stakewell/stakewell/lvldb"
	"github.com/stakewell/stakewell/stakewell"
	"github.com/stakewell/stakewell/transfer"
)

var (
	ts        *httptest.Server
	ownerAddr = stakewell.BytesToAddress([]byte("owner"))
	aliceAddr = stakewell.BytesToAddress([]byte("alice"))
)

func TestPools(t *testing.T) {
	initPoolServer(t)
	defer ts.Close()

	t.Run("createPool", testCreatePool)
	t.Run("createPoolUnauthorized", testCreatePoolUnauthorized)
	t.Run("getPool", testGetPool)
	t.Run("getUnknownPool", testGetUnknownPool)
	t.Run("listPools", testListPools)
	t.Run("setActive", testSetActive)
	t.Run("getTotal", testGetTotal)
}

func initPoolServer(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	events, err := eventdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(events.Close)

	l := ledger.New(db, transfer.NewMemEngine(), events, func() uint64 { return 1000 })
	_, err = l.Init(ledger.Options{
		Owner:          ownerAddr,
		Treasury:       stakewell.BytesToAddress([]byte("treasury")),
		MinStakeAmount: big.NewInt(0),
	})
	require.NoError(t, err)

	router := mux.NewRouter()
	pools.New(l).Mount(router, "/pools")
	ts = httptest.NewServer(router)
}

func httpPost(t *testing.T, url string, caller *stakewell.Address, body any) (int, []byte) {
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	require.NoError(t, err)
	if caller != nil {
		req.Header.Set(restutil.CallerHeader, caller.String())
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	payload, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, payload
}

func httpGet(t *testing.T, url string) (int, []byte) {
	res, err := http.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()
	payload, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, payload
}

func testCreatePool(t *testing.T) {
	status, body := httpPost(t, ts.URL+"/pools", &ownerAddr, &pools.CreatePoolRequest{
		Native:       true,
		APR:          5,
		LockDuration: 86400,
	})
	require.Equal(t, http.StatusOK, status)

	var created pools.JSONPool
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, uint64(0), created.ID)
	assert.True(t, created.Active)
	assert.Equal(t, uint32(5), created.APR)
}

func testCreatePoolUnauthorized(t *testing.T) {
	status, _ := httpPost(t, ts.URL+"/pools", &aliceAddr, &pools.CreatePoolRequest{
		Native: true,
		APR:    5,
	})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = httpPost(t, ts.URL+"/pools", nil, &pools.CreatePoolRequest{
		Native: true,
		APR:    5,
	})
	assert.Equal(t, http.StatusForbidden, status, "missing caller header")
}

func testGetPool(t *testing.T) {
	status, body := httpGet(t, ts.URL+"/pools/0")
	require.Equal(t, http.StatusOK, status)

	var got pools.JSONPool
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, uint64(0), got.ID)
}

func testGetUnknownPool(t *testing.T) {
	status, _ := httpGet(t, ts.URL+"/pools/99")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = httpGet(t, ts.URL+"/pools/notanumber")
	assert.Equal(t, http.StatusBadRequest, status)
}

func testListPools(t *testing.T) {
	status, body := httpGet(t, ts.URL+"/pools?mode=active")
	require.Equal(t, http.StatusOK, status)

	var list []*pools.JSONPool
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list, 1)

	status, _ = httpGet(t, ts.URL+"/pools?mode=bogus")
	assert.Equal(t, http.StatusBadRequest, status)
}

func testSetActive(t *testing.T) {
	status, body := httpPost(t, ts.URL+"/pools/0/active", &ownerAddr, &pools.SetActiveRequest{Active: false})
	require.Equal(t, http.StatusOK, status)

	var updated pools.JSONPool
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.False(t, updated.Active)

	status, body = httpGet(t, ts.URL+"/pools?mode=active")
	require.Equal(t, http.StatusOK, status)
	var list []*pools.JSONPool
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Empty(t, list)
}

func testGetTotal(t *testing.T) {
	status, body := httpGet(t, ts.URL+"/pools/0/total")
	require.Equal(t, http.StatusOK, status)

	var total pools.JSONPoolTotal
	require.NoError(t, json.Unmarshal(body, &total))
	assert.Zero(t, total.TotalStaked.Sign())
}
