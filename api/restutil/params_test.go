// Copyright (c) 2025 The Stakewell developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package restutil

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePage(t *testing.T) {
	req := httptest.NewRequest("GET", "/pools", nil)
	page, err := ParsePage(req)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), page.Offset)
	assert.Equal(t, uint64(DefaultPageLimit), page.Limit)

	req = httptest.NewRequest("GET", "/pools?offset=3&limit=7", nil)
	page, err = ParsePage(req)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), page.Offset)
	assert.Equal(t, uint64(7), page.Limit)

	req = httptest.NewRequest("GET", "/pools?limit=0", nil)
	_, err = ParsePage(req)
	assert.Error(t, err)

	req = httptest.NewRequest("GET", "/pools?limit=100000", nil)
	_, err = ParsePage(req)
	assert.Error(t, err)

	req = httptest.NewRequest("GET", "/pools?offset=x", nil)
	_, err = ParsePage(req)
	assert.Error(t, err)
}

func TestParseCaller(t *testing.T) {
	req := httptest.NewRequest("POST", "/stakes", nil)
	_, err := ParseCaller(req)
	assert.Error(t, err, "missing header")

	req.Header.Set(CallerHeader, "0xf077b491b355e64048ce21e3a6fc4751eeea77fa")
	caller, err := ParseCaller(req)
	require.NoError(t, err)
	assert.Equal(t, "0xf077b491b355e64048ce21e3a6fc4751eeea77fa", caller.String())

	req.Header.Set(CallerHeader, "nonsense")
	_, err = ParseCaller(req)
	assert.Error(t, err)
}

func TestParseAmount(t *testing.T) {
	amount, err := ParseAmount("amount", "1000000000000000000")
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000", amount.String())

	_, err = ParseAmount("amount", "")
	assert.Error(t, err)

	_, err = ParseAmount("amount", "-5")
	assert.Error(t, err)

	_, err = ParseAmount("amount", "12.5")
	assert.Error(t, err)
}
