// Copyright (c) 2025 The Stakewell developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakewell

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	addr, err := ParseAddress("0xf077b491b355e64048ce21e3a6fc4751eeea77fa")
	require.NoError(t, err)
	assert.Equal(t, "0xf077b491b355e64048ce21e3a6fc4751eeea77fa", addr.String())

	// prefix is optional
	bare, err := ParseAddress("f077b491b355e64048ce21e3a6fc4751eeea77fa")
	require.NoError(t, err)
	assert.Equal(t, addr, bare)

	_, err = ParseAddress("0x1234")
	assert.Error(t, err)

	_, err = ParseAddress("zz77b491b355e64048ce21e3a6fc4751eeea77fa")
	assert.Error(t, err)
}

func TestAddressJSON(t *testing.T) {
	addr := MustParseAddress("0x435933c8064b4ae76be665428e0307ef2ccfbd68")

	data, err := json.Marshal(addr)
	require.NoError(t, err)
	assert.Equal(t, `"0x435933c8064b4ae76be665428e0307ef2ccfbd68"`, string(data))

	var parsed Address
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, addr, parsed)
}

func TestAddressIsZero(t *testing.T) {
	assert.True(t, Address{}.IsZero())
	assert.False(t, BytesToAddress([]byte("x")).IsZero())
}
