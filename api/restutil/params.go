// Copyright (c) 2025 The Stakewell developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package restutil

import (
	"math/big"
	"net/http"
	"strconv"

	"github.com/pkg/errors"

	"github.com/stakewell/stakewell/stakewell"
)

// CallerHeader carries the principal an API request acts as.
const CallerHeader = "x-caller"

// DefaultPageLimit applies when a list request names no limit.
const DefaultPageLimit = 100

// MaxPageLimit caps the page size of any list request.
const MaxPageLimit = 1000

// Page is an offset/limit window over an ordered sequence.
type Page struct {
	Offset uint64
	Limit  uint64
}

// ParsePage reads the offset and limit query parameters.
func ParsePage(r *http.Request) (*Page, error) {
	page := &Page{Limit: DefaultPageLimit}
	if v := r.URL.Query().Get("offset"); v != "" {
		offset, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, BadRequest(errors.WithMessage(err, "offset"))
		}
		page.Offset = offset
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, BadRequest(errors.WithMessage(err, "limit"))
		}
		if limit == 0 || limit > MaxPageLimit {
			return nil, BadRequest(errors.Errorf("limit: must be in (0, %d]", MaxPageLimit))
		}
		page.Limit = limit
	}
	return page, nil
}

// ParseCaller reads the principal from the caller header.
func ParseCaller(r *http.Request) (stakewell.Address, error) {
	v := r.Header.Get(CallerHeader)
	if v == "" {
		return stakewell.Address{}, Forbidden(errors.New("missing " + CallerHeader + " header"))
	}
	addr, err := stakewell.ParseAddress(v)
	if err != nil {
		return stakewell.Address{}, Forbidden(errors.WithMessage(err, CallerHeader))
	}
	return addr, nil
}

// ParseAddressVar parses a path or query variable as an address.
func ParseAddressVar(name, v string) (stakewell.Address, error) {
	addr, err := stakewell.ParseAddress(v)
	if err != nil {
		return stakewell.Address{}, BadRequest(errors.WithMessage(err, name))
	}
	return addr, nil
}

// ParseUintVar parses a path or query variable as a decimal uint64.
func ParseUintVar(name, v string) (uint64, error) {
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, BadRequest(errors.WithMessage(err, name))
	}
	return n, nil
}

// ParseAmount parses a decimal big integer, rejecting negatives.
func ParseAmount(name, v string) (*big.Int, error) {
	if v == "" {
		return nil, BadRequest(errors.New(name + ": missing"))
	}
	n, ok := new(big.Int).SetString(v, 10)
	if !ok {
		return nil, BadRequest(errors.New(name + ": malformed decimal"))
	}
	if n.Sign() < 0 {
		return nil, BadRequest(errors.New(name + ": must not be negative"))
	}
	return n, nil
}
