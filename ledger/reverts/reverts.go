// Copyright (c) 2025 The Stakewell developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reverts carries the precondition-rejection errors of the ledger.
// Every revert aborts the enclosing operation with zero state mutation.
package reverts

import (
	"errors"
	"fmt"
)

// Kind classifies a revert.
type Kind uint8

const (
	KindUnauthorized Kind = iota + 1
	KindNotFound
	KindInvalidState
	KindPolicy
	KindTransferFailed
	KindReentrancy
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not found"
	case KindInvalidState:
		return "invalid state"
	case KindPolicy:
		return "policy violation"
	case KindTransferFailed:
		return "transfer failed"
	case KindReentrancy:
		return "reentrancy"
	default:
		return "unknown"
	}
}

// ErrRevert is a synchronous precondition rejection.
type ErrRevert struct {
	kind    Kind
	message string
}

func (e *ErrRevert) Error() string {
	return e.message
}

// Kind returns the revert classification.
func (e *ErrRevert) Kind() Kind {
	return e.kind
}

func newRevert(kind Kind, format string, args ...any) *ErrRevert {
	return &ErrRevert{kind: kind, message: fmt.Sprintf(format, args...)}
}

func Unauthorized(format string, args ...any) *ErrRevert {
	return newRevert(KindUnauthorized, format, args...)
}

func NotFound(format string, args ...any) *ErrRevert {
	return newRevert(KindNotFound, format, args...)
}

func InvalidState(format string, args ...any) *ErrRevert {
	return newRevert(KindInvalidState, format, args...)
}

func Policy(format string, args ...any) *ErrRevert {
	return newRevert(KindPolicy, format, args...)
}

func TransferFailed(format string, args ...any) *ErrRevert {
	return newRevert(KindTransferFailed, format, args...)
}

func Reentrancy() *ErrRevert {
	return newRevert(KindReentrancy, "reentrant call rejected")
}

// IsRevertErr reports whether err is (or wraps) a revert.
func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

// AsRevertErr unwraps err into a revert, if it is one.
func AsRevertErr(err error) (*ErrRevert, bool) {
	var ve *ErrRevert
	if !errors.As(err, &ve) {
		return nil, false
	}
	return ve, true
}

// IsKind reports whether err is a revert of the given kind.
func IsKind(err error, kind Kind) bool {
	var ve *ErrRevert
	if !errors.As(err, &ve) {
		return false
	}
	return ve.kind == kind
}
