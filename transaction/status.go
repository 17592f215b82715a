// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"github.com/upisim/upisimd/fault"
)

// Status - the lifecycle state of a transaction
type Status uint64

// possible states
//
// Pending is the only non-terminal state; once a transaction reaches
// Success or Failed no further mutation is permitted
const (
	Pending Status = iota
	Success
	Failed
	maximum
)

// IsTerminal - true if no further state change is allowed
func (status Status) IsTerminal() bool {
	return Pending != status
}

// String - convert a status to its string symbol
func (status Status) String() string {
	switch status {
	case Pending:
		return "PENDING"
	case Success:
		return "SUCCESS"
	case Failed:
		return "FAILED"
	default:
		return ""
	}
}

// MarshalText - convert status to text for JSON
func (status Status) MarshalText() ([]byte, error) {
	s := status.String()
	if "" == s {
		return nil, fault.InvalidStatus
	}
	return []byte(s), nil
}

// UnmarshalText - convert text to status for JSON
func (status *Status) UnmarshalText(s []byte) error {
	switch string(s) {
	case "PENDING":
		*status = Pending
	case "SUCCESS":
		*status = Success
	case "FAILED":
		*status = Failed
	default:
		return fault.InvalidStatus
	}
	return nil
}
