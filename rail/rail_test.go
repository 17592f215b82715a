// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rail_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/upisim/upisimd/fault"
	"github.com/upisim/upisimd/rail"
)

func TestAlwaysSucceed(t *testing.T) {
	s, err := rail.NewSimulator(1.0)
	assert.Nil(t, err, "wrong simulator")

	for i := 0; i < 100; i += 1 {
		assert.Nil(t, s.Authorize("tx-1"), "unexpected failure")
	}
}

func TestAlwaysFail(t *testing.T) {
	s, err := rail.NewSimulator(0.0)
	assert.Nil(t, err, "wrong simulator")

	network := 0
	declined := 0
	for i := 0; i < 200; i += 1 {
		err := s.Authorize("tx-1")
		switch err {
		case fault.NetworkError:
			network += 1
		case fault.PaymentDeclined:
			declined += 1
		default:
			t.Fatalf("unexpected outcome: %v", err)
		}
	}

	// both failure tags must be reachable
	assert.True(t, network > 0, "no network errors")
	assert.True(t, declined > 0, "no declines")
}

func TestInvalidProbability(t *testing.T) {
	_, err := rail.NewSimulator(1.5)
	assert.Equal(t, fault.InvalidProbability, err, "wrong error")

	_, err = rail.NewSimulator(-0.1)
	assert.Equal(t, fault.InvalidProbability, err, "wrong error")
}

func TestSetSuccessProbability(t *testing.T) {
	s, err := rail.NewSimulator(0.0)
	assert.Nil(t, err, "wrong simulator")

	err = s.SetSuccessProbability(1.0)
	assert.Nil(t, err, "wrong set")
	assert.Equal(t, 1.0, s.SuccessProbability(), "wrong probability")

	assert.Nil(t, s.Authorize("tx-1"), "unexpected failure")

	err = s.SetSuccessProbability(2.0)
	assert.Equal(t, fault.InvalidProbability, err, "wrong error")
	assert.Equal(t, 1.0, s.SuccessProbability(), "probability changed by invalid set")
}
