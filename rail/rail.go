// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rail - the external payment network collaborator
//
// the real network is replaced by a non-deterministic outcome
// generator: a call either succeeds or fails with one of two equally
// likely tags, a transient network error or an explicit decline
//
// the worker must never assume a particular outcome; both failure tags
// are subject to the same retry policy
package rail

import (
	"math"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/upisim/upisimd/fault"
)

// Caller - the interface the worker uses to reach the payment network
type Caller interface {
	Authorize(txId string) error
}

// Configuration - structure for configuration file
type Configuration struct {
	SuccessProbability float64 `gluamapper:"success_probability" json:"success_probability"`
}

// Simulator - the default non-deterministic Caller
//
// the success probability is stored as atomic bits so that a
// configuration reload can adjust it while the worker is running
type Simulator struct {
	probabilityBits uint64

	sync.Mutex // protects rand
	rand       *rand.Rand
}

// NewSimulator - create a simulator with a given success probability
func NewSimulator(probability float64) (*Simulator, error) {
	s := &Simulator{
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	if err := s.SetSuccessProbability(probability); nil != err {
		return nil, err
	}
	return s, nil
}

// SetSuccessProbability - adjust the outcome distribution
//
// safe to call while authorisations are in flight
func (s *Simulator) SetSuccessProbability(probability float64) error {
	if probability < 0 || probability > 1 || math.IsNaN(probability) {
		return fault.InvalidProbability
	}
	atomic.StoreUint64(&s.probabilityBits, math.Float64bits(probability))
	return nil
}

// SuccessProbability - the current outcome distribution
func (s *Simulator) SuccessProbability() float64 {
	return math.Float64frombits(atomic.LoadUint64(&s.probabilityBits))
}

// Authorize - present a transaction to the simulated network
//
// returns nil on success, fault.NetworkError for a transient failure
// or fault.PaymentDeclined for an explicit decline
func (s *Simulator) Authorize(txId string) error {
	s.Lock()
	outcome := s.rand.Float64()
	failureKind := s.rand.Float64()
	s.Unlock()

	if outcome < s.SuccessProbability() {
		return nil
	}

	// failed attempt: equal chance of either tag
	if failureKind < 0.5 {
		return fault.NetworkError
	}
	return fault.PaymentDeclined
}
