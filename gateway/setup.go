// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package gateway - accept collect requests and answer status queries
//
// submission writes the durable record first, then mirrors it to the
// cache and hands the identifier to the queue; if any step fails the
// earlier writes are undone so a failed submission leaves no partial
// state behind
package gateway

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/upisim/upisimd/counter"
	"github.com/upisim/upisimd/fault"
	"github.com/upisim/upisimd/storage"
)

// Store - the durable transaction pool required by the gateway
type Store interface {
	Put(key []byte, value []byte) error
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	Delete(key []byte) error
}

// Cursor - a range reader over the durable transaction pool, used by
// the listing operation; a fresh cursor reads from the first record
type Cursor interface {
	Fetch(count int) ([]storage.Element, error)
}

// Cache - the fast status mirror required by the gateway
type Cache interface {
	Put(key string, value interface{})
	Get(key string) (interface{}, bool)
	Delete(key string)
}

// Queue - the pending-transaction hand-off required by the gateway
type Queue interface {
	Send(txId string) error
	Len() int
}

// globals
type globalDataType struct {
	sync.RWMutex

	log       *logger.L
	store     Store
	cache     Cache
	queue     Queue
	newCursor func() Cursor

	// set once during initialise
	initialised bool
}

var globalData globalDataType

// submission statistics
var submissionCounter counter.Counter

// Initialise - attach the gateway to its store, cache and queue handles
//
// the handles are passed by composition so tests can substitute
// in-memory fakes
func Initialise(store Store, cache Cache, queue Queue, newCursor func() Cursor) error {
	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("gateway")
	globalData.log.Info("starting…")

	globalData.store = store
	globalData.cache = cache
	globalData.queue = queue
	globalData.newCursor = newCursor

	// all data initialised
	globalData.initialised = true

	return nil
}

// Finalise - detach the gateway
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.store = nil
	globalData.cache = nil
	globalData.queue = nil
	globalData.newCursor = nil

	globalData.initialised = false

	return nil
}

// ReadCounters - the number of accepted submissions since start
func ReadCounters() uint64 {
	return submissionCounter.Uint64()
}

// PendingCount - current queue depth
func PendingCount() int {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return 0
	}
	return globalData.queue.Len()
}
