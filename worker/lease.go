// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package worker

import (
	"sync"
)

// the at-least-once queue can deliver one identifier to two driving
// loops; the lease table gives one of them an exclusive claim for the
// duration of the attempt so the attempt count cannot advance twice
// for a single delivery
//
// process wide: all workers share the one table
var leases struct {
	sync.Mutex
	held map[string]struct{}
}

func init() {
	leases.held = make(map[string]struct{})
}

// acquire - claim an identifier; false if another worker holds it
func acquire(txId string) bool {
	leases.Lock()
	defer leases.Unlock()

	if _, ok := leases.held[txId]; ok {
		return false
	}
	leases.held[txId] = struct{}{}
	return true
}

// release - give up a claim
func release(txId string) {
	leases.Lock()
	defer leases.Unlock()

	delete(leases.held, txId)
}
