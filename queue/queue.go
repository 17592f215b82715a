// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package queue

import (
	"time"

	"github.com/upisim/upisimd/fault"
)

// internal constants
const (
	// DefaultSize - queue capacity used when the configuration does not
	// set one
	DefaultSize = 1000
)

// Q - a bounded FIFO queue of transaction identifiers
type Q struct {
	c chan string
}

// New - create a queue with a fixed capacity
func New(size int) *Q {
	if size <= 0 {
		size = DefaultSize
	}
	return &Q{
		c: make(chan string, size),
	}
}

// Send - append an identifier to the tail of the queue
//
// never blocks; a full queue is an overflow error so that a producer
// cannot stall the request path
func (q *Q) Send(txId string) error {
	select {
	case q.c <- txId:
		return nil
	default:
		return fault.QueueOverflow
	}
}

// ReceiveTimeout - remove the identifier at the head of the queue
//
// blocks for at most the given timeout; the second return is false if
// nothing arrived, allowing the consumer to perform periodic liveness
// work while idle
func (q *Q) ReceiveTimeout(timeout time.Duration) (string, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case txId := <-q.c:
		return txId, true
	case <-timer.C:
		return "", false
	}
}

// Len - number of identifiers currently queued
func (q *Q) Len() int {
	return len(q.c)
}
