// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package queue_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/upisim/upisimd/fault"
	"github.com/upisim/upisimd/queue"
)

// identifiers must come out in the order they went in
func TestFIFOOrder(t *testing.T) {
	q := queue.New(10)

	for i := 0; i < 10; i += 1 {
		err := q.Send(fmt.Sprintf("tx-%02d", i))
		assert.Nil(t, err, "wrong send")
	}
	assert.Equal(t, 10, q.Len(), "wrong length")

	for i := 0; i < 10; i += 1 {
		txId, ok := q.ReceiveTimeout(time.Second)
		assert.True(t, ok, "wrong receive")
		assert.Equal(t, fmt.Sprintf("tx-%02d", i), txId, "wrong order")
	}
	assert.Equal(t, 0, q.Len(), "wrong length")
}

func TestReceiveTimeout(t *testing.T) {
	q := queue.New(1)

	start := time.Now()
	txId, ok := q.ReceiveTimeout(50 * time.Millisecond)
	elapsed := time.Since(start)

	assert.False(t, ok, "unexpected delivery")
	assert.Equal(t, "", txId, "unexpected identifier")
	assert.True(t, elapsed >= 50*time.Millisecond, "returned before timeout")
}

func TestOverflow(t *testing.T) {
	q := queue.New(2)

	assert.Nil(t, q.Send("tx-1"), "wrong send")
	assert.Nil(t, q.Send("tx-2"), "wrong send")
	assert.Equal(t, fault.QueueOverflow, q.Send("tx-3"), "wrong overflow")

	// draining makes room again
	_, ok := q.ReceiveTimeout(time.Second)
	assert.True(t, ok, "wrong receive")
	assert.Nil(t, q.Send("tx-3"), "wrong send")
}

// a waiting consumer is released by a later producer
func TestBlockedReceive(t *testing.T) {
	q := queue.New(1)

	done := make(chan string)
	go func() {
		txId, ok := q.ReceiveTimeout(5 * time.Second)
		if !ok {
			txId = "*timeout*"
		}
		done <- txId
	}()

	time.Sleep(20 * time.Millisecond)
	assert.Nil(t, q.Send("tx-wake"), "wrong send")
	assert.Equal(t, "tx-wake", <-done, "wrong delivery")
}

// concurrent producers: every identifier is delivered exactly once and
// each producer's own sequence stays in relative order
func TestConcurrentSend(t *testing.T) {
	q := queue.New(200)

	wg := sync.WaitGroup{}
	for p := 0; p < 4; p += 1 {
		wg.Add(1)
		go func(p int) {
			for i := 0; i < 50; i += 1 {
				_ = q.Send(fmt.Sprintf("p%d-%02d", p, i))
			}
			wg.Done()
		}(p)
	}
	wg.Wait()

	last := map[int]int{}
	seen := map[string]int{}
	for i := 0; i < 200; i += 1 {
		txId, ok := q.ReceiveTimeout(time.Second)
		assert.True(t, ok, "wrong receive")
		seen[txId] += 1

		var producer int
		var n int
		_, err := fmt.Sscanf(txId, "p%d-%02d", &producer, &n)
		assert.Nil(t, err, "wrong identifier format")
		if prev, ok := last[producer]; ok {
			assert.True(t, n > prev, "per-producer order broken")
		}
		last[producer] = n
	}
	assert.Equal(t, 200, len(seen), "wrong delivery count")
}
