// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter_test

import (
	"sync"
	"testing"

	"github.com/upisim/upisimd/counter"
)

func TestCounter(t *testing.T) {

	c := counter.Counter(0)

	if !c.IsZero() {
		t.Fatalf("initial counter is not zero: %d", c.Uint64())
	}

	c.Increment()
	c.Increment()
	c.Increment()
	if 3 != c.Uint64() {
		t.Fatalf("counter expected: 3  actual: %d", c.Uint64())
	}

	c.Decrement()
	if 2 != c.Uint64() {
		t.Fatalf("counter expected: 2  actual: %d", c.Uint64())
	}
}

func TestCounterConcurrent(t *testing.T) {

	c := counter.Counter(0)

	const n = 50
	wg := sync.WaitGroup{}
	for i := 0; i < n; i += 1 {
		wg.Add(1)
		go func() {
			for j := 0; j < 100; j += 1 {
				c.Increment()
			}
			wg.Done()
		}()
	}
	wg.Wait()

	if n*100 != c.Uint64() {
		t.Fatalf("counter expected: %d  actual: %d", n*100, c.Uint64())
	}
}
