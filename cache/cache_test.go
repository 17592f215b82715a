// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cache

import (
	"testing"
	"time"
)

func TestPool(t *testing.T) {
	Initialise()
	defer Finalise()

	Pool.TestB.Put("key-one", "data-one")
	Pool.TestB.Put("key-two", "data-two")
	Pool.TestB.Put("key-remove-me", "to be deleted")
	Pool.TestB.Delete("key-remove-me")
	Pool.TestB.Put("key-three", "data-three")
	Pool.TestB.Put("key-one", "data-one")     // duplicate
	Pool.TestB.Put("key-three", "data-three") // duplicate
	Pool.TestB.Put("key-four", "data-four")
	Pool.TestB.Put("key-delete-this", "to be deleted")
	Pool.TestB.Put("key-five", "data-five")
	Pool.TestB.Put("key-six", "data-six")
	Pool.TestB.Delete("key-delete-this")
	Pool.TestB.Put("key-seven", "data-seven")
	Pool.TestB.Put("key-one", "data-one(NEW)") // duplicate

	expectedItems := map[string]string{
		"key-one":   "data-one(NEW)",
		"key-two":   "data-two",
		"key-three": "data-three",
		"key-four":  "data-four",
		"key-five":  "data-five",
		"key-six":   "data-six",
		"key-seven": "data-seven",
	}

	if Pool.TestB.Size() != len(expectedItems) {
		t.Errorf("length mismatch, got: %d  expected: %d", Pool.TestB.Size(), len(expectedItems))
	}

	for key, val := range Pool.TestB.Items() {
		expVal, ok := expectedItems[key]
		if !ok || val.(string) != expVal {
			t.Fail()
		}
	}

	value, ok := Pool.TestB.Get("key-two")
	if !ok || "data-two" != value.(string) {
		t.Errorf("get mismatch, got: %v", value)
	}

	_, ok = Pool.TestB.Get("key-remove-me")
	if ok {
		t.Error("deleted key still present")
	}
}

func TestExpiration(t *testing.T) {
	Initialise()
	defer Finalise()

	Pool.TestA.Put("a1", struct{}{})
	Pool.TestA.Put("a2", struct{}{})
	Pool.TestA.Put("a3", struct{}{})
	Pool.TestB.Put("b1", struct{}{})
	Pool.TestB.Put("b2", struct{}{})

	// TestA pool expires after 3s, TestB pool never expires
	time.Sleep(4 * time.Second)

	if 0 != len(Pool.TestA.Items()) {
		t.Errorf("expired entries still live: %d", len(Pool.TestA.Items()))
	}
	if 2 != len(Pool.TestB.Items()) {
		t.Errorf("persistent entries lost, got: %d  expected: 2", len(Pool.TestB.Items()))
	}
}
